package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Mode:      "renderer",
		Theme:     "light",
		Renderer:  "html",
		LogFormat: "human",
	}, cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formcraft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: builder\ntheme: dark\nreadonly: true\n"), 0o644))
	t.Setenv("FORMCRAFT_THEME", "light")
	t.Setenv("FORMCRAFT_LOG_FORMAT", "json")
	t.Setenv("FORMCRAFT_DATA", `{"wizardSteps":[]}`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "builder", cfg.Mode)
	assert.Equal(t, "light", cfg.Theme)
	assert.True(t, cfg.Readonly)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, `{"wizardSteps":[]}`, cfg.Data)

	hostCfg := cfg.Host()
	assert.Equal(t, "builder", hostCfg.Mode)
	assert.True(t, hostCfg.Readonly)
	assert.Equal(t, cfg.Data, hostCfg.Data)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("FORMCRAFT_MODE", "editor")
	_, err := Load(viper.New(), "")
	assert.Error(t, err)

	_, err = Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRenderer(t *testing.T) {
	assert.NoError(t, Config{Renderer: "tui"}.Validate())
	assert.Error(t, Config{Renderer: "pdf"}.Validate())
}
