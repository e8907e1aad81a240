// Package config loads formcraft CLI settings from flags, FORMCRAFT_*
// environment variables and an optional formcraft.yaml file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formcraft/pkg/host"
)

const (
	// AppName names the config file searched for (formcraft.yaml).
	AppName = "formcraft"
	// EnvPrefix prefixes environment variables.
	EnvPrefix = "FORMCRAFT"
)

// Config holds the CLI settings.
type Config struct {
	Mode      string `mapstructure:"mode"`
	Theme     string `mapstructure:"theme"`
	Readonly  bool   `mapstructure:"readonly"`
	Data      string `mapstructure:"data"`
	Renderer  string `mapstructure:"renderer"`
	LogFormat string `mapstructure:"log_format"`
	Debug     bool   `mapstructure:"debug"`
}

// Host converts the settings to host controls.
func (c Config) Host() host.Config {
	return host.Config{Mode: c.Mode, Theme: c.Theme, Readonly: c.Readonly, Data: c.Data}
}

// Validate checks the host controls and renderer name.
func (c Config) Validate() error {
	if _, _, err := c.Host().Validate(); err != nil {
		return err
	}
	switch c.Renderer {
	case "html", "tui":
		return nil
	default:
		return fmt.Errorf("config: unknown renderer %q", c.Renderer)
	}
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "renderer")
	v.SetDefault("theme", "light")
	v.SetDefault("readonly", false)
	v.SetDefault("data", "")
	v.SetDefault("renderer", "html")
	v.SetDefault("log_format", "human")
	v.SetDefault("debug", false)
}

// Load reads settings into a Config. An explicit file must exist; otherwise
// formcraft.yaml is looked up in the working directory and ignored when
// absent.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
