package render

import (
	"fmt"
	"strings"
)

// Mode selects how renderers present the form.
type Mode string

const (
	// ModeBuilder shows the component outline used while editing the schema.
	ModeBuilder Mode = "builder"
	// ModeRenderer shows bound, fillable controls.
	ModeRenderer Mode = "renderer"
	// ModePreview renders like ModeRenderer with a preview marker.
	ModePreview Mode = "preview"
)

// Theme is the host colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseMode validates a mode name. Empty input yields ModeRenderer.
func ParseMode(value string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return ModeRenderer, nil
	case ModeBuilder, ModeRenderer, ModePreview:
		return mode, nil
	default:
		return "", fmt.Errorf("render: unknown mode %q", value)
	}
}

// ParseTheme validates a theme name. Empty input yields ThemeLight.
func ParseTheme(value string) (Theme, error) {
	switch theme := Theme(strings.ToLower(strings.TrimSpace(value))); theme {
	case "":
		return ThemeLight, nil
	case ThemeLight, ThemeDark:
		return theme, nil
	default:
		return "", fmt.Errorf("render: unknown theme %q", value)
	}
}

// RenderOptions describe per-request presentation settings that renderers use
// to customise their output without touching the document.
type RenderOptions struct {
	Mode Mode
	// Readonly disables every control. Navigation stays available.
	Readonly bool
	Theme    Theme
}

// Normalized fills empty settings with their defaults.
func (o RenderOptions) Normalized() RenderOptions {
	if o.Mode == "" {
		o.Mode = ModeRenderer
	}
	if o.Theme == "" {
		o.Theme = ThemeLight
	}
	return o
}

// Projection returns the projection options implied by these settings.
func (o RenderOptions) Projection() []ProjectOption {
	opts := []ProjectOption{WithReadonly(o.Readonly)}
	if o.Mode == ModeBuilder {
		opts = append(opts, WithAllNodes())
	}
	return opts
}
