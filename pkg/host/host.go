// Package host is the boundary a page or application mounts: it takes the
// mode, readonly, theme and data controls, renders the current state and
// emits data-changed and submit signals.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcraft/pkg/render"
	"github.com/goliatone/go-formcraft/pkg/renderers/html"
	"github.com/goliatone/go-formcraft/pkg/renderers/tui"
	"github.com/goliatone/go-formcraft/pkg/store"
)

var (
	_ tui.Session      = (*store.Store)(nil)
	_ render.Projector = (*store.Store)(nil)
)

// Config carries the host controls. Data is the serialized document; an
// empty value starts from an empty document.
type Config struct {
	Mode     string `mapstructure:"mode"`
	Readonly bool   `mapstructure:"readonly"`
	Theme    string `mapstructure:"theme"`
	Data     string `mapstructure:"data"`
}

// Validate checks mode and theme, returning their parsed values.
func (c Config) Validate() (render.Mode, render.Theme, error) {
	mode, err := render.ParseMode(c.Mode)
	if err != nil {
		return "", "", fmt.Errorf("host: %w", err)
	}
	theme, err := render.ParseTheme(c.Theme)
	if err != nil {
		return "", "", fmt.Errorf("host: %w", err)
	}
	return mode, theme, nil
}

// Option customises a Component.
type Option func(*Component)

// WithStore uses an existing store instead of a fresh one.
func WithStore(s *store.Store) Option {
	return func(c *Component) {
		if s != nil {
			c.store = s
		}
	}
}

// WithRenderer registers renderer and makes it the one Render uses.
func WithRenderer(renderer render.Renderer) Option {
	return func(c *Component) {
		if renderer != nil {
			c.pending = append(c.pending, renderer)
			c.rendererName = renderer.Name()
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Component) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Component binds a Store to the host controls.
type Component struct {
	mu           sync.RWMutex
	store        *store.Store
	renderers    *render.Registry
	rendererName string
	pending      []render.Renderer
	mode         render.Mode
	theme        render.Theme
	readonly     bool
	logger       *zap.Logger
}

// New builds a component from cfg. Invalid mode or theme values fail; a
// malformed Data document is logged and the component starts empty.
func New(cfg Config, opts ...Option) (*Component, error) {
	mode, theme, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	c := &Component{
		mode:     mode,
		theme:    theme,
		readonly: cfg.Readonly,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.store == nil {
		c.store = store.New(store.WithLogger(c.logger))
	}

	c.renderers = render.NewRegistry()
	if c.rendererName == "" {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("host: html renderer: %w", err)
		}
		c.pending = append(c.pending, renderer)
		c.rendererName = renderer.Name()
	}
	for _, renderer := range c.pending {
		if err := c.renderers.Register(renderer); err != nil && !errors.Is(err, render.ErrDuplicateRenderer) {
			return nil, fmt.Errorf("host: %w", err)
		}
	}
	c.pending = nil

	if cfg.Data != "" {
		if err := c.SetData(cfg.Data); err != nil {
			c.logger.Warn("initial data rejected", zap.Error(err))
		}
	}
	return c, nil
}

// Store exposes the underlying store.
func (c *Component) Store() *store.Store {
	return c.store
}

// SetData replaces the parts of the document present in text. The host always
// wins over local edits; malformed text keeps the prior state and is returned
// as a diagnostic.
func (c *Component) SetData(text string) error {
	return c.store.LoadString(text)
}

// Data returns the current encoded document.
func (c *Component) Data() (string, error) {
	return c.store.EncodeString()
}

// SetMode switches between builder, renderer and preview.
func (c *Component) SetMode(value string) error {
	mode, err := render.ParseMode(value)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	return nil
}

// SetTheme switches the colour scheme.
func (c *Component) SetTheme(value string) error {
	theme, err := render.ParseTheme(value)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = theme
	return nil
}

// SetReadonly toggles readonly rendering.
func (c *Component) SetReadonly(readonly bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readonly = readonly
}

// Options reports the current presentation settings.
func (c *Component) Options() render.RenderOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return render.RenderOptions{Mode: c.mode, Readonly: c.readonly, Theme: c.theme}
}

// Render projects the current step and renders it with the selected
// renderer.
func (c *Component) Render(ctx context.Context) ([]byte, error) {
	return c.renderers.RenderFrom(ctx, c.rendererName, c.store, c.Options())
}

// OnDataChange registers fn to receive the encoded document after every
// mutation.
func (c *Component) OnDataChange(fn func(text string)) {
	if fn == nil {
		return
	}
	c.store.OnChange(func(change store.DataChange) {
		fn(change.Text)
	})
}

// OnSubmit registers fn to receive the full value map on submit.
func (c *Component) OnSubmit(fn func(values map[string]any)) {
	c.store.OnSubmit(fn)
}

// Submit delivers the full value map when the current step is the last one.
func (c *Component) Submit() (map[string]any, error) {
	return c.store.Submit()
}
