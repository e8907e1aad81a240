package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrRendererNotFound is returned when no renderer answers to a name.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)

// Projector produces views of a form. The schema store satisfies it.
type Projector interface {
	ViewWith(opts ...ProjectOption) View
}

// Registry holds the output formats a host can switch between. Names match
// case-insensitively; the first renderer registered is the default.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds renderer under its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := rendererKey(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRenderer, name)
	}
	r.renderers[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Lookup resolves name, or the default renderer when name is empty.
func (r *Registry) Lookup(name string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := rendererKey(name)
	if key == "" {
		if len(r.order) == 0 {
			return nil, false
		}
		key = r.order[0]
	}
	renderer, ok := r.renderers[key]
	return renderer, ok
}

// Names lists renderer names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Render hands an already projected view to the named renderer with
// defaulted options.
func (r *Registry) Render(ctx context.Context, name string, view View, options RenderOptions) ([]byte, error) {
	renderer, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer.Render(ctx, view, options.Normalized())
}

// RenderFrom projects src the way options ask for and renders the result.
// Builder mode projects every node so hidden branches stay editable; readonly
// disables every control.
func (r *Registry) RenderFrom(ctx context.Context, name string, src Projector, options RenderOptions) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("render: projector is required")
	}
	options = options.Normalized()
	return r.Render(ctx, name, src.ViewWith(options.Projection()...), options)
}

func rendererKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
