// Package html renders a projected form view to HTML. Builder mode draws the
// component outline; renderer and preview modes draw bound controls.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formcraft/pkg/render"
	rendertemplate "github.com/goliatone/go-formcraft/pkg/render/template"
	"github.com/goliatone/go-formcraft/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formcraft/pkg/renderers/html/components"
)

// Name is the renderer name used in render.Registry.
const Name = "html"

const pageTemplate = "page"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	sanitizer        *bluemonday.Policy
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate page template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads the page template bundle from disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the component registry.
func WithComponents(reg *components.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.components = reg
		}
	}
}

// WithSanitizer replaces the policy applied to author-supplied markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// WithStylesheets links stylesheets on every rendered page.
func WithStylesheets(hrefs ...string) Option {
	return func(cfg *config) {
		cfg.stylesheets = append(cfg.stylesheets, hrefs...)
	}
}

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	components  *components.Registry
	sanitize    func(string) string
	stylesheets []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.sanitizer == nil {
		cfg.sanitizer = DefaultSanitizer()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:   templates,
		components:  cfg.components,
		sanitize:    sanitizeWith(cfg.sanitizer),
		stylesheets: cfg.stylesheets,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the page shell around the current step's markup.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options = options.Normalized()

	body, used, err := r.Body(view, options)
	if err != nil {
		return nil, err
	}

	steps := make([]map[string]any, len(view.Steps))
	for idx, step := range view.Steps {
		title := step.Title
		if title == "" {
			title = fmt.Sprintf("Step %d", idx+1)
		}
		steps[idx] = map[string]any{
			"index":   idx,
			"title":   title,
			"current": idx == view.Index,
		}
	}

	stylesheets := append([]string(nil), r.stylesheets...)
	stylesheets = append(stylesheets, r.components.Stylesheets(used)...)

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"mode":        string(options.Mode),
		"theme":       string(options.Theme),
		"readonly":    options.Readonly,
		"preview":     options.Mode == render.ModePreview,
		"no_steps":    view.NoSteps,
		"steps":       steps,
		"step_id":     view.Step.ID,
		"title":       view.Step.Title,
		"description": view.Step.Description,
		"first":       view.First,
		"last":        view.Last,
		"body":        body,
		"stylesheets": stylesheets,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// Body renders only the node markup of the view and reports which components
// were used.
func (r *Renderer) Body(view render.View, options render.RenderOptions) (string, []string, error) {
	options = options.Normalized()
	var (
		buf  bytes.Buffer
		used []string
		seen = make(map[string]struct{})
	)

	var renderNode func(node render.Node) (string, error)
	renderNode = func(node render.Node) (string, error) {
		name := components.NameOutline
		if options.Mode != render.ModeBuilder {
			name = components.NameFor(r.components, node)
		}
		descriptor, ok := r.components.Descriptor(name)
		if !ok {
			descriptor, ok = r.components.Descriptor(components.NamePlaceholder)
			if !ok {
				return "", fmt.Errorf("html renderer: no component registered for %q", name)
			}
		}
		if _, dup := seen[descriptor.Name]; !dup {
			seen[descriptor.Name] = struct{}{}
			used = append(used, descriptor.Name)
		}

		var out bytes.Buffer
		err := descriptor.Renderer(&out, node, components.ComponentData{
			RenderChild: renderNode,
			Sanitize:    r.sanitize,
			Options:     options,
		})
		if err != nil {
			return "", fmt.Errorf("html renderer: component %q: %w", node.Component.ID, err)
		}
		return out.String(), nil
	}

	for _, node := range view.Nodes {
		markup, err := renderNode(node)
		if err != nil {
			return "", nil, err
		}
		buf.WriteString(markup)
	}
	return buf.String(), used, nil
}
