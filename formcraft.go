// Package formcraft is the entry point for embedding the form engine: decode
// a document, edit it through a Store, and render it through a host
// Component.
package formcraft

import (
	"context"

	"github.com/goliatone/go-formcraft/pkg/codec"
	"github.com/goliatone/go-formcraft/pkg/host"
	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/render"
	"github.com/goliatone/go-formcraft/pkg/store"
)

// Document is the complete serialized state: steps, values and current step.
type Document = model.FormDocument

// Component is one node of the schema tree.
type Component = model.FormComponent

// Step is one wizard page.
type Step = model.WizardStep

// Patch names component attributes to replace.
type Patch = model.Patch

// RenderOptions carries mode, readonly and theme.
type RenderOptions = render.RenderOptions

// HostConfig aliases host.Config.
type HostConfig = host.Config

// Presentation modes.
const (
	ModeBuilder  = render.ModeBuilder
	ModeRenderer = render.ModeRenderer
	ModePreview  = render.ModePreview
)

// NewStore returns an empty store configured with options.
func NewStore(options ...store.Option) *store.Store {
	return store.New(options...)
}

// NewHost builds a host component; the HTML renderer is used unless an
// option selects another.
func NewHost(cfg HostConfig, options ...host.Option) (*host.Component, error) {
	return host.New(cfg, options...)
}

// Decode parses a complete document. Missing top-level fields take their
// empty values.
func Decode(text string) (Document, error) {
	payload, err := codec.DecodeString(text)
	if err != nil {
		return Document{}, err
	}
	return payload.Document(), nil
}

// Encode serializes doc to its canonical JSON text.
func Encode(doc Document) (string, error) {
	return codec.EncodeString(doc)
}

// RenderHTML decodes text and renders its current step as HTML. It is the
// simplest entry point for callers that just want markup.
func RenderHTML(ctx context.Context, text string, options RenderOptions) ([]byte, error) {
	component, err := host.New(host.Config{
		Mode:     string(options.Mode),
		Theme:    string(options.Theme),
		Readonly: options.Readonly,
	})
	if err != nil {
		return nil, err
	}
	if err := component.SetData(text); err != nil {
		return nil, err
	}
	return component.Render(ctx)
}
