// Package tui fills a form from the terminal. Run walks the wizard of a
// Session, prompting every visible value-bearing field of the current step
// and offering step navigation until the user submits on the final step.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/registry"
	"github.com/goliatone/go-formcraft/pkg/render"
)

// Name is the renderer name used in render.Registry.
const Name = "tui"

// Session is the mutable form state Run drives. The schema store satisfies
// it.
type Session interface {
	View() render.View
	SetValue(key string, value any) error
	Next() bool
	Previous() bool
	JumpTo(index int) bool
	Submit() (map[string]any, error)
}

// Navigation actions offered after each step.
const (
	ActionNext     = "Next step"
	ActionPrevious = "Previous step"
	ActionJump     = "Jump to step"
	ActionSubmit   = "Submit"
)

// Renderer prompts for values in the terminal and renders views as plain
// text.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		out:          os.Stdout,
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the format of Render output.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes a text summary of the view: the step header and one line per
// node with its bound value, or the component outline in builder mode.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options = options.Normalized()

	var b strings.Builder
	if view.NoSteps {
		b.WriteString("No form steps available\n")
		return []byte(b.String()), nil
	}
	fmt.Fprintf(&b, "Step %d of %d: %s\n", view.Index+1, view.Count, view.Step.Title)
	if view.Step.Description != "" {
		fmt.Fprintf(&b, "%s\n", view.Step.Description)
	}
	for _, node := range view.Nodes {
		writeNode(&b, node, options.Mode, 1)
	}
	return []byte(b.String()), nil
}

func writeNode(b *strings.Builder, node render.Node, mode render.Mode, depth int) {
	indent := strings.Repeat("  ", depth)
	c := node.Component
	title := displayLabel(node)
	if c.Required {
		title += "*"
	}

	switch {
	case node.Kind == render.KindPlaceholder:
		fmt.Fprintf(b, "%s[unsupported component: %s]\n", indent, c.Type)
		return
	case mode == render.ModeBuilder:
		fmt.Fprintf(b, "%s%s (%s)\n", indent, title, c.Type)
	case node.Kind == render.KindContainer:
		fmt.Fprintf(b, "%s%s\n", indent, title)
	case node.BindsValue():
		fmt.Fprintf(b, "%s%s: %s\n", indent, title, displayValue(node))
	default:
		fmt.Fprintf(b, "%s%s\n", indent, title)
	}

	if node.Kind == render.KindContainer {
		if node.Empty {
			empty := "(empty)"
			if mode == render.ModeBuilder {
				empty = "(drop components here)"
			}
			fmt.Fprintf(b, "%s  %s\n", indent, empty)
		}
		for _, child := range node.Children {
			writeNode(b, child, mode, depth+1)
		}
	}
}

func displayValue(node render.Node) string {
	if len(node.Selected) > 0 || node.Descriptor.Value == registry.ValueList {
		return strings.Join(node.Selected, ", ")
	}
	return node.Text()
}

// Run drives session until the user submits on the final step, returning the
// submitted value map.
func (r *Renderer) Run(ctx context.Context, session Session) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if session == nil {
		return nil, ErrNoSession
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		view := session.View()
		if view.NoSteps {
			_ = r.info(ctx, "No form steps available")
			return session.Submit()
		}

		header := fmt.Sprintf("Step %d of %d: %s", view.Index+1, view.Count, view.Step.Title)
		if err := r.info(ctx, header); err != nil {
			return nil, err
		}
		if err := r.fillStep(ctx, session); err != nil {
			return nil, err
		}

		done, values, err := r.navigate(ctx, session)
		if err != nil {
			return nil, err
		}
		if done {
			return values, nil
		}
	}
}

// fillStep prompts each promptable node once. The view is projected again
// after every answer so fields revealed by a conditional rule are reached.
func (r *Renderer) fillStep(ctx context.Context, session Session) error {
	prompted := make(map[string]struct{})
	for {
		next, ok := nextPromptable(session.View(), prompted)
		if !ok {
			return nil
		}
		prompted[next.Component.ID] = struct{}{}
		if err := r.promptNode(ctx, session, next); err != nil {
			return err
		}
	}
}

func nextPromptable(view render.View, prompted map[string]struct{}) (render.Node, bool) {
	var found render.Node
	ok := false
	view.Walk(func(node render.Node) bool {
		if node.Hidden || node.Disabled || !node.BindsValue() {
			return true
		}
		if node.Descriptor.InputType == "hidden" {
			return true
		}
		if _, done := prompted[node.Component.ID]; done {
			return true
		}
		found, ok = node, true
		return false
	})
	return found, ok
}

func (r *Renderer) navigate(ctx context.Context, session Session) (bool, map[string]any, error) {
	view := session.View()
	var actions []string
	if !view.Last {
		actions = append(actions, ActionNext)
	}
	if !view.First {
		actions = append(actions, ActionPrevious)
	}
	if view.Count > 1 {
		actions = append(actions, ActionJump)
	}
	if view.CanSubmit() {
		actions = append(actions, ActionSubmit)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Continue", Options: actions, DefaultIndex: 0})
	if err != nil {
		return false, nil, err
	}
	if idx < 0 || idx >= len(actions) {
		return false, nil, nil
	}

	switch actions[idx] {
	case ActionNext:
		session.Next()
	case ActionPrevious:
		session.Previous()
	case ActionJump:
		titles := make([]string, len(view.Steps))
		for i, step := range view.Steps {
			titles[i] = fmt.Sprintf("%d. %s", i+1, step.Title)
		}
		target, err := r.driver.Select(ctx, SelectConfig{Message: "Go to step", Options: titles, DefaultIndex: view.Index})
		if err != nil {
			return false, nil, err
		}
		session.JumpTo(target)
	case ActionSubmit:
		values, err := session.Submit()
		if err != nil {
			return false, nil, err
		}
		if r.submitTransformer != nil {
			values, err = r.submitTransformer(values)
			if err != nil {
				return false, nil, fmt.Errorf("tui: submit transformer: %w", err)
			}
		}
		return true, values, nil
	}
	return false, nil, nil
}

func (r *Renderer) promptNode(ctx context.Context, session Session, node render.Node) error {
	c := node.Component
	label := displayLabel(node)
	help := displayHelp(node)

	for {
		value, err := r.ask(ctx, node, label, help)
		if err != nil {
			return err
		}
		if problem := checkValue(c, node, value); problem != "" {
			if err := r.fail(ctx, fmt.Sprintf("%s: %s", label, problem)); err != nil {
				return err
			}
			continue
		}
		return session.SetValue(c.Key, value)
	}
}

func (r *Renderer) ask(ctx context.Context, node render.Node, label, help string) (any, error) {
	c := node.Component
	switch {
	case node.Descriptor.Value == registry.ValueBool:
		return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: node.Checked, Help: help})
	case node.Descriptor.Value == registry.ValueList:
		defaults := indicesOf(c.Options, node.Selected)
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: c.Options, Defaults: defaults, Help: help})
		if err != nil {
			return nil, err
		}
		chosen := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(c.Options) {
				chosen = append(chosen, c.Options[idx])
			}
		}
		return applySelection(node.Selected, c.Options, chosen), nil
	case node.Kind == render.KindChoice:
		if len(c.Options) == 0 {
			return node.Text(), nil
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      c.Options,
			DefaultIndex: indexOf(c.Options, node.Text()),
			Help:         help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(c.Options) {
			return "", nil
		}
		return c.Options[idx], nil
	case node.Descriptor.InputType == "password":
		return r.driver.Password(ctx, InputConfig{Message: label, Default: node.Text(), Help: help})
	case node.Descriptor.InputType == "textarea":
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: node.Text(), Help: help})
	default:
		return r.driver.Input(ctx, InputConfig{Message: label, Default: node.Text(), Help: help, Placeholder: c.Placeholder})
	}
}

// applySelection turns the picked options into a sequence of toggles on the
// current selection so untouched entries keep their order.
func applySelection(current, options, chosen []string) []any {
	selection := make([]any, len(current))
	for idx, item := range current {
		selection[idx] = item
	}
	for _, option := range options {
		on := slices.Contains(chosen, option)
		if on == slices.Contains(current, option) {
			continue
		}
		selection = model.ToggleSelection(selection, option, on)
	}
	return selection
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

// Encode serializes submitted values in the configured output format.
func (r *Renderer) Encode(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.MarshalIndent(values, "", "  ")
	}
}

func displayLabel(node render.Node) string {
	if label := strings.TrimSpace(node.Component.Label); label != "" {
		return label
	}
	if node.Component.Key != "" {
		return node.Component.Key
	}
	return node.Component.Type
}

func displayHelp(node render.Node) string {
	c := node.Component
	for _, candidate := range []string{c.HelpText, c.Description, c.Tooltip, c.Placeholder} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, key := range keys {
		switch value := values[key].(type) {
		case []any:
			fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(model.Selection(value), ","))
		default:
			fmt.Fprintf(&b, "%s=%s\n", key, model.ValueString(value))
		}
	}
	return b.String()
}
