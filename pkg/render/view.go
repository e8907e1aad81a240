package render

import (
	"strings"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/registry"
	"github.com/goliatone/go-formcraft/pkg/visibility"
)

// Kind classifies a projected node by how renderers must draw it.
type Kind string

const (
	KindField       Kind = "field"
	KindChoice      Kind = "choice"
	KindAction      Kind = "action"
	KindDisplay     Kind = "display"
	KindContainer   Kind = "container"
	KindPlaceholder Kind = "placeholder"
)

// Node is one component ready for output. Component keeps the schema
// attributes; Children replaces its nested collection.
type Node struct {
	Component  model.FormComponent
	Kind       Kind
	Descriptor registry.Descriptor
	// Value is the bound value, defaulted by value kind, for value-bearing
	// nodes and nil otherwise.
	Value    any
	Selected []string
	Checked  bool
	Hidden   bool
	Disabled bool
	// Empty marks a container without children.
	Empty    bool
	Depth    int
	Children []Node
}

// Text returns the bound value as a string.
func (n Node) Text() string {
	return model.ValueString(n.Value)
}

// IsSelected reports whether option is part of the node's selection.
func (n Node) IsSelected(option string) bool {
	for _, item := range n.Selected {
		if item == option {
			return true
		}
	}
	return false
}

// BindsValue reports whether the node reads and writes the value map.
func (n Node) BindsValue() bool {
	return n.Kind != KindPlaceholder && n.Descriptor.BindsValue()
}

// StepRef names one step for navigation menus.
type StepRef struct {
	ID    string
	Title string
}

// View is the pure projection of (tree, values, step index) that renderers
// consume.
type View struct {
	Step        model.WizardStep
	Index       int
	Count       int
	First       bool
	Last        bool
	Steps       []StepRef
	Nodes       []Node
	Values      map[string]any
	Diagnostics []Diagnostic
	// NoSteps is set for a document with an empty step list.
	NoSteps bool
}

// CanSubmit reports whether submission is offered for this view.
func (v View) CanSubmit() bool {
	return !v.NoSteps && v.Last
}

// Walk visits every projected node in pre-order.
func (v View) Walk(visit func(Node) bool) {
	walkNodes(v.Nodes, visit)
}

func walkNodes(nodes []Node, visit func(Node) bool) bool {
	for _, node := range nodes {
		if !visit(node) {
			return false
		}
		if !walkNodes(node.Children, visit) {
			return false
		}
	}
	return true
}

// ProjectOption customises projection.
type ProjectOption func(*projectConfig)

type projectConfig struct {
	evaluator visibility.Evaluator
	extras    map[string]any
	readonly  bool
	showAll   bool
}

// WithEvaluator overrides the conditional rule evaluator.
func WithEvaluator(eval visibility.Evaluator) ProjectOption {
	return func(cfg *projectConfig) {
		if eval != nil {
			cfg.evaluator = eval
		}
	}
}

// WithExtras passes extra context to the evaluator.
func WithExtras(extras map[string]any) ProjectOption {
	return func(cfg *projectConfig) {
		cfg.extras = extras
	}
}

// WithReadonly marks every node disabled.
func WithReadonly(readonly bool) ProjectOption {
	return func(cfg *projectConfig) {
		cfg.readonly = readonly
	}
}

// WithAllNodes skips conditional evaluation so every node is projected. The
// builder outline uses it.
func WithAllNodes() ProjectOption {
	return func(cfg *projectConfig) {
		cfg.showAll = true
	}
}

// Project walks the current step of doc and binds every node to the value
// map. It never fails: unknown types become placeholders and evaluator
// errors leave the node visible, both reported as diagnostics.
func Project(doc model.FormDocument, reg *registry.Registry, opts ...ProjectOption) View {
	cfg := projectConfig{evaluator: visibility.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if reg == nil {
		reg = registry.NewDefault()
	}

	view := View{
		Count:  len(doc.WizardSteps),
		Values: model.CloneValues(doc.FormValues),
	}
	if view.Count == 0 {
		view.NoSteps = true
		return view
	}

	index := doc.CurrentStepIndex
	if index < 0 {
		index = 0
	}
	if index >= view.Count {
		index = view.Count - 1
	}
	view.Index = index
	view.First = index == 0
	view.Last = index == view.Count-1
	for _, step := range doc.WizardSteps {
		view.Steps = append(view.Steps, StepRef{ID: step.ID, Title: step.Title})
	}

	step := doc.WizardSteps[index]
	view.Step = model.WizardStep{ID: step.ID, Title: step.Title, Description: step.Description}

	p := projector{cfg: cfg, reg: reg, values: view.Values}
	view.Nodes = p.nodes(step.Components, 0)
	view.Diagnostics = p.diagnostics
	return view
}

type projector struct {
	cfg         projectConfig
	reg         *registry.Registry
	values      map[string]any
	diagnostics []Diagnostic
}

func (p *projector) nodes(components []model.FormComponent, depth int) []Node {
	out := make([]Node, 0, len(components))
	for _, component := range components {
		if !p.visible(component) {
			continue
		}
		out = append(out, p.node(component, depth))
	}
	return out
}

func (p *projector) visible(component model.FormComponent) bool {
	if p.cfg.showAll {
		return true
	}
	ok, err := p.cfg.evaluator.Eval(component, visibility.Context{Values: p.values, Extras: p.cfg.extras})
	if err != nil {
		p.diagnostics = append(p.diagnostics, Diagnostic{ComponentID: component.ID, Type: component.Type, Err: err})
		return true
	}
	return ok
}

func (p *projector) node(component model.FormComponent, depth int) Node {
	node := Node{
		Component: component,
		Hidden:    component.Hidden,
		Disabled:  component.Disabled || p.cfg.readonly,
		Depth:     depth,
	}
	node.Component.Components = nil

	d, ok := p.reg.Lookup(component.Type)
	if !ok {
		node.Kind = KindPlaceholder
		p.diagnostics = append(p.diagnostics, Diagnostic{
			ComponentID: component.ID,
			Type:        component.Type,
			Err:         ErrUnknownComponentType,
		})
		return node
	}
	node.Descriptor = d

	switch d.Family {
	case registry.FamilyContainer:
		node.Kind = KindContainer
		node.Children = p.nodes(component.Components, depth+1)
		node.Empty = len(component.Components) == 0
		return node
	case registry.FamilyAction:
		node.Kind = KindAction
		return node
	case registry.FamilyDisplay:
		node.Kind = KindDisplay
		return node
	case registry.FamilyChoice:
		node.Kind = KindChoice
	default:
		node.Kind = KindField
	}

	value, bound := p.values[component.Key]
	if !bound || value == nil {
		value = component.DefaultValue
	}
	switch d.Value {
	case registry.ValueList:
		node.Selected = model.Selection(value)
		list := make([]any, len(node.Selected))
		for idx, item := range node.Selected {
			list[idx] = item
		}
		node.Value = list
	case registry.ValueBool:
		node.Checked = truthy(value)
		node.Value = node.Checked
	default:
		if value == nil {
			value = d.DefaultValue()
		}
		node.Value = value
	}
	return node
}

func truthy(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case nil:
		return false
	default:
		return strings.EqualFold(model.ValueString(typed), "true")
	}
}
