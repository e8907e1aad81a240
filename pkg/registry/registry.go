package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formcraft/pkg/model"
)

// Family groups type tags that share a rendering contract.
type Family string

const (
	FamilyValue     Family = "value"
	FamilyChoice    Family = "choice"
	FamilyAction    Family = "action"
	FamilyDisplay   Family = "display"
	FamilyContainer Family = "container"
)

// ValueKind describes the shape of the value a field binds into the value map.
type ValueKind string

const (
	ValueNone   ValueKind = ""
	ValueString ValueKind = "string"
	ValueBool   ValueKind = "bool"
	ValueList   ValueKind = "list"
)

// ShapeFunc customises the default shape of a freshly created component. The
// base already carries id, type, key, label and position.
type ShapeFunc func(base model.FormComponent) model.FormComponent

// Descriptor is the capability contract registered for a type tag.
type Descriptor struct {
	Type     string
	Label    string
	Category string
	Family   Family
	Value    ValueKind
	// InputType is the native input hint renderers use for value leaves
	// ("text", "email", "date", ...).
	InputType string
	Shape     ShapeFunc
}

// IsContainer reports whether nodes of this type may hold nested components.
func (d Descriptor) IsContainer() bool {
	return d.Family == FamilyContainer
}

// BindsValue reports whether nodes of this type read and write the value map.
func (d Descriptor) BindsValue() bool {
	return d.Value != ValueNone
}

// DefaultValue is the value a bound field shows before the user touches it.
func (d Descriptor) DefaultValue() any {
	switch d.Value {
	case ValueBool:
		return false
	case ValueList:
		return []any{}
	case ValueString:
		return ""
	default:
		return nil
	}
}

// Category is one palette group, in registration order.
type Category struct {
	Name  string
	Types []Descriptor
}

// Registry maps type tags to descriptors. Tags are matched case-insensitively
// after trimming. Unknown tags never resolve; callers degrade to a placeholder.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
	order       []string
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds or replaces the descriptor for d.Type.
func (r *Registry) Register(d Descriptor) error {
	if r == nil {
		return fmt.Errorf("registry: registry is nil")
	}
	name := normalize(d.Type)
	if name == "" {
		return fmt.Errorf("registry: type tag is required")
	}
	switch d.Family {
	case FamilyValue, FamilyChoice:
		if d.Value == ValueNone {
			return fmt.Errorf("registry: %q binds no value but is a %s leaf", name, d.Family)
		}
	case FamilyAction, FamilyDisplay, FamilyContainer:
		if d.Value != ValueNone {
			return fmt.Errorf("registry: %s type %q cannot bind a value", d.Family, name)
		}
	default:
		return fmt.Errorf("registry: unknown family %q for %q", d.Family, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d.Type = name
	if _, exists := r.descriptors[name]; !exists {
		r.order = append(r.order, name)
	}
	r.descriptors[name] = d
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup fetches the descriptor for a type tag.
func (r *Registry) Lookup(typ string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[normalize(typ)]
	return d, ok
}

// IsContainer reports whether typ is a registered container type.
func (r *Registry) IsContainer(typ string) bool {
	d, ok := r.Lookup(typ)
	return ok && d.IsContainer()
}

// Types returns the registered tags sorted alphabetically.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := slices.Clone(r.order)
	slices.Sort(names)
	return names
}

// Palette groups descriptors by category in registration order.
func (r *Registry) Palette() []Category {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Category
	index := make(map[string]int)
	for _, name := range r.order {
		d := r.descriptors[name]
		category := d.Category
		if category == "" {
			category = "Other"
		}
		pos, ok := index[category]
		if !ok {
			pos = len(out)
			index[category] = pos
			out = append(out, Category{Name: category})
		}
		out[pos].Types = append(out[pos].Types, d)
	}
	return out
}

// Shape builds the default component for typ. Unregistered tags still get a
// generic leaf so palette entries without a contract can be placed; renderers
// show them as placeholders.
func (r *Registry) Shape(typ, id, key string) model.FormComponent {
	base := model.FormComponent{
		ID:       id,
		Type:     typ,
		Key:      key,
		Label:    "New " + typ,
		Position: model.PositionTop,
	}
	d, ok := r.Lookup(typ)
	if !ok {
		return base
	}
	base.Type = d.Type
	base.Label = "New " + d.Type
	if d.Family == FamilyValue || d.Family == FamilyChoice {
		base.Placeholder = "Enter " + d.Type
	}
	if d.IsContainer() {
		base.Components = []model.FormComponent{}
	}
	if d.Shape != nil {
		base = d.Shape(base)
	}
	return base
}

// Normalize enforces structural containment on a decoded tree: containers get
// a non-nil collection and leaves lose any nested components. Unknown types
// keep whatever they carry so a later registration can still render them.
func (r *Registry) Normalize(components []model.FormComponent) []model.FormComponent {
	for idx := range components {
		node := &components[idx]
		d, ok := r.Lookup(node.Type)
		switch {
		case ok && d.IsContainer():
			if node.Components == nil {
				node.Components = []model.FormComponent{}
			}
			node.Components = r.Normalize(node.Components)
		case ok:
			node.Components = nil
		default:
			node.Components = r.Normalize(node.Components)
		}
	}
	return components
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cloned := New()
	for _, name := range r.order {
		cloned.descriptors[name] = r.descriptors[name]
	}
	cloned.order = slices.Clone(r.order)
	return cloned
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
