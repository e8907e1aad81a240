package components

import (
	"github.com/goliatone/go-formcraft/pkg/registry"
	"github.com/goliatone/go-formcraft/pkg/render"
)

// Built-in component names.
const (
	NameInput       = "input"
	NameTextArea    = "textarea"
	NameSelect      = "select"
	NameRadio       = "radio"
	NameCheckbox    = "checkbox"
	NameSelectBoxes = "selectboxes"
	NameButton      = "button"
	NameContent     = "content"
	NameHTML        = "htmlelement"
	NameContainer   = "container"
	NamePlaceholder = "placeholder"
	NameOutline     = "outline"
)

// NameFor picks the component that draws node in fill mode. A component
// registered under the node's exact type tag takes precedence.
func NameFor(reg *Registry, node render.Node) string {
	if node.Kind != render.KindPlaceholder && reg != nil {
		if _, ok := reg.Descriptor(node.Component.Type); ok {
			return node.Descriptor.Type
		}
	}
	switch node.Kind {
	case render.KindContainer:
		return NameContainer
	case render.KindAction:
		return NameButton
	case render.KindDisplay:
		if node.Descriptor.Type == registry.TypeHTMLElement {
			return NameHTML
		}
		return NameContent
	case render.KindChoice:
		switch node.Descriptor.Type {
		case registry.TypeSelect:
			return NameSelect
		case registry.TypeRadio:
			return NameRadio
		}
		if node.Descriptor.Value == registry.ValueList {
			return NameSelectBoxes
		}
		return NameCheckbox
	case render.KindField:
		if node.Descriptor.Type == registry.TypeTextArea {
			return NameTextArea
		}
		return NameInput
	default:
		return NamePlaceholder
	}
}
