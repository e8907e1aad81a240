package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/registry"
	"github.com/goliatone/go-formcraft/pkg/render"
)

// Empty-state messages for containers.
const (
	DropHint     = "Drop components here"
	EmptyMessage = "No components"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the HTML renderer.
func NewDefaultRegistry() *Registry {
	reg := New()

	reg.MustRegister(NameInput, Descriptor{Renderer: fieldRenderer(inputControl)})
	reg.MustRegister(NameTextArea, Descriptor{Renderer: fieldRenderer(textareaControl)})
	reg.MustRegister(NameSelect, Descriptor{Renderer: fieldRenderer(selectControl)})
	reg.MustRegister(NameRadio, Descriptor{Renderer: groupRenderer("radio")})
	reg.MustRegister(NameSelectBoxes, Descriptor{Renderer: groupRenderer("checkbox")})
	reg.MustRegister(NameCheckbox, Descriptor{Renderer: checkboxRenderer})
	reg.MustRegister(NameButton, Descriptor{Renderer: buttonRenderer})
	reg.MustRegister(NameContent, Descriptor{Renderer: displayRenderer(func(c model.FormComponent) string { return c.Content })})
	reg.MustRegister(NameHTML, Descriptor{Renderer: displayRenderer(func(c model.FormComponent) string { return c.HTML })})
	reg.MustRegister(NameContainer, Descriptor{Renderer: containerRenderer})
	reg.MustRegister(NamePlaceholder, Descriptor{Renderer: placeholderRenderer})
	reg.MustRegister(NameOutline, Descriptor{Renderer: outlineRenderer})

	return reg
}

type controlFunc func(buf *bytes.Buffer, node render.Node)

// fieldRenderer wraps a control with the shared label, prefix/suffix,
// description and help text chrome.
func fieldRenderer(control controlFunc) Renderer {
	return func(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
		c := node.Component
		if node.Descriptor.Type == registry.TypeHidden {
			open(buf, "input", *(&attrs{}).set("type", "hidden").set("id", ControlID(node)).set("name", c.Key).set("value", node.Text()))
			return nil
		}

		openField(buf, node)
		if !c.HiddenLabel {
			labelAttrs := attrs{}
			labelAttrs.set("for", ControlID(node)).set("class", "formcraft-label").set("title", c.Tooltip)
			open(buf, "label", labelAttrs)
			text(buf, label(node))
			if c.Required {
				buf.WriteString(`<span class="formcraft-required" aria-hidden="true">*</span>`)
			}
			closeTag(buf, "label")
		}
		if c.Prefix != "" {
			element(buf, "span", attrs{{name: "class", value: "formcraft-prefix"}}, c.Prefix)
		}
		control(buf, node)
		if c.Suffix != "" {
			element(buf, "span", attrs{{name: "class", value: "formcraft-suffix"}}, c.Suffix)
		}
		closeField(buf, node)
		return nil
	}
}

func openField(buf *bytes.Buffer, node render.Node) {
	c := node.Component
	position := c.Position
	if position == "" {
		position = model.PositionTop
	}
	list := attrs{}
	list.set("class", classes(
		"formcraft-field",
		"formcraft-field--"+c.Type,
		"formcraft-label--"+string(position),
		c.CustomClass,
	))
	list.set("data-component-id", c.ID).set("data-key", c.Key).flag("hidden", node.Hidden)
	open(buf, "div", list)
}

func closeField(buf *bytes.Buffer, node render.Node) {
	c := node.Component
	if c.Description != "" {
		element(buf, "p", attrs{{name: "class", value: "formcraft-description"}}, c.Description)
	}
	if c.HelpText != "" {
		element(buf, "p", attrs{{name: "class", value: "formcraft-help"}}, c.HelpText)
	}
	closeTag(buf, "div")
}

// constraintAttrs declares the native validation attributes; the engine does
// not enforce them.
func constraintAttrs(list *attrs, node render.Node) {
	c := node.Component
	list.flag("required", c.Required).int("minlength", c.MinLength).int("maxlength", c.MaxLength)
	if c.CustomErrorMessage != "" {
		list.set("data-error-message", c.CustomErrorMessage)
	}
	list.flag("disabled", node.Disabled)
}

func inputControl(buf *bytes.Buffer, node render.Node) {
	c := node.Component
	inputType := node.Descriptor.InputType
	if inputType == "" {
		inputType = "text"
	}
	list := attrs{}
	list.set("type", inputType).set("id", ControlID(node)).set("name", c.Key)
	if inputType != "file" {
		list = append(list, attr{name: "value", value: node.Text()})
	}
	list.set("placeholder", c.Placeholder).set("aria-label", ariaLabel(node))
	if c.TextCase != "" && c.TextCase != model.TextCaseMixed {
		list.set("data-text-case", string(c.TextCase))
	}
	constraintAttrs(&list, node)
	open(buf, "input", list)
}

func textareaControl(buf *bytes.Buffer, node render.Node) {
	c := node.Component
	list := attrs{}
	list.set("id", ControlID(node)).set("name", c.Key).set("placeholder", c.Placeholder).set("rows", "3").set("aria-label", ariaLabel(node))
	constraintAttrs(&list, node)
	element(buf, "textarea", list, node.Text())
}

func selectControl(buf *bytes.Buffer, node render.Node) {
	c := node.Component
	list := attrs{}
	list.set("id", ControlID(node)).set("name", c.Key).set("aria-label", ariaLabel(node))
	list.flag("required", c.Required).flag("disabled", node.Disabled)
	open(buf, "select", list)

	prompt := c.Placeholder
	if prompt == "" {
		prompt = "Select an option"
	}
	element(buf, "option", attrs{{name: "value", value: ""}}, prompt)
	current := node.Text()
	for _, option := range c.Options {
		optionAttrs := attrs{{name: "value", value: option}}
		optionAttrs.flag("selected", option == current)
		element(buf, "option", optionAttrs, option)
	}
	closeTag(buf, "select")
}

func ariaLabel(node render.Node) string {
	if node.Component.HiddenLabel {
		return label(node)
	}
	return ""
}

// groupRenderer draws radio groups and select boxes: one input per option,
// all sharing the field key.
func groupRenderer(inputType string) Renderer {
	return func(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
		c := node.Component
		openField(buf, node)
		list := attrs{}
		list.set("class", "formcraft-options").set("id", ControlID(node))
		if inputType == "radio" {
			list.set("role", "radiogroup")
		} else {
			list.set("role", "group")
		}
		open(buf, "fieldset", list)
		if !c.HiddenLabel {
			open(buf, "legend", attrs{{name: "class", value: "formcraft-label"}})
			text(buf, label(node))
			if c.Required {
				buf.WriteString(`<span class="formcraft-required" aria-hidden="true">*</span>`)
			}
			closeTag(buf, "legend")
		}
		current := node.Text()
		for _, option := range c.Options {
			checked := option == current
			if inputType == "checkbox" {
				checked = node.IsSelected(option)
			}
			open(buf, "label", attrs{{name: "class", value: "formcraft-option"}})
			input := attrs{}
			input.set("type", inputType).set("name", c.Key).set("value", option)
			input.flag("checked", checked)
			input.flag("required", c.Required && inputType == "radio").flag("disabled", node.Disabled)
			open(buf, "input", input)
			buf.WriteByte(' ')
			text(buf, option)
			closeTag(buf, "label")
		}
		closeTag(buf, "fieldset")
		closeField(buf, node)
		return nil
	}
}

func checkboxRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	c := node.Component
	openField(buf, node)
	open(buf, "label", attrs{{name: "class", value: "formcraft-option"}, {name: "for", value: ControlID(node)}})
	input := attrs{}
	input.set("type", "checkbox").set("id", ControlID(node)).set("name", c.Key).set("value", "true")
	input.flag("checked", node.Checked).flag("required", c.Required).flag("disabled", node.Disabled)
	open(buf, "input", input)
	buf.WriteByte(' ')
	text(buf, label(node))
	closeTag(buf, "label")
	closeField(buf, node)
	return nil
}

func buttonRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	c := node.Component
	kind := "button"
	switch node.Descriptor.Type {
	case registry.TypeSubmit:
		kind = "submit"
	case registry.TypeReset:
		kind = "reset"
	}
	list := attrs{}
	list.set("type", kind).set("class", classes("formcraft-button", "formcraft-button--"+kind, c.CustomClass))
	list.set("data-component-id", c.ID).set("title", c.Tooltip)
	list.flag("disabled", node.Disabled).flag("hidden", node.Hidden)
	element(buf, "button", list, label(node))
	return nil
}

func displayRenderer(markup func(model.FormComponent) string) Renderer {
	return func(buf *bytes.Buffer, node render.Node, data ComponentData) error {
		body := markup(node.Component)
		if strings.TrimSpace(body) == "" {
			body = node.Component.Content
		}
		list := attrs{}
		list.set("class", classes("formcraft-content", "formcraft-content--"+node.Component.Type, node.Component.CustomClass))
		list.set("data-component-id", node.Component.ID).flag("hidden", node.Hidden)
		open(buf, "div", list)
		if data.Sanitize != nil {
			buf.WriteString(data.Sanitize(body))
		} else {
			text(buf, body)
		}
		closeTag(buf, "div")
		return nil
	}
}

func containerRenderer(buf *bytes.Buffer, node render.Node, data ComponentData) error {
	c := node.Component
	list := attrs{}
	list.set("class", classes("formcraft-container", "formcraft-container--"+c.Type, c.CustomClass))
	list.set("data-component-id", c.ID).flag("hidden", node.Hidden)
	if c.Collapsible {
		list.set("data-collapsible", "true")
	}
	open(buf, "fieldset", list)

	legend := c.Legend
	if legend == "" {
		legend = c.Title
	}
	if legend == "" {
		legend = c.Label
	}
	if legend != "" {
		element(buf, "legend", attrs{{name: "class", value: "formcraft-legend"}}, legend)
	}
	if c.Description != "" {
		element(buf, "p", attrs{{name: "class", value: "formcraft-description"}}, c.Description)
	}
	if err := writeChildren(buf, node, data, EmptyMessage); err != nil {
		return err
	}
	closeTag(buf, "fieldset")
	return nil
}

func writeChildren(buf *bytes.Buffer, node render.Node, data ComponentData, emptyText string) error {
	if node.Empty {
		element(buf, "div", attrs{{name: "class", value: "formcraft-empty"}, {name: "data-empty", value: "true"}}, emptyText)
		return nil
	}
	if data.RenderChild == nil {
		return fmt.Errorf("components: child renderer not configured for %q", node.Component.ID)
	}
	for _, child := range node.Children {
		markup, err := data.RenderChild(child)
		if err != nil {
			return err
		}
		buf.WriteString(markup)
	}
	return nil
}

func placeholderRenderer(buf *bytes.Buffer, node render.Node, _ ComponentData) error {
	typ := node.Component.Type
	if strings.TrimSpace(typ) == "" {
		typ = "(none)"
	}
	list := attrs{}
	list.set("class", "formcraft-placeholder").set("role", "note")
	list.set("data-component-id", node.Component.ID).set("data-type", node.Component.Type)
	element(buf, "div", list, "Unsupported component: "+typ)
	return nil
}

// outlineRenderer draws the builder view of a node: label, type and badges,
// with containers exposing a drop zone.
func outlineRenderer(buf *bytes.Buffer, node render.Node, data ComponentData) error {
	c := node.Component
	list := attrs{}
	list.set("class", classes("formcraft-outline-item", "formcraft-outline-item--"+string(node.Kind)))
	list.set("data-component-id", c.ID).set("data-type", c.Type)
	open(buf, "div", list)

	open(buf, "div", attrs{{name: "class", value: "formcraft-outline-header"}})
	element(buf, "span", attrs{{name: "class", value: "formcraft-outline-label"}}, label(node))
	element(buf, "span", attrs{{name: "class", value: "formcraft-outline-type"}}, c.Type)
	badge := func(name string) {
		element(buf, "span", attrs{{name: "class", value: "formcraft-badge formcraft-badge--" + strings.ToLower(name)}}, name)
	}
	if c.Required {
		badge("Required")
	}
	if c.Hidden {
		badge("Hidden")
	}
	if c.Conditional != nil && c.Conditional.Show {
		badge("Conditional")
	}
	if node.Kind == render.KindPlaceholder {
		badge("Unsupported")
	}
	closeTag(buf, "div")

	if node.Kind == render.KindContainer {
		open(buf, "div", attrs{{name: "class", value: "formcraft-dropzone"}, {name: "data-parent-id", value: c.ID}})
		if err := writeChildren(buf, node, data, DropHint); err != nil {
			return err
		}
		closeTag(buf, "div")
	}
	closeTag(buf, "div")
	return nil
}
