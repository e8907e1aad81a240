package registry

import "github.com/goliatone/go-formcraft/pkg/model"

// Palette categories.
const (
	CategoryBasic     = "Basic Input"
	CategoryAdvanced  = "Advanced"
	CategorySelection = "Selection"
	CategoryLayout    = "Layout"
	CategoryActions   = "Actions"
)

// Built-in type tags.
const (
	TypeTextField   = "textfield"
	TypeTextArea    = "textarea"
	TypeNumber      = "number"
	TypePassword    = "password"
	TypeEmail       = "email"
	TypeURL         = "url"
	TypePhone       = "phone"
	TypeTags        = "tags"
	TypeAddress     = "address"
	TypeDate        = "date"
	TypeDay         = "day"
	TypeTime        = "time"
	TypeCurrency    = "currency"
	TypeSignature   = "signature"
	TypeFile        = "file"
	TypeHidden      = "hidden"
	TypeContent     = "content"
	TypeHTMLElement = "htmlelement"
	TypeSelect      = "select"
	TypeRadio       = "radio"
	TypeSelectBoxes = "selectboxes"
	TypeCheckbox    = "checkbox"
	TypePanel       = "panel"
	TypeTable       = "table"
	TypeColumns     = "columns"
	TypeFieldset    = "fieldset"
	TypeWell        = "well"
	TypeTabs        = "tabs"
	TypeButton      = "button"
	TypeSubmit      = "submit"
	TypeReset       = "reset"
)

// NewDefault constructs a registry with the built-in type catalog registered.
func NewDefault() *Registry {
	reg := New()
	reg.registerBuiltins()
	return reg
}

func (r *Registry) registerBuiltins() {
	leaf := func(typ, label, category, input string) {
		r.MustRegister(Descriptor{
			Type:      typ,
			Label:     label,
			Category:  category,
			Family:    FamilyValue,
			Value:     ValueString,
			InputType: input,
		})
	}

	leaf(TypeTextField, "Text Field", CategoryBasic, "text")
	leaf(TypeTextArea, "Text Area", CategoryBasic, "textarea")
	leaf(TypeNumber, "Number", CategoryBasic, "number")
	leaf(TypePassword, "Password", CategoryBasic, "password")
	leaf(TypeEmail, "Email", CategoryBasic, "email")
	leaf(TypeURL, "URL", CategoryBasic, "url")
	leaf(TypePhone, "Phone Number", CategoryBasic, "tel")
	leaf(TypeTags, "Tags", CategoryBasic, "text")
	leaf(TypeAddress, "Address", CategoryBasic, "text")
	leaf(TypeDate, "Date / Time", CategoryBasic, "date")
	leaf(TypeDay, "Day", CategoryBasic, "date")
	leaf(TypeTime, "Time", CategoryBasic, "time")
	leaf(TypeCurrency, "Currency", CategoryBasic, "number")

	leaf(TypeSignature, "Signature", CategoryAdvanced, "text")
	leaf(TypeFile, "File", CategoryAdvanced, "file")
	r.MustRegister(Descriptor{
		Type: TypeContent, Label: "Content", Category: CategoryAdvanced, Family: FamilyDisplay,
	})
	r.MustRegister(Descriptor{
		Type: TypeHTMLElement, Label: "HTML Element", Category: CategoryAdvanced, Family: FamilyDisplay,
	})
	leaf(TypeHidden, "Hidden", CategoryAdvanced, "hidden")

	choice := func(typ, label string, value ValueKind, withOptions bool) {
		d := Descriptor{
			Type:     typ,
			Label:    label,
			Category: CategorySelection,
			Family:   FamilyChoice,
			Value:    value,
		}
		if withOptions {
			d.Shape = withDefaultOptions
		}
		r.MustRegister(d)
	}
	choice(TypeSelect, "Select", ValueString, true)
	choice(TypeRadio, "Radio", ValueString, true)
	choice(TypeSelectBoxes, "Select Boxes", ValueList, true)
	choice(TypeCheckbox, "Checkbox", ValueBool, false)

	container := func(typ, label string) {
		r.MustRegister(Descriptor{
			Type: typ, Label: label, Category: CategoryLayout, Family: FamilyContainer,
		})
	}
	container(TypePanel, "Panel")
	container(TypeTable, "Table")
	container(TypeColumns, "Columns")
	container(TypeFieldset, "Field Set")
	container(TypeWell, "Well")
	container(TypeTabs, "Tabs")

	action := func(typ, label string) {
		r.MustRegister(Descriptor{
			Type: typ, Label: label, Category: CategoryActions, Family: FamilyAction,
		})
	}
	action(TypeButton, "Button")
	action(TypeSubmit, "Submit")
	action(TypeReset, "Reset")
}

func withDefaultOptions(base model.FormComponent) model.FormComponent {
	base.Options = []string{"Option 1", "Option 2"}
	return base
}
