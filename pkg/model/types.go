package model

// Position controls where a field label is drawn relative to its control.
type Position string

const (
	PositionTop    Position = "top"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionBottom Position = "bottom"
)

// TextCase describes the casing transformation declared for text inputs.
type TextCase string

const (
	TextCaseMixed     TextCase = "mixed"
	TextCaseUppercase TextCase = "uppercase"
	TextCaseLowercase TextCase = "lowercase"
)

// Conditional is a per-node visibility rule: when Show is true the node is
// only displayed while the value stored under When equals Eq.
type Conditional struct {
	Show bool   `json:"show" mapstructure:"show"`
	When string `json:"when" mapstructure:"when"`
	Eq   string `json:"eq" mapstructure:"eq"`
}

// FormComponent is a single node of the schema tree. Whether a node may hold
// Components is decided by the type registry, not by the presence of the
// slice.
type FormComponent struct {
	ID   string `json:"id" mapstructure:"id"`
	Type string `json:"type" mapstructure:"type"`
	Key  string `json:"key" mapstructure:"key"`

	Label       string   `json:"label" mapstructure:"label"`
	Description string   `json:"description,omitempty" mapstructure:"description"`
	Tooltip     string   `json:"tooltip,omitempty" mapstructure:"tooltip"`
	Placeholder string   `json:"placeholder,omitempty" mapstructure:"placeholder"`
	HelpText    string   `json:"helpText,omitempty" mapstructure:"helpText"`
	Position    Position `json:"position,omitempty" mapstructure:"position"`
	CustomClass string   `json:"customClass,omitempty" mapstructure:"customClass"`
	Title       string   `json:"title,omitempty" mapstructure:"title"`
	Legend      string   `json:"legend,omitempty" mapstructure:"legend"`
	Content     string   `json:"content,omitempty" mapstructure:"content"`
	HTML        string   `json:"html,omitempty" mapstructure:"html"`
	Prefix      string   `json:"prefix,omitempty" mapstructure:"prefix"`
	Suffix      string   `json:"suffix,omitempty" mapstructure:"suffix"`
	TextCase    TextCase `json:"textCase,omitempty" mapstructure:"textCase"`

	Required    bool `json:"required" mapstructure:"required"`
	Hidden      bool `json:"hidden,omitempty" mapstructure:"hidden"`
	HiddenLabel bool `json:"hiddenLabel,omitempty" mapstructure:"hiddenLabel"`
	Disabled    bool `json:"disabled,omitempty" mapstructure:"disabled"`
	Multiple    bool `json:"multiple,omitempty" mapstructure:"multiple"`
	Collapsible bool `json:"collapsible,omitempty" mapstructure:"collapsible"`

	MinLength          *int   `json:"minLength,omitempty" mapstructure:"minLength"`
	MaxLength          *int   `json:"maxLength,omitempty" mapstructure:"maxLength"`
	MinWords           *int   `json:"minWords,omitempty" mapstructure:"minWords"`
	MaxWords           *int   `json:"maxWords,omitempty" mapstructure:"maxWords"`
	CustomErrorMessage string `json:"customErrorMessage,omitempty" mapstructure:"customErrorMessage"`

	Conditional  *Conditional `json:"conditional,omitempty" mapstructure:"conditional"`
	Options      []string     `json:"options,omitempty" mapstructure:"options"`
	DefaultValue any          `json:"defaultValue,omitempty" mapstructure:"defaultValue"`

	Components []FormComponent `json:"components,omitempty" mapstructure:"components"`
}

// WizardStep is one page of a multi-step form.
type WizardStep struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Components  []FormComponent `json:"components"`
}

// FormDocument is the complete state exchanged with the host.
type FormDocument struct {
	WizardSteps      []WizardStep   `json:"wizardSteps"`
	FormValues       map[string]any `json:"formValues"`
	CurrentStepIndex int            `json:"currentStepIndex"`
}

// Patch names the FormComponent attributes to replace, keyed by their JSON
// names. Values replace the current attribute wholesale; a nil value clears it.
type Patch map[string]any

// StepPatch updates the editable attributes of a WizardStep. Nil fields are
// left untouched.
type StepPatch struct {
	Title       *string
	Description *string
}

// CurrentStep returns the step addressed by CurrentStepIndex.
func (d FormDocument) CurrentStep() (WizardStep, bool) {
	if d.CurrentStepIndex < 0 || d.CurrentStepIndex >= len(d.WizardSteps) {
		return WizardStep{}, false
	}
	return d.WizardSteps[d.CurrentStepIndex], true
}

// LastIndex reports the index of the final step, or -1 for an empty document.
func (d FormDocument) LastIndex() int {
	return len(d.WizardSteps) - 1
}

// ClampIndex restores 0 <= CurrentStepIndex <= LastIndex. An empty document is
// pinned to index 0.
func (d *FormDocument) ClampIndex() {
	if d == nil {
		return
	}
	last := d.LastIndex()
	switch {
	case last < 0:
		d.CurrentStepIndex = 0
	case d.CurrentStepIndex > last:
		d.CurrentStepIndex = last
	case d.CurrentStepIndex < 0:
		d.CurrentStepIndex = 0
	}
}
