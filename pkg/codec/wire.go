package codec

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/goliatone/go-formcraft/pkg/model"
)

// componentFields shares the model's field set and JSON names without its
// methods; wire types embed it and shadow the attributes that need special
// handling.
type componentFields model.FormComponent

type wireConditional struct {
	Show any    `json:"show"`
	When string `json:"when"`
	Eq   any    `json:"eq"`
}

type wireComponent struct {
	componentFields
	Conditional *wireConditional  `json:"conditional"`
	Components  []wireComponent   `json:"components"`
	Children    []wireComponent   `json:"children"`
	Columns     []wireColumn      `json:"columns"`
	Rows        [][]wireComponent `json:"rows"`
}

// wireColumn accepts either a bare component array or a column object.
type wireColumn struct {
	Components []wireComponent
}

func (c *wireColumn) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &c.Components)
	}
	var column struct {
		Components []wireComponent `json:"components"`
		Width      any             `json:"width"`
	}
	if err := json.Unmarshal(trimmed, &column); err != nil {
		return err
	}
	c.Components = column.Components
	return nil
}

type wireStep struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Components  []wireComponent `json:"components"`
	Children    []wireComponent `json:"children"`
}

func (w wireComponent) model() model.FormComponent {
	out := model.FormComponent(w.componentFields)
	out.Conditional = w.Conditional.model()

	var nested []model.FormComponent
	present := false
	add := func(items []wireComponent) {
		if items == nil {
			return
		}
		present = true
		for _, item := range items {
			nested = append(nested, item.model())
		}
	}
	add(w.Components)
	add(w.Children)
	for _, column := range w.Columns {
		add(column.Components)
	}
	if w.Columns != nil {
		present = true
	}
	for _, row := range w.Rows {
		add(row)
	}
	if w.Rows != nil {
		present = true
	}
	if present && nested == nil {
		nested = []model.FormComponent{}
	}
	out.Components = nested
	return out
}

func (c *wireConditional) model() *model.Conditional {
	if c == nil {
		return nil
	}
	rule := &model.Conditional{When: c.When, Eq: model.ValueString(c.Eq)}
	switch show := c.Show.(type) {
	case bool:
		rule.Show = show
	case string:
		rule.Show, _ = strconv.ParseBool(show)
	}
	return rule
}

func (s wireStep) model() model.WizardStep {
	out := model.WizardStep{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Components:  []model.FormComponent{},
	}
	for _, items := range [][]wireComponent{s.Components, s.Children} {
		for _, item := range items {
			out.Components = append(out.Components, item.model())
		}
	}
	return out
}

// outComponent is the canonical encoding: a pointer collection keeps the
// difference between an absent and an empty nested list.
type outComponent struct {
	componentFields
	Components *[]outComponent `json:"components,omitempty"`
}

type outStep struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Components  []outComponent `json:"components"`
}

type outDocument struct {
	WizardSteps      []outStep      `json:"wizardSteps"`
	FormValues       map[string]any `json:"formValues"`
	CurrentStepIndex int            `json:"currentStepIndex"`
}

func outComponents(src []model.FormComponent) []outComponent {
	out := make([]outComponent, len(src))
	for idx, component := range src {
		out[idx] = outComponent{componentFields: componentFields(component)}
		out[idx].componentFields.Components = nil
		if component.Components != nil {
			nested := outComponents(component.Components)
			out[idx].Components = &nested
		}
	}
	return out
}

func outDoc(doc model.FormDocument) outDocument {
	out := outDocument{
		WizardSteps:      make([]outStep, len(doc.WizardSteps)),
		FormValues:       doc.FormValues,
		CurrentStepIndex: doc.CurrentStepIndex,
	}
	if out.FormValues == nil {
		out.FormValues = map[string]any{}
	}
	for idx, step := range doc.WizardSteps {
		out.WizardSteps[idx] = outStep{
			ID:          step.ID,
			Title:       step.Title,
			Description: step.Description,
			Components:  outComponents(step.Components),
		}
	}
	return out
}
