package model

import "slices"

// Clone returns a deep copy of the component and its descendants.
func (c FormComponent) Clone() FormComponent {
	out := c
	out.MinLength = cloneInt(c.MinLength)
	out.MaxLength = cloneInt(c.MaxLength)
	out.MinWords = cloneInt(c.MinWords)
	out.MaxWords = cloneInt(c.MaxWords)
	if c.Conditional != nil {
		rule := *c.Conditional
		out.Conditional = &rule
	}
	out.Options = slices.Clone(c.Options)
	out.DefaultValue = cloneValue(c.DefaultValue)
	out.Components = CloneComponents(c.Components)
	return out
}

// CloneComponents deep-copies a component sequence, preserving nil versus
// empty.
func CloneComponents(src []FormComponent) []FormComponent {
	if src == nil {
		return nil
	}
	out := make([]FormComponent, len(src))
	for idx, component := range src {
		out[idx] = component.Clone()
	}
	return out
}

// Clone returns a deep copy of the step.
func (s WizardStep) Clone() WizardStep {
	out := s
	out.Components = CloneComponents(s.Components)
	return out
}

// Clone returns a deep copy of the document including the value map.
func (d FormDocument) Clone() FormDocument {
	out := FormDocument{
		FormValues:       CloneValues(d.FormValues),
		CurrentStepIndex: d.CurrentStepIndex,
	}
	if d.WizardSteps != nil {
		out.WizardSteps = make([]WizardStep, len(d.WizardSteps))
		for idx, step := range d.WizardSteps {
			out.WizardSteps[idx] = step.Clone()
		}
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
