package codec

import "github.com/goliatone/go-formcraft/pkg/model"

// Field flags a top-level document field.
type Field uint8

const (
	FieldSteps Field = 1 << iota
	FieldValues
	FieldStepIndex
)

// Payload is the result of decoding. Only the fields flagged in Present were
// found in the input; the others hold zero values and must be ignored.
type Payload struct {
	Steps     []model.WizardStep
	Values    map[string]any
	StepIndex int
	Present   Field
}

// Has reports whether field was present in the decoded text.
func (p Payload) Has(field Field) bool {
	return p.Present&field != 0
}

// Empty reports whether the payload carries no fields at all.
func (p Payload) Empty() bool {
	return p.Present == 0
}

// Apply returns doc with every present field replaced and the step index
// clamped to the resulting step list. doc itself is not modified.
func (p Payload) Apply(doc model.FormDocument) model.FormDocument {
	out := doc.Clone()
	if p.Has(FieldSteps) {
		steps := make([]model.WizardStep, len(p.Steps))
		for idx, step := range p.Steps {
			steps[idx] = step.Clone()
		}
		out.WizardSteps = steps
	}
	if p.Has(FieldValues) {
		out.FormValues = model.CloneValues(p.Values)
	}
	if p.Has(FieldStepIndex) {
		out.CurrentStepIndex = p.StepIndex
	}
	if out.WizardSteps == nil {
		out.WizardSteps = []model.WizardStep{}
	}
	if out.FormValues == nil {
		out.FormValues = map[string]any{}
	}
	out.ClampIndex()
	return out
}

// Document builds a fresh document from the payload alone.
func (p Payload) Document() model.FormDocument {
	return p.Apply(model.FormDocument{})
}
