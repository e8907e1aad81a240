package tree

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-formcraft/pkg/model"
)

// AppendStep returns steps with step added at the end.
func AppendStep(steps []model.WizardStep, step model.WizardStep) []model.WizardStep {
	if step.Components == nil {
		step.Components = []model.FormComponent{}
	}
	out := slices.Clone(steps)
	return append(out, step)
}

// UpdateStep applies patch to the step with the given id.
func UpdateStep(steps []model.WizardStep, id string, patch model.StepPatch) ([]model.WizardStep, error) {
	idx := StepIndex(steps, id)
	if idx < 0 {
		return steps, fmt.Errorf("%w: %q", ErrNoStep, id)
	}
	out := slices.Clone(steps)
	step := out[idx]
	if patch.Title != nil {
		step.Title = *patch.Title
	}
	if patch.Description != nil {
		step.Description = *patch.Description
	}
	out[idx] = step
	return out, nil
}

// RemoveStep deletes the step with the given id.
func RemoveStep(steps []model.WizardStep, id string) ([]model.WizardStep, error) {
	idx := StepIndex(steps, id)
	if idx < 0 {
		return steps, fmt.Errorf("%w: %q", ErrNoStep, id)
	}
	return slices.Delete(slices.Clone(steps), idx, idx+1), nil
}

// StepIndex returns the index of the step with the given id, or -1.
func StepIndex(steps []model.WizardStep, id string) int {
	for idx, step := range steps {
		if step.ID == id {
			return idx
		}
	}
	return -1
}
