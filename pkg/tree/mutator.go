package tree

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-formcraft/pkg/model"
)

// ContainerChecker decides whether a type tag may hold nested components. The
// type registry satisfies it.
type ContainerChecker interface {
	IsContainer(typ string) bool
}

// immutable attributes cannot be patched: changing them would break id
// uniqueness or structural containment.
var immutable = []string{"id", "type", "components"}

// Insert appends node to the step at stepIndex. With an empty parentID the node
// becomes the last root of the step; otherwise it becomes the last child of the
// container whose id is parentID, searched in pre-order within that step. On
// any miss the original steps are returned with an error.
func Insert(steps []model.WizardStep, stepIndex int, parentID string, node model.FormComponent, containers ContainerChecker) ([]model.WizardStep, error) {
	if stepIndex < 0 || stepIndex >= len(steps) {
		return steps, fmt.Errorf("%w: index %d", ErrNoStep, stepIndex)
	}
	if parentID == "" {
		out := slices.Clone(steps)
		step := out[stepIndex]
		step.Components = append(slices.Clone(step.Components), node)
		out[stepIndex] = step
		return out, nil
	}

	path, ok := Locate(steps[stepIndex:stepIndex+1], parentID)
	if !ok {
		return steps, fmt.Errorf("%w: parent %q", ErrDanglingReference, parentID)
	}
	path[0] = stepIndex
	parent, _ := At(steps, path)
	if containers == nil || !containers.IsContainer(parent.Type) {
		return steps, fmt.Errorf("%w: parent %q has type %q", ErrInvalidContainerTarget, parentID, parent.Type)
	}

	return rewrite(steps, path, func(level []model.FormComponent, idx int) []model.FormComponent {
		target := level[idx]
		target.Components = append(slices.Clone(target.Components), node)
		level[idx] = target
		return level
	}), nil
}

// Update shallow-merges patch into the node with the given id, searching every
// step in pre-order. Attributes not named in the patch keep their values and
// every other node is left untouched.
func Update(steps []model.WizardStep, id string, patch model.Patch) ([]model.WizardStep, error) {
	path, ok := Locate(steps, id)
	if !ok {
		return steps, fmt.Errorf("%w: %q", ErrDanglingReference, id)
	}
	current, _ := At(steps, path)
	patched, err := ApplyPatch(current, patch)
	if err != nil {
		return steps, err
	}
	return rewrite(steps, path, func(level []model.FormComponent, idx int) []model.FormComponent {
		level[idx] = patched
		return level
	}), nil
}

// Delete removes the node with the given id together with its descendants,
// preserving the order of the remaining siblings at every level.
func Delete(steps []model.WizardStep, id string) ([]model.WizardStep, error) {
	path, ok := Locate(steps, id)
	if !ok {
		return steps, fmt.Errorf("%w: %q", ErrDanglingReference, id)
	}
	return rewrite(steps, path, func(level []model.FormComponent, idx int) []model.FormComponent {
		return slices.Delete(level, idx, idx+1)
	}), nil
}

// ApplyPatch returns a copy of node with the patch applied. Nested objects
// such as the conditional rule and the options list are replaced wholesale.
func ApplyPatch(node model.FormComponent, patch model.Patch) (model.FormComponent, error) {
	target := node.Clone()
	if len(patch) == 0 {
		return target, nil
	}

	fields := make(map[string]any, len(patch))
	for key, value := range patch {
		for _, name := range immutable {
			if strings.EqualFold(strings.TrimSpace(key), name) {
				return node, fmt.Errorf("%w: %q cannot be patched", ErrInvalidPatch, key)
			}
		}
		if strings.EqualFold(strings.TrimSpace(key), "defaultValue") {
			target.DefaultValue = value
			continue
		}
		fields[key] = value
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &target,
		TagName:     "mapstructure",
		ZeroFields:  true,
		ErrorUnused: true,
		DecodeHook:  scalarToString,
	})
	if err != nil {
		return node, fmt.Errorf("tree: configure patch decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return node, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return target, nil
}

// scalarToString lets numbers and booleans land in text attributes, the same
// way the codec reads a conditional rule's literal.
func scalarToString(from, to reflect.Kind, data any) (any, error) {
	if to != reflect.String {
		return data, nil
	}
	switch from {
	case reflect.Bool, reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return model.ValueString(data), nil
	}
	return data, nil
}

func rewrite(steps []model.WizardStep, path Path, edit func(level []model.FormComponent, idx int) []model.FormComponent) []model.WizardStep {
	out := slices.Clone(steps)
	step := out[path[0]]
	step.Components = rewriteLevel(step.Components, path[1:], edit)
	out[path[0]] = step
	return out
}

// rewriteLevel copies every sequence along the path so the input tree is never
// mutated.
func rewriteLevel(level []model.FormComponent, rest Path, edit func([]model.FormComponent, int) []model.FormComponent) []model.FormComponent {
	out := slices.Clone(level)
	idx := rest[0]
	if len(rest) == 1 {
		return edit(out, idx)
	}
	node := out[idx]
	node.Components = rewriteLevel(node.Components, rest[1:], edit)
	out[idx] = node
	return out
}
