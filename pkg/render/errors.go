package render

import (
	"errors"
	"fmt"
)

// ErrUnknownComponentType marks a node whose type has no registry entry. It is
// never returned from Project; the node is replaced by a placeholder and a
// Diagnostic carries the error.
var ErrUnknownComponentType = errors.New("render: unknown component type")

// Diagnostic is a non-fatal problem found while projecting a step.
type Diagnostic struct {
	ComponentID string
	Type        string
	Err         error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("component %q (%s): %v", d.ComponentID, d.Type, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}
