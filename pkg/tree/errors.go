package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrDanglingReference is returned when a mutation targets an id that is
	// not present in the tree. The tree is returned unchanged.
	ErrDanglingReference = errors.New("tree: component not found")
	// ErrInvalidContainerTarget is returned when add names a parent that is not
	// a container. It also matches ErrDanglingReference.
	ErrInvalidContainerTarget = fmt.Errorf("%w: parent is not a container", ErrDanglingReference)
	// ErrInvalidPatch is returned when a patch names an immutable attribute or
	// carries a value that cannot be applied.
	ErrInvalidPatch = errors.New("tree: invalid patch")
	// ErrNoStep is returned when the addressed step does not exist.
	ErrNoStep = errors.New("tree: step not found")
)
