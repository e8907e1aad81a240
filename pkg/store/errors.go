package store

import "errors"

var (
	// ErrEmptyKey is returned when a value write names no key.
	ErrEmptyKey = errors.New("store: value key is required")
	// ErrInvalidValue is returned when a value cannot be represented in the
	// serialized document.
	ErrInvalidValue = errors.New("store: value is not JSON compatible")
)
