package codec

import "errors"

// ErrMalformedInput is returned when the text is not a JSON (or YAML) object
// or one of its fields has an incompatible shape. Nothing is applied.
var ErrMalformedInput = errors.New("codec: malformed input")
