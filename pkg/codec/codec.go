package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/registry"
)

// Option customises decoding.
type Option func(*options)

type options struct {
	registry *registry.Registry
}

// WithRegistry sets the registry used to normalise nested collections after
// decoding. Defaults to the built-in catalog.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

func newOptions(opts []Option) options {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = registry.NewDefault()
	}
	return cfg
}

// Encode renders doc as the canonical boundary JSON.
func Encode(doc model.FormDocument) ([]byte, error) {
	data, err := json.Marshal(outDoc(doc))
	if err != nil {
		return nil, fmt.Errorf("codec: encode document: %w", err)
	}
	return data, nil
}

// EncodeIndent is Encode with indentation, for files and terminals.
func EncodeIndent(doc model.FormDocument, indent string) ([]byte, error) {
	data, err := json.MarshalIndent(outDoc(doc), "", indent)
	if err != nil {
		return nil, fmt.Errorf("codec: encode document: %w", err)
	}
	return data, nil
}

// EncodeString is Encode returning text.
func EncodeString(doc model.FormDocument) (string, error) {
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses boundary JSON into a Payload. Each of wizardSteps, formValues
// and currentStepIndex is reported only when present and not null. Any parse
// or shape failure returns ErrMalformedInput and an empty payload.
func Decode(data []byte, opts ...Option) (Payload, error) {
	cfg := newOptions(opts)

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if top == nil {
		return Payload{}, fmt.Errorf("%w: document is null", ErrMalformedInput)
	}

	var payload Payload
	if raw, ok := present(top, "wizardSteps"); ok {
		var steps []wireStep
		if err := json.Unmarshal(raw, &steps); err != nil {
			return Payload{}, fmt.Errorf("%w: wizardSteps: %v", ErrMalformedInput, err)
		}
		payload.Steps = make([]model.WizardStep, len(steps))
		for idx, step := range steps {
			converted := step.model()
			converted.Components = cfg.registry.Normalize(converted.Components)
			payload.Steps[idx] = converted
		}
		payload.Present |= FieldSteps
	}
	if raw, ok := present(top, "formValues"); ok {
		var values map[string]any
		if err := json.Unmarshal(raw, &values); err != nil {
			return Payload{}, fmt.Errorf("%w: formValues: %v", ErrMalformedInput, err)
		}
		payload.Values = values
		payload.Present |= FieldValues
	}
	if raw, ok := present(top, "currentStepIndex"); ok {
		var index float64
		if err := json.Unmarshal(raw, &index); err != nil {
			return Payload{}, fmt.Errorf("%w: currentStepIndex: %v", ErrMalformedInput, err)
		}
		if index != math.Trunc(index) {
			return Payload{}, fmt.Errorf("%w: currentStepIndex %v is not an integer", ErrMalformedInput, index)
		}
		// Out-of-range indexes are clamped later; pin them first so the
		// conversion cannot overflow.
		payload.StepIndex = int(max(-1, min(index, math.MaxInt32)))
		payload.Present |= FieldStepIndex
	}
	return payload, nil
}

// DecodeString is Decode for text.
func DecodeString(text string, opts ...Option) (Payload, error) {
	return Decode([]byte(text), opts...)
}

func present(top map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := top[key]
	if !ok {
		return nil, false
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// DecodeYAML accepts the same document written as YAML.
func DecodeYAML(data []byte, opts ...Option) (Payload, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	converted, err := json.Marshal(jsonCompatible(tree))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return Decode(converted, opts...)
}

// EncodeYAML renders doc as YAML with the same field names as the JSON form.
func EncodeYAML(doc model.FormDocument) ([]byte, error) {
	data, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("codec: encode yaml: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("codec: encode yaml: %w", err)
	}
	return out, nil
}

// Parse decodes JSON, falling back to YAML when the text is not valid JSON.
func Parse(data []byte, opts ...Option) (Payload, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Payload{}, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}
	if json.Valid(data) {
		return Decode(data, opts...)
	}
	return DecodeYAML(data, opts...)
}

// ReadFile loads a document from disk. .yaml/.yml files are read as YAML,
// anything else goes through Parse.
func ReadFile(path string, opts ...Option) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("codec: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data, opts...)
	default:
		return Parse(data, opts...)
	}
}

// jsonCompatible rewrites YAML maps with non-string keys so the tree can be
// marshalled as JSON.
func jsonCompatible(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			typed[key] = jsonCompatible(item)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = jsonCompatible(item)
		}
		return out
	case []any:
		for idx, item := range typed {
			typed[idx] = jsonCompatible(item)
		}
		return typed
	default:
		return typed
	}
}
