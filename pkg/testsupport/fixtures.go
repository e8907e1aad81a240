package testsupport

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcraft/pkg/codec"
	"github.com/goliatone/go-formcraft/pkg/model"
)

//go:embed testdata/*
var fixtures embed.FS

// Fixture names shipped with the package.
const (
	ContactFixture     = "contact.json"
	ContactYAMLFixture = "contact.yaml"
	LegacyFixture      = "legacy.json"
)

// MustFixture returns the raw bytes of an embedded fixture.
func MustFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := Fixture(name)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return data
}

// Fixture returns the raw bytes of an embedded fixture without requiring
// testing.T.
func Fixture(name string) ([]byte, error) {
	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read fixture %s: %w", name, err)
	}
	return data, nil
}

// MustLoadDocument decodes an embedded fixture into a document.
func MustLoadDocument(t *testing.T, name string) model.FormDocument {
	t.Helper()

	doc, err := LoadDocument(name)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocument decodes an embedded fixture, JSON or YAML.
func LoadDocument(name string) (model.FormDocument, error) {
	data, err := Fixture(name)
	if err != nil {
		return model.FormDocument{}, err
	}
	payload, err := codec.Parse(data)
	if err != nil {
		return model.FormDocument{}, fmt.Errorf("testsupport: decode fixture %s: %w", name, err)
	}
	return payload.Document(), nil
}

// MustDecode decodes text into a fresh document.
func MustDecode(t *testing.T, text string) model.FormDocument {
	t.Helper()

	payload, err := codec.DecodeString(text)
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}
	return payload.Document()
}

// MustEncode encodes doc and fails the test on error.
func MustEncode(t *testing.T, doc model.FormDocument) string {
	t.Helper()

	text, err := codec.EncodeString(doc)
	if err != nil {
		t.Fatalf("encode document: %v", err)
	}
	return text
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs render against a buffer and returns both the returned
// string and what was written, so tests can assert they match.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
