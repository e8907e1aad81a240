package formcraft_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcraft"
	"github.com/goliatone/go-formcraft/pkg/codec"
)

const doc = `{"wizardSteps":[{"id":"s1","title":"A","components":[]}],"formValues":{},"currentStepIndex":0}`

func TestDecodeEncodeRoundTrip(t *testing.T) {
	decoded, err := formcraft.Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	encoded, err := formcraft.Encode(decoded)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if diff := cmp.Diff(doc, encoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := formcraft.Decode("nope"); !errors.Is(err, codec.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestRenderHTML(t *testing.T) {
	store := formcraft.NewStore()
	if err := store.LoadString(doc); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := store.Add("textfield", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	text, err := store.EncodeString()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := formcraft.RenderHTML(context.Background(), text, formcraft.RenderOptions{Mode: formcraft.ModePreview})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{`name="textfield1"`, `formcraft-preview-badge`} {
		if !strings.Contains(string(out), fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}

	if _, err := formcraft.RenderHTML(context.Background(), text, formcraft.RenderOptions{Mode: "editor"}); err == nil {
		t.Fatalf("expected invalid mode error")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(formcraft.EmbeddedTemplates(), "page.tpl"); err != nil {
		t.Fatalf("page template missing: %v", err)
	}
}
