package registry

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcraft/pkg/model"
)

func TestRegister_Validation(t *testing.T) {
	reg := New()

	cases := []struct {
		name string
		desc Descriptor
		want string
	}{
		{name: "empty tag", desc: Descriptor{Type: "  ", Family: FamilyDisplay}, want: "type tag is required"},
		{name: "value leaf without kind", desc: Descriptor{Type: "x", Family: FamilyValue}, want: "binds no value"},
		{name: "container with value", desc: Descriptor{Type: "x", Family: FamilyContainer, Value: ValueString}, want: "cannot bind a value"},
		{name: "unknown family", desc: Descriptor{Type: "x", Family: "widget"}, want: "unknown family"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := reg.Register(tc.desc)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
	if got := reg.Types(); len(got) != 0 {
		t.Fatalf("rejected descriptors were registered: %v", got)
	}

	var nilRegistry *Registry
	if err := nilRegistry.Register(Descriptor{Type: "x", Family: FamilyDisplay}); err == nil {
		t.Fatalf("expected error registering on nil registry")
	}
}

func TestLookup_NormalizesTag(t *testing.T) {
	reg := NewDefault()

	d, ok := reg.Lookup("  TextField ")
	if !ok {
		t.Fatalf("expected textfield to resolve")
	}
	if d.Type != TypeTextField || d.InputType != "text" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if _, ok := reg.Lookup("rating"); ok {
		t.Fatalf("unknown tag must not resolve")
	}
	if !reg.IsContainer("Panel") || reg.IsContainer("textfield") || reg.IsContainer("rating") {
		t.Fatalf("container classification is wrong")
	}
}

func TestRegister_ReplaceKeepsOrder(t *testing.T) {
	reg := New()
	reg.MustRegister(Descriptor{Type: "b", Family: FamilyDisplay, Category: "One"})
	reg.MustRegister(Descriptor{Type: "a", Family: FamilyDisplay, Category: "Two"})
	reg.MustRegister(Descriptor{Type: "B", Family: FamilyDisplay, Category: "One", Label: "Bee"})

	if diff := cmp.Diff([]string{"a", "b"}, reg.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	palette := reg.Palette()
	var got []string
	for _, category := range palette {
		for _, d := range category.Types {
			got = append(got, category.Name+"/"+d.Type+"/"+d.Label)
		}
	}
	if diff := cmp.Diff([]string{"One/b/Bee", "Two/a/"}, got); diff != "" {
		t.Fatalf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestPalette_DefaultCategoryOrder(t *testing.T) {
	var got []string
	for _, category := range NewDefault().Palette() {
		got = append(got, category.Name)
	}
	want := []string{CategoryBasic, CategoryAdvanced, CategorySelection, CategoryLayout, CategoryActions}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("category order mismatch (-want +got):\n%s", diff)
	}
}

func TestShape(t *testing.T) {
	reg := NewDefault()

	cases := []struct {
		typ  string
		want model.FormComponent
	}{
		{
			typ: "textfield",
			want: model.FormComponent{
				ID: "c1", Type: "textfield", Key: "k", Label: "New textfield",
				Placeholder: "Enter textfield", Position: model.PositionTop,
			},
		},
		{
			typ: "Select",
			want: model.FormComponent{
				ID: "c1", Type: "select", Key: "k", Label: "New select",
				Placeholder: "Enter select", Position: model.PositionTop,
				Options: []string{"Option 1", "Option 2"},
			},
		},
		{
			typ: "panel",
			want: model.FormComponent{
				ID: "c1", Type: "panel", Key: "k", Label: "New panel",
				Position: model.PositionTop, Components: []model.FormComponent{},
			},
		},
		{
			typ: "rating",
			want: model.FormComponent{
				ID: "c1", Type: "rating", Key: "k", Label: "New rating", Position: model.PositionTop,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			got := reg.Shape(tc.typ, "c1", "k")
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("shape mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if panel := reg.Shape("panel", "c1", "k"); panel.Components == nil {
		t.Fatalf("container shape must carry a non-nil collection")
	}
}

func TestNormalize(t *testing.T) {
	reg := NewDefault()
	tree := []model.FormComponent{
		{ID: "p", Type: "panel"},
		{ID: "t", Type: "textfield", Components: []model.FormComponent{{ID: "stray", Type: "textfield"}}},
		{ID: "u", Type: "rating", Components: []model.FormComponent{{ID: "inner", Type: "well"}}},
	}

	got := reg.Normalize(tree)

	if got[0].Components == nil || len(got[0].Components) != 0 {
		t.Fatalf("panel should get an empty collection, got %#v", got[0].Components)
	}
	if got[1].Components != nil {
		t.Fatalf("leaf should lose nested components, got %#v", got[1].Components)
	}
	if len(got[2].Components) != 1 || got[2].Components[0].Components == nil {
		t.Fatalf("unknown node should keep and normalize its children, got %#v", got[2].Components)
	}
}

func TestDescriptorDefaults(t *testing.T) {
	reg := NewDefault()
	cases := map[string]any{
		"textfield":   "",
		"checkbox":    false,
		"selectboxes": []any{},
		"panel":       nil,
	}
	for typ, want := range cases {
		d, _ := reg.Lookup(typ)
		if diff := cmp.Diff(want, d.DefaultValue()); diff != "" {
			t.Fatalf("%s default mismatch (-want +got):\n%s", typ, diff)
		}
	}
	if d, _ := reg.Lookup("button"); d.BindsValue() {
		t.Fatalf("actions must not bind values")
	}
}

func TestClone_Isolated(t *testing.T) {
	reg := NewDefault()
	cloned := reg.Clone()
	cloned.MustRegister(Descriptor{Type: "rating", Family: FamilyValue, Value: ValueString})

	if _, ok := reg.Lookup("rating"); ok {
		t.Fatalf("clone registration leaked into source")
	}
	if _, ok := cloned.Lookup("rating"); !ok {
		t.Fatalf("clone lost its registration")
	}
}
