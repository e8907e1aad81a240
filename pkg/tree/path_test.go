package tree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/tree"
)

func TestLocateReturnsIndexPath(t *testing.T) {
	steps := sampleSteps()

	path, ok := tree.Locate(steps, "phone")
	if !ok {
		t.Fatalf("expected phone to be found")
	}
	if diff := cmp.Diff(tree.Path{0, 1, 1, 0}, path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if path.Step() != 0 || path.Depth() != 2 || path.String() != "0/1/1/0" {
		t.Fatalf("unexpected path accessors: step=%d depth=%d str=%s", path.Step(), path.Depth(), path)
	}

	root, ok := tree.Locate(steps, "tags")
	if !ok || root.Step() != 1 || root.Depth() != 0 {
		t.Fatalf("unexpected root path %v", root)
	}

	if _, ok := tree.Locate(steps, "missing"); ok {
		t.Fatalf("missing id should not resolve")
	}
	if _, ok := tree.Locate(steps, ""); ok {
		t.Fatalf("empty id should not resolve")
	}
	if (tree.Path{}).Step() != -1 {
		t.Fatalf("empty path has no step")
	}
}

func TestAtReturnsDetachedCopy(t *testing.T) {
	steps := sampleSteps()

	node, ok := tree.At(steps, tree.Path{0, 1})
	if !ok || node.ID != "panel" {
		t.Fatalf("At = %+v, %v", node, ok)
	}
	node.Components[0].Label = "changed"
	if steps[0].Components[1].Components[0].Label != "Email" {
		t.Fatalf("At exposed the underlying tree")
	}

	for _, bad := range []tree.Path{nil, {0}, {5, 0}, {0, 9}, {0, 1, 9}} {
		if _, ok := tree.At(steps, bad); ok {
			t.Fatalf("path %v should not resolve", bad)
		}
	}
}

func TestWalkIsPreOrder(t *testing.T) {
	var got []string
	tree.Walk(sampleSteps(), func(node model.FormComponent, _ tree.Path) bool {
		got = append(got, node.ID)
		return true
	})
	want := []string{"name", "panel", "email", "inner", "phone", "note", "agree", "tags"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}

	var stopped []string
	tree.Walk(sampleSteps(), func(node model.FormComponent, _ tree.Path) bool {
		stopped = append(stopped, node.ID)
		return node.ID != "email"
	})
	if diff := cmp.Diff([]string{"name", "panel", "email"}, stopped); diff != "" {
		t.Fatalf("walk did not stop (-want +got):\n%s", diff)
	}

	if got := tree.Count(sampleSteps()); got != 8 {
		t.Fatalf("Count = %d, want 8", got)
	}
}
