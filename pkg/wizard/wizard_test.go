package wizard_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formcraft/pkg/wizard"
)

func TestNavigationClampsAtBounds(t *testing.T) {
	c := wizard.New(3, 0)

	if !c.IsFirst() {
		t.Fatalf("expected to start on the first step")
	}
	if c.Previous() {
		t.Fatalf("previous at index 0 should be a no-op")
	}
	if !c.Next() || !c.Next() {
		t.Fatalf("expected to advance twice")
	}
	if c.Index() != 2 || !c.IsLast() {
		t.Fatalf("expected last step, got %d", c.Index())
	}
	if c.Next() {
		t.Fatalf("next at last index should be a no-op")
	}
	if c.Index() != 2 {
		t.Fatalf("index moved past last step: %d", c.Index())
	}
}

func TestJumpToClamps(t *testing.T) {
	cases := []struct {
		target int
		want   int
	}{
		{target: 1, want: 1},
		{target: -4, want: 0},
		{target: 99, want: 3},
	}
	for _, tc := range cases {
		c := wizard.New(4, 2)
		c.JumpTo(tc.target)
		if c.Index() != tc.want {
			t.Fatalf("jump to %d: expected %d, got %d", tc.target, tc.want, c.Index())
		}
	}
}

func TestSubmitOnlyOnFinalStep(t *testing.T) {
	c := wizard.New(2, 0)
	if err := c.Submit(); !errors.Is(err, wizard.ErrNotFinalStep) {
		t.Fatalf("expected ErrNotFinalStep, got %v", err)
	}
	if c.CanSubmit() {
		t.Fatalf("submit should not be offered on the first step")
	}
	c.Next()
	if err := c.Submit(); err != nil {
		t.Fatalf("submit on final step: %v", err)
	}

	var empty wizard.Controller
	if err := empty.Submit(); !errors.Is(err, wizard.ErrNoSteps) {
		t.Fatalf("expected ErrNoSteps, got %v", err)
	}
	if empty.IsLast() || empty.Next() {
		t.Fatalf("empty wizard should have no last step and not move")
	}
}

func TestSetCountClampsIndex(t *testing.T) {
	c := wizard.New(5, 4)
	c.SetCount(2)
	if c.Index() != 1 {
		t.Fatalf("expected index 1 after shrinking, got %d", c.Index())
	}
	c.SetCount(0)
	if c.Index() != 0 || c.LastIndex() != -1 {
		t.Fatalf("expected empty wizard pinned to 0, got index %d last %d", c.Index(), c.LastIndex())
	}
}
