// Package wizard holds the step-index state machine of a multi-step form.
// Navigation never checks field completeness; only Submit is restricted to the
// final step.
package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSteps is returned by Submit when the form has no steps.
	ErrNoSteps = errors.New("wizard: form has no steps")
	// ErrNotFinalStep is returned by Submit before the last step is reached.
	ErrNotFinalStep = errors.New("wizard: submit is only available on the final step")
)

// Controller tracks the current step of a form with Count steps. The zero
// value is an empty wizard.
type Controller struct {
	index int
	count int
}

// New returns a controller positioned at index, clamped to [0, count-1].
func New(count, index int) *Controller {
	c := &Controller{}
	c.Reset(count, index)
	return c
}

// Reset replaces both the step count and the index.
func (c *Controller) Reset(count, index int) {
	if count < 0 {
		count = 0
	}
	c.count = count
	c.index = c.clamp(index)
}

// SetCount changes the number of steps and clamps the index to the new range.
func (c *Controller) SetCount(count int) {
	c.Reset(count, c.index)
}

// Index returns the current step index.
func (c *Controller) Index() int { return c.index }

// Count returns the number of steps.
func (c *Controller) Count() int { return c.count }

// LastIndex returns the index of the final step, or -1 when empty.
func (c *Controller) LastIndex() int { return c.count - 1 }

// IsFirst reports whether the wizard sits on its first step.
func (c *Controller) IsFirst() bool { return c.index == 0 }

// IsLast reports whether the wizard sits on its final step.
func (c *Controller) IsLast() bool { return c.count > 0 && c.index == c.LastIndex() }

// CanSubmit reports whether Submit would succeed.
func (c *Controller) CanSubmit() bool { return c.IsLast() }

// Next advances one step. It reports whether the index moved.
func (c *Controller) Next() bool {
	return c.move(c.index + 1)
}

// Previous goes back one step. It reports whether the index moved.
func (c *Controller) Previous() bool {
	return c.move(c.index - 1)
}

// JumpTo moves to index clamped to the valid range. It is always permitted.
func (c *Controller) JumpTo(index int) bool {
	return c.move(index)
}

// Submit checks that submission is offered at the current position.
func (c *Controller) Submit() error {
	switch {
	case c.count == 0:
		return ErrNoSteps
	case !c.IsLast():
		return fmt.Errorf("%w: at step %d of %d", ErrNotFinalStep, c.index+1, c.count)
	default:
		return nil
	}
}

func (c *Controller) move(index int) bool {
	next := c.clamp(index)
	if next == c.index {
		return false
	}
	c.index = next
	return true
}

func (c *Controller) clamp(index int) int {
	switch {
	case c.count == 0, index < 0:
		return 0
	case index > c.count-1:
		return c.count - 1
	default:
		return index
	}
}
