// Package visibility decides whether a component's conditional rule lets it
// be displayed for the current value map.
package visibility

import "github.com/goliatone/go-formcraft/pkg/model"

// Evaluator determines whether a component should be visible given the
// current values. Implementations must not depend on other components'
// visibility.
type Evaluator interface {
	Eval(component model.FormComponent, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values is the form's value map
// while Extras allows callers to inject arbitrary context such as user roles.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(component model.FormComponent, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(component model.FormComponent, ctx Context) (bool, error) {
	return fn(component, ctx)
}

// Equality is the default evaluator. A rule with Show set is satisfied only
// when the value stored under When renders to the same string as Eq; a
// missing key never matches. Rules with Show unset are inactive.
type Equality struct{}

// Eval implements Evaluator.
func (Equality) Eval(component model.FormComponent, ctx Context) (bool, error) {
	rule := component.Conditional
	if rule == nil || !rule.Show {
		return true, nil
	}
	value, ok := ctx.Values[rule.When]
	if !ok {
		return false, nil
	}
	return model.ValueString(value) == rule.Eq, nil
}

// Default returns the evaluator used when none is configured.
func Default() Evaluator {
	return Equality{}
}
