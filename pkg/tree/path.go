package tree

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formcraft/pkg/model"
)

// Path addresses a node by index: the step index followed by the child index
// at every level below it.
type Path []int

// Step returns the step index the path starts at.
func (p Path) Step() int {
	if len(p) == 0 {
		return -1
	}
	return p[0]
}

// Depth returns the nesting depth of the addressed node (0 for step roots).
func (p Path) Depth() int {
	return len(p) - 2
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for idx, n := range p {
		parts[idx] = strconv.Itoa(n)
	}
	return strings.Join(parts, "/")
}

// VisitFunc is called for every node in pre-order. Returning false stops the
// walk.
type VisitFunc func(node model.FormComponent, path Path) bool

// Walk visits every node of every step in pre-order.
func Walk(steps []model.WizardStep, visit VisitFunc) {
	for idx, step := range steps {
		if !walk(step.Components, Path{idx}, visit) {
			return
		}
	}
}

// WalkComponents visits a component sequence in pre-order.
func WalkComponents(components []model.FormComponent, visit VisitFunc) {
	walk(components, nil, visit)
}

func walk(components []model.FormComponent, prefix Path, visit VisitFunc) bool {
	for idx, node := range components {
		path := append(append(Path(nil), prefix...), idx)
		if !visit(node, path) {
			return false
		}
		if !walk(node.Components, path, visit) {
			return false
		}
	}
	return true
}

// Locate returns the path of the first node with the given id in pre-order.
func Locate(steps []model.WizardStep, id string) (Path, bool) {
	if id == "" {
		return nil, false
	}
	var found Path
	Walk(steps, func(node model.FormComponent, path Path) bool {
		if node.ID == id {
			found = path
			return false
		}
		return true
	})
	return found, found != nil
}

// Find returns a copy of the node with the given id.
func Find(steps []model.WizardStep, id string) (model.FormComponent, bool) {
	path, ok := Locate(steps, id)
	if !ok {
		return model.FormComponent{}, false
	}
	return At(steps, path)
}

// At resolves a path into a copy of the addressed node.
func At(steps []model.WizardStep, path Path) (model.FormComponent, bool) {
	if len(path) < 2 || path[0] < 0 || path[0] >= len(steps) {
		return model.FormComponent{}, false
	}
	level := steps[path[0]].Components
	var node model.FormComponent
	for _, idx := range path[1:] {
		if idx < 0 || idx >= len(level) {
			return model.FormComponent{}, false
		}
		node = level[idx]
		level = node.Components
	}
	return node.Clone(), true
}

// Count returns the number of nodes across all steps.
func Count(steps []model.WizardStep) int {
	total := 0
	Walk(steps, func(model.FormComponent, Path) bool {
		total++
		return true
	})
	return total
}

// IDs returns every node id in pre-order.
func IDs(steps []model.WizardStep) []string {
	var ids []string
	Walk(steps, func(node model.FormComponent, _ Path) bool {
		ids = append(ids, node.ID)
		return true
	})
	return ids
}
