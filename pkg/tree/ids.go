package tree

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formcraft/pkg/model"
)

// Generator produces identifiers for newly created components and steps.
type Generator interface {
	ComponentID() string
	StepID() string
}

// UUIDGenerator issues random identifiers prefixed like "component_<uuid>".
type UUIDGenerator struct{}

func (UUIDGenerator) ComponentID() string { return "component_" + uuid.NewString() }
func (UUIDGenerator) StepID() string      { return "step_" + uuid.NewString() }

// SequenceGenerator issues predictable identifiers ("component_1", ...). It is
// meant for tests and reproducible fixtures.
type SequenceGenerator struct {
	mu         sync.Mutex
	components int
	steps      int
}

func (g *SequenceGenerator) ComponentID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.components++
	return fmt.Sprintf("component_%d", g.components)
}

func (g *SequenceGenerator) StepID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.steps++
	return fmt.Sprintf("step_%d", g.steps)
}

// FreshComponentID asks gen for ids until it returns one not already used in
// steps.
func FreshComponentID(steps []model.WizardStep, gen Generator) string {
	used := make(map[string]struct{})
	Walk(steps, func(node model.FormComponent, _ Path) bool {
		used[node.ID] = struct{}{}
		return true
	})
	for {
		id := gen.ComponentID()
		if _, taken := used[id]; !taken && id != "" {
			return id
		}
	}
}

// UniqueKey returns "<type><N>" with the smallest N >= 1 not used as a key
// anywhere in steps.
func UniqueKey(steps []model.WizardStep, typ string) string {
	prefix := keyPrefix(typ)
	used := make(map[int]struct{})
	Walk(steps, func(node model.FormComponent, _ Path) bool {
		if rest, ok := strings.CutPrefix(node.Key, prefix); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				used[n] = struct{}{}
			}
		}
		return true
	})
	n := 1
	for {
		if _, taken := used[n]; !taken {
			return prefix + strconv.Itoa(n)
		}
		n++
	}
}

func keyPrefix(typ string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(typ) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "field"
	}
	return b.String()
}
