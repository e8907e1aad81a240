package store

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/registry"
	"github.com/goliatone/go-formcraft/pkg/tree"
	"github.com/goliatone/go-formcraft/pkg/visibility"
)

// Option configures a Store.
type Option func(*Store)

// WithRegistry sets the type registry used for shapes, containment and
// projection.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Store) {
		if reg != nil {
			s.types = reg
		}
	}
}

// WithIDGenerator overrides how component and step ids are minted.
func WithIDGenerator(gen tree.Generator) Option {
	return func(s *Store) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithLogger attaches a logger for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEvaluator overrides the conditional rule evaluator used by View.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(s *Store) {
		if eval != nil {
			s.evaluator = eval
		}
	}
}

// WithDocument seeds the store with doc.
func WithDocument(doc model.FormDocument) Option {
	return func(s *Store) {
		s.doc = doc.Clone()
	}
}
