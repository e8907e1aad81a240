// Package model defines the form-schema tree consumed by the store, the tree
// mutator, the serializer and every renderer. A FormDocument holds an ordered
// list of WizardStep values, each owning a tree of FormComponent nodes, plus
// the flat value map keyed by component `key` and the current step index.
//
// Nested components always live under Components regardless of whether the
// tree is being edited or rendered; legacy attribute names (`children`,
// `columns`, `rows`) are translated by pkg/codec at the JSON boundary.
package model
