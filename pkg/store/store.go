// Package store owns the canonical in-memory FormDocument. Every mutation runs
// to completion under the store lock, leaves the document untouched when it
// fails, and notifies change listeners with the freshly encoded document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	jsonpatch "github.com/evanphx/json-patch"
	"go.uber.org/zap"

	"github.com/goliatone/go-formcraft/pkg/codec"
	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/registry"
	"github.com/goliatone/go-formcraft/pkg/render"
	"github.com/goliatone/go-formcraft/pkg/tree"
	"github.com/goliatone/go-formcraft/pkg/visibility"
	"github.com/goliatone/go-formcraft/pkg/wizard"
)

// DataChange is delivered after every successful mutation. Text is the full
// encoded document; Patch is the RFC 7386 merge patch from the previous
// encoding, empty when it could not be computed.
type DataChange struct {
	Text  string
	Patch []byte
}

// ChangeFunc receives data-changed notifications.
type ChangeFunc func(DataChange)

// SubmitFunc receives the full value map on submit.
type SubmitFunc func(values map[string]any)

// Store holds one FormDocument plus the id of the node last created or
// selected for editing.
type Store struct {
	mu        sync.RWMutex
	doc       model.FormDocument
	selected  string
	encoded   []byte
	types     *registry.Registry
	ids       tree.Generator
	evaluator visibility.Evaluator
	logger    *zap.Logger

	changeListeners []ChangeFunc
	submitListeners []SubmitFunc
}

// New constructs a store holding an empty document unless WithDocument is
// supplied.
func New(opts ...Option) *Store {
	s := &Store{
		types:     registry.NewDefault(),
		ids:       tree.UUIDGenerator{},
		evaluator: visibility.Default(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.doc = codec.Payload{}.Apply(s.doc)
	s.doc.WizardSteps = s.normalize(s.doc.WizardSteps)
	s.encoded, _ = codec.Encode(s.doc)
	return s
}

// Registry exposes the type registry the store uses.
func (s *Store) Registry() *registry.Registry {
	return s.types
}

// Document returns a deep copy of the current document.
func (s *Store) Document() model.FormDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Encode returns the canonical JSON encoding of the current document.
func (s *Store) Encode() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return codec.Encode(s.doc)
}

// EncodeString is Encode as a string.
func (s *Store) EncodeString() (string, error) {
	data, err := s.Encode()
	return string(data), err
}

// OnChange registers fn for data-changed notifications.
func (s *Store) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changeListeners = append(s.changeListeners, fn)
}

// OnSubmit registers fn for submit notifications.
func (s *Store) OnSubmit(fn SubmitFunc) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitListeners = append(s.submitListeners, fn)
}

// Load decodes a host payload and applies every field it carries. Malformed
// input keeps the prior document and is returned as a diagnostic.
func (s *Store) Load(data []byte) error {
	payload, err := codec.Decode(data, codec.WithRegistry(s.types))
	if err != nil {
		s.logger.Warn("discarding malformed document", zap.Error(err))
		return err
	}
	s.LoadPayload(payload)
	return nil
}

// LoadString is Load for text.
func (s *Store) LoadString(text string) error {
	return s.Load([]byte(text))
}

// LoadPayload applies an already decoded payload. The last write wins.
func (s *Store) LoadPayload(payload codec.Payload) {
	s.commit(func(doc *model.FormDocument) error {
		*doc = payload.Apply(*doc)
		doc.WizardSteps = s.normalize(doc.WizardSteps)
		if _, found := tree.Find(doc.WizardSteps, s.selected); !found {
			s.selected = ""
		}
		return nil
	})
}

// ApplyMergePatch applies an RFC 7386 merge patch to the encoded document.
func (s *Store) ApplyMergePatch(patch []byte) error {
	return s.applyRaw("merge patch", func(current []byte) ([]byte, error) {
		return jsonpatch.MergePatch(current, patch)
	})
}

// ApplyJSONPatch applies an RFC 6902 operation list to the encoded document.
func (s *Store) ApplyJSONPatch(ops []byte) error {
	return s.applyRaw("json patch", func(current []byte) ([]byte, error) {
		decoded, err := jsonpatch.DecodePatch(ops)
		if err != nil {
			return nil, err
		}
		return decoded.Apply(current)
	})
}

func (s *Store) applyRaw(kind string, apply func(current []byte) ([]byte, error)) error {
	current, err := s.Encode()
	if err != nil {
		return err
	}
	next, err := apply(current)
	if err != nil {
		s.logger.Warn("rejecting "+kind, zap.Error(err))
		return fmt.Errorf("%w: %s: %v", codec.ErrMalformedInput, kind, err)
	}
	return s.Load(next)
}

// Add creates a component of type typ from its registered default shape.
// With an empty parentID it is appended to the current step's roots;
// otherwise to the nested collection of the container parentID names within
// the current step. A document without steps gets its first step. The new
// node becomes the selected one.
func (s *Store) Add(typ, parentID string) (model.FormComponent, error) {
	var created model.FormComponent
	err := s.commit(func(doc *model.FormDocument) error {
		if len(doc.WizardSteps) == 0 {
			if parentID != "" {
				return fmt.Errorf("%w: %q", tree.ErrDanglingReference, parentID)
			}
			doc.WizardSteps = tree.AppendStep(doc.WizardSteps, s.newStep("", 0))
			doc.CurrentStepIndex = 0
		}
		id := tree.FreshComponentID(doc.WizardSteps, s.ids)
		node := s.types.Shape(typ, id, tree.UniqueKey(doc.WizardSteps, typ))
		steps, err := tree.Insert(doc.WizardSteps, doc.CurrentStepIndex, parentID, node, s.types)
		if err != nil {
			return err
		}
		doc.WizardSteps = steps
		s.selected = id
		created = node.Clone()
		return nil
	})
	if err != nil {
		s.logger.Debug("add ignored", zap.String("type", typ), zap.String("parent", parentID), zap.Error(err))
		return model.FormComponent{}, err
	}
	return created, nil
}

// Update merges patch into the component with the given id, searching every
// step.
func (s *Store) Update(id string, patch model.Patch) error {
	err := s.commit(func(doc *model.FormDocument) error {
		steps, err := tree.Update(doc.WizardSteps, id, patch)
		if err != nil {
			return err
		}
		doc.WizardSteps = steps
		return nil
	})
	if err != nil {
		s.logger.Debug("update ignored", zap.String("id", id), zap.Error(err))
	}
	return err
}

// Delete removes the component with the given id and its descendants. Values
// bound to removed keys are kept.
func (s *Store) Delete(id string) error {
	err := s.commit(func(doc *model.FormDocument) error {
		steps, err := tree.Delete(doc.WizardSteps, id)
		if err != nil {
			return err
		}
		doc.WizardSteps = steps
		if _, found := tree.Find(steps, s.selected); !found {
			s.selected = ""
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("delete ignored", zap.String("id", id), zap.Error(err))
	}
	return err
}

// Component returns a copy of the component with the given id.
func (s *Store) Component(id string) (model.FormComponent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := tree.Find(s.doc.WizardSteps, id)
	if !ok {
		return model.FormComponent{}, false
	}
	return node.Clone(), true
}

// Selected reports the id of the selected component, or "".
func (s *Store) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select marks id as selected. Unknown ids clear the selection.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := tree.Find(s.doc.WizardSteps, id); !ok {
		s.selected = ""
		return false
	}
	s.selected = id
	return true
}

// AddStep appends a step and makes it current. An empty title becomes
// "Step N".
func (s *Store) AddStep(title string) model.WizardStep {
	var created model.WizardStep
	_ = s.commit(func(doc *model.FormDocument) error {
		created = s.newStep(title, len(doc.WizardSteps))
		doc.WizardSteps = tree.AppendStep(doc.WizardSteps, created)
		doc.CurrentStepIndex = len(doc.WizardSteps) - 1
		created.Components = []model.FormComponent{}
		return nil
	})
	return created
}

// UpdateStep changes the title or description of a step.
func (s *Store) UpdateStep(id string, patch model.StepPatch) error {
	err := s.commit(func(doc *model.FormDocument) error {
		steps, err := tree.UpdateStep(doc.WizardSteps, id, patch)
		if err != nil {
			return err
		}
		doc.WizardSteps = steps
		return nil
	})
	if err != nil {
		s.logger.Debug("step update ignored", zap.String("id", id), zap.Error(err))
	}
	return err
}

// DeleteStep removes a step and clamps the current index.
func (s *Store) DeleteStep(id string) error {
	err := s.commit(func(doc *model.FormDocument) error {
		steps, err := tree.RemoveStep(doc.WizardSteps, id)
		if err != nil {
			return err
		}
		doc.WizardSteps = steps
		doc.ClampIndex()
		if _, found := tree.Find(steps, s.selected); !found {
			s.selected = ""
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("step delete ignored", zap.String("id", id), zap.Error(err))
	}
	return err
}

func (s *Store) newStep(title string, existing int) model.WizardStep {
	if title == "" {
		title = "Step " + strconv.Itoa(existing+1)
	}
	return model.WizardStep{ID: s.ids.StepID(), Title: title, Components: []model.FormComponent{}}
}

// Value returns the value bound to key.
func (s *Store) Value(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.doc.FormValues[key]
	if !ok {
		return nil, false
	}
	return model.CloneValues(map[string]any{key: value})[key], true
}

// SetValue binds value to key. Values are stored in their JSON form so the
// in-memory map matches what a decode of the encoded document yields.
func (s *Store) SetValue(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	normalized, err := jsonValue(value)
	if err != nil {
		return err
	}
	return s.commit(func(doc *model.FormDocument) error {
		doc.FormValues[key] = normalized
		return nil
	})
}

// ToggleOption adds or removes option from the multi-select value at key and
// returns the resulting selection.
func (s *Store) ToggleOption(key, option string, on bool) ([]any, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	var selection []any
	err := s.commit(func(doc *model.FormDocument) error {
		selection = model.ToggleSelection(doc.FormValues[key], option, on)
		doc.FormValues[key] = selection
		return nil
	})
	return selection, err
}

func jsonValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return out, nil
}

// Index reports the current step index.
func (s *Store) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.CurrentStepIndex
}

// Next advances one step; a no-op on the last step.
func (s *Store) Next() bool {
	return s.navigate(func(c *wizard.Controller) bool { return c.Next() })
}

// Previous goes back one step; a no-op on the first step.
func (s *Store) Previous() bool {
	return s.navigate(func(c *wizard.Controller) bool { return c.Previous() })
}

// JumpTo moves to index, clamped to the step range.
func (s *Store) JumpTo(index int) bool {
	return s.navigate(func(c *wizard.Controller) bool { return c.JumpTo(index) })
}

func (s *Store) navigate(move func(c *wizard.Controller) bool) bool {
	moved := false
	_ = s.commit(func(doc *model.FormDocument) error {
		ctrl := wizard.New(len(doc.WizardSteps), doc.CurrentStepIndex)
		if !move(ctrl) {
			return errUnchanged
		}
		doc.CurrentStepIndex = ctrl.Index()
		moved = true
		return nil
	})
	return moved
}

// Submit returns the entire value map when the current step is the last one
// and notifies submit listeners.
func (s *Store) Submit() (map[string]any, error) {
	s.mu.RLock()
	ctrl := wizard.New(len(s.doc.WizardSteps), s.doc.CurrentStepIndex)
	values := model.CloneValues(s.doc.FormValues)
	listeners := append([]SubmitFunc(nil), s.submitListeners...)
	s.mu.RUnlock()

	if err := ctrl.Submit(); err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]any{}
	}
	for _, fn := range listeners {
		fn(model.CloneValues(values))
	}
	return values, nil
}

// View projects the current step with the store's registry and evaluator.
func (s *Store) View() render.View {
	return s.ViewWith()
}

// ViewWith is View with extra projection options.
func (s *Store) ViewWith(opts ...render.ProjectOption) render.View {
	s.mu.RLock()
	doc := s.doc.Clone()
	s.mu.RUnlock()
	opts = append([]render.ProjectOption{render.WithEvaluator(s.evaluator)}, opts...)
	view := render.Project(doc, s.types, opts...)
	for _, diag := range view.Diagnostics {
		s.logger.Debug("render diagnostic",
			zap.String("id", diag.ComponentID),
			zap.String("type", diag.Type),
			zap.Error(diag.Err),
		)
	}
	return view
}

var errUnchanged = errors.New("store: unchanged")

// commit runs edit against a working copy and swaps it in on success. Change
// listeners are notified after the lock is released.
func (s *Store) commit(edit func(doc *model.FormDocument) error) error {
	s.mu.Lock()
	working := s.doc.Clone()
	if working.FormValues == nil {
		working.FormValues = map[string]any{}
	}
	if err := edit(&working); err != nil {
		s.mu.Unlock()
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if working.WizardSteps == nil {
		working.WizardSteps = []model.WizardStep{}
	}

	encoded, err := codec.Encode(working)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	change := DataChange{Text: string(encoded)}
	if len(s.encoded) > 0 {
		if patch, err := jsonpatch.CreateMergePatch(s.encoded, encoded); err == nil {
			change.Patch = patch
		}
	}
	s.doc = working
	s.encoded = encoded
	listeners := append([]ChangeFunc(nil), s.changeListeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
	return nil
}

func (s *Store) normalize(steps []model.WizardStep) []model.WizardStep {
	for idx := range steps {
		if steps[idx].Components == nil {
			steps[idx].Components = []model.FormComponent{}
		}
		steps[idx].Components = s.types.Normalize(steps[idx].Components)
	}
	return steps
}
