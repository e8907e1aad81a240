package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/render"
	"github.com/goliatone/go-formcraft/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

// docSession drives a document directly, without the schema store.
type docSession struct {
	doc model.FormDocument
}

func (s *docSession) View() render.View {
	return render.Project(s.doc, nil)
}

func (s *docSession) SetValue(key string, value any) error {
	if s.doc.FormValues == nil {
		s.doc.FormValues = map[string]any{}
	}
	s.doc.FormValues[key] = value
	return nil
}

func (s *docSession) move(index int) bool {
	if index < 0 || index > s.doc.LastIndex() || index == s.doc.CurrentStepIndex {
		return false
	}
	s.doc.CurrentStepIndex = index
	return true
}

func (s *docSession) Next() bool            { return s.move(s.doc.CurrentStepIndex + 1) }
func (s *docSession) Previous() bool        { return s.move(s.doc.CurrentStepIndex - 1) }
func (s *docSession) JumpTo(index int) bool { return s.move(index) }

func (s *docSession) Submit() (map[string]any, error) {
	return model.CloneValues(s.doc.FormValues), nil
}

func contactSession(t *testing.T) *docSession {
	t.Helper()
	return &docSession{doc: testsupport.MustLoadDocument(t, testsupport.ContactFixture)}
}

func TestRun_FillsWizardAndSubmits(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"A", "Ada Lovelace", "ada@example.com", "555"},
		selectIdx: []int{1, 0, 2},
		multiIdx:  [][]int{{1, 2}},
		confirm:   []bool{true},
	}
	r, err := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	got, err := r.Run(testsupport.Context(), contactSession(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := map[string]any{
		"name":       "Ada Lovelace",
		"email":      "ada@example.com",
		"channel":    "phone",
		"phone":      "555",
		"topics":     []any{"B", "C"},
		"newsletter": true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}

	wantPrompts := []string{
		"Full name", "Full name", "Email", "Preferred channel", "Phone", "Continue",
		"Topics", "Newsletter", "Continue",
	}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"Step 1 of 2: Contact",
		"! Full name: must be at least 2 characters",
		"Step 2 of 2: Preferences",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CustomErrorMessageAndTransformer(t *testing.T) {
	doc := model.FormDocument{
		WizardSteps: []model.WizardStep{{
			ID:    "s1",
			Title: "Only",
			Components: []model.FormComponent{{
				ID:                 "c1",
				Type:               "textarea",
				Key:                "bio",
				Label:              "Bio",
				Required:           true,
				CustomErrorMessage: "Tell us something",
			}},
		}},
		FormValues: map[string]any{},
	}
	driver := &stubDriver{
		textAreas: []string{"  ", "hello there"},
		selectIdx: []int{0},
	}
	r, err := New(
		WithPromptDriver(driver),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["source"] = "tui"
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	got, err := r.Run(testsupport.Context(), &docSession{doc: doc})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := map[string]any{"bio": "hello there", "source": "tui"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Step 1 of 1: Only", "Bio: Tell us something"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_PropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Run(testsupport.Context(), contactSession(t)); err == nil {
		t.Fatalf("expected error from exhausted driver")
	}
	if _, err := r.Run(testsupport.Context(), nil); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRender_TextSummary(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	doc := testsupport.MustLoadDocument(t, testsupport.ContactFixture)

	out, err := r.Render(testsupport.Context(), render.Project(doc, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Step 1 of 2: Contact\n" +
		"How can we reach you?\n" +
		"  Full name*: Ada\n" +
		"  Details\n" +
		"    Email: \n" +
		"    Preferred channel: \n" +
		"  Layout\n" +
		"    (empty)\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}

	empty, err := r.Render(testsupport.Context(), render.Project(model.FormDocument{}, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if got := string(empty); got != "No form steps available\n" {
		t.Fatalf("unexpected empty output %q", got)
	}
}

func TestRender_BuilderOutline(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	doc := testsupport.MustLoadDocument(t, testsupport.ContactFixture)
	doc.CurrentStepIndex = 1

	out, err := r.Render(testsupport.Context(), render.Project(doc, nil, render.WithAllNodes()), render.RenderOptions{Mode: render.ModeBuilder})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Step 2 of 2: Preferences\n" +
		"  Topics (selectboxes)\n" +
		"  Newsletter (checkbox)\n" +
		"  [unsupported component: survey]\n" +
		"  Send (submit)\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	values := map[string]any{"name": "Ada", "topics": []any{"A", "B"}, "newsletter": true}

	r, _ := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatPrettyText))
	out, err := r.Encode(values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if diff := cmp.Diff("name=Ada\nnewsletter=true\ntopics=A,B\n", string(out)); diff != "" {
		t.Fatalf("pretty mismatch (-want +got):\n%s", diff)
	}

	r, _ = New(WithPromptDriver(&stubDriver{}))
	out, err = r.Encode(map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if diff := cmp.Diff("{\n  \"name\": \"Ada\"\n}", string(out)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestApplySelection(t *testing.T) {
	got := applySelection([]string{"C", "A"}, []string{"A", "B", "C"}, []string{"A", "B", "C"})
	if diff := cmp.Diff([]any{"C", "A", "B"}, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}
