package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formcraft/pkg/codec"
	"github.com/goliatone/go-formcraft/pkg/renderers/tui"
	"github.com/goliatone/go-formcraft/pkg/testsupport"
	"github.com/goliatone/go-formcraft/pkg/tree"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// scriptedDriver answers prompts from a queue, in call order.
type scriptedDriver struct {
	answers []any
}

func (d *scriptedDriver) next() (any, error) {
	if len(d.answers) == 0 {
		return nil, fmt.Errorf("no answer scripted")
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	v, err := d.next()
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg tui.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	v, err := d.next()
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	v, err := d.next()
	if err != nil {
		return -1, err
	}
	return v.(int), nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	v, err := d.next()
	if err != nil {
		return nil, err
	}
	return v.([]int), nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, _ tui.TextAreaConfig) (string, error) {
	return d.Input(ctx, tui.InputConfig{})
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func runCLI(t *testing.T, driver tui.PromptDriver, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	a.ids = &tree.SequenceGenerator{}
	a.driver = driver
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func contactFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contact.json")
	require.NoError(t, os.WriteFile(path, testsupport.MustFixture(t, testsupport.ContactFixture), 0o644))
	return path
}

func TestTypes(t *testing.T) {
	out, _, err := runCLI(t, nil, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "Basic Input\n")
	assert.Contains(t, out, "  textfield    Text Field     value/string\n")
	assert.Contains(t, out, "  panel        Panel          container\n")
	assert.NotContains(t, out, "survey")
}

func TestTree(t *testing.T) {
	out, _, err := runCLI(t, nil, "tree", contactFile(t))
	require.NoError(t, err)

	for _, line := range []string{
		"* 1. Contact #step_contact",
		"  Full name [textfield] key=name #c_name",
		"  Details [panel] key=details #c_details",
		"    Phone [phone] key=phone #c_phone when channel=phone",
		"  2. Preferences #step_prefs",
		"  Rating [survey] key=rating #c_rating",
	} {
		assert.Contains(t, out, line+"\n")
	}
}

func TestAddWritesDocument(t *testing.T) {
	path := contactFile(t)

	out, errOut, err := runCLI(t, nil, "add", path, "textfield", "--parent", "c_details", "--write")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "added component_1 (textfield) key=textfield1\n", errOut)

	payload, err := codec.ReadFile(path)
	require.NoError(t, err)
	doc := payload.Document()
	details, ok := tree.Find(doc.WizardSteps, "c_details")
	require.True(t, ok)
	require.Len(t, details.Components, 4)
	assert.Equal(t, "component_1", details.Components[3].ID)
	assert.Equal(t, "New textfield", details.Components[3].Label)
}

func TestAddRejectsLeafParent(t *testing.T) {
	_, _, err := runCLI(t, nil, "add", contactFile(t), "textfield", "--parent", "c_name")
	assert.ErrorIs(t, err, tree.ErrInvalidContainerTarget)
}

func TestUpdateDiff(t *testing.T) {
	out, _, err := runCLI(t, nil, "update", contactFile(t), "c_name", "--set", "label=Your name", "--set", "maxLength=10", "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, `-           "label": "Full name",`)
	assert.Contains(t, out, `+           "label": "Your name",`)
	assert.Contains(t, out, `+           "maxLength": 10`)
	assert.Contains(t, out, `            "id": "c_name",`)
}

func TestUpdatePrintsDocument(t *testing.T) {
	out, _, err := runCLI(t, nil, "update", contactFile(t), "c_email", "--patch", `{"required":true,"conditional":{"show":true,"when":"channel","eq":"email"}}`)
	require.NoError(t, err)

	doc := testsupport.MustDecode(t, out)
	email, ok := tree.Find(doc.WizardSteps, "c_email")
	require.True(t, ok)
	assert.True(t, email.Required)
	require.NotNil(t, email.Conditional)
	assert.Equal(t, "email", email.Conditional.Eq)
}

func TestUpdateSetCoercesScalarsIntoText(t *testing.T) {
	out, _, err := runCLI(t, nil, "update", contactFile(t), "c_email",
		"--set", "label=2024", "--set", "placeholder=true",
		"--patch", `{"conditional":{"show":true,"when":"age","eq":18}}`)
	require.NoError(t, err)

	doc := testsupport.MustDecode(t, out)
	email, ok := tree.Find(doc.WizardSteps, "c_email")
	require.True(t, ok)
	assert.Equal(t, "2024", email.Label)
	assert.Equal(t, "true", email.Placeholder)
	require.NotNil(t, email.Conditional)
	assert.Equal(t, "18", email.Conditional.Eq)
}

func TestDeleteAndSteps(t *testing.T) {
	path := contactFile(t)

	_, _, err := runCLI(t, nil, "delete", path, "missing")
	assert.ErrorIs(t, err, tree.ErrDanglingReference)

	_, _, err = runCLI(t, nil, "delete", path, "c_details", "-w")
	require.NoError(t, err)
	_, _, err = runCLI(t, nil, "step", "add", path, "--title", "Review", "--description", "Check your answers", "-w")
	require.NoError(t, err)

	payload, err := codec.ReadFile(path)
	require.NoError(t, err)
	doc := payload.Document()
	_, found := tree.Find(doc.WizardSteps, "c_email")
	assert.False(t, found)
	require.Len(t, doc.WizardSteps, 3)
	assert.Equal(t, "Review", doc.WizardSteps[2].Title)
	assert.Equal(t, "Check your answers", doc.WizardSteps[2].Description)
	assert.Equal(t, 2, doc.CurrentStepIndex)

	_, _, err = runCLI(t, nil, "step", "delete", path, doc.WizardSteps[2].ID, "-w")
	require.NoError(t, err)
	payload, err = codec.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, payload.Steps, 2)
	assert.Equal(t, 1, payload.StepIndex)
}

func TestRenderModes(t *testing.T) {
	path := contactFile(t)

	out, _, err := runCLI(t, nil, "render", path, "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "formcraft-theme-dark")
	assert.Contains(t, out, `name="name" value="Ada"`)

	out, _, err = runCLI(t, nil, "render", path, "--mode", "builder", "--step", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "formcraft-mode-builder")
	assert.Contains(t, out, `data-component-id="c_rating"`)

	out, _, err = runCLI(t, nil, "render", path, "--renderer", "tui")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Step 1 of 2: Contact\n"), out)

	_, _, err = runCLI(t, nil, "render", path, "--mode", "editor")
	assert.Error(t, err)
}

func TestFill(t *testing.T) {
	path := contactFile(t)
	driver := &scriptedDriver{answers: []any{
		"Ada Lovelace",    // name
		"ada@example.com", // email
		0,                 // channel: email
		0,                 // Next step
		[]int{0, 2},       // topics
		false,             // newsletter
		2,                 // Submit
	}}

	out, _, err := runCLI(t, driver, "fill", path, "--write")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"channel": "email",
		"topics": ["A", "C"],
		"newsletter": false
	}`, out)

	payload, err := codec.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", payload.Values["name"])
	assert.Equal(t, 1, payload.StepIndex)
}

func TestBuildPatch(t *testing.T) {
	patch, err := buildPatch(`{"label":"A"}`, []string{"label=B", "required=true", "placeholder=free text"})
	require.NoError(t, err)
	assert.Equal(t, "B", patch["label"])
	assert.Equal(t, true, patch["required"])
	assert.Equal(t, "free text", patch["placeholder"])

	_, err = buildPatch("", nil)
	assert.Error(t, err)
	_, err = buildPatch("", []string{"novalue"})
	assert.Error(t, err)
	_, err = buildPatch("[1]", nil)
	assert.Error(t, err)
}
