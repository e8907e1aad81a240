package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formcraft/pkg/model"
	"github.com/goliatone/go-formcraft/pkg/registry"
	"github.com/goliatone/go-formcraft/pkg/render"
	"github.com/goliatone/go-formcraft/pkg/renderers/html"
	"github.com/goliatone/go-formcraft/pkg/testsupport"
)

func renderDoc(t *testing.T, doc model.FormDocument, options render.RenderOptions, projectOpts ...render.ProjectOption) string {
	t.Helper()

	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if options.Mode == render.ModeBuilder {
		projectOpts = append(projectOpts, render.WithAllNodes())
	}
	view := render.Project(doc, registry.NewDefault(), projectOpts...)
	out, err := renderer.Render(context.Background(), view, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(out, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, out)
		}
	}
}

func TestRenderEmptyTextInputBoundToKey(t *testing.T) {
	doc := testsupport.MustDecode(t, `{"wizardSteps":[{"id":"s1","title":"A","components":[
		{"id":"c1","type":"textfield","key":"textfield1","label":"New textfield","placeholder":"Enter textfield","required":false}
	]}],"formValues":{},"currentStepIndex":0}`)

	out := renderDoc(t, doc, render.RenderOptions{})

	assertContains(t, out,
		`<input type="text" id="fc-c1" name="textfield1" value="" placeholder="Enter textfield">`,
		`<label for="fc-c1" class="formcraft-label">New textfield</label>`,
		`formcraft-theme-light`,
		`data-action="submit"`,
	)
	assertNotContains(t, out, `data-action="previous"`, `formcraft-steps`, `Preview`)
}

func TestRenderBoundValuesAndConstraints(t *testing.T) {
	doc := testsupport.MustLoadDocument(t, testsupport.ContactFixture)

	out := renderDoc(t, doc, render.RenderOptions{Theme: render.ThemeDark})

	assertContains(t, out,
		`name="name" value="Ada" placeholder="Enter your name" required minlength="2" maxlength="40"`,
		`<span class="formcraft-required" aria-hidden="true">*</span>`,
		`<fieldset class="formcraft-container formcraft-container--panel" data-component-id="c_details"><legend class="formcraft-legend">Details</legend>`,
		`<div class="formcraft-empty" data-empty="true">No components</div>`,
		`<input type="radio" name="channel" value="phone">`,
		`formcraft-theme-dark`,
		`<nav class="formcraft-steps"`,
		`data-action="next"`,
	)
	assertNotContains(t, out, `data-action="submit"`, `c_phone`)
}

func TestRenderLastStepChoicesAndPlaceholder(t *testing.T) {
	doc := testsupport.MustLoadDocument(t, testsupport.ContactFixture)
	doc.CurrentStepIndex = 1

	out := renderDoc(t, doc, render.RenderOptions{Mode: render.ModePreview, Readonly: true})

	assertContains(t, out,
		`<input type="checkbox" name="topics" value="A" checked disabled> A`,
		`<input type="checkbox" name="topics" value="B" disabled> B`,
		`<input type="checkbox" id="fc-c_news" name="newsletter" value="true" disabled> Newsletter`,
		`Unsupported component: survey`,
		`<button type="submit" class="formcraft-button formcraft-button--submit" data-component-id="c_send" disabled>Send</button>`,
		`data-action="previous"`,
		`data-action="submit" disabled`,
		`formcraft-preview-badge`,
		`formcraft-readonly`,
	)
}

func TestRenderBuilderOutline(t *testing.T) {
	doc := testsupport.MustLoadDocument(t, testsupport.ContactFixture)

	out := renderDoc(t, doc, render.RenderOptions{Mode: render.ModeBuilder})

	assertContains(t, out,
		`<span class="formcraft-outline-label">Full name</span><span class="formcraft-outline-type">textfield</span><span class="formcraft-badge formcraft-badge--required">Required</span>`,
		`data-component-id="c_phone"`,
		`formcraft-badge--conditional`,
		`<div class="formcraft-dropzone" data-parent-id="c_layout"><div class="formcraft-empty" data-empty="true">Drop components here</div></div>`,
	)
	assertNotContains(t, out, `<input`, `data-action="next"`)
}

func TestRenderEmptyDocument(t *testing.T) {
	out := renderDoc(t, model.FormDocument{}, render.RenderOptions{})
	assertContains(t, out, "No form steps available")
	assertNotContains(t, out, "<form")
}

func TestRenderSanitizesContent(t *testing.T) {
	doc := model.FormDocument{
		WizardSteps: []model.WizardStep{{
			ID:    "s1",
			Title: "Info",
			Components: []model.FormComponent{
				{ID: "c", Type: "content", Content: `<p class="lead">Hello</p><script>alert(1)</script>`},
				{ID: "h", Type: "htmlelement", HTML: `<a href="javascript:alert(1)">x</a><strong>bold</strong>`},
			},
		}},
	}

	out := renderDoc(t, doc, render.RenderOptions{})

	assertContains(t, out, `<p class="lead">Hello</p>`, `<strong>bold</strong>`)
	assertNotContains(t, out, `<script>`, `javascript:`)
}

func TestRendererMetadata(t *testing.T) {
	renderer, err := html.New(html.WithStylesheets("/formcraft.css"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != html.Name || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected metadata %q %q", renderer.Name(), renderer.ContentType())
	}

	reg := render.NewRegistry()
	reg.MustRegister(renderer)
	out, err := reg.Render(context.Background(), html.Name, render.Project(model.FormDocument{}, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render through registry: %v", err)
	}
	assertContains(t, string(out), `<link rel="stylesheet" href="/formcraft.css">`)
}
