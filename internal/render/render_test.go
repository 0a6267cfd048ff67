package render_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/google/uuid"
)

func richText(id byte, content string, metadata map[string]any) sections.Section {
	return sections.Section{
		ID:       uuid.UUID{15: id},
		Type:     sections.TypeRichText,
		IsActive: true,
		Translations: []sections.Translation{{
			LanguageID: "en",
			Title:      "About <us>",
			Content:    content,
			Metadata:   metadata,
		}},
	}
}

func customHTML() sections.Section {
	return sections.Section{
		ID:       uuid.UUID{15: 9},
		Type:     sections.TypeCustomHTML,
		IsActive: true,
		Translations: []sections.Translation{{
			LanguageID: "en",
			Title:      "Widget",
			Metadata:   map[string]any{"html": `<div class="w">hi</div><script>steal()</script>`, "height": 420.0},
		}},
		Custom: settings.CustomSettings{
			CustomCSS: settings.Untrusted(".w{color:red}"),
			CustomJS:  settings.Untrusted("console.log('x')"),
			Sandbox:   true,
		},
	}
}

func TestRichTextSanitises(t *testing.T) {
	r := render.New()

	cases := []struct {
		name    string
		content string
		format  string
		want    string
	}{
		{"html", `<p onclick="x()">hi</p><script>alert(1)</script>`, "html", "<p>hi</p>"},
		{"markdown", "Some **bold**", "markdown", "<p>Some <strong>bold</strong></p>"},
		{"default format", "<em>ok</em>", "", "<em>ok</em>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.RichText(tc.content, tc.format)
			if err != nil {
				t.Fatalf("RichText: %v", err)
			}
			if strings.TrimSpace(string(got)) != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCustomHTMLRendersInSandboxedFrame(t *testing.T) {
	r := render.New()

	out, err := r.Section(customHTML(), settings.Desktop, "en")
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, `<iframe class="pb-frame" title="Widget" sandbox="allow-scripts allow-popups"`) {
		t.Fatalf("expected sandboxed iframe, got %s", html)
	}
	if strings.Contains(html, "allow-same-origin") {
		t.Fatalf("frame must not share the page origin")
	}
	if strings.Contains(html, "<script>") || strings.Contains(html, `<div class="w">`) {
		t.Fatalf("untrusted markup leaked into trusted tree: %s", html)
	}
	for _, fragment := range []string{"&lt;div class=&#34;w&#34;&gt;hi", "&lt;style&gt;.w{color:red}", "console.log(&#39;x&#39;)"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q inside srcdoc, got %s", fragment, html)
		}
	}
	if !strings.Contains(html, "height:420px") {
		t.Fatalf("expected metadata frame height, got %s", html)
	}
}

func TestWithSandboxDropsOriginTokens(t *testing.T) {
	r := render.New(render.WithSandbox("allow-forms", "allow-same-origin", "ALLOW-TOP-NAVIGATION", "allow-forms"))
	if got := r.Sandbox(); got != "allow-forms" {
		t.Fatalf("expected only allow-forms, got %q", got)
	}
}

func TestSectionMarkup(t *testing.T) {
	r := render.New()
	section := richText(1, "<p>Body</p>", nil)
	section.Style.TextColor = settings.Ptr("#111111")
	section.Custom.CSSClasses = []string{"featured", `bad" onload="x`}

	out, err := r.Section(section, settings.Desktop, "en")
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	html := string(out)

	if !strings.Contains(html, `class="pb-section pb-section--rich-text featured"`) {
		t.Fatalf("unexpected classes: %s", html)
	}
	if strings.Contains(html, "onload") {
		t.Fatalf("invalid class names must be dropped: %s", html)
	}
	if !strings.Contains(html, "color: #111111") {
		t.Fatalf("expected resolved style, got %s", html)
	}
	if !strings.Contains(html, "<h2 class=\"pb-section__title\">About &lt;us&gt;</h2>") {
		t.Fatalf("title must be escaped: %s", html)
	}
	if !strings.Contains(html, `<div class="pb-section__content"><p>Body</p></div>`) {
		t.Fatalf("expected inline sanitised body: %s", html)
	}
	if strings.Contains(html, "<iframe") {
		t.Fatalf("plain rich text must not be framed")
	}
}

func TestCustomCodeMovesSectionIntoFrame(t *testing.T) {
	section := richText(2, "<p>Body</p>", nil)
	section.Custom.CustomCSS = settings.Untrusted("p{margin:0}")

	out, _ := render.New().Section(section, settings.Desktop, "en")
	if !strings.Contains(string(out), "<iframe") || strings.Contains(string(out), "<p>Body</p>") {
		t.Fatalf("custom CSS must isolate the section body: %s", out)
	}

	unsanitised, _ := render.New(render.WithSanitize(false)).Section(richText(3, "<p>Raw</p>", nil), settings.Desktop, "en")
	if !strings.Contains(string(unsanitised), "&lt;p&gt;Raw&lt;/p&gt;") || strings.Contains(string(unsanitised), "<p>Raw</p>") {
		t.Fatalf("unsanitised rich text must be framed: %s", unsanitised)
	}
}

func TestPageSkipsInactiveAndOrders(t *testing.T) {
	first := richText(1, "first", nil)
	second := richText(2, "second", nil)
	second.Order = 1
	hidden := richText(3, "hidden", nil)
	hidden.Order = 2
	hidden.IsActive = false

	out, err := render.New().Page([]sections.Section{second, hidden, first}, settings.Desktop, "en")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := string(out)

	if strings.Contains(html, "hidden") {
		t.Fatalf("inactive sections must not render: %s", html)
	}
	if strings.Index(html, "first") > strings.Index(html, "second") {
		t.Fatalf("sections out of order: %s", html)
	}
	if !strings.HasPrefix(html, `<main class="pb-page" lang="en">`) {
		t.Fatalf("unexpected page wrapper: %s", html)
	}
}

func TestTranslationFallback(t *testing.T) {
	out, _ := render.New().Section(richText(1, "hola", nil), settings.Desktop, "de")
	if !strings.Contains(string(out), "hola") {
		t.Fatalf("expected fallback translation, got %s", out)
	}
}
