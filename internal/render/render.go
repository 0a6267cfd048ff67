package render

import (
	"cmp"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"slices"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/internal/styles"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/microcosm-cc/bluemonday"
)

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"

	DefaultFrameHeight = 300
)

// forbiddenSandboxTokens would let framed content escape its origin.
var forbiddenSandboxTokens = map[string]bool{
	"allow-same-origin":                       true,
	"allow-top-navigation":                    true,
	"allow-top-navigation-by-user-activation": true,
}

var classNamePattern = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_-]*$`)

type Option func(*Renderer)

func WithResolver(resolver *styles.Resolver) Option {
	return func(r *Renderer) {
		if resolver != nil {
			r.resolver = resolver
		}
	}
}

func WithParser(parser markdown.Parser) Option {
	return func(r *Renderer) {
		if parser != nil {
			r.parser = parser
		}
	}
}

// WithPolicy replaces the bluemonday UGC policy used for rich text.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithSanitize toggles inline sanitised rich text. When disabled, rich text is
// treated as untrusted and moved into the sandboxed frame instead.
func WithSanitize(enabled bool) Option {
	return func(r *Renderer) {
		r.sanitize = enabled
	}
}

// WithSandbox sets the iframe sandbox tokens. Tokens that would grant the
// frame the page origin or top navigation are dropped.
func WithSandbox(tokens ...string) Option {
	return func(r *Renderer) {
		r.sandbox = r.sandbox[:0]
		for _, token := range tokens {
			token = strings.ToLower(strings.TrimSpace(token))
			if token == "" || forbiddenSandboxTokens[token] || slices.Contains(r.sandbox, token) {
				continue
			}
			r.sandbox = append(r.sandbox, token)
		}
	}
}

// WithFallbackLanguage picks the translation used when the requested one is missing.
func WithFallbackLanguage(languageID string) Option {
	return func(r *Renderer) {
		r.fallbackLanguage = languageID
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer turns sections into HTML. Rich text is sanitised; custom HTML, CSS
// and JS only ever appear inside a sandboxed iframe srcdoc.
type Renderer struct {
	resolver         *styles.Resolver
	parser           markdown.Parser
	policy           *bluemonday.Policy
	sanitize         bool
	sandbox          []string
	fallbackLanguage string
	logger           interfaces.Logger
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		resolver:         styles.NewResolver(),
		parser:           markdown.NewGoldmarkParser(markdown.ParseOptions{}),
		policy:           bluemonday.UGCPolicy(),
		sanitize:         true,
		sandbox:          []string{"allow-scripts", "allow-popups"},
		fallbackLanguage: "en",
		logger:           logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sandbox returns the sandbox attribute value used for frames.
func (r *Renderer) Sandbox() string {
	return strings.Join(r.sandbox, " ")
}

// RichText renders content in format ("html" or "markdown") and sanitises it.
func (r *Renderer) RichText(content, format string) (template.HTML, error) {
	body, err := r.richTextSource(content, format)
	if err != nil {
		return "", err
	}
	return template.HTML(r.policy.Sanitize(body)), nil
}

func (r *Renderer) richTextSource(content, format string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(format), FormatMarkdown) {
		out, err := r.parser.Parse([]byte(content))
		if err != nil {
			return "", fmt.Errorf("render: markdown: %w", err)
		}
		return string(out), nil
	}
	return content, nil
}

// Frame is the untrusted document rendered inside an iframe.
type Frame struct {
	Title  string
	HTML   settings.UntrustedContent
	CSS    settings.UntrustedContent
	JS     settings.UntrustedContent
	Height int
}

// Frame renders f as an iframe whose srcdoc holds the whole document. The
// content is attribute-escaped and never reaches the trusted markup.
func (r *Renderer) Frame(f Frame) template.HTML {
	height := f.Height
	if height <= 0 {
		height = DefaultFrameHeight
	}

	var doc strings.Builder
	doc.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
	if !f.CSS.IsEmpty() {
		doc.WriteString("<style>")
		doc.WriteString(f.CSS.Raw())
		doc.WriteString("</style>")
	}
	doc.WriteString("</head><body>")
	doc.WriteString(f.HTML.Raw())
	if !f.JS.IsEmpty() {
		doc.WriteString("<script>")
		doc.WriteString(f.JS.Raw())
		doc.WriteString("</script>")
	}
	doc.WriteString("</body></html>")

	var out strings.Builder
	out.WriteString(`<iframe class="pb-frame"`)
	if f.Title != "" {
		fmt.Fprintf(&out, ` title="%s"`, html.EscapeString(f.Title))
	}
	fmt.Fprintf(&out, ` sandbox="%s"`, html.EscapeString(r.Sandbox()))
	out.WriteString(` referrerpolicy="no-referrer" loading="lazy"`)
	fmt.Fprintf(&out, ` style="width:100%%;height:%dpx;border:0"`, height)
	fmt.Fprintf(&out, ` srcdoc="%s"></iframe>`, html.EscapeString(doc.String()))
	return template.HTML(out.String())
}

// Section renders one section for viewport and language. Inactive sections
// render with the inactive modifier so editors can dim them.
func (r *Renderer) Section(section sections.Section, viewport settings.Viewport, languageID string) (template.HTML, error) {
	tr := r.translation(section, viewport, languageID)

	classes := []string{"pb-section", "pb-section--" + strings.ToLower(strings.ReplaceAll(string(section.Type), "_", "-"))}
	if !section.IsActive {
		classes = append(classes, "pb-section--inactive")
	}
	for _, class := range section.Custom.CSSClasses {
		if classNamePattern.MatchString(class) {
			classes = append(classes, class)
		} else {
			r.logger.Debug("render.class.dropped", "section_id", section.ID.String(), "class", class)
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, `<section id="section-%s" class="%s" data-section-type="%s"`,
		section.ID, html.EscapeString(strings.Join(classes, " ")), html.EscapeString(string(section.Type)))
	if css := r.resolver.ResolveCSS(section, viewport); css != "" {
		fmt.Fprintf(&out, ` style="%s"`, html.EscapeString(css))
	}
	out.WriteString(">")

	if section.Type == sections.TypeCustomHTML {
		out.WriteString(string(r.Frame(Frame{
			Title:  tr.Title,
			HTML:   settings.Untrusted(metadataString(tr.Metadata, "html")),
			CSS:    section.Custom.CustomCSS,
			JS:     section.Custom.CustomJS,
			Height: metadataInt(tr.Metadata, "height"),
		})))
		out.WriteString("</section>")
		return template.HTML(out.String()), nil
	}

	body, err := r.body(section.Type, tr)
	if err != nil {
		r.logger.Error("render.section.failed", "section_id", section.ID.String(), "error", err)
		return "", err
	}

	if r.isolated(section) {
		out.WriteString(string(r.Frame(Frame{
			Title: tr.Title,
			HTML:  settings.Untrusted(body),
			CSS:   section.Custom.CustomCSS,
			JS:    section.Custom.CustomJS,
		})))
	} else {
		out.WriteString(body)
	}
	out.WriteString("</section>")
	return template.HTML(out.String()), nil
}

// Page renders the active sections in order.
func (r *Renderer) Page(list []sections.Section, viewport settings.Viewport, languageID string) (template.HTML, error) {
	ordered := slices.Clone(list)
	slices.SortStableFunc(ordered, func(a, b sections.Section) int { return cmp.Compare(a.Order, b.Order) })

	var out strings.Builder
	fmt.Fprintf(&out, `<main class="pb-page" lang="%s">`, html.EscapeString(languageID))
	rendered := 0
	for _, section := range ordered {
		if !section.IsActive {
			continue
		}
		markup, err := r.Section(section, viewport, languageID)
		if err != nil {
			return "", err
		}
		out.WriteString(string(markup))
		rendered++
	}
	out.WriteString("</main>")

	r.logger.Debug("render.page", "sections", rendered, "viewport", string(viewport), "language", languageID)
	return template.HTML(out.String()), nil
}

// isolated reports whether the section body must leave the trusted tree.
func (r *Renderer) isolated(section sections.Section) bool {
	return !r.sanitize || !section.Custom.CustomCSS.IsEmpty() || !section.Custom.CustomJS.IsEmpty()
}

func (r *Renderer) body(sectionType sections.SectionType, tr sections.Translation) (string, error) {
	var out strings.Builder

	heading := "h2"
	if sectionType == sections.TypeHero {
		heading = "h1"
	}
	if tr.Title != "" {
		fmt.Fprintf(&out, `<%s class="pb-section__title">%s</%s>`, heading, html.EscapeString(tr.Title), heading)
	}
	if tr.Subtitle != "" {
		fmt.Fprintf(&out, `<p class="pb-section__subtitle">%s</p>`, html.EscapeString(tr.Subtitle))
	}
	if tr.Content != "" {
		var content string
		if r.sanitize {
			sanitized, err := r.RichText(tr.Content, metadataString(tr.Metadata, "format"))
			if err != nil {
				return "", err
			}
			content = string(sanitized)
		} else {
			source, err := r.richTextSource(tr.Content, metadataString(tr.Metadata, "format"))
			if err != nil {
				return "", err
			}
			content = source
		}
		fmt.Fprintf(&out, `<div class="pb-section__content">%s</div>`, content)
	}
	return out.String(), nil
}

func (r *Renderer) translation(section sections.Section, viewport settings.Viewport, languageID string) sections.Translation {
	if tr, ok := r.resolver.ResolveTranslation(section, viewport, languageID); ok {
		return tr
	}
	if tr, ok := r.resolver.ResolveTranslation(section, viewport, r.fallbackLanguage); ok {
		return tr
	}
	if len(section.Translations) > 0 {
		tr, _ := r.resolver.ResolveTranslation(section, viewport, section.Translations[0].LanguageID)
		return tr
	}
	return sections.Translation{}
}

func metadataString(metadata map[string]any, key string) string {
	value, _ := metadata[key].(string)
	return value
}

func metadataInt(metadata map[string]any, key string) int {
	switch v := metadata[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
