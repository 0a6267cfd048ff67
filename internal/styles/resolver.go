package styles

import (
	"maps"

	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
)

// Fallbacks applied when no layer sets a value.
const (
	DefaultContainerWidth = 1200
	DefaultNarrowWidth    = 800
	DefaultFontSize       = 16
	DefaultLineHeight     = 1.5
	DefaultUnit           = "px"
)

var defaultPadding = [4]float64{40, 20, 40, 20}

// Effective is the layout and style a section renders with at one viewport.
type Effective struct {
	Viewport settings.Viewport
	Layout   settings.LayoutSettings
	Style    settings.StyleSettings
	Content  *settings.ContentOverride
}

type Option func(*Resolver)

// WithUnit sets the spacing unit used when a box does not carry its own.
func WithUnit(unit string) Option {
	return func(r *Resolver) {
		if unit != "" {
			r.unit = unit
		}
	}
}

func WithContainerWidth(width float64) Option {
	return func(r *Resolver) {
		if width > 0 {
			r.containerWidth = width
		}
	}
}

func WithNarrowWidth(width float64) Option {
	return func(r *Resolver) {
		if width > 0 {
			r.narrowWidth = width
		}
	}
}

// Resolver layers base settings and responsive overrides and turns the result
// into CSS properties. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	unit           string
	containerWidth float64
	narrowWidth    float64
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		unit:           DefaultUnit,
		containerWidth: DefaultContainerWidth,
		narrowWidth:    DefaultNarrowWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve merges the responsive override for viewport over the section's base
// settings. Desktop is the base and ignores overrides. Brandkit values are not
// looked up here; the brandkit engine writes them into the section first.
func (r *Resolver) Resolve(section sections.Section, viewport settings.Viewport) Effective {
	effective := Effective{
		Viewport: viewport,
		Layout:   section.Layout,
		Style:    section.Style,
	}
	if viewport == settings.Desktop || !viewport.Valid() {
		effective.Viewport = settings.Desktop
		return effective
	}

	override := section.Responsive.For(viewport)
	if override == nil {
		return effective
	}
	if override.Layout != nil {
		effective.Layout = settings.MergeLayout(effective.Layout, *override.Layout)
	}
	if override.Style != nil {
		effective.Style = settings.MergeStyle(effective.Style, *override.Style)
	}
	effective.Content = override.Content
	return effective
}

// ResolveTranslation returns the translation for languageID with the
// viewport's content override applied.
func (r *Resolver) ResolveTranslation(section sections.Section, viewport settings.Viewport, languageID string) (sections.Translation, bool) {
	tr, ok := section.Translation(languageID)
	if !ok {
		return sections.Translation{}, false
	}
	content := r.Resolve(section, viewport).Content
	if content == nil {
		return tr, true
	}
	if content.Title != nil {
		tr.Title = *content.Title
	}
	if content.Subtitle != nil {
		tr.Subtitle = *content.Subtitle
	}
	if content.Content != nil {
		tr.Content = *content.Content
	}
	if content.Excerpt != nil {
		tr.Excerpt = *content.Excerpt
	}
	if content.Metadata != nil {
		metadata := make(map[string]any, len(tr.Metadata)+len(content.Metadata))
		maps.Copy(metadata, tr.Metadata)
		maps.Copy(metadata, content.Metadata)
		tr.Metadata = metadata
	}
	return tr, true
}

// ResolveCSS resolves and computes the inline declarations for section.
func (r *Resolver) ResolveCSS(section sections.Section, viewport settings.Viewport) string {
	return r.Compute(r.Resolve(section, viewport)).CSS()
}
