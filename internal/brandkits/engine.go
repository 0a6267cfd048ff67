package brandkits

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/registry"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	tabletFontScale    = 0.875
	tabletSpacingScale = 0.75
	mobileFontScale    = 0.75
	mobileSpacingScale = 0.5
)

// Catalog reports which brandkit categories a section type accepts.
// *registry.Registry satisfies it.
type Catalog interface {
	Capabilities(sectionType sections.SectionType) (registry.Capabilities, bool)
}

type EngineOption func(*Engine)

func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine derives settings patches from a brandkit and applies them to
// sections under a conflict policy. It never mutates its inputs.
type Engine struct {
	catalog Catalog
	now     func() time.Time
	logger  interfaces.Logger
}

func NewEngine(catalog Catalog, opts ...EngineOption) (*Engine, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	e := &Engine{
		catalog: catalog,
		now:     time.Now,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Apply runs the brandkit over the targeted sections of list and returns the
// report together with the updated list. The input list is left untouched;
// committing Result.Sections is up to the caller.
func (e *Engine) Apply(ctx context.Context, kit Brandkit, list []sections.Section, req ApplyRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := kit.Validate(); err != nil {
		return Result{}, err
	}
	opts, err := req.Options.normalize()
	if err != nil {
		return Result{}, err
	}

	out := sections.CloneAll(list)
	result := Result{BrandkitID: kit.ID, DryRun: req.DryRun}
	now := e.now()

	for _, id := range targets(out, req.SectionIDs) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		idx := slices.IndexFunc(out, func(s sections.Section) bool { return s.ID == id })
		if idx < 0 {
			result.record(SectionResult{
				SectionID: id,
				Status:    StatusFailed,
				Reason:    "section not found",
				Err:       sections.ErrSectionNotFound,
			})
			continue
		}
		updated, report := e.applySection(kit, out[idx], opts, now)
		out[idx] = updated
		result.record(report)
	}
	result.Sections = out

	e.logger.Info("brandkits.applied",
		"brandkit_id", kit.ID.String(),
		"dry_run", req.DryRun,
		"conflict_resolution", string(opts.ConflictResolution),
		"applied", result.AppliedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

// Preview runs Apply as a dry run.
func (e *Engine) Preview(ctx context.Context, kit Brandkit, list []sections.Section, req ApplyRequest) (Result, error) {
	req.DryRun = true
	return e.Apply(ctx, kit, list, req)
}

// ValidateCompatibility checks, without changing anything, whether the
// sections already agree with the brandkit and whether an apply would fail.
func (e *Engine) ValidateCompatibility(kit Brandkit, list []sections.Section) Compatibility {
	report := Compatibility{Issues: []string{}, Suggestions: []string{}}
	if err := kit.Validate(); err != nil {
		report.Issues = append(report.Issues, err.Error())
	}
	if _, ok := kit.Spacing["md"]; !ok {
		report.Suggestions = append(report.Suggestions, "brandkit defines no md spacing token; horizontal padding and gaps will not be applied")
	}
	if _, ok := kit.Spacing["xl"]; !ok {
		report.Suggestions = append(report.Suggestions, "brandkit defines no xl spacing token; vertical padding will not be applied")
	}

	for _, section := range list {
		label := fmt.Sprintf("section %d (%s)", section.Order, section.Type)
		caps, ok := e.catalog.Capabilities(section.Type)
		if !ok {
			report.Issues = append(report.Issues, label+": unknown section type")
			continue
		}
		if !caps.Colors && !caps.Typography && !caps.Spacing {
			report.Suggestions = append(report.Suggestions, label+": section type ignores brandkit tokens")
			continue
		}
		if !caps.Colors {
			continue
		}
		for _, color := range usedColors(section.Style) {
			if kit.Colors.Contains(color.value) {
				continue
			}
			report.Issues = append(report.Issues, fmt.Sprintf("%s: %s %s is outside the brandkit palette", label, color.field, color.value))
			if section.IsCustomized("style." + color.field) {
				report.Suggestions = append(report.Suggestions, label+": apply colors with overwrite to replace the customised "+color.field)
			} else {
				report.Suggestions = append(report.Suggestions, label+": apply colors to align "+color.field)
			}
		}
	}
	report.Compatible = len(report.Issues) == 0
	return report
}

func (e *Engine) applySection(kit Brandkit, section sections.Section, opts ApplyOptions, now time.Time) (sections.Section, SectionResult) {
	report := SectionResult{SectionID: section.ID, Type: section.Type}

	caps, ok := e.catalog.Capabilities(section.Type)
	if !ok {
		report.Status = StatusFailed
		report.Reason = fmt.Sprintf("unknown section type %s", section.Type)
		report.Err = ErrIncompatibleSection
		return section, report
	}
	cats := selectCategories(caps, opts)
	if !cats.any() {
		report.Status = StatusFailed
		report.Reason = fmt.Sprintf("%s does not accept %s", section.Type, strings.Join(requested(opts).names(), ", "))
		report.Err = ErrIncompatibleSection
		return section, report
	}

	if opts.ConflictResolution == ConflictSkip {
		if customized := customizedUnder(section, cats.prefixes()); len(customized) > 0 {
			report.Status = StatusSkipped
			report.Reason = "customised: " + strings.Join(customized, ", ")
			return section, report
		}
	}

	p := derivePatch(kit, section, caps, cats)
	if opts.ConflictResolution == ConflictMerge {
		p = p.preserving(section)
	}

	updated := sections.Clone(section)
	updated.Layout = settings.MergeLayout(updated.Layout, p.layout)
	updated.Style = settings.MergeStyle(updated.Style, p.style)
	updated.Responsive = settings.Merge(updated.Responsive, p.responsive)

	report.Changes = slices.Concat(
		settings.Diff("layout", section.Layout, updated.Layout),
		settings.Diff("style", section.Style, updated.Style),
		settings.Diff("responsive", section.Responsive, updated.Responsive),
	)
	if len(report.Changes) == 0 {
		report.Status = StatusSkipped
		report.Reason = "already matches brandkit"
		return section, report
	}

	if opts.ConflictResolution == ConflictOverwrite && !opts.PreserveCustomizations {
		updated.CustomizedFields = sections.ForgetCustomized(updated.CustomizedFields, p.paths()...)
	}
	updated.UpdatedAt = now
	report.Status = StatusApplied
	return updated, report
}

func (o ApplyOptions) normalize() (ApplyOptions, error) {
	if o.ConflictResolution == "" {
		o.ConflictResolution = ConflictMerge
	}
	switch o.ConflictResolution {
	case ConflictMerge, ConflictOverwrite, ConflictSkip:
	default:
		return o, fmt.Errorf("%w: %q", ErrConflictModeInvalid, o.ConflictResolution)
	}
	if !requested(o).any() {
		return o, ErrNoCategories
	}
	return o, nil
}

func (r *Result) record(report SectionResult) {
	switch report.Status {
	case StatusApplied:
		r.AppliedCount++
	case StatusSkipped:
		r.SkippedCount++
	case StatusFailed:
		r.FailedCount++
	}
	r.SectionResults = append(r.SectionResults, report)
}

// targets returns the ids to process in request order, deduplicated. An
// empty request targets every section in list order.
func targets(list []sections.Section, ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		out := make([]uuid.UUID, len(list))
		for i, section := range list {
			out[i] = section.ID
		}
		return out
	}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

type categories struct {
	colors     bool
	typography bool
	spacing    bool
	responsive bool
}

func requested(o ApplyOptions) categories {
	return categories{
		colors:     o.ApplyColors,
		typography: o.ApplyTypography,
		spacing:    o.ApplySpacing,
		responsive: o.ApplyResponsive,
	}
}

// selectCategories intersects the requested categories with what the
// section type accepts. Responsive scaling needs typography or spacing.
func selectCategories(caps registry.Capabilities, o ApplyOptions) categories {
	return categories{
		colors:     o.ApplyColors && caps.Colors,
		typography: o.ApplyTypography && caps.Typography,
		spacing:    o.ApplySpacing && caps.Spacing,
		responsive: o.ApplyResponsive && (caps.Typography || caps.Spacing),
	}
}

func (c categories) any() bool {
	return c.colors || c.typography || c.spacing || c.responsive
}

func (c categories) names() []string {
	var out []string
	if c.colors {
		out = append(out, "colors")
	}
	if c.typography {
		out = append(out, "typography")
	}
	if c.spacing {
		out = append(out, "spacing")
	}
	if c.responsive {
		out = append(out, "responsive")
	}
	return out
}

// prefixes lists the section paths each category may write.
func (c categories) prefixes() []string {
	var out []string
	if c.colors {
		out = append(out,
			"style.textColor",
			"style.background.color",
			"style.background.gradient.stops",
			"style.border.color",
		)
	}
	if c.typography {
		out = append(out, "style.typography")
	}
	if c.spacing {
		out = append(out, "layout.padding", "layout.flex.gap", "layout.grid.gap")
	}
	if c.responsive {
		out = append(out, "responsive")
	}
	return out
}

func customizedUnder(section sections.Section, prefixes []string) []string {
	var out []string
	for _, field := range section.CustomizedFields {
		for _, prefix := range prefixes {
			if settings.HasPathPrefix(field, prefix) || settings.HasPathPrefix(prefix, field) {
				out = append(out, field)
				break
			}
		}
	}
	return out
}

// overlaps reports whether path was customised, either itself, below it, or
// through a customised ancestor.
func overlaps(section sections.Section, path string) bool {
	return len(customizedUnder(section, []string{path})) > 0
}

type patch struct {
	layout     settings.LayoutSettings
	style      settings.StyleSettings
	responsive settings.ResponsiveSettings
}

func (p patch) preserving(section sections.Section) patch {
	keep := func(prefix string) func(string) bool {
		return func(path string) bool { return !overlaps(section, prefix+"."+path) }
	}
	return patch{
		layout:     settings.Filter(p.layout, keep("layout")),
		style:      settings.Filter(p.style, keep("style")),
		responsive: settings.Filter(p.responsive, keep("responsive")),
	}
}

func (p patch) paths() []string {
	var out []string
	for _, path := range settings.Paths(p.layout) {
		out = append(out, "layout."+path)
	}
	for _, path := range settings.Paths(p.style) {
		out = append(out, "style."+path)
	}
	for _, path := range settings.Paths(p.responsive) {
		out = append(out, "responsive."+path)
	}
	return out
}

func derivePatch(kit Brandkit, section sections.Section, caps registry.Capabilities, cats categories) patch {
	var p patch
	if cats.colors {
		p.style = colorPatch(kit, section.Style, caps)
	}
	if cats.typography {
		p.style.Typography = typographyPatch(kit, caps)
	}
	if cats.spacing {
		p.layout = spacingPatch(kit, section.Layout)
	}
	if cats.responsive {
		p.responsive = responsivePatch(kit, section, caps)
	}
	return p
}

func colorPatch(kit Brandkit, style settings.StyleSettings, caps registry.Capabilities) settings.StyleSettings {
	var out settings.StyleSettings
	background := backgroundType(style)

	if color, ok := textColor(kit, background, caps); ok {
		out.TextColor = &color
	}

	switch background {
	case settings.BackgroundColor:
		if color := kit.Colors.Neutral["50"]; color != "" {
			out.Background = &settings.Background{Color: &color}
		}
	case settings.BackgroundGradient:
		from, ok := kit.Colors.Primary.Base()
		to, hasSecondary := kit.Colors.Secondary.Base()
		if !hasSecondary {
			to, _ = kit.Colors.Primary.Shade("700")
		}
		if ok {
			out.Background = &settings.Background{Gradient: &settings.Gradient{
				Stops: []settings.GradientStop{{Color: from, Position: 0}, {Color: to, Position: 100}},
			}}
		}
	}

	if style.Border != nil && style.Border.Width != nil && *style.Border.Width > 0 {
		color := kit.Colors.Neutral["200"]
		if color == "" {
			color, _ = kit.Colors.Primary.Base()
		}
		if color != "" {
			out.Border = &settings.Border{Color: &color}
		}
	}
	return out
}

// textColor picks a light neutral over media and gradient backgrounds, the
// primary colour for headings and the darkest neutral for body text.
func textColor(kit Brandkit, background settings.BackgroundType, caps registry.Capabilities) (string, bool) {
	switch background {
	case settings.BackgroundGradient, settings.BackgroundImage, settings.BackgroundVideo:
		if color := kit.Colors.Neutral["50"]; color != "" {
			return color, true
		}
		return "#ffffff", true
	}
	if caps.TextStyle != "heading" {
		if color := kit.Colors.Neutral["900"]; color != "" {
			return color, true
		}
	}
	return kit.Colors.Primary.Base()
}

func backgroundType(style settings.StyleSettings) settings.BackgroundType {
	if style.Background == nil || style.Background.Type == nil {
		return settings.BackgroundNone
	}
	return *style.Background.Type
}

func typographyPatch(kit Brandkit, caps registry.Capabilities) *settings.Typography {
	name := caps.TextStyle
	if name == "" {
		name = "body"
	}
	style := kit.Typography.Style(name)

	var out settings.Typography
	if style.FontFamily != "" {
		out.FontFamily = &style.FontFamily
	}
	if style.FontSize > 0 {
		out.FontSize = &style.FontSize
	}
	if style.FontWeight > 0 {
		out.FontWeight = &style.FontWeight
	}
	if style.LineHeight > 0 {
		out.LineHeight = &style.LineHeight
	}
	if style.LetterSpacing != 0 {
		out.LetterSpacing = &style.LetterSpacing
	}
	if out == (settings.Typography{}) {
		return nil
	}
	return &out
}

func spacingPatch(kit Brandkit, layout settings.LayoutSettings) settings.LayoutSettings {
	var out settings.LayoutSettings
	if padding := spacingBox(kit, 1); padding != nil {
		out.Padding = padding
	}
	if gap, ok := kit.Spacing["md"]; ok {
		if layout.Flex != nil {
			out.Flex = &settings.FlexSettings{Gap: settings.Ptr(gap)}
		}
		if layout.Grid != nil {
			out.Grid = &settings.GridSettings{Gap: settings.Ptr(gap)}
		}
	}
	return out
}

// spacingBox maps xl to the vertical and md to the horizontal padding,
// scaled by factor.
func spacingBox(kit Brandkit, factor float64) *settings.Box {
	var box settings.Box
	if v, ok := kit.Spacing["xl"]; ok {
		box.Top = settings.Ptr(round(v * factor))
		box.Bottom = settings.Ptr(round(v * factor))
	}
	if v, ok := kit.Spacing["md"]; ok {
		box.Right = settings.Ptr(round(v * factor))
		box.Left = settings.Ptr(round(v * factor))
	}
	if box == (settings.Box{}) {
		return nil
	}
	return &box
}

func responsivePatch(kit Brandkit, section sections.Section, caps registry.Capabilities) settings.ResponsiveSettings {
	fontSize := 0.0
	if caps.Typography {
		name := caps.TextStyle
		if name == "" {
			name = "body"
		}
		fontSize = kit.Typography.Style(name).FontSize
		if fontSize == 0 && section.Style.Typography != nil && section.Style.Typography.FontSize != nil {
			fontSize = *section.Style.Typography.FontSize
		}
	}

	override := func(fontScale, spacingScale float64) *settings.Override {
		var o settings.Override
		if fontSize > 0 {
			o.Style = &settings.StyleSettings{Typography: &settings.Typography{FontSize: settings.Ptr(round(fontSize * fontScale))}}
		}
		if caps.Spacing {
			if padding := spacingBox(kit, spacingScale); padding != nil {
				o.Layout = &settings.LayoutSettings{Padding: padding}
			}
		}
		if o.Style == nil && o.Layout == nil {
			return nil
		}
		return &o
	}

	return settings.ResponsiveSettings{
		Tablet: override(tabletFontScale, tabletSpacingScale),
		Mobile: override(mobileFontScale, mobileSpacingScale),
	}
}

type usedColor struct {
	field string
	value string
}

func usedColors(style settings.StyleSettings) []usedColor {
	var out []usedColor
	if style.TextColor != nil && *style.TextColor != "" {
		out = append(out, usedColor{field: "textColor", value: *style.TextColor})
	}
	if style.Background != nil && backgroundType(style) == settings.BackgroundColor && style.Background.Color != nil {
		out = append(out, usedColor{field: "background.color", value: *style.Background.Color})
	}
	if style.Border != nil && style.Border.Color != nil && style.Border.Width != nil && *style.Border.Width > 0 {
		out = append(out, usedColor{field: "border.color", value: *style.Border.Color})
	}
	return out
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
