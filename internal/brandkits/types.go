package brandkits

import (
	"errors"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrBrandkitInvalid       = errors.New("brandkits: brandkit invalid")
	ErrNoCategories          = errors.New("brandkits: no categories selected")
	ErrConflictModeInvalid   = errors.New("brandkits: unknown conflict resolution")
	ErrIncompatibleSection   = errors.New("brandkits: section type does not accept the selected categories")
	ErrCatalogRequired       = errors.New("brandkits: section catalog required")
	ErrThemeNameRequired     = errors.New("brandkits: theme name required")
	ErrThemeTokensUnresolved = errors.New("brandkits: theme selection has no tokens")
)

// Palette maps a shade key ("50".."900", "base") to a hex colour.
type Palette map[string]string

// Base returns the representative shade: "500", then "base", "DEFAULT", then
// the middle of the sorted keys.
func (p Palette) Base() (string, bool) {
	for _, key := range []string{"500", "base", "DEFAULT"} {
		if value, ok := p[key]; ok && value != "" {
			return value, true
		}
	}
	if len(p) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return p[keys[len(keys)/2]], true
}

// Shade returns p[key], falling back to Base.
func (p Palette) Shade(key string) (string, bool) {
	if value, ok := p[key]; ok && value != "" {
		return value, true
	}
	return p.Base()
}

// Colors groups the palettes of a brandkit.
type Colors struct {
	Primary   Palette            `json:"primary"`
	Secondary Palette            `json:"secondary,omitempty"`
	Neutral   Palette            `json:"neutral,omitempty"`
	Semantic  map[string]Palette `json:"semantic,omitempty"`
}

// Contains reports whether hex appears in any palette.
func (c Colors) Contains(hex string) bool {
	hex = strings.ToLower(strings.TrimSpace(hex))
	palettes := []Palette{c.Primary, c.Secondary, c.Neutral}
	for _, semantic := range c.Semantic {
		palettes = append(palettes, semantic)
	}
	for _, palette := range palettes {
		for _, value := range palette {
			if strings.ToLower(value) == hex {
				return true
			}
		}
	}
	return false
}

// TextStyle is a named typography preset ("heading", "body").
type TextStyle struct {
	FontFamily    string  `json:"fontFamily,omitempty"`
	FontSize      float64 `json:"fontSize,omitempty"`
	FontWeight    int     `json:"fontWeight,omitempty"`
	LineHeight    float64 `json:"lineHeight,omitempty"`
	LetterSpacing float64 `json:"letterSpacing,omitempty"`
}

// Typography holds font roles, size and weight scales and named text styles.
type Typography struct {
	Fonts      map[string]string    `json:"fonts,omitempty"`
	Sizes      map[string]float64   `json:"sizes,omitempty"`
	Weights    map[string]int       `json:"weights,omitempty"`
	TextStyles map[string]TextStyle `json:"textStyles,omitempty"`
}

// Style returns the named text style, synthesised from the font roles and
// scales when the brandkit does not define it.
func (t Typography) Style(name string) TextStyle {
	if style, ok := t.TextStyles[name]; ok {
		if style.FontFamily == "" {
			style.FontFamily = t.Fonts[name]
		}
		return style
	}
	style := TextStyle{FontFamily: t.Fonts[name]}
	if style.FontFamily == "" {
		style.FontFamily = t.Fonts["body"]
	}
	switch name {
	case "heading":
		style.FontSize = t.Sizes["3xl"]
		style.FontWeight = t.Weights["bold"]
	default:
		style.FontSize = t.Sizes["base"]
		style.FontWeight = t.Weights["normal"]
	}
	return style
}

// Brandkit is a named bundle of design tokens. It is treated as an immutable
// input by the engine.
type Brandkit struct {
	bun.BaseModel `bun:"table:brandkits,alias:bk"`

	ID          uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	Name        string             `bun:"name,notnull" json:"name"`
	Slug        string             `bun:"slug,notnull,unique" json:"slug"`
	Description string             `bun:"description" json:"description,omitempty"`
	Colors      Colors             `bun:"colors,type:jsonb" json:"colors"`
	Typography  Typography         `bun:"typography,type:jsonb" json:"typography"`
	Spacing     map[string]float64 `bun:"spacing,type:jsonb" json:"spacing,omitempty"`
	Theme       string             `bun:"theme" json:"theme,omitempty"`
	Variant     string             `bun:"variant" json:"variant,omitempty"`
	CreatedAt   time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Validate checks the brandkit with ozzo-validation. Every palette value must
// be a hex colour and a primary palette is required.
func (b Brandkit) Validate() error {
	semantic := validation.Errors{}
	for name, palette := range b.Colors.Semantic {
		semantic[name] = validation.Validate(map[string]string(palette), validation.Each(is.HexColor))
	}
	err := validation.Errors{
		"name":      validation.Validate(b.Name, validation.Required),
		"primary":   validation.Validate(map[string]string(b.Colors.Primary), validation.Required, validation.Each(is.HexColor)),
		"secondary": validation.Validate(map[string]string(b.Colors.Secondary), validation.Each(is.HexColor)),
		"neutral":   validation.Validate(map[string]string(b.Colors.Neutral), validation.Each(is.HexColor)),
		"semantic":  semantic.Filter(),
		"spacing": validation.Validate(b.Spacing, validation.Each(validation.By(func(value any) error {
			if v, _ := value.(float64); v < 0 {
				return validation.NewError("brandkits.spacing.negative", "spacing must not be negative")
			}
			return nil
		}))),
	}.Filter()
	if err != nil {
		return errors.Join(ErrBrandkitInvalid, err)
	}
	return nil
}

// ConflictResolution decides what happens to fields the editor customised.
type ConflictResolution string

const (
	ConflictMerge     ConflictResolution = "merge"
	ConflictOverwrite ConflictResolution = "overwrite"
	ConflictSkip      ConflictResolution = "skip"
)

// ApplyOptions selects token categories and the conflict policy. Merge always
// leaves customised fields alone. PreserveCustomizations only adds protection:
// under overwrite the values are replaced but the fields stay marked as
// customised, so a later merge still treats them as the editor's.
type ApplyOptions struct {
	ApplyColors            bool               `json:"applyColors"`
	ApplyTypography        bool               `json:"applyTypography"`
	ApplySpacing           bool               `json:"applySpacing"`
	ApplyResponsive        bool               `json:"applyResponsive"`
	ConflictResolution     ConflictResolution `json:"conflictResolution"`
	PreserveCustomizations bool               `json:"preserveCustomizations"`
}

// DefaultApplyOptions applies every category in merge mode, preserving
// customisations.
func DefaultApplyOptions() ApplyOptions {
	return ApplyOptions{
		ApplyColors:            true,
		ApplyTypography:        true,
		ApplySpacing:           true,
		ApplyResponsive:        true,
		ConflictResolution:     ConflictMerge,
		PreserveCustomizations: true,
	}
}

// ApplyRequest targets a subset of sections. An empty SectionIDs targets all.
type ApplyRequest struct {
	SectionIDs []uuid.UUID
	Options    ApplyOptions
	DryRun     bool
}

// SectionStatus is the outcome for one section.
type SectionStatus string

const (
	StatusApplied SectionStatus = "applied"
	StatusSkipped SectionStatus = "skipped"
	StatusFailed  SectionStatus = "failed"
)

// SectionResult reports what happened to one targeted section.
type SectionResult struct {
	SectionID uuid.UUID            `json:"sectionId"`
	Type      sections.SectionType `json:"type"`
	Status    SectionStatus        `json:"status"`
	Changes   []settings.Change    `json:"changes,omitempty"`
	Reason    string               `json:"reason,omitempty"`
	Err       error                `json:"-"`
}

// Result aggregates an apply or preview run. Sections holds the full page list
// with the changes applied; callers commit it only when DryRun is false.
type Result struct {
	BrandkitID     uuid.UUID          `json:"brandkitId"`
	DryRun         bool               `json:"dryRun"`
	AppliedCount   int                `json:"appliedCount"`
	SkippedCount   int                `json:"skippedCount"`
	FailedCount    int                `json:"failedCount"`
	SectionResults []SectionResult    `json:"sectionResults"`
	Sections       []sections.Section `json:"-"`
}

// Compatibility is the outcome of the cheap pre-check.
type Compatibility struct {
	Compatible  bool     `json:"compatible"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}
