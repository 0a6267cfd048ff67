package presets

import (
	"errors"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrRepositoryRequired = errors.New("presets: repository required")
	ErrPresetInvalid      = errors.New("presets: preset invalid")
	ErrPresetExists       = errors.New("presets: preset already exists")
	ErrPresetNotFound     = errors.New("presets: preset not found")
	ErrPresetEmpty        = errors.New("presets: preset sets no layout or style fields")
)

// Category tags presets in the picker.
type Category string

const (
	CategoryLayout     Category = "layout"
	CategoryTypography Category = "typography"
	CategoryBackground Category = "background"
	CategoryEffects    Category = "effects"
	CategoryComplete   Category = "complete"
)

// Categories lists the known preset categories.
var Categories = []Category{CategoryLayout, CategoryTypography, CategoryBackground, CategoryEffects, CategoryComplete}

// StylePreset is a named, reusable partial layout and style bundle.
type StylePreset struct {
	bun.BaseModel `bun:"table:style_presets,alias:sp"`

	ID          uuid.UUID               `bun:",pk,type:uuid" json:"id"`
	Name        string                  `bun:"name,notnull" json:"name"`
	Slug        string                  `bun:"slug,notnull,unique" json:"slug"`
	Category    Category                `bun:"category,notnull" json:"category"`
	Description string                  `bun:"description" json:"description,omitempty"`
	Layout      settings.LayoutSettings `bun:"layout,type:jsonb" json:"layout"`
	Style       settings.StyleSettings  `bun:"style,type:jsonb" json:"style"`
	UsageCount  int                     `bun:"usage_count,notnull,default:0" json:"usageCount"`
	CreatedAt   time.Time               `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time               `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CreateInput describes a new preset. Slug defaults to the normalised name.
type CreateInput struct {
	Name        string
	Slug        string
	Category    Category
	Description string
	Layout      settings.LayoutSettings
	Style       settings.StyleSettings
}
