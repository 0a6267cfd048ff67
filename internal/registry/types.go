package registry

import (
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/google/uuid"
)

// FieldType tags how a content field is edited and validated. Editors render
// fields generically from this tag instead of switching on section type.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldURL      FieldType = "url"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldColor    FieldType = "color"
	FieldImage    FieldType = "image"
	FieldRepeater FieldType = "repeater"
)

// Category groups definitions in the section picker.
type Category string

const (
	CategoryLayout    Category = "layout"
	CategoryContent   Category = "content"
	CategoryMedia     Category = "media"
	CategoryForms     Category = "forms"
	CategoryMarketing Category = "marketing"
	CategorySocial    Category = "social"
	CategoryAdvanced  Category = "advanced"
)

// FieldOption is one choice of a select field.
type FieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field describes one entry of a section's content schema. Title, subtitle,
// content and excerpt map onto the translation record; every other field
// lives in translation metadata.
type Field struct {
	Name        string        `json:"name"`
	Label       string        `json:"label"`
	Type        FieldType     `json:"type"`
	Required    bool          `json:"required,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Options     []FieldOption `json:"options,omitempty"`
	Default     any           `json:"default,omitempty"`
	Min         *float64      `json:"min,omitempty"`
	Max         *float64      `json:"max,omitempty"`

	// Fields holds the item schema of a repeater.
	Fields []Field `json:"fields,omitempty"`
}

// Capabilities declares which brandkit categories a section type accepts.
type Capabilities struct {
	Colors     bool `json:"colors"`
	Typography bool `json:"typography"`
	Spacing    bool `json:"spacing"`

	// TextStyle names the brandkit text style used for this type ("heading", "body").
	TextStyle string `json:"textStyle,omitempty"`
}

// Definition is the catalogue entry for a section type.
type Definition struct {
	ID            uuid.UUID               `json:"id"`
	Type          sections.SectionType    `json:"type"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description,omitempty"`
	Icon          string                  `json:"icon"`
	Category      Category                `json:"category"`
	IsAdvanced    bool                    `json:"isAdvanced"`
	IsPlaceholder bool                    `json:"isPlaceholder"`
	DefaultLayout settings.LayoutSettings `json:"defaultLayoutSettings"`
	DefaultStyle  settings.StyleSettings  `json:"defaultStyleSettings"`
	ContentSchema []Field                 `json:"contentSchema"`
	Capabilities  Capabilities            `json:"capabilities"`
}

// translationFields are stored on the translation record rather than metadata.
var translationFields = map[string]bool{
	"title":    true,
	"subtitle": true,
	"content":  true,
	"excerpt":  true,
}
