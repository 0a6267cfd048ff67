package sections

import (
	"time"

	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/google/uuid"
)

// SectionType is the closed set of section kinds a page can hold.
type SectionType string

const (
	TypeHero         SectionType = "HERO"
	TypeRichText     SectionType = "RICH_TEXT"
	TypeImage        SectionType = "IMAGE"
	TypeContactForm  SectionType = "CONTACT_FORM"
	TypeStatsCounter SectionType = "STATS_COUNTER"
	TypeContainer    SectionType = "CONTAINER"
	TypeGrid         SectionType = "GRID"
	TypeSpacer       SectionType = "SPACER"
	TypeCustomHTML   SectionType = "CUSTOM_HTML"

	// Placeholder-rendered types.
	TypeVideo        SectionType = "VIDEO"
	TypeGallery      SectionType = "GALLERY"
	TypeTestimonials SectionType = "TESTIMONIALS"
	TypePricing      SectionType = "PRICING"
	TypeFAQ          SectionType = "FAQ"
	TypeCTA          SectionType = "CTA"
	TypeTeam         SectionType = "TEAM"
	TypeTimeline     SectionType = "TIMELINE"
	TypeMap          SectionType = "MAP"
	TypeSocialFeed   SectionType = "SOCIAL_FEED"
)

// Types lists every section type in catalogue order.
var Types = []SectionType{
	TypeHero, TypeRichText, TypeImage, TypeContactForm, TypeStatsCounter,
	TypeContainer, TypeGrid, TypeSpacer, TypeCustomHTML,
	TypeVideo, TypeGallery, TypeTestimonials, TypePricing, TypeFAQ,
	TypeCTA, TypeTeam, TypeTimeline, TypeMap, TypeSocialFeed,
}

// Valid reports whether t belongs to the closed enumeration.
func (t SectionType) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Direction is used by Move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Section is one visual block on a page.
type Section struct {
	ID           uuid.UUID                   `json:"id"`
	PageID       uuid.UUID                   `json:"pageId"`
	Type         SectionType                 `json:"type"`
	Order        int                         `json:"order"`
	IsActive     bool                        `json:"isActive"`
	Translations []Translation               `json:"translations"`
	Layout       settings.LayoutSettings     `json:"layoutSettings"`
	Style        settings.StyleSettings      `json:"styleSettings"`
	Responsive   settings.ResponsiveSettings `json:"responsiveSettings"`
	Custom       settings.CustomSettings     `json:"customSettings"`
	Animation    settings.AnimationSettings  `json:"animationSettings,omitempty"`

	// CustomizedFields holds the sorted, dotted paths an editor explicitly set
	// ("style.textColor", "layout.padding.top", "responsive.mobile.style.opacity").
	CustomizedFields []string `json:"customizedFields,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Translation is the per-language content record of a section.
type Translation struct {
	LanguageID string         `json:"languageId"`
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle,omitempty"`
	Content    string         `json:"content,omitempty"`
	Excerpt    string         `json:"excerpt,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Translation returns the record for languageID.
func (s Section) Translation(languageID string) (Translation, bool) {
	for _, tr := range s.Translations {
		if tr.LanguageID == languageID {
			return tr, true
		}
	}
	return Translation{}, false
}

// IsCustomized reports whether path, or any field below it, was explicitly set.
func (s Section) IsCustomized(path string) bool {
	for _, field := range s.CustomizedFields {
		if settings.HasPathPrefix(field, path) {
			return true
		}
	}
	return false
}

// Patch is a partial section update. Nil members are left untouched.
type Patch struct {
	IsActive   *bool
	Layout     *settings.LayoutSettings
	Style      *settings.StyleSettings
	Responsive *settings.ResponsiveSettings
	Custom     *settings.CustomSettings
	Animation  settings.AnimationSettings
}

// TranslationPatch is a partial translation update. Metadata merges key by key.
type TranslationPatch struct {
	Title    *string
	Subtitle *string
	Content  *string
	Excerpt  *string
	Metadata map[string]any
}
