package registry

import (
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
)

// builtinDefinitions returns the catalogue shipped with the builder, in the
// order the section picker lists them.
func builtinDefinitions() []Definition {
	return []Definition{
		{
			Type:        sections.TypeHero,
			Name:        "Hero",
			Description: "Full-width banner with headline, call to action and background media",
			Icon:        "layout-hero",
			Category:    CategoryMarketing,
			DefaultLayout: settings.LayoutSettings{
				Width:     settings.Ptr(settings.WidthFull),
				MinHeight: settings.Ptr(500.0),
				Padding:   box(80, 20, 80, 20),
				Alignment: settings.Ptr("center"),
			},
			DefaultStyle: settings.StyleSettings{
				Background: &settings.Background{
					Type: settings.Ptr(settings.BackgroundGradient),
					Gradient: &settings.Gradient{
						Type:  settings.Ptr(settings.GradientLinear),
						Angle: settings.Ptr(135.0),
						Stops: []settings.GradientStop{{Color: "#1e3a8a", Position: 0}, {Color: "#3b82f6", Position: 100}},
					},
				},
				TextColor:  settings.Ptr("#ffffff"),
				Typography: &settings.Typography{FontSize: settings.Ptr(48.0), FontWeight: settings.Ptr(700)},
			},
			ContentSchema: []Field{
				{Name: "title", Label: "Headline", Type: FieldText, Required: true},
				{Name: "subtitle", Label: "Subheadline", Type: FieldTextarea},
				{Name: "ctaText", Label: "Button text", Type: FieldText, Default: "Get started"},
				{Name: "ctaUrl", Label: "Button link", Type: FieldURL},
				{Name: "backgroundImage", Label: "Background image", Type: FieldImage},
			},
			Capabilities: Capabilities{Colors: true, Typography: true, Spacing: true, TextStyle: "heading"},
		},
		{
			Type:          sections.TypeRichText,
			Name:          "Rich Text",
			Description:   "Formatted text block",
			Icon:          "text",
			Category:      CategoryContent,
			DefaultLayout: containerLayout(),
			DefaultStyle:  settings.StyleSettings{Typography: &settings.Typography{FontSize: settings.Ptr(16.0), LineHeight: settings.Ptr(1.6)}},
			ContentSchema: []Field{
				{Name: "title", Label: "Heading", Type: FieldText},
				{Name: "content", Label: "Body", Type: FieldTextarea, Required: true},
				{Name: "format", Label: "Format", Type: FieldSelect, Default: "html", Options: []FieldOption{{Label: "HTML", Value: "html"}, {Label: "Markdown", Value: "markdown"}}},
			},
			Capabilities: Capabilities{Colors: true, Typography: true, Spacing: true, TextStyle: "body"},
		},
		{
			Type:          sections.TypeImage,
			Name:          "Image",
			Description:   "Single image with caption",
			Icon:          "image",
			Category:      CategoryMedia,
			DefaultLayout: containerLayout(),
			ContentSchema: []Field{
				{Name: "src", Label: "Image", Type: FieldImage, Required: true},
				{Name: "alt", Label: "Alternative text", Type: FieldText},
				{Name: "caption", Label: "Caption", Type: FieldText},
				{Name: "link", Label: "Link", Type: FieldURL},
			},
			Capabilities: Capabilities{Spacing: true},
		},
		{
			Type:          sections.TypeContactForm,
			Name:          "Contact Form",
			Description:   "Form collecting visitor enquiries",
			Icon:          "mail",
			Category:      CategoryForms,
			DefaultLayout: narrowLayout(),
			ContentSchema: []Field{
				{Name: "title", Label: "Heading", Type: FieldText},
				{Name: "recipient", Label: "Recipient email", Type: FieldText, Required: true},
				{Name: "submitText", Label: "Submit label", Type: FieldText, Default: "Send"},
				{Name: "successMessage", Label: "Success message", Type: FieldTextarea},
				{Name: "fields", Label: "Form fields", Type: FieldRepeater, Fields: []Field{
					{Name: "label", Label: "Label", Type: FieldText, Required: true},
					{Name: "kind", Label: "Kind", Type: FieldSelect, Options: []FieldOption{{Label: "Text", Value: "text"}, {Label: "Email", Value: "email"}, {Label: "Message", Value: "textarea"}}},
					{Name: "required", Label: "Required", Type: FieldCheckbox},
				}},
			},
			Capabilities: Capabilities{Colors: true, Typography: true, Spacing: true, TextStyle: "body"},
		},
		{
			Type:          sections.TypeStatsCounter,
			Name:          "Stats Counter",
			Description:   "Animated key figures",
			Icon:          "chart-bar",
			Category:      CategoryMarketing,
			DefaultLayout: containerLayout(),
			ContentSchema: []Field{
				{Name: "title", Label: "Heading", Type: FieldText},
				{Name: "stats", Label: "Stats", Type: FieldRepeater, Fields: []Field{
					{Name: "label", Label: "Label", Type: FieldText, Required: true},
					{Name: "value", Label: "Value", Type: FieldNumber, Required: true, Min: settings.Ptr(0.0)},
					{Name: "suffix", Label: "Suffix", Type: FieldText},
				}},
				{Name: "duration", Label: "Animation duration (ms)", Type: FieldNumber, Default: 2000, Min: settings.Ptr(0.0), Max: settings.Ptr(10000.0)},
			},
			Capabilities: Capabilities{Colors: true, Typography: true, Spacing: true, TextStyle: "heading"},
		},
		{
			Type:        sections.TypeContainer,
			Name:        "Container",
			Description: "Flex wrapper for nested content",
			Icon:        "box",
			Category:    CategoryLayout,
			DefaultLayout: settings.LayoutSettings{
				Width:   settings.Ptr(settings.WidthContainer),
				Padding: defaultPadding(),
				Display: settings.Ptr("flex"),
				Flex:    &settings.FlexSettings{Direction: settings.Ptr("column"), Gap: settings.Ptr(16.0)},
			},
			Capabilities: Capabilities{Colors: true, Spacing: true},
		},
		{
			Type:        sections.TypeGrid,
			Name:        "Grid",
			Description: "Multi-column grid",
			Icon:        "grid",
			Category:    CategoryLayout,
			DefaultLayout: settings.LayoutSettings{
				Width:   settings.Ptr(settings.WidthContainer),
				Padding: defaultPadding(),
				Display: settings.Ptr("grid"),
				Grid:    &settings.GridSettings{Columns: settings.Ptr(3), Gap: settings.Ptr(24.0)},
			},
			ContentSchema: []Field{
				{Name: "columns", Label: "Columns", Type: FieldNumber, Default: 3, Min: settings.Ptr(1.0), Max: settings.Ptr(12.0)},
			},
			Capabilities: Capabilities{Colors: true, Spacing: true},
		},
		{
			Type:        sections.TypeSpacer,
			Name:        "Spacer",
			Description: "Vertical whitespace",
			Icon:        "separator",
			Category:    CategoryLayout,
			DefaultLayout: settings.LayoutSettings{
				Width:     settings.Ptr(settings.WidthFull),
				MinHeight: settings.Ptr(40.0),
				Padding:   box(0, 0, 0, 0),
			},
			ContentSchema: []Field{
				{Name: "height", Label: "Height", Type: FieldNumber, Default: 40, Min: settings.Ptr(0.0)},
			},
		},
		{
			Type:          sections.TypeCustomHTML,
			Name:          "Custom HTML",
			Description:   "Author-supplied markup rendered in a sandboxed frame",
			Icon:          "code",
			Category:      CategoryAdvanced,
			IsAdvanced:    true,
			DefaultLayout: containerLayout(),
			ContentSchema: []Field{
				{Name: "html", Label: "HTML", Type: FieldTextarea, Required: true},
				{Name: "height", Label: "Frame height", Type: FieldNumber, Default: 300, Min: settings.Ptr(0.0)},
			},
		},
		placeholder(sections.TypeVideo, "Video", "video", CategoryMedia, Capabilities{Spacing: true},
			Field{Name: "url", Label: "Video URL", Type: FieldURL, Required: true},
			Field{Name: "autoplay", Label: "Autoplay", Type: FieldCheckbox},
		),
		placeholder(sections.TypeGallery, "Gallery", "images", CategoryMedia, Capabilities{Spacing: true},
			Field{Name: "images", Label: "Images", Type: FieldRepeater, Fields: []Field{
				{Name: "src", Label: "Image", Type: FieldImage, Required: true},
				{Name: "alt", Label: "Alternative text", Type: FieldText},
			}},
		),
		placeholder(sections.TypeTestimonials, "Testimonials", "quote", CategoryMarketing, textCapabilities("body"),
			Field{Name: "items", Label: "Testimonials", Type: FieldRepeater, Fields: []Field{
				{Name: "quote", Label: "Quote", Type: FieldTextarea, Required: true},
				{Name: "author", Label: "Author", Type: FieldText},
				{Name: "avatar", Label: "Avatar", Type: FieldImage},
			}},
		),
		placeholder(sections.TypePricing, "Pricing", "tag", CategoryMarketing, textCapabilities("body"),
			Field{Name: "plans", Label: "Plans", Type: FieldRepeater, Fields: []Field{
				{Name: "name", Label: "Name", Type: FieldText, Required: true},
				{Name: "price", Label: "Price", Type: FieldNumber, Min: settings.Ptr(0.0)},
				{Name: "highlight", Label: "Highlight", Type: FieldCheckbox},
				{Name: "accent", Label: "Accent colour", Type: FieldColor},
			}},
		),
		placeholder(sections.TypeFAQ, "FAQ", "help-circle", CategoryContent, textCapabilities("body"),
			Field{Name: "items", Label: "Questions", Type: FieldRepeater, Fields: []Field{
				{Name: "question", Label: "Question", Type: FieldText, Required: true},
				{Name: "answer", Label: "Answer", Type: FieldTextarea, Required: true},
			}},
		),
		placeholder(sections.TypeCTA, "Call to Action", "megaphone", CategoryMarketing, textCapabilities("heading"),
			Field{Name: "title", Label: "Headline", Type: FieldText, Required: true},
			Field{Name: "buttonText", Label: "Button text", Type: FieldText},
			Field{Name: "buttonUrl", Label: "Button link", Type: FieldURL},
		),
		placeholder(sections.TypeTeam, "Team", "users", CategoryContent, textCapabilities("body"),
			Field{Name: "members", Label: "Members", Type: FieldRepeater, Fields: []Field{
				{Name: "name", Label: "Name", Type: FieldText, Required: true},
				{Name: "role", Label: "Role", Type: FieldText},
				{Name: "photo", Label: "Photo", Type: FieldImage},
			}},
		),
		placeholder(sections.TypeTimeline, "Timeline", "clock", CategoryContent, textCapabilities("body"),
			Field{Name: "events", Label: "Events", Type: FieldRepeater, Fields: []Field{
				{Name: "date", Label: "Date", Type: FieldText, Required: true},
				{Name: "description", Label: "Description", Type: FieldTextarea},
			}},
		),
		placeholder(sections.TypeMap, "Map", "map-pin", CategoryMedia, Capabilities{Spacing: true},
			Field{Name: "address", Label: "Address", Type: FieldText, Required: true},
			Field{Name: "zoom", Label: "Zoom", Type: FieldNumber, Default: 14, Min: settings.Ptr(1.0), Max: settings.Ptr(20.0)},
		),
		placeholder(sections.TypeSocialFeed, "Social Feed", "share", CategorySocial, Capabilities{Colors: true, Spacing: true},
			Field{Name: "network", Label: "Network", Type: FieldSelect, Required: true, Options: []FieldOption{
				{Label: "Instagram", Value: "instagram"}, {Label: "X", Value: "x"}, {Label: "LinkedIn", Value: "linkedin"},
			}},
			Field{Name: "handle", Label: "Handle", Type: FieldText, Required: true},
		),
	}
}

func placeholder(sectionType sections.SectionType, name, icon string, category Category, caps Capabilities, fields ...Field) Definition {
	return Definition{
		Type:          sectionType,
		Name:          name,
		Icon:          icon,
		Category:      category,
		IsPlaceholder: true,
		DefaultLayout: containerLayout(),
		ContentSchema: fields,
		Capabilities:  caps,
	}
}

func textCapabilities(textStyle string) Capabilities {
	return Capabilities{Colors: true, Typography: true, Spacing: true, TextStyle: textStyle}
}

func containerLayout() settings.LayoutSettings {
	return settings.LayoutSettings{Width: settings.Ptr(settings.WidthContainer), Padding: defaultPadding()}
}

func narrowLayout() settings.LayoutSettings {
	return settings.LayoutSettings{Width: settings.Ptr(settings.WidthNarrow), Padding: defaultPadding()}
}

func defaultPadding() *settings.Box {
	return box(40, 20, 40, 20)
}

func box(top, right, bottom, left float64) *settings.Box {
	return &settings.Box{Top: &top, Right: &right, Bottom: &bottom, Left: &left}
}
