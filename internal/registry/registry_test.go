package registry_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/registry"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/google/uuid"
)

func TestAllCoversClosedEnumerationInOrder(t *testing.T) {
	reg := registry.MustNew()

	defs := reg.All()
	if len(defs) != len(sections.Types) {
		t.Fatalf("expected %d definitions, got %d", len(sections.Types), len(defs))
	}
	for i, def := range defs {
		if def.Type != sections.Types[i] {
			t.Fatalf("definition %d: expected %s, got %s", i, sections.Types[i], def.Type)
		}
		if def.ID != identity.SectionDefinitionUUID(string(def.Type)) {
			t.Fatalf("expected deterministic id for %s", def.Type)
		}
	}
}

func TestGetUnknownType(t *testing.T) {
	reg := registry.MustNew()
	if _, err := reg.Get("CAROUSEL"); !errors.Is(err, registry.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if err := reg.Register(registry.Definition{Type: "CAROUSEL", Name: "Carousel"}); !errors.Is(err, registry.ErrUnknownType) {
		t.Fatalf("expected register to reject unknown type, got %v", err)
	}
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	reg := registry.MustNew()

	first, err := reg.Get(sections.TypeHero)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	*first.DefaultLayout.Padding.Top = 1

	second, _ := reg.Get(sections.TypeHero)
	if *second.DefaultLayout.Padding.Top != 80 {
		t.Fatalf("registry state leaked through returned definition")
	}
}

func TestSearch(t *testing.T) {
	reg := registry.MustNew()

	cases := []struct {
		query string
		want  sections.SectionType
	}{
		{"rich text", sections.TypeRichText},
		{"RICH_TEXT", sections.TypeRichText},
		{"hero", sections.TypeHero},
		{"forms", sections.TypeContactForm},
	}
	for _, tc := range cases {
		found := false
		for _, def := range reg.Search(tc.query) {
			if def.Type == tc.want {
				found = true
			}
		}
		if !found {
			t.Errorf("Search(%q) did not return %s", tc.query, tc.want)
		}
	}

	if got := reg.Search("zzz-no-match"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
	if got := reg.Search("  "); len(got) != len(sections.Types) {
		t.Fatalf("expected empty query to return all definitions, got %d", len(got))
	}
}

func TestByCategory(t *testing.T) {
	reg := registry.MustNew()
	for _, def := range reg.ByCategory(registry.CategoryLayout) {
		if def.Category != registry.CategoryLayout {
			t.Fatalf("unexpected category %s", def.Category)
		}
	}
	if len(reg.ByCategory(registry.CategoryLayout)) != 3 {
		t.Fatalf("expected container, grid and spacer under layout")
	}
}

func TestCreateDefaultSection(t *testing.T) {
	reg := registry.MustNew(registry.WithDefaultLanguage("es"))
	pageID := uuid.New()

	section, err := reg.CreateDefaultSection(sections.TypeStatsCounter, pageID, 2)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if section.PageID != pageID || section.Order != 2 || !section.IsActive {
		t.Fatalf("unexpected section header %+v", section)
	}
	if section.ID != uuid.Nil {
		t.Fatalf("expected id to be left for the caller")
	}
	tr, ok := section.Translation("es")
	if !ok {
		t.Fatalf("expected default language translation")
	}
	if tr.Metadata["duration"] != 2000 {
		t.Fatalf("expected schema default in metadata, got %v", tr.Metadata)
	}
	if section.Layout.Width == nil {
		t.Fatalf("expected default layout")
	}
}

func TestValidateMetadata(t *testing.T) {
	reg := registry.MustNew()

	valid := map[string]any{
		"stats": []any{map[string]any{"label": "Users", "value": 1200}},
	}
	if err := reg.ValidateMetadata(sections.TypeStatsCounter, valid); err != nil {
		t.Fatalf("expected valid metadata, got %v", err)
	}

	invalid := map[string]any{
		"stats": []any{map[string]any{"label": "Users", "value": -5}},
	}
	err := reg.ValidateMetadata(sections.TypeStatsCounter, invalid)
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema validation error, got %v", err)
	}

	if err := reg.ValidateMetadata(sections.TypeImage, map[string]any{}); err == nil {
		t.Fatalf("expected missing required src to fail")
	}
}

func TestContentJSONSchemaSkipsTranslationFields(t *testing.T) {
	reg := registry.MustNew()

	schema, err := reg.ContentJSONSchema(sections.TypeHero)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	properties := schema["properties"].(map[string]any)
	if _, ok := properties["title"]; ok {
		t.Fatalf("title belongs to the translation record, not metadata")
	}
	if _, ok := properties["ctaUrl"]; !ok {
		t.Fatalf("expected ctaUrl property")
	}
}

func TestSelectOptionsBecomeEnum(t *testing.T) {
	reg := registry.MustNew()

	def, err := reg.Get(sections.TypeRichText)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var format registry.Field
	for _, field := range def.ContentSchema {
		if field.Name == "format" {
			format = field
		}
	}
	if len(format.Options) != 2 || format.Options[1] != (registry.FieldOption{Label: "Markdown", Value: "markdown"}) {
		t.Fatalf("unexpected format options %+v", format.Options)
	}

	schema, err := reg.ContentJSONSchema(sections.TypeRichText)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	property := schema["properties"].(map[string]any)["format"].(map[string]any)
	enum, _ := property["enum"].([]any)
	if len(enum) != 2 || enum[0] != "html" || enum[1] != "markdown" {
		t.Fatalf("expected html/markdown enum, got %v", property["enum"])
	}

	if err := reg.ValidateMetadata(sections.TypeRichText, map[string]any{"format": "markdown"}); err != nil {
		t.Fatalf("expected markdown to be accepted, got %v", err)
	}
	if err := reg.ValidateMetadata(sections.TypeRichText, map[string]any{"format": "pdf"}); !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected an unknown option to fail, got %v", err)
	}
}
