package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/mitchellh/copystructure"
)

var (
	ErrUnknownType            = errors.New("registry: unknown section type")
	ErrDefinitionNameRequired = errors.New("registry: definition name required")
)

type Option func(*Registry)

// WithDefaultLanguage sets the language of the translation seeded into
// default sections.
func WithDefaultLanguage(languageID string) Option {
	return func(r *Registry) {
		if trimmed := strings.TrimSpace(languageID); trimmed != "" {
			r.defaultLanguage = trimmed
		}
	}
}

// WithDefinitions registers extra definitions on top of the built-in catalogue.
func WithDefinitions(defs ...Definition) Option {
	return func(r *Registry) {
		r.extra = append(r.extra, defs...)
	}
}

// Registry is the catalogue of section definitions keyed by type. It is safe
// for concurrent use.
type Registry struct {
	mu              sync.RWMutex
	entries         map[sections.SectionType]Definition
	validators      map[sections.SectionType]*validation.Validator
	defaultLanguage string
	extra           []Definition
}

// New returns a registry loaded with the built-in catalogue.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		entries:         make(map[sections.SectionType]Definition),
		validators:      make(map[sections.SectionType]*validation.Validator),
		defaultLanguage: "en",
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, def := range append(builtinDefinitions(), r.extra...) {
		if err := r.Register(def); err != nil {
			return nil, fmt.Errorf("registry: register %s: %w", def.Type, err)
		}
	}
	r.extra = nil
	return r, nil
}

// MustNew is New for static setups and tests.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds or replaces the definition for def.Type. The type must belong
// to the closed section enumeration.
func (r *Registry) Register(def Definition) error {
	if !def.Type.Valid() {
		return ErrUnknownType
	}
	def.Name = strings.TrimSpace(def.Name)
	if def.Name == "" {
		return ErrDefinitionNameRequired
	}
	def.ID = identity.SectionDefinitionUUID(string(def.Type))

	validator, err := validation.Compile(objectSchema(def.ContentSchema, true))
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[def.Type] = cloneDefinition(def)
	r.validators[def.Type] = validator
	return nil
}

// Get returns the definition for sectionType.
func (r *Registry) Get(sectionType sections.SectionType) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entries[sectionType]
	if !ok {
		return Definition{}, ErrUnknownType
	}
	return cloneDefinition(def), nil
}

// All returns every definition in catalogue order.
func (r *Registry) All() []Definition {
	return r.filter(func(Definition) bool { return true })
}

// ByCategory returns the definitions filed under category.
func (r *Registry) ByCategory(category Category) []Definition {
	return r.filter(func(def Definition) bool { return def.Category == category })
}

// Search matches query case-insensitively against name, category, type and
// description. "rich text", "rich-text" and "RICH_TEXT" all find the rich text
// section. An empty query returns everything.
func (r *Registry) Search(query string) []Definition {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return r.All()
	}
	needleSlug := slugOf(needle)
	return r.filter(func(def Definition) bool {
		for _, candidate := range []string{def.Name, string(def.Category), string(def.Type), def.Description} {
			if strings.Contains(strings.ToLower(candidate), needle) {
				return true
			}
			if needleSlug != "" && strings.Contains(slugOf(candidate), needleSlug) {
				return true
			}
		}
		return false
	})
}

// Capabilities returns the brandkit capabilities of sectionType.
func (r *Registry) Capabilities(sectionType sections.SectionType) (Capabilities, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entries[sectionType]
	return def.Capabilities, ok
}

// CreateDefaultSection builds a section of sectionType populated with the
// definition defaults and a default-language translation whose metadata holds
// the schema defaults. The caller assigns the id and timestamps.
func (r *Registry) CreateDefaultSection(sectionType sections.SectionType, pageID uuid.UUID, order int) (sections.Section, error) {
	def, err := r.Get(sectionType)
	if err != nil {
		return sections.Section{}, err
	}

	translation := sections.Translation{LanguageID: r.defaultLanguage, Title: def.Name}
	for _, field := range def.ContentSchema {
		if field.Default == nil || translationFields[field.Name] {
			continue
		}
		if translation.Metadata == nil {
			translation.Metadata = map[string]any{}
		}
		translation.Metadata[field.Name] = field.Default
	}

	return sections.Section{
		PageID:       pageID,
		Type:         def.Type,
		Order:        order,
		IsActive:     true,
		Translations: []sections.Translation{translation},
		Layout:       def.DefaultLayout,
		Style:        def.DefaultStyle,
	}, nil
}

// ContentJSONSchema returns the JSON schema that translation metadata of
// sectionType must satisfy.
func (r *Registry) ContentJSONSchema(sectionType sections.SectionType) (map[string]any, error) {
	def, err := r.Get(sectionType)
	if err != nil {
		return nil, err
	}
	return objectSchema(def.ContentSchema, true), nil
}

// ValidateMetadata checks metadata against the content schema of sectionType.
// Failures are *validation.PayloadValidationError values.
func (r *Registry) ValidateMetadata(sectionType sections.SectionType, metadata map[string]any) error {
	r.mu.RLock()
	validator, ok := r.validators[sectionType]
	r.mu.RUnlock()
	if !ok {
		return ErrUnknownType
	}
	return validator.Validate(metadata)
}

func (r *Registry) filter(match func(Definition) bool) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Definition, 0, len(r.entries))
	for _, sectionType := range sections.Types {
		def, ok := r.entries[sectionType]
		if ok && match(def) {
			out = append(out, cloneDefinition(def))
		}
	}
	return slices.Clip(out)
}

func cloneDefinition(def Definition) Definition {
	return copystructure.Must(copystructure.Copy(def)).(Definition)
}

func slugOf(value string) string {
	normalized, err := slug.Normalize(strings.ReplaceAll(value, "_", " "))
	if err != nil {
		return ""
	}
	return normalized
}
