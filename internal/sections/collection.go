package sections

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrSectionNotFound            = errors.New("sections: section not found")
	ErrTranslationNotFound        = errors.New("sections: translation not found")
	ErrTranslationExists          = errors.New("sections: translation already exists for language")
	ErrDefaultTranslationRequired = errors.New("sections: default language translation cannot be removed")
	ErrLanguageRequired           = errors.New("sections: language id required")
	ErrViewportInvalid            = errors.New("sections: unknown viewport")
	ErrFactoryRequired            = errors.New("sections: section factory required")

	// ErrNoChange is returned when an operation resolves to the current state,
	// such as moving the first section up.
	ErrNoChange = errors.New("sections: no change")
)

// End appends when passed as an insert index.
const End = -1

// Factory builds a section pre-populated with the defaults for its type.
type Factory interface {
	CreateDefaultSection(sectionType SectionType, pageID uuid.UUID, order int) (Section, error)
}

type IDGenerator func() uuid.UUID

type Option func(*Collection)

func WithClock(clock func() time.Time) Option {
	return func(c *Collection) {
		if clock != nil {
			c.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) Option {
	return func(c *Collection) {
		if generator != nil {
			c.id = generator
		}
	}
}

func WithDefaultLanguage(languageID string) Option {
	return func(c *Collection) {
		if trimmed := strings.TrimSpace(languageID); trimmed != "" {
			c.defaultLanguage = trimmed
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Collection is the ordered section list of one page. Every mutation either
// succeeds and leaves Order contiguous from zero, or returns an error and
// leaves the list untouched.
//
// Collection is not safe for concurrent use; the builder serialises access.
type Collection struct {
	pageID          uuid.UUID
	items           []Section
	factory         Factory
	defaultLanguage string
	now             func() time.Time
	id              IDGenerator
	logger          interfaces.Logger
}

// NewCollection builds a collection for pageID seeded with initial, sorted by
// their stored order and renumbered.
func NewCollection(pageID uuid.UUID, factory Factory, initial []Section, opts ...Option) *Collection {
	c := &Collection{
		pageID:          pageID,
		factory:         factory,
		defaultLanguage: "en",
		now:             time.Now,
		id:              uuid.New,
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}

	items := CloneAll(initial)
	slices.SortStableFunc(items, func(a, b Section) int { return a.Order - b.Order })
	c.items = items
	c.renumber(c.now())
	return c
}

// PageID returns the page the collection belongs to.
func (c *Collection) PageID() uuid.UUID { return c.pageID }

// DefaultLanguage returns the language whose translation cannot be removed.
func (c *Collection) DefaultLanguage() string { return c.defaultLanguage }

func (c *Collection) Len() int { return len(c.items) }

// Sections returns a deep copy of the list in order.
func (c *Collection) Sections() []Section {
	return CloneAll(c.items)
}

// Get returns a copy of the section with id.
func (c *Collection) Get(id uuid.UUID) (Section, bool) {
	idx := c.IndexOf(id)
	if idx < 0 {
		return Section{}, false
	}
	return Clone(c.items[idx]), true
}

// IndexOf returns the position of id, or -1.
func (c *Collection) IndexOf(id uuid.UUID) int {
	return slices.IndexFunc(c.items, func(s Section) bool { return s.ID == id })
}

// Replace installs list as the new collection state, renumbering by position.
// Undo, redo and brandkit commits go through here.
func (c *Collection) Replace(list []Section) {
	c.items = CloneAll(list)
	for i := range c.items {
		c.items[i].Order = i
	}
}

// Add creates a section of sectionType from the factory defaults and inserts
// it at insertIndex. End, or any index past the last position, appends.
func (c *Collection) Add(sectionType SectionType, insertIndex int) (Section, error) {
	if c.factory == nil {
		return Section{}, ErrFactoryRequired
	}
	if insertIndex < 0 || insertIndex > len(c.items) {
		insertIndex = len(c.items)
	}

	section, err := c.factory.CreateDefaultSection(sectionType, c.pageID, insertIndex)
	if err != nil {
		return Section{}, err
	}
	now := c.now()
	section.ID = c.id()
	section.PageID = c.pageID
	section.CreatedAt = now
	section.UpdatedAt = now
	if _, ok := section.Translation(c.defaultLanguage); !ok {
		section.Translations = append([]Translation{{LanguageID: c.defaultLanguage}}, section.Translations...)
	}

	c.items = slices.Insert(c.items, insertIndex, section)
	c.renumber(now)

	c.log("sections.added", section.ID, "type", string(sectionType), "order", insertIndex)
	return Clone(c.items[insertIndex]), nil
}

// Update merges patch into the section. Layout, style and responsive patches
// merge field by field and mark the touched paths as customised; custom
// settings replace wholesale; animation settings merge key by key.
func (c *Collection) Update(id uuid.UUID, patch Patch) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}

	section := Clone(c.items[idx])
	var touched []string

	if patch.IsActive != nil {
		section.IsActive = *patch.IsActive
	}
	if patch.Layout != nil {
		section.Layout = settings.MergeLayout(section.Layout, *patch.Layout)
		touched = append(touched, prefixed("layout", settings.Paths(*patch.Layout))...)
	}
	if patch.Style != nil {
		section.Style = settings.MergeStyle(section.Style, *patch.Style)
		touched = append(touched, prefixed("style", settings.Paths(*patch.Style))...)
	}
	if patch.Responsive != nil {
		for _, viewport := range settings.Viewports {
			override := patch.Responsive.For(viewport)
			if override == nil {
				continue
			}
			merged := settings.MergeOverride(section.Responsive.For(viewport), override)
			section.Responsive = section.Responsive.With(viewport, merged)
			touched = append(touched, prefixed("responsive."+string(viewport), settings.Paths(*override))...)
		}
	}
	if patch.Custom != nil {
		section.Custom = *patch.Custom
	}
	if patch.Animation != nil {
		section.Animation = mergeMaps(section.Animation, patch.Animation)
	}

	section.CustomizedFields = MarkCustomized(section.CustomizedFields, touched...)
	section.UpdatedAt = c.now()
	c.items[idx] = Clone(section)

	c.log("sections.updated", id, "fields", len(touched))
	return nil
}

// UpdateSettings merges layout and style patches into the section.
func (c *Collection) UpdateSettings(id uuid.UUID, layout settings.LayoutSettings, style settings.StyleSettings) error {
	return c.Update(id, Patch{Layout: &layout, Style: &style})
}

// UpdateResponsive merges override into the section's override for viewport.
func (c *Collection) UpdateResponsive(id uuid.UUID, viewport settings.Viewport, override settings.Override) error {
	if !viewport.Valid() {
		return ErrViewportInvalid
	}
	responsive := settings.ResponsiveSettings{}.With(viewport, &override)
	return c.Update(id, Patch{Responsive: &responsive})
}

// Remove deletes the section and closes the gap in Order.
func (c *Collection) Remove(id uuid.UUID) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	c.renumber(c.now())

	c.log("sections.removed", id)
	return nil
}

// Duplicate clones the section under a fresh id and inserts the copy right
// after the source.
func (c *Collection) Duplicate(id uuid.UUID) (Section, error) {
	idx := c.IndexOf(id)
	if idx < 0 {
		return Section{}, ErrSectionNotFound
	}

	now := c.now()
	clone := Clone(c.items[idx])
	clone.ID = c.id()
	clone.CreatedAt = now
	clone.UpdatedAt = now

	c.items = slices.Insert(c.items, idx+1, clone)
	c.renumber(now)

	c.log("sections.duplicated", clone.ID, "source_id", id.String())
	return Clone(c.items[idx+1]), nil
}

// Move swaps the section with its neighbour. Moving past either end returns
// ErrNoChange.
func (c *Collection) Move(id uuid.UUID, direction Direction) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}

	target := idx - 1
	if direction == Down {
		target = idx + 1
	}
	if target < 0 || target >= len(c.items) {
		return ErrNoChange
	}

	c.items[idx], c.items[target] = c.items[target], c.items[idx]
	c.renumber(c.now())

	c.log("sections.moved", id, "direction", string(direction), "order", target)
	return nil
}

// Reorder moves the section to targetIndex, clamped to the list bounds.
func (c *Collection) Reorder(id uuid.UUID, targetIndex int) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}
	targetIndex = max(0, min(targetIndex, len(c.items)-1))
	if targetIndex == idx {
		return ErrNoChange
	}

	section := c.items[idx]
	c.items = slices.Delete(c.items, idx, idx+1)
	c.items = slices.Insert(c.items, targetIndex, section)
	c.renumber(c.now())

	c.log("sections.reordered", id, "from", idx, "to", targetIndex)
	return nil
}

// SetActive toggles visibility on the live page.
func (c *Collection) SetActive(id uuid.UUID, active bool) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}
	if c.items[idx].IsActive == active {
		return ErrNoChange
	}
	c.items[idx].IsActive = active
	c.items[idx].UpdatedAt = c.now()

	c.log("sections.active_changed", id, "active", active)
	return nil
}

// UpdateTranslation merges patch into the translation for languageID. The
// translation must already exist.
func (c *Collection) UpdateTranslation(id uuid.UUID, languageID string, patch TranslationPatch) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}
	languageID = strings.TrimSpace(languageID)
	pos := translationIndex(c.items[idx].Translations, languageID)
	if pos < 0 {
		return ErrTranslationNotFound
	}

	tr := cloneTranslation(c.items[idx].Translations[pos])
	if patch.Title != nil {
		tr.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		tr.Subtitle = *patch.Subtitle
	}
	if patch.Content != nil {
		tr.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		tr.Excerpt = *patch.Excerpt
	}
	if patch.Metadata != nil {
		tr.Metadata = mergeMaps(tr.Metadata, patch.Metadata)
	}

	c.items[idx].Translations[pos] = tr
	c.items[idx].UpdatedAt = c.now()

	c.log("sections.translation_updated", id, "language_id", languageID)
	return nil
}

// AddTranslation appends an empty translation for languageID.
func (c *Collection) AddTranslation(id uuid.UUID, languageID string) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}
	languageID = strings.TrimSpace(languageID)
	if languageID == "" {
		return ErrLanguageRequired
	}
	if translationIndex(c.items[idx].Translations, languageID) >= 0 {
		return ErrTranslationExists
	}

	c.items[idx].Translations = append(slices.Clip(c.items[idx].Translations), Translation{LanguageID: languageID})
	c.items[idx].UpdatedAt = c.now()

	c.log("sections.translation_added", id, "language_id", languageID)
	return nil
}

// RemoveTranslation drops the translation for languageID. The default
// language is refused with ErrDefaultTranslationRequired.
func (c *Collection) RemoveTranslation(id uuid.UUID, languageID string) error {
	idx := c.IndexOf(id)
	if idx < 0 {
		return ErrSectionNotFound
	}
	languageID = strings.TrimSpace(languageID)
	if languageID == c.defaultLanguage {
		return ErrDefaultTranslationRequired
	}
	pos := translationIndex(c.items[idx].Translations, languageID)
	if pos < 0 {
		return ErrTranslationNotFound
	}

	c.items[idx].Translations = slices.Delete(slices.Clone(c.items[idx].Translations), pos, pos+1)
	c.items[idx].UpdatedAt = c.now()

	c.log("sections.translation_removed", id, "language_id", languageID)
	return nil
}

func (c *Collection) renumber(now time.Time) {
	for i := range c.items {
		if c.items[i].Order != i {
			c.items[i].Order = i
			c.items[i].UpdatedAt = now
		}
	}
}

func (c *Collection) log(event string, id uuid.UUID, args ...any) {
	logger := logging.WithSectionContext(c.logger, c.pageID.String(), id.String(), event)
	logger.Debug(event, args...)
}

func translationIndex(translations []Translation, languageID string) int {
	return slices.IndexFunc(translations, func(tr Translation) bool { return tr.LanguageID == languageID })
}

func cloneTranslation(tr Translation) Translation {
	tr.Metadata = maps.Clone(tr.Metadata)
	return tr
}

// mergeMaps overlays patch on a copy of base, key by key. Values replace
// wholesale, including lists and nested maps.
func mergeMaps[M ~map[string]any](base, patch M) M {
	out := make(M, len(base)+len(patch))
	maps.Copy(out, base)
	maps.Copy(out, patch)
	return out
}

// MarkCustomized adds paths to fields, returning a sorted set.
func MarkCustomized(fields []string, paths ...string) []string {
	if len(paths) == 0 {
		return fields
	}
	out := append(slices.Clone(fields), paths...)
	slices.Sort(out)
	return slices.Compact(out)
}

// ForgetCustomized drops every field at or below one of prefixes.
func ForgetCustomized(fields []string, prefixes ...string) []string {
	return slices.DeleteFunc(slices.Clone(fields), func(field string) bool {
		for _, prefix := range prefixes {
			if settings.HasPathPrefix(field, prefix) {
				return true
			}
		}
		return false
	})
}

func prefixed(prefix string, paths []string) []string {
	out := make([]string, len(paths))
	for i, path := range paths {
		out[i] = prefix + "." + path
	}
	return out
}
