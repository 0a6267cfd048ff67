package builder

import (
	"context"
	"errors"
	"html/template"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/autosave"
	"github.com/goliatone/go-pagebuilder/internal/brandkits"
	"github.com/goliatone/go-pagebuilder/internal/history"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/styles"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrStoreRequired     = errors.New("builder: store required to save")
	ErrBrandkitsDisabled = errors.New("builder: brandkit engine not configured")
	ErrPresetsDisabled   = errors.New("builder: presets not configured")
	ErrMarkdownDisabled  = errors.New("builder: markdown importer not configured")
	ErrRendererMissing   = errors.New("builder: renderer not configured")
	ErrPanelInvalid      = errors.New("builder: unknown panel")
)

// Panel is the active side-panel tab.
type Panel string

const (
	PanelContent    Panel = "content"
	PanelStyle      Panel = "style"
	PanelLayout     Panel = "layout"
	PanelResponsive Panel = "responsive"
	PanelAdvanced   Panel = "advanced"
)

func (p Panel) Valid() bool {
	switch p {
	case PanelContent, PanelStyle, PanelLayout, PanelResponsive, PanelAdvanced:
		return true
	}
	return false
}

// BrandkitEngine applies and previews brandkits over a section list.
type BrandkitEngine interface {
	Apply(ctx context.Context, kit brandkits.Brandkit, list []sections.Section, req brandkits.ApplyRequest) (brandkits.Result, error)
	Preview(ctx context.Context, kit brandkits.Brandkit, list []sections.Section, req brandkits.ApplyRequest) (brandkits.Result, error)
	ValidateCompatibility(kit brandkits.Brandkit, list []sections.Section) brandkits.Compatibility
}

// PresetSource resolves a preset into a settings patch and records its use.
type PresetSource interface {
	Use(ctx context.Context, presetID uuid.UUID) (sections.Patch, error)
}

// MarkdownImporter turns a markdown document into section content.
type MarkdownImporter interface {
	Import(ctx context.Context, source []byte) (markdown.Document, error)
}

// PageRenderer renders a section list as HTML.
type PageRenderer interface {
	Page(list []sections.Section, viewport settings.Viewport, languageID string) (template.HTML, error)
}

// ChangeFunc receives the full section list after every change, including
// undo and redo.
type ChangeFunc func(list []sections.Section)

// State is a copy of the editor state.
type State struct {
	PageID      uuid.UUID
	Selected    uuid.UUID
	Viewport    settings.Viewport
	Panel       Panel
	Preview     bool
	Dragging    uuid.UUID
	Unsaved     bool
	CanUndo     bool
	CanRedo     bool
	LastSavedAt time.Time
}

// Builder is one editing session over a page. It owns the section
// collection, the undo history and the editor state, and is safe for
// concurrent use.
type Builder struct {
	mu sync.Mutex

	collection *sections.Collection
	history    *history.History
	resolver   *styles.Resolver

	store     storage.Store
	brandkits BrandkitEngine
	presets   PresetSource
	importer  MarkdownImporter
	renderer  PageRenderer
	notifier  interfaces.Notifier
	logger    interfaces.Logger
	onChange  ChangeFunc
	autosave  *autosave.Debouncer

	selected    uuid.UUID
	viewport    settings.Viewport
	panel       Panel
	preview     bool
	dragging    uuid.UUID
	unsaved     bool
	revision    uint64
	lastSavedAt time.Time
	now         func() time.Time
	saveTimeout time.Duration
}

// New opens a session for pageID. factory creates the defaults for added
// sections, usually the section registry.
func New(pageID uuid.UUID, factory sections.Factory, initial []sections.Section, opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	collectionOpts := []sections.Option{
		sections.WithClock(cfg.now),
		sections.WithLogger(cfg.logger),
		sections.WithDefaultLanguage(cfg.defaultLanguage),
	}
	if cfg.idGenerator != nil {
		collectionOpts = append(collectionOpts, sections.WithIDGenerator(cfg.idGenerator))
	}
	collection := sections.NewCollection(pageID, factory, initial, collectionOpts...)

	b := &Builder{
		collection:  collection,
		history:     history.New(collection.Sections(), cfg.historyLimit),
		resolver:    cfg.resolver,
		store:       cfg.store,
		brandkits:   cfg.brandkits,
		presets:     cfg.presets,
		importer:    cfg.importer,
		renderer:    cfg.renderer,
		notifier:    cfg.notifier,
		logger:      logging.WithFields(cfg.logger, map[string]any{"page_id": pageID.String()}),
		onChange:    cfg.onChange,
		viewport:    settings.Desktop,
		panel:       PanelContent,
		now:         cfg.now,
		saveTimeout: cfg.saveTimeout,
	}
	if cfg.autosave && b.store != nil {
		var debounceOpts []autosave.Option
		if cfg.afterFunc != nil {
			debounceOpts = append(debounceOpts, autosave.WithAfterFunc(cfg.afterFunc))
		}
		b.autosave = autosave.New(cfg.autosaveDelay, b.autosaveNow, debounceOpts...)
	}
	return b
}

// Close cancels a pending auto-save. Unsaved changes are kept in memory.
func (b *Builder) Close() {
	if b.autosave != nil {
		b.autosave.Stop()
	}
}

func (b *Builder) PageID() uuid.UUID { return b.collection.PageID() }

// Sections returns a copy of the current list.
func (b *Builder) Sections() []sections.Section {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.collection.Sections()
}

func (b *Builder) Section(id uuid.UUID) (sections.Section, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.collection.Get(id)
}

func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{
		PageID:      b.collection.PageID(),
		Selected:    b.selected,
		Viewport:    b.viewport,
		Panel:       b.panel,
		Preview:     b.preview,
		Dragging:    b.dragging,
		Unsaved:     b.unsaved,
		CanUndo:     b.history.CanUndo(),
		CanRedo:     b.history.CanRedo(),
		LastSavedAt: b.lastSavedAt,
	}
}

func (b *Builder) HasUnsavedChanges() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unsaved
}

// Select marks id as the selected section. Unknown ids are ignored; uuid.Nil
// clears the selection.
func (b *Builder) Select(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id == uuid.Nil {
		b.selected = uuid.Nil
		return true
	}
	if b.collection.IndexOf(id) < 0 {
		return false
	}
	b.selected = id
	return true
}

// Selected returns the selected section, if any.
func (b *Builder) Selected() (sections.Section, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == uuid.Nil {
		return sections.Section{}, false
	}
	return b.collection.Get(b.selected)
}

func (b *Builder) SetViewport(viewport settings.Viewport) error {
	if !viewport.Valid() {
		return sections.ErrViewportInvalid
	}
	b.mu.Lock()
	b.viewport = viewport
	b.mu.Unlock()
	return nil
}

func (b *Builder) SetPanel(panel Panel) error {
	if !panel.Valid() {
		return ErrPanelInvalid
	}
	b.mu.Lock()
	b.panel = panel
	b.mu.Unlock()
	return nil
}

func (b *Builder) SetPreview(enabled bool) {
	b.mu.Lock()
	b.preview = enabled
	b.mu.Unlock()
}

// TogglePreview flips preview mode and returns the new value.
func (b *Builder) TogglePreview() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.preview = !b.preview
	return b.preview
}

// Effective resolves the section's layout and style at the active viewport.
func (b *Builder) Effective(id uuid.UUID) (styles.Effective, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	section, ok := b.collection.Get(id)
	if !ok {
		return styles.Effective{}, false
	}
	return b.resolver.Resolve(section, b.viewport), true
}

// Render renders the page at the active viewport.
func (b *Builder) Render(languageID string) (template.HTML, error) {
	if b.renderer == nil {
		return "", ErrRendererMissing
	}
	b.mu.Lock()
	list, viewport := b.collection.Sections(), b.viewport
	b.mu.Unlock()
	if languageID == "" {
		languageID = b.collection.DefaultLanguage()
	}
	return b.renderer.Page(list, viewport, languageID)
}

func (b *Builder) notify(ctx context.Context, level interfaces.NotificationLevel, code, message string, fields map[string]any) {
	if b.notifier == nil {
		return
	}
	b.notifier.Notify(ctx, interfaces.Notification{Level: level, Code: code, Message: message, Fields: fields})
}
