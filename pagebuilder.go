package pagebuilder

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-pagebuilder/internal/brandkits"
	"github.com/goliatone/go-pagebuilder/internal/builder"
	"github.com/goliatone/go-pagebuilder/internal/commands/pagecmd"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/internal/presets"
	"github.com/goliatone/go-pagebuilder/internal/registry"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/styles"
	"github.com/google/uuid"
)

// Builder exports the editing session controller.
type Builder = builder.Builder

// Section exports the section document edited by a session.
type Section = sections.Section

// Registry exports the section definition catalogue.
type Registry = *registry.Registry

// Resolver exports the responsive style resolver.
type Resolver = *styles.Resolver

// Store exports the section persistence contract.
type Store = storage.Store

// BrandkitRepository exports the brandkit persistence contract.
type BrandkitRepository = brandkits.Repository

// BrandkitEngine exports the brandkit application engine.
type BrandkitEngine = *brandkits.Engine

// PresetService exports the style preset service contract.
type PresetService = presets.Service

// MarkdownImporter exports the markdown section importer.
type MarkdownImporter = *markdown.Importer

// Renderer exports the HTML renderer.
type Renderer = *render.Renderer

// PageCommands exports the go-command handlers for page sessions.
type PageCommands = *pagecmd.HandlerSet

// Module represents the top level page builder runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a page builder module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Migrate creates the tables used by bun storage.
func (m *Module) Migrate(ctx context.Context) error {
	return m.container.Migrate(ctx)
}

// Open starts an editing session over the given sections.
func (m *Module) Open(pageID uuid.UUID, initial []Section, opts ...builder.Option) (*Builder, error) {
	return m.container.Open(pageID, initial, opts...)
}

// Load starts an editing session over the stored sections of a page.
func (m *Module) Load(ctx context.Context, pageID uuid.UUID, opts ...builder.Option) (*Builder, error) {
	return m.container.Load(ctx, pageID, opts...)
}

// Session returns the open session of a page.
func (m *Module) Session(pageID uuid.UUID) (*Builder, bool) {
	return m.container.Session(pageID)
}

// Close ends the session of a page.
func (m *Module) Close(pageID uuid.UUID) bool {
	return m.container.Close(pageID)
}

// Registry returns the section registry.
func (m *Module) Registry() Registry {
	return m.container.Registry()
}

// Resolver returns the style resolver shared by sessions and the renderer.
func (m *Module) Resolver() Resolver {
	return m.container.Resolver()
}

// Store returns the configured section store.
func (m *Module) Store() Store {
	return m.container.Store()
}

// Brandkits returns the brandkit repository.
func (m *Module) Brandkits() BrandkitRepository {
	return m.container.BrandkitRepository()
}

// BrandkitEngine returns the engine, or nil when brandkits are disabled.
func (m *Module) BrandkitEngine() BrandkitEngine {
	return m.container.BrandkitEngine()
}

// ImportTheme stores a go-theme manifest variant as a brandkit.
func (m *Module) ImportTheme(ctx context.Context, fsys fs.FS, variant string) (*brandkits.Brandkit, error) {
	return m.container.ImportTheme(ctx, fsys, variant)
}

// Presets returns the preset service, or nil when presets are disabled.
func (m *Module) Presets() PresetService {
	return m.container.Presets()
}

// Markdown returns the importer, or nil when markdown import is disabled.
func (m *Module) Markdown() MarkdownImporter {
	return m.container.MarkdownImporter()
}

// Renderer returns the HTML renderer.
func (m *Module) Renderer() Renderer {
	return m.container.Renderer()
}

// Commands returns the page command handlers.
func (m *Module) Commands() PageCommands {
	return m.container.Commands()
}
