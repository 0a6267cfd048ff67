package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/brandkits"
	"github.com/goliatone/go-pagebuilder/internal/builder"
	"github.com/goliatone/go-pagebuilder/internal/commands/pagecmd"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/console"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/internal/presets"
	"github.com/goliatone/go-pagebuilder/internal/registry"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/styles"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrBunDBRequired   = errors.New("di: bun storage requires a database handle")
	ErrSessionOpen     = errors.New("di: a builder session is already open for this page")
	ErrFeatureDisabled = errors.New("di: feature disabled")
	ErrBuilderDisabled = errors.New("di: page builder disabled")
	ErrThemeFSRequired = errors.New("di: theme filesystem is required")
)

// Container wires the page builder collaborators and tracks the open
// editing sessions.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
	notifier       interfaces.Notifier

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	now         func() time.Time
	idGenerator sections.IDGenerator

	definitions []registry.Definition

	registry     *registry.Registry
	resolver     *styles.Resolver
	store        storage.Store
	brandkitRepo brandkits.Repository
	engine       *brandkits.Engine
	themes       *brandkits.ThemeImporter
	presetRepo   presets.Repository
	presetSvc    presets.Service
	importer     *markdown.Importer
	renderer     *render.Renderer
	commands     *pagecmd.HandlerSet

	sessionsMu sync.RWMutex
	sessions   map[uuid.UUID]*builder.Builder
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithNotifier receives the user-facing notifications of every session.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(c *Container) {
		c.notifier = notifier
	}
}

// WithBunDB supplies the database used when storage.provider is "bun".
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithStore replaces the section store selected from the storage config.
func WithStore(store storage.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithBrandkitRepository replaces the brandkit repository.
func WithBrandkitRepository(repo brandkits.Repository) Option {
	return func(c *Container) {
		c.brandkitRepo = repo
	}
}

// WithPresetRepository replaces the preset repository.
func WithPresetRepository(repo presets.Repository) Option {
	return func(c *Container) {
		c.presetRepo = repo
	}
}

// WithDefinitions registers extra section definitions next to the built-ins.
func WithDefinitions(defs ...registry.Definition) Option {
	return func(c *Container) {
		c.definitions = append(c.definitions, defs...)
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.now = clock
		}
	}
}

func WithIDGenerator(generator sections.IDGenerator) Option {
	return func(c *Container) {
		c.idGenerator = generator
	}
}

// NewContainer validates cfg and builds every enabled collaborator.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
		now:      time.Now,
		sessions: map[uuid.UUID]*builder.Builder{},
	}
	if c.cacheTTL <= 0 {
		c.cacheTTL = time.Minute
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "builder")

	c.configureCacheDefaults()
	if err := c.configureRegistry(); err != nil {
		return nil, err
	}
	c.configureResolver()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureRepositories()
	if err := c.configureBrandkits(); err != nil {
		return nil, err
	}
	c.configurePresets()
	c.configureMarkdown()
	c.configureRenderer()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	c.logger.Info("builder.container.ready",
		"storage", c.storageProvider(),
		"brandkits", c.engine != nil,
		"presets", c.presetSvc != nil,
		"markdown", c.importer != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			c.logger.Warn("builder.cache.disabled", "error", err)
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRegistry() error {
	reg, err := registry.New(
		registry.WithDefaultLanguage(c.Config.DefaultLanguage),
		registry.WithDefinitions(c.definitions...),
	)
	if err != nil {
		return fmt.Errorf("di: section registry: %w", err)
	}
	c.registry = reg
	return nil
}

func (c *Container) configureResolver() {
	renderCfg := c.Config.Render
	c.resolver = styles.NewResolver(
		styles.WithUnit(renderCfg.Unit),
		styles.WithContainerWidth(float64(renderCfg.ContainerWidth)),
		styles.WithNarrowWidth(float64(renderCfg.NarrowWidth)),
	)
}

func (c *Container) configureStorage() error {
	if c.store != nil {
		return nil
	}
	if c.storageProvider() != "bun" {
		c.store = storage.NewMemoryStore()
		return nil
	}
	if c.bunDB == nil {
		return ErrBunDBRequired
	}
	c.store = storage.NewBunStore(c.bunDB, storage.WithLogger(logging.StorageLogger(c.loggerProvider)))
	return nil
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil && c.storageProvider() == "bun" {
		if c.brandkitRepo == nil {
			c.brandkitRepo = brandkits.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		if c.presetRepo == nil {
			c.presetRepo = presets.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
	}
	if c.brandkitRepo == nil {
		c.brandkitRepo = brandkits.NewMemoryRepository()
	}
	if c.presetRepo == nil {
		c.presetRepo = presets.NewMemoryRepository()
	}
}

func (c *Container) configureBrandkits() error {
	if !c.Config.Features.Brandkits {
		return nil
	}
	engine, err := brandkits.NewEngine(c.registry,
		brandkits.WithClock(c.now),
		brandkits.WithLogger(logging.BrandkitsLogger(c.loggerProvider)),
	)
	if err != nil {
		return err
	}
	c.engine = engine
	c.themes = brandkits.NewThemeImporter("light")
	return nil
}

func (c *Container) configurePresets() {
	if !c.Config.Features.Presets {
		return
	}
	c.presetSvc = presets.NewService(c.presetRepo,
		presets.WithClock(c.now),
		presets.WithLogger(logging.PresetsLogger(c.loggerProvider)),
	)
}

func (c *Container) configureMarkdown() {
	if !c.Config.Features.Markdown {
		return
	}
	parser := markdown.NewGoldmarkParser(markdown.ParseOptions{
		Extensions: c.Config.Markdown.Extensions,
		HardWraps:  c.Config.Markdown.HardWraps,
	})
	c.importer = markdown.NewImporter(
		markdown.WithParser(parser),
		markdown.WithDefaultLanguage(c.Config.DefaultLanguage),
		markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)),
	)
}

func (c *Container) configureRenderer() {
	parser := markdown.NewGoldmarkParser(markdown.ParseOptions{
		Extensions: c.Config.Markdown.Extensions,
		HardWraps:  c.Config.Markdown.HardWraps,
	})
	c.renderer = render.New(
		render.WithResolver(c.resolver),
		render.WithParser(parser),
		render.WithSanitize(c.Config.Render.SanitizeRichText),
		render.WithFallbackLanguage(c.Config.DefaultLanguage),
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
	)
}

func (c *Container) configureCommands() error {
	deps := pagecmd.Dependencies{
		Sessions: pagecmd.SessionsFunc(c.session),
		Markdown: func() bool { return c.importer != nil },
	}
	if c.engine != nil {
		deps.Brandkits = c.brandkitRepo
	}
	set, err := pagecmd.RegisterPageCommands(nil, deps, c.loggerProvider)
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

func (c *Container) storageProvider() string {
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider == "" {
		return "memory"
	}
	return provider
}

// Migrate creates the section, brandkit and preset tables. It is a no-op for
// memory storage.
func (c *Container) Migrate(ctx context.Context) error {
	if c.bunDB == nil || c.storageProvider() != "bun" {
		return nil
	}
	return storage.CreateTables(ctx, c.bunDB, (*brandkits.Brandkit)(nil), (*presets.StylePreset)(nil))
}

// Open starts an editing session over initial. Only one session per page
// may be open at a time.
func (c *Container) Open(pageID uuid.UUID, initial []sections.Section, opts ...builder.Option) (*builder.Builder, error) {
	if !c.Config.Enabled {
		return nil, ErrBuilderDisabled
	}

	c.sessionsMu.Lock()
	defer c.sessionsMu.Unlock()
	if _, ok := c.sessions[pageID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionOpen, pageID)
	}

	session := builder.New(pageID, c.registry, initial, append(c.builderOptions(), opts...)...)
	c.sessions[pageID] = session
	c.logger.Debug("builder.session.opened", "page_id", pageID.String(), "sections", len(initial))
	return session, nil
}

// Load opens a session over the stored sections of the page.
func (c *Container) Load(ctx context.Context, pageID uuid.UUID, opts ...builder.Option) (*builder.Builder, error) {
	list, err := c.store.Load(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return c.Open(pageID, list, opts...)
}

// Close ends the session of a page, cancelling its pending auto-save.
func (c *Container) Close(pageID uuid.UUID) bool {
	c.sessionsMu.Lock()
	session, ok := c.sessions[pageID]
	delete(c.sessions, pageID)
	c.sessionsMu.Unlock()

	if ok {
		session.Close()
		c.logger.Debug("builder.session.closed", "page_id", pageID.String(), "unsaved", session.HasUnsavedChanges())
	}
	return ok
}

// Session returns the open session of a page.
func (c *Container) Session(pageID uuid.UUID) (*builder.Builder, bool) {
	c.sessionsMu.RLock()
	defer c.sessionsMu.RUnlock()
	session, ok := c.sessions[pageID]
	return session, ok
}

func (c *Container) session(pageID uuid.UUID) (pagecmd.Session, bool) {
	session, ok := c.Session(pageID)
	if !ok {
		return nil, false
	}
	return session, true
}

func (c *Container) builderOptions() []builder.Option {
	editor := c.Config.Editor
	opts := []builder.Option{
		builder.WithStore(c.store),
		builder.WithResolver(c.resolver),
		builder.WithRenderer(c.renderer),
		builder.WithNotifier(c.notifier),
		builder.WithLogger(logging.ControllerLogger(c.loggerProvider)),
		builder.WithClock(c.now),
		builder.WithDefaultLanguage(c.Config.DefaultLanguage),
		builder.WithHistoryLimit(editor.HistoryLimit),
		builder.WithAutosave(editor.AutoSave, editor.AutoSaveDelay),
	}
	if c.idGenerator != nil {
		opts = append(opts, builder.WithIDGenerator(c.idGenerator))
	}
	if c.engine != nil {
		opts = append(opts, builder.WithBrandkits(c.engine))
	}
	if c.presetSvc != nil {
		opts = append(opts, builder.WithPresets(c.presetSvc))
	}
	if c.importer != nil {
		opts = append(opts, builder.WithMarkdownImporter(c.importer))
	}
	return opts
}

// ImportTheme reads a go-theme manifest from fsys and stores the selected
// variant as a brandkit.
func (c *Container) ImportTheme(ctx context.Context, fsys fs.FS, variant string) (*brandkits.Brandkit, error) {
	if c.themes == nil {
		return nil, fmt.Errorf("%w: brandkits", ErrFeatureDisabled)
	}
	if fsys == nil {
		return nil, ErrThemeFSRequired
	}
	kit, err := c.themes.ImportDir(fsys, variant)
	if err != nil {
		return nil, err
	}
	return c.brandkitRepo.Save(ctx, &kit)
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }
func (c *Container) Registry() *registry.Registry               { return c.registry }
func (c *Container) Resolver() *styles.Resolver                 { return c.resolver }
func (c *Container) Store() storage.Store                       { return c.store }
func (c *Container) BrandkitRepository() brandkits.Repository   { return c.brandkitRepo }

// BrandkitEngine is nil when the brandkits feature is disabled.
func (c *Container) BrandkitEngine() *brandkits.Engine { return c.engine }

// Presets is nil when the presets feature is disabled.
func (c *Container) Presets() presets.Service { return c.presetSvc }

// MarkdownImporter is nil when the markdown feature is disabled.
func (c *Container) MarkdownImporter() *markdown.Importer { return c.importer }

func (c *Container) Renderer() *render.Renderer    { return c.renderer }
func (c *Container) Commands() *pagecmd.HandlerSet { return c.commands }
