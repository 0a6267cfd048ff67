package builder

import (
	"time"

	"github.com/goliatone/go-pagebuilder/internal/autosave"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/internal/styles"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// DefaultSaveTimeout bounds a single auto-save.
const DefaultSaveTimeout = 10 * time.Second

type config struct {
	store           storage.Store
	brandkits       BrandkitEngine
	presets         PresetSource
	importer        MarkdownImporter
	renderer        PageRenderer
	resolver        *styles.Resolver
	notifier        interfaces.Notifier
	logger          interfaces.Logger
	onChange        ChangeFunc
	now             func() time.Time
	idGenerator     sections.IDGenerator
	defaultLanguage string
	historyLimit    int
	autosave        bool
	autosaveDelay   time.Duration
	afterFunc       autosave.AfterFunc
	saveTimeout     time.Duration
}

func defaultConfig() config {
	return config{
		resolver:        styles.NewResolver(),
		logger:          logging.NoOp(),
		now:             time.Now,
		defaultLanguage: "en",
		autosave:        true,
		autosaveDelay:   autosave.DefaultDelay,
		saveTimeout:     DefaultSaveTimeout,
	}
}

// Option configures a Builder.
type Option func(*config)

// WithStore sets the Save collaborator. Without one, Save fails and
// auto-save stays off.
func WithStore(store storage.Store) Option {
	return func(c *config) {
		c.store = store
	}
}

func WithBrandkits(engine BrandkitEngine) Option {
	return func(c *config) {
		c.brandkits = engine
	}
}

func WithPresets(source PresetSource) Option {
	return func(c *config) {
		c.presets = source
	}
}

func WithMarkdownImporter(importer MarkdownImporter) Option {
	return func(c *config) {
		c.importer = importer
	}
}

func WithRenderer(renderer PageRenderer) Option {
	return func(c *config) {
		c.renderer = renderer
	}
}

func WithResolver(resolver *styles.Resolver) Option {
	return func(c *config) {
		if resolver != nil {
			c.resolver = resolver
		}
	}
}

func WithNotifier(notifier interfaces.Notifier) Option {
	return func(c *config) {
		c.notifier = notifier
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnChange registers the hook that receives the list after each change.
func WithOnChange(fn ChangeFunc) Option {
	return func(c *config) {
		c.onChange = fn
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		if clock != nil {
			c.now = clock
		}
	}
}

func WithIDGenerator(generator sections.IDGenerator) Option {
	return func(c *config) {
		c.idGenerator = generator
	}
}

func WithDefaultLanguage(languageID string) Option {
	return func(c *config) {
		if languageID != "" {
			c.defaultLanguage = languageID
		}
	}
}

// WithHistoryLimit caps the undo log. Zero keeps every snapshot.
func WithHistoryLimit(limit int) Option {
	return func(c *config) {
		c.historyLimit = limit
	}
}

// WithAutosave toggles auto-save and sets its delay. A non-positive delay
// keeps autosave.DefaultDelay.
func WithAutosave(enabled bool, delay time.Duration) Option {
	return func(c *config) {
		c.autosave = enabled
		if delay > 0 {
			c.autosaveDelay = delay
		}
	}
}

// WithAfterFunc replaces the auto-save timer source.
func WithAfterFunc(after autosave.AfterFunc) Option {
	return func(c *config) {
		c.afterFunc = after
	}
}

func WithSaveTimeout(timeout time.Duration) Option {
	return func(c *config) {
		if timeout > 0 {
			c.saveTimeout = timeout
		}
	}
}
