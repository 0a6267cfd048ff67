package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrDefaultLanguageRequired  = errors.New("builder config: default language is required")
	ErrDefaultLanguageNotListed = errors.New("builder config: default language must be part of languages")
	ErrAutoSaveDelayInvalid     = errors.New("builder config: auto-save delay must be positive when auto-save is enabled")
	ErrHistoryLimitInvalid      = errors.New("builder config: history limit must be zero or positive")
	ErrRenderUnitInvalid        = errors.New("builder config: render unit is invalid")
	ErrRenderWidthInvalid       = errors.New("builder config: container and narrow widths must be positive")
	ErrStorageProviderUnknown   = errors.New("builder config: storage provider is invalid")
	ErrStorageDialectUnknown    = errors.New("builder config: storage dialect is invalid")
	ErrCacheRequiresBunStorage  = errors.New("builder config: repository cache requires bun storage")
	ErrMarkdownFeatureRequired  = errors.New("builder config: markdown import requires the markdown feature")
	ErrLoggingProviderRequired  = errors.New("builder config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("builder config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("builder config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("builder config: logging format is invalid")
)

// Config aggregates page builder behaviour and adapter selection.
type Config struct {
	Enabled         bool
	DefaultLanguage string
	Languages       []string
	Editor          EditorConfig
	Render          RenderConfig
	Storage         StorageConfig
	Cache           CacheConfig
	Features        Features
	Markdown        MarkdownConfig
	Logging         LoggingConfig
}

// EditorConfig controls page builder session behaviour.
type EditorConfig struct {
	AutoSave      bool
	AutoSaveDelay time.Duration

	// HistoryLimit caps undo snapshots. Zero keeps every snapshot for the session.
	HistoryLimit int
}

// RenderConfig captures style resolution constants.
type RenderConfig struct {
	Unit             string
	ContainerWidth   int
	NarrowWidth      int
	SanitizeRichText bool
}

// StorageConfig selects the persistence adapter used by Save.
type StorageConfig struct {
	Provider string
	Dialect  string
}

// CacheConfig toggles the repository cache in front of brandkit and preset repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// Features toggles optional modules.
type Features struct {
	Brandkits bool
	Presets   bool
	Markdown  bool
	Logger    bool
}

// MarkdownConfig controls markdown section imports.
type MarkdownConfig struct {
	Enabled    bool
	HardWraps  bool
	Extensions []string
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings the admin UI ships with.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultLanguage: "en",
		Languages:       []string{"en"},
		Editor: EditorConfig{
			AutoSave:      true,
			AutoSaveDelay: 30 * time.Second,
		},
		Render: RenderConfig{
			Unit:             "px",
			ContainerWidth:   1200,
			NarrowWidth:      800,
			SanitizeRichText: true,
		},
		Storage: StorageConfig{
			Provider: "memory",
			Dialect:  "sqlite",
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Features: Features{
			Brandkits: true,
			Presets:   true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks across sections of the config.
func (cfg Config) Validate() error {
	lang := strings.TrimSpace(cfg.DefaultLanguage)
	if lang == "" {
		return ErrDefaultLanguageRequired
	}
	if len(cfg.Languages) > 0 && !slices.Contains(cfg.Languages, lang) {
		return fmt.Errorf("%w: %s", ErrDefaultLanguageNotListed, lang)
	}
	if cfg.Editor.AutoSave && cfg.Editor.AutoSaveDelay <= 0 {
		return ErrAutoSaveDelayInvalid
	}
	if cfg.Editor.HistoryLimit < 0 {
		return ErrHistoryLimitInvalid
	}
	switch cfg.Render.Unit {
	case "px", "rem", "em", "%":
	default:
		return fmt.Errorf("%w: %q", ErrRenderUnitInvalid, cfg.Render.Unit)
	}
	if cfg.Render.ContainerWidth <= 0 || cfg.Render.NarrowWidth <= 0 {
		return ErrRenderWidthInvalid
	}

	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case "", "memory", "bun":
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if provider == "bun" {
		switch normalize(cfg.Storage.Dialect) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
	}
	if cfg.Cache.Enabled && provider != "bun" {
		return ErrCacheRequiresBunStorage
	}
	if cfg.Markdown.Enabled && !cfg.Features.Markdown {
		return ErrMarkdownFeatureRequired
	}

	if cfg.Features.Logger {
		logProvider := normalize(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if logProvider != "console" && logProvider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := normalize(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := normalize(cfg.Logging.Format); logProvider == "gologger" && format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func isSupportedFormat(format string) bool {
	switch format {
	case "json", "console", "pretty":
		return true
	}
	return false
}
