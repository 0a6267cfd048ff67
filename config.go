package pagebuilder

import "github.com/goliatone/go-pagebuilder/internal/runtimeconfig"

var (
	ErrDefaultLanguageRequired  = runtimeconfig.ErrDefaultLanguageRequired
	ErrDefaultLanguageNotListed = runtimeconfig.ErrDefaultLanguageNotListed
	ErrAutoSaveDelayInvalid     = runtimeconfig.ErrAutoSaveDelayInvalid
	ErrHistoryLimitInvalid      = runtimeconfig.ErrHistoryLimitInvalid
	ErrRenderUnitInvalid        = runtimeconfig.ErrRenderUnitInvalid
	ErrRenderWidthInvalid       = runtimeconfig.ErrRenderWidthInvalid
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown    = runtimeconfig.ErrStorageDialectUnknown
	ErrCacheRequiresBunStorage  = runtimeconfig.ErrCacheRequiresBunStorage
	ErrMarkdownFeatureRequired  = runtimeconfig.ErrMarkdownFeatureRequired
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	EditorConfig   = runtimeconfig.EditorConfig
	RenderConfig   = runtimeconfig.RenderConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	Features       = runtimeconfig.Features
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
