package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "missing default language",
			mutate: func(c *runtimeconfig.Config) { c.DefaultLanguage = " " },
			want:   runtimeconfig.ErrDefaultLanguageRequired,
		},
		{
			name:   "default language not listed",
			mutate: func(c *runtimeconfig.Config) { c.Languages = []string{"fr"} },
			want:   runtimeconfig.ErrDefaultLanguageNotListed,
		},
		{
			name:   "auto-save without delay",
			mutate: func(c *runtimeconfig.Config) { c.Editor.AutoSaveDelay = 0 },
			want:   runtimeconfig.ErrAutoSaveDelayInvalid,
		},
		{
			name:   "negative history",
			mutate: func(c *runtimeconfig.Config) { c.Editor.HistoryLimit = -1 },
			want:   runtimeconfig.ErrHistoryLimitInvalid,
		},
		{
			name:   "unknown unit",
			mutate: func(c *runtimeconfig.Config) { c.Render.Unit = "pt" },
			want:   runtimeconfig.ErrRenderUnitInvalid,
		},
		{
			name:   "unknown storage",
			mutate: func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" },
			want:   runtimeconfig.ErrStorageProviderUnknown,
		},
		{
			name: "unknown dialect",
			mutate: func(c *runtimeconfig.Config) {
				c.Storage.Provider = "bun"
				c.Storage.Dialect = "mysql"
			},
			want: runtimeconfig.ErrStorageDialectUnknown,
		},
		{
			name:   "cache without bun",
			mutate: func(c *runtimeconfig.Config) { c.Cache.Enabled = true },
			want:   runtimeconfig.ErrCacheRequiresBunStorage,
		},
		{
			name:   "markdown without feature",
			mutate: func(c *runtimeconfig.Config) { c.Markdown.Enabled = true },
			want:   runtimeconfig.ErrMarkdownFeatureRequired,
		},
		{
			name: "logger without provider",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = ""
			},
			want: runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name: "unknown logger",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = "syslog"
			},
			want: runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name: "gologger format",
			mutate: func(c *runtimeconfig.Config) {
				c.Features.Logger = true
				c.Logging.Provider = "gologger"
				c.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_BunWithCache(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.Dialect = "postgres"
	cfg.Cache.Enabled = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
