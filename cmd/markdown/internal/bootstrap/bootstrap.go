package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-pagebuilder"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Options captures configuration for markdown CLI bootstraps.
type Options struct {
	// DBPath selects sqlite storage when set; memory storage otherwise.
	DBPath          string
	DefaultLanguage string
	HardWraps       bool
	Extensions      []string
	LoggerProvider  interfaces.LoggerProvider
}

// Module wraps the page builder module and the markdown logger.
type Module struct {
	Module *pagebuilder.Module
	Logger interfaces.Logger
	close  func() error
}

// Close releases the database handle, if any.
func (m *Module) Close() error {
	if m == nil || m.close == nil {
		return nil
	}
	return m.close()
}

// BuildModule constructs a page builder module configured for markdown imports.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Editor.AutoSave = false
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.HardWraps = opts.HardWraps
	cfg.Markdown.Extensions = cloneStrings(opts.Extensions)

	if lang := strings.TrimSpace(opts.DefaultLanguage); lang != "" {
		cfg.DefaultLanguage = lang
		cfg.Languages = []string{lang}
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	closeFn := func() error { return nil }
	if path := strings.TrimSpace(opts.DBPath); path != "" {
		sqlDB, err := sql.Open("sqlite3", "file:"+path+"?_fk=1")
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db, err := storage.NewDB(sqlDB, "sqlite")
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		cfg.Storage.Provider = "bun"
		cfg.Storage.Dialect = "sqlite"
		diOpts = append(diOpts, di.WithBunDB(db))
		closeFn = db.Close
	}

	module, err := pagebuilder.New(cfg, diOpts...)
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("initialise page builder module: %w", err)
	}
	if err := module.Migrate(ctx); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.MarkdownLogger(module.Container().LoggerProvider()),
		close:  closeFn,
	}, nil
}

// ParseUUID converts the supplied string into a UUID, returning uuid.Nil when the input is empty.
func ParseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(trimmed)
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
