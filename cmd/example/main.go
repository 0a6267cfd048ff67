package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-pagebuilder"
	"github.com/goliatone/go-pagebuilder/internal/brandkits"
	"github.com/goliatone/go-pagebuilder/internal/builder"
	"github.com/goliatone/go-pagebuilder/internal/commands/pagecmd"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/presets"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
)

const aboutMarkdown = `---
type: rich_text
title: About us
excerpt: Who we are
---
We build **things** people enjoy.

- Fast
- Friendly
`

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	ctx := context.Background()
	if err := run(ctx); err != nil {
		log.Fatalf("example: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := pagebuilder.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.Extensions = []string{"gfm", "typographer"}
	cfg.Logging.Provider = env("PAGEBUILDER_LOG_PROVIDER", "console")
	cfg.Logging.Level = env("PAGEBUILDER_LOG_LEVEL", "info")
	cfg.Logging.Format = env("PAGEBUILDER_LOG_FORMAT", "")
	cfg.Editor.AutoSaveDelay = 2 * time.Second

	opts := []di.Option{
		di.WithNotifier(interfaces.NotifierFunc(func(_ context.Context, n interfaces.Notification) {
			fmt.Printf("[%s] %s: %s\n", n.Level, n.Code, n.Message)
		})),
	}

	if path := env("PAGEBUILDER_DB", "pagebuilder.db"); path != ":memory:" {
		sqlDB, err := sql.Open("sqlite3", "file:"+path+"?_fk=1")
		if err != nil {
			return err
		}
		db, err := storage.NewDB(sqlDB, "sqlite")
		if err != nil {
			return err
		}
		defer db.Close()

		cfg.Storage.Provider = "bun"
		cfg.Cache.Enabled = true
		opts = append(opts, di.WithBunDB(db))
	}

	module, err := pagebuilder.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := module.Migrate(ctx); err != nil {
		return err
	}

	kit, err := seedBrandkit(ctx, module)
	if err != nil {
		return err
	}
	preset, err := seedPreset(ctx, module)
	if err != nil {
		return err
	}

	pageID := uuid.MustParse(env("PAGEBUILDER_PAGE", "6f1c2e4a-0000-4000-8000-000000000001"))
	session, err := module.Load(ctx, pageID, builder.WithOnChange(func(list []sections.Section) {
		fmt.Printf("page now has %d sections\n", len(list))
	}))
	if err != nil {
		return err
	}
	defer module.Close(pageID)

	if len(session.Sections()) == 0 {
		if err := buildPage(ctx, session, preset.ID); err != nil {
			return err
		}
	}

	commands := module.Commands()
	err = commands.ImportMarkdown.Execute(ctx, pagecmd.ImportMarkdownCommand{
		PageID: pageID,
		Source: []byte(aboutMarkdown),
		Index:  sections.End,
	})
	if err != nil {
		return err
	}

	err = commands.ApplyBrandkit.Execute(ctx, pagecmd.ApplyBrandkitCommand{
		PageID:     pageID,
		BrandkitID: kit.ID,
		Options:    brandkits.DefaultApplyOptions(),
		OnResult: func(result brandkits.Result) {
			fmt.Printf("brandkit %s: applied=%d skipped=%d failed=%d\n",
				kit.Name, result.AppliedCount, result.SkippedCount, result.FailedCount)
		},
	})
	if err != nil {
		return err
	}

	// Ctrl+S goes through the same path as the editor toolbar.
	if _, err := session.HandleKey(ctx, builder.KeyEvent{Key: "s", Mod: true}); err != nil {
		return err
	}

	for _, viewport := range settings.Viewports {
		if err := session.SetViewport(viewport); err != nil {
			return err
		}
		html, err := session.Render(cfg.DefaultLanguage)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("page-%s.html", viewport)
		if err := os.WriteFile(name, []byte(string(html)), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", name, len(html))
	}
	return nil
}

func buildPage(ctx context.Context, session *pagebuilder.Builder, presetID uuid.UUID) error {
	hero, err := session.AddSection(sections.TypeHero, sections.End)
	if err != nil {
		return err
	}
	title, subtitle := "Spring launch", "Everything you need, nothing you don't"
	if err := session.UpdateTranslation(hero.ID, "en", sections.TranslationPatch{
		Title:    &title,
		Subtitle: &subtitle,
		Metadata: map[string]any{"ctaText": "Shop now", "ctaUrl": "/shop"},
	}); err != nil {
		return err
	}
	if err := session.UpdateResponsive(hero.ID, settings.Mobile, settings.Override{
		Layout: &settings.LayoutSettings{Padding: &settings.Box{Top: settings.Ptr(16.0), Bottom: settings.Ptr(16.0)}},
	}); err != nil {
		return err
	}

	stats, err := session.AddSection(sections.TypeStatsCounter, sections.End)
	if err != nil {
		return err
	}
	if err := session.ApplyPreset(ctx, stats.ID, presetID); err != nil {
		return err
	}

	embed, err := session.AddSection(sections.TypeCustomHTML, sections.End)
	if err != nil {
		return err
	}
	widget := `<div id="w">Live widget</div><script>document.getElementById("w").textContent += "!"</script>`
	if err := session.UpdateTranslation(embed.ID, "en", sections.TranslationPatch{
		Metadata: map[string]any{"html": widget, "height": 120},
	}); err != nil {
		return err
	}

	// A mistaken duplicate, undone right away.
	if _, _, err := session.DuplicateSection(stats.ID); err != nil {
		return err
	}
	session.Undo()
	return nil
}

func seedBrandkit(ctx context.Context, module *pagebuilder.Module) (*brandkits.Brandkit, error) {
	kit, err := brandkits.FromTokens("Acme", map[string]string{
		"color.primary.500":   "#2563eb",
		"color.secondary.500": "#9333ea",
		"color.gray.900":      "#111827",
		"font.heading":        "Poppins",
		"font.body":           "Inter",
		"font.size.base":      "16px",
		"spacing.md":          "24",
	})
	if err != nil {
		return nil, err
	}
	return module.Brandkits().Save(ctx, &kit)
}

func seedPreset(ctx context.Context, module *pagebuilder.Module) (*presets.StylePreset, error) {
	svc := module.Presets()
	existing, err := svc.GetBySlug(ctx, "soft-card")
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, presets.ErrPresetNotFound) {
		return nil, err
	}
	return svc.Create(ctx, presets.CreateInput{
		Name:     "Soft Card",
		Category: presets.CategoryEffects,
		Style: settings.StyleSettings{
			BorderRadius: settings.Ptr(12.0),
			BoxShadows:   []settings.BoxShadow{{Y: 4, Blur: 12, Color: "rgba(0,0,0,.08)"}},
		},
	})
}

func env(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
