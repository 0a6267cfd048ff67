package di_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/brandkits"
	"github.com/goliatone/go-pagebuilder/internal/commands/pagecmd"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
	"github.com/google/uuid"
)

var pageID = uuid.UUID{0: 1}

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Editor.AutoSave = false
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	return cfg
}

func counterIDs() sections.IDGenerator {
	var n byte
	return func() uuid.UUID {
		n++
		return uuid.UUID{15: n}
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLanguage = ""
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrDefaultLanguageRequired) {
		t.Fatalf("expected ErrDefaultLanguageRequired, got %v", err)
	}
}

func TestFeatureTogglesControlCollaborators(t *testing.T) {
	cfg := testConfig()
	cfg.Features = runtimeconfig.Features{}
	cfg.Markdown.Enabled = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.BrandkitEngine() != nil || container.Presets() != nil || container.MarkdownImporter() != nil {
		t.Fatalf("expected optional collaborators to be disabled")
	}
	if container.Registry() == nil || container.Renderer() == nil || container.Store() == nil {
		t.Fatalf("expected core collaborators to be wired")
	}

	session, err := container.Open(pageID, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := session.ImportMarkdown(context.Background(), []byte("# hi"), sections.End); err == nil {
		t.Fatalf("expected markdown import to be disabled")
	}

	err = container.Commands().ApplyBrandkit.Execute(context.Background(), pagecmd.ApplyBrandkitCommand{
		PageID:     pageID,
		BrandkitID: uuid.UUID{15: 0xb1},
		Options:    brandkits.DefaultApplyOptions(),
	})
	if !errors.Is(err, pagecmd.ErrBrandkitsDisabled) {
		t.Fatalf("expected ErrBrandkitsDisabled, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	container, err := di.NewContainer(testConfig(), di.WithIDGenerator(counterIDs()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	ctx := context.Background()

	session, err := container.Open(pageID, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := container.Open(pageID, nil); !errors.Is(err, di.ErrSessionOpen) {
		t.Fatalf("expected ErrSessionOpen, got %v", err)
	}
	if got, ok := container.Session(pageID); !ok || got != session {
		t.Fatalf("expected the open session to be tracked")
	}

	if _, err := session.AddSection(sections.TypeHero, sections.End); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := container.Commands().Save.Execute(ctx, pagecmd.SavePageCommand{PageID: pageID}); err != nil {
		t.Fatalf("save command: %v", err)
	}
	if session.HasUnsavedChanges() {
		t.Fatalf("expected the save command to persist the session")
	}

	if !container.Close(pageID) || container.Close(pageID) {
		t.Fatalf("expected close to report the session once")
	}
	if err := container.Commands().Save.Execute(ctx, pagecmd.SavePageCommand{PageID: pageID}); !errors.Is(err, pagecmd.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after close, got %v", err)
	}

	reopened, err := container.Load(ctx, pageID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	list := reopened.Sections()
	if len(list) != 1 || list[0].Type != sections.TypeHero {
		t.Fatalf("expected the saved hero section, got %+v", list)
	}
}

func TestImportMarkdownCommandThroughContainer(t *testing.T) {
	container, err := di.NewContainer(testConfig(), di.WithIDGenerator(counterIDs()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, err := container.Open(pageID, nil); err != nil {
		t.Fatalf("open: %v", err)
	}

	var imported sections.Section
	err = container.Commands().ImportMarkdown.Execute(context.Background(), pagecmd.ImportMarkdownCommand{
		PageID:     pageID,
		Source:     []byte("---\ntitle: Notes\n---\nSome *notes*."),
		Index:      sections.End,
		OnImported: func(s sections.Section) { imported = s },
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Type != sections.TypeRichText {
		t.Fatalf("expected a rich text section, got %+v", imported)
	}
	tr, ok := imported.Translation("en")
	if !ok || tr.Title != "Notes" || tr.Content != "<p>Some <em>notes</em>.</p>" {
		t.Fatalf("unexpected translation %+v", tr)
	}
}

func TestApplyBrandkitCommandThroughContainer(t *testing.T) {
	container, err := di.NewContainer(testConfig(), di.WithIDGenerator(counterIDs()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	ctx := context.Background()

	kit, err := brandkits.FromTokens("Acme", map[string]string{"color.primary.500": "#0000ff"})
	if err != nil {
		t.Fatalf("from tokens: %v", err)
	}
	if _, err := container.BrandkitRepository().Save(ctx, &kit); err != nil {
		t.Fatalf("save brandkit: %v", err)
	}

	session, err := container.Open(pageID, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := session.AddSection(sections.TypeHero, sections.End); err != nil {
		t.Fatalf("add: %v", err)
	}

	var result brandkits.Result
	err = container.Commands().ApplyBrandkit.Execute(ctx, pagecmd.ApplyBrandkitCommand{
		PageID:     pageID,
		BrandkitID: kit.ID,
		Options:    brandkits.ApplyOptions{ApplyColors: true, ConflictResolution: brandkits.ConflictOverwrite},
		OnResult:   func(r brandkits.Result) { result = r },
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if result.AppliedCount != 1 || result.BrandkitID != kit.ID {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestApplyBrandkitCommandMergeKeepsCustomisedFields(t *testing.T) {
	container, err := di.NewContainer(testConfig(), di.WithIDGenerator(counterIDs()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	ctx := context.Background()

	kit, err := brandkits.FromTokens("Acme", map[string]string{"color.primary.500": "#0000ff"})
	if err != nil {
		t.Fatalf("from tokens: %v", err)
	}
	if _, err := container.BrandkitRepository().Save(ctx, &kit); err != nil {
		t.Fatalf("save brandkit: %v", err)
	}

	session, err := container.Open(pageID, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	text, err := session.AddSection(sections.TypeRichText, sections.End)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := session.UpdateSection(text.ID, sections.Patch{
		Style: &settings.StyleSettings{TextColor: settings.Ptr("#ff0000")},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// preserveCustomizations left out, as a decoded JSON message would.
	err = container.Commands().ApplyBrandkit.Execute(ctx, pagecmd.ApplyBrandkitCommand{
		PageID:     pageID,
		BrandkitID: kit.ID,
		Options:    brandkits.ApplyOptions{ApplyColors: true, ConflictResolution: brandkits.ConflictMerge},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	got, ok := session.Section(text.ID)
	if !ok || got.Style.TextColor == nil || *got.Style.TextColor != "#ff0000" {
		t.Fatalf("merge must keep the customised text colour, got %+v", got.Style.TextColor)
	}
}

func TestImportThemeErrors(t *testing.T) {
	container, err := di.NewContainer(testConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, err := container.ImportTheme(context.Background(), nil, ""); !errors.Is(err, di.ErrThemeFSRequired) {
		t.Fatalf("expected ErrThemeFSRequired, got %v", err)
	}

	cfg := testConfig()
	cfg.Features.Brandkits = false
	disabled, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, err := disabled.ImportTheme(context.Background(), nil, ""); !errors.Is(err, di.ErrFeatureDisabled) {
		t.Fatalf("expected ErrFeatureDisabled, got %v", err)
	}
}

func TestBuilderDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, err := container.Open(pageID, nil); !errors.Is(err, di.ErrBuilderDisabled) {
		t.Fatalf("expected ErrBuilderDisabled, got %v", err)
	}
}

func TestBunStorageRequiresDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Provider = "bun"
	if _, err := di.NewContainer(cfg); !errors.Is(err, di.ErrBunDBRequired) {
		t.Fatalf("expected ErrBunDBRequired, got %v", err)
	}
}

func TestBunStorageRoundTrip(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB("di_bun_round_trip")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db, err := storage.NewDB(sqlDB, "sqlite")
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig()
	cfg.Storage.Provider = "bun"
	cfg.Cache.Enabled = true

	container, err := di.NewContainer(cfg, di.WithBunDB(db), di.WithIDGenerator(counterIDs()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := container.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	session, err := container.Open(pageID, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := session.AddSection(sections.TypeRichText, sections.End); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := session.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	list, err := container.Store().Load(ctx, pageID)
	if err != nil || len(list) != 1 || list[0].Type != sections.TypeRichText {
		t.Fatalf("expected the stored section, got %+v %v", list, err)
	}
}
