package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/internal/storage"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
	"github.com/google/uuid"
)

var pageID = uuid.UUID{0: 1}

func sampleSections() []sections.Section {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return []sections.Section{
		{
			ID:           uuid.UUID{15: 1},
			PageID:       pageID,
			Type:         sections.TypeHero,
			IsActive:     true,
			Translations: []sections.Translation{{LanguageID: "en", Title: "Welcome", Metadata: map[string]any{"ctaText": "Shop"}}},
			Style:        settings.StyleSettings{TextColor: settings.Ptr("#ffffff")},
			CreatedAt:    created,
			UpdatedAt:    created,
		},
		{
			ID:        uuid.UUID{15: 2},
			PageID:    pageID,
			Type:      sections.TypeCustomHTML,
			Order:     1,
			Custom:    settings.CustomSettings{CustomCSS: settings.Untrusted("body{}"), Sandbox: true},
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func newBunStore(t *testing.T, name string) *storage.BunStore {
	t.Helper()
	return storage.NewBunStore(testsupport.NewBunDB(t, name))
}

func TestStores(t *testing.T) {
	cases := []struct {
		name  string
		store storage.Store
	}{
		{"memory", storage.NewMemoryStore()},
		{"bun", newBunStore(t, "storage_round_trip")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			if err := tc.store.Save(ctx, pageID, sampleSections()); err != nil {
				t.Fatalf("save: %v", err)
			}
			loaded, err := tc.store.Load(ctx, pageID)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(loaded) != 2 || loaded[0].Type != sections.TypeHero || loaded[1].Order != 1 {
				t.Fatalf("unexpected sections %+v", loaded)
			}
			if tr, ok := loaded[0].Translation("en"); !ok || tr.Metadata["ctaText"] != "Shop" {
				t.Fatalf("translation lost: %+v", loaded[0].Translations)
			}
			if *loaded[0].Style.TextColor != "#ffffff" {
				t.Fatalf("style lost")
			}
			if loaded[1].Custom.CustomCSS.Raw() != "body{}" {
				t.Fatalf("custom css lost: %q", loaded[1].Custom.CustomCSS.Raw())
			}

			// Saving a shorter list replaces the page.
			if err := tc.store.Save(ctx, pageID, sampleSections()[1:]); err != nil {
				t.Fatalf("second save: %v", err)
			}
			loaded, _ = tc.store.Load(ctx, pageID)
			if len(loaded) != 1 || loaded[0].Type != sections.TypeCustomHTML || loaded[0].Order != 0 {
				t.Fatalf("expected replacement, got %+v", loaded)
			}

			empty, err := tc.store.Load(ctx, uuid.UUID{0: 9})
			if err != nil || len(empty) != 0 {
				t.Fatalf("unknown page should load empty, got %v %v", empty, err)
			}
		})
	}
}

func TestSaveRenumbersByPosition(t *testing.T) {
	store := storage.NewMemoryStore()
	list := sampleSections()
	list[0].Order, list[1].Order = 7, 3

	_ = store.Save(context.Background(), pageID, list)
	loaded, _ := store.Load(context.Background(), pageID)
	if loaded[0].Type != sections.TypeHero || loaded[0].Order != 0 || loaded[1].Order != 1 {
		t.Fatalf("expected list position to define order, got %+v", loaded)
	}
}

func TestStoresRequirePageID(t *testing.T) {
	stores := []storage.Store{storage.NewMemoryStore(), storage.NewBunStore(nil)}
	for _, store := range stores {
		err := store.Save(context.Background(), uuid.Nil, nil)
		if !errors.Is(err, storage.ErrPageIDRequired) && !errors.Is(err, storage.ErrDatabaseRequired) {
			t.Fatalf("unexpected error %v", err)
		}
	}
}

func TestNewDBRejectsUnknownDialect(t *testing.T) {
	if _, err := storage.NewDB(&sql.DB{}, "oracle"); !errors.Is(err, storage.ErrDialectUnknown) {
		t.Fatalf("expected ErrDialectUnknown, got %v", err)
	}
}
