package presets_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/presets"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/google/uuid"
)

func newService() presets.Service {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return presets.NewService(presets.NewMemoryRepository(), presets.WithClock(func() time.Time { return now }))
}

func cardInput() presets.CreateInput {
	return presets.CreateInput{
		Name:     "Soft Card",
		Category: presets.CategoryEffects,
		Layout:   settings.LayoutSettings{Padding: &settings.Box{Top: settings.Ptr(24.0), Bottom: settings.Ptr(24.0)}},
		Style: settings.StyleSettings{
			BorderRadius: settings.Ptr(12.0),
			BoxShadows:   []settings.BoxShadow{{Y: 4, Blur: 12, Color: "rgba(0,0,0,.08)"}},
		},
	}
}

func TestCreateDerivesSlugAndID(t *testing.T) {
	svc := newService()

	preset, err := svc.Create(context.Background(), cardInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if preset.Slug == "" {
		t.Fatalf("expected a slug")
	}
	if preset.ID != identity.PresetUUID(preset.Slug) {
		t.Fatalf("expected deterministic id")
	}

	if _, err := svc.Create(context.Background(), cardInput()); !errors.Is(err, presets.ErrPresetExists) {
		t.Fatalf("expected ErrPresetExists, got %v", err)
	}
}

func TestCreateValidates(t *testing.T) {
	svc := newService()

	cases := []struct {
		name  string
		input presets.CreateInput
		want  error
	}{
		{"missing name", presets.CreateInput{Category: presets.CategoryLayout, Style: settings.StyleSettings{Opacity: settings.Ptr(1.0)}}, presets.ErrPresetInvalid},
		{"unknown category", presets.CreateInput{Name: "X", Category: "misc", Style: settings.StyleSettings{Opacity: settings.Ptr(1.0)}}, presets.ErrPresetInvalid},
		{"empty preset", presets.CreateInput{Name: "Nothing", Category: presets.CategoryLayout}, presets.ErrPresetEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestApplyMergesAndCountsUsage(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	preset, err := svc.Create(ctx, cardInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	section := sections.Section{
		ID:     uuid.UUID{15: 1},
		Type:   sections.TypeRichText,
		Order:  3,
		Layout: settings.LayoutSettings{Padding: &settings.Box{Top: settings.Ptr(40.0), Left: settings.Ptr(20.0)}},
		Style:  settings.StyleSettings{TextColor: settings.Ptr("#111")},
	}

	updated, err := svc.Apply(ctx, preset.ID, section)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if *updated.Layout.Padding.Top != 24 || *updated.Layout.Padding.Left != 20 {
		t.Fatalf("expected field-wise merge, got %+v", updated.Layout.Padding)
	}
	if *updated.Style.TextColor != "#111" || *updated.Style.BorderRadius != 12 {
		t.Fatalf("unexpected style %+v", updated.Style)
	}
	if updated.Order != 3 {
		t.Fatalf("apply must not touch order")
	}
	if !updated.IsCustomized("style.borderRadius") || !updated.IsCustomized("layout.padding.top") {
		t.Fatalf("expected preset fields to be marked, got %v", updated.CustomizedFields)
	}
	if *section.Layout.Padding.Top != 40 {
		t.Fatalf("apply must not mutate its input")
	}

	stored, err := svc.Get(ctx, preset.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.UsageCount != 1 {
		t.Fatalf("expected usage count 1, got %d", stored.UsageCount)
	}
}

func TestListFiltersByCategoryAndOrdersByUsage(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	card, _ := svc.Create(ctx, cardInput())
	glow := cardInput()
	glow.Name = "Glow"
	glowPreset, _ := svc.Create(ctx, glow)
	wide := presets.CreateInput{Name: "Wide", Category: presets.CategoryLayout, Layout: settings.LayoutSettings{Width: settings.Ptr(settings.WidthFull)}}
	if _, err := svc.Create(ctx, wide); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Use(ctx, card.ID); err != nil {
		t.Fatalf("use: %v", err)
	}

	effects, err := svc.List(ctx, presets.CategoryEffects)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(effects) != 2 || effects[0].ID != card.ID || effects[1].ID != glowPreset.ID {
		t.Fatalf("unexpected effects list %+v", effects)
	}
	all, _ := svc.List(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(all))
	}
}

func TestUseMissingPreset(t *testing.T) {
	_, err := newService().Use(context.Background(), uuid.UUID{15: 9})
	if !errors.Is(err, presets.ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
}
