package builder

import (
	"context"

	"github.com/goliatone/go-pagebuilder/internal/brandkits"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

// ApplyBrandkit runs the engine over the current list. The result is
// committed as a single history entry only when the run succeeds, is not a
// dry run and changed at least one section; otherwise the page is untouched.
func (b *Builder) ApplyBrandkit(ctx context.Context, kit brandkits.Brandkit, req brandkits.ApplyRequest) (brandkits.Result, error) {
	if b.brandkits == nil {
		return brandkits.Result{}, ErrBrandkitsDisabled
	}
	if req.DryRun {
		return b.PreviewBrandkit(ctx, kit, req)
	}

	b.mu.Lock()
	result, err := b.brandkits.Apply(ctx, kit, b.collection.Sections(), req)
	if err != nil || result.DryRun || result.AppliedCount == 0 {
		b.mu.Unlock()
		if err != nil {
			b.logger.Warn("builder.brandkit.rejected", "brandkit_id", kit.ID.String(), "error", err)
		}
		return result, err
	}
	b.collection.Replace(result.Sections)
	snapshot := b.commitLocked("apply_brandkit")
	b.mu.Unlock()

	b.emit(snapshot)
	b.notify(ctx, interfaces.NotificationSuccess, "brandkit_applied", "Brandkit applied.", map[string]any{
		"brandkit_id": kit.ID.String(),
		"applied":     result.AppliedCount,
		"skipped":     result.SkippedCount,
		"failed":      result.FailedCount,
	})
	return result, nil
}

// PreviewBrandkit reports what ApplyBrandkit would change without touching
// the page.
func (b *Builder) PreviewBrandkit(ctx context.Context, kit brandkits.Brandkit, req brandkits.ApplyRequest) (brandkits.Result, error) {
	if b.brandkits == nil {
		return brandkits.Result{}, ErrBrandkitsDisabled
	}
	list := b.Sections()
	return b.brandkits.Preview(ctx, kit, list, req)
}

// BrandkitCompatibility checks kit against the current page.
func (b *Builder) BrandkitCompatibility(kit brandkits.Brandkit) (brandkits.Compatibility, error) {
	if b.brandkits == nil {
		return brandkits.Compatibility{}, ErrBrandkitsDisabled
	}
	return b.brandkits.ValidateCompatibility(kit, b.Sections()), nil
}

// ApplyPreset merges a style preset into the section. Unknown sections are a
// no-op and do not count as a preset use.
func (b *Builder) ApplyPreset(ctx context.Context, sectionID, presetID uuid.UUID) error {
	if b.presets == nil {
		return ErrPresetsDisabled
	}
	if _, ok := b.Section(sectionID); !ok {
		return nil
	}

	patch, err := b.presets.Use(ctx, presetID)
	if err != nil {
		return err
	}
	return b.mutate("apply_preset", func(c *sections.Collection) error {
		return c.Update(sectionID, patch)
	})
}

// ImportMarkdown adds a section built from a markdown document at index and
// selects it. The section and its content land as one history entry.
func (b *Builder) ImportMarkdown(ctx context.Context, source []byte, index int) (sections.Section, error) {
	if b.importer == nil {
		return sections.Section{}, ErrMarkdownDisabled
	}
	doc, err := b.importer.Import(ctx, source)
	if err != nil {
		return sections.Section{}, err
	}

	var imported sections.Section
	err = b.mutate("import_markdown", func(c *sections.Collection) error {
		before := c.Sections()
		section, err := c.Add(doc.Type, index)
		if err != nil {
			return err
		}
		if err := fillTranslation(c, section.ID, doc.Translation); err != nil {
			c.Replace(before)
			return err
		}
		imported, _ = c.Get(section.ID)
		b.selected = section.ID
		return nil
	})
	return imported, err
}

func fillTranslation(c *sections.Collection, id uuid.UUID, tr sections.Translation) error {
	section, _ := c.Get(id)
	if _, ok := section.Translation(tr.LanguageID); !ok {
		if err := c.AddTranslation(id, tr.LanguageID); err != nil {
			return err
		}
	}
	return c.UpdateTranslation(id, tr.LanguageID, sections.TranslationPatch{
		Title:    nonEmpty(tr.Title),
		Subtitle: nonEmpty(tr.Subtitle),
		Content:  nonEmpty(tr.Content),
		Excerpt:  nonEmpty(tr.Excerpt),
		Metadata: tr.Metadata,
	})
}

// nonEmpty keeps factory defaults for fields the document leaves blank.
func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
