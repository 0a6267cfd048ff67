package builder

import (
	"context"
	"errors"

	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/internal/settings"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

// isNoop reports collection errors that leave the page untouched and are
// not surfaced to callers.
func isNoop(err error) bool {
	return errors.Is(err, sections.ErrSectionNotFound) ||
		errors.Is(err, sections.ErrTranslationNotFound) ||
		errors.Is(err, sections.ErrNoChange)
}

// mutate runs fn under the lock. A successful fn is committed as one history
// entry; a no-op error is swallowed.
func (b *Builder) mutate(op string, fn func(c *sections.Collection) error) error {
	b.mu.Lock()
	if err := fn(b.collection); err != nil {
		b.mu.Unlock()
		if isNoop(err) {
			b.logger.Debug("builder.noop", "op", op, "reason", err.Error())
			return nil
		}
		return err
	}
	snapshot := b.commitLocked(op)
	b.mu.Unlock()

	b.emit(snapshot)
	return nil
}

// commitLocked records the current list as a new history entry, flags the
// page dirty and restarts the auto-save countdown.
func (b *Builder) commitLocked(op string) []sections.Section {
	snapshot := b.collection.Sections()
	b.history.Push(snapshot)
	b.unsaved = true
	b.revision++
	if b.autosave != nil {
		b.autosave.Trigger()
	}
	b.logger.Debug("builder.changed", "op", op, "revision", b.revision, "sections", len(snapshot))
	return snapshot
}

func (b *Builder) emit(snapshot []sections.Section) {
	if b.onChange != nil {
		b.onChange(snapshot)
	}
}

// AddSection inserts a default section of sectionType at index (sections.End
// appends) and selects it.
func (b *Builder) AddSection(sectionType sections.SectionType, index int) (sections.Section, error) {
	var added sections.Section
	err := b.mutate("add", func(c *sections.Collection) error {
		section, err := c.Add(sectionType, index)
		if err != nil {
			return err
		}
		added = section
		b.selected = section.ID
		b.panel = PanelContent
		return nil
	})
	return added, err
}

// RemoveSection deletes the section and clears the selection if it pointed there.
func (b *Builder) RemoveSection(id uuid.UUID) error {
	return b.mutate("remove", func(c *sections.Collection) error {
		if err := c.Remove(id); err != nil {
			return err
		}
		if b.selected == id {
			b.selected = uuid.Nil
		}
		return nil
	})
}

// DuplicateSection copies the section right after itself and selects the copy
// for content editing.
// The second return is false when id is unknown.
func (b *Builder) DuplicateSection(id uuid.UUID) (sections.Section, bool, error) {
	var copied sections.Section
	var ok bool
	err := b.mutate("duplicate", func(c *sections.Collection) error {
		section, err := c.Duplicate(id)
		if err != nil {
			return err
		}
		copied, ok = section, true
		b.selected = section.ID
		b.panel = PanelContent
		return nil
	})
	return copied, ok, err
}

func (b *Builder) MoveSection(id uuid.UUID, direction sections.Direction) error {
	return b.mutate("move", func(c *sections.Collection) error {
		return c.Move(id, direction)
	})
}

func (b *Builder) ReorderSection(id uuid.UUID, targetIndex int) error {
	return b.mutate("reorder", func(c *sections.Collection) error {
		return c.Reorder(id, targetIndex)
	})
}

func (b *Builder) SetActive(id uuid.UUID, active bool) error {
	return b.mutate("set_active", func(c *sections.Collection) error {
		return c.SetActive(id, active)
	})
}

// UpdateSection merges patch into the section.
func (b *Builder) UpdateSection(id uuid.UUID, patch sections.Patch) error {
	return b.mutate("update", func(c *sections.Collection) error {
		return c.Update(id, patch)
	})
}

// UpdateResponsive merges override into the section for viewport.
func (b *Builder) UpdateResponsive(id uuid.UUID, viewport settings.Viewport, override settings.Override) error {
	return b.mutate("update_responsive", func(c *sections.Collection) error {
		return c.UpdateResponsive(id, viewport, override)
	})
}

func (b *Builder) UpdateTranslation(id uuid.UUID, languageID string, patch sections.TranslationPatch) error {
	return b.mutate("update_translation", func(c *sections.Collection) error {
		return c.UpdateTranslation(id, languageID, patch)
	})
}

func (b *Builder) AddTranslation(id uuid.UUID, languageID string) error {
	return b.mutate("add_translation", func(c *sections.Collection) error {
		return c.AddTranslation(id, languageID)
	})
}

// RemoveTranslation drops a translation. Removing the default language is
// refused with a warning notification rather than an error.
func (b *Builder) RemoveTranslation(ctx context.Context, id uuid.UUID, languageID string) error {
	err := b.mutate("remove_translation", func(c *sections.Collection) error {
		return c.RemoveTranslation(id, languageID)
	})
	if errors.Is(err, sections.ErrDefaultTranslationRequired) {
		b.logger.Warn("builder.translation.default_protected", "section_id", id.String(), "language_id", languageID)
		b.notify(ctx, interfaces.NotificationWarning, "default_translation_required",
			"The default language translation cannot be removed.",
			map[string]any{"section_id": id.String(), "language_id": languageID})
		return nil
	}
	return err
}

// DragStart records the dragged section. Unknown ids are ignored.
func (b *Builder) DragStart(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.collection.IndexOf(id) >= 0 {
		b.dragging = id
	}
}

// DragEnd drops source onto target's position. A missing target, or a drop
// onto itself, only ends the drag.
func (b *Builder) DragEnd(source, target uuid.UUID) error {
	b.mu.Lock()
	b.dragging = uuid.Nil
	b.mu.Unlock()

	if target == uuid.Nil || target == source {
		return nil
	}
	return b.mutate("drag", func(c *sections.Collection) error {
		idx := c.IndexOf(target)
		if idx < 0 {
			return sections.ErrSectionNotFound
		}
		return c.Reorder(source, idx)
	})
}

// Undo restores the previous snapshot. It reports whether anything changed.
func (b *Builder) Undo() bool {
	return b.travel("undo", b.history.Undo)
}

// Redo re-applies the next snapshot.
func (b *Builder) Redo() bool {
	return b.travel("redo", b.history.Redo)
}

func (b *Builder) travel(op string, step func() ([]sections.Section, bool)) bool {
	b.mu.Lock()
	snapshot, ok := step()
	if !ok {
		b.mu.Unlock()
		return false
	}
	b.collection.Replace(snapshot)
	if b.selected != uuid.Nil && b.collection.IndexOf(b.selected) < 0 {
		b.selected = uuid.Nil
	}
	b.unsaved = true
	b.revision++
	if b.autosave != nil {
		b.autosave.Trigger()
	}
	current := b.collection.Sections()
	b.mu.Unlock()

	b.logger.Debug("builder."+op, "sections", len(current))
	b.emit(current)
	return true
}

func (b *Builder) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.CanUndo()
}

func (b *Builder) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.CanRedo()
}
