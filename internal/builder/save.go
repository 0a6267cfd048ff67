package builder

import (
	"context"
	"fmt"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Save persists the current list through the store. A failed save leaves
// the page flagged unsaved so it can be retried; changes made while the save
// was in flight keep the flag set as well.
func (b *Builder) Save(ctx context.Context) error {
	return b.save(ctx, "manual")
}

func (b *Builder) autosaveNow() {
	ctx, cancel := context.WithTimeout(context.Background(), b.saveTimeout)
	defer cancel()
	_ = b.save(ctx, "autosave")
}

func (b *Builder) save(ctx context.Context, trigger string) error {
	if b.store == nil {
		return ErrStoreRequired
	}

	b.mu.Lock()
	list := b.collection.Sections()
	revision := b.revision
	pageID := b.collection.PageID()
	b.mu.Unlock()

	if err := b.store.Save(ctx, pageID, list); err != nil {
		b.logger.Error("builder.save.failed", "trigger", trigger, "error", err)
		b.notify(ctx, interfaces.NotificationError, "save_failed", "Saving the page failed. Your changes are kept.",
			map[string]any{"trigger": trigger, "error": err.Error()})
		return fmt.Errorf("builder: save: %w", err)
	}

	b.mu.Lock()
	b.lastSavedAt = b.now()
	current := b.revision == revision
	if current {
		b.unsaved = false
		if b.autosave != nil && trigger == "manual" {
			b.autosave.Stop()
		}
	}
	b.mu.Unlock()

	b.logger.Info("builder.saved", "trigger", trigger, "sections", len(list), "up_to_date", current)
	b.notify(ctx, interfaces.NotificationSuccess, "saved", "Page saved.",
		map[string]any{"trigger": trigger, "sections": len(list)})
	return nil
}
