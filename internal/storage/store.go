package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/google/uuid"
)

var (
	ErrPageIDRequired   = errors.New("storage: page id required")
	ErrDatabaseRequired = errors.New("storage: bun store requires a database")
	ErrDialectUnknown   = errors.New("storage: unknown dialect")
)

// Store persists the section list of a page. Save replaces the whole list and
// stores list position as the order; Load returns the list in that order.
type Store interface {
	Save(ctx context.Context, pageID uuid.UUID, list []sections.Section) error
	Load(ctx context.Context, pageID uuid.UUID) ([]sections.Section, error)
}

// MemoryStore keeps page snapshots in process.
type MemoryStore struct {
	mu    sync.RWMutex
	pages map[uuid.UUID][]sections.Section
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pages: map[uuid.UUID][]sections.Section{}}
}

func (m *MemoryStore) Save(_ context.Context, pageID uuid.UUID, list []sections.Section) error {
	if pageID == uuid.Nil {
		return ErrPageIDRequired
	}
	snapshot := make([]sections.Section, len(list))
	for i, section := range list {
		snapshot[i] = sections.Clone(section)
		snapshot[i].PageID = pageID
		snapshot[i].Order = i
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[pageID] = snapshot
	return nil
}

// Load returns an empty list for pages that were never saved.
func (m *MemoryStore) Load(_ context.Context, pageID uuid.UUID) ([]sections.Section, error) {
	if pageID == uuid.Nil {
		return nil, ErrPageIDRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	list := sections.CloneAll(m.pages[pageID])
	if list == nil {
		list = []sections.Section{}
	}
	return list, nil
}
