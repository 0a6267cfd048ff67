package presets

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/mitchellh/copystructure"
	"github.com/uptrace/bun"
)

// Repository persists style presets.
type Repository interface {
	Create(ctx context.Context, preset *StylePreset) (*StylePreset, error)
	Update(ctx context.Context, preset *StylePreset) (*StylePreset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StylePreset, error)
	GetBySlug(ctx context.Context, slug string) (*StylePreset, error)
	List(ctx context.Context, category Category) ([]*StylePreset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a preset cannot be located.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("style_preset %q not found", e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPresetNotFound
}

// NewMemoryRepository constructs an in-memory preset repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: map[uuid.UUID]*StylePreset{}}
}

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*StylePreset
}

func (m *memoryRepository) Create(_ context.Context, preset *StylePreset) (*StylePreset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[preset.ID]; ok {
		return nil, ErrPresetExists
	}
	m.byID[preset.ID] = clonePreset(preset)
	return clonePreset(preset), nil
}

func (m *memoryRepository) Update(_ context.Context, preset *StylePreset) (*StylePreset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[preset.ID]; !ok {
		return nil, &NotFoundError{Key: preset.ID.String()}
	}
	m.byID[preset.ID] = clonePreset(preset)
	return clonePreset(preset), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*StylePreset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return clonePreset(record), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, slug string) (*StylePreset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.Slug == slug {
			return clonePreset(record), nil
		}
	}
	return nil, &NotFoundError{Key: slug}
}

func (m *memoryRepository) List(_ context.Context, category Category) ([]*StylePreset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*StylePreset
	for _, record := range m.byID {
		if category != "" && record.Category != category {
			continue
		}
		out = append(out, clonePreset(record))
	}
	slices.SortFunc(out, comparePresets)
	return out, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

// comparePresets orders by usage (most used first), then slug.
func comparePresets(a, b *StylePreset) int {
	if a.UsageCount != b.UsageCount {
		return b.UsageCount - a.UsageCount
	}
	return strings.Compare(a.Slug, b.Slug)
}

func clonePreset(preset *StylePreset) *StylePreset {
	if preset == nil {
		return nil
	}
	cloned := copystructure.Must(copystructure.Copy(*preset)).(StylePreset)
	return &cloned
}

// NewPresetRepository creates the go-repository-bun repository for presets.
func NewPresetRepository(db *bun.DB) repository.Repository[*StylePreset] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*StylePreset]{
		NewRecord:          func() *StylePreset { return &StylePreset{} },
		GetID:              func(p *StylePreset) uuid.UUID { return p.ID },
		SetID:              func(p *StylePreset, id uuid.UUID) { p.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(p *StylePreset) string { return p.Slug },
	})
}

// BunRepository implements Repository with optional caching.
type BunRepository struct {
	repo repository.Repository[*StylePreset]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewPresetRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) Create(ctx context.Context, preset *StylePreset) (*StylePreset, error) {
	return r.repo.Create(ctx, preset)
}

func (r *BunRepository) Update(ctx context.Context, preset *StylePreset) (*StylePreset, error) {
	updated, err := r.repo.Update(ctx, preset,
		repository.UpdateByID(preset.ID.String()),
		repository.UpdateColumns(
			"name",
			"category",
			"description",
			"layout",
			"style",
			"usage_count",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, preset.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*StylePreset, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*StylePreset, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Key: slug}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context, category Category) ([]*StylePreset, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if category != "" {
			q = q.Where("?TableAlias.category = ?", string(category))
		}
		return q.Order("usage_count DESC", "slug ASC")
	}))
	return records, err
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &StylePreset{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("style_preset repository error: %w", err)
}
