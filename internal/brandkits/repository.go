package brandkits

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

// Repository persists brandkits.
type Repository interface {
	Save(ctx context.Context, kit *Brandkit) (*Brandkit, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Brandkit, error)
	GetBySlug(ctx context.Context, slug string) (*Brandkit, error)
	List(ctx context.Context) ([]*Brandkit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a brandkit cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NewMemoryRepository constructs an in-memory brandkit repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: map[uuid.UUID]*Brandkit{}}
}

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Brandkit
}

func (m *memoryRepository) Save(_ context.Context, kit *Brandkit) (*Brandkit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneBrandkit(kit)
	m.byID[cloned.ID] = cloned
	return cloneBrandkit(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Brandkit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "brandkit", Key: id.String()}
	}
	return cloneBrandkit(record), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, slug string) (*Brandkit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if strings.EqualFold(record.Slug, slug) {
			return cloneBrandkit(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "brandkit", Key: slug}
}

func (m *memoryRepository) List(_ context.Context) ([]*Brandkit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Brandkit, 0, len(m.byID))
	for _, record := range m.byID {
		out = append(out, cloneBrandkit(record))
	}
	slices.SortFunc(out, func(a, b *Brandkit) int { return strings.Compare(a.Slug, b.Slug) })
	return out, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "brandkit", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func cloneBrandkit(kit *Brandkit) *Brandkit {
	if kit == nil {
		return nil
	}
	cloned := copystructure.Must(copystructure.Copy(*kit)).(Brandkit)
	return &cloned
}

// NewBrandkitRepository creates the go-repository-bun repository for brandkits.
func NewBrandkitRepository(db *bun.DB) repository.Repository[*Brandkit] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Brandkit]{
		NewRecord:          func() *Brandkit { return &Brandkit{} },
		GetID:              func(b *Brandkit) uuid.UUID { return b.ID },
		SetID:              func(b *Brandkit, id uuid.UUID) { b.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(b *Brandkit) string { return b.Slug },
	})
}

// BunRepository implements Repository with optional caching.
type BunRepository struct {
	repo repository.Repository[*Brandkit]
}

// NewBunRepository creates a brandkit repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a brandkit repository with caching services.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewBrandkitRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) Save(ctx context.Context, kit *Brandkit) (*Brandkit, error) {
	if _, err := r.repo.GetByID(ctx, kit.ID.String()); err != nil {
		if !errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, mapRepositoryError(err, kit.ID.String())
		}
		return r.repo.Create(ctx, kit)
	}
	return r.repo.Update(ctx, kit,
		repository.UpdateByID(kit.ID.String()),
		repository.UpdateColumns(
			"name",
			"slug",
			"description",
			"colors",
			"typography",
			"spacing",
			"theme",
			"variant",
			"updated_at",
		),
	)
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Brandkit, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Brandkit, error) {
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
		return nil, &NotFoundError{Resource: "brandkit", Key: slug}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Brandkit, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("slug ASC")
	}))
	return records, err
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &Brandkit{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "brandkit", Key: key}
	}
	return fmt.Errorf("brandkit repository error: %w", err)
}
