package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// sectionModel stores one section per row. The full section document lives
// in payload; the scalar columns exist for querying.
type sectionModel struct {
	bun.BaseModel `bun:"table:page_sections,alias:ps"`

	ID        uuid.UUID        `bun:",pk,type:uuid"`
	PageID    uuid.UUID        `bun:"page_id,notnull,type:uuid"`
	Type      string           `bun:"section_type,notnull"`
	Position  int              `bun:"position,notnull"`
	IsActive  bool             `bun:"is_active,notnull"`
	Payload   sections.Section `bun:"payload,type:jsonb"`
	CreatedAt time.Time        `bun:"created_at,nullzero"`
	UpdatedAt time.Time        `bun:"updated_at,nullzero"`
}

// NewDB wraps an opened *sql.DB with the bun dialect named by dialect
// ("sqlite" or "postgres"). The caller registers the driver.
func NewDB(sqlDB *sql.DB, dialect string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "sqlite", "sqlite3", "":
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "postgresql", "pg":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrDialectUnknown, dialect)
}

// CreateTables creates the section table and any extra models (brandkits,
// presets) when they do not exist yet.
func CreateTables(ctx context.Context, db *bun.DB, models ...any) error {
	if db == nil {
		return ErrDatabaseRequired
	}
	for _, model := range append([]any{(*sectionModel)(nil)}, models...) {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table: %w", err)
		}
	}
	_, err := db.NewCreateIndex().
		Model((*sectionModel)(nil)).
		Index("idx_page_sections_page").
		IfNotExists().
		Column("page_id", "position").
		Exec(ctx)
	return err
}

type BunStoreOption func(*BunStore)

func WithLogger(logger interfaces.Logger) BunStoreOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// BunStore persists sections with bun. Save replaces the page's rows in a
// single transaction, so readers never see a half-written page.
type BunStore struct {
	db     *bun.DB
	logger interfaces.Logger
}

func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	s := &BunStore{db: db, logger: logging.NoOp()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BunStore) Save(ctx context.Context, pageID uuid.UUID, list []sections.Section) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	if pageID == uuid.Nil {
		return ErrPageIDRequired
	}

	models := make([]sectionModel, len(list))
	for i, section := range list {
		section.PageID = pageID
		section.Order = i
		models[i] = sectionModel{
			ID:        section.ID,
			PageID:    pageID,
			Type:      string(section.Type),
			Position:  i,
			IsActive:  section.IsActive,
			Payload:   section,
			CreatedAt: section.CreatedAt,
			UpdatedAt: section.UpdatedAt,
		}
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*sectionModel)(nil)).Where("page_id = ?", pageID).Exec(ctx); err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&models).Exec(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("storage.save.failed", "page_id", pageID.String(), "error", err)
		return fmt.Errorf("storage: save page %s: %w", pageID, err)
	}
	s.logger.Debug("storage.saved", "page_id", pageID.String(), "sections", len(models))
	return nil
}

func (s *BunStore) Load(ctx context.Context, pageID uuid.UUID) ([]sections.Section, error) {
	if s.db == nil {
		return nil, ErrDatabaseRequired
	}
	if pageID == uuid.Nil {
		return nil, ErrPageIDRequired
	}

	var models []sectionModel
	if err := s.db.NewSelect().
		Model(&models).
		Where("page_id = ?", pageID).
		Order("position ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("storage: load page %s: %w", pageID, err)
	}

	out := make([]sections.Section, len(models))
	for i, model := range models {
		section := model.Payload
		section.ID = model.ID
		section.PageID = model.PageID
		section.Order = model.Position
		out[i] = section
	}
	return out, nil
}
