package testsupport

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/storage"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
)

// NewSQLiteMemoryDB opens a named shared-cache in-memory database. Distinct
// names keep parallel tests apart.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewBunDB returns a migrated bun handle over a fresh in-memory database and
// closes it when the test ends. models are created next to the section table.
func NewBunDB(t testing.TB, name string, models ...any) *bun.DB {
	t.Helper()

	sqlDB, err := NewSQLiteMemoryDB(name)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db, err := storage.NewDB(sqlDB, "sqlite")
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := storage.CreateTables(ctx, db, models...); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return db
}
