package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/akkharat/folioserv/internal/db/migrations"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := Open(Options{
		Path:          filepath.Join(t.TempDir(), "test.db"),
		BusyTimeoutMS: 5000,
		MaxOpenConns:  1,
		MaxIdleConns:  1,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := RunMigrations(context.Background(), sqlDB); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return sqlDB
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	sqlDB := newTestDB(t)

	enabled, err := ForeignKeysEnabled(context.Background(), sqlDB)
	if err != nil {
		t.Fatalf("ForeignKeysEnabled() error = %v", err)
	}
	if !enabled {
		t.Fatal("foreign keys are not enabled")
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	sqlDB := newTestDB(t)

	if err := RunMigrations(context.Background(), sqlDB); err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != len(migrations.All()) {
		t.Fatalf("schema_migrations rows = %d, want %d", count, len(migrations.All()))
	}
}
