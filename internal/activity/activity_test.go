package activity

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := dbpkg.Open(dbpkg.Options{
		Path:          filepath.Join(t.TempDir(), "activity.db"),
		BusyTimeoutMS: 5000,
		MaxOpenConns:  1,
		MaxIdleConns:  1,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.RunMigrations(context.Background(), sqlDB); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return sqlDB
}

func TestSQLiteLoggerRoundTrip(t *testing.T) {
	logger, err := NewSQLiteLogger(newTestDB(t))
	if err != nil {
		t.Fatalf("NewSQLiteLogger() error = %v", err)
	}
	ctx := context.Background()

	userID := int64(1)
	if err := logger.Log(ctx, Entry{Action: ActionLogin, Details: "User logged in", UserID: &userID}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if err := logger.Log(ctx, Entry{Action: ActionUpdateProfile, Details: "Profile updated"}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if err := logger.Log(ctx, Entry{Action: "  "}); err == nil {
		t.Fatal("blank action accepted")
	}

	entries, err := logger.Recent(ctx, RecentLimit)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Action != ActionUpdateProfile {
		t.Fatalf("newest entry action = %q", entries[0].Action)
	}
	if entries[1].UserID == nil || *entries[1].UserID != 1 {
		t.Fatalf("user id lost: %#v", entries[1])
	}
}

func TestAsyncLoggerWritesInBackground(t *testing.T) {
	sink, err := NewSQLiteLogger(newTestDB(t))
	if err != nil {
		t.Fatalf("NewSQLiteLogger() error = %v", err)
	}
	async := NewAsyncLogger(sink, 8, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := async.Log(ctx, Entry{Action: ActionLogin, Details: "User logged in"}); err != nil {
			t.Fatalf("Log() error = %v", err)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := async.WaitIdle(waitCtx); err != nil {
		t.Fatalf("WaitIdle() error = %v", err)
	}

	entries, err := async.Recent(ctx, RecentLimit)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(entries))
	}

	if err := async.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := async.Log(ctx, Entry{Action: ActionLogin}); err == nil {
		t.Fatal("Log() after Close() succeeded")
	}
	if err := async.Close(ctx); err != nil {
		t.Fatalf("repeat Close() error = %v", err)
	}
}
