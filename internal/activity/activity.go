// Package activity records the admin audit trail: one append-only entry per
// mutating action. Entries are never updated or deleted by the application.
package activity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

const (
	ActionLogin          = "LOGIN"
	ActionUpdateProfile  = "UPDATE_PROFILE"
	ActionUpdateSettings = "UPDATE_SETTINGS"
	ActionCreateDelivery = "CREATE_DELIVERY"
	ActionUploadCert     = "UPLOAD_CERT"
)

const RecentLimit = 50

type Entry struct {
	Action  string
	Details string
	UserID  *int64
}

type Logger interface {
	Log(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]dbpkg.ActivityEntry, error)
}

type SQLiteLogger struct {
	db *sql.DB
}

func NewSQLiteLogger(sqlDB *sql.DB) (*SQLiteLogger, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &SQLiteLogger{db: sqlDB}, nil
}

func (l *SQLiteLogger) Log(ctx context.Context, entry Entry) error {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return fmt.Errorf("action is required")
	}
	q := dbpkg.NewQueries(l.db)
	if _, err := q.InsertActivity(ctx, action, entry.Details, entry.UserID); err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

func (l *SQLiteLogger) Recent(ctx context.Context, limit int) ([]dbpkg.ActivityEntry, error) {
	if limit <= 0 {
		limit = RecentLimit
	}
	q := dbpkg.NewQueries(l.db)
	return q.ListRecentActivity(ctx, limit)
}
