package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/timerestrict/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage"
	"github.com/louisbranch/timerestrict/internal/services/timerestrict/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed enforcement audit persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens an audit SQLite store and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordAction persists one enforcement action.
func (s *Store) RecordAction(ctx context.Context, record storage.ActionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	record.Action = strings.TrimSpace(record.Action)
	record.Player = strings.TrimSpace(record.Player)
	record.SweepID = strings.TrimSpace(record.SweepID)
	if record.Action == "" {
		return fmt.Errorf("action is required")
	}
	if record.Player == "" {
		return fmt.Errorf("player is required")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO enforcement_actions (
	action,
	player,
	day,
	time_window,
	sweep_id,
	created_at
) VALUES (?, ?, ?, ?, ?, ?)
`,
		record.Action,
		record.Player,
		record.Day,
		record.Window,
		record.SweepID,
		record.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

// ListActions lists newest-first enforcement actions.
func (s *Store) ListActions(ctx context.Context, limit int) ([]storage.ActionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	action,
	player,
	day,
	time_window,
	sweep_id,
	created_at
FROM enforcement_actions
ORDER BY created_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	records := make([]storage.ActionRecord, 0, limit)
	for rows.Next() {
		var record storage.ActionRecord
		var createdAt int64
		if err := rows.Scan(
			&record.ID,
			&record.Action,
			&record.Player,
			&record.Day,
			&record.Window,
			&record.SweepID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		record.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return records, nil
}

var _ storage.AuditStore = (*Store)(nil)
