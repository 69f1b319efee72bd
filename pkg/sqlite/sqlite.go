// Package sqlite keeps draft snapshots in a local SQLite file
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spcn/suite-draft/pkg/db"
)

const schema = `
CREATE TABLE IF NOT EXISTS draft_snapshot (
	key TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	saved_at INTEGER NOT NULL
)`

// Store implements db.SnapshotStore on SQLite
type Store struct {
	sqlDB *sql.DB
}

var _ db.SnapshotStore = (*Store)(nil)

// Open opens the database at path and creates the snapshot table
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// SaveSnapshot upserts the row for key
func (s *Store) SaveSnapshot(ctx context.Context, key string, payload []byte, savedAt time.Time) error {
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO draft_snapshot (key, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, key, payload, savedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the payload for key
func (s *Store) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM draft_snapshot WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return payload, nil
}

// SavedAt returns when key was last written
func (s *Store) SavedAt(ctx context.Context, key string) (time.Time, error) {
	var millis int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT saved_at FROM draft_snapshot WHERE key = ?`, key).Scan(&millis)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, db.ErrSnapshotNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot time: %w", err)
	}
	return time.UnixMilli(millis).UTC(), nil
}

// DeleteSnapshot deletes the row for key
func (s *Store) DeleteSnapshot(ctx context.Context, key string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM draft_snapshot WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the database handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
