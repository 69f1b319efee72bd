package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spcn/suite-draft/pkg/db"
)

// SaveSnapshot upserts the snapshot row for key
func (d *DB) SaveSnapshot(ctx context.Context, key string, payload []byte, savedAt time.Time) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO draft_snapshot (key, payload, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at, updated_at = NOW()
	`, key, string(payload), savedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored payload for key
func (d *DB) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := d.pool.QueryRow(ctx, `
		SELECT payload::text FROM draft_snapshot WHERE key = $1
	`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return []byte(payload), nil
}

// DeleteSnapshot removes the snapshot row for key
func (d *DB) DeleteSnapshot(ctx context.Context, key string) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM draft_snapshot WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
