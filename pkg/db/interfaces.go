package db

import (
	"context"
	"errors"
	"time"
)

// DefaultSnapshotKey identifies the draft snapshot in every backend
const DefaultSnapshotKey = "spcn-draft-state"

// ErrSnapshotNotFound is returned by LoadSnapshot when nothing is stored under the key
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore defines the storage operations behind the draft gateway.
// The file, Badger, SQLite, Postgres and Redis stores all implement this interface.
type SnapshotStore interface {
	// SaveSnapshot stores payload under key, replacing any previous value
	SaveSnapshot(ctx context.Context, key string, payload []byte, savedAt time.Time) error

	// LoadSnapshot returns the payload stored under key or ErrSnapshotNotFound
	LoadSnapshot(ctx context.Context, key string) ([]byte, error)

	// DeleteSnapshot removes key. Deleting a missing key is not an error.
	DeleteSnapshot(ctx context.Context, key string) error

	Close() error
}
