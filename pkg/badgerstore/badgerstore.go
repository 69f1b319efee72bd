// Package badgerstore keeps draft snapshots in an embedded Badger database
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/spcn/suite-draft/pkg/db"
)

const snapshotPrefix = "snapshot:"

// Store implements db.SnapshotStore on Badger
type Store struct {
	db *badger.DB
}

var _ db.SnapshotStore = (*Store)(nil)

// Open opens (or creates) a Badger database at path
func Open(path string) (*Store, error) {
	return open(badger.DefaultOptions(path))
}

// OpenInMemory opens a Badger database that lives only as long as the process
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	bdb, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &Store{db: bdb}, nil
}

func snapshotKey(key string) []byte {
	return []byte(snapshotPrefix + key)
}

// SaveSnapshot sets the key. savedAt is carried inside the payload.
func (s *Store) SaveSnapshot(ctx context.Context, key string, payload []byte, savedAt time.Time) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(key), payload)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot gets a copy of the stored value
func (s *Store) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(key))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, db.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return payload, nil
}

// DeleteSnapshot deletes the key
func (s *Store) DeleteSnapshot(ctx context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(snapshotKey(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
