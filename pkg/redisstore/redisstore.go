// Package redisstore keeps draft snapshots in Redis
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/spcn/suite-draft/pkg/db"
)

const keyPrefix = "suite-draft:"

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int

	// TTL expires snapshots that are not touched again; zero keeps them forever
	TTL time.Duration
}

// Store implements db.SnapshotStore on Redis
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

var _ db.SnapshotStore = (*Store)(nil)

// New connects and pings the server
func New(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	return &Store{client: client, ttl: opts.TTL}, nil
}

// SaveSnapshot sets the key, refreshing the TTL
func (s *Store) SaveSnapshot(ctx context.Context, key string, payload []byte, savedAt time.Time) error {
	if err := s.client.Set(ctx, keyPrefix+key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot gets the key
func (s *Store) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, db.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return payload, nil
}

// DeleteSnapshot deletes the key
func (s *Store) DeleteSnapshot(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the client
func (s *Store) Close() error {
	return s.client.Close()
}
