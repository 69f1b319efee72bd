package db

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/draft"
)

// Gateway persists draft snapshots to a SnapshotStore on a best-effort basis.
// Store failures are logged and swallowed: the in-memory draft stays authoritative.
type Gateway struct {
	store  SnapshotStore
	key    string
	logger *zap.Logger
}

var _ draft.Persister = (*Gateway)(nil)

// NewGateway creates a gateway writing under key (DefaultSnapshotKey when empty)
func NewGateway(store SnapshotStore, key string, logger *zap.Logger) *Gateway {
	if key == "" {
		key = DefaultSnapshotKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{store: store, key: key, logger: logger}
}

// Save encodes and stores the snapshot
func (g *Gateway) Save(ctx context.Context, snapshot draft.Snapshot) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		g.logger.Error("Failed to encode draft snapshot", zap.Error(err))
		return
	}

	if err := g.store.SaveSnapshot(ctx, g.key, payload, snapshot.SavedAt); err != nil {
		g.logger.Error("Failed to save draft snapshot", zap.String("key", g.key), zap.Error(err))
		return
	}

	g.logger.Debug("Saved draft snapshot", zap.String("key", g.key), zap.Int("bytes", len(payload)))
}

// Load returns the stored snapshot, or nil when there is none or it cannot be read
func (g *Gateway) Load(ctx context.Context) *draft.Snapshot {
	payload, err := g.store.LoadSnapshot(ctx, g.key)
	if errors.Is(err, ErrSnapshotNotFound) {
		return nil
	}
	if err != nil {
		g.logger.Error("Failed to load draft snapshot", zap.String("key", g.key), zap.Error(err))
		return nil
	}

	snapshot, err := DecodeSnapshot(payload)
	if err != nil {
		g.logger.Error("Discarding unreadable draft snapshot", zap.String("key", g.key), zap.Error(err))
		return nil
	}

	return snapshot
}

// Clear removes the stored snapshot
func (g *Gateway) Clear(ctx context.Context) {
	if err := g.store.DeleteSnapshot(ctx, g.key); err != nil {
		g.logger.Error("Failed to clear draft snapshot", zap.String("key", g.key), zap.Error(err))
		return
	}
	g.logger.Debug("Cleared draft snapshot", zap.String("key", g.key))
}

// DecodeSnapshot parses a JSON snapshot. A snapshot without a state is an error.
func DecodeSnapshot(payload []byte) (*draft.Snapshot, error) {
	var snapshot draft.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}
	if snapshot.State == nil {
		return nil, errors.New("snapshot has no draft state")
	}
	return &snapshot, nil
}
