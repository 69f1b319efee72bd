package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/db"
)

// BackupSnapshot writes the draft as an indented JSON snapshot, the same shape the
// snapshot stores hold
func BackupSnapshot(state *draft.State, w io.Writer, savedAt time.Time) error {
	if state == nil {
		return ErrNoDraft
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(draft.Snapshot{State: state, SavedAt: savedAt.UTC()}); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// RestoreSnapshot replaces the session's draft with a snapshot read from r.
// Older snapshots are migrated to the current suite set, and the result is saved.
func RestoreSnapshot(ctx context.Context, session *draft.Session, r io.Reader, logger *zap.Logger) (*draft.State, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snapshot, err := db.DecodeSnapshot(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	state := session.Dispatch(ctx, draft.Hydrate{State: snapshot.State})

	logger.Info("Draft restored",
		zap.Time("saved_at", snapshot.SavedAt),
		zap.Int("dancers", len(state.Dancers)))

	return state, nil
}
