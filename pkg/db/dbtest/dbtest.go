// Package dbtest holds the behaviour every SnapshotStore must share
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spcn/suite-draft/pkg/db"
)

// RunSnapshotStoreTests exercises save, overwrite, load, delete and not-found
// behaviour against a fresh store
func RunSnapshotStoreTests(t *testing.T, store db.SnapshotStore) {
	t.Helper()
	ctx := context.Background()
	savedAt := time.Date(2025, 9, 6, 19, 30, 0, 0, time.UTC)

	t.Run("load missing", func(t *testing.T) {
		_, err := store.LoadSnapshot(ctx, "missing")
		assert.ErrorIs(t, err, db.ErrSnapshotNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, "draft", []byte(`{"v":1}`), savedAt))

		payload, err := store.LoadSnapshot(ctx, "draft")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":1}`, string(payload))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, "draft", []byte(`{"v":2}`), savedAt.Add(time.Minute)))

		payload, err := store.LoadSnapshot(ctx, "draft")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(payload))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, "other", []byte(`{"v":3}`), savedAt))

		payload, err := store.LoadSnapshot(ctx, "draft")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(payload))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteSnapshot(ctx, "draft"))

		_, err := store.LoadSnapshot(ctx, "draft")
		assert.ErrorIs(t, err, db.ErrSnapshotNotFound)

		payload, err := store.LoadSnapshot(ctx, "other")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":3}`, string(payload))
	})

	t.Run("delete missing", func(t *testing.T) {
		assert.NoError(t, store.DeleteSnapshot(ctx, "never-saved"))
	})
}
