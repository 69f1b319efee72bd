package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spcn/suite-draft/internal/config"
	"github.com/spcn/suite-draft/pkg/core/model"
	"github.com/spcn/suite-draft/pkg/db"
)

func TestOpenStore(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.StoreConfig
	}{
		{"file", config.StoreConfig{Backend: config.BackendFile, Path: filepath.Join(t.TempDir(), "snapshots")}},
		{"badger", config.StoreConfig{Backend: config.BackendBadger, Path: filepath.Join(t.TempDir(), "badger")}},
		{"sqlite", config.StoreConfig{Backend: config.BackendSQLite, Path: filepath.Join(t.TempDir(), "draft.db")}},
		{"redis", config.StoreConfig{Backend: config.BackendRedis, RedisAddr: mr.Addr()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := openStore(ctx, tt.cfg)
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.SaveSnapshot(ctx, "spcn-draft-state", []byte(`{"v":1}`), time.Now()))
			payload, err := store.LoadSnapshot(ctx, "spcn-draft-state")
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":1}`, string(payload))

			require.NoError(t, store.DeleteSnapshot(ctx, "spcn-draft-state"))
			_, err = store.LoadSnapshot(ctx, "spcn-draft-state")
			assert.ErrorIs(t, err, db.ErrSnapshotNotFound)
		})
	}
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, err := openStore(context.Background(), config.StoreConfig{Backend: "etcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store backend "etcd"`)
}

func sessionRoster() []model.Dancer {
	return []model.Dancer{
		{ID: "aaaa1111-0000", FullName: "Ana Cruz", RoleScore: 7, Prefs: model.Preferences{First: model.SuiteMariaClara}},
		{ID: "bbbb2222-0000", FullName: "Ben Reyes", RoleScore: 3, Prefs: model.Preferences{First: model.SuiteRural}},
	}
}

func TestOpenSession_UnreachableStoreRunsInMemory(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	ctx := context.Background()
	cfg := config.StoreConfig{Backend: config.BackendRedis, RedisAddr: addr, Key: "spcn-draft-state"}

	session, store := openSession(ctx, cfg, zap.New(core))

	require.NotNil(t, session)
	assert.Nil(t, store)
	assert.Nil(t, session.State())

	state := session.Initialize(ctx, sessionRoster())
	require.NotNil(t, state)
	assert.Len(t, state.UnassignedIDs, 2)

	suite, ok := session.PickForActiveSuite(ctx, []string{"aaaa1111-0000"})
	require.True(t, ok)
	assert.Equal(t, []string{"aaaa1111-0000"}, session.State().Suites[suite].IDs)

	warnings := logs.FilterMessage("Snapshot store unavailable, draft changes will not be saved").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, config.BackendRedis, warnings[0].ContextMap()["backend"])
}

func TestOpenSession_ResumesSavedDraft(t *testing.T) {
	ctx := context.Background()
	cfg := config.StoreConfig{
		Backend: config.BackendFile,
		Path:    filepath.Join(t.TempDir(), "snapshots"),
		Key:     "spcn-draft-state",
	}

	first, store := openSession(ctx, cfg, zap.NewNop())
	require.NotNil(t, store)
	first.Initialize(ctx, sessionRoster())
	require.NoError(t, store.Close())

	second, store := openSession(ctx, cfg, zap.NewNop())
	require.NotNil(t, store)
	defer store.Close()

	require.NotNil(t, second.State())
	assert.Len(t, second.State().Dancers, 2)
}
