package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spcn/suite-draft/internal/config"
	"github.com/spcn/suite-draft/pkg/badgerstore"
	"github.com/spcn/suite-draft/pkg/core/draft"
	"github.com/spcn/suite-draft/pkg/db"
	"github.com/spcn/suite-draft/pkg/postgres"
	"github.com/spcn/suite-draft/pkg/redisstore"
	"github.com/spcn/suite-draft/pkg/sqlite"
)

// openStore opens the snapshot store selected by the configured backend
func openStore(ctx context.Context, cfg config.StoreConfig) (db.SnapshotStore, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return db.NewFileStore(cfg.Path)
	case config.BackendBadger:
		return badgerstore.Open(cfg.Path)
	case config.BackendSQLite:
		return sqlite.Open(ctx, cfg.Path)
	case config.BackendPostgres:
		return postgres.NewDB(ctx, cfg.DSN)
	case config.BackendRedis:
		return redisstore.New(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TTL,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// openSession resumes the saved draft from the configured store. When the store
// cannot be opened the session runs in memory and the returned store is nil.
func openSession(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*draft.Session, db.SnapshotStore) {
	logger.Info("Opening snapshot store", zap.String("backend", cfg.Backend))
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Warn("Snapshot store unavailable, draft changes will not be saved",
			zap.String("backend", cfg.Backend),
			zap.Error(err))
		return draft.NewSession(draft.NopPersister{}, logger), nil
	}
	logger.Debug("Snapshot store opened successfully")

	session := draft.NewSession(db.NewGateway(store, cfg.Key, logger), logger)
	session.Resume(ctx)
	return session, store
}
