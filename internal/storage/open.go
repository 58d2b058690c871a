package storage

import (
	"context"
	"fmt"

	"hr-tracker/internal/common/config"
	"hr-tracker/internal/common/database"
	"hr-tracker/internal/common/logger"
)

// Open builds the store selected by session.storage. The returned close
// function releases any connection and is never nil.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Session.Storage {
	case config.StorageRedis:
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, noop, err
		}
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, noop, err
		}
		log.Info("session storage ready", map[string]interface{}{
			"backend": "redis",
			"address": cfg.Database.Redis.Address,
		})
		return NewRedisStore(rc.Client, cfg.Session.KeyPrefix), rc.Close, nil

	case config.StoragePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, noop, err
		}
		if err := pg.Ping(ctx); err != nil {
			_ = pg.Close()
			return nil, noop, fmt.Errorf("postgres ping failed: %w", err)
		}
		store := NewPostgresStore(pg.DB)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, noop, err
		}
		log.Info("session storage ready", map[string]interface{}{
			"backend":  "postgres",
			"host":     cfg.Database.Postgres.Host,
			"database": cfg.Database.Postgres.Database,
		})
		return store, pg.Close, nil

	case config.StorageFile, "":
		log.Debug("session storage ready", map[string]interface{}{
			"backend": "file",
			"path":    cfg.Session.FilePath,
		})
		return NewFileStore(cfg.Session.FilePath), noop, nil

	case config.StorageMemory:
		log.Debug("session storage ready", map[string]interface{}{"backend": "memory"})
		return NewMemoryStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown session storage %q", cfg.Session.Storage)
	}
}
