package storage

import (
	"context"
	"fmt"
	"time"

	"stock-watch/src/helpers"
	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/models"
)

// Compile-time checks
var (
	_ interfaces.IKeyValueStore = (*AsyncSQLiteDB)(nil)
	_ interfaces.IKeyValueStore = (*PostgresDB)(nil)
	_ interfaces.IKeyValueStore = (*RedisStore)(nil)
)

const initAttempts = 3

// -----------------------------------------------------------------------------

// NewKeyValueStore builds the backend named by storage.db_type and initializes it,
// retrying with backoff while the backend comes up.
func NewKeyValueStore(ctx context.Context, cfg *models.MConfig, log *logger.Logger) (interfaces.IKeyValueStore, error) {
	var (
		store interfaces.IKeyValueStore
		err   error
	)

	switch cfg.Storage.DBType {
	case "postgres":
		store, err = NewPostgresDB(cfg, log.Named("PostgresDB"))
	case "redis":
		store, err = NewRedisStore(cfg, log.Named("RedisStore"))
	case "sqlite", "":
		store, err = NewAsyncSQLiteDB(cfg, log.Named("SQLiteDB"))
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Storage.DBType)
	}
	if err != nil {
		return nil, helpers.NewDatabaseError("create "+cfg.Storage.DBType+" store", err)
	}

	_, err = helpers.RetryWithBackoff(ctx, log, "initialize "+cfg.Storage.DBType, initAttempts, 500*time.Millisecond, func() (struct{}, error) {
		return struct{}{}, store.Initialize()
	})
	if err != nil {
		return nil, helpers.NewDatabaseError("initialize "+cfg.Storage.DBType+" store", err)
	}

	return store, nil
}
