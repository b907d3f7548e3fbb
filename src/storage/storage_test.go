package storage

import (
	"context"
	"path/filepath"
	"testing"

	"stock-watch/src/interfaces"
	"stock-watch/src/logger"
	"stock-watch/src/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store interfaces.IKeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "tickers")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "tickers", `["AAPL"]`))
	require.NoError(t, store.Set(ctx, "tickers", `["AAPL","MSFT"]`))

	value, found, err := store.Get(ctx, "tickers")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["AAPL","MSFT"]`, value)
}

func TestSQLiteStore(t *testing.T) {
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "sqlite", DBPath: filepath.Join(t.TempDir(), "watch.db")}}

	store, err := NewKeyValueStore(context.Background(), cfg, logger.NewLogger(cfg, "test"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.db")
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "sqlite", DBPath: path}}
	log := logger.NewLogger(cfg, "test")

	first, err := NewKeyValueStore(context.Background(), cfg, log)
	require.NoError(t, err)
	require.NoError(t, first.Set(context.Background(), "tickers", `["TSLA"]`))
	require.NoError(t, first.Close())

	second, err := NewKeyValueStore(context.Background(), cfg, log)
	require.NoError(t, err)
	defer second.Close()

	value, found, err := second.Get(context.Background(), "tickers")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["TSLA"]`, value)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "redis", RedisAddr: mr.Addr()}}

	store, err := NewKeyValueStore(context.Background(), cfg, logger.NewLogger(cfg, "test"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
	assert.True(t, mr.Exists(redisKeyPrefix+"tickers"))
}

func TestUnsupportedBackend(t *testing.T) {
	cfg := &models.MConfig{Storage: models.MStorageConfig{DBType: "bolt"}}
	_, err := NewKeyValueStore(context.Background(), cfg, logger.NewLogger(cfg, "test"))
	assert.Error(t, err)
}
