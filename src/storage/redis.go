package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-watch/src/logger"
	"stock-watch/src/models"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "stockwatch:"

// -----------------------------------------------------------------------------

type RedisStore struct {
	Config *models.MConfig
	Client *redis.Client
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewRedisStore(cfg *models.MConfig, log *logger.Logger) (*RedisStore, error) {
	if cfg.Storage.RedisAddr == "" {
		return nil, fmt.Errorf("redis requires redis_addr")
	}
	return &RedisStore{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (r *RedisStore) Initialize() error {
	r.Client = redis.NewClient(&redis.Options{
		Addr:        r.Config.Storage.RedisAddr,
		Password:    r.Config.Storage.RedisPassword,
		DB:          r.Config.Storage.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Client.Ping(ctx).Err(); err != nil {
		r.Client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	r.Logger.Info("Redis store initialized (%s)", r.Config.Storage.RedisAddr)
	return nil
}

// -----------------------------------------------------------------------------

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.Client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// -----------------------------------------------------------------------------

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.Client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

// -----------------------------------------------------------------------------

func (r *RedisStore) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
