// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"

	"talent-match-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient holds the connection used for snapshot and embedding caches.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis connects to Redis and verifies the connection. Callers pass
// Client directly to the catalog store and the embedding client, which
// both tolerate a nil client when caching is disabled.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", cfg.Address, err)
	}

	return &RedisClient{Client: rdb}, nil
}

func (c *RedisClient) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
