// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"flowmaster/config"

	"github.com/go-redis/redis/v8"
)

// NewCacheClient connects to the generic cache database (tenant config, agent sessions).
func NewCacheClient(ctx context.Context) (*redis.Client, error) {
	return connectRedis(ctx, config.AppConfig.RedisCacheDB, "cache")
}

// NewAuthCacheClient connects to the database holding issued service tokens.
func NewAuthCacheClient(ctx context.Context) (*redis.Client, error) {
	return connectRedis(ctx, config.AppConfig.RedisAuthDB, "auth cache")
}

func connectRedis(ctx context.Context, db int, name string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (%s): %w", name, err)
	}
	return client, nil
}
