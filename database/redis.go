package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient initializes a Redis client. The cache is optional: on a
// bad URL or unreachable server it logs and returns nil, and callers treat
// a nil client as cache-disabled.
func NewRedisClient(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		zap.L().Warn("Invalid Redis URL, cache disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		zap.L().Warn("Failed to connect to Redis, cache disabled", zap.Error(err))
		return nil
	}

	zap.L().Info("Connected to Redis")
	return client
}
