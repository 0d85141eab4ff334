package config

// Redis backs the response cache and the login rate limiter. Both are
// optional: when no address is configured, or the server cannot be reached
// at startup, the constructor returns nil and the middleware degrades to a
// pass-through.

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient dials Redis using the loaded configuration. A nil return
// means caching and rate limiting are disabled for this process.
func NewRedisClient(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
