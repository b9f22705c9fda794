package db

import (
	"context"
	"log/slog"
	"time"

	"backend-trafella/internal/config"

	"github.com/redis/go-redis/v9"
)

var pingRedisFn = func(ctx context.Context, client *redis.Client) error { return client.Ping(ctx).Err() }

// ConnectRedis returns nil when no address is configured or the server does
// not answer a ping; callers fall back to in-process caches in that case.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pingRedisFn(ctx, client); err != nil {
		slog.Warn("redis unreachable, using in-process cache", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}
