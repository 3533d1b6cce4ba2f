// Package redis は Redis クライアントの初期化を提供します。
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"store_rating/internal/platform/config"
)

const pingTimeout = 3 * time.Second

// NewRedisClient は設定から Redis クライアントを生成し、疎通を確認します。
// REDIS_HOST が未設定の場合は (nil, nil) を返します。
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	// 接続確認
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr(), err)
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
