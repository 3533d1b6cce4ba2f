// Package ratelimit は認証エンドポイント向けの固定ウィンドウ・レート制限を提供します。
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter は Redis の INCR / EXPIRE NX で複数インスタンス間のカウンターを共有します。
// EXPIRE NX は Redis 7 以降が必要です。
type RedisCounter struct {
	rdb redis.Cmdable
}

// NewRedisCounter は rdb を使う RedisCounter を生成します。
func NewRedisCounter(rdb redis.Cmdable) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// IncrWithTTL は key を 1 増やし、TTL が未設定なら ttl を設定します。
// INCR と EXPIRE NX は MULTI/EXEC で同時に送るため、TTL のないキーは残りません。
func (r *RedisCounter) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		if ttl > 0 {
			pipe.ExpireNX(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return incr.Val(), nil
}
