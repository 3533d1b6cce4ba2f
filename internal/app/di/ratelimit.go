// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"store_rating/internal/platform/ratelimit"
	"store_rating/internal/shared/ratelimiter"
)

// NewRateLimitCounter creates the counter behind the login/signup rate limits.
// If Redis is available, counts are shared across instances.
// Otherwise, it falls back to a per-process fixed window.
func NewRateLimitCounter(rdb *redis.Client) ratelimit.Counter {
	if rdb != nil {
		return ratelimit.NewRedisCounter(rdb)
	}
	return ratelimiter.NewFixedWindow()
}
