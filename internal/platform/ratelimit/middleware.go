package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"store_rating/internal/api"
)

// Counter はキーごとの呼び出し回数を数えるストアです。
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Policy はエンドポイントごとの制限値です。Limit または Window が 0 以下なら無効です。
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

func (p Policy) enabled() bool {
	return p.Limit > 0 && p.Window > 0
}

func (p Policy) key(ip string) string {
	return "rl:" + p.Name + ":" + ip
}

// Middleware はクライアントIPごとに policy を適用する Gin ミドルウェアを返します。
// カウンターのエラー時はリクエストを通し、警告ログのみ出力します。
func Middleware(policy Policy, counter Counter) gin.HandlerFunc {
	if !policy.enabled() || counter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ip := c.ClientIP()
		count, err := counter.IncrWithTTL(c.Request.Context(), policy.key(ip), policy.Window)
		if err != nil {
			slog.Warn("rate limit counter unavailable", "policy", policy.Name, "error", err)
			c.Next()
			return
		}
		if count > int64(policy.Limit) {
			slog.Warn("rate limit exceeded",
				"policy", policy.Name,
				"remote_addr", ip,
				"attempts", count,
				"limit", policy.Limit,
			)
			c.Header("Retry-After", strconv.Itoa(int(policy.Window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
