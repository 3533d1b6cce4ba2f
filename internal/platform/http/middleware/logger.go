package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	jwtmw "store_rating/internal/platform/jwt"
)

// RequestLogger はリクエストごとに 1 行の構造化ログを出力します。
// 5xx は Error、4xx は Warn、それ以外は Info で記録します。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		}
		if id := c.GetString(ContextRequestID); id != "" {
			attrs = append(attrs, "request_id", id)
		}
		if uid, ok := c.Get(jwtmw.ContextUserID); ok {
			attrs = append(attrs, "user_id", uid)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Error("request completed", attrs...)
		case status >= 400:
			logger.Warn("request completed", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
	}
}
