package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID はリクエストコンテキストに格納されるユーザーIDのキーです。
	ContextUserID = "userID"
	// ContextClaims は検証済みクレームのキーです。
	ContextClaims = "claims"
)

// Verifier はトークン検証のインターフェースです。
// 失効リストなどを持つ実装に差し替えてもミドルウェアの契約は変わりません。
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// AuthRequired は Bearer トークンを検証し、クレームをコンテキストに設定する Gin ミドルウェアを返します。
// トークンが無い場合は 401、検証に失敗した場合は 403 を返します。
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization ヘッダーからトークンを取り出す
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token missing"})
			return
		}

		// 2. 署名と有効期限を検証
		claims, err := v.Verify(tokenStr)
		if err != nil {
			slog.Debug("token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		// 3. クレームをコンテキストへ
		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// RequireRole はクレームのロールが roles のいずれかと一致しない場合に 403 を返します。
// AuthRequired の後に登録する必要があります。
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token missing"})
			return
		}
		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		slog.Warn("access denied", "user_id", claims.UserID, "role", claims.Role, "path", c.FullPath())
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}

// ClaimsFrom は AuthRequired が設定したクレームを取り出します。
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok && claims != nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
