package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"store_rating/internal/app/di"
	"store_rating/internal/feature/auth/domain/entity"
	"store_rating/internal/platform/config"
	"store_rating/internal/platform/http/handler"
	"store_rating/internal/platform/http/middleware"
	jwtmw "store_rating/internal/platform/jwt"
	"store_rating/internal/platform/metrics"
	"store_rating/internal/platform/ratelimit"
)

// Deps はルーター構築に必要な依存関係です。
type Deps struct {
	Handlers    *di.Handlers
	Verifier    jwtmw.Verifier
	DB          handler.Pinger
	Logger      *slog.Logger
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Counter     ratelimit.Counter
	RateLimit   config.RateLimitConfig
	CORS        config.CORSConfig
}

// NewRouter は全ルートとミドルウェアを登録した gin.Engine を返します。
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(d.Logger))
	if d.HTTPMetrics != nil {
		r.Use(d.HTTPMetrics.Middleware())
	}
	if len(d.CORS.AllowedOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = d.CORS.AllowedOrigins
		cc.AllowHeaders = append(cc.AllowHeaders, "Authorization", middleware.HeaderRequestID)
		r.Use(cors.New(cc))
	}

	h := d.Handlers
	admin := entity.RoleAdmin.String()
	store := entity.RoleStore.String()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(d.DB))
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))
	}
	// 新規ユーザー登録
	r.POST("/signup", ratelimit.Middleware(ratelimit.Policy{
		Name: "signup", Limit: d.RateLimit.Signup, Window: d.RateLimit.Window,
	}, d.Counter), h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", ratelimit.Middleware(ratelimit.Policy{
		Name: "login", Limit: d.RateLimit.Login, Window: d.RateLimit.Window,
	}, d.Counter), h.Auth.Login)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(d.Verifier))
	{
		auth.GET("/auth/profile", h.Auth.Profile)
		auth.POST("/user/update-password", h.Auth.UpdatePassword)

		auth.GET("/stores", h.Stores.List)
		auth.POST("/ratings", h.Ratings.Submit)
		auth.GET("/user/ratings", h.Ratings.ListMine)

		owner := auth.Group("/stores", jwtmw.RequireRole(store))
		owner.GET("/dashboard", h.Stores.Dashboard)
		owner.GET("/:id/ratings", h.Stores.Ratings)

		adm := auth.Group("/admin", jwtmw.RequireRole(admin))
		adm.GET("/dashboard", h.Admin.Dashboard)
		adm.GET("/users", h.Admin.ListUsers)
		adm.POST("/users", h.Admin.AddUser)
		adm.GET("/stores", h.Admin.ListStores)
		adm.POST("/stores", h.Stores.Create)
	}

	return r
}
