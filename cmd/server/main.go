package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	"store_rating/internal/app/di"
	"store_rating/internal/app/router"
	"store_rating/internal/feature/auth/domain/entity"
	"store_rating/internal/platform/config"
	platformdb "store_rating/internal/platform/db"
	jwtmw "store_rating/internal/platform/jwt"
	"store_rating/internal/platform/logging"
	"store_rating/internal/platform/metrics"
	platformredis "store_rating/internal/platform/redis"
	"store_rating/internal/platform/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() (err error) {
	// config
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.App.LogLevel, cfg.App.LogFormat)
	gin.SetMode(cfg.App.GinMode)
	if err := validation.Register(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sqlDB.Close()) }()

	if cfg.DB.RunMigrations {
		if err := platformdb.Migrate(db, di.Models()...); err != nil {
			return err
		}
		slog.Info("database migrated")
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, rerr := platformredis.NewRedisClient(ctx, cfg.Redis); rerr != nil {
		slog.Warn("redis unavailable; rate limits are per process", "error", rerr)
	} else if tmp != nil {
		rdb = tmp
		defer func() { err = multierr.Append(err, rdb.Close()) }()
	}

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	tokens := jwtmw.NewService(cfg.JWT.Secret, entity.RoleNames()...)

	// ルータ生成
	engine := router.NewRouter(router.Deps{
		Handlers:    di.NewHandlers(db, tokens, metrics.NewRatingMetrics(reg)),
		Verifier:    tokens,
		DB:          sqlDB,
		Logger:      logger,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
		Gatherer:    reg,
		Counter:     di.NewRateLimitCounter(rdb),
		RateLimit:   cfg.RateLimit,
		CORS:        cfg.CORS,
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
