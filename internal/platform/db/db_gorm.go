// Package db は GORM によるデータベース接続の初期化を提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"store_rating/internal/platform/config"
)

const retryInterval = 3 * time.Second

// Opener は DSN から *gorm.DB を開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// GormConfig は全ドライバー共通の設定です。
// TranslateError により一意制約・外部キー違反が gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated に変換されます。
// クエリログは l へ SlogLogger 経由で出力され、バインド値は含まれません。
func GormConfig(l *slog.Logger) *gorm.Config {
	return &gorm.Config{TranslateError: true, Logger: NewLogger(l)}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), GormConfig(slog.Default()))
}

func openSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(SQLiteDSN(path)), GormConfig(slog.Default()))
}

// SQLiteDSN は外部キー制約を有効にした SQLite の DSN を返します。
func SQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// OpenDB は設定に従ってデータベースへ接続し、コネクションプールを構成します。
// postgres の場合は ConnectTimeout の間リトライします。
func OpenDB(cfg config.DBConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err = openSQLite(cfg.SQLitePath)
		if err == nil {
			// SQLite は接続を 1 本に固定する
			cfg.MaxOpenConns, cfg.MaxIdleConns = 1, 1
		}
	case config.DriverPostgres:
		db, err = ConnectWithRetry(cfg.PostgresDSN(), cfg.ConnectTimeout, openPostgres)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// ConnectWithRetry は timeout に達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	return connectWithRetry(dsn, timeout, retryInterval, opener)
}

func connectWithRetry(dsn string, timeout, interval time.Duration, opener Opener) (*gorm.DB, error) {
	if opener == nil {
		return nil, errors.New("db: opener is nil")
	}
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", interval)
		time.Sleep(interval)
	}
}

// Migrate は指定されたモデルのテーブルを AutoMigrate で作成・更新します。
// 外部キーの参照先を先に渡す必要があります。
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
