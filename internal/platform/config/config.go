// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// AppConfig は HTTP サーバーとログの設定です。
type AppConfig struct {
	Port      string `envconfig:"PORT" default:"8080"`
	GinMode   string `envconfig:"GIN_MODE" default:"release"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Addr は gin.Engine / http.Server に渡すリッスンアドレスを返します。
func (a AppConfig) Addr() string {
	return ":" + strings.TrimPrefix(a.Port, ":")
}

// DBConfig はデータベース接続の設定です。DB_DSN が空なら個別の項目から DSN を組み立てます。
type DBConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"postgres"`
	DSN    string `envconfig:"DB_DSN"`

	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"SQLITE_PATH" default:"store_rating.db"`

	RunMigrations   bool          `envconfig:"RUN_MIGRATIONS" default:"false"`
	ConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"60s"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

// RedisConfig はレート制限カウンター用の Redis 接続設定です。
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Enabled は REDIS_HOST が設定されている場合のみ true を返します。
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

// Addr は go-redis に渡す host:port を返します。
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// JWTConfig はトークン署名の設定です。
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// RateLimitConfig は /login と /signup の IP ごとの上限です。
type RateLimitConfig struct {
	Window time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	Login  int           `envconfig:"RATE_LIMIT_LOGIN" default:"10"`
	Signup int           `envconfig:"RATE_LIMIT_SIGNUP" default:"5"`
}

// CORSConfig は許可するオリジンの一覧です。空なら CORS ヘッダーを付けません。
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// Load は .env（存在する場合）とプロセス環境変数から設定を読み込みます。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.DSN == "" && (c.DB.User == "" || c.DB.Name == "") {
			return errors.New("config: DB_DSN or DB_USER/DB_NAME must be set for postgres")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("config: JWT_SECRET must not be blank")
	}
	return nil
}

// PostgresDSN は DB_DSN が未設定の場合に接続パラメータから URL 形式の DSN を組み立てます。
func (d DBConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
