package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Dashboard DashboardConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	Secure          bool          `env:"SERVER_SECURE" envDefault:"false"` // Send HSTS
	Environment     string        `env:"APP_ENV" envDefault:"development"` // "development", "production", "test"
	Debug           bool          `env:"DEBUG" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"postgres"` // "postgres" or "sqlite"
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       int    `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"explorer"`
	Password   string `env:"DB_PASSWORD" envDefault:"explorer"`
	DBName     string `env:"DB_NAME" envDefault:"social_explorer"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns   int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns   int32  `env:"DB_MIN_CONNS" envDefault:"5"`
	Migrations string `env:"DB_MIGRATIONS_DIR" envDefault:"migrations"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/social.db"`
	SeedDemo   bool   `env:"SEED_DEMO" envDefault:"false"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"true"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type DashboardConfig struct {
	DefaultTopK int   `env:"DASHBOARD_TOP_K" envDefault:"5"`
	MaxTopK     int   `env:"DASHBOARD_MAX_TOP_K" envDefault:"50"`
	RateLimit   int64 `env:"DASHBOARD_RATE_LIMIT" envDefault:"0"` // 0 picks the per-environment default
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	if cfg.Dashboard.DefaultTopK <= 0 {
		return nil, fmt.Errorf("DASHBOARD_TOP_K must be positive, got %d", cfg.Dashboard.DefaultTopK)
	}
	if cfg.Dashboard.MaxTopK < cfg.Dashboard.DefaultTopK {
		cfg.Dashboard.MaxTopK = cfg.Dashboard.DefaultTopK
	}

	return cfg, nil
}
