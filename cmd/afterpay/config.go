package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"github.com/Batareeed/afterpay-go/afterpay"
	"github.com/Batareeed/afterpay-go/configcache"
	"github.com/Batareeed/afterpay-go/gateway"
)

// Config holds CLI configuration. Values come from the config file when it
// sets them, otherwise from the environment, otherwise from defaults.
type Config struct {
	Environment string `yaml:"environment"` // sandbox or production
	BaseURL     string `yaml:"baseURL"`     // overrides Environment when set
	Store       string `yaml:"store"`       // memory, sqlite, redis or postgres
	SQLitePath  string `yaml:"sqlitePath"`
	RedisAddr   string `yaml:"redisAddr"`
	PostgresDSN string `yaml:"postgresDSN"`
	TTL         string `yaml:"ttl"` // cache freshness window, e.g. "24h"
}

// LoadConfig loads configuration from path, or from ~/.afterpay.yaml when
// path is empty. A missing default file is fine; a missing explicit one is
// an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Environment: getEnv("AFTERPAY_ENVIRONMENT", string(afterpay.EnvironmentSandbox)),
		BaseURL:     os.Getenv("AFTERPAY_BASE_URL"),
		Store:       getEnv("AFTERPAY_STORE", "sqlite"),
		SQLitePath:  getEnv("AFTERPAY_SQLITE_PATH", defaultSQLitePath()),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		PostgresDSN: os.Getenv("DB_DSN"),
		TTL:         os.Getenv("AFTERPAY_TTL"),
	}

	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".afterpay.yaml")
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return nil, fmt.Errorf("read config: %w", err)
	}

	if cfg.BaseURL == "" && !afterpay.Environment(cfg.Environment).Valid() {
		return nil, fmt.Errorf("unknown environment %q", cfg.Environment)
	}
	return cfg, nil
}

// Client builds the API client for the configured environment.
func (c *Config) Client() *gateway.Client {
	if c.BaseURL != "" {
		return gateway.NewWithBase(c.BaseURL, nil)
	}
	return gateway.New(afterpay.Environment(c.Environment), nil)
}

// OpenStore builds the configured cache store. The returned closer may be
// nil when the store holds no resources.
func (c *Config) OpenStore(ctx context.Context) (configcache.Store, func() error, error) {
	switch c.Store {
	case "", "memory":
		return configcache.NewMemoryStore(), nil, nil
	case "sqlite":
		store, err := configcache.OpenSQLiteStore(c.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		return configcache.NewRedisStore(client, "afterpay"), client.Close, nil
	case "postgres":
		db, err := sql.Open("postgres", c.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		store, err := configcache.NewPostgresStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("prepare postgres store: %w", err)
		}
		return store, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", c.Store)
	}
}

// CacheTTL parses the configured freshness window. Zero means the cache
// default.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("parse ttl %q: %w", c.TTL, err)
	}
	return ttl, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".afterpay/cache.db"
	}
	return filepath.Join(home, ".afterpay", "cache.db")
}
