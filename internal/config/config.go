// Package config reads process configuration from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/adapters/cache"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/adapters/gateway"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/retry"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	Port     string
	LogLevel slog.Level

	// Backend is postgres, sqlite or memory.
	Backend    string
	Postgres   gateway.PostgresConfig
	SQLitePath string
	// EnsureSchema creates missing tables on a Postgres backend at startup.
	EnsureSchema bool

	Redis    cache.Config
	UseRedis bool
	CacheTTL time.Duration

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	Retry                  retry.Policy
	MissingRelationAsEmpty bool

	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads envFiles (missing files are ignored) and then the environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	p := &parser{}
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Backend:    strings.ToLower(getEnv("DB_BACKEND", BackendPostgres)),
		SQLitePath: getEnv("SQLITE_PATH", "data/tuinbeheer.db"),
		Postgres: gateway.PostgresConfig{
			Driver:   getEnv("DB_DRIVER", gateway.DriverPgx),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		EnsureSchema: p.bool("DB_ENSURE_SCHEMA", false),
		Redis: cache.Config{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       p.int("REDIS_DB", 0),
		},
		CacheTTL:  p.duration("CACHE_TTL", 30*time.Minute),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getEnv("JWT_ISSUER", "tuinbeheer"),
		TokenTTL:  p.duration("TOKEN_TTL", 24*time.Hour),
		Retry: retry.Policy{
			MaxRetries:        p.int("DB_MAX_RETRIES", retry.DefaultPolicy.MaxRetries),
			InitialDelay:      p.duration("DB_RETRY_INITIAL_DELAY", retry.DefaultPolicy.InitialDelay),
			MaxDelay:          p.duration("DB_RETRY_MAX_DELAY", retry.DefaultPolicy.MaxDelay),
			BackoffMultiplier: p.float("DB_RETRY_MULTIPLIER", retry.DefaultPolicy.BackoffMultiplier),
		},
		MissingRelationAsEmpty: p.bool("MISSING_RELATION_AS_EMPTY", true),
		RateLimit:              p.int("RATE_LIMIT", 100),
		RateLimitWindow:        p.duration("RATE_LIMIT_WINDOW", time.Minute),
	}
	cfg.UseRedis = cfg.Redis.Host != ""

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		p.errs = append(p.errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendPostgres:
		if c.Postgres.User == "" || c.Postgres.Name == "" {
			return errors.New("DB_USER and DB_NAME are required for the postgres backend")
		}
		if c.Postgres.Driver != gateway.DriverPgx && c.Postgres.Driver != gateway.DriverPostgres {
			return fmt.Errorf("DB_DRIVER must be %q or %q", gateway.DriverPgx, gateway.DriverPostgres)
		}
	case BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown DB_BACKEND %q", c.Backend)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Retry.MaxRetries < 1 {
		return errors.New("DB_MAX_RETRIES must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser collects every malformed value instead of stopping at the first.
type parser struct {
	errs []error
}

func (p *parser) int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (p *parser) float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
