// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	// Server
	Port int

	// Storage
	Store       string
	DBPath      string
	RedisAddr   string
	RedisPrefix string

	// Auth. An empty secret disables token checks.
	JWTSecret string
	TokenTTL  time.Duration

	// Defaults for a store that has no settings yet
	DefaultStrategy string
	DefaultExtra    float64
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Store:           getEnvDefault("STORE", StoreSQLite),
		DBPath:          getEnvDefault("DB_PATH", "./data/debts.db"),
		RedisAddr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:     getEnvDefault("REDIS_PREFIX", "debtplanner:"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		DefaultStrategy: getEnvDefault("DEFAULT_STRATEGY", "avalanche"),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(getEnvDefault("PORT", "8080")); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(getEnvDefault("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.DefaultExtra, err = strconv.ParseFloat(getEnvDefault("DEFAULT_EXTRA", "5000"), 64); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_EXTRA: %w", err)
	}

	if cfg.Store != StoreSQLite && cfg.Store != StoreRedis {
		return nil, fmt.Errorf("STORE must be %q or %q, got %q", StoreSQLite, StoreRedis, cfg.Store)
	}
	if cfg.DefaultStrategy != "avalanche" && cfg.DefaultStrategy != "snowball" {
		return nil, fmt.Errorf("DEFAULT_STRATEGY must be avalanche or snowball, got %q", cfg.DefaultStrategy)
	}
	if cfg.DefaultExtra < 0 {
		return nil, fmt.Errorf("DEFAULT_EXTRA must not be negative")
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
