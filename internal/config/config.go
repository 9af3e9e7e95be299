// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the eventboard configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// MemoryBackend is the backend URL (or session DB) value that selects in-memory storage.
const MemoryBackend = "memory"

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	BackendURL     string        `env:"EVENTBOARD_BACKEND_URL" envDefault:"http://localhost:3000"`
	BackendTimeout time.Duration `env:"EVENTBOARD_BACKEND_TIMEOUT" envDefault:"10s"`

	SessionSecret string `env:"EVENTBOARD_SESSION_SECRET,required"`
	SessionDB     string `env:"EVENTBOARD_SESSION_DB" envDefault:"./data/sessions.db"` // "memory" = in-memory sessions

	ServerHost  string `env:"EVENTBOARD_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"EVENTBOARD_SERVER_PORT" envDefault:"8080"`
	Env         string `env:"EVENTBOARD_ENV" envDefault:"development"`
	LogLevel    string `env:"EVENTBOARD_LOG_LEVEL" envDefault:"info"`
	DefaultLang string `env:"EVENTBOARD_DEFAULT_LANG" envDefault:"en"`

	// Read cache in front of the backend
	RedisURL     string        `env:"EVENTBOARD_REDIS_URL"`                            // Optional Redis URL for a shared cache
	CachePrefix  string        `env:"EVENTBOARD_CACHE_PREFIX" envDefault:"eventboard:"` // Redis key prefix
	CacheTTL     time.Duration `env:"EVENTBOARD_CACHE_TTL" envDefault:"15s"`            // 0 disables caching
	WarmSchedule string        `env:"EVENTBOARD_WARM_SCHEDULE" envDefault:"@every 1m"`  // cron spec; "off" disables warming

	// Per-IP limit on mutating requests
	RateLimit      float64 `env:"EVENTBOARD_RATE_LIMIT" envDefault:"5"`
	RateLimitBurst int     `env:"EVENTBOARD_RATE_LIMIT_BURST" envDefault:"10"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseMemoryBackend returns true if the in-memory demo store replaces the REST backend.
func (c Config) UseMemoryBackend() bool {
	return strings.EqualFold(c.BackendURL, MemoryBackend)
}

// UseMemorySessions returns true if sessions are kept in process memory.
func (c Config) UseMemorySessions() bool {
	return strings.EqualFold(c.SessionDB, MemoryBackend)
}

// WarmEnabled returns true if the list cache is warmed on a schedule.
func (c Config) WarmEnabled() bool {
	return c.CacheEnabled() && !strings.EqualFold(c.WarmSchedule, "off")
}

// CacheEnabled returns true if backend reads go through the cache.
func (c Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.CacheEnabled() && c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("EVENTBOARD_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("EVENTBOARD_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("EVENTBOARD_SESSION_SECRET is a known default value and must not be used")
		}
	}

	if strings.TrimSpace(c.BackendURL) == "" {
		return fmt.Errorf("EVENTBOARD_BACKEND_URL must not be empty")
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("EVENTBOARD_BACKEND_TIMEOUT must be positive, got %s", c.BackendTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("EVENTBOARD_CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	if c.RateLimit <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("EVENTBOARD_RATE_LIMIT and EVENTBOARD_RATE_LIMIT_BURST must be positive")
	}

	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("EVENTBOARD_ENV must be development or production, got %q", c.Env)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("EVENTBOARD_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
