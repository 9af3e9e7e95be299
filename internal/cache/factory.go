// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// BackendType identifies the cache backend in use.
type BackendType string

const (
	BackendMemory BackendType = "memory"
	BackendRedis  BackendType = "redis"
)

// Config holds cache backend settings.
type Config struct {
	// Type is "memory" or "redis". Empty selects redis when RedisURL is set.
	Type string

	RedisURL        string
	Prefix          string
	DefaultTTL      time.Duration
	MaxSize         int
	CleanupInterval time.Duration

	// FallbackToMemory uses a memory cache when Redis is unreachable.
	FallbackToMemory bool
}

// Info describes the cache selected by NewCacheWithInfo.
type Info struct {
	Backend    BackendType
	IsFallback bool
	Error      error // the Redis error that triggered a fallback
}

// NewCacheWithInfo creates a cache and reports which backend was selected.
func NewCacheWithInfo(cfg Config) (Cacher, Info, error) {
	backend := BackendType(cfg.Type)
	if backend == "" {
		backend = BackendMemory
		if cfg.RedisURL != "" {
			backend = BackendRedis
		}
	}

	switch backend {
	case BackendMemory:
		return newMemory(cfg), Info{Backend: BackendMemory}, nil

	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, Info{}, fmt.Errorf("redis cache requires a URL")
		}
		rc, err := NewRedisCache(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			return rc, Info{Backend: BackendRedis}, nil
		}
		if !cfg.FallbackToMemory {
			return nil, Info{}, fmt.Errorf("connecting to redis %s: %w", maskRedisURL(cfg.RedisURL), err)
		}
		slog.Warn("redis unavailable, falling back to memory cache",
			"url", maskRedisURL(cfg.RedisURL), "error", err)
		return newMemory(cfg), Info{Backend: BackendMemory, IsFallback: true, Error: err}, nil

	default:
		return nil, Info{}, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

func newMemory(cfg Config) *MemoryCache {
	cleanup := cfg.CleanupInterval
	if cleanup == 0 {
		cleanup = time.Minute
	}
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cleanup,
	})
}

// maskRedisURL hides credentials in a Redis URL for logging.
func maskRedisURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "redis://***"
	}
	if u.User == nil {
		return raw
	}
	masked := u.Scheme + "://***@" + u.Host + u.Path
	if u.RawQuery != "" {
		masked += "?" + u.RawQuery
	}
	return masked
}
