// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/eventboard/internal/cache"
	"github.com/olegiv/eventboard/internal/config"
	"github.com/olegiv/eventboard/internal/demo"
	"github.com/olegiv/eventboard/internal/eventstore"
	"github.com/olegiv/eventboard/internal/handler"
	"github.com/olegiv/eventboard/internal/i18n"
	"github.com/olegiv/eventboard/internal/logging"
	"github.com/olegiv/eventboard/internal/middleware"
	"github.com/olegiv/eventboard/internal/render"
	"github.com/olegiv/eventboard/internal/scheduler"
	"github.com/olegiv/eventboard/internal/session"
	"github.com/olegiv/eventboard/internal/store"
	"github.com/olegiv/eventboard/internal/version"
	"github.com/olegiv/eventboard/web"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
	staticMaxAge    = 3600
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "eventboard - browse, create, edit and delete events\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOARD_SESSION_SECRET    Session key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOARD_BACKEND_URL       REST backend serving /events, or \"memory\" for demo data\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOARD_SESSION_DB        SQLite session database, or \"memory\" (default: ./data/sessions.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOARD_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOARD_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOARD_CACHE_TTL         Read cache lifetime, 0 disables (default: 15s)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOARD_REDIS_URL         Redis URL for a shared cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOARD_WARM_SCHEDULE     Cache warming cron spec, or \"off\" (default: @every 1m)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("eventboard %s\n", version.Current())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := i18n.Init(logger, cfg.DefaultLang); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n system initialized", "languages", i18n.GetSupportedLanguages(), "default", cfg.DefaultLang)

	sched := scheduler.New(logger)

	events, backendPinger, err := newEventStore(cfg, sched)
	if err != nil {
		return err
	}

	var (
		cachePinger eventstore.Pinger
		eventCache  cache.Cacher
	)
	if cfg.CacheEnabled() {
		cacheType := string(cache.BackendMemory)
		if cfg.UseRedisCache() {
			cacheType = string(cache.BackendRedis)
		}
		c, info, err := cache.NewCacheWithInfo(cache.Config{
			Type:             cacheType,
			RedisURL:         cfg.RedisURL,
			Prefix:           cfg.CachePrefix,
			DefaultTTL:       cfg.CacheTTL,
			FallbackToMemory: true,
		})
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}
		defer func() { _ = c.Close() }()

		switch {
		case info.IsFallback:
			slog.Warn("event cache initialized", "backend", info.Backend, "note", "Redis unavailable, using fallback")
		default:
			slog.Info("event cache initialized", "backend", info.Backend, "ttl", cfg.CacheTTL)
		}

		eventCache = c
		cached := eventstore.NewCached(events, c, cfg.CacheTTL, logger)
		events = cached
		backendPinger = cached
		if p, ok := c.(eventstore.Pinger); ok {
			cachePinger = p
		}

		if cfg.WarmEnabled() {
			if err := sched.AddWarmJob(cached, cfg.WarmSchedule); err != nil {
				return fmt.Errorf("scheduling cache warming: %w", err)
			}
			if err := sched.TriggerNow(scheduler.WarmJobName); err != nil {
				slog.Warn("initial cache warm failed", "error", err)
			}
		}
	}

	sessionManager, closeSessions, err := newSessionManager(cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	r, err := newRouter(cfg, events, backendPinger, cachePinger, eventCache, renderer, sessionManager, logger)
	if err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()
	for _, job := range sched.List() {
		slog.Info("scheduled job", "name", job.Name, "schedule", job.Schedule)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newEventStore returns the REST client, or the in-memory demo store with
// its daily reset job when the backend URL is "memory".
func newEventStore(cfg *config.Config, sched *scheduler.Scheduler) (eventstore.Store, eventstore.Pinger, error) {
	if cfg.UseMemoryBackend() {
		mem := eventstore.NewMemory(demo.Events(time.Now())...)
		err := sched.Add(demo.ResetJobName, "Restore the demo events", demo.ResetSchedule, func(ctx context.Context) error {
			return demo.Reset(ctx, mem, time.Now())
		})
		if err != nil {
			return nil, nil, fmt.Errorf("scheduling demo reset: %w", err)
		}
		slog.Info("using in-memory demo events", "events", mem.Len())
		return mem, nil, nil
	}

	client, err := eventstore.NewClient(cfg.BackendURL, eventstore.WithTimeout(cfg.BackendTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("initializing backend client: %w", err)
	}
	slog.Info("using REST backend", "url", client.BaseURL(), "timeout", cfg.BackendTimeout)
	return client, client, nil
}

// newSessionManager opens the SQLite session store, or keeps sessions in memory
// when the session DB is "memory". The returned func releases the database.
func newSessionManager(cfg *config.Config) (*scs.SessionManager, func(), error) {
	if cfg.UseMemorySessions() {
		slog.Info("session manager initialized", "store", "memory")
		return session.NewMemory(cfg.IsDevelopment()), func() {}, nil
	}

	slog.Info("initializing session database", "path", cfg.SessionDB)
	db, err := store.NewDB(cfg.SessionDB)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing session database: %w", err)
	}
	closeDB := func(db *sql.DB) func() {
		return func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing session database", "error", err)
			}
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("session manager initialized", "store", "sqlite")
	return session.New(db, cfg.IsDevelopment()), closeDB, nil
}

func newRouter(
	cfg *config.Config,
	events eventstore.Store,
	backendPinger, cachePinger eventstore.Pinger,
	eventCache cache.Cacher,
	renderer *render.Renderer,
	sessionManager *scs.SessionManager,
	logger *slog.Logger,
) (chi.Router, error) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Middleware)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.Language)

	errorHandler := handler.NewErrorHandler(renderer)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	r.With(middleware.StaticCache(staticMaxAge)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	health := handler.NewHealthHandler(backendPinger, cachePinger, version.Version)
	if eventCache != nil {
		health.WithCacheStats(eventCache)
	}
	health.Routes(r)
	handler.NewSEOHandler(events, cfg.IsDevelopment(), logger).Routes(r)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.ServerAddr(), cfg.IsDevelopment())
	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitBurst, http.HandlerFunc(errorHandler.RateLimited))

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.CSRF(csrfConfig))
		r.Use(limiter.Mutating())

		handler.NewEventsHandler(events, renderer, sessionManager, logger).Routes(r)
	})

	return r, nil
}
