// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/linkresolve/internal/auth"
	"github.com/law-makers/linkresolve/internal/batch"
	"github.com/law-makers/linkresolve/internal/cache"
	"github.com/law-makers/linkresolve/internal/config"
	"github.com/law-makers/linkresolve/internal/links"
	"github.com/law-makers/linkresolve/internal/metrics"
	"github.com/law-makers/linkresolve/internal/ratelimit"
	"github.com/law-makers/linkresolve/internal/resolver"
	"github.com/law-makers/linkresolve/internal/utils/output"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Metrics     *metrics.Metrics
	Resolver    *resolver.Resolver
	Batch       *batch.Resolver
	Links       *links.Extractor
	RateLimiter *ratelimit.KeyedLimiter
	Tokens      *auth.TokenStore
	Cache       *cache.LRU // nil when disabled
	startTime   time.Time
}

// Option customizes an Application before it is returned by New
type Option func(*Application)

// WithLogOutput sends logs to w instead of stderr
func WithLogOutput(w io.Writer) Option {
	return func(a *Application) {
		l := a.Logger.Output(w)
		a.Logger = &l
		a.Resolver = newResolver(a)
	}
}

// WithTokenStore replaces the default keyring backed token store
func WithTokenStore(s *auth.TokenStore) Option {
	return func(a *Application) {
		a.Tokens = s
	}
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the metrics registry
//   - Creates the resolver, reporting failures to logs and metrics
//   - Creates the batch resolver and link extractor on top of it
//   - Creates the per-client rate limiter for the admin API
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	zerolog.SetGlobalLevel(ParseLevel(cfg.LogLevel))

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		Metrics:     metrics.New(),
		RateLimiter: ratelimit.NewKeyedLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Tokens:      &auth.TokenStore{},
		startTime:   time.Now(),
	}
	app.Resolver = newResolver(app)
	if cfg.CacheEntries > 0 {
		app.Cache = cache.NewLRU(cfg.CacheEntries)
	}

	for _, opt := range opts {
		opt(app)
	}

	app.Batch = batch.New(app.Resolve, cfg.ExportConcurrency)
	app.Links = links.New(app.Resolve)

	app.Logger.Debug().
		Float64("rate_rps", cfg.RateLimitRPS).
		Int("rate_burst", cfg.RateLimitBurst).
		Int("batch_workers", app.Batch.Concurrency()).
		Int("cache_entries", cfg.CacheEntries).
		Msg("Application initialized")
	return app, nil
}

func newResolver(a *Application) *resolver.Resolver {
	return resolver.New(resolver.MultiReporter{
		resolver.LogReporter{Logger: *a.Logger, Limit: a.Config.DiagnosticLimit},
		a.Metrics,
	})
}

// Resolve computes a destination URL and records the outcome. Successful
// resolutions are cached; failures are recomputed so each one is reported.
func (a *Application) Resolve(base, target string) (string, bool) {
	var key string
	if a.Cache != nil {
		key = cache.Key(base, target)
		if dest, ok := a.Cache.Get(key); ok {
			a.Metrics.ObserveCache(true)
			a.Metrics.Resolved()
			return dest, true
		}
		a.Metrics.ObserveCache(false)
	}

	dest, ok := a.Resolver.Resolve(base, target)
	if ok {
		a.Metrics.Resolved()
		if a.Cache != nil {
			a.Cache.Set(key, dest)
		}
	}
	return dest, ok
}

// Exporter returns an exporter using the application's batch resolver
func (a *Application) Exporter(progress func()) *output.Exporter {
	return &output.Exporter{
		Batch:    a.Batch,
		Logger:   *a.Logger,
		Progress: progress,
	}
}

// APIToken returns the bearer token the admin API requires: the configured
// one, else the stored one. An empty token disables authentication.
func (a *Application) APIToken() (string, error) {
	if a.Config.APIToken != "" {
		return a.Config.APIToken, nil
	}
	token, err := a.Tokens.Load()
	if errors.Is(err, auth.ErrNoToken) {
		return "", nil
	}
	return token, err
}

// Close gracefully shuts down the application and all its resources.
func (a *Application) Close(ctx context.Context) error {
	event := a.Logger.Debug().Dur("uptime", a.Uptime())
	if a.Cache != nil {
		stats := a.Cache.Stats()
		event = event.
			Int("cache_entries", stats.Entries).
			Float64("cache_hit_rate", stats.HitRate())
	}
	event.Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}

// ParseLevel maps a configured level name to a zerolog level, info by default
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
