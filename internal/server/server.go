// Package server exposes the resolver over a small admin HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/law-makers/linkresolve/internal/config"
	"github.com/law-makers/linkresolve/internal/metrics"
	"github.com/law-makers/linkresolve/internal/ratelimit"
)

// API routes
const (
	BasePath           = "/v1"
	DestinationURLPath = BasePath + "/utils/destinationUrl"
	SanitizePath       = BasePath + "/utils/sanitize"
	HealthPath         = "/healthz"
	MetricsPath        = "/metrics"
)

const limiterIdle = 10 * time.Minute

// ResolveFunc computes the destination of target relative to base
type ResolveFunc func(base, target string) (string, bool)

// Options configures a Server
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// Token, when not empty, must be presented as a bearer token on /v1 routes
	Token string
	// TrustProxy keys rate limits on X-Forwarded-For
	TrustProxy bool

	Resolve  ResolveFunc
	Sanitize func(raw string) string
	Limiter  ratelimit.RateLimiter
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
	Uptime   func() time.Duration
}

// Server serves the admin API
type Server struct {
	opts       Options
	mux        *http.ServeMux
	httpServer *http.Server
	started    time.Time
}

// New creates a Server and registers its routes
func New(opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = config.DefaultShutdownTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	if opts.Limiter == nil {
		opts.Limiter = ratelimit.NewKeyedLimiter(0, 0)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	s := &Server{
		opts:    opts,
		mux:     http.NewServeMux(),
		started: time.Now(),
	}
	if s.opts.Uptime == nil {
		s.opts.Uptime = func() time.Duration { return time.Since(s.started) }
	}
	s.routes()

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.handle("POST "+DestinationURLPath, s.protected(http.HandlerFunc(s.destinationURL)))
	s.handle("POST "+SanitizePath, s.protected(http.HandlerFunc(s.sanitize)))
	s.handle("GET "+HealthPath, http.HandlerFunc(s.health))
	s.handle("GET "+MetricsPath, s.opts.Metrics.Handler())
}

// handle registers h under pattern, instrumented with the pattern's path as
// route label.
func (s *Server) handle(pattern string, h http.Handler) {
	_, route, _ := strings.Cut(pattern, " ")
	s.mux.Handle(pattern, s.instrument(route, h))
}

// protected applies rate limiting and, when configured, authentication
func (s *Server) protected(h http.Handler) http.Handler {
	return s.rateLimit(s.authenticate(h))
}

// Handler returns the root handler of the API
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.mux)
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully, waiting
// at most ShutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.opts.Logger.Info().
		Str("addr", ln.Addr().String()).
		Bool("auth", s.opts.Token != "").
		Msg("Starting admin API server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepLimiter(sweepCtx)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info().Msg("Shutting down admin API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// sweepLimiter periodically forgets idle clients
func (s *Server) sweepLimiter(ctx context.Context) {
	sweeper, ok := s.opts.Limiter.(interface{ Sweep(time.Duration) int })
	if !ok {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sweeper.Sweep(limiterIdle); n > 0 {
				s.opts.Logger.Debug().Int("clients", n).Msg("Forgot idle rate limit clients")
			}
		}
	}
}
