// Package server exposes topolayout over HTTP.
//
// Every request runs against a canvas: a named layout service that keeps at
// most one layout in flight. POST /v1/layouts/{strategy} uses a fresh
// canvas per request, while POST /v1/canvases/{canvas}/layouts/{strategy}
// shares one, so a newer request supersedes an older one still running and
// the older one answers 409 CANCELLED. A canvas lives only while requests
// reference it.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/topolayout/pkg/config"
	"github.com/matzehuels/topolayout/pkg/metrics"
	"github.com/matzehuels/topolayout/pkg/pipeline"
	"github.com/matzehuels/topolayout/pkg/route"
)

// Server is the HTTP API.
type Server struct {
	cfg     config.Config
	logger  *log.Logger
	metrics *metrics.Registry
	calc    *route.Calculator
	router  chi.Router

	newRunner func() *pipeline.Runner

	mu       sync.Mutex
	canvases map[string]*canvas
}

// canvas is a shared runner plus the number of requests using it.
type canvas struct {
	runner *pipeline.Runner
	refs   int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics mounts the registry on /metrics.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a server for cfg.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		canvases: make(map[string]*canvas),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.calc = route.NewCalculator(route.WithLogger(s.logger))
	if s.newRunner == nil {
		s.newRunner = func() *pipeline.Runner { return pipeline.NewRunner(s.cfg, s.logger) }
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.Server.ShutdownTimeout)
	s.stopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Canvas registry
// =============================================================================

// acquire returns the canvas for id, creating it on first use.
func (s *Server) acquire(id string) *pipeline.Runner {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.canvases[id]
	if !ok {
		c = &canvas{runner: s.newRunner()}
		s.canvases[id] = c
		s.logger.Debug("canvas opened", "canvas", id)
	}
	c.refs++
	return c.runner
}

// release drops one reference and forgets the canvas when none remain.
func (s *Server) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.canvases[id]
	if !ok {
		return
	}
	if c.refs--; c.refs <= 0 {
		delete(s.canvases, id)
		s.logger.Debug("canvas closed", "canvas", id)
	}
}

// stop cancels the run in flight on a canvas. It reports false for unknown
// canvases.
func (s *Server) stop(id string) bool {
	s.mu.Lock()
	c, ok := s.canvases[id]
	s.mu.Unlock()
	if ok {
		c.runner.Stop()
	}
	return ok
}

func (s *Server) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.canvases {
		c.runner.Stop()
	}
}

// canvasCount returns the number of live canvases.
func (s *Server) canvasCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.canvases)
}
