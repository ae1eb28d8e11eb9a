// Package server exposes a read-only diagnostics API over a loaded M5
// dataset: table summaries, the categorical hierarchy and calendar lookups.
// The dataset is loaded once at startup and never mutated, so every handler
// is a plain read.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"m5cli/internal/config"
	"m5cli/internal/dataset"
	"m5cli/internal/middleware"
)

// Server serves dataset diagnostics over HTTP.
type Server struct {
	cfg       config.ServerConfig
	data      *dataset.Dataset
	hierarchy *dataset.Hierarchy
	logger    *slog.Logger
}

// New creates a diagnostics server over an already loaded dataset.
func New(cfg config.ServerConfig, data *dataset.Dataset, hierarchy *dataset.Hierarchy, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		data:      data,
		hierarchy: hierarchy,
		logger:    logger.With(slog.String("component", "server")),
	}
}

// Router assembles the middleware chain and routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(s.logger))
	r.Use(middleware.Recoverer(s.logger))
	r.Use(RequestMetrics)
	if s.cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst, s.logger)
		r.Use(limiter.Handler)
	}

	r.Get("/healthz", s.GetHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/dataset", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/info", s.GetInfo)
		r.Get("/hierarchy", s.GetHierarchy)
		r.Get("/calendar/{d}", s.GetCalendarDay)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("diagnostics server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down diagnostics server")
		return srv.Shutdown(shutdownCtx)
	}
}
