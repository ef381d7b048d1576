// Package http exposes the view aggregators, dataset metadata, and the
// operational endpoints over HTTP.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afgalvez/madrid-accidents/internal/dataset"
	"github.com/afgalvez/madrid-accidents/internal/observability"
)

// DatasetProvider hands handlers the current prepared table. The provider
// owns caching; handlers just ask.
type DatasetProvider interface {
	Table(ctx context.Context) (*dataset.Table, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the view API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and wraps it in an http.Server with sane
// timeouts.
func NewServer(addr string, provider DatasetProvider, logger *slog.Logger, metrics *observability.Metrics) *Server {
	h := &handlers{provider: provider, logger: logger, metrics: metrics}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	r.Get("/readyz", h.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/summary", h.summary)
		r.Get("/meta", h.meta)
		r.Route("/views", func(r chi.Router) {
			r.Get("/spatial", h.spatial)
			r.Get("/alcohol", h.alcohol)
			r.Get("/vehicle-severity", h.vehicleSeverity)
			r.Get("/sex-role", h.sexRole)
			r.Get("/age-pyramid", h.agePyramid)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
