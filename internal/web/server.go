package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Addr        string
	MetricsAddr string
	RateLimit   float64
	RateBurst   int
}

func NewRouter(h *Handler, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(Metrics())
	r.Use(RateLimit(limiter))

	r.Get("/", h.Dashboard)

	return r
}

func NewAdminRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type Server struct {
	app    *http.Server
	admin  *http.Server
	logger *slog.Logger
}

func NewServer(cfg Config, loader Loader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	return &Server{
		app: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(NewHandler(loader, logger), limiter),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		admin: &http.Server{
			Addr:         cfg.MetricsAddr,
			Handler:      NewAdminRouter(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled or either listener fails, then shuts
// both down.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	for _, srv := range []*http.Server{s.app, s.admin} {
		go func(srv *http.Server) {
			s.logger.Info("HTTP server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listening on %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	s.logger.Info("Shutting down HTTP servers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range []*http.Server{s.app, s.admin} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown error", "addr", srv.Addr, "error", err)
		}
	}

	return runErr
}
