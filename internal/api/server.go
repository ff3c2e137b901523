// Package api provides the HTTP server for the dashboard.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/data-ashita/monitor-dash/internal/api/handlers"
	"github.com/data-ashita/monitor-dash/internal/api/health"
	"github.com/data-ashita/monitor-dash/internal/api/middleware"
	"github.com/data-ashita/monitor-dash/internal/fetch"
	"github.com/data-ashita/monitor-dash/internal/store"
	"github.com/data-ashita/monitor-dash/internal/web"
	"github.com/data-ashita/monitor-dash/pkg/config"
	"github.com/data-ashita/monitor-dash/pkg/logger"
)

// Version is the current version of the dashboard server.
// This should be set at build time using ldflags.
var Version = "dev"

// Server represents the HTTP dashboard server.
type Server struct {
	router        chi.Router
	httpServer    *http.Server
	store         store.Store
	fetcher       *fetch.Fetcher
	config        *config.Config
	logger        *logger.Logger
	healthChecker *health.Checker
}

// NewServer creates a new dashboard server with the given dependencies.
func NewServer(cfg *config.Config, st store.Store, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Default()
	}

	s := &Server{
		store:   st,
		fetcher: fetch.New(st, cfg.FetchTTL, cfg.FetchLimit, log.WithComponent("fetch").Logger),
		config:  cfg,
		logger:  log,
	}

	s.healthChecker = health.NewChecker(st, Version)

	if err := s.setupRouter(); err != nil {
		return nil, err
	}
	return s, nil
}

// setupRouter configures the router with middleware and routes.
func (s *Server) setupRouter() error {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.Recovery(s.logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteNotFound(w, "resource not found")
	})

	// Health check endpoint
	r.Get("/health", s.healthChecker.Handler())

	window := handlers.WindowOptions{
		DefaultDays: s.config.DefaultDays,
		MaxDays:     s.config.MaxDays,
	}

	apiLog := s.logger.WithComponent("api").Logger
	dashboardHandler := handlers.NewDashboardHandler(s.fetcher, window, apiLog)
	logsHandler := handlers.NewLogsHandler(s.fetcher, window, apiLog)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashboardHandler.Get)
			r.Get("/logs", logsHandler.Get)
			r.Post("/refresh", dashboardHandler.Refresh)
		})
	})

	// Server-rendered dashboard page
	page, err := web.NewPage(dashboardHandler, s.config.Settings, window, s.logger.WithComponent("web").Logger)
	if err != nil {
		return err
	}
	r.Get("/", page.Serve)

	s.router = r
	return nil
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.HTTPHost, s.config.HTTPPort)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting dashboard server", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down dashboard server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Router returns the chi router for testing purposes.
func (s *Server) Router() chi.Router {
	return s.router
}
