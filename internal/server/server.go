package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/dylbow/clawdgod/internal/modules/channel"
	"github.com/dylbow/clawdgod/internal/modules/history"
	"github.com/dylbow/clawdgod/internal/modules/portfolio"
	"github.com/dylbow/clawdgod/internal/modules/roi"
	"github.com/dylbow/clawdgod/internal/modules/status"
	"github.com/dylbow/clawdgod/internal/modules/tasks"
)

// Handlers groups the per-module HTTP handlers the router dispatches to
type Handlers struct {
	Portfolio *portfolio.Handler
	Tasks     *tasks.Handler
	Channel   *channel.Handler
	ROI       *roi.Handler
	Status    *status.Handler
	History   *history.Handler
}

// Config holds server configuration
type Config struct {
	Port      int
	StaticDir string
	Log       zerolog.Logger
	Handlers  Handlers
	DevMode   bool
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	handlers Handlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		handlers: cfg.Handlers,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes(cfg.StaticDir)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS: the dashboard is served and consumed locally, any origin is fine
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(staticDir string) {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/kalshi", s.handlers.Portfolio.HandleSummary)
		r.Get("/monday", s.handlers.Tasks.HandleList)
		r.Get("/youtube", s.handlers.Channel.HandleStats)
		r.Get("/roi", s.handlers.ROI.HandleSummary)
		r.Get("/status", s.handlers.Status.HandleStatus)
		r.Get("/history", s.handlers.History.HandleHistory)
	})

	// Everything else is the dashboard's static files
	s.router.Handle("/*", http.FileServer(http.Dir(staticDir)))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the mux for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
