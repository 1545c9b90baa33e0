// Package server assembles the HTTP surface of the Energy Insights backend.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/energyinsights/backend/internal/server/handler"
	"github.com/energyinsights/backend/internal/server/middleware"
	"github.com/energyinsights/backend/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string // empty means allow all origins
}

// Handlers aggregates all HTTP handlers that the server needs to register.
type Handlers struct {
	Greeting *handler.GreetingHandler
	Lookup   *handler.LookupHandler
	Diag     *handler.DiagHandler
}

// Server is the HTTP + WebSocket API server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	logger     *slog.Logger
}

// NewServer creates a new Server with all routes registered on the ServeMux.
// It wires up middleware (CORS, request IDs, logging) and attaches the
// WebSocket hub when one is provided.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// Health-check root. "/{$}" matches only the exact root path.
	mux.HandleFunc("GET /{$}", handlers.Greeting.Root)

	// Static greeting.
	mux.HandleFunc("GET /api/hello", handlers.Greeting.Hello)

	// Benchmark search.
	mux.HandleFunc("GET /api/oil/lookup", handlers.Lookup.Lookup)

	// Dependency diagnostics.
	mux.HandleFunc("GET /test", handlers.Diag.Check)

	// Snapshot stream.
	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	// Build the middleware chain.
	var h http.Handler = mux

	// Apply request logging middleware.
	h = middleware.Logging(logger)(h)

	// Apply request-ID middleware (inside CORS so preflights skip it).
	h = middleware.RequestID()(h)

	// Apply CORS middleware.
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		handler:    h,
		logger:     logger,
	}
}

// Handler returns the fully assembled handler chain, exposed for tests that
// serve it from an httptest server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
