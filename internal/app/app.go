// Package app provides the top-level application lifecycle for the Energy
// Insights backend. It wires the dependencies, builds the HTTP server and
// the optional snapshot stream, and manages graceful shutdown.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/energyinsights/backend/internal/config"
	"github.com/energyinsights/backend/internal/server"
	"github.com/energyinsights/backend/internal/server/handler"
	"github.com/energyinsights/backend/internal/server/ws"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 10 * time.Second

// App is the root application object.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a new App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run wires all dependencies, starts the HTTP server and the snapshot
// stream, and blocks until the context is cancelled. On return all resources
// have been released.
func (a *App) Run(ctx context.Context) error {
	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer cleanup()

	handlers := server.Handlers{
		Greeting: handler.NewGreetingHandler(),
		Lookup:   handler.NewLookupHandler(deps.Lookup, a.logger),
		Diag:     handler.NewDiagHandler(deps.Probe),
	}

	var hub *ws.Hub
	if a.cfg.Stream.Enabled {
		hub = ws.NewHub(deps.Synth, a.cfg.Stream.Interval.Duration, a.logger)
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}, handlers, hub, a.logger)

	g, ctx := errgroup.WithContext(ctx)

	if hub != nil {
		g.Go(func() error {
			return hub.Run(ctx)
		})
	}

	g.Go(srv.Start)

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
