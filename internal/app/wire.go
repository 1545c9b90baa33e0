package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/energyinsights/backend/internal/cache/redis"
	"github.com/energyinsights/backend/internal/config"
	"github.com/energyinsights/backend/internal/diag"
	"github.com/energyinsights/backend/internal/service"
	"github.com/energyinsights/backend/internal/store/postgres"
	"github.com/energyinsights/backend/internal/synth"
)

// Dependencies bundles everything the HTTP surface needs to operate. It is
// constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Synth  *synth.Synthesizer
	Lookup *service.LookupService
	Probe  *diag.Probe
}

// Wire constructs all concrete dependencies from the given configuration and
// returns them together with a cleanup function that should be called on
// shutdown to release resources. Database and Redis are optional: when
// unconfigured, the probe reports them as such and nothing is connected.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	synthesizer := synth.Default()

	deps := &Dependencies{
		Synth:  synthesizer,
		Lookup: service.NewLookupService(synthesizer, logger),
	}

	// --- PostgreSQL (optional, probe-only) ---
	var db diag.Database
	if cfg.Database.Configured() {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)
		db = pgClient
	}

	// --- Redis (optional, probe-only) ---
	var cache diag.Cache
	if cfg.Redis.Configured() {
		redisClient := redis.New(redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
		cache = redisClient
	}

	deps.Probe = diag.NewProbe(
		db,
		cache,
		cfg.Database.Configured(),
		cfg.Database.Name != "",
		logger,
	)

	return deps, cleanup, nil
}
