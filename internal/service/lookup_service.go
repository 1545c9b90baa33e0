// Package service implements the application-level operations exposed over
// HTTP.
package service

import (
	"context"
	"log/slog"

	"github.com/energyinsights/backend/internal/catalog"
	"github.com/energyinsights/backend/internal/domain"
	"github.com/energyinsights/backend/internal/synth"
)

// LookupService filters the benchmark catalog by a search term and enriches
// every match with a synthetic price snapshot.
type LookupService struct {
	synth  *synth.Synthesizer
	logger *slog.Logger
}

// NewLookupService creates a LookupService with the given synthesizer and
// logger.
func NewLookupService(s *synth.Synthesizer, logger *slog.Logger) *LookupService {
	return &LookupService{
		synth:  s,
		logger: logger,
	}
}

// Lookup normalizes the query, filters the catalog, and synthesizes one
// snapshot per match. It never fails: an empty or absent query returns the
// full catalog, an unmatched query returns an empty result set. Results are
// in catalog order.
func (s *LookupService) Lookup(ctx context.Context, query string) domain.LookupResult {
	term := catalog.Normalize(query)

	matches := catalog.Search(term)
	results := make([]domain.BenchmarkResult, 0, len(matches))
	for _, b := range matches {
		results = append(results, domain.BenchmarkResult{
			Benchmark: b,
			Snapshot:  s.synth.Snapshot(b.ID),
		})
	}

	s.logger.DebugContext(ctx, "lookup_service: lookup",
		slog.String("query", term),
		slog.Int("count", len(results)),
	)

	return domain.LookupResult{
		Query:   term,
		Count:   len(results),
		Results: results,
	}
}
