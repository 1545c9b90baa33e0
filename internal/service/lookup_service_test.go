package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/energyinsights/backend/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *LookupService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := synth.New(synth.PCGFactory(), func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	})
	return NewLookupService(s, logger)
}

func TestLookupEmptyQueryReturnsFullCatalog(t *testing.T) {
	svc := newTestService()

	result := svc.Lookup(context.Background(), "")

	assert.Equal(t, "", result.Query)
	assert.Equal(t, 5, result.Count)
	require.Len(t, result.Results, 5)
}

func TestLookupCountMatchesResults(t *testing.T) {
	svc := newTestService()

	for _, q := range []string{"", "brent", "crude", "middle", "nonexistent-xyz", "  WTI  "} {
		result := svc.Lookup(context.Background(), q)
		assert.Equal(t, result.Count, len(result.Results), "query %q", q)
	}
}

func TestLookupNormalizesQuery(t *testing.T) {
	svc := newTestService()

	result := svc.Lookup(context.Background(), "  BRENT ")

	assert.Equal(t, "brent", result.Query)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "brent", result.Results[0].ID)
}

func TestLookupAttachesSnapshots(t *testing.T) {
	svc := newTestService()

	result := svc.Lookup(context.Background(), "crude")

	require.Equal(t, 2, result.Count)
	assert.Equal(t, "BRENT", result.Results[0].Snapshot.Symbol)
	assert.Equal(t, "WTI", result.Results[1].Snapshot.Symbol)
	for _, r := range result.Results {
		assert.NotZero(t, r.Snapshot.Price)
		assert.Equal(t, "USD", r.Snapshot.Currency)
	}
}

func TestLookupNoMatchReturnsEmptySlice(t *testing.T) {
	svc := newTestService()

	result := svc.Lookup(context.Background(), "nonexistent-xyz")

	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Results)
	assert.Empty(t, result.Results)
}
