// Package catalog holds the fixed set of oil price benchmarks the backend
// can search over. The catalog is built at startup and never mutated.
package catalog

import (
	"strings"

	"github.com/energyinsights/backend/internal/domain"
)

// benchmarks is the catalog in its fixed serving order.
var benchmarks = []domain.Benchmark{
	{ID: "brent", Name: "Brent Crude", Region: "North Sea", Unit: "USD/bbl"},
	{ID: "wti", Name: "WTI Crude", Region: "United States", Unit: "USD/bbl"},
	{ID: "opec", Name: "OPEC Basket", Region: "OPEC Members", Unit: "USD/bbl"},
	{ID: "urals", Name: "Urals", Region: "Russia", Unit: "USD/bbl"},
	{ID: "dubai", Name: "Dubai/Oman", Region: "Middle East", Unit: "USD/bbl"},
}

// blobs are the lowercase "id name region" search texts, index-aligned with
// benchmarks.
var blobs = buildBlobs()

func buildBlobs() []string {
	out := make([]string, len(benchmarks))
	for i, b := range benchmarks {
		out[i] = strings.ToLower(b.ID + " " + b.Name + " " + b.Region)
	}
	return out
}

// All returns every benchmark in catalog order. The returned slice is a copy;
// callers may not mutate the catalog through it.
func All() []domain.Benchmark {
	out := make([]domain.Benchmark, len(benchmarks))
	copy(out, benchmarks)
	return out
}

// Search returns the benchmarks whose search text contains term, in catalog
// order. The term is trimmed and lowercased first; an empty term matches
// everything. Search cannot fail.
func Search(term string) []domain.Benchmark {
	term = Normalize(term)

	out := make([]domain.Benchmark, 0, len(benchmarks))
	for i, b := range benchmarks {
		if term == "" || strings.Contains(blobs[i], term) {
			out = append(out, b)
		}
	}
	return out
}

// Normalize applies the query normalization used by Search: surrounding
// whitespace is trimmed and the remainder lowercased.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
