// Package domain defines the core types shared across the Energy Insights
// backend: the benchmark catalog entries, the synthetic price snapshots
// derived from them, and the capability interfaces injected into the
// synthesizer and the diagnostic probe.
package domain

// Benchmark is a named oil price reference instrument. Catalog entries are
// immutable and created once at startup.
type Benchmark struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
	Unit   string `json:"unit"`
}

// PriceSnapshot is one synthetic point-in-time price record for a benchmark.
// Snapshots are derived fresh on every lookup and never stored.
type PriceSnapshot struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	Currency      string  `json:"currency"`
	Unit          string  `json:"unit"`
	// UpdatedAt is a naive UTC ISO-8601 string with a literal "Z" appended.
	// The suffix is appended unconditionally to match the upstream contract.
	UpdatedAt string `json:"updated_at"`
}

// BenchmarkResult pairs a catalog entry with its freshly synthesized snapshot.
type BenchmarkResult struct {
	Benchmark
	Snapshot PriceSnapshot `json:"snapshot"`
}

// LookupResult is the aggregate response of a catalog lookup. Results follow
// catalog order, not relevance order, and Count always equals len(Results).
type LookupResult struct {
	Query   string            `json:"query"`
	Count   int               `json:"count"`
	Results []BenchmarkResult `json:"results"`
}
