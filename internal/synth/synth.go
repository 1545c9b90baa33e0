// Package synth generates synthetic price snapshots for oil benchmarks.
// Every snapshot is derived from a fresh pseudo-random generator seeded
// solely by the benchmark id, so the numeric draws for a given id are
// reproducible within a build while the reported update time tracks the
// injected clock.
package synth

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/energyinsights/backend/internal/domain"
)

// basePrices maps known benchmark ids to their anchor price in USD/bbl.
var basePrices = map[string]float64{
	"brent": 84.2,
	"wti":   80.1,
	"opec":  82.7,
	"urals": 71.9,
	"dubai": 78.3,
}

// defaultBasePrice anchors snapshots for ids outside the known table.
const defaultBasePrice = 79.0

const (
	noiseBound  = 1.2
	changeBound = 2.0
	minOffsetM  = 1
	maxOffsetM  = 45
)

// updatedAtLayout renders a naive UTC timestamp (no zone designator). The
// synthesizer appends a literal "Z" afterwards; keeping the layout zone-free
// is what makes the appended suffix well-formed.
const updatedAtLayout = "2006-01-02T15:04:05.000000"

// Synthesizer produces price snapshots from a seeded generator and a clock.
type Synthesizer struct {
	newRand domain.RandFactory
	clock   domain.Clock
}

// New creates a Synthesizer with explicit capabilities. Tests use this to
// pin both the generator and the wall clock.
func New(factory domain.RandFactory, clock domain.Clock) *Synthesizer {
	return &Synthesizer{
		newRand: factory,
		clock:   clock,
	}
}

// Default returns a Synthesizer backed by the PCG factory and the system
// clock.
func Default() *Synthesizer {
	return New(PCGFactory(), time.Now)
}

// Snapshot derives a price snapshot for the given seed. Any string is a
// valid seed, including ids not present in the catalog; unknown ids fall
// back to the default base price. The draw order (noise, change, minute
// offset) is fixed and must not change.
func (s *Synthesizer) Snapshot(seed string) domain.PriceSnapshot {
	rnd := s.newRand(seed)

	base, ok := basePrices[seed]
	if !ok {
		base = defaultBasePrice
	}

	noise := rnd.Uniform(-noiseBound, noiseBound)
	price := round2(base + noise)

	change := round2(rnd.Uniform(-changeBound, changeBound))

	// Guard the denominator away from zero and negative values.
	percent := round2(change / math.Max(price-change, 1e-6) * 100)

	offset := rnd.IntBetween(minOffsetM, maxOffsetM)
	updatedAt := s.clock().UTC().Add(-time.Duration(offset) * time.Minute)

	return domain.PriceSnapshot{
		Symbol:        strings.ToUpper(seed),
		Price:         price,
		Change:        change,
		PercentChange: percent,
		Currency:      "USD",
		Unit:          "bbl",
		UpdatedAt:     updatedAt.Format(updatedAtLayout) + "Z",
	}
}

// BasePrice returns the anchor price used for the given seed.
func BasePrice(seed string) float64 {
	if base, ok := basePrices[seed]; ok {
		return base
	}
	return defaultBasePrice
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pcgRand adapts math/rand/v2's PCG generator to domain.Rand.
type pcgRand struct {
	r *rand.Rand
}

// PCGFactory returns the default generator factory: a PCG instance seeded
// with the FNV-1a 64-bit hash of the seed string. A fresh instance is built
// per snapshot, so the draw sequence for a given seed never drifts with
// call history.
func PCGFactory() domain.RandFactory {
	return func(seed string) domain.Rand {
		h := fnv.New64a()
		h.Write([]byte(seed))
		sum := h.Sum64()
		return &pcgRand{r: rand.New(rand.NewPCG(sum, sum<<1|1))}
	}
}

func (p *pcgRand) Uniform(low, high float64) float64 {
	return low + p.r.Float64()*(high-low)
}

func (p *pcgRand) IntBetween(low, high int) int {
	return low + p.r.IntN(high-low+1)
}

var _ domain.Rand = (*pcgRand)(nil)
