package domain

import "time"

// Clock supplies the current time. The synthesizer takes one as a dependency
// so tests can pin the wall clock.
type Clock func() time.Time

// Rand is a seeded pseudo-random source. Draw order matters: the synthesizer
// relies on a fixed call sequence against a fresh instance per snapshot.
type Rand interface {
	// Uniform returns a uniformly distributed float64 in [low, high).
	Uniform(low, high float64) float64
	// IntBetween returns a uniformly distributed int in [low, high] inclusive.
	IntBetween(low, high int) int
}

// RandFactory builds a Rand whose output stream is fully determined by seed.
type RandFactory func(seed string) Rand
