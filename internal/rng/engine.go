// Package rng provides the seeded random engine shared by every dataset
// generator. All draws are reproducible for a fixed seed and call sequence,
// which is what makes whole generation runs replayable from a single seed.
package rng

import (
	"math/rand"
	"time"
)

// Engine is a seeded pseudo-random source supplying bounded draws.
// It is not safe for concurrent use; each generation run owns its own Engine.
type Engine struct {
	r *rand.Rand
}

// New creates an engine seeded with the given value.
func New(seed int64) *Engine {
	return &Engine{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a float64 drawn uniformly from [low, high).
// Panics if low > high; ranges are validated at config load, before any
// generator runs (mirrors the math/rand.Intn precondition style).
func (e *Engine) Uniform(low, high float64) float64 {
	if low > high {
		panic("rng: Uniform called with low > high")
	}
	return low + e.r.Float64()*(high-low)
}

// UniformInt returns an int drawn uniformly from [low, high].
func (e *Engine) UniformInt(low, high int) int {
	if low > high {
		panic("rng: UniformInt called with low > high")
	}
	if low == high {
		return low
	}
	return low + e.r.Intn(high-low+1)
}

// Bool returns true with the given probability.
func (e *Engine) Bool(probability float64) bool {
	return e.r.Float64() < probability
}

// WeekendBoost multiplies base by factor when date falls on Saturday or
// Sunday, and returns it unchanged otherwise.
func (e *Engine) WeekendBoost(base float64, date time.Time, factor float64) float64 {
	if IsWeekend(date) {
		return base * factor
	}
	return base
}

// IsWeekend reports whether date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
