// Package corruption samples per-senator corruption traits from per-faction
// priors.
package corruption

import (
	"math/rand"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"curia/internal/model"
)

// Model draws corruption traits uniformly from a faction-specific range.
// The random source is injected so tests can fix seeds. Per-senator draws
// are memoized for the life of the session: a senator is sampled at most
// once unless the trait is overridden externally.
type Model struct {
	ranges       map[string]model.CorruptionRange
	defaultRange model.CorruptionRange
	rng          *rand.Rand
	sampled      *gocache.Cache
}

// New creates a corruption model from configured faction ranges.
func New(cfg model.FactionConfig, rng *rand.Rand) *Model {
	return &Model{
		ranges:       cfg.CorruptionRanges,
		defaultRange: cfg.DefaultRange,
		rng:          rng,
		sampled:      gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Sample draws a corruption value in [0,1] for the given faction. Unknown
// factions use the default range.
func (m *Model) Sample(faction string) float64 {
	r, ok := m.ranges[faction]
	if !ok {
		r = m.defaultRange
	}
	lo := model.Clamp01(r.Min)
	hi := model.Clamp01(r.Max)
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + m.rng.Float64()*(hi-lo)
}

// SampleFor returns the memoized corruption trait for a senator, drawing it
// on first use. Repeat calls within a session return the first draw.
func (m *Model) SampleFor(senatorID, faction string) float64 {
	if v, found := m.sampled.Get(senatorID); found {
		return v.(float64)
	}
	v := m.Sample(faction)
	m.sampled.Set(senatorID, v, gocache.NoExpiration)
	return v
}

// Override replaces a senator's memoized trait, e.g. when the caller sets
// the trait explicitly after session start.
func (m *Model) Override(senatorID string, value float64) {
	m.sampled.Set(senatorID, model.Clamp01(value), gocache.NoExpiration)
}
