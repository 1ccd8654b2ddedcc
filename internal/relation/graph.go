// Package relation stores the symmetric faction relation matrix.
package relation

import (
	"sort"
	"strings"

	"curia/internal/model"
)

// Graph is a sparse symmetric relation matrix between named factions.
// Values are clamped to [-1,1]. Unknown cross-faction pairs read as neutral
// (0.0); a faction read against itself reads as fully aligned (1.0) unless
// explicitly overridden. Never errors on unknown names.
type Graph struct {
	relations map[string]float64
}

// New creates an empty relation graph.
func New() *Graph {
	return &Graph{relations: make(map[string]float64)}
}

// FromPriors creates a graph seeded from configured priors.
func FromPriors(priors []model.RelationPrior) *Graph {
	g := New()
	for _, p := range priors {
		g.Set(p.FactionA, p.FactionB, p.Value)
	}
	return g
}

// pairKey builds the canonical key for an unordered faction pair.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// Get returns the relation between two factions.
func (g *Graph) Get(a, b string) float64 {
	if v, ok := g.relations[pairKey(a, b)]; ok {
		return v
	}
	if a == b {
		return 1.0
	}
	return 0.0
}

// Set stores a relation value, clamped to [-1,1]. Used for seeding.
func (g *Graph) Set(a, b string, v float64) {
	g.relations[pairKey(a, b)] = model.Clamp(v, -1, 1)
}

// Adjust shifts a relation by delta, clamping the result to [-1,1].
func (g *Graph) Adjust(a, b string, delta float64) {
	g.relations[pairKey(a, b)] = model.Clamp(g.Get(a, b)+delta, -1, 1)
}

// Decay pulls every stored relation toward 0 by the given factor in [0,1].
// Decay is an explicit policy invoked by the owning caller between rounds;
// deals never trigger it implicitly.
func (g *Graph) Decay(factor float64) {
	factor = model.Clamp01(factor)
	for k, v := range g.relations {
		g.relations[k] = v * (1 - factor)
	}
}

// ApplyEraBias applies every configured adjustment whose year window
// contains the given year. Year thresholds are configuration data.
func (g *Graph) ApplyEraBias(year int, adjustments []model.EraAdjustment) {
	for _, adj := range adjustments {
		if year >= adj.FromYear && year <= adj.ToYear {
			g.Adjust(adj.FactionA, adj.FactionB, adj.Delta)
		}
	}
}

// Export returns the matrix as a plain map keyed "A|B" (names sorted),
// suitable for external persistence.
func (g *Graph) Export() map[string]float64 {
	out := make(map[string]float64, len(g.relations))
	for k, v := range g.relations {
		out[k] = v
	}
	return out
}

// Import loads a previously exported matrix, replacing current contents.
// Keys are normalized and values re-clamped, so hand-edited state files
// cannot smuggle out-of-range values in.
func (g *Graph) Import(m map[string]float64) {
	g.relations = make(map[string]float64, len(m))
	for k, v := range m {
		parts := strings.SplitN(k, "|", 2)
		if len(parts) != 2 {
			continue
		}
		g.Set(parts[0], parts[1], v)
	}
}

// Pairs returns every stored pair key in sorted order. Used for stable
// display and tests.
func (g *Graph) Pairs() []string {
	keys := make([]string, 0, len(g.relations))
	for k := range g.relations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
