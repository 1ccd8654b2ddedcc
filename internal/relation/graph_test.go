package relation

import (
	"math"
	"testing"

	"curia/internal/model"
)

func TestGraph_GetDefaults(t *testing.T) {
	g := New()

	if v := g.Get("Optimates", "Populares"); v != 0.0 {
		t.Errorf("Expected unknown pair to read 0.0, got %v", v)
	}
	if v := g.Get("Optimates", "Optimates"); v != 1.0 {
		t.Errorf("Expected same-faction relation 1.0, got %v", v)
	}
	// Unknown faction names are tolerated, never panic.
	if v := g.Get("Nonexistent", "AlsoNonexistent"); v != 0.0 {
		t.Errorf("Expected unknown factions to read 0.0, got %v", v)
	}
}

func TestGraph_Symmetry(t *testing.T) {
	g := New()
	g.Set("Optimates", "Populares", -0.7)

	if g.Get("Optimates", "Populares") != g.Get("Populares", "Optimates") {
		t.Error("Expected symmetric lookup")
	}
}

func TestGraph_AdjustClamps(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		delta  float64
		expect float64
	}{
		{"clamp high", 0.9, 0.5, 1.0},
		{"clamp low", -0.9, -0.5, -1.0},
		{"no clamp", 0.1, 0.2, 0.3},
		{"repeated adjust stays bounded", 1.0, 5.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.Set("A", "B", tt.start)
			g.Adjust("A", "B", tt.delta)
			if v := g.Get("A", "B"); math.Abs(v-tt.expect) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expect, v)
			}
		})
	}
}

func TestGraph_Decay(t *testing.T) {
	g := New()
	g.Set("A", "B", 0.8)
	g.Set("C", "D", -0.4)

	g.Decay(0.5)

	if v := g.Get("A", "B"); math.Abs(v-0.4) > 1e-9 {
		t.Errorf("Expected 0.4 after decay, got %v", v)
	}
	if v := g.Get("C", "D"); math.Abs(v+0.2) > 1e-9 {
		t.Errorf("Expected -0.2 after decay, got %v", v)
	}

	// Full decay zeroes everything.
	g.Decay(1.0)
	if v := g.Get("A", "B"); v != 0 {
		t.Errorf("Expected 0 after full decay, got %v", v)
	}
}

func TestGraph_ApplyEraBias(t *testing.T) {
	adjustments := []model.EraAdjustment{
		{FromYear: -133, ToYear: -30, FactionA: "Optimates", FactionB: "Populares", Delta: -0.2},
		{FromYear: -107, ToYear: -30, FactionA: "Optimates", FactionB: "Military", Delta: -0.1},
	}

	g := New()
	g.Set("Optimates", "Populares", -0.5)
	g.Set("Optimates", "Military", 0.2)

	// 120 BC: only the Gracchan adjustment applies.
	g.ApplyEraBias(-120, adjustments)

	if v := g.Get("Optimates", "Populares"); math.Abs(v+0.7) > 1e-9 {
		t.Errorf("Expected -0.7, got %v", v)
	}
	if v := g.Get("Optimates", "Military"); math.Abs(v-0.2) > 1e-9 {
		t.Errorf("Expected Military pair untouched at 0.2, got %v", v)
	}
}

func TestGraph_ExportImportRoundTrip(t *testing.T) {
	g := FromPriors(model.DefaultConfig().Factions.RelationPriors)
	g.Adjust("Optimates", "Populares", -0.05)

	loaded := New()
	loaded.Import(g.Export())

	for _, key := range g.Pairs() {
		if loaded.Export()[key] != g.Export()[key] {
			t.Errorf("Round trip mismatch for %s", key)
		}
	}
	if loaded.Get("Optimates", "Populares") != g.Get("Optimates", "Populares") {
		t.Error("Expected identical Get results after round trip")
	}
}

func TestGraph_ImportNormalizesValues(t *testing.T) {
	g := New()
	g.Import(map[string]float64{
		"A|B":      3.0,  // out of range, must clamp
		"C|D":      -2.0, // out of range, must clamp
		"malformed": 0.5, // no separator, skipped
	})

	if v := g.Get("A", "B"); v != 1.0 {
		t.Errorf("Expected clamp to 1.0, got %v", v)
	}
	if v := g.Get("C", "D"); v != -1.0 {
		t.Errorf("Expected clamp to -1.0, got %v", v)
	}
	if len(g.Pairs()) != 2 {
		t.Errorf("Expected malformed key skipped, got %v", g.Pairs())
	}
}
