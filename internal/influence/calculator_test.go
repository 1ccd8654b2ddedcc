package influence

import (
	"math"
	"testing"

	"curia/internal/favor"
	"curia/internal/model"
)

func testCalc() (*Calculator, *favor.Ledger) {
	cfg := model.DefaultConfig()
	l := favor.New(cfg.Favors)
	return New(cfg.Influence, l), l
}

func testRoster() []model.Senator {
	return []model.Senator{
		{ID: "cato", Faction: "Optimates"},
		{ID: "gracchus", Faction: "Populares"},
		{ID: "balbus", Faction: "Merchant"},
	}
}

func TestCalculator_EmptyAmendments(t *testing.T) {
	c, _ := testCalc()
	deltas := c.Compute(nil, testRoster())
	if len(deltas) != 0 {
		t.Errorf("Expected empty deltas, got %v", deltas)
	}
}

func TestCalculator_ProposerBonus(t *testing.T) {
	c, _ := testCalc()

	// Neutral support everywhere isolates the proposer bonus.
	am := model.Amendment{
		ProposerID:      "cato",
		ProposerFaction: "Optimates",
		Support:         map[string]float64{"Optimates": 0.5, "Populares": 0.5, "Merchant": 0.5},
	}

	deltas := c.Compute([]model.Amendment{am}, testRoster())
	if math.Abs(deltas["cato"]-0.3) > 1e-9 {
		t.Errorf("Expected proposer delta 0.3, got %v", deltas["cato"])
	}
	if deltas["gracchus"] != 0 {
		t.Errorf("Expected zero delta at neutral support, got %v", deltas["gracchus"])
	}
}

func TestCalculator_SupportTermMapping(t *testing.T) {
	c, _ := testCalc()

	tests := []struct {
		support float64
		want    float64
	}{
		{1.0, 0.2},
		{0.75, 0.1},
		{0.5, 0.0},
		{0.25, -0.1},
		{0.0, -0.2},
	}
	for _, tt := range tests {
		am := model.Amendment{
			ProposerID:      "cato",
			ProposerFaction: "Optimates",
			Support:         map[string]float64{"Populares": tt.support},
		}
		deltas := c.Compute([]model.Amendment{am}, testRoster())
		if math.Abs(deltas["gracchus"]-tt.want) > 1e-9 {
			t.Errorf("support %v: expected %v, got %v", tt.support, tt.want, deltas["gracchus"])
		}
	}
}

func TestCalculator_FavorTerm(t *testing.T) {
	c, l := testCalc()
	l.Credit("balbus", "cato", 0.8)

	am := model.Amendment{
		ProposerID:      "cato",
		ProposerFaction: "Optimates",
		Support:         map[string]float64{"Merchant": 0.5},
	}

	deltas := c.Compute([]model.Amendment{am}, testRoster())
	want := 0.25 * 0.8
	if math.Abs(deltas["balbus"]-want) > 1e-9 {
		t.Errorf("Expected favor term %v, got %v", want, deltas["balbus"])
	}
	// Debt running the other way contributes nothing.
	if deltas["gracchus"] != 0 {
		t.Errorf("Expected no favor term without debt, got %v", deltas["gracchus"])
	}
}

func TestCalculator_AccumulatesThenClamps(t *testing.T) {
	c, _ := testCalc()

	// Three amendments by the same proposer with full own-faction support:
	// 3 * (0.3 + 0.2) = 1.5 before the clamp.
	am := model.Amendment{
		ProposerID:      "cato",
		ProposerFaction: "Optimates",
		Support:         map[string]float64{"Optimates": 1.0, "Populares": 0.0},
	}
	amendments := []model.Amendment{am, am, am}

	deltas := c.Compute(amendments, testRoster())
	if deltas["cato"] != 0.5 {
		t.Errorf("Expected clamp at +0.5, got %v", deltas["cato"])
	}
	// gracchus: 3 * -0.2 = -0.6, clamped to -0.5.
	if deltas["gracchus"] != -0.5 {
		t.Errorf("Expected clamp at -0.5, got %v", deltas["gracchus"])
	}
}

func TestCalculator_BoundsAlways(t *testing.T) {
	c, l := testCalc()
	l.Credit("balbus", "cato", 1.0)

	var amendments []model.Amendment
	for i := 0; i < 10; i++ {
		amendments = append(amendments, model.Amendment{
			ProposerID:      "cato",
			ProposerFaction: "Optimates",
			Support:         map[string]float64{"Optimates": 1.0, "Populares": 0.0, "Merchant": 1.0},
		})
	}

	deltas := c.Compute(amendments, testRoster())
	for id, d := range deltas {
		if d < -0.5 || d > 0.5 {
			t.Errorf("Delta for %s out of [-0.5,0.5]: %v", id, d)
		}
	}
}
