// Package influence reconciles amendments and favor debts into bounded
// per-senator vote-probability deltas.
package influence

import (
	"curia/internal/favor"
	"curia/internal/model"
)

// Calculator computes voting-influence deltas. The ledger is read-only
// here; calling in favors is the negotiation engine's business.
type Calculator struct {
	cfg    model.InfluenceConfig
	ledger *favor.Ledger
}

// New creates a calculator.
func New(cfg model.InfluenceConfig, ledger *favor.Ledger) *Calculator {
	return &Calculator{cfg: cfg, ledger: ledger}
}

// Compute assembles one delta per senator from every amendment: a flat
// proposer bonus, a faction-support term mapped from [0,1] onto
// [-span,+span] (0.5 support means no effect), and a favor term for
// senators indebted to the proposer. Amendments accumulate additively;
// the final delta is clamped so no single round can make a vote fully
// deterministic. An empty amendment list yields an empty map.
func (c *Calculator) Compute(amendments []model.Amendment, roster []model.Senator) map[string]float64 {
	deltas := make(map[string]float64)
	if len(amendments) == 0 {
		return deltas
	}

	for _, am := range amendments {
		for _, s := range roster {
			d := 0.0
			if s.ID == am.ProposerID {
				d += c.cfg.ProposerBonus
			}
			if support, ok := am.Support[s.Faction]; ok {
				d += (support - 0.5) * 2 * c.cfg.SupportSpan
			}
			if owed := c.ledger.Balance(s.ID, am.ProposerID); owed > 0 {
				d += c.cfg.FavorWeight * owed
			}
			deltas[s.ID] += d
		}
	}

	for id, d := range deltas {
		deltas[id] = model.Clamp(d, -c.cfg.MaxDelta, c.cfg.MaxDelta)
	}
	return deltas
}
