// Package favor tracks directed political favor debts between senators.
package favor

import (
	"math/rand"
	"sort"

	"curia/internal/model"
)

// Ledger is a sparse directed debt graph: debtor id -> benefactor id ->
// intensity in [0,1]. Multiple favors from one debtor accumulate per
// benefactor, capped at 1.0. Favors persist across rounds until exhausted
// or forgiven. A senator never holds a debt to themselves.
type Ledger struct {
	cfg   model.FavorConfig
	debts map[string]map[string]float64
}

// Resolution is the outcome of calling in a favor.
type Resolution struct {
	Honored         bool    // debtor complied (fully or partially)
	Remaining       float64 // debt left standing after the call
	Counter         float64 // counter-obligation credited benefactor -> debtor
	RelationPenalty float64 // relation degradation the caller must apply on refusal
	Reason          string  // set on refusal
}

// New creates an empty ledger.
func New(cfg model.FavorConfig) *Ledger {
	return &Ledger{cfg: cfg, debts: make(map[string]map[string]float64)}
}

// Credit adds intensity to the debt debtor owes benefactor, clamped to 1.0.
// Self-debts and non-positive intensities are ignored.
func (l *Ledger) Credit(debtor, benefactor string, intensity float64) {
	if debtor == benefactor || intensity <= 0 {
		return
	}
	if l.debts[debtor] == nil {
		l.debts[debtor] = make(map[string]float64)
	}
	l.debts[debtor][benefactor] = model.Clamp01(l.debts[debtor][benefactor] + intensity)
}

// Balance returns the debt debtor owes benefactor, 0.0 if none.
func (l *Ledger) Balance(debtor, benefactor string) float64 {
	return l.debts[debtor][benefactor]
}

// Forgive erases any debt debtor owes benefactor.
func (l *Ledger) Forgive(debtor, benefactor string) {
	if m, ok := l.debts[debtor]; ok {
		delete(m, benefactor)
		if len(m) == 0 {
			delete(l.debts, debtor)
		}
	}
}

// OwedTo returns every debtor owing the given benefactor, sorted by id for
// stable iteration.
func (l *Ledger) OwedTo(benefactor string) []string {
	var debtors []string
	for debtor, m := range l.debts {
		if m[benefactor] > 0 {
			debtors = append(debtors, debtor)
		}
	}
	sort.Strings(debtors)
	return debtors
}

// Resolve calls in the favor debtor owes benefactor. Compliance probability
// is a function of the current balance, the debtor's loyalty trait, and the
// faction relation between the two senators. On compliance the debt is
// zeroed (or reduced to a configured remainder for partial compliance) and
// a weak counter-obligation may be created at reduced intensity. On refusal
// the returned RelationPenalty is the fixed degradation the caller applies
// to the pair's faction relation. A debtor with no recorded debt always
// refuses with reason "no favor owed" and no ledger mutation.
func (l *Ledger) Resolve(debtor, benefactor string, loyalty, relationship float64, rng *rand.Rand) Resolution {
	balance := l.Balance(debtor, benefactor)
	if balance <= 0 {
		return Resolution{Honored: false, Remaining: 0, Reason: "no favor owed"}
	}

	compliance := l.cfg.ComplianceBase +
		l.cfg.BalanceWeight*balance +
		l.cfg.LoyaltyWeight*model.Clamp01(loyalty) +
		l.cfg.RelationWeight*(model.Clamp(relationship, -1, 1)+1)/2
	compliance = model.Clamp01(compliance)

	if rng.Float64() >= compliance {
		return Resolution{
			Honored:         false,
			Remaining:       balance,
			RelationPenalty: l.cfg.RefusalPenalty,
			Reason:          "refused",
		}
	}

	res := Resolution{Honored: true}
	if rng.Float64() < l.cfg.PartialChance {
		res.Remaining = model.Clamp01(balance * l.cfg.PartialRemainder)
		l.debts[debtor][benefactor] = res.Remaining
		return res
	}

	l.Forgive(debtor, benefactor)
	if rng.Float64() < l.cfg.CounterChance {
		res.Counter = model.Clamp01(balance * l.cfg.CounterFraction)
		l.Credit(benefactor, debtor, res.Counter)
	}
	return res
}

// Export returns the ledger as plain nested maps for external persistence.
func (l *Ledger) Export() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(l.debts))
	for debtor, m := range l.debts {
		if len(m) == 0 {
			continue
		}
		out[debtor] = make(map[string]float64, len(m))
		for benefactor, v := range m {
			out[debtor][benefactor] = v
		}
	}
	return out
}

// Import loads a previously exported ledger, replacing current contents.
// Values are re-clamped and self-debts dropped on the way in.
func (l *Ledger) Import(m map[string]map[string]float64) {
	l.debts = make(map[string]map[string]float64, len(m))
	for debtor, debts := range m {
		for benefactor, v := range debts {
			l.Credit(debtor, benefactor, model.Clamp01(v))
		}
	}
}
