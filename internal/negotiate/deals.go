package negotiate

import (
	"fmt"
	"math/rand"

	"curia/internal/model"
)

// arbitrateInitiator runs every meeting of one initiator against its
// deterministic sub-RNG. This phase only reads the graph and ledger;
// effects are deferred to pendingMeeting application.
func (e *Engine) arbitrateInitiator(roster []model.Senator, initiatorIdx int, category model.TopicCategory, stances model.FactionStances) []pendingMeeting {
	initiator := roster[initiatorIdx]
	rng := e.initiatorRNG(initiator.ID)
	budget := e.meetingBudget(initiator.Influence)

	met := make(map[int]bool)
	var pendings []pendingMeeting
	for m := 0; m < budget; m++ {
		targetIdx := e.pickTarget(roster, initiatorIdx, met, rng)
		if targetIdx < 0 {
			break
		}
		met[targetIdx] = true
		target := roster[targetIdx]

		p := pendingMeeting{
			initiatorIdx: initiatorIdx,
			avgCorr:      (initiator.Corruption + target.Corruption) / 2,
			effectSeed:   int64(rng.Uint64()),
			record: model.MeetingRecord{
				InitiatorID: initiator.ID,
				TargetID:    target.ID,
				SameFaction: initiator.Faction == target.Faction,
			},
		}

		chance := e.agreementChance(initiator, target, stances, p.avgCorr)
		if rng.Float64() < chance {
			p.record.Success = true
			p.record.Deal = e.drawDealType(initiator, target, category, p.avgCorr, rng)
		}
		pendings = append(pendings, p)
	}
	return pendings
}

// agreementChance combines stance alignment, average pair corruption, the
// faction relation, and any favor debt the target owes the initiator.
func (e *Engine) agreementChance(initiator, target model.Senator, stances model.FactionStances, avgCorr float64) float64 {
	cfg := e.cfg.Negotiation

	chance := cfg.AgreeBase
	if stances.Get(initiator.Faction) == stances.Get(target.Faction) {
		chance += cfg.StanceAlignBonus
	}
	chance += cfg.CorruptionWeight * avgCorr
	chance += cfg.AgreeRelationWeight * e.graph.Get(initiator.Faction, target.Faction)
	chance += cfg.AgreeFavorWeight * e.ledger.Balance(target.ID, initiator.ID)

	return model.Clamp(chance, cfg.AgreeFloor, cfg.AgreeCeiling)
}

// drawDealType picks from the closed five-member deal set, weighted by
// topic category and corruption. Resource allocation scales hardest with
// corruption; amendment support is boosted when a stakeholder faction is at
// the table.
func (e *Engine) drawDealType(initiator, target model.Senator, category model.TopicCategory, avgCorr float64, rng *rand.Rand) model.DealType {
	stakeholder := false
	for _, f := range e.cfg.Factions.Stakeholders[category] {
		if f == initiator.Faction || f == target.Faction {
			stakeholder = true
			break
		}
	}

	weights := map[model.DealType]float64{
		model.DealVoteExchange:        1.0,
		model.DealAmendmentSupport:    1.0,
		model.DealSpeakingOpportunity: 0.5 + 0.5*initiator.Eloquence,
		model.DealFavorExchange:       0.8 + avgCorr,
		model.DealResourceAllocation:  0.4 + 1.2*avgCorr,
	}
	if stakeholder {
		weights[model.DealAmendmentSupport] += 0.5
	}

	total := 0.0
	for _, t := range model.AllDealTypes {
		total += weights[t]
	}
	r := rng.Float64() * total
	for _, t := range model.AllDealTypes {
		r -= weights[t]
		if r <= 0 {
			return t
		}
	}
	return model.AllDealTypes[len(model.AllDealTypes)-1]
}

// applyEffects applies one arbitrated meeting's side effects to the ledger
// and relation graph. Called in initiator order after all arbitration, so
// serial and parallel rounds mutate identically.
func (e *Engine) applyEffects(p *pendingMeeting, roster []model.Senator) {
	if !p.record.Success {
		return
	}
	rng := rand.New(rand.NewSource(p.effectSeed))
	initiator := senatorByID(roster, p.record.InitiatorID)
	target := senatorByID(roster, p.record.TargetID)

	switch p.record.Deal {
	case model.DealVoteExchange:
		p.record.Commitment = fmt.Sprintf("%s pledges to vote with %s", target.ID, initiator.ID)

	case model.DealAmendmentSupport:
		p.record.Commitment = fmt.Sprintf("%s pledges support for an amendment by %s", target.ID, initiator.ID)

	case model.DealSpeakingOpportunity:
		p.record.Commitment = fmt.Sprintf("%s yields speaking time to %s", initiator.ID, target.ID)

	case model.DealFavorExchange:
		rel := e.graph.Get(initiator.Faction, target.Faction)
		if owed := e.ledger.Balance(target.ID, initiator.ID); owed > 0 {
			// Call the standing favor in.
			res := e.ledger.Resolve(target.ID, initiator.ID, target.Loyalty, rel, rng)
			if res.Honored {
				p.record.FavorDelta = res.Remaining - owed
			} else if res.RelationPenalty > 0 && initiator.Faction != target.Faction {
				e.graph.Adjust(initiator.Faction, target.Faction, -res.RelationPenalty)
				p.record.AllianceDelta -= res.RelationPenalty
			}
			p.record.Commitment = fmt.Sprintf("%s calls in a favor from %s", initiator.ID, target.ID)
		} else {
			// Grant a benefit; the target now owes the initiator.
			intensity := e.cfg.Favors.ExchangeMin + e.cfg.Favors.ExchangeSpread*rng.Float64()
			e.ledger.Credit(target.ID, initiator.ID, intensity)
			p.record.FavorDelta = intensity
			p.record.Commitment = fmt.Sprintf("%s now owes %s", target.ID, initiator.ID)
		}

	case model.DealResourceAllocation:
		p.record.Commitment = fmt.Sprintf("%s steers resources toward %s", initiator.ID, target.ID)
		// Corrupt pairs tend to seal the allocation with an obligation.
		if rng.Float64() < p.avgCorr {
			e.ledger.Credit(target.ID, initiator.ID, e.cfg.Favors.ResourceIntensity)
			p.record.FavorDelta += e.cfg.Favors.ResourceIntensity
		}
	}

	// Any successful deal may also seed an alliance between the factions.
	if initiator.Faction != target.Faction && rng.Float64() < e.cfg.Negotiation.AllianceChance {
		e.graph.Adjust(initiator.Faction, target.Faction, e.cfg.Negotiation.AllianceDelta)
		p.record.AllianceDelta += e.cfg.Negotiation.AllianceDelta
	}
}

// senatorByID resolves a roster member; ids inside a round always exist.
func senatorByID(roster []model.Senator, id string) model.Senator {
	for i := range roster {
		if roster[i].ID == id {
			return roster[i]
		}
	}
	return model.Senator{ID: id}
}
