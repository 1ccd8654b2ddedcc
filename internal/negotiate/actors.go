package negotiate

import (
	"math"
	"math/rand"
	"sort"

	"curia/internal/model"
)

// SelectActors returns roster indexes of the senators who will initiate
// meetings: the top quarter of attendees by influence, plus every attendee
// whose faction is a stakeholder for the topic category. Ties break by
// roster order and the result preserves roster order, so selection is
// stable across runs.
func (e *Engine) SelectActors(roster []model.Senator, category model.TopicCategory) []int {
	selected := make(map[int]bool)

	// Influence rank. Stable sort keeps roster order on equal scores.
	byInfluence := make([]int, len(roster))
	for i := range byInfluence {
		byInfluence[i] = i
	}
	sort.SliceStable(byInfluence, func(a, b int) bool {
		return roster[byInfluence[a]].Influence > roster[byInfluence[b]].Influence
	})
	top := int(math.Ceil(float64(len(roster)) * e.cfg.Negotiation.ActorFraction))
	if top < 1 {
		top = 1
	}
	for _, idx := range byInfluence[:top] {
		selected[idx] = true
	}

	// Stakeholder factions for the category. Unknown categories have none.
	stakeholders := make(map[string]bool)
	for _, f := range e.cfg.Factions.Stakeholders[category] {
		stakeholders[f] = true
	}
	for i, s := range roster {
		if stakeholders[s.Faction] {
			selected[i] = true
		}
	}

	actors := make([]int, 0, len(selected))
	for i := range roster {
		if selected[i] {
			actors = append(actors, i)
		}
	}
	return actors
}

// meetingBudget maps influence onto the per-round meeting count, roughly
// 1 to MaxMeetings.
func (e *Engine) meetingBudget(influence float64) int {
	max := e.cfg.Negotiation.MaxMeetings
	if max < 1 {
		max = 1
	}
	budget := 1 + int(model.Clamp01(influence)*float64(max-1))
	if budget > max {
		budget = max
	}
	return budget
}

// targetWeight scores a candidate target for an initiator: a same-faction
// bonus, the faction relation (higher relation, higher weight), and any
// favor debt the candidate already owes the initiator (debtors are
// preferentially approached).
func (e *Engine) targetWeight(initiator, candidate model.Senator) float64 {
	cfg := e.cfg.Negotiation
	w := cfg.BaseTargetWeight
	if initiator.Faction == candidate.Faction {
		w += cfg.SameFactionBonus
	}
	rel := e.graph.Get(initiator.Faction, candidate.Faction)
	w += cfg.RelationWeight * (rel + 1) / 2
	w += cfg.DebtWeight * e.ledger.Balance(candidate.ID, initiator.ID)
	return w
}

// pickTarget draws a candidate index by weight. Candidates already met by
// this initiator this round are excluded by the caller. Returns -1 when no
// candidate has positive weight.
func (e *Engine) pickTarget(roster []model.Senator, initiatorIdx int, met map[int]bool, rng *rand.Rand) int {
	initiator := roster[initiatorIdx]

	total := 0.0
	weights := make([]float64, len(roster))
	for i := range roster {
		if i == initiatorIdx || met[i] {
			continue
		}
		weights[i] = e.targetWeight(initiator, roster[i])
		total += weights[i]
	}
	if total <= 0 {
		return -1
	}

	r := rng.Float64() * total
	for i := range roster {
		if weights[i] <= 0 {
			continue
		}
		r -= weights[i]
		if r <= 0 {
			return i
		}
	}
	// Float accumulation can land past the final bucket; take the last
	// weighted candidate.
	for i := len(roster) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
