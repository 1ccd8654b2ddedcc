// Package amendment generates proposal amendments and scores per-faction
// support for them.
package amendment

import (
	"fmt"
	"math/rand"
	"sort"

	"curia/internal/model"
	"curia/internal/relation"
)

// Engine turns negotiation context into amendments. The random source is
// injected for deterministic replay.
type Engine struct {
	cfg   *model.Config
	graph *relation.Graph
	rng   *rand.Rand
}

// New creates an amendment engine.
func New(cfg *model.Config, graph *relation.Graph, rng *rand.Rand) *Engine {
	return &Engine{cfg: cfg, graph: graph, rng: rng}
}

// rationales maps each intent to its proposal wording. Text is flavor;
// only the intent tag carries simulation meaning.
var rationales = map[model.AmendmentIntent]string{
	model.IntentStrengthenWithBenefits:  "the measure should pass, and its benefits be extended to deserving allies",
	model.IntentStrengthenBroadly:       "the measure should be strengthened and made binding in every province",
	model.IntentClarifySupportively:     "the measure is sound but its wording must be clarified before the vote",
	model.IntentRedirectBenefits:        "the measure is acceptable if its allocations are redirected to worthier hands",
	model.IntentWeakenSubstantially:     "the measure overreaches and must be cut back before it can stand",
	model.IntentLimitScope:              "the measure should apply only within narrow, enumerated limits",
	model.IntentInsertUnrelatedBenefits: "the measure should carry additional provisions of unrelated but urgent merit",
	model.IntentModerateCompromise:      "both sides should accept a middle course amendment",
}

// Generate produces exactly one amendment for the senator on the topic.
// Whether a senator proposes at all is the caller's decision; this call
// never declines. Intent is drawn from the proposer's stance bucket, with
// corruption biasing toward self-serving intents. Support is scored for
// every faction with a declared stance.
func (e *Engine) Generate(senator model.Senator, topic string, stances model.FactionStances) model.Amendment {
	intent := e.drawIntent(stances.Get(senator.Faction), senator.Corruption)

	am := model.Amendment{
		ProposerID:      senator.ID,
		ProposerFaction: senator.Faction,
		Topic:           topic,
		Intent:          intent,
		Rationale:       fmt.Sprintf("%s proposes that %s", senator.Name, rationales[intent]),
		Support:         make(map[string]float64, len(stances)),
	}

	factions := make([]string, 0, len(stances))
	for f := range stances {
		factions = append(factions, f)
	}
	sort.Strings(factions)
	for _, f := range factions {
		am.Support[f] = e.ComputeFactionSupport(am, f, stances)
	}
	return am
}

// drawIntent picks from the stance-appropriate intent bucket; corruption
// adds weight to the self-serving intents regardless of stance.
func (e *Engine) drawIntent(stance model.Stance, corr float64) model.AmendmentIntent {
	weights := make(map[model.AmendmentIntent]float64)
	switch stance {
	case model.StanceSupport:
		weights[model.IntentStrengthenWithBenefits] = 1
		weights[model.IntentStrengthenBroadly] = 1
		weights[model.IntentClarifySupportively] = 1
	case model.StanceOppose:
		weights[model.IntentWeakenSubstantially] = 1
		weights[model.IntentLimitScope] = 1
		weights[model.IntentRedirectBenefits] = 1
	default:
		weights[model.IntentModerateCompromise] = 1
		weights[model.IntentClarifySupportively] = 0.7
		weights[model.IntentLimitScope] = 0.7
	}
	weights[model.IntentRedirectBenefits] += e.cfg.Amendments.SelfServingBias * corr
	weights[model.IntentInsertUnrelatedBenefits] += e.cfg.Amendments.SelfServingBias * corr

	total := 0.0
	for _, i := range model.AllIntents {
		total += weights[i]
	}
	r := e.rng.Float64() * total
	for _, i := range model.AllIntents {
		if weights[i] <= 0 {
			continue
		}
		r -= weights[i]
		if r <= 0 {
			return i
		}
	}
	return model.IntentModerateCompromise
}

// ComputeFactionSupport scores one faction's support for an amendment in
// [0,1]. Neutral is 0.5, adjusted by the faction's relation to the
// proposer's faction, by whether the intent matches the faction's existing
// disposition, and by a corruption-correlated boost for corrupt factions
// backing self-serving intents.
func (e *Engine) ComputeFactionSupport(am model.Amendment, faction string, stances model.FactionStances) float64 {
	cfg := e.cfg.Amendments

	support := 0.5
	support += cfg.RelationWeight * e.graph.Get(faction, am.ProposerFaction)

	stance := stances.Get(faction)
	direction := am.Intent.Direction()
	switch {
	case direction == stance:
		support += cfg.AlignBonus
	case opposed(direction, stance):
		support -= cfg.AlignBonus
	}

	if am.Intent.SelfServing() && e.factionCorruptionMid(faction) > cfg.CorruptThreshold {
		support += cfg.CorruptBoost
	}

	return model.Clamp01(support)
}

// opposed reports whether two stances are on opposite poles.
func opposed(a, b model.Stance) bool {
	return (a == model.StanceSupport && b == model.StanceOppose) ||
		(a == model.StanceOppose && b == model.StanceSupport)
}

// factionCorruptionMid returns the midpoint of a faction's corruption
// prior, the coarse "how corrupt is this bloc" measure used for support
// boosts.
func (e *Engine) factionCorruptionMid(faction string) float64 {
	r, ok := e.cfg.Factions.CorruptionRanges[faction]
	if !ok {
		r = e.cfg.Factions.DefaultRange
	}
	return (r.Min + r.Max) / 2
}

// GenerateFromOutcome derives zero or more amendments from a finished
// negotiation round: each initiator who secured an amendment-support deal
// may table one amendment, gated by an influence-weighted draw. This is
// where the "may produce nothing" gating lives; Generate itself always
// produces.
func (e *Engine) GenerateFromOutcome(outcome *model.NegotiationOutcome, roster []model.Senator, stances model.FactionStances) []model.Amendment {
	if outcome == nil {
		return nil
	}

	byID := make(map[string]model.Senator, len(roster))
	for _, s := range roster {
		byID[s.ID] = s
	}

	var amendments []model.Amendment
	proposed := make(map[string]bool)
	for _, m := range outcome.Meetings {
		if !m.Success || m.Deal != model.DealAmendmentSupport || proposed[m.InitiatorID] {
			continue
		}
		proposer, ok := byID[m.InitiatorID]
		if !ok {
			continue
		}
		proposed[m.InitiatorID] = true

		chance := e.cfg.Amendments.ProposalBase + e.cfg.Amendments.ProposalInfluence*proposer.Influence
		if e.rng.Float64() < chance {
			amendments = append(amendments, e.Generate(proposer, outcome.Topic, stances))
		}
	}
	return amendments
}
