package model

// AmendmentIntent is the closed set of amendment intent categories.
type AmendmentIntent string

const (
	IntentStrengthenWithBenefits  AmendmentIntent = "strengthen-with-benefits"
	IntentStrengthenBroadly       AmendmentIntent = "strengthen-broadly"
	IntentClarifySupportively     AmendmentIntent = "clarify-supportively"
	IntentRedirectBenefits        AmendmentIntent = "redirect-benefits"
	IntentWeakenSubstantially     AmendmentIntent = "weaken-substantially"
	IntentLimitScope              AmendmentIntent = "limit-scope"
	IntentInsertUnrelatedBenefits AmendmentIntent = "insert-unrelated-benefits"
	IntentModerateCompromise      AmendmentIntent = "moderate-compromise"
)

// AllIntents lists every intent in stable order.
var AllIntents = []AmendmentIntent{
	IntentStrengthenWithBenefits,
	IntentStrengthenBroadly,
	IntentClarifySupportively,
	IntentRedirectBenefits,
	IntentWeakenSubstantially,
	IntentLimitScope,
	IntentInsertUnrelatedBenefits,
	IntentModerateCompromise,
}

// SelfServing reports whether the intent redirects the proposal's benefits
// toward the proposer. Corrupt senators lean toward these.
func (i AmendmentIntent) SelfServing() bool {
	return i == IntentRedirectBenefits || i == IntentInsertUnrelatedBenefits
}

// Direction maps the intent onto the stance axis: intents that strengthen
// the proposal align with supporters, intents that weaken it align with
// opponents, the rest read as neutral.
func (i AmendmentIntent) Direction() Stance {
	switch i {
	case IntentStrengthenWithBenefits, IntentStrengthenBroadly, IntentClarifySupportively:
		return StanceSupport
	case IntentWeakenSubstantially, IntentLimitScope, IntentRedirectBenefits:
		return StanceOppose
	default:
		return StanceNeutral
	}
}

// Amendment is one proposed modification to the topic under debate.
// Created during a round, consumed once by the voting-influence step, then
// archived read-only to session history.
type Amendment struct {
	ProposerID      string             `json:"proposer_id" yaml:"proposer_id"`
	ProposerFaction string             `json:"proposer_faction" yaml:"proposer_faction"`
	Topic           string             `json:"topic" yaml:"topic"`
	Intent          AmendmentIntent    `json:"intent" yaml:"intent"`
	Rationale       string             `json:"rationale" yaml:"rationale"`
	Support         map[string]float64 `json:"support" yaml:"support"` // faction -> [0,1]
}
