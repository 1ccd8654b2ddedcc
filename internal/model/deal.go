package model

// DealType is the closed set of backroom deal kinds. Arbitration dispatches
// on this tag; adding a member means extending the effect table in
// internal/negotiate.
type DealType string

const (
	DealVoteExchange        DealType = "vote-exchange"
	DealAmendmentSupport    DealType = "amendment-support"
	DealSpeakingOpportunity DealType = "speaking-opportunity"
	DealFavorExchange       DealType = "favor-exchange"
	DealResourceAllocation  DealType = "resource-allocation"
)

// AllDealTypes lists every deal type in stable draw order.
var AllDealTypes = []DealType{
	DealVoteExchange,
	DealAmendmentSupport,
	DealSpeakingOpportunity,
	DealFavorExchange,
	DealResourceAllocation,
}

// MeetingRecord is the audit entry for one backroom meeting. Records are
// immutable once the outcome is finalized.
type MeetingRecord struct {
	InitiatorID   string   `json:"initiator_id" yaml:"initiator_id"`
	TargetID      string   `json:"target_id" yaml:"target_id"`
	Deal          DealType `json:"deal,omitempty" yaml:"deal,omitempty"`
	Success       bool     `json:"success" yaml:"success"`
	SameFaction   bool     `json:"same_faction" yaml:"same_faction"`
	FavorDelta    float64  `json:"favor_delta,omitempty" yaml:"favor_delta,omitempty"`       // net debt created (+) or called in (-)
	AllianceDelta float64  `json:"alliance_delta,omitempty" yaml:"alliance_delta,omitempty"` // relation nudge applied to the faction pair
	Commitment    string   `json:"commitment,omitempty" yaml:"commitment,omitempty"`         // free-form note for vote/amendment commitments
}

// NegotiationOutcome aggregates every meeting of one negotiation round.
// It is an audit trail and AmendmentEngine input, never mutated after
// creation.
type NegotiationOutcome struct {
	SessionID    string          `json:"session_id" yaml:"session_id"`
	Topic        string          `json:"topic" yaml:"topic"`
	Category     TopicCategory   `json:"category" yaml:"category"`
	Meetings     []MeetingRecord `json:"meetings" yaml:"meetings"`
	SummaryLines []string        `json:"summary_lines" yaml:"summary_lines"`
}

// SuccessCount returns the number of meetings that resolved into a deal.
func (o *NegotiationOutcome) SuccessCount() int {
	n := 0
	for _, m := range o.Meetings {
		if m.Success {
			n++
		}
	}
	return n
}
