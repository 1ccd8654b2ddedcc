package session

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"curia/internal/amendment"
	"curia/internal/influence"
	"curia/internal/model"
	"curia/internal/negotiate"
)

// Phase is the per-round state machine. Phases advance strictly in order;
// InfluenceComputed is terminal for the round.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActorsSelected
	PhaseMeetingsArbitrated
	PhaseOutcomeFinalized
	PhaseAmendmentsGenerated
	PhaseInfluenceComputed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseActorsSelected:
		return "ActorsSelected"
	case PhaseMeetingsArbitrated:
		return "MeetingsArbitrated"
	case PhaseOutcomeFinalized:
		return "OutcomeFinalized"
	case PhaseAmendmentsGenerated:
		return "AmendmentsGenerated"
	case PhaseInfluenceComputed:
		return "InfluenceComputed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Round executes one deliberation round over the session's state. Steps
// must run in order; skipping one is a programming error and returns an
// error rather than corrupting state. Until Finalize runs, no mutation has
// escaped into the session, so a discarded round is always safe.
type Round struct {
	session *Session
	phase   Phase

	roster   []model.Senator
	topic    string
	category model.TopicCategory
	stances  model.FactionStances

	engine   *negotiate.Engine
	amender  *amendment.Engine
	actors   []int
	arb      *negotiate.Arbitration
	outcome  *model.NegotiationOutcome
	proposed []model.Amendment
	deltas   map[string]float64
}

// NewRound binds a round to the session for one topic and roster.
func (s *Session) NewRound(roster []model.Senator, topic string, category model.TopicCategory, stances model.FactionStances) *Round {
	roundSeed := s.nextRoundSeed()
	return &Round{
		session:  s,
		roster:   roster,
		topic:    topic,
		category: category,
		stances:  stances,
		engine:   negotiate.New(s.cfg, s.graph, s.ledger, roundSeed, s.log),
		amender:  amendment.New(s.cfg, s.graph, rand.New(rand.NewSource(roundSeed^0x5bf03635))),
	}
}

// Phase reports the round's current phase.
func (r *Round) Phase() Phase { return r.phase }

// step enforces the linear phase order.
func (r *Round) step(from, to Phase) error {
	if r.phase != from {
		return fmt.Errorf("round step %s requires phase %s, round is in %s", to, from, r.phase)
	}
	r.phase = to
	r.session.log.Debug("round phase",
		zap.String("session", r.session.id),
		zap.String("phase", to.String()))
	return nil
}

// SelectActors picks the initiating senators for the round.
func (r *Round) SelectActors() error {
	if err := r.step(PhaseIdle, PhaseActorsSelected); err != nil {
		return err
	}
	r.actors = r.engine.SelectActors(r.roster, r.category)
	return nil
}

// Arbitrate pairs actors into meetings and arbitrates every deal. Nothing
// is mutated yet.
func (r *Round) Arbitrate(ctx context.Context) error {
	if err := r.step(PhaseActorsSelected, PhaseMeetingsArbitrated); err != nil {
		return err
	}
	r.arb = r.engine.Arbitrate(ctx, r.roster, r.actors, r.category, r.stances)
	return nil
}

// Finalize applies deal effects to the ledger and graph and seals the
// negotiation outcome.
func (r *Round) Finalize() error {
	if err := r.step(PhaseMeetingsArbitrated, PhaseOutcomeFinalized); err != nil {
		return err
	}
	r.outcome = r.engine.Finalize(r.arb, r.session.id, r.roster, r.topic, r.category)
	return nil
}

// GenerateAmendments derives the round's amendments from the outcome.
func (r *Round) GenerateAmendments() error {
	if err := r.step(PhaseOutcomeFinalized, PhaseAmendmentsGenerated); err != nil {
		return err
	}
	r.proposed = r.amender.GenerateFromOutcome(r.outcome, r.roster, r.stances)
	return nil
}

// ComputeInfluence reconciles amendments and favor debts into per-senator
// deltas and archives the amendments. Terminal step.
func (r *Round) ComputeInfluence() error {
	if err := r.step(PhaseAmendmentsGenerated, PhaseInfluenceComputed); err != nil {
		return err
	}
	calc := influence.New(r.session.cfg.Influence, r.session.ledger)
	r.deltas = calc.Compute(r.proposed, r.roster)
	r.session.archive(r.proposed)
	return nil
}

// Run executes every phase in order and returns the round's outputs.
func (r *Round) Run(ctx context.Context) (*model.NegotiationOutcome, []model.Amendment, map[string]float64, error) {
	steps := []func() error{
		r.SelectActors,
		func() error { return r.Arbitrate(ctx) },
		r.Finalize,
		r.GenerateAmendments,
		r.ComputeInfluence,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, nil, nil, err
		}
	}
	return r.outcome, r.proposed, r.deltas, nil
}

// Outcome returns the sealed negotiation outcome, nil before Finalize.
func (r *Round) Outcome() *model.NegotiationOutcome { return r.outcome }

// Amendments returns the round's amendments, nil before generation.
func (r *Round) Amendments() []model.Amendment { return r.proposed }

// Deltas returns the per-senator influence deltas, nil before computation.
func (r *Round) Deltas() map[string]float64 { return r.deltas }
