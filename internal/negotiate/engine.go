// Package negotiate runs backroom negotiation rounds: actor selection,
// meeting pairing, deal arbitration, and the resulting ledger and relation
// mutations.
package negotiate

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"curia/internal/favor"
	"curia/internal/model"
	"curia/internal/relation"
	"curia/internal/worker"
)

// Engine runs exactly one negotiation round per call against the graph and
// ledger it was given. The graph and ledger are owned by the session; the
// engine never copies them.
type Engine struct {
	cfg    *model.Config
	graph  *relation.Graph
	ledger *favor.Ledger
	seed   int64
	log    *zap.Logger
}

// New creates a negotiation engine. A nil logger is replaced with a no-op.
func New(cfg *model.Config, graph *relation.Graph, ledger *favor.Ledger, seed int64, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, graph: graph, ledger: ledger, seed: seed, log: log}
}

// pendingMeeting is one arbitrated meeting whose side effects have not been
// applied yet. Arbitration is read-only; effects are applied at finalize in
// initiator order so that parallel and serial execution agree.
type pendingMeeting struct {
	initiatorIdx int
	record       model.MeetingRecord
	avgCorr      float64
	effectSeed   int64 // seeds the effect-phase draws
}

// Arbitration holds the arbitrated-but-unapplied meetings of one round.
// Discarding it before Finalize leaves the ledger and graph untouched.
type Arbitration struct {
	pendings []pendingMeeting
}

// Arbitrate pairs every selected initiator into meetings and arbitrates
// each deal, either inline or across the worker pool. No ledger or graph
// mutation happens here. Each initiator draws from its own sub-RNG derived
// from the round seed and initiator id, so worker scheduling cannot change
// the result.
func (e *Engine) Arbitrate(ctx context.Context, roster []model.Senator, actors []int, category model.TopicCategory, stances model.FactionStances) *Arbitration {
	workers := e.cfg.Concurrency.Workers
	if workers <= 1 || len(actors) < 2 {
		var pendings []pendingMeeting
		for _, idx := range actors {
			pendings = append(pendings, e.arbitrateInitiator(roster, idx, category, stances)...)
		}
		return &Arbitration{pendings: pendings}
	}

	jobs := make([]worker.Job, len(actors))
	for i, idx := range actors {
		jobs[i] = &initiatorJob{engine: e, roster: roster, initiatorIdx: idx, category: category, stances: stances}
	}
	results := worker.NewPool(workers).Run(ctx, jobs)

	var pendings []pendingMeeting
	for _, r := range results {
		pendings = append(pendings, r.(*initiatorResult).pendings...)
	}
	return &Arbitration{pendings: pendings}
}

// Finalize merges arbitrated meetings deterministically (initiator roster
// order, then meeting order), applies their ledger and graph effects, and
// seals the outcome. The outcome is never mutated afterward.
func (e *Engine) Finalize(arb *Arbitration, sessionID string, roster []model.Senator, topic string, category model.TopicCategory) *model.NegotiationOutcome {
	outcome := &model.NegotiationOutcome{
		SessionID: sessionID,
		Topic:     topic,
		Category:  category,
	}
	if arb == nil {
		return outcome
	}

	sort.SliceStable(arb.pendings, func(i, j int) bool {
		return arb.pendings[i].initiatorIdx < arb.pendings[j].initiatorIdx
	})

	for i := range arb.pendings {
		e.applyEffects(&arb.pendings[i], roster)
		outcome.Meetings = append(outcome.Meetings, arb.pendings[i].record)
		outcome.SummaryLines = append(outcome.SummaryLines, summarize(arb.pendings[i].record))
	}

	e.log.Info("negotiation round complete",
		zap.String("session", sessionID),
		zap.Int("meetings", len(outcome.Meetings)),
		zap.Int("deals", outcome.SuccessCount()))
	return outcome
}

// Run executes one whole negotiation round for the topic among the
// attending roster: selection, arbitration, finalize. An empty roster
// yields an empty outcome, never an error. No meeting targets a senator
// against themselves.
func (e *Engine) Run(ctx context.Context, sessionID string, roster []model.Senator, topic string, category model.TopicCategory, stances model.FactionStances) *model.NegotiationOutcome {
	if len(roster) == 0 {
		return &model.NegotiationOutcome{SessionID: sessionID, Topic: topic, Category: category}
	}

	actors := e.SelectActors(roster, category)
	e.log.Debug("actors selected",
		zap.String("topic", topic),
		zap.Int("roster", len(roster)),
		zap.Int("actors", len(actors)))

	arb := e.Arbitrate(ctx, roster, actors, category, stances)
	return e.Finalize(arb, sessionID, roster, topic, category)
}

// initiatorJob arbitrates all meetings of one initiator on the pool.
type initiatorJob struct {
	engine       *Engine
	roster       []model.Senator
	initiatorIdx int
	category     model.TopicCategory
	stances      model.FactionStances
}

// initiatorResult carries one initiator's pending meetings.
type initiatorResult struct {
	pendings []pendingMeeting
}

func (r *initiatorResult) GetError() error { return nil }

func (j *initiatorJob) Execute(ctx context.Context) worker.Result {
	return &initiatorResult{pendings: j.engine.arbitrateInitiator(j.roster, j.initiatorIdx, j.category, j.stances)}
}

// initiatorRNG derives the deterministic sub-RNG for one initiator.
func (e *Engine) initiatorRNG(id string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(id))
	return rand.New(rand.NewSource(e.seed ^ int64(h.Sum64())))
}

// summarize renders the coarse human-readable line for one meeting. The
// wording is presentation glue; the one-line-per-meeting count is the
// contract.
func summarize(m model.MeetingRecord) string {
	if !m.Success {
		return fmt.Sprintf("%s approached %s but no deal was struck", m.InitiatorID, m.TargetID)
	}
	return fmt.Sprintf("%s and %s agreed on %s", m.InitiatorID, m.TargetID, m.Deal)
}
