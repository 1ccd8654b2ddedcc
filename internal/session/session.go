// Package session owns the long-lived negotiation state of one simulation:
// the faction relation graph, the favor ledger, and the corruption sampler.
// Exactly one writer exists at a time; the caller serializes rounds.
package session

import (
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"curia/internal/corruption"
	"curia/internal/favor"
	"curia/internal/model"
	"curia/internal/relation"
)

// Options configures a new session.
type Options struct {
	Seed   int64       // drives every random draw in the session
	Year   int         // astronomical year, selects era bias adjustments
	Logger *zap.Logger // nil means silent
}

// Session is one isolated simulation. Graph and ledger are explicit owned
// objects injected into each component call, never module-level singletons,
// so sessions can run and be tested in parallel.
type Session struct {
	id      string
	cfg     *model.Config
	graph   *relation.Graph
	ledger  *favor.Ledger
	sampler *corruption.Model
	log     *zap.Logger

	seed    int64
	rounds  int64
	history []model.Amendment
}

// New creates a session seeded from configured relation priors, with era
// bias for the given year already applied.
func New(cfg *model.Config, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	graph := relation.FromPriors(cfg.Factions.RelationPriors)
	graph.ApplyEraBias(opts.Year, cfg.Factions.EraAdjustments)

	s := &Session{
		id:      uuid.NewString(),
		cfg:     cfg,
		graph:   graph,
		ledger:  favor.New(cfg.Favors),
		sampler: corruption.New(cfg.Factions, rand.New(rand.NewSource(opts.Seed))),
		log:     log,
		seed:    opts.Seed,
	}
	s.log.Info("session created",
		zap.String("session", s.id),
		zap.Int64("seed", opts.Seed),
		zap.Int("year", opts.Year))
	return s
}

// ID returns the session identifier carried in outcomes and logs.
func (s *Session) ID() string { return s.id }

// Graph exposes the relation graph for callers applying external policies
// such as periodic decay.
func (s *Session) Graph() *relation.Graph { return s.graph }

// Ledger exposes the favor ledger.
func (s *Session) Ledger() *favor.Ledger { return s.ledger }

// ResolveRoster converts roster entries into senators, substituting trait
// defaults and sampling missing corruption traits from the faction priors.
// Each senator is sampled at most once per session.
func (s *Session) ResolveRoster(entries []model.RosterEntry) []model.Senator {
	roster := make([]model.Senator, len(entries))
	for i, e := range entries {
		senator := e.Resolve()
		if !e.HasCorruption() {
			senator.Corruption = s.sampler.SampleFor(senator.ID, senator.Faction)
		} else {
			s.sampler.Override(senator.ID, senator.Corruption)
		}
		roster[i] = senator
	}
	return roster
}

// History returns the archived amendments of all completed rounds. The
// slice is a copy; archived amendments are read-only.
func (s *Session) History() []model.Amendment {
	out := make([]model.Amendment, len(s.history))
	copy(out, s.history)
	return out
}

// archive appends a completed round's amendments to history.
func (s *Session) archive(amendments []model.Amendment) {
	s.history = append(s.history, amendments...)
}

// nextRoundSeed hands each round a distinct deterministic seed.
func (s *Session) nextRoundSeed() int64 {
	s.rounds++
	return s.seed + s.rounds*0x9e3779b9
}

// State is the plain-map form of the session's mutable political state.
// Persistence of this across sessions is the caller's responsibility.
type State struct {
	Relations map[string]float64            `yaml:"relations" json:"relations"`
	Favors    map[string]map[string]float64 `yaml:"favors" json:"favors"`
}

// ExportState snapshots the relation graph and favor ledger.
func (s *Session) ExportState() State {
	return State{
		Relations: s.graph.Export(),
		Favors:    s.ledger.Export(),
	}
}

// ImportState replaces the relation graph and favor ledger contents,
// e.g. when resuming a persisted simulation.
func (s *Session) ImportState(st State) {
	s.graph.Import(st.Relations)
	s.ledger.Import(st.Favors)
	s.log.Info("session state imported",
		zap.String("session", s.id),
		zap.Int("relations", len(st.Relations)),
		zap.Int("debtors", len(st.Favors)))
}
