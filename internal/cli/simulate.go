package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"curia/internal/model"
	"curia/internal/session"
)

var (
	seed      int64
	senators  int
	rosterPth string
	topic     string
	category  string
	year      int
	rounds    int
	runs      int
	workers   int
	statePth  string
	decay     float64
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run seeded senate deliberation rounds",
	Long: `Simulate runs one or more backroom negotiation rounds over a senate
roster and prints the meetings, deals, amendments, and influence shifts
they produce.

The same seed, roster, and state always produce the same output. With
--runs > 1 the command repeats the simulation under consecutive seeds and
prints an aggregate deal statistics table instead of per-round detail.

Example:
  curia simulate --seed 42 --senators 12 --topic "lex agraria" --category land-reform
  curia simulate --roster roster.yaml --year -133 --rounds 3 --decay 0.9
  curia simulate --seed 7 --runs 200 --workers 4
  curia simulate --state campaign.yaml --seed 9`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Int64Var(&seed, "seed", 1, "simulation seed")
	simulateCmd.Flags().IntVar(&senators, "senators", 12, "size of the generated roster (ignored with --roster)")
	simulateCmd.Flags().StringVar(&rosterPth, "roster", "", "roster YAML file (list of senators)")
	simulateCmd.Flags().StringVar(&topic, "topic", "lex agraria de coloniis", "debate topic")
	simulateCmd.Flags().StringVar(&category, "category", "land-reform", "topic category")
	simulateCmd.Flags().IntVar(&year, "year", -100, "astronomical year (BC years negative)")
	simulateCmd.Flags().IntVar(&rounds, "rounds", 1, "deliberation rounds per run")
	simulateCmd.Flags().IntVar(&runs, "runs", 1, "independent seeded repetitions")
	simulateCmd.Flags().IntVar(&workers, "workers", 0, "parallel arbitration workers (0 = serial)")
	simulateCmd.Flags().StringVar(&statePth, "state", "", "state YAML file to load before and save after the run")
	simulateCmd.Flags().Float64Var(&decay, "decay", 0, "relation decay factor applied between rounds (0 = off)")
}

// runStats aggregates deal outcomes across runs.
type runStats struct {
	meetings    int
	deals       int
	intraDeals  int
	amendments  int
	dealsByType map[model.DealType]int
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = workers

	cat := model.TopicCategory(category)
	entries, err := loadRoster()
	if err != nil {
		return err
	}
	stances := defaultStances(cat)

	var loaded *session.State
	if statePth != "" {
		loaded, err = loadState(statePth)
		if err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Topic: %s (%s)\n", topic, cat)
		fmt.Fprintf(os.Stderr, "Roster: %d senators, seed %d, year %d\n", len(entries), seed, year)
		fmt.Fprintln(os.Stderr)
	}

	stats := runStats{dealsByType: make(map[model.DealType]int)}
	ctx := context.Background()

	for run := 0; run < runs; run++ {
		s := session.New(cfg, session.Options{
			Seed:   seed + int64(run),
			Year:   year,
			Logger: newLogger(),
		})
		if loaded != nil {
			s.ImportState(*loaded)
		}
		roster := s.ResolveRoster(entries)

		for round := 0; round < rounds; round++ {
			r := s.NewRound(roster, topic, cat, stances)
			outcome, amendments, deltas, err := r.Run(ctx)
			if err != nil {
				return fmt.Errorf("round %d failed: %w", round+1, err)
			}

			stats.meetings += len(outcome.Meetings)
			stats.deals += outcome.SuccessCount()
			stats.amendments += len(amendments)
			for _, m := range outcome.Meetings {
				if m.Success {
					stats.dealsByType[m.Deal]++
					if m.SameFaction {
						stats.intraDeals++
					}
				}
			}

			if runs == 1 {
				printRound(round+1, outcome, amendments, deltas)
			}
			if decay > 0 && round < rounds-1 {
				s.Graph().Decay(decay)
			}
		}

		if runs == 1 && statePth != "" {
			if err := saveState(statePth, s.ExportState()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "✓ Saved state: %s\n", statePth)
		}
	}

	if runs > 1 {
		printStats(stats)
	}
	return nil
}

// loadRoster reads the roster file, or generates a deterministic roster.
func loadRoster() ([]model.RosterEntry, error) {
	if rosterPth == "" {
		return generateRoster(senators, seed), nil
	}
	data, err := os.ReadFile(rosterPth)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var entries []model.RosterEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("roster entry %d has no id", i)
		}
		if e.Faction == "" {
			return nil, fmt.Errorf("roster entry %q has no faction", e.ID)
		}
	}
	return entries, nil
}

// Cognomina for generated rosters. Factions cycle so every bloc is
// represented; traits are drawn from the seed, corruption is left for the
// session's faction sampler.
var latinNames = []string{
	"Ahenobarbus", "Brutus", "Cato", "Cethegus", "Cinna", "Cotta",
	"Crassus", "Dolabella", "Flaccus", "Galba", "Glabrio", "Hortensius",
	"Lentulus", "Lepidus", "Longinus", "Metellus", "Murena", "Nasica",
	"Piso", "Pulcher", "Rufus", "Scaurus", "Sulpicius", "Varro",
}

var generatedFactions = []string{
	model.FactionOptimates, model.FactionPopulares, model.FactionMilitary,
	model.FactionReligious, model.FactionMerchant,
}

func generateRoster(n int, seed int64) []model.RosterEntry {
	rng := rand.New(rand.NewSource(seed))
	entries := make([]model.RosterEntry, n)
	for i := 0; i < n; i++ {
		name := latinNames[i%len(latinNames)]
		id := strings.ToLower(name)
		if i >= len(latinNames) {
			id = fmt.Sprintf("%s-%d", id, i/len(latinNames)+1)
			name = fmt.Sprintf("%s %d", name, i/len(latinNames)+1)
		}
		loyalty := 0.3 + 0.6*rng.Float64()
		eloquence := 0.2 + 0.7*rng.Float64()
		influence := 0.1 + 0.8*rng.Float64()
		entries[i] = model.RosterEntry{
			ID:        id,
			Name:      name,
			Faction:   generatedFactions[i%len(generatedFactions)],
			Loyalty:   &loyalty,
			Eloquence: &eloquence,
			Influence: &influence,
		}
	}
	return entries
}

// defaultStances gives each category a plausible default alignment; a
// roster-specific scenario can always run through the library API instead.
func defaultStances(cat model.TopicCategory) model.FactionStances {
	switch cat {
	case model.CategoryLandReform, model.CategoryCitizenship:
		return model.FactionStances{
			model.FactionPopulares: model.StanceSupport,
			model.FactionOptimates: model.StanceOppose,
		}
	case model.CategoryMilitary:
		return model.FactionStances{
			model.FactionMilitary: model.StanceSupport,
			model.FactionMerchant: model.StanceOppose,
		}
	case model.CategoryTaxation:
		return model.FactionStances{
			model.FactionPopulares: model.StanceSupport,
			model.FactionMerchant:  model.StanceOppose,
		}
	case model.CategoryTrade:
		return model.FactionStances{
			model.FactionMerchant:  model.StanceSupport,
			model.FactionReligious: model.StanceNeutral,
		}
	case model.CategoryReligious:
		return model.FactionStances{
			model.FactionReligious: model.StanceSupport,
		}
	case model.CategoryPublicWorks:
		return model.FactionStances{
			model.FactionPopulares: model.StanceSupport,
			model.FactionMerchant:  model.StanceSupport,
			model.FactionOptimates: model.StanceOppose,
		}
	default:
		return model.FactionStances{}
	}
}

func loadState(path string) (*session.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var st session.State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &st, nil
}

func saveState(path string, st session.State) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func printRound(round int, outcome *model.NegotiationOutcome, amendments []model.Amendment, deltas map[string]float64) {
	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("  Round %d — %s\n", round, outcome.Topic)
	fmt.Printf("═══════════════════════════════════════════════════════════\n\n")

	fmt.Printf("Meetings (%d, %d deals):\n", len(outcome.Meetings), outcome.SuccessCount())
	for _, line := range outcome.SummaryLines {
		fmt.Printf("  %s\n", line)
	}
	fmt.Println()

	fmt.Printf("Amendments (%d):\n", len(amendments))
	for _, a := range amendments {
		fmt.Printf("  %s (%s): %s — %s\n", a.ProposerID, a.ProposerFaction, a.Intent, a.Rationale)
		factions := make([]string, 0, len(a.Support))
		for f := range a.Support {
			factions = append(factions, f)
		}
		sort.Strings(factions)
		for _, f := range factions {
			fmt.Printf("    %-12s support %.2f\n", f, a.Support[f])
		}
	}
	fmt.Println()

	fmt.Printf("Influence shifts:\n")
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %-14s %+.3f\n", id, deltas[id])
	}
	fmt.Println()
}

func printStats(stats runStats) {
	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("  Aggregate over %d runs\n", runs)
	fmt.Printf("═══════════════════════════════════════════════════════════\n\n")

	fmt.Printf("  Meetings:      %d\n", stats.meetings)
	fmt.Printf("  Deals:         %d", stats.deals)
	if stats.meetings > 0 {
		fmt.Printf(" (%.1f%% of meetings)", 100*float64(stats.deals)/float64(stats.meetings))
	}
	fmt.Println()
	fmt.Printf("  Intra-faction: %d", stats.intraDeals)
	if stats.deals > 0 {
		fmt.Printf(" (%.1f%% of deals)", 100*float64(stats.intraDeals)/float64(stats.deals))
	}
	fmt.Println()
	fmt.Printf("  Amendments:    %d\n\n", stats.amendments)

	fmt.Printf("  Deals by type:\n")
	types := make([]string, 0, len(stats.dealsByType))
	for t := range stats.dealsByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("    %-22s %d\n", t, stats.dealsByType[model.DealType(t)])
	}
	fmt.Println()
}
