package model

// Config carries every tunable of the negotiation core. All probability
// tables, faction priors, and year thresholds are configuration data, not
// code constants, so scenarios can be re-weighted without rebuilding.
type Config struct {
	Factions    FactionConfig     `yaml:"factions" json:"factions"`
	Negotiation NegotiationConfig `yaml:"negotiation" json:"negotiation"`
	Favors      FavorConfig       `yaml:"favors" json:"favors"`
	Amendments  AmendmentConfig   `yaml:"amendments" json:"amendments"`
	Influence   InfluenceConfig   `yaml:"influence" json:"influence"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
}

// RelationPrior seeds one symmetric faction pair at simulation start.
type RelationPrior struct {
	FactionA string  `yaml:"faction_a" json:"faction_a"`
	FactionB string  `yaml:"faction_b" json:"faction_b"`
	Value    float64 `yaml:"value" json:"value"` // [-1,1]
}

// EraAdjustment shifts a relation pair when the session year falls inside
// [FromYear, ToYear]. Years are astronomical (BC negative, 133 BC = -133).
type EraAdjustment struct {
	FromYear int     `yaml:"from_year" json:"from_year"`
	ToYear   int     `yaml:"to_year" json:"to_year"`
	FactionA string  `yaml:"faction_a" json:"faction_a"`
	FactionB string  `yaml:"faction_b" json:"faction_b"`
	Delta    float64 `yaml:"delta" json:"delta"`
}

// CorruptionRange is the per-faction [Min,Max] prior for sampling a missing
// corruption trait.
type CorruptionRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// FactionConfig holds seed relations, corruption priors, stakeholder tables
// and historical-period bias data.
type FactionConfig struct {
	RelationPriors   []RelationPrior            `yaml:"relation_priors" json:"relation_priors"`
	CorruptionRanges map[string]CorruptionRange `yaml:"corruption_ranges" json:"corruption_ranges"`
	DefaultRange     CorruptionRange            `yaml:"default_corruption_range" json:"default_corruption_range"`
	Stakeholders     map[TopicCategory][]string `yaml:"stakeholders" json:"stakeholders"`
	EraAdjustments   []EraAdjustment            `yaml:"era_adjustments" json:"era_adjustments"`
}

// NegotiationConfig tunes actor selection, target weighting and deal
// arbitration.
type NegotiationConfig struct {
	ActorFraction       float64 `yaml:"actor_fraction" json:"actor_fraction"`         // share of roster taken by influence rank
	MaxMeetings         int     `yaml:"max_meetings" json:"max_meetings"`             // ceiling of the per-initiator budget
	BaseTargetWeight    float64 `yaml:"base_target_weight" json:"base_target_weight"` // floor so every candidate stays drawable
	SameFactionBonus    float64 `yaml:"same_faction_bonus" json:"same_faction_bonus"`
	RelationWeight      float64 `yaml:"relation_weight" json:"relation_weight"`     // target weighting term
	DebtWeight          float64 `yaml:"debt_weight" json:"debt_weight"`             // debtors are preferentially approached
	StanceAlignBonus    float64 `yaml:"stance_align_bonus" json:"stance_align_bonus"`
	CorruptionWeight    float64 `yaml:"corruption_weight" json:"corruption_weight"`
	AgreeRelationWeight float64 `yaml:"agree_relation_weight" json:"agree_relation_weight"`
	AgreeFavorWeight    float64 `yaml:"agree_favor_weight" json:"agree_favor_weight"`
	AgreeBase           float64 `yaml:"agree_base" json:"agree_base"`
	AgreeFloor          float64 `yaml:"agree_floor" json:"agree_floor"`
	AgreeCeiling        float64 `yaml:"agree_ceiling" json:"agree_ceiling"`
	AllianceChance      float64 `yaml:"alliance_chance" json:"alliance_chance"` // chance a success also nudges the relation graph
	AllianceDelta       float64 `yaml:"alliance_delta" json:"alliance_delta"`
}

// FavorConfig tunes ledger crediting and the resolve (call-in) draw.
type FavorConfig struct {
	ComplianceBase    float64 `yaml:"compliance_base" json:"compliance_base"`
	BalanceWeight     float64 `yaml:"balance_weight" json:"balance_weight"`
	LoyaltyWeight     float64 `yaml:"loyalty_weight" json:"loyalty_weight"`
	RelationWeight    float64 `yaml:"relation_weight" json:"relation_weight"`
	PartialChance     float64 `yaml:"partial_chance" json:"partial_chance"`       // honored but only partially discharged
	PartialRemainder  float64 `yaml:"partial_remainder" json:"partial_remainder"` // fraction of the debt left standing
	CounterChance     float64 `yaml:"counter_chance" json:"counter_chance"`       // weak counter-obligation on full honor
	CounterFraction   float64 `yaml:"counter_fraction" json:"counter_fraction"`
	RefusalPenalty    float64 `yaml:"refusal_penalty" json:"refusal_penalty"`     // fixed relation degradation on refusal
	ExchangeMin       float64 `yaml:"exchange_min" json:"exchange_min"`           // new-favor intensity range for favor-exchange deals
	ExchangeSpread    float64 `yaml:"exchange_spread" json:"exchange_spread"`
	ResourceIntensity float64 `yaml:"resource_intensity" json:"resource_intensity"` // favor credited by resource-allocation deals
}

// AmendmentConfig tunes intent selection and faction support scoring.
type AmendmentConfig struct {
	SelfServingBias   float64 `yaml:"self_serving_bias" json:"self_serving_bias"`   // corruption multiplier on self-serving intents
	RelationWeight    float64 `yaml:"relation_weight" json:"relation_weight"`       // proposer-faction relation term in support
	AlignBonus        float64 `yaml:"align_bonus" json:"align_bonus"`               // intent matches the faction's disposition
	CorruptBoost      float64 `yaml:"corrupt_boost" json:"corrupt_boost"`           // corrupt factions back self-serving intents
	CorruptThreshold  float64 `yaml:"corrupt_threshold" json:"corrupt_threshold"`   // faction prior midpoint above which the boost applies
	ProposalBase      float64 `yaml:"proposal_base" json:"proposal_base"`           // outcome-driven generation gate
	ProposalInfluence float64 `yaml:"proposal_influence" json:"proposal_influence"`
}

// InfluenceConfig tunes the voting-influence reconciliation.
type InfluenceConfig struct {
	ProposerBonus float64 `yaml:"proposer_bonus" json:"proposer_bonus"` // flat +0.3 for the amendment's own proposer
	SupportSpan   float64 `yaml:"support_span" json:"support_span"`     // [0,1] support maps to +/- this span
	FavorWeight   float64 `yaml:"favor_weight" json:"favor_weight"`     // per unit of debt owed to the proposer
	MaxDelta      float64 `yaml:"max_delta" json:"max_delta"`           // final clamp bound
}

// ConcurrencyConfig controls the optional parallel arbitration path.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"` // 0 or 1 means serial
}

// DefaultConfig returns the documented priors and tuning constants.
func DefaultConfig() *Config {
	return &Config{
		Factions: FactionConfig{
			RelationPriors: []RelationPrior{
				{FactionA: FactionOptimates, FactionB: FactionPopulares, Value: -0.6},
				{FactionA: FactionOptimates, FactionB: FactionMilitary, Value: 0.2},
				{FactionA: FactionOptimates, FactionB: FactionReligious, Value: 0.3},
				{FactionA: FactionOptimates, FactionB: FactionMerchant, Value: 0.1},
				{FactionA: FactionPopulares, FactionB: FactionMilitary, Value: -0.1},
				{FactionA: FactionPopulares, FactionB: FactionMerchant, Value: 0.2},
				{FactionA: FactionMilitary, FactionB: FactionReligious, Value: 0.1},
				{FactionA: FactionReligious, FactionB: FactionMerchant, Value: -0.1},
			},
			CorruptionRanges: map[string]CorruptionRange{
				FactionOptimates: {Min: 0.2, Max: 0.6},
				FactionPopulares: {Min: 0.1, Max: 0.5},
				FactionMilitary:  {Min: 0.3, Max: 0.8},
				FactionReligious: {Min: 0.1, Max: 0.4},
				FactionMerchant:  {Min: 0.4, Max: 0.9},
			},
			DefaultRange: CorruptionRange{Min: 0.1, Max: 0.5},
			Stakeholders: map[TopicCategory][]string{
				CategoryLandReform:  {FactionPopulares, FactionOptimates},
				CategoryMilitary:    {FactionMilitary},
				CategoryTaxation:    {FactionMerchant, FactionPopulares},
				CategoryTrade:       {FactionMerchant},
				CategoryReligious:   {FactionReligious},
				CategoryCitizenship: {FactionPopulares, FactionOptimates},
				CategoryPublicWorks: {FactionMerchant, FactionPopulares},
			},
			EraAdjustments: []EraAdjustment{
				// Post-Gracchan land-reform sensitivity.
				{FromYear: -133, ToYear: -30, FactionA: FactionOptimates, FactionB: FactionPopulares, Delta: -0.2},
				// Marian reforms pull the army away from the senatorial bloc.
				{FromYear: -107, ToYear: -30, FactionA: FactionOptimates, FactionB: FactionMilitary, Delta: -0.1},
			},
		},
		Negotiation: NegotiationConfig{
			ActorFraction:       0.25,
			MaxMeetings:         4,
			BaseTargetWeight:    0.2,
			SameFactionBonus:    0.5,
			RelationWeight:      0.4,
			DebtWeight:          0.6,
			StanceAlignBonus:    0.3,
			CorruptionWeight:    0.5,
			AgreeRelationWeight: 0.2,
			AgreeFavorWeight:    0.15,
			AgreeBase:           0.1,
			AgreeFloor:          0.05,
			AgreeCeiling:        0.95,
			AllianceChance:      0.15,
			AllianceDelta:       0.05,
		},
		Favors: FavorConfig{
			ComplianceBase:    0.05,
			BalanceWeight:     0.3,
			LoyaltyWeight:     0.45,
			RelationWeight:    0.2,
			PartialChance:     0.25,
			PartialRemainder:  0.3,
			CounterChance:     0.5,
			CounterFraction:   0.25,
			RefusalPenalty:    0.1,
			ExchangeMin:       0.2,
			ExchangeSpread:    0.3,
			ResourceIntensity: 0.15,
		},
		Amendments: AmendmentConfig{
			SelfServingBias:   1.5,
			RelationWeight:    0.2,
			AlignBonus:        0.15,
			CorruptBoost:      0.1,
			CorruptThreshold:  0.45,
			ProposalBase:      0.25,
			ProposalInfluence: 0.5,
		},
		Influence: InfluenceConfig{
			ProposerBonus: 0.3,
			SupportSpan:   0.2,
			FavorWeight:   0.25,
			MaxDelta:      0.5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
	}
}
