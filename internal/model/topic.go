package model

// Stance is a faction's (or senator's) disposition toward a topic.
type Stance string

const (
	StanceSupport Stance = "support"
	StanceOppose  Stance = "oppose"
	StanceNeutral Stance = "neutral"
)

// FactionStances maps faction name to its stance on the current topic.
// Missing factions read as neutral.
type FactionStances map[string]Stance

// Get returns the stance for a faction, neutral if unknown.
func (fs FactionStances) Get(faction string) Stance {
	if s, ok := fs[faction]; ok && s != "" {
		return s
	}
	return StanceNeutral
}

// TopicCategory classifies a debate topic. Categories drive stakeholder
// selection and deal-type weighting; an unknown category simply has no
// stakeholder factions.
type TopicCategory string

const (
	CategoryLandReform  TopicCategory = "land-reform"
	CategoryMilitary    TopicCategory = "military-funding"
	CategoryTaxation    TopicCategory = "taxation"
	CategoryTrade       TopicCategory = "trade-policy"
	CategoryReligious   TopicCategory = "religious-observance"
	CategoryCitizenship TopicCategory = "citizenship"
	CategoryPublicWorks TopicCategory = "public-works"
)

// Canonical faction names. The relation graph and corruption model accept
// arbitrary names; these are the blocs the default configuration seeds.
const (
	FactionOptimates = "Optimates"
	FactionPopulares = "Populares"
	FactionMilitary  = "Military"
	FactionReligious = "Religious"
	FactionMerchant  = "Merchant"
)
