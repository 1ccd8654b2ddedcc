package model

// Trait defaults substituted when a roster entry omits a field.
// Absent traits are never an error.
const (
	DefaultLoyalty    = 0.5
	DefaultCorruption = 0.1
	DefaultEloquence  = 0.5
	DefaultInfluence  = 0.5
)

// Senator is one attendee of a deliberation round. Traits are scalars in
// [0,1]. The senator is owned by the external caller; the negotiation core
// only reads it, apart from recording proposer ids on amendments.
type Senator struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Faction    string  `json:"faction" yaml:"faction"`
	Loyalty    float64 `json:"loyalty" yaml:"loyalty"`
	Corruption float64 `json:"corruption" yaml:"corruption"`
	Eloquence  float64 `json:"eloquence" yaml:"eloquence"`
	Influence  float64 `json:"influence" yaml:"influence"`
}

// RosterEntry is the YAML/JSON form of a senator. Trait fields are pointers
// so that an absent field can be told apart from an explicit 0.0.
type RosterEntry struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Faction    string   `json:"faction" yaml:"faction"`
	Loyalty    *float64 `json:"loyalty,omitempty" yaml:"loyalty,omitempty"`
	Corruption *float64 `json:"corruption,omitempty" yaml:"corruption,omitempty"`
	Eloquence  *float64 `json:"eloquence,omitempty" yaml:"eloquence,omitempty"`
	Influence  *float64 `json:"influence,omitempty" yaml:"influence,omitempty"`
}

// Resolve converts a roster entry into a Senator, substituting documented
// defaults for absent traits. A nil Corruption stays at the default here;
// sessions overwrite it with a faction-range sample (see corruption.Model).
func (e RosterEntry) Resolve() Senator {
	s := Senator{
		ID:         e.ID,
		Name:       e.Name,
		Faction:    e.Faction,
		Loyalty:    DefaultLoyalty,
		Corruption: DefaultCorruption,
		Eloquence:  DefaultEloquence,
		Influence:  DefaultInfluence,
	}
	if e.Name == "" {
		s.Name = e.ID
	}
	if e.Loyalty != nil {
		s.Loyalty = Clamp01(*e.Loyalty)
	}
	if e.Corruption != nil {
		s.Corruption = Clamp01(*e.Corruption)
	}
	if e.Eloquence != nil {
		s.Eloquence = Clamp01(*e.Eloquence)
	}
	if e.Influence != nil {
		s.Influence = Clamp01(*e.Influence)
	}
	return s
}

// HasCorruption reports whether the entry carries an explicit corruption
// trait. Entries without one get a faction-range sample at session start.
func (e RosterEntry) HasCorruption() bool {
	return e.Corruption != nil
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp clamps v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
