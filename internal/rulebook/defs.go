package rulebook

// RaceDef is an immutable playable race definition
type RaceDef struct {
	ID          string
	Name        string
	Lore        []string
	Icon        string
	Scale       float64
	AddStats    StatMap
	Multipliers StatMap
	AuraID      string // optional cosmetic aura, empty = none
}

// ClassDef is an immutable playable class definition
type ClassDef struct {
	ID          string
	Name        string
	Role        string
	Lore        []string
	Icon        string
	AddStats    StatMap
	Multipliers StatMap
	SkillIDs    []string
	TalentIDs   []string
}

// TalentDef is an immutable talent definition. Per-rank contributions stack
// linearly with the granted rank.
type TalentDef struct {
	ID            string
	Name          string
	Lore          []string
	Icon          string
	AddStats      StatMap
	Multipliers   StatMap
	MaxRank       int // >= 1
	PointsPerRank int // >= 1
	// Added capacity per rank for the two resource pools
	MaxPrimaryAdd   int
	MaxSecondaryAdd int
}

// AuraDef is a cosmetic-only aura definition. The casting pipeline never
// consumes these; only the cosmetics loop does.
type AuraDef struct {
	ID          string
	Type        string
	Particle    string
	Color       string
	Size        float64
	PeriodTicks int
	BlockData   string
}
