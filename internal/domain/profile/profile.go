// Package profile holds per-player mutable RPG state. A Profile is owned by
// the profile service's session cache; nothing else may hold one across tick
// boundaries.
package profile

import (
	"strings"
	"time"
)

// Fallback ids applied when a profile references a race or class that no
// longer exists in the loaded definitions.
const (
	FallbackRaceID  = "human"
	FallbackClassID = "guest"
)

// BaseResourceMax is the resource pool capacity before talent bonuses
const BaseResourceMax = 100

// Profile is one player's RPG state
type Profile struct {
	PlayerID string
	Name     string

	RaceID  string
	ClassID string

	Level int
	XP    int64

	TalentPoints int
	// talent id -> rank; absence means rank 0 (locked)
	TalentRanks map[string]int
	// opaque branch flags, written only via the extension API
	UnlockedBranches map[string]struct{}

	MaxPrimary   int
	MaxSecondary int
	Primary      float64
	Secondary    float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a fresh profile with default race/class, level 1 and full pools
func New(playerID, name string) *Profile {
	now := time.Now().UTC()
	return &Profile{
		PlayerID:         playerID,
		Name:             name,
		RaceID:           FallbackRaceID,
		ClassID:          FallbackClassID,
		Level:            1,
		TalentRanks:      map[string]int{},
		UnlockedBranches: map[string]struct{}{},
		MaxPrimary:       BaseResourceMax,
		MaxSecondary:     BaseResourceMax,
		Primary:          BaseResourceMax,
		Secondary:        BaseResourceMax,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// SetLevel sets the level, floored at 1
func (p *Profile) SetLevel(v int) {
	if v < 1 {
		v = 1
	}
	p.Level = v
}

// SetXP sets experience, floored at 0
func (p *Profile) SetXP(v int64) {
	if v < 0 {
		v = 0
	}
	p.XP = v
}

// SetTalentPoints sets available talent points, floored at 0
func (p *Profile) SetTalentPoints(v int) {
	if v < 0 {
		v = 0
	}
	p.TalentPoints = v
}

// TalentRank returns the current rank of a talent, 0 if locked
func (p *Profile) TalentRank(id string) int {
	return p.TalentRanks[id]
}

// SetTalentRank sets a talent's rank; rank <= 0 locks the talent
func (p *Profile) SetTalentRank(id string, rank int) {
	if strings.TrimSpace(id) == "" {
		return
	}
	if rank <= 0 {
		delete(p.TalentRanks, id)
		return
	}
	p.TalentRanks[id] = rank
}

// ClearTalents removes all talent ranks
func (p *Profile) ClearTalents() {
	p.TalentRanks = map[string]int{}
}

// HasBranch reports whether a branch flag is set
func (p *Profile) HasBranch(id string) bool {
	_, ok := p.UnlockedBranches[id]
	return ok
}

// UnlockBranch sets a branch flag; blank ids are ignored
func (p *Profile) UnlockBranch(id string) {
	if strings.TrimSpace(id) == "" {
		return
	}
	p.UnlockedBranches[id] = struct{}{}
}

// SetMaxPrimary sets the primary pool capacity and re-clamps the current value
func (p *Profile) SetMaxPrimary(v int) {
	if v < 0 {
		v = 0
	}
	p.MaxPrimary = v
	p.Primary = clamp(p.Primary, 0, float64(v))
}

// SetMaxSecondary sets the secondary pool capacity and re-clamps the current value
func (p *Profile) SetMaxSecondary(v int) {
	if v < 0 {
		v = 0
	}
	p.MaxSecondary = v
	p.Secondary = clamp(p.Secondary, 0, float64(v))
}

// SetPrimary sets the primary pool value, clamped to [0, max]
func (p *Profile) SetPrimary(v float64) {
	p.Primary = clamp(v, 0, float64(p.MaxPrimary))
}

// SetSecondary sets the secondary pool value, clamped to [0, max]
func (p *Profile) SetSecondary(v float64) {
	p.Secondary = clamp(v, 0, float64(p.MaxSecondary))
}

// Clone returns a deep copy, used for persistence snapshots so background
// saves never share a live profile across goroutines.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.TalentRanks = make(map[string]int, len(p.TalentRanks))
	for k, v := range p.TalentRanks {
		cp.TalentRanks[k] = v
	}
	cp.UnlockedBranches = make(map[string]struct{}, len(p.UnlockedBranches))
	for k := range p.UnlockedBranches {
		cp.UnlockedBranches[k] = struct{}{}
	}
	return &cp
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
