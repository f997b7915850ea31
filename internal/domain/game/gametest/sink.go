package gametest

import (
	"sync"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

// FakeAttributeSink stores modifiers per player and computes effective values
// as (base + additive) * (1 + scalar).
type FakeAttributeSink struct {
	mu sync.Mutex

	// Bases holds the unmodified value per stat, shared by all players
	Bases map[rulebook.StatKey]float64

	mods map[string]map[rulebook.StatKey]map[string]game.AttributeModifier

	// Scales records SetScale calls
	Scales map[string]float64
}

// NewFakeAttributeSink creates a sink with conventional base values
func NewFakeAttributeSink() *FakeAttributeSink {
	return &FakeAttributeSink{
		Bases: map[rulebook.StatKey]float64{
			rulebook.StatMaxHealth:     20,
			rulebook.StatMovementSpeed: 0.1,
			rulebook.StatAttackDamage:  1,
			rulebook.StatArmor:         0,
			rulebook.StatLuck:          0,
		},
		mods:   map[string]map[rulebook.StatKey]map[string]game.AttributeModifier{},
		Scales: map[string]float64{},
	}
}

func (s *FakeAttributeSink) ApplyModifier(playerID string, mod game.AttributeModifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mods[playerID] == nil {
		s.mods[playerID] = map[rulebook.StatKey]map[string]game.AttributeModifier{}
	}
	if s.mods[playerID][mod.Stat] == nil {
		s.mods[playerID][mod.Stat] = map[string]game.AttributeModifier{}
	}
	s.mods[playerID][mod.Stat][mod.SourceTag] = mod
}

func (s *FakeAttributeSink) RemoveModifier(playerID string, stat rulebook.StatKey, sourceTag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if byStat := s.mods[playerID]; byStat != nil {
		delete(byStat[stat], sourceTag)
	}
}

func (s *FakeAttributeSink) AttributeValue(playerID string, stat rulebook.StatKey) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := s.Bases[stat]
	add := 0.0
	scalar := 0.0
	for _, mod := range s.mods[playerID][stat] {
		switch mod.Op {
		case game.OpAdd:
			add += mod.Amount
		case game.OpAddScalar:
			scalar += mod.Amount
		}
	}
	return (base + add) * (1 + scalar)
}

// Modifier returns the stored modifier for a slot, if any
func (s *FakeAttributeSink) Modifier(playerID string, stat rulebook.StatKey, sourceTag string) (game.AttributeModifier, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mod, ok := s.mods[playerID][stat][sourceTag]
	return mod, ok
}

// ModifierCount returns the number of modifiers applied to one stat
func (s *FakeAttributeSink) ModifierCount(playerID string, stat rulebook.StatKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mods[playerID][stat])
}

// SetScale satisfies game.ScaleCapability
func (s *FakeAttributeSink) SetScale(playerID string, scale float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Scales[playerID] = scale
}

// WithoutScale wraps the sink in a type that hides SetScale so callers can
// exercise the capability check against a sink without scaling support.
func WithoutScale(s *FakeAttributeSink) game.AttributeSink {
	return noScaleSink{s}
}

type noScaleSink struct {
	inner *FakeAttributeSink
}

func (n noScaleSink) ApplyModifier(playerID string, mod game.AttributeModifier) {
	n.inner.ApplyModifier(playerID, mod)
}

func (n noScaleSink) RemoveModifier(playerID string, stat rulebook.StatKey, sourceTag string) {
	n.inner.RemoveModifier(playerID, stat, sourceTag)
}

func (n noScaleSink) AttributeValue(playerID string, stat rulebook.StatKey) float64 {
	return n.inner.AttributeValue(playerID, stat)
}
