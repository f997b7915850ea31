package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/domain/game/gametest"
	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

func testRegistry() *rulebook.Registry {
	reg := rulebook.NewRegistry()
	reg.PutRace(&rulebook.RaceDef{
		ID:    "orc",
		Scale: 1.2,
		AddStats: rulebook.StatMap{
			rulebook.StatMaxHealth: 4,
		},
		Multipliers: rulebook.StatMap{
			rulebook.StatAttackDamage: 0.1,
		},
	})
	reg.PutRace(&rulebook.RaceDef{ID: "human", Scale: 1.0})
	reg.PutClass(&rulebook.ClassDef{
		ID: "warrior",
		AddStats: rulebook.StatMap{
			rulebook.StatMaxHealth: 2,
			rulebook.StatArmor:     3,
		},
		Multipliers: rulebook.StatMap{
			rulebook.StatAttackDamage: 0.05,
		},
	})
	reg.PutClass(&rulebook.ClassDef{ID: "guest"})
	reg.PutTalent(&rulebook.TalentDef{
		ID:            "war_might",
		MaxRank:       3,
		PointsPerRank: 1,
		AddStats: rulebook.StatMap{
			rulebook.StatMaxHealth: 1,
		},
		Multipliers: rulebook.StatMap{
			rulebook.StatAttackDamage: 0.02,
		},
	})
	reg.PutTalent(&rulebook.TalentDef{
		ID:            "war_reserves",
		MaxRank:       2,
		PointsPerRank: 1,
		MaxPrimaryAdd: 10,
	})
	return reg
}

func setup(t *testing.T) (Service, *gametest.FakeAttributeSink, *gametest.FakeWorld) {
	t.Helper()

	sink := gametest.NewFakeAttributeSink()
	world := gametest.NewFakeWorld()
	svc := NewService(&ServiceConfig{
		Registry:      testRegistry(),
		AttributeSink: sink,
		World:         world,
	})
	return svc, sink, world
}

func warriorProfile() *profile.Profile {
	p := profile.New("player-1", "Aldra")
	p.RaceID = "orc"
	p.ClassID = "warrior"
	return p
}

func TestApplyAll_MergesRaceClassTalents(t *testing.T) {
	svc, sink, _ := setup(t)

	p := warriorProfile()
	p.SetTalentRank("war_might", 2)
	svc.ApplyAll(p)

	// max health add: race 4 + class 2 + talent 1*2
	mod, ok := sink.Modifier("player-1", rulebook.StatMaxHealth, addTag(rulebook.StatMaxHealth))
	assert.True(t, ok)
	assert.InDelta(t, 8, mod.Amount, 0.001)
	assert.Equal(t, game.OpAdd, mod.Op)

	// damage multiplier: race 0.1 + class 0.05 + talent 0.02*2, summed
	mod, ok = sink.Modifier("player-1", rulebook.StatAttackDamage, mulTag(rulebook.StatAttackDamage))
	assert.True(t, ok)
	assert.InDelta(t, 0.19, mod.Amount, 0.001)
	assert.Equal(t, game.OpAddScalar, mod.Op)

	// armor comes from the class alone
	mod, ok = sink.Modifier("player-1", rulebook.StatArmor, addTag(rulebook.StatArmor))
	assert.True(t, ok)
	assert.InDelta(t, 3, mod.Amount, 0.001)

	// zero contributions install nothing
	_, ok = sink.Modifier("player-1", rulebook.StatLuck, addTag(rulebook.StatLuck))
	assert.False(t, ok)
}

func TestApplyAll_Idempotent(t *testing.T) {
	svc, sink, _ := setup(t)

	p := warriorProfile()
	svc.ApplyAll(p)
	first := sink.AttributeValue("player-1", rulebook.StatMaxHealth)

	svc.ApplyAll(p)
	svc.ApplyAll(p)
	assert.InDelta(t, first, sink.AttributeValue("player-1", rulebook.StatMaxHealth), 0.001)
	assert.Equal(t, 1, sink.ModifierCount("player-1", rulebook.StatMaxHealth))
}

func TestApplyAll_TalentRanksStackLinearly(t *testing.T) {
	svc, sink, _ := setup(t)

	p := warriorProfile()
	base := func() float64 {
		svc.ApplyAll(p)
		return sink.AttributeValue("player-1", rulebook.StatMaxHealth)
	}

	v0 := base()
	p.SetTalentRank("war_might", 1)
	v1 := base()
	p.SetTalentRank("war_might", 2)
	v2 := base()
	p.SetTalentRank("war_might", 3)
	v3 := base()

	assert.InDelta(t, v1-v0, v2-v1, 0.001)
	assert.InDelta(t, v2-v1, v3-v2, 0.001)
}

func TestApplyAll_PoolCapacities(t *testing.T) {
	svc, _, _ := setup(t)

	p := warriorProfile()
	p.SetTalentRank("war_reserves", 2)
	p.SetPrimary(100)
	svc.ApplyAll(p)

	assert.Equal(t, profile.BaseResourceMax+20, p.MaxPrimary)
	assert.Equal(t, profile.BaseResourceMax, p.MaxSecondary)

	// Dropping the talent shrinks capacity and re-clamps the pool
	p.SetPrimary(float64(p.MaxPrimary))
	p.SetTalentRank("war_reserves", 0)
	svc.ApplyAll(p)
	assert.Equal(t, profile.BaseResourceMax, p.MaxPrimary)
	assert.InDelta(t, float64(profile.BaseResourceMax), p.Primary, 0.001)
}

func TestApplyAll_UnresolvedReferencesAreNoop(t *testing.T) {
	svc, sink, _ := setup(t)

	p := profile.New("player-1", "Aldra")
	p.RaceID = "deleted_race"
	p.ClassID = "warrior"
	svc.ApplyAll(p)

	assert.Equal(t, 0, sink.ModifierCount("player-1", rulebook.StatMaxHealth))
}

func TestApplyAll_UnknownTalentSkipped(t *testing.T) {
	svc, sink, _ := setup(t)

	p := warriorProfile()
	p.SetTalentRank("deleted_talent", 3)
	svc.ApplyAll(p)

	mod, ok := sink.Modifier("player-1", rulebook.StatMaxHealth, addTag(rulebook.StatMaxHealth))
	assert.True(t, ok)
	assert.InDelta(t, 6, mod.Amount, 0.001)
}

func TestApplyAll_ScaleCapability(t *testing.T) {
	svc, sink, _ := setup(t)

	svc.ApplyAll(warriorProfile())
	assert.InDelta(t, 1.2, sink.Scales["player-1"], 0.001)
}

func TestApplyAll_SinkWithoutScaleCapability(t *testing.T) {
	sink := gametest.NewFakeAttributeSink()
	svc := NewService(&ServiceConfig{
		Registry:      testRegistry(),
		AttributeSink: gametest.WithoutScale(sink),
		World:         gametest.NewFakeWorld(),
	})

	// Must not panic; modifiers still land
	svc.ApplyAll(warriorProfile())
	assert.Empty(t, sink.Scales)
	assert.Equal(t, 1, sink.ModifierCount("player-1", rulebook.StatMaxHealth))
}

func TestApplyAll_ClampsHealthToNewMax(t *testing.T) {
	svc, sink, world := setup(t)

	pl := gametest.NewFakePlayer("player-1", "Aldra")
	pl.MaxHP = 40
	pl.HP = 40
	world.AddPlayer(pl)

	// Base 20 + orc 4 + warrior 2 = 26, below current health
	sink.Bases[rulebook.StatMaxHealth] = 20
	svc.ApplyAll(warriorProfile())

	assert.InDelta(t, 26, pl.HP, 0.001)
}

func TestClear_RemovesOwnedModifiers(t *testing.T) {
	svc, sink, _ := setup(t)

	p := warriorProfile()
	p.SetTalentRank("war_might", 2)
	svc.ApplyAll(p)

	svc.Clear("player-1")
	for _, stat := range statKeys {
		assert.Equal(t, 0, sink.ModifierCount("player-1", stat), string(stat))
	}
	assert.InDelta(t, 1, sink.Scales["player-1"], 0.001)
}
