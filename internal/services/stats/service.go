// Package stats recomputes derived attributes and pool capacities from a
// player's race, class and talent selections.
package stats

import (
	"fmt"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

// modTagPrefix namespaces every modifier this service owns so reapplication
// replaces rather than stacks, and foreign modifiers are never touched.
const modTagPrefix = "rpgcore"

// statKeys is the full closed set, iterated for removal before reapply
var statKeys = []rulebook.StatKey{
	rulebook.StatMaxHealth,
	rulebook.StatMovementSpeed,
	rulebook.StatAttackDamage,
	rulebook.StatArmor,
	rulebook.StatLuck,
}

// Service applies aggregated stat modifiers to the host attribute system
type Service interface {
	// ApplyAll recomputes and reapplies every modifier for the player.
	// Idempotent: calling it twice yields the same host state as once.
	ApplyAll(p *profile.Profile)

	// Clear removes every modifier this service owns for the player
	Clear(playerID string)
}

type service struct {
	registry *rulebook.Registry
	sink     game.AttributeSink
	world    game.World
}

// ServiceConfig holds configuration for the stats service
type ServiceConfig struct {
	Registry      *rulebook.Registry
	AttributeSink game.AttributeSink
	World         game.World
}

// NewService creates a new stats service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Registry == nil {
		panic("definition registry is required")
	}
	if cfg.AttributeSink == nil {
		panic("attribute sink is required")
	}
	if cfg.World == nil {
		panic("world is required")
	}

	return &service{
		registry: cfg.Registry,
		sink:     cfg.AttributeSink,
		world:    cfg.World,
	}
}

func addTag(stat rulebook.StatKey) string {
	return fmt.Sprintf("%s:%s:add", modTagPrefix, stat)
}

func mulTag(stat rulebook.StatKey) string {
	return fmt.Sprintf("%s:%s:mul", modTagPrefix, stat)
}

func (s *service) ApplyAll(p *profile.Profile) {
	race := s.registry.Race(p.RaceID)
	class := s.registry.Class(p.ClassID)
	if race == nil || class == nil {
		// Unresolvable references leave the host untouched; the profile
		// service repairs them on next load
		return
	}

	adds := rulebook.StatMap{}
	mults := rulebook.StatMap{}

	adds.Merge(race.AddStats)
	mults.Merge(race.Multipliers)
	adds.Merge(class.AddStats)
	mults.Merge(class.Multipliers)

	maxPrimary := profile.BaseResourceMax
	maxSecondary := profile.BaseResourceMax
	for talentID, rank := range p.TalentRanks {
		talent := s.registry.Talent(talentID)
		if talent == nil || rank <= 0 {
			continue
		}
		adds.MergeScaled(talent.AddStats, float64(rank))
		mults.MergeScaled(talent.Multipliers, float64(rank))
		maxPrimary += talent.MaxPrimaryAdd * rank
		maxSecondary += talent.MaxSecondaryAdd * rank
	}

	p.SetMaxPrimary(maxPrimary)
	p.SetMaxSecondary(maxSecondary)

	for _, stat := range statKeys {
		s.reapply(p.PlayerID, stat, addTag(stat), game.OpAdd, adds[stat])
		s.reapply(p.PlayerID, stat, mulTag(stat), game.OpAddScalar, mults[stat])
	}

	s.applyScale(p.PlayerID, race.Scale)
	s.clampHealth(p.PlayerID)
}

// reapply removes the owned modifier slot and reinstalls it when the amount
// is non-zero, so stale contributions never linger.
func (s *service) reapply(playerID string, stat rulebook.StatKey, tag string, op game.ModifierOp, amount float64) {
	s.sink.RemoveModifier(playerID, stat, tag)
	if amount == 0 {
		return
	}
	s.sink.ApplyModifier(playerID, game.AttributeModifier{
		Stat:      stat,
		SourceTag: tag,
		Amount:    amount,
		Op:        op,
	})
}

// applyScale forwards the race's body scale when the host supports it
func (s *service) applyScale(playerID string, scale float64) {
	scaler, ok := s.sink.(game.ScaleCapability)
	if !ok {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	scaler.SetScale(playerID, scale)
}

// clampHealth pulls current health down when modifiers shrank the maximum
func (s *service) clampHealth(playerID string) {
	pl := s.world.Player(playerID)
	if pl == nil {
		return
	}
	maxHP := s.sink.AttributeValue(playerID, rulebook.StatMaxHealth)
	if maxHP > 0 && pl.Health() > maxHP {
		pl.SetHealth(maxHP)
	}
}

func (s *service) Clear(playerID string) {
	for _, stat := range statKeys {
		s.sink.RemoveModifier(playerID, stat, addTag(stat))
		s.sink.RemoveModifier(playerID, stat, mulTag(stat))
	}
	if scaler, ok := s.sink.(game.ScaleCapability); ok {
		scaler.SetScale(playerID, 1)
	}
}
