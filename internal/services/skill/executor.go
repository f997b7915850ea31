package skill

import (
	"context"
	"math"

	"github.com/emberforge/rpgcore/internal/dice"
	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

// builtinExecutor interprets the declarative effect list on a skill
// definition. It backs the reserved "effects" handler id and the empty
// handler id.
type builtinExecutor struct {
	presenter game.Presenter
	roller    dice.Roller
}

func newBuiltinExecutor(presenter game.Presenter, roller dice.Roller) *builtinExecutor {
	return &builtinExecutor{presenter: presenter, roller: roller}
}

// Cast implements Handler
func (e *builtinExecutor) Cast(ctx context.Context, cast *CastContext) error {
	for _, eff := range cast.Skill.Effects {
		e.apply(cast, eff)
	}
	return nil
}

func (e *builtinExecutor) apply(cast *CastContext, eff rulebook.Effect) {
	caster := cast.Caster

	switch eff.Kind {
	case rulebook.EffectHeal:
		heal(caster, eff.Amount)

	case rulebook.EffectHealTarget:
		e.healTarget(cast, eff.Amount)

	case rulebook.EffectDamage:
		for _, t := range cast.Targets(false) {
			if t.ID() != caster.ID() {
				t.Damage(eff.Amount, caster)
			}
		}

	case rulebook.EffectDamageRandom:
		// One roll per cast; every target takes the same amount
		amount := float64(e.roller.RollRange(eff.Min, eff.Max))
		for _, t := range cast.Targets(false) {
			if t.ID() != caster.ID() {
				t.Damage(amount, caster)
			}
		}

	case rulebook.EffectPotion:
		for _, t := range cast.Targets(true) {
			e.presenter.ApplyStatus(t, game.StatusEffect{
				Name:          eff.StatusName,
				DurationTicks: eff.DurationTicks,
				Amplifier:     eff.Amplifier,
				Ambient:       eff.Ambient,
				ShowParticles: eff.ShowParticles,
				ShowIcon:      eff.ShowIcon,
			})
		}

	case rulebook.EffectKnockback:
		if eff.Strength == 0 {
			return
		}
		for _, t := range cast.Targets(false) {
			if t.ID() != caster.ID() {
				knockback(caster, t, eff.Strength)
			}
		}

	case rulebook.EffectDash:
		dash(caster, eff.Strength)

	case rulebook.EffectCleanse:
		// Cleanse is intentionally limited to self/ray in the built-in executor
		if cast.Skill.Target.Type == rulebook.TargetRay {
			if cast.Target != nil {
				e.cleanse(cast.Target)
			}
		} else {
			e.cleanse(caster)
		}
	}
}

// healTarget heals the resolved targets; a missed ray heals the caster for
// half the amount instead.
func (e *builtinExecutor) healTarget(cast *CastContext, amount float64) {
	if cast.Skill.Target.Type == rulebook.TargetRay && cast.Target == nil {
		heal(cast.Caster, amount/2)
		return
	}
	for _, t := range cast.Targets(true) {
		heal(t, amount)
	}
}

func (e *builtinExecutor) cleanse(target game.LivingEntity) {
	for _, name := range rulebook.NegativeStatusEffects {
		if e.presenter.HasStatus(target, name) {
			e.presenter.RemoveStatus(target, name)
		}
	}
}

func heal(target game.LivingEntity, amount float64) {
	if amount <= 0 {
		return
	}
	target.SetHealth(math.Min(target.MaxHealth(), target.Health()+amount))
}

// knockback pushes the target away from the caster, adding to its current
// velocity. Co-located entities are pushed along the caster's facing.
func knockback(caster game.Player, target game.LivingEntity, strength float64) {
	dir := target.Position().Sub(caster.Position())
	if dir.LengthSquared() < 0.0001 {
		dir = caster.Facing()
	}
	push := dir.Normalize().Scale(strength)
	target.SetVelocity(target.Velocity().Add(push))
}

// dash launches the caster along their facing with a small upward bias,
// vertical component capped at 0.6.
func dash(caster game.Player, strength float64) {
	vel := caster.Facing().Scale(strength)
	vel.Y = math.Min(0.6, vel.Y+0.1)
	caster.SetVelocity(vel)
}
