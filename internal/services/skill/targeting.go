package skill

import (
	"math"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

// coneHalfAngleDeg is the half-angle of the cone targeting mode
const coneHalfAngleDeg = 35.0

// resolvePrimaryTarget resolves the single target passed to handlers. Cone
// and area modes resolve their targets on demand and get nil here.
func resolvePrimaryTarget(world game.World, caster game.Player, shape rulebook.Target) game.LivingEntity {
	switch shape.Type {
	case rulebook.TargetSelf:
		return caster
	case rulebook.TargetRay:
		return world.RayTraceLiving(caster.EyePosition(), caster.Facing(), shape.Range, caster)
	default:
		return nil
	}
}

// resolveTargets returns the full target list for built-in effects.
// includeSelf decides whether self-capable effects (heal, potion) reach the
// caster; damaging effects pass false.
func resolveTargets(world game.World, caster game.Player, shape rulebook.Target, primary game.LivingEntity, includeSelf bool) []game.LivingEntity {
	switch shape.Type {
	case rulebook.TargetSelf:
		if includeSelf {
			return []game.LivingEntity{caster}
		}
		return nil

	case rulebook.TargetRay:
		if primary == nil {
			return nil
		}
		if !includeSelf && primary.ID() == caster.ID() {
			return nil
		}
		return []game.LivingEntity{primary}

	case rulebook.TargetCone:
		return coneTargets(world, caster, shape.Range)

	case rulebook.TargetArea:
		return areaTargets(world, caster, shape.Range)

	default:
		return nil
	}
}

// coneTargets returns living entities within range whose direction from the
// caster lies inside the forward cone. The caster is never included.
func coneTargets(world game.World, caster game.Player, rng float64) []game.LivingEntity {
	dir := caster.Facing()
	cos := math.Cos(coneHalfAngleDeg * math.Pi / 180)

	var out []game.LivingEntity
	for _, e := range world.NearbyLiving(caster.Position(), rng) {
		if e.ID() == caster.ID() {
			continue
		}
		to := e.Position().Sub(caster.Position()).Normalize()
		if dir.Dot(to) >= cos {
			out = append(out, e)
		}
	}
	return out
}

// areaTargets returns living entities in the cubic neighborhood of the
// caster. The caster is never included.
func areaTargets(world game.World, caster game.Player, rng float64) []game.LivingEntity {
	var out []game.LivingEntity
	for _, e := range world.NearbyLiving(caster.Position(), rng) {
		if e.ID() == caster.ID() {
			continue
		}
		out = append(out, e)
	}
	return out
}
