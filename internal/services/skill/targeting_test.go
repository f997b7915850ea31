package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/domain/game/gametest"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

func targetIDs(targets []game.LivingEntity) []string {
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.ID())
	}
	return out
}

func TestResolvePrimaryTarget_Self(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)

	got := resolvePrimaryTarget(world, caster, rulebook.Target{Type: rulebook.TargetSelf})
	assert.Equal(t, "caster", got.ID())
}

func TestResolvePrimaryTarget_RayHitsNearestExcludingCaster(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)
	world.AddEntity(gametest.NewFakeEntity("near", game.Vec3{Z: 5}))
	world.AddEntity(gametest.NewFakeEntity("far", game.Vec3{Z: 9}))

	got := resolvePrimaryTarget(world, caster, rulebook.Target{Type: rulebook.TargetRay, Range: 20})
	require.NotNil(t, got)
	assert.Equal(t, "near", got.ID())
}

func TestResolvePrimaryTarget_RayFromEyeHeightHitsGroundedEntity(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)
	// Standing on the same ground level; the ray leaves at eye height and
	// must still connect with the target's body.
	world.AddEntity(gametest.NewFakeEntity("grounded", game.Vec3{Z: 8}))
	world.AddEntity(gametest.NewFakeEntity("offAxis", game.Vec3{X: 1.5, Z: 8}))

	got := resolvePrimaryTarget(world, caster, rulebook.Target{Type: rulebook.TargetRay, Range: 20})
	require.NotNil(t, got)
	assert.Equal(t, "grounded", got.ID())
}

func TestResolvePrimaryTarget_RayMiss(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)
	world.AddEntity(gametest.NewFakeEntity("behind", game.Vec3{Z: -5}))

	got := resolvePrimaryTarget(world, caster, rulebook.Target{Type: rulebook.TargetRay, Range: 20})
	assert.Nil(t, got)
}

func TestResolvePrimaryTarget_ConeAndAreaReturnNil(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)
	world.AddEntity(gametest.NewFakeEntity("near", game.Vec3{Z: 2}))

	assert.Nil(t, resolvePrimaryTarget(world, caster, rulebook.Target{Type: rulebook.TargetCone, Range: 10}))
	assert.Nil(t, resolvePrimaryTarget(world, caster, rulebook.Target{Type: rulebook.TargetArea, Range: 10}))
}

func TestResolveTargets_SelfMode(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)
	shape := rulebook.Target{Type: rulebook.TargetSelf}

	assert.Equal(t, []string{"caster"}, targetIDs(resolveTargets(world, caster, shape, caster, true)))
	assert.Empty(t, resolveTargets(world, caster, shape, caster, false))
}

func TestResolveTargets_RayMode(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)
	victim := gametest.NewFakeEntity("victim", game.Vec3{Z: 5})
	shape := rulebook.Target{Type: rulebook.TargetRay, Range: 20}

	assert.Equal(t, []string{"victim"}, targetIDs(resolveTargets(world, caster, shape, victim, false)))
	assert.Empty(t, resolveTargets(world, caster, shape, nil, true))

	// A ray that resolved to the caster is filtered for damaging effects
	assert.Empty(t, resolveTargets(world, caster, shape, caster, false))
	assert.Equal(t, []string{"caster"}, targetIDs(resolveTargets(world, caster, shape, caster, true)))
}

func TestResolveTargets_ConeFiltersByAngle(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)

	// Facing +Z. In front inside the half-angle, off to the side outside it.
	world.AddEntity(gametest.NewFakeEntity("ahead", game.Vec3{Z: 5}))
	world.AddEntity(gametest.NewFakeEntity("diagonal", game.Vec3{X: 2, Z: 5})) // ~21.8 degrees
	world.AddEntity(gametest.NewFakeEntity("flank", game.Vec3{X: 5, Z: 2}))    // ~68.2 degrees
	world.AddEntity(gametest.NewFakeEntity("behind", game.Vec3{Z: -5}))

	shape := rulebook.Target{Type: rulebook.TargetCone, Range: 10}
	got := targetIDs(resolveTargets(world, caster, shape, nil, false))
	assert.ElementsMatch(t, []string{"ahead", "diagonal"}, got)
}

func TestResolveTargets_AreaExcludesCasterAndDead(t *testing.T) {
	world := gametest.NewFakeWorld()
	caster := gametest.NewFakePlayer("caster", "Aldra")
	world.AddPlayer(caster)
	world.AddEntity(gametest.NewFakeEntity("close", game.Vec3{X: 3}))
	world.AddEntity(gametest.NewFakeEntity("edge", game.Vec3{X: 5, Z: 5}))
	world.AddEntity(gametest.NewFakeEntity("outside", game.Vec3{X: 12}))
	corpse := gametest.NewFakeEntity("corpse", game.Vec3{X: 1})
	corpse.Dead = true
	world.AddEntity(corpse)

	shape := rulebook.Target{Type: rulebook.TargetArea, Range: 6}
	got := targetIDs(resolveTargets(world, caster, shape, nil, true))
	assert.ElementsMatch(t, []string{"close", "edge"}, got)
}
