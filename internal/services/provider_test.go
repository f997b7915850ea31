package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberforge/rpgcore/internal/domain/game/gametest"
	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

func newProviderFixture() (*Provider, *gametest.FakeWorld) {
	registry := rulebook.NewRegistry()
	registry.PutRace(&rulebook.RaceDef{ID: profile.FallbackRaceID, Name: "Human"})
	registry.PutClass(&rulebook.ClassDef{ID: profile.FallbackClassID, Name: "Guest"})

	world := gametest.NewFakeWorld()
	p := NewProvider(&ProviderConfig{
		Registry:      registry,
		World:         world,
		Presenter:     gametest.NewRecordingPresenter(),
		AttributeSink: gametest.NewFakeAttributeSink(),
		HUDEnabled:    true,
	})
	return p, world
}

func TestNewProvider_WiresEverything(t *testing.T) {
	p, _ := newProviderFixture()

	assert.NotNil(t, p.ProfileService)
	assert.NotNil(t, p.ResourceService)
	assert.NotNil(t, p.StatsService)
	assert.NotNil(t, p.SkillService)
	assert.NotNil(t, p.CinematicsService)
	assert.NotNil(t, p.CosmeticsService)
	assert.NotNil(t, p.HUDService)
	assert.NotNil(t, p.API)
	assert.NotNil(t, p.EventBus)
	assert.NotNil(t, p.Scheduler)
}

func TestStartLoops_RegenRunsOnTheSharedScheduler(t *testing.T) {
	p, world := newProviderFixture()
	world.AddPlayer(gametest.NewFakePlayer("p1", "p1"))

	prof, err := p.ProfileService.EnsureLoaded(context.Background(), "p1", "p1")
	require.NoError(t, err)
	prof.SetPrimary(50)

	tasks := p.StartLoops()
	assert.Len(t, tasks, 3)

	// default regen period is 20 ticks at +2.0 primary per step
	p.Scheduler.Advance(20)
	assert.InDelta(t, 52.0, prof.Primary, 1e-9)

	for _, task := range tasks {
		task.Cancel()
	}
	p.Scheduler.Advance(40)
	assert.InDelta(t, 52.0, prof.Primary, 1e-9)
}

func TestStartLoops_HUDDisabled(t *testing.T) {
	registry := rulebook.NewRegistry()
	p := NewProvider(&ProviderConfig{
		Registry:      registry,
		World:         gametest.NewFakeWorld(),
		Presenter:     gametest.NewRecordingPresenter(),
		AttributeSink: gametest.NewFakeAttributeSink(),
	})

	assert.Len(t, p.StartLoops(), 2)
}
