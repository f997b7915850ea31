package hud

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/domain/game/gametest"
	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/repositories/profiles"
	"github.com/emberforge/rpgcore/internal/rulebook"
	"github.com/emberforge/rpgcore/internal/scheduler"
	profileSvc "github.com/emberforge/rpgcore/internal/services/profile"
	skillSvc "github.com/emberforge/rpgcore/internal/services/skill"
)

// stubSkills answers cooldown queries from a fixed map
type stubSkills struct {
	cooldowns map[string]time.Duration
}

func (s *stubSkills) OnInputTrigger(context.Context, string, rulebook.Trigger) bool { return false }
func (s *stubSkills) Cast(context.Context, string, string) bool                     { return false }
func (s *stubSkills) GCDLeft(string) time.Duration                                  { return 0 }
func (s *stubSkills) RegisterHandler(string, skillSvc.Handler)                      {}
func (s *stubSkills) UnregisterHandler(string)                                      {}
func (s *stubSkills) Handler(string) skillSvc.Handler                               { return nil }

func (s *stubSkills) CooldownLeft(_, skillID string) time.Duration {
	return s.cooldowns[skillID]
}

type fixture struct {
	svc       Service
	presenter *gametest.RecordingPresenter
	world     *gametest.FakeWorld
	registry  *rulebook.Registry
	profiles  profileSvc.Service
	skills    *stubSkills
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry := rulebook.NewRegistry()
	registry.PutRace(&rulebook.RaceDef{ID: "emberkin", Name: "Emberkin"})
	registry.PutClass(&rulebook.ClassDef{
		ID:       "warrior",
		Name:     "Warrior",
		SkillIDs: []string{"warrior_slam", "warrior_dash", "warrior_roar"},
	})
	registry.PutSkill(&rulebook.SkillDef{ID: "warrior_slam", Trigger: rulebook.TriggerPrimaryKey})
	registry.PutSkill(&rulebook.SkillDef{ID: "warrior_dash", Trigger: rulebook.TriggerRightClick})
	registry.PutSkill(&rulebook.SkillDef{ID: "warrior_roar", Trigger: rulebook.TriggerPrimaryKey})

	presenter := gametest.NewRecordingPresenter()
	world := gametest.NewFakeWorld()
	skills := &stubSkills{cooldowns: map[string]time.Duration{}}
	profSvc := profileSvc.NewService(&profileSvc.ServiceConfig{
		Repository: profiles.NewInMemoryRepository(),
		Registry:   registry,
	})

	svc := NewService(&ServiceConfig{
		Registry:       registry,
		ProfileService: profSvc,
		SkillService:   skills,
		World:          world,
		Presenter:      presenter,
	})

	return &fixture{
		svc:       svc,
		presenter: presenter,
		world:     world,
		registry:  registry,
		profiles:  profSvc,
		skills:    skills,
	}
}

func (f *fixture) addPlayer(t *testing.T, id string) *profile.Profile {
	t.Helper()
	f.world.AddPlayer(gametest.NewFakePlayer(id, id))
	prof, err := f.profiles.EnsureLoaded(context.Background(), id, id)
	require.NoError(t, err)
	prof.RaceID = "emberkin"
	prof.ClassID = "warrior"
	return prof
}

func (f *fixture) player(id string) game.Player {
	return f.world.Player(id)
}

func TestLine_FullStatus(t *testing.T) {
	f := newFixture(t)
	prof := f.addPlayer(t, "p1")
	prof.SetLevel(7)
	prof.SetPrimary(42.4)
	prof.SetSecondary(99.6)

	line := f.svc.Line(f.player("p1"))
	assert.Equal(t, "Lvl 7 | Emberkin | Warrior | ✦ 42/100 | ⚡ 100/100 | CD 1:✓ 2:✓", line)
}

func TestLine_PoolsRoundCurrentAndPrintMaxAsIs(t *testing.T) {
	f := newFixture(t)
	prof := f.addPlayer(t, "p1")
	prof.SetMaxPrimary(130)
	prof.SetMaxSecondary(85)
	prof.SetPrimary(41.5)
	prof.SetSecondary(12.4)

	line := f.svc.Line(f.player("p1"))
	assert.Contains(t, line, "✦ 42/130")
	assert.Contains(t, line, "⚡ 12/85")
}

func TestLine_CooldownSegment(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p1")

	f.skills.cooldowns["warrior_slam"] = 4200 * time.Millisecond
	f.skills.cooldowns["warrior_roar"] = 10 * time.Millisecond

	line := f.svc.Line(f.player("p1"))
	// 4200ms rounds up to 5s, anything under a second floors at 1s
	assert.Contains(t, line, "CD 1:5s 2:1s")
}

func TestLine_RightClickSkillsStayOut(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p1")

	f.skills.cooldowns["warrior_dash"] = time.Minute

	line := f.svc.Line(f.player("p1"))
	assert.Contains(t, line, "CD 1:✓ 2:✓")
}

func TestLine_UnresolvedRefsShowDashes(t *testing.T) {
	f := newFixture(t)
	prof := f.addPlayer(t, "p1")
	prof.RaceID = "no_such_race"
	prof.ClassID = "no_such_class"

	line := f.svc.Line(f.player("p1"))
	assert.Equal(t, "Lvl 1 | - | - | ✦ 100/100 | ⚡ 100/100", line)
}

func TestLine_UnloadedPlayerIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.world.AddPlayer(gametest.NewFakePlayer("ghost", "ghost"))

	assert.Empty(t, f.svc.Line(f.player("ghost")))
}

func TestRefresh_SendsActionBars(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p1")
	f.addPlayer(t, "p2")
	f.world.AddPlayer(gametest.NewFakePlayer("ghost", "ghost"))

	f.svc.Refresh()

	require.Len(t, f.presenter.ActionBars, 2)
	ids := []string{f.presenter.ActionBars[0].TargetID, f.presenter.ActionBars[1].TargetID}
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

func TestStart_RunsOnThePeriod(t *testing.T) {
	f := newFixture(t)
	f.addPlayer(t, "p1")

	sched := scheduler.New()
	task := f.svc.Start(sched)

	sched.Advance(DefaultPeriodTicks - 1)
	assert.Empty(t, f.presenter.ActionBars)

	sched.Advance(1)
	assert.Len(t, f.presenter.ActionBars, 1)

	sched.Advance(DefaultPeriodTicks)
	assert.Len(t, f.presenter.ActionBars, 2)

	task.Cancel()
	sched.Advance(DefaultPeriodTicks * 2)
	assert.Len(t, f.presenter.ActionBars, 2)
}
