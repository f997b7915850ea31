package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/repositories/profiles"
	"github.com/emberforge/rpgcore/internal/rulebook"
	"github.com/emberforge/rpgcore/internal/scheduler"
	profileSvc "github.com/emberforge/rpgcore/internal/services/profile"
)

func setup(t *testing.T) (Service, profileSvc.Service) {
	t.Helper()

	reg := rulebook.NewRegistry()
	reg.PutRace(&rulebook.RaceDef{ID: profile.FallbackRaceID})
	reg.PutClass(&rulebook.ClassDef{ID: profile.FallbackClassID})

	ps := profileSvc.NewService(&profileSvc.ServiceConfig{
		Repository: profiles.NewInMemoryRepository(),
		Registry:   reg,
	})
	rs := NewService(&ServiceConfig{ProfileService: ps})
	return rs, ps
}

func TestTrySpend(t *testing.T) {
	rs, _ := setup(t)

	tests := []struct {
		name        string
		primary     float64
		cost        rulebook.ResourceCost
		want        bool
		wantPrimary float64
	}{
		{
			name:        "affordable cost spends",
			primary:     50,
			cost:        rulebook.ResourceCost{Type: rulebook.ResourcePrimary, Amount: 20},
			want:        true,
			wantPrimary: 30,
		},
		{
			name:        "exact balance spends to zero",
			primary:     20,
			cost:        rulebook.ResourceCost{Type: rulebook.ResourcePrimary, Amount: 20},
			want:        true,
			wantPrimary: 0,
		},
		{
			name:        "unaffordable cost leaves pool untouched",
			primary:     10,
			cost:        rulebook.ResourceCost{Type: rulebook.ResourcePrimary, Amount: 20},
			want:        false,
			wantPrimary: 10,
		},
		{
			name:        "free skill always passes",
			primary:     0,
			cost:        rulebook.NoCost(),
			want:        true,
			wantPrimary: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.New("player-1", "Aldra")
			p.SetPrimary(tt.primary)

			got := rs.TrySpend(p, tt.cost)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, tt.wantPrimary, p.Primary, 0.001)
		})
	}
}

func TestTrySpend_SecondaryPool(t *testing.T) {
	rs, _ := setup(t)

	p := profile.New("player-1", "Aldra")
	p.SetSecondary(5)

	assert.False(t, rs.TrySpend(p, rulebook.ResourceCost{Type: rulebook.ResourceSecondary, Amount: 10}))
	assert.InDelta(t, 5, p.Secondary, 0.001)

	assert.True(t, rs.TrySpend(p, rulebook.ResourceCost{Type: rulebook.ResourceSecondary, Amount: 5}))
	assert.InDelta(t, 0, p.Secondary, 0.001)
}

func TestRegen_ClampsAtMax(t *testing.T) {
	rs, ps := setup(t)

	p, err := ps.EnsureLoaded(context.Background(), "player-1", "Aldra")
	require.NoError(t, err)
	p.SetPrimary(10)
	p.SetSecondary(99)

	rs.Regen()
	assert.InDelta(t, 10+DefaultPrimaryRegen, p.Primary, 0.001)
	assert.InDelta(t, float64(p.MaxSecondary), p.Secondary, 0.001)

	// Full pools stay full
	rs.Regen()
	rs.Regen()
	assert.InDelta(t, 10+DefaultPrimaryRegen*3, p.Primary, 0.001)
	assert.InDelta(t, float64(p.MaxSecondary), p.Secondary, 0.001)
}

func TestStart_RunsOnSchedule(t *testing.T) {
	rs, ps := setup(t)

	p, err := ps.EnsureLoaded(context.Background(), "player-1", "Aldra")
	require.NoError(t, err)
	p.SetPrimary(0)

	sched := scheduler.New()
	task := rs.Start(sched)

	sched.Advance(DefaultRegenPeriodTicks - 1)
	assert.InDelta(t, 0, p.Primary, 0.001)

	sched.Advance(1)
	assert.InDelta(t, DefaultPrimaryRegen, p.Primary, 0.001)

	sched.Advance(DefaultRegenPeriodTicks * 2)
	assert.InDelta(t, DefaultPrimaryRegen*3, p.Primary, 0.001)

	task.Cancel()
	sched.Advance(DefaultRegenPeriodTicks * 2)
	assert.InDelta(t, DefaultPrimaryRegen*3, p.Primary, 0.001)
}
