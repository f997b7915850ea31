// Package resource implements pool regeneration and spending for the two
// player resource pools.
package resource

import (
	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/rulebook"
	"github.com/emberforge/rpgcore/internal/scheduler"
	profileSvc "github.com/emberforge/rpgcore/internal/services/profile"
)

// Default regeneration tuning, amounts applied per regen period
const (
	DefaultRegenPeriodTicks = 20
	DefaultPrimaryRegen     = 2.0
	DefaultSecondaryRegen   = 2.5
)

// Service regenerates and spends resource pools
type Service interface {
	// TrySpend atomically checks and deducts a cost. The spend is the check:
	// returns false and leaves the pool untouched when it cannot be afforded.
	TrySpend(p *profile.Profile, cost rulebook.ResourceCost) bool

	// Regen applies one regeneration step to every loaded profile
	Regen()

	// Start schedules the regeneration loop on the simulation tick
	Start(s *scheduler.Scheduler) *scheduler.Task
}

type service struct {
	profiles profileSvc.Service

	periodTicks    int
	primaryRegen   float64
	secondaryRegen float64
}

// ServiceConfig holds configuration for the resource service
type ServiceConfig struct {
	ProfileService profileSvc.Service

	// Zero values fall back to the defaults above
	RegenPeriodTicks int
	PrimaryRegen     float64
	SecondaryRegen   float64
}

// NewService creates a new resource service
func NewService(cfg *ServiceConfig) Service {
	if cfg.ProfileService == nil {
		panic("profile service is required")
	}

	svc := &service{
		profiles:       cfg.ProfileService,
		periodTicks:    cfg.RegenPeriodTicks,
		primaryRegen:   cfg.PrimaryRegen,
		secondaryRegen: cfg.SecondaryRegen,
	}
	if svc.periodTicks <= 0 {
		svc.periodTicks = DefaultRegenPeriodTicks
	}
	if svc.primaryRegen <= 0 {
		svc.primaryRegen = DefaultPrimaryRegen
	}
	if svc.secondaryRegen <= 0 {
		svc.secondaryRegen = DefaultSecondaryRegen
	}

	return svc
}

func (s *service) TrySpend(p *profile.Profile, cost rulebook.ResourceCost) bool {
	switch cost.Type {
	case rulebook.ResourcePrimary:
		if p.Primary < cost.Amount {
			return false
		}
		p.SetPrimary(p.Primary - cost.Amount)
		return true
	case rulebook.ResourceSecondary:
		if p.Secondary < cost.Amount {
			return false
		}
		p.SetSecondary(p.Secondary - cost.Amount)
		return true
	default:
		return true
	}
}

// Regen is unconditional: pools tick up regardless of combat or movement,
// capped at the profile's maximums.
func (s *service) Regen() {
	for _, p := range s.profiles.Active() {
		p.SetPrimary(p.Primary + s.primaryRegen)
		p.SetSecondary(p.Secondary + s.secondaryRegen)
	}
}

func (s *service) Start(sched *scheduler.Scheduler) *scheduler.Task {
	return sched.RunEvery(s.periodTicks, s.periodTicks, s.Regen)
}
