// Package services wires the rules-core service graph for an embedding host.
package services

import (
	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/emberforge/rpgcore/internal/api"
	"github.com/emberforge/rpgcore/internal/dice"
	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/repositories/profiles"
	"github.com/emberforge/rpgcore/internal/rulebook"
	"github.com/emberforge/rpgcore/internal/scheduler"
	cinematicsService "github.com/emberforge/rpgcore/internal/services/cinematics"
	cosmeticsService "github.com/emberforge/rpgcore/internal/services/cosmetics"
	hudService "github.com/emberforge/rpgcore/internal/services/hud"
	profileService "github.com/emberforge/rpgcore/internal/services/profile"
	resourceService "github.com/emberforge/rpgcore/internal/services/resource"
	skillService "github.com/emberforge/rpgcore/internal/services/skill"
	statsService "github.com/emberforge/rpgcore/internal/services/stats"
)

// Provider holds all service instances
type Provider struct {
	ProfileService    profileService.Service
	ResourceService   resourceService.Service
	StatsService      statsService.Service
	SkillService      skillService.Service
	CinematicsService cinematicsService.Service
	CosmeticsService  cosmeticsService.Service
	HUDService        hudService.Service
	API               api.API

	EventBus  *rpgevents.Bus
	Scheduler *scheduler.Scheduler

	hudEnabled bool
}

// ProviderConfig holds configuration for creating services. Registry, World,
// Presenter and AttributeSink come from the host; everything else defaults.
type ProviderConfig struct {
	Registry      *rulebook.Registry
	World         game.World
	Presenter     game.Presenter
	AttributeSink game.AttributeSink

	// ProfileRepository defaults to in-memory when nil
	ProfileRepository profiles.Repository

	// Scheduler defaults to a fresh one; share it with the host tick loop
	Scheduler *scheduler.Scheduler

	// EventBus defaults to a fresh bus
	EventBus *rpgevents.Bus

	// DiceRoller defaults to the random roller
	DiceRoller dice.Roller

	// EnabledTriggers restricts casting inputs; empty enables all
	EnabledTriggers []rulebook.Trigger

	// Regen knobs, zero values use the resource service defaults
	RegenPeriodTicks int
	PrimaryRegen     float64
	SecondaryRegen   float64

	// HUD knobs
	HUDEnabled     bool
	HUDPeriodTicks int

	TalentPointsPerLevel int
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	profileRepo := cfg.ProfileRepository
	if profileRepo == nil {
		profileRepo = profiles.NewInMemoryRepository()
	}

	sched := cfg.Scheduler
	if sched == nil {
		sched = scheduler.New()
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = rpgevents.NewBus()
	}

	profSvc := profileService.NewService(&profileService.ServiceConfig{
		Repository: profileRepo,
		Registry:   cfg.Registry,
	})

	resourceSvc := resourceService.NewService(&resourceService.ServiceConfig{
		ProfileService:   profSvc,
		RegenPeriodTicks: cfg.RegenPeriodTicks,
		PrimaryRegen:     cfg.PrimaryRegen,
		SecondaryRegen:   cfg.SecondaryRegen,
	})

	statsSvc := statsService.NewService(&statsService.ServiceConfig{
		Registry:      cfg.Registry,
		AttributeSink: cfg.AttributeSink,
		World:         cfg.World,
	})

	cinematicsSvc := cinematicsService.NewService(&cinematicsService.ServiceConfig{
		Presenter: cfg.Presenter,
		Scheduler: sched,
	})

	skillSvc := skillService.NewService(&skillService.ServiceConfig{
		Registry:          cfg.Registry,
		ProfileService:    profSvc,
		ResourceService:   resourceSvc,
		CinematicsService: cinematicsSvc,
		World:             cfg.World,
		Presenter:         cfg.Presenter,
		DiceRoller:        cfg.DiceRoller,
		EventBus:          bus,
		EnabledTriggers:   cfg.EnabledTriggers,
	})

	cosmeticsSvc := cosmeticsService.NewService(&cosmeticsService.ServiceConfig{
		Registry:       cfg.Registry,
		ProfileService: profSvc,
		World:          cfg.World,
		Presenter:      cfg.Presenter,
	})

	hudSvc := hudService.NewService(&hudService.ServiceConfig{
		Registry:       cfg.Registry,
		ProfileService: profSvc,
		SkillService:   skillSvc,
		World:          cfg.World,
		Presenter:      cfg.Presenter,
		PeriodTicks:    cfg.HUDPeriodTicks,
	})

	extensionAPI := api.NewService(&api.ServiceConfig{
		Registry:             cfg.Registry,
		ProfileService:       profSvc,
		StatsService:         statsSvc,
		SkillService:         skillSvc,
		World:                cfg.World,
		EventBus:             bus,
		TalentPointsPerLevel: cfg.TalentPointsPerLevel,
	})

	return &Provider{
		ProfileService:    profSvc,
		ResourceService:   resourceSvc,
		StatsService:      statsSvc,
		SkillService:      skillSvc,
		CinematicsService: cinematicsSvc,
		CosmeticsService:  cosmeticsSvc,
		HUDService:        hudSvc,
		API:               extensionAPI,
		EventBus:          bus,
		Scheduler:         sched,
		hudEnabled:        cfg.HUDEnabled,
	}
}

// StartLoops schedules the periodic services (resource regen, cosmetics, and
// the HUD when enabled) on the provider's scheduler.
func (p *Provider) StartLoops() []*scheduler.Task {
	tasks := []*scheduler.Task{
		p.ResourceService.Start(p.Scheduler),
		p.CosmeticsService.Start(p.Scheduler),
	}
	if p.hudEnabled {
		tasks = append(tasks, p.HUDService.Start(p.Scheduler))
	}
	return tasks
}
