// Package hud pushes the periodic actionbar status line to online players.
package hud

import (
	"fmt"
	"math"
	"strings"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/rulebook"
	"github.com/emberforge/rpgcore/internal/scheduler"
	profileSvc "github.com/emberforge/rpgcore/internal/services/profile"
	skillSvc "github.com/emberforge/rpgcore/internal/services/skill"
)

const (
	// DefaultPeriodTicks is how often the actionbar line refreshes
	DefaultPeriodTicks = 10

	// maxCooldownSlots caps the cooldown segment at the hotbar width
	maxCooldownSlots = 9
)

// Service runs the actionbar HUD loop
type Service interface {
	// Start schedules the refresh loop; the returned task stops it
	Start(s *scheduler.Scheduler) *scheduler.Task

	// Refresh pushes one actionbar line to every online player
	Refresh()

	// Line builds the actionbar text for one player, or "" when the player
	// has no loaded profile
	Line(pl game.Player) string
}

type service struct {
	registry    *rulebook.Registry
	profiles    profileSvc.Service
	skills      skillSvc.Service
	world       game.World
	presenter   game.Presenter
	periodTicks int
}

// ServiceConfig holds configuration for the HUD service
type ServiceConfig struct {
	Registry       *rulebook.Registry
	ProfileService profileSvc.Service
	SkillService   skillSvc.Service
	World          game.World
	Presenter      game.Presenter

	// PeriodTicks overrides the refresh period, default DefaultPeriodTicks
	PeriodTicks int
}

// NewService creates a new HUD service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Registry == nil {
		panic("definition registry is required")
	}
	if cfg.ProfileService == nil {
		panic("profile service is required")
	}
	if cfg.SkillService == nil {
		panic("skill service is required")
	}
	if cfg.World == nil {
		panic("world is required")
	}
	if cfg.Presenter == nil {
		panic("presenter is required")
	}

	period := cfg.PeriodTicks
	if period < 1 {
		period = DefaultPeriodTicks
	}

	return &service{
		registry:    cfg.Registry,
		profiles:    cfg.ProfileService,
		skills:      cfg.SkillService,
		world:       cfg.World,
		presenter:   cfg.Presenter,
		periodTicks: period,
	}
}

func (s *service) Start(sched *scheduler.Scheduler) *scheduler.Task {
	return sched.RunEvery(s.periodTicks, s.periodTicks, s.Refresh)
}

func (s *service) Refresh() {
	for _, pl := range s.world.Players() {
		if line := s.Line(pl); line != "" {
			s.presenter.SendActionBar(pl, line)
		}
	}
}

func (s *service) Line(pl game.Player) string {
	prof := s.profiles.Get(pl.ID())
	if prof == nil {
		return ""
	}

	raceName := "-"
	if race := s.registry.Race(prof.RaceID); race != nil {
		raceName = race.Name
	}

	className := "-"
	class := s.registry.Class(prof.ClassID)
	if class != nil {
		className = class.Name
	}

	line := fmt.Sprintf("Lvl %d | %s | %s | ✦ %d/%d | ⚡ %d/%d",
		prof.Level,
		raceName,
		className,
		roundPool(prof.Primary), prof.MaxPrimary,
		roundPool(prof.Secondary), prof.MaxSecondary,
	)

	if cd := s.cooldownSegment(pl, class); cd != "" {
		line += " | CD " + cd
	}
	return line
}

// cooldownSegment summarizes hotbar-key skill cooldowns as "1:✓ 2:5s ..."
func (s *service) cooldownSegment(pl game.Player, class *rulebook.ClassDef) string {
	if class == nil {
		return ""
	}

	var parts []string
	slot := 0
	for _, sid := range class.SkillIDs {
		def := s.registry.Skill(sid)
		if def == nil || def.Trigger != rulebook.TriggerPrimaryKey {
			continue
		}
		if slot >= maxCooldownSlots {
			break
		}
		slot++

		left := s.skills.CooldownLeft(pl.ID(), def.ID)
		if left <= 0 {
			parts = append(parts, fmt.Sprintf("%d:✓", slot))
			continue
		}
		sec := (left.Milliseconds() + 999) / 1000
		if sec < 1 {
			sec = 1
		}
		parts = append(parts, fmt.Sprintf("%d:%ds", slot, sec))
	}
	return strings.Join(parts, " ")
}

func roundPool(v float64) int {
	return int(math.Round(v))
}
