// Package cosmetics renders race auras around online players. Purely
// presentational; nothing here reads or writes gameplay state.
package cosmetics

import (
	"strconv"
	"strings"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/rulebook"
	"github.com/emberforge/rpgcore/internal/scheduler"
	profileSvc "github.com/emberforge/rpgcore/internal/services/profile"
)

const auraParticleCount = 6

// Service runs the aura render loop
type Service interface {
	// Start schedules the aura loop; the returned task stops it
	Start(s *scheduler.Scheduler) *scheduler.Task

	// RenderAuras draws one aura frame for every online player whose race
	// has one and whose period lands on the given tick
	RenderAuras(tick int64)
}

type service struct {
	registry  *rulebook.Registry
	profiles  profileSvc.Service
	world     game.World
	presenter game.Presenter
}

// ServiceConfig holds configuration for the cosmetics service
type ServiceConfig struct {
	Registry       *rulebook.Registry
	ProfileService profileSvc.Service
	World          game.World
	Presenter      game.Presenter
}

// NewService creates a new cosmetics service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Registry == nil {
		panic("definition registry is required")
	}
	if cfg.ProfileService == nil {
		panic("profile service is required")
	}
	if cfg.World == nil {
		panic("world is required")
	}
	if cfg.Presenter == nil {
		panic("presenter is required")
	}

	return &service{
		registry:  cfg.Registry,
		profiles:  cfg.ProfileService,
		world:     cfg.World,
		presenter: cfg.Presenter,
	}
}

func (s *service) Start(sched *scheduler.Scheduler) *scheduler.Task {
	return sched.RunEvery(1, 1, func() {
		s.RenderAuras(sched.Now())
	})
}

func (s *service) RenderAuras(tick int64) {
	for _, pl := range s.world.Players() {
		s.renderAura(pl, tick)
	}
}

func (s *service) renderAura(pl game.Player, tick int64) {
	prof := s.profiles.Get(pl.ID())
	if prof == nil {
		return
	}

	race := s.registry.Race(prof.RaceID)
	if race == nil || race.AuraID == "" {
		return
	}
	aura := s.registry.Aura(race.AuraID)
	if aura == nil {
		return
	}

	period := int64(aura.PeriodTicks)
	if period < 1 {
		period = 1
	}
	if tick%period != 0 {
		return
	}

	pos := pl.Position().Add(game.Vec3{Y: 1})
	particle := strings.ToUpper(strings.TrimSpace(aura.Particle))
	if particle == "" {
		return
	}
	if particle == "DUST" {
		r, g, b := ParseColor(aura.Color)
		size := aura.Size
		if size <= 0 {
			size = 1
		}
		s.presenter.SpawnDust(pos, auraParticleCount, r, g, b, size)
		return
	}

	count := auraParticleCount
	if particle == "ITEM" {
		count = 4
	}
	s.presenter.SpawnParticle(particle, pos, count, 0.3, 0.02)
}

// ParseColor parses an "r,g,b" string, clamping components into [0, 255].
// Blank or malformed input yields white.
func ParseColor(raw string) (r, g, b int) {
	r, g, b = 255, 255, 255
	parts := strings.Split(raw, ",")
	if strings.TrimSpace(raw) == "" || len(parts) != 3 {
		return r, g, b
	}

	vals := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 255, 255, 255
		}
		vals[i] = clampByte(v)
	}
	return vals[0], vals[1], vals[2]
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
