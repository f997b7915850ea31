// Package cinematics plays skill presentation timelines. Everything here is
// best-effort visual output; no step ever affects game state.
package cinematics

import (
	"math"
	"strings"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/rulebook"
	"github.com/emberforge/rpgcore/internal/scheduler"
)

// Phase names match the tokens used in timeline definitions
const (
	PhaseCast   = "cast"
	PhaseImpact = "impact"
	PhaseExpire = "expire"
)

// fallbackSound is played for skills without any timeline data
const (
	fallbackSound       = "ENTITY_PLAYER_ATTACK_SWEEP"
	fallbackSoundVolume = 0.6
	fallbackSoundPitch  = 1.2
)

// Service plays cinematic timelines for skill casts
type Service interface {
	// Play fires every step of the named phase. Steps with a tick offset are
	// scheduled; offset-zero steps render immediately.
	Play(caster game.LivingEntity, skill *rulebook.SkillDef, target game.LivingEntity, phase string)

	// PlayFallback renders the legacy one-shot visual for skills without a
	// timeline: the definition's particle hint around the caster plus a
	// generic swing sound.
	PlayFallback(caster game.LivingEntity, skill *rulebook.SkillDef)
}

type service struct {
	presenter game.Presenter
	sched     *scheduler.Scheduler
}

// ServiceConfig holds configuration for the cinematics service
type ServiceConfig struct {
	Presenter game.Presenter
	Scheduler *scheduler.Scheduler
}

// NewService creates a new cinematics service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Presenter == nil {
		panic("presenter is required")
	}
	if cfg.Scheduler == nil {
		panic("scheduler is required")
	}

	return &service{
		presenter: cfg.Presenter,
		sched:     cfg.Scheduler,
	}
}

func (s *service) Play(caster game.LivingEntity, skill *rulebook.SkillDef, target game.LivingEntity, phase string) {
	if caster == nil || skill == nil || !skill.HasTimeline() {
		return
	}

	steps, _ := skill.Data["timeline"].([]any)
	for _, raw := range steps {
		step, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if !strings.EqualFold(asString(step["phase"], PhaseCast), phase) {
			continue
		}

		anchor := caster
		if strings.EqualFold(asString(step["target"], "CASTER"), "TARGET") && target != nil {
			anchor = target
		}

		at := asInt(step["at"], 0)
		if at <= 0 {
			s.render(step, caster, anchor)
			continue
		}
		s.sched.RunLater(at, func() {
			if anchor.Alive() {
				s.render(step, caster, anchor)
			}
		})
	}
}

func (s *service) PlayFallback(caster game.LivingEntity, skill *rulebook.SkillDef) {
	if caster == nil || skill == nil {
		return
	}
	if particle := strings.TrimSpace(skill.Visuals.Particle); particle != "" {
		s.presenter.SpawnParticle(particle, caster.Position().Add(game.Vec3{Y: 1}), 12, 0.3, 0.01)
	}
	s.presenter.PlaySound(fallbackSound, caster.Position(), fallbackSoundVolume, fallbackSoundPitch)
}

func (s *service) render(step map[string]any, caster, anchor game.LivingEntity) {
	pos := anchor.Position()

	switch strings.ToUpper(asString(step["type"], "")) {
	case "SOUND":
		s.presenter.PlaySound(
			asString(step["sound"], fallbackSound),
			pos,
			asFloat(step["volume"], 1.0),
			asFloat(step["pitch"], 1.0),
		)

	case "PARTICLE":
		s.presenter.SpawnParticle(
			asString(step["particle"], "ENCHANTED_HIT"),
			pos.Add(game.Vec3{Y: asFloat(step["y"], 1.0)}),
			asInt(step["count"], 8),
			asFloat(step["spread"], 0.25),
			asFloat(step["speed"], 0.01),
		)

	case "RING":
		s.ring(
			asString(step["particle"], "ENCHANTED_HIT"),
			pos.Add(game.Vec3{Y: asFloat(step["y"], 0.2)}),
			asFloat(step["radius"], 2.0),
			asInt(step["points"], 24),
		)

	case "BEAM":
		s.beam(
			asString(step["particle"], "END_ROD"),
			caster.EyePosition(),
			pos.Add(game.Vec3{Y: 1}),
			asInt(step["points"], 20),
		)

	case "SPIRAL":
		s.spiral(
			asString(step["particle"], "ENCHANTED_HIT"),
			pos,
			asFloat(step["radius"], 1.0),
			asFloat(step["height"], 2.0),
			asFloat(step["turns"], 2),
			asInt(step["points"], 48),
		)

	case "PULSE":
		s.pulse(step, anchor)

	case "TITLE":
		if pl, ok := caster.(game.Player); ok {
			s.presenter.SendTitle(pl,
				asString(step["title"], ""),
				asString(step["subtitle"], ""),
				asInt(step["fadeIn"], 5),
				asInt(step["stay"], 20),
				asInt(step["fadeOut"], 5),
			)
		}

	case "ACTIONBAR":
		if pl, ok := caster.(game.Player); ok {
			s.presenter.SendActionBar(pl, asString(step["text"], ""))
		}
	}
}

func (s *service) ring(particle string, center game.Vec3, radius float64, points int) {
	if points < 1 {
		points = 1
	}
	for i := 0; i < points; i++ {
		angle := 2 * math.Pi * float64(i) / float64(points)
		s.presenter.SpawnParticle(particle, center.Add(game.Vec3{
			X: radius * math.Cos(angle),
			Z: radius * math.Sin(angle),
		}), 1, 0, 0)
	}
}

func (s *service) beam(particle string, from, to game.Vec3, points int) {
	if points < 2 {
		points = 2
	}
	delta := to.Sub(from).Scale(1 / float64(points-1))
	pos := from
	for i := 0; i < points; i++ {
		s.presenter.SpawnParticle(particle, pos, 1, 0, 0)
		pos = pos.Add(delta)
	}
}

func (s *service) spiral(particle string, base game.Vec3, radius, height, turns float64, points int) {
	if points < 1 {
		points = 1
	}
	for i := 0; i < points; i++ {
		frac := float64(i) / float64(points)
		angle := 2 * math.Pi * turns * frac
		s.presenter.SpawnParticle(particle, base.Add(game.Vec3{
			X: radius * math.Cos(angle),
			Y: height * frac,
			Z: radius * math.Sin(angle),
		}), 1, 0, 0)
	}
}

// pulse renders a series of expanding rings on the scheduler, stopping early
// when the anchor dies.
func (s *service) pulse(step map[string]any, anchor game.LivingEntity) {
	particle := asString(step["particle"], "ENCHANTED_HIT")
	startRadius := asFloat(step["startRadius"], 1.0)
	endRadius := asFloat(step["endRadius"], 3.0)
	pulses := asInt(step["pulses"], 3)
	every := asInt(step["everyTicks"], 5)
	points := asInt(step["points"], 24)

	if pulses < 1 {
		pulses = 1
	}

	fired := 0
	var task *scheduler.Task
	stop := func() {
		if task != nil {
			task.Cancel()
		}
	}
	run := func() {
		if !anchor.Alive() || fired >= pulses {
			stop()
			return
		}
		frac := 0.0
		if pulses > 1 {
			frac = float64(fired) / float64(pulses-1)
		}
		radius := startRadius + (endRadius-startRadius)*frac
		s.ring(particle, anchor.Position().Add(game.Vec3{Y: 0.2}), radius, points)
		fired++
		if fired >= pulses {
			stop()
		}
	}

	// First pulse renders immediately, the rest ride the scheduler
	run()
	if fired >= pulses {
		return
	}
	task = s.sched.RunEvery(every, every, func() { run() })
}

func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func asFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

func asInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}
