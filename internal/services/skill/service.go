// Package skill implements the casting pipeline: input dispatch, validation,
// target resolution, handler dispatch and the built-in effect executor.
package skill

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/emberforge/rpgcore/internal/dice"
	"github.com/emberforge/rpgcore/internal/domain/events"
	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/rulebook"
	"github.com/emberforge/rpgcore/internal/services/cinematics"
	profileSvc "github.com/emberforge/rpgcore/internal/services/profile"
	resourceSvc "github.com/emberforge/rpgcore/internal/services/resource"
	"github.com/emberforge/rpgcore/internal/uuid"
)

type service struct {
	registry   *rulebook.Registry
	profiles   profileSvc.Service
	resources  resourceSvc.Service
	cinematics cinematics.Service
	world      game.World
	presenter  game.Presenter
	handlers   *HandlerRegistry
	builtin    *builtinExecutor
	eventBus   *rpgevents.Bus
	idGen      uuid.Generator

	enabledTriggers map[rulebook.Trigger]bool // nil allows every trigger

	now func() time.Time

	// Cooldown state is kept in-memory and dropped on restart
	mu            sync.Mutex
	gcdUntil      map[string]time.Time
	cooldownUntil map[string]map[string]time.Time
}

// ServiceConfig holds configuration for the skill service
type ServiceConfig struct {
	Registry          *rulebook.Registry
	ProfileService    profileSvc.Service
	ResourceService   resourceSvc.Service
	CinematicsService cinematics.Service
	World             game.World
	Presenter         game.Presenter
	DiceRoller        dice.Roller
	EventBus          *rpgevents.Bus
	IDGenerator       uuid.Generator

	// EnabledTriggers restricts which input combinations cast skills.
	// Empty means every trigger is enabled.
	EnabledTriggers []rulebook.Trigger
}

// NewService creates a new skill service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Registry == nil {
		panic("definition registry is required")
	}
	if cfg.ProfileService == nil {
		panic("profile service is required")
	}
	if cfg.ResourceService == nil {
		panic("resource service is required")
	}
	if cfg.CinematicsService == nil {
		panic("cinematics service is required")
	}
	if cfg.World == nil {
		panic("world is required")
	}
	if cfg.Presenter == nil {
		panic("presenter is required")
	}

	roller := cfg.DiceRoller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = uuid.NewGoogleUUIDGenerator()
	}

	svc := &service{
		registry:      cfg.Registry,
		profiles:      cfg.ProfileService,
		resources:     cfg.ResourceService,
		cinematics:    cfg.CinematicsService,
		world:         cfg.World,
		presenter:     cfg.Presenter,
		handlers:      NewHandlerRegistry(),
		builtin:       newBuiltinExecutor(cfg.Presenter, roller),
		eventBus:      cfg.EventBus,
		idGen:         idGen,
		now:           time.Now,
		gcdUntil:      make(map[string]time.Time),
		cooldownUntil: make(map[string]map[string]time.Time),
	}

	if len(cfg.EnabledTriggers) > 0 {
		svc.enabledTriggers = make(map[rulebook.Trigger]bool, len(cfg.EnabledTriggers))
		for _, t := range cfg.EnabledTriggers {
			svc.enabledTriggers[t] = true
		}
	}

	return svc
}

func (s *service) triggerEnabled(t rulebook.Trigger) bool {
	return s.enabledTriggers == nil || s.enabledTriggers[t]
}

// OnInputTrigger maps an input combination to the held hotbar slot: the
// N-th skill bound to this trigger in the player's class, no wrap-around.
func (s *service) OnInputTrigger(ctx context.Context, playerID string, trigger rulebook.Trigger) bool {
	if !s.triggerEnabled(trigger) {
		return false
	}

	pl := s.world.Player(playerID)
	if pl == nil {
		return false
	}

	prof, err := s.profiles.EnsureLoaded(ctx, playerID, pl.Name())
	if err != nil {
		log.Printf("skill: failed to load profile for %s: %v", playerID, err)
		return false
	}

	class := s.registry.Class(prof.ClassID)
	if class == nil {
		return false
	}

	var matching []*rulebook.SkillDef
	for _, sid := range class.SkillIDs {
		def := s.registry.Skill(sid)
		if def == nil || def.Trigger != trigger {
			continue
		}
		matching = append(matching, def)
	}
	if len(matching) == 0 {
		return false
	}

	slot := pl.HeldSlot()
	if slot < 0 || slot >= len(matching) {
		return false
	}

	return s.cast(ctx, pl, prof, matching[slot])
}

func (s *service) Cast(ctx context.Context, playerID, skillID string) bool {
	pl := s.world.Player(playerID)
	if pl == nil {
		return false
	}
	def := s.registry.Skill(skillID)
	if def == nil {
		return false
	}
	prof, err := s.profiles.EnsureLoaded(ctx, playerID, pl.Name())
	if err != nil {
		log.Printf("skill: failed to load profile for %s: %v", playerID, err)
		return false
	}
	return s.cast(ctx, pl, prof, def)
}

func (s *service) cast(ctx context.Context, pl game.Player, prof *profile.Profile, def *rulebook.SkillDef) bool {
	now := s.now()

	if s.onGCD(pl.ID(), now) {
		return false
	}
	if s.onCooldown(pl, def, now) {
		return false
	}
	if prof.Level < def.RequiredLevel {
		s.presenter.SendMessage(pl, fmt.Sprintf("Need level %d for this skill.", def.RequiredLevel))
		return false
	}
	if !s.resources.TrySpend(prof, def.Cost) {
		s.presenter.SendMessage(pl, fmt.Sprintf("Not enough %s.", def.Cost.Type))
		return false
	}

	s.applyCooldowns(pl.ID(), def, now)

	target := resolvePrimaryTarget(s.world, pl, def.Target)

	s.cinematics.Play(pl, def, target, cinematics.PhaseCast)

	castCtx := &CastContext{
		Caster:    pl,
		Profile:   prof,
		Skill:     def,
		Target:    target,
		World:     s.world,
		Presenter: s.presenter,
		Registry:  s.registry,
	}

	if !s.dispatch(ctx, castCtx) {
		if err := s.builtin.Cast(ctx, castCtx); err != nil {
			log.Printf("skill: built-in effects for %s failed: %v", def.ID, err)
		}
	}

	s.cinematics.Play(pl, def, target, cinematics.PhaseImpact)
	s.cinematics.Play(pl, def, target, cinematics.PhaseExpire)

	if !def.HasTimeline() {
		s.cinematics.PlayFallback(pl, def)
	}

	s.publishCast(ctx, pl, def, target)
	return true
}

// dispatch routes the cast to a registered handler. Returns false when the
// skill uses the built-in executor, including the unknown-handler fallback.
func (s *service) dispatch(ctx context.Context, cast *CastContext) bool {
	if cast.Skill.UsesBuiltinExecutor() {
		return false
	}

	handlerID := strings.TrimSpace(cast.Skill.HandlerID)
	h := s.handlers.Get(handlerID)
	if h == nil {
		log.Printf("skill: unknown handler %q for skill %q, falling back to built-in effects", handlerID, cast.Skill.ID)
		return false
	}

	if err := h.Cast(ctx, cast); err != nil {
		log.Printf("skill: handler %q failed for skill %q: %v", handlerID, cast.Skill.ID, err)
	}
	return true
}

func (s *service) publishCast(ctx context.Context, pl game.Player, def *rulebook.SkillDef, target game.LivingEntity) {
	if s.eventBus == nil {
		return
	}

	caster := events.PlayerRef(pl.ID())
	targetRef := caster
	if target != nil {
		targetRef = events.EntityRef(target.ID())
	}

	event := rpgevents.NewGameEvent(events.EventSkillCast, caster, targetRef)
	event.Context().Set(events.KeySkillID, def.ID)
	event.Context().Set(events.KeyCastID, s.idGen.New())
	if target != nil {
		event.Context().Set(events.KeyTargetID, target.ID())
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		log.Printf("skill: failed to publish cast event for %s: %v", def.ID, err)
	}
}

func (s *service) onGCD(playerID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gcdUntil[playerID].After(now)
}

func (s *service) onCooldown(pl game.Player, def *rulebook.SkillDef, now time.Time) bool {
	s.mu.Lock()
	until, ok := s.cooldownUntil[def.ID][pl.ID()]
	s.mu.Unlock()
	if !ok || !until.After(now) {
		return false
	}

	left := int(until.Sub(now).Seconds())
	s.presenter.SendMessage(pl, fmt.Sprintf("Cooldown: %ds", left))
	return true
}

// applyCooldowns starts the global and per-skill cooldowns. Zero durations
// set no timer at all, so zero-cooldown skills can recast immediately.
func (s *service) applyCooldowns(playerID string, def *rulebook.SkillDef, now time.Time) {
	gcd := game.Ticks(def.GCDTicks)
	cd := game.Ticks(def.CooldownTicks)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gcd > 0 {
		s.gcdUntil[playerID] = now.Add(gcd)
	}
	if cd > 0 {
		byPlayer, ok := s.cooldownUntil[def.ID]
		if !ok {
			byPlayer = make(map[string]time.Time)
			s.cooldownUntil[def.ID] = byPlayer
		}
		byPlayer[playerID] = now.Add(cd)
	}
}

func (s *service) CooldownLeft(playerID, skillID string) time.Duration {
	now := s.now()
	s.mu.Lock()
	until, ok := s.cooldownUntil[skillID][playerID]
	s.mu.Unlock()
	if !ok || !until.After(now) {
		return 0
	}
	return until.Sub(now)
}

func (s *service) GCDLeft(playerID string) time.Duration {
	now := s.now()
	s.mu.Lock()
	until := s.gcdUntil[playerID]
	s.mu.Unlock()
	if !until.After(now) {
		return 0
	}
	return until.Sub(now)
}

func (s *service) RegisterHandler(id string, h Handler) {
	s.handlers.Register(id, h)
}

func (s *service) UnregisterHandler(id string) {
	s.handlers.Unregister(id)
}

func (s *service) Handler(id string) Handler {
	return s.handlers.Get(id)
}
