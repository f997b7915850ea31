package skill

import (
	"context"
	"time"

	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

// Handler executes a skill's gameplay effect. Extensions implement this and
// register under the handler id their skill definitions reference.
type Handler interface {
	// Cast runs the skill. The cast is already validated and paid for;
	// returning an error only logs it, the cast is not rolled back.
	Cast(ctx context.Context, cast *CastContext) error
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(ctx context.Context, cast *CastContext) error

// Cast implements Handler
func (f HandlerFunc) Cast(ctx context.Context, cast *CastContext) error {
	return f(ctx, cast)
}

// Service is the skill casting pipeline
type Service interface {
	// OnInputTrigger dispatches an input combination for the player. The
	// held hotbar slot selects among the class skills bound to the trigger.
	// Returns whether a skill was cast, so the host can cancel the
	// underlying input.
	OnInputTrigger(ctx context.Context, playerID string, trigger rulebook.Trigger) bool

	// Cast runs the full pipeline for one skill, bypassing slot selection
	Cast(ctx context.Context, playerID, skillID string) bool

	// CooldownLeft reports the remaining per-skill cooldown for a player
	CooldownLeft(playerID, skillID string) time.Duration

	// GCDLeft reports the remaining global cooldown for a player
	GCDLeft(playerID string) time.Duration

	// RegisterHandler binds a handler id, replacing any previous binding
	RegisterHandler(id string, h Handler)

	// UnregisterHandler removes a binding; unknown ids are a no-op
	UnregisterHandler(id string)

	// Handler returns the bound handler, nil for blank or unknown ids
	Handler(id string) Handler
}

// CastContext carries everything a handler may need for one cast
type CastContext struct {
	Caster  game.Player
	Profile *profile.Profile
	Skill   *rulebook.SkillDef

	// Target is the pre-resolved primary target: the caster for self
	// skills, the ray hit (nil on a miss) for ray skills, nil for cone
	// and area skills.
	Target game.LivingEntity

	World     game.World
	Presenter game.Presenter
	Registry  *rulebook.Registry
}

// Targets resolves the full target list for the skill's targeting mode.
// includeSelf controls whether self and ray-self resolution include the
// caster; cone and area never do.
func (c *CastContext) Targets(includeSelf bool) []game.LivingEntity {
	return resolveTargets(c.World, c.Caster, c.Skill.Target, c.Target, includeSelf)
}
