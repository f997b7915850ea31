// Package api is the surface exposed to extensions: skill handler bindings,
// talent and branch progression, and admin operations. Branch flags are
// write-only from here; internal gameplay logic never sets them.
package api

import (
	"context"
	"log"
	"strings"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/emberforge/rpgcore/internal/domain/events"
	"github.com/emberforge/rpgcore/internal/domain/game"
	"github.com/emberforge/rpgcore/internal/domain/profile"
	"github.com/emberforge/rpgcore/internal/rulebook"
	profileSvc "github.com/emberforge/rpgcore/internal/services/profile"
	skillSvc "github.com/emberforge/rpgcore/internal/services/skill"
	statsSvc "github.com/emberforge/rpgcore/internal/services/stats"
)

// DefaultTalentPointsPerLevel is how many talent points each level past the
// first is worth
const DefaultTalentPointsPerLevel = 1

// API is the extension-facing surface of the module
type API interface {
	// RegisterSkillHandler binds a handler id for the casting pipeline,
	// replacing any previous binding. Blank ids and nil handlers are ignored.
	RegisterSkillHandler(id string, h skillSvc.Handler)

	// UnregisterSkillHandler removes a binding; unknown ids are a no-op
	UnregisterSkillHandler(id string)

	// SkillHandler returns the bound handler, nil for blank or unknown ids
	SkillHandler(id string) skillSvc.Handler

	// TalentRank returns the player's current rank, 0 when locked
	TalentRank(ctx context.Context, playerID, talentID string) int

	// GrantTalentRank grants up to ranks additional ranks, constrained by
	// the talent's max rank and the player's available points. Returns
	// false when zero ranks could be granted.
	GrantTalentRank(ctx context.Context, playerID, talentID string, ranks int) bool

	// UnlockBranch sets a branch flag. Returns false when the branch was
	// already unlocked; a successful unlock persists and fires an event.
	UnlockBranch(ctx context.Context, playerID, branchID string) bool

	// HasBranch reports whether the branch flag is set
	HasBranch(ctx context.Context, playerID, branchID string) bool

	// GiveXP adds experience; negative amounts are ignored
	GiveXP(ctx context.Context, playerID string, amount int64) error

	// SetLevel sets the level (floored at 1) and recomputes the talent
	// point balance from it
	SetLevel(ctx context.Context, playerID string, level int) error

	// Respec clears every talent rank and refunds the full point balance
	Respec(ctx context.Context, playerID string) error
}

type service struct {
	registry *rulebook.Registry
	profiles profileSvc.Service
	stats    statsSvc.Service
	skills   skillSvc.Service
	world    game.World
	eventBus *rpgevents.Bus

	pointsPerLevel int
}

// ServiceConfig holds configuration for the extension API
type ServiceConfig struct {
	Registry       *rulebook.Registry
	ProfileService profileSvc.Service
	StatsService   statsSvc.Service
	SkillService   skillSvc.Service
	World          game.World

	// EventBus is optional; without one no notifications are published
	EventBus *rpgevents.Bus

	// TalentPointsPerLevel overrides DefaultTalentPointsPerLevel
	TalentPointsPerLevel int
}

// NewService creates the extension API
func NewService(cfg *ServiceConfig) API {
	if cfg.Registry == nil {
		panic("definition registry is required")
	}
	if cfg.ProfileService == nil {
		panic("profile service is required")
	}
	if cfg.StatsService == nil {
		panic("stats service is required")
	}
	if cfg.SkillService == nil {
		panic("skill service is required")
	}
	if cfg.World == nil {
		panic("world is required")
	}

	ppl := cfg.TalentPointsPerLevel
	if ppl < 1 {
		ppl = DefaultTalentPointsPerLevel
	}

	return &service{
		registry:       cfg.Registry,
		profiles:       cfg.ProfileService,
		stats:          cfg.StatsService,
		skills:         cfg.SkillService,
		world:          cfg.World,
		eventBus:       cfg.EventBus,
		pointsPerLevel: ppl,
	}
}

func (s *service) RegisterSkillHandler(id string, h skillSvc.Handler) {
	s.skills.RegisterHandler(id, h)
}

func (s *service) UnregisterSkillHandler(id string) {
	s.skills.UnregisterHandler(id)
}

func (s *service) SkillHandler(id string) skillSvc.Handler {
	return s.skills.Handler(id)
}

func (s *service) TalentRank(ctx context.Context, playerID, talentID string) int {
	if strings.TrimSpace(talentID) == "" {
		return 0
	}
	prof, err := s.profile(ctx, playerID)
	if err != nil {
		return 0
	}
	return prof.TalentRank(talentID)
}

func (s *service) GrantTalentRank(ctx context.Context, playerID, talentID string, ranks int) bool {
	if strings.TrimSpace(talentID) == "" || ranks <= 0 {
		return false
	}
	def := s.registry.Talent(talentID)
	if def == nil || def.MaxRank < 1 {
		return false
	}

	prof, err := s.profile(ctx, playerID)
	if err != nil {
		return false
	}

	pointsPerRank := def.PointsPerRank
	if pointsPerRank < 0 {
		pointsPerRank = 0
	}

	current := prof.TalentRank(talentID)
	granted := 0
	for i := 0; i < ranks; i++ {
		if current+granted >= def.MaxRank {
			break
		}
		if pointsPerRank > 0 {
			if prof.TalentPoints < pointsPerRank {
				break
			}
			prof.SetTalentPoints(prof.TalentPoints - pointsPerRank)
		}
		granted++
	}
	if granted == 0 {
		return false
	}

	prof.SetTalentRank(talentID, current+granted)
	s.persist(ctx, playerID)
	s.stats.ApplyAll(prof)
	return true
}

func (s *service) UnlockBranch(ctx context.Context, playerID, branchID string) bool {
	if strings.TrimSpace(branchID) == "" {
		return false
	}
	prof, err := s.profile(ctx, playerID)
	if err != nil {
		return false
	}
	if prof.HasBranch(branchID) {
		return false
	}

	prof.UnlockBranch(branchID)
	s.publish(ctx, events.EventBranchUnlocked, playerID, events.KeyBranchID, branchID)
	s.persist(ctx, playerID)
	return true
}

func (s *service) HasBranch(ctx context.Context, playerID, branchID string) bool {
	if strings.TrimSpace(branchID) == "" {
		return false
	}
	prof, err := s.profile(ctx, playerID)
	if err != nil {
		return false
	}
	return prof.HasBranch(branchID)
}

func (s *service) GiveXP(ctx context.Context, playerID string, amount int64) error {
	prof, err := s.profile(ctx, playerID)
	if err != nil {
		return err
	}
	if amount > 0 {
		prof.SetXP(prof.XP + amount)
	}
	return s.profiles.Save(ctx, playerID)
}

func (s *service) SetLevel(ctx context.Context, playerID string, level int) error {
	prof, err := s.profile(ctx, playerID)
	if err != nil {
		return err
	}

	prof.SetLevel(level)
	prof.SetTalentPoints((prof.Level - 1) * s.pointsPerLevel)
	if err := s.profiles.Save(ctx, playerID); err != nil {
		return err
	}
	s.stats.ApplyAll(prof)
	s.publish(ctx, events.EventLevelChanged, playerID, events.KeyLevel, prof.Level)
	return nil
}

func (s *service) Respec(ctx context.Context, playerID string) error {
	prof, err := s.profile(ctx, playerID)
	if err != nil {
		return err
	}

	prof.ClearTalents()
	prof.SetTalentPoints((prof.Level - 1) * s.pointsPerLevel)
	if err := s.profiles.Save(ctx, playerID); err != nil {
		return err
	}
	s.stats.ApplyAll(prof)
	s.publish(ctx, events.EventRespec, playerID, "", nil)
	return nil
}

// profile loads the player's profile, creating a default one on first sight.
// The display name falls back to the id when the player is offline.
func (s *service) profile(ctx context.Context, playerID string) (*profile.Profile, error) {
	name := playerID
	if pl := s.world.Player(playerID); pl != nil {
		name = pl.Name()
	}
	return s.profiles.EnsureLoaded(ctx, playerID, name)
}

func (s *service) persist(ctx context.Context, playerID string) {
	if err := s.profiles.Save(ctx, playerID); err != nil {
		log.Printf("api: failed to save profile %s: %v", playerID, err)
	}
}

func (s *service) publish(ctx context.Context, eventName, playerID, key string, value any) {
	if s.eventBus == nil {
		return
	}

	ref := events.PlayerRef(playerID)
	event := rpgevents.NewGameEvent(eventName, ref, ref)
	if key != "" {
		event.Context().Set(key, value)
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		log.Printf("api: failed to publish %s for %s: %v", eventName, playerID, err)
	}
}
