// Package profile implements the session-scoped profile service. Storage is
// behind the profiles repository; everything at runtime works against the
// cache so a tick never blocks on Redis.
package profile

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/emberforge/rpgcore/internal/domain/profile"
	coreErr "github.com/emberforge/rpgcore/internal/errors"
	"github.com/emberforge/rpgcore/internal/repositories/profiles"
	"github.com/emberforge/rpgcore/internal/rulebook"
)

type service struct {
	repo     profiles.Repository
	registry *rulebook.Registry

	mu     sync.RWMutex
	active map[string]*profile.Profile
}

// ServiceConfig holds configuration for the profile service
type ServiceConfig struct {
	Repository profiles.Repository
	Registry   *rulebook.Registry
}

// NewService creates a new profile service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("profile repository is required")
	}
	if cfg.Registry == nil {
		panic("definition registry is required")
	}

	return &service{
		repo:     cfg.Repository,
		registry: cfg.Registry,
		active:   make(map[string]*profile.Profile),
	}
}

func (s *service) EnsureLoaded(ctx context.Context, playerID, name string) (*profile.Profile, error) {
	if playerID == "" {
		return nil, coreErr.InvalidArgument("player ID is required")
	}

	s.mu.RLock()
	if p, ok := s.active[playerID]; ok {
		s.mu.RUnlock()
		return p, nil
	}
	s.mu.RUnlock()

	p, err := s.repo.Get(ctx, playerID)
	if coreErr.IsNotFound(err) {
		p = profile.New(playerID, name)
		if saveErr := s.repo.Save(ctx, p); saveErr != nil {
			return nil, coreErr.Wrap(saveErr, "failed to persist new profile")
		}
		log.Printf("Created profile for player %s", playerID)
	} else if err != nil {
		return nil, coreErr.Wrap(err, "failed to load profile")
	}

	if name != "" {
		p.Name = name
	}
	s.repairReferences(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another loader may have won the race; keep the first cached profile
	if existing, ok := s.active[playerID]; ok {
		return existing, nil
	}
	s.active[playerID] = p
	return p, nil
}

// repairReferences resets race and class ids that no longer resolve against
// the loaded definitions.
func (s *service) repairReferences(p *profile.Profile) {
	if !s.registry.HasRace(p.RaceID) {
		log.Printf("Player %s references unknown race %q, resetting to %s", p.PlayerID, p.RaceID, profile.FallbackRaceID)
		p.RaceID = profile.FallbackRaceID
	}
	if !s.registry.HasClass(p.ClassID) {
		log.Printf("Player %s references unknown class %q, resetting to %s", p.PlayerID, p.ClassID, profile.FallbackClassID)
		p.ClassID = profile.FallbackClassID
	}
}

func (s *service) Get(playerID string) *profile.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[playerID]
}

func (s *service) Active() []*profile.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*profile.Profile, 0, len(s.active))
	for _, p := range s.active {
		out = append(out, p)
	}
	return out
}

func (s *service) Save(ctx context.Context, playerID string) error {
	s.mu.RLock()
	p, ok := s.active[playerID]
	s.mu.RUnlock()
	if !ok {
		return coreErr.NotFoundf("player '%s' is not loaded", playerID)
	}

	return s.repo.Save(ctx, p.Clone())
}

func (s *service) Unload(ctx context.Context, playerID string) error {
	s.mu.Lock()
	p, ok := s.active[playerID]
	delete(s.active, playerID)
	s.mu.Unlock()
	if !ok {
		return nil
	}

	return s.repo.Save(ctx, p.Clone())
}

func (s *service) FlushAll(ctx context.Context) error {
	s.mu.RLock()
	snapshots := make([]*profile.Profile, 0, len(s.active))
	for _, p := range s.active {
		snapshots = append(snapshots, p.Clone())
	}
	s.mu.RUnlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, snap := range snapshots {
		g.Go(func() error {
			return s.repo.Save(ctx, snap)
		})
	}
	return g.Wait()
}
