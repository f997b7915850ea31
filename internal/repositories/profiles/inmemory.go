package profiles

import (
	"context"
	"sync"

	"github.com/emberforge/rpgcore/internal/domain/profile"
	coreErr "github.com/emberforge/rpgcore/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the profile repository.
// Useful for testing and development.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*profile.Profile
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		profiles: make(map[string]*profile.Profile),
	}
}

// Get retrieves a profile by player ID
func (r *InMemoryRepository) Get(ctx context.Context, playerID string) (*profile.Profile, error) {
	if playerID == "" {
		return nil, coreErr.InvalidArgument("player ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.profiles[playerID]
	if !exists {
		return nil, coreErr.NotFoundf("profile for player '%s' not found", playerID).
			WithMeta("player_id", playerID)
	}

	// Return a copy to avoid external modifications
	return p.Clone(), nil
}

// Save upserts a profile
func (r *InMemoryRepository) Save(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return coreErr.InvalidArgument("profile cannot be nil")
	}
	if p.PlayerID == "" {
		return coreErr.InvalidArgument("profile player ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	r.profiles[p.PlayerID] = p.Clone()

	return nil
}

// Delete removes a profile
func (r *InMemoryRepository) Delete(ctx context.Context, playerID string) error {
	if playerID == "" {
		return coreErr.InvalidArgument("player ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[playerID]; !exists {
		return coreErr.NotFoundf("profile for player '%s' not found", playerID).
			WithMeta("player_id", playerID)
	}

	delete(r.profiles, playerID)
	return nil
}
