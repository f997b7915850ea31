package profile

import (
	"context"

	"github.com/emberforge/rpgcore/internal/domain/profile"
)

//go:generate mockgen -destination=mock/mock.go -package=mockprofilesvc -source=types.go

// Service owns the session cache of player profiles. Every profile handed to
// the other services comes from here; a player not yet loaded has no profile.
type Service interface {
	// EnsureLoaded fetches the profile from storage, creating and persisting
	// a default one on first sight, and pins it in the session cache
	EnsureLoaded(ctx context.Context, playerID, name string) (*profile.Profile, error)

	// Get returns the cached profile, or nil when the player is not loaded
	Get(playerID string) *profile.Profile

	// Active returns every cached profile
	Active() []*profile.Profile

	// Save snapshots the cached profile and writes it to storage
	Save(ctx context.Context, playerID string) error

	// Unload saves the profile and drops it from the session cache
	Unload(ctx context.Context, playerID string) error

	// FlushAll saves every cached profile, collecting the first error
	FlushAll(ctx context.Context) error
}
