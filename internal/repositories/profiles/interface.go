package profiles

//go:generate mockgen -destination=mock/mock.go -package=mockprofiles -source=interface.go

import (
	"context"

	"github.com/emberforge/rpgcore/internal/domain/profile"
)

// Repository defines the interface for player profile persistence
type Repository interface {
	// Get retrieves a profile by player ID
	Get(ctx context.Context, playerID string) (*profile.Profile, error)

	// Save upserts a profile
	Save(ctx context.Context, p *profile.Profile) error

	// Delete removes a profile
	Delete(ctx context.Context, playerID string) error
}
