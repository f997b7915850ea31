package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emberforge/rpgcore/internal/domain/profile"
	coreErr "github.com/emberforge/rpgcore/internal/errors"
)

// ProfileData represents the serialized form of a profile in Redis. Talent
// ranks and branch flags travel as one encoded talents string so legacy
// records with bare talent ids keep loading.
type ProfileData struct {
	PlayerID     string    `json:"player_id"`
	Name         string    `json:"name"`
	RaceID       string    `json:"race_id"`
	ClassID      string    `json:"class_id"`
	Level        int       `json:"level"`
	XP           int64     `json:"xp"`
	TalentPoints int       `json:"talent_points"`
	Talents      string    `json:"talents"`
	MaxPrimary   int       `json:"max_primary"`
	MaxSecondary int       `json:"max_secondary"`
	Primary      float64   `json:"primary"`
	Secondary    float64   `json:"secondary"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed profile repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{client: cfg.Client}
}

// key generates the Redis key for a profile
func (r *redisRepo) key(playerID string) string {
	return fmt.Sprintf("profile:%s", playerID)
}

func toProfileData(p *profile.Profile) *ProfileData {
	return &ProfileData{
		PlayerID:     p.PlayerID,
		Name:         p.Name,
		RaceID:       p.RaceID,
		ClassID:      p.ClassID,
		Level:        p.Level,
		XP:           p.XP,
		TalentPoints: p.TalentPoints,
		Talents:      p.EncodeTalents(),
		MaxPrimary:   p.MaxPrimary,
		MaxSecondary: p.MaxSecondary,
		Primary:      p.Primary,
		Secondary:    p.Secondary,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func fromProfileData(data *ProfileData) *profile.Profile {
	p := profile.New(data.PlayerID, data.Name)
	if data.RaceID != "" {
		p.RaceID = data.RaceID
	}
	if data.ClassID != "" {
		p.ClassID = data.ClassID
	}
	p.SetLevel(data.Level)
	p.SetXP(data.XP)
	p.SetTalentPoints(data.TalentPoints)
	p.DecodeTalents(data.Talents)
	// Records written before pool tracking carry zero capacities; keep the
	// defaults so the stats pass can recompute them.
	if data.MaxPrimary > 0 {
		p.SetMaxPrimary(data.MaxPrimary)
		p.SetPrimary(data.Primary)
	}
	if data.MaxSecondary > 0 {
		p.SetMaxSecondary(data.MaxSecondary)
		p.SetSecondary(data.Secondary)
	}
	if !data.CreatedAt.IsZero() {
		p.CreatedAt = data.CreatedAt
	}
	p.UpdatedAt = data.UpdatedAt
	return p
}

// Get retrieves a profile by player ID
func (r *redisRepo) Get(ctx context.Context, playerID string) (*profile.Profile, error) {
	if playerID == "" {
		return nil, coreErr.InvalidArgument("player ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(playerID)).Result()
	if err == redis.Nil {
		return nil, coreErr.NotFoundf("profile for player '%s' not found", playerID).
			WithMeta("player_id", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var data ProfileData
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", unmarshalErr)
	}

	return fromProfileData(&data), nil
}

// Save upserts a profile
func (r *redisRepo) Save(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return coreErr.InvalidArgument("profile cannot be nil")
	}
	if p.PlayerID == "" {
		return coreErr.InvalidArgument("profile player ID is required")
	}

	data := toProfileData(p)
	data.UpdatedAt = time.Now().UTC()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = data.UpdatedAt
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := r.client.Set(ctx, r.key(p.PlayerID), jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// Delete removes a profile
func (r *redisRepo) Delete(ctx context.Context, playerID string) error {
	if playerID == "" {
		return coreErr.InvalidArgument("player ID is required")
	}

	deleted, err := r.client.Del(ctx, r.key(playerID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if deleted == 0 {
		return coreErr.NotFoundf("profile for player '%s' not found", playerID).
			WithMeta("player_id", playerID)
	}

	return nil
}
