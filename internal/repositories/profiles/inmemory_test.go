package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberforge/rpgcore/internal/domain/profile"
	coreErr "github.com/emberforge/rpgcore/internal/errors"
)

func TestInMemoryRepo_SaveAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	p := profile.New("player-1", "Aldra")
	p.SetTalentRank("war_might", 2)
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TalentRank("war_might"))
}

func TestInMemoryRepo_CopySemantics(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	p := profile.New("player-1", "Aldra")
	require.NoError(t, repo.Save(ctx, p))

	// Mutating the caller's copy must not touch the stored profile
	p.SetLevel(50)
	p.SetTalentRank("war_might", 3)

	loaded, err := repo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Level)
	assert.Equal(t, 0, loaded.TalentRank("war_might"))

	// Mutating a loaded copy must not leak back either
	loaded.SetLevel(99)
	again, err := repo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Level)
}

func TestInMemoryRepo_Delete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, profile.New("player-1", "Aldra")))
	require.NoError(t, repo.Delete(ctx, "player-1"))

	_, err := repo.Get(ctx, "player-1")
	assert.True(t, coreErr.IsNotFound(err))

	assert.True(t, coreErr.IsNotFound(repo.Delete(ctx, "player-1")))
}
