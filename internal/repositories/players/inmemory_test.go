package players_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/repositories/players"
	"github.com/fablebound/rpg-bot/internal/rulebook"
	"github.com/fablebound/rpg-bot/internal/testutils"
)

func TestInMemory_GetOrCreate(t *testing.T) {
	repo := players.NewInMemoryRepository()
	ctx := context.Background()

	p, err := repo.GetOrCreate(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, rulebook.DefaultClass, p.ClassName)
	assert.Equal(t, 1, p.ClassLevel)
	assert.Equal(t, 100, p.MaxEnergy)

	// second call returns the stored record, not a fresh one
	p.Gold = 250
	require.NoError(t, repo.Save(ctx, p))

	again, err := repo.GetOrCreate(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 250, again.Gold)
}

func TestInMemory_GetIsolatesStoredState(t *testing.T) {
	repo := players.NewInMemoryRepository()
	ctx := context.Background()

	saved := testutils.CreateTestPlayer("player-1")
	require.NoError(t, repo.Save(ctx, saved))

	p, err := repo.Get(ctx, "player-1")
	require.NoError(t, err)
	p.Gold = 99999

	again, err := repo.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, saved.Gold, again.Gold, "mutating a returned copy must not touch the store")
}

func TestInMemory_GetMissing(t *testing.T) {
	repo := players.NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "nobody")
	assert.True(t, apperr.IsNotFound(err))

	_, err = repo.Get(ctx, "")
	assert.Error(t, err)
	assert.False(t, apperr.IsNotFound(err))
}

func TestInMemory_ListAll(t *testing.T) {
	repo := players.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutils.CreateTestPlayer("player-1")))
	require.NoError(t, repo.Save(ctx, testutils.CreateTestPlayer("player-2")))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
