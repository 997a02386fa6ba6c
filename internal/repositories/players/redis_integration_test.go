//go:build integration
// +build integration

package players_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/repositories/players"
	"github.com/fablebound/rpg-bot/internal/testutils"
)

func TestRedisRepository_Integration(t *testing.T) {
	// This test requires Redis to be running
	client := testutils.CreateTestRedisClientOrSkip(t)

	repo := players.NewRedisRepository(&players.RedisRepoConfig{
		Client: client,
	})

	ctx := context.Background()

	t.Run("save and retrieve player", func(t *testing.T) {
		p := testutils.CreateTestPlayer("integ-player-1")
		p.Gold = 750
		p.Counters.Wins = 3

		require.NoError(t, repo.Save(ctx, p))

		retrieved, err := repo.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, retrieved.ID)
		assert.Equal(t, p.ClassName, retrieved.ClassName)
		assert.Equal(t, 750, retrieved.Gold)
		assert.Equal(t, 3, retrieved.Counters.Wins)
		assert.False(t, retrieved.UpdatedAt.IsZero())
	})

	t.Run("get missing player", func(t *testing.T) {
		_, err := repo.Get(ctx, "integ-nobody")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("get or create initializes defaults", func(t *testing.T) {
		p, err := repo.GetOrCreate(ctx, "integ-player-2")
		require.NoError(t, err)
		assert.Equal(t, 1, p.ClassLevel)
		assert.Equal(t, 100, p.MaxEnergy)

		again, err := repo.GetOrCreate(ctx, "integ-player-2")
		require.NoError(t, err)
		assert.Equal(t, p.CreatedAt.Unix(), again.CreatedAt.Unix())
	})

	t.Run("list all players", func(t *testing.T) {
		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 2)
	})
}
