package repository

import (
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	leaderboardRepo := NewLeaderboardRepository(st.Storage)

	// Given: an entry keyed by normalized name
	entry := &entity.LeaderboardEntry{
		Key:  "alice",
		Name: "Alice",
	}
	entry.ApplyDelta(1, 0)

	// When: Save is called
	err := leaderboardRepo.Save(ctx, entity.ModePVP, entry)

	// Then: no error should be returned, and the entry is stored
	require.NoError(t, err)
}

func TestLeaderboardRepository_GetByKey(t *testing.T) {
	t.Run("GetByKey_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		leaderboardRepo := NewLeaderboardRepository(st.Storage)

		// Given: a saved entry
		entry := &entity.LeaderboardEntry{
			Key:  "alice",
			Name: "Alice",
		}
		entry.ApplyDelta(2, 1)

		err := leaderboardRepo.Save(ctx, entity.ModePVP, entry)
		require.NoError(t, err)

		// When: GetByKey is called with the existing key
		retrieved, err := leaderboardRepo.GetByKey(ctx, entity.ModePVP, "alice")

		// Then: the retrieved entry should match the saved one
		require.NoError(t, err)
		assert.Equal(t, entry.Key, retrieved.Key)
		assert.Equal(t, entry.Name, retrieved.Name)
		assert.Equal(t, 2, retrieved.Wins)
		assert.Equal(t, 1, retrieved.Losses)
		assert.Equal(t, 3, retrieved.Games)
		assert.Equal(t, entry.LastUpdated, retrieved.LastUpdated)
	})

	t.Run("GetByKey_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		leaderboardRepo := NewLeaderboardRepository(st.Storage)

		// When: GetByKey is called with a non-existent key
		retrieved, err := leaderboardRepo.GetByKey(ctx, entity.ModePVP, "nobody")

		// Then: an ErrEntryNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrEntryNotFound, err)
		assert.Nil(t, retrieved)
	})

	t.Run("GetByKey_ModesAreIsolated", func(t *testing.T) {
		ctx, st := suite.New(t)

		leaderboardRepo := NewLeaderboardRepository(st.Storage)

		entry := &entity.LeaderboardEntry{Key: "alice", Name: "Alice"}
		err := leaderboardRepo.Save(ctx, entity.ModeSolo, entry)
		require.NoError(t, err)

		// When: the same key is looked up under the other mode
		retrieved, err := leaderboardRepo.GetByKey(ctx, entity.ModePVP, "alice")

		// Then: it should not be found
		require.Error(t, err)
		assert.Equal(t, ErrEntryNotFound, err)
		assert.Nil(t, retrieved)
	})
}

func TestLeaderboardRepository_GetAll(t *testing.T) {
	ctx, st := suite.New(t)

	leaderboardRepo := NewLeaderboardRepository(st.Storage)

	// Given: two saved entries in one mode
	for _, name := range []string{"alice", "bob"} {
		entry := &entity.LeaderboardEntry{Key: name, Name: name}

		err := leaderboardRepo.Save(ctx, entity.ModePVP, entry)
		require.NoError(t, err)
	}

	// When: GetAll is called
	entries, err := leaderboardRepo.GetAll(ctx, entity.ModePVP)

	// Then: both entries come back with their hash field as key
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.Key)
		assert.NotEmpty(t, entry.Name)
	}
}
