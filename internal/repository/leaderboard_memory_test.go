package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLeaderboard_SaveAndGetByKey(t *testing.T) {
	ctx := context.Background()
	leaderboardRepo := NewMemoryLeaderboardRepository()

	// Given: a saved entry
	entry := &entity.LeaderboardEntry{Key: "alice", Name: "Alice"}
	entry.ApplyDelta(1, 0)

	err := leaderboardRepo.Save(ctx, entity.ModePVP, entry)
	require.NoError(t, err)

	// When: GetByKey is called with the existing key
	retrieved, err := leaderboardRepo.GetByKey(ctx, entity.ModePVP, "alice")

	// Then: the retrieved entry matches the saved one
	require.NoError(t, err)
	assert.Equal(t, "Alice", retrieved.Name)
	assert.Equal(t, 1, retrieved.Wins)
	assert.Equal(t, 1, retrieved.Games)
}

func TestMemoryLeaderboard_GetByKey_NotFound(t *testing.T) {
	ctx := context.Background()
	leaderboardRepo := NewMemoryLeaderboardRepository()

	retrieved, err := leaderboardRepo.GetByKey(ctx, entity.ModePVP, "nobody")

	require.Error(t, err)
	assert.Equal(t, ErrEntryNotFound, err)
	assert.Nil(t, retrieved)
}

func TestMemoryLeaderboard_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	leaderboardRepo := NewMemoryLeaderboardRepository()

	entry := &entity.LeaderboardEntry{Key: "alice", Name: "Alice"}
	err := leaderboardRepo.Save(ctx, entity.ModeSolo, entry)
	require.NoError(t, err)

	// mutating the caller's entry after Save must not reach the store
	entry.Wins = 99

	retrieved, err := leaderboardRepo.GetByKey(ctx, entity.ModeSolo, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.Wins)

	// mutating a retrieved entry must not reach the store either
	retrieved.Losses = 99

	again, err := leaderboardRepo.GetByKey(ctx, entity.ModeSolo, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Losses)
}

func TestMemoryLeaderboard_GetAll(t *testing.T) {
	ctx := context.Background()
	leaderboardRepo := NewMemoryLeaderboardRepository()

	// an untouched mode yields an empty slice
	entries, err := leaderboardRepo.GetAll(ctx, entity.ModePVP)
	require.NoError(t, err)
	assert.Empty(t, entries)

	for _, name := range []string{"alice", "bob"} {
		err = leaderboardRepo.Save(ctx, entity.ModePVP, &entity.LeaderboardEntry{Key: name, Name: name})
		require.NoError(t, err)
	}

	entries, err = leaderboardRepo.GetAll(ctx, entity.ModePVP)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
