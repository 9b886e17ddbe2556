package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardEntry_ApplyDelta(t *testing.T) {
	entry := &LeaderboardEntry{Key: "salty admiral", Name: "Salty Admiral"}

	// When: one win then one loss land on a fresh key
	entry.ApplyDelta(1, 0)
	entry.ApplyDelta(0, 1)

	// Then: games is always wins+losses
	assert.Equal(t, 1, entry.Wins)
	assert.Equal(t, 1, entry.Losses)
	assert.Equal(t, 2, entry.Games)
	assert.False(t, entry.LastUpdated.IsZero())
}

func TestRankEntries_Order(t *testing.T) {
	now := time.Now()

	entries := []*LeaderboardEntry{
		{Name: "charlie", Wins: 2, Losses: 0, Games: 2, LastUpdated: now},
		{Name: "alice", Wins: 5, Losses: 3, Games: 8, LastUpdated: now},
		{Name: "bravo", Wins: 5, Losses: 1, Games: 6, LastUpdated: now},
		{Name: "delta", Wins: 2, Losses: 0, Games: 2, LastUpdated: now.Add(-time.Minute)},
	}

	ranked := RankEntries(entries)

	// wins desc, then losses asc, then recency, then name
	require.Len(t, ranked, 4)
	assert.Equal(t, "bravo", ranked[0].Name)
	assert.Equal(t, "alice", ranked[1].Name)
	assert.Equal(t, "charlie", ranked[2].Name, "same record, more recent first")
	assert.Equal(t, "delta", ranked[3].Name)
}

func TestRankEntries_NameBreaksExactTies(t *testing.T) {
	now := time.Now()

	entries := []*LeaderboardEntry{
		{Name: "zed", Wins: 1, Games: 1, LastUpdated: now},
		{Name: "ann", Wins: 1, Games: 1, LastUpdated: now},
	}

	ranked := RankEntries(entries)

	assert.Equal(t, "ann", ranked[0].Name)
}

func TestRankEntries_CapsAtSnapshotLimit(t *testing.T) {
	entries := make([]*LeaderboardEntry, 0, LeaderboardSnapshotLimit+5)
	for i := 0; i < LeaderboardSnapshotLimit+5; i++ {
		entries = append(entries, &LeaderboardEntry{Name: "p", Wins: i, Games: i})
	}

	ranked := RankEntries(entries)

	require.Len(t, ranked, LeaderboardSnapshotLimit)
	assert.Equal(t, LeaderboardSnapshotLimit+4, ranked[0].Wins)
}

func TestRankEntries_DoesNotMutateInput(t *testing.T) {
	entries := []*LeaderboardEntry{
		{Name: "b", Wins: 1},
		{Name: "a", Wins: 2},
	}

	_ = RankEntries(entries)

	assert.Equal(t, "b", entries[0].Name)
}
