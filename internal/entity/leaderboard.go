package entity

import (
	"sort"
	"time"
)

// Leaderboard modes: head-to-head matches and solo-vs-AI results reported
// by the client.
const (
	ModePVP  = "pvp"
	ModeSolo = "solo"
)

// LeaderboardSnapshotLimit caps a ranked snapshot per board.
const LeaderboardSnapshotLimit = 10

// LeaderboardEntry accumulates standings for one normalized display name.
// Entries are never removed, only updated; Games is always Wins+Losses.
type LeaderboardEntry struct {
	Key         string    `json:"-"`
	Name        string    `json:"name"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Games       int       `json:"games"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ApplyDelta - records one result. Deltas are always +1 win or +1 loss.
func (that *LeaderboardEntry) ApplyDelta(wins, losses int) {
	that.Wins += wins
	that.Losses += losses
	that.Games = that.Wins + that.Losses
	that.LastUpdated = time.Now()
}

// RankEntries - deterministic snapshot order: wins descending, losses
// ascending, games descending, most recently updated first, then display
// name ascending. Returns at most LeaderboardSnapshotLimit entries.
func RankEntries(entries []*LeaderboardEntry) []*LeaderboardEntry {
	ranked := make([]*LeaderboardEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses < b.Losses
		}
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		if !a.LastUpdated.Equal(b.LastUpdated) {
			return a.LastUpdated.After(b.LastUpdated)
		}
		return a.Name < b.Name
	})

	if len(ranked) > LeaderboardSnapshotLimit {
		ranked = ranked[:LeaderboardSnapshotLimit]
	}

	return ranked
}
