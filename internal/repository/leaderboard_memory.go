package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

type memoryLeaderboard struct {
	mu     sync.RWMutex
	boards map[string]map[string]*entity.LeaderboardEntry // mode -> key -> entry
}

// NewMemoryLeaderboardRepository - process-local standings, the default when
// no redis address is configured. State resets with the process.
func NewMemoryLeaderboardRepository() LeaderboardRepository {
	return &memoryLeaderboard{
		boards: make(map[string]map[string]*entity.LeaderboardEntry),
	}
}

func (that *memoryLeaderboard) Save(_ context.Context, mode string, entry *entity.LeaderboardEntry) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	board, ok := that.boards[mode]
	if !ok {
		board = make(map[string]*entity.LeaderboardEntry)
		that.boards[mode] = board
	}

	stored := *entry
	board[entry.Key] = &stored

	return nil
}

func (that *memoryLeaderboard) GetByKey(_ context.Context, mode, key string) (*entity.LeaderboardEntry, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entry, ok := that.boards[mode][key]
	if !ok {
		return nil, ErrEntryNotFound
	}

	found := *entry

	return &found, nil
}

func (that *memoryLeaderboard) GetAll(_ context.Context, mode string) ([]*entity.LeaderboardEntry, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	entries := make([]*entity.LeaderboardEntry, 0, len(that.boards[mode]))
	for _, entry := range that.boards[mode] {
		found := *entry
		entries = append(entries, &found)
	}

	return entries, nil
}
