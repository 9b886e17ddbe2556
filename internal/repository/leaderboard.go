package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

var ErrEntryNotFound = errors.New("leaderboard entry not found")

// LeaderboardRepository stores per-mode standings keyed by the normalized
// display name. Entries are only ever created or updated, never removed.
type LeaderboardRepository interface {
	Save(ctx context.Context, mode string, entry *entity.LeaderboardEntry) error
	GetByKey(ctx context.Context, mode, key string) (*entity.LeaderboardEntry, error)
	GetAll(ctx context.Context, mode string) ([]*entity.LeaderboardEntry, error)
}

type dbLeaderboard struct {
	client *redis.Client
}

// NewLeaderboardRepository - redis-backed standings, one hash per mode.
func NewLeaderboardRepository(client *redis.Client) LeaderboardRepository {
	return &dbLeaderboard{
		client: client,
	}
}

func leaderboardKey(mode string) string {
	return "leaderboard:" + mode
}

func (that *dbLeaderboard) Save(ctx context.Context, mode string, entry *entity.LeaderboardEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if err = that.client.HSet(ctx, leaderboardKey(mode), entry.Key, entryJSON).Err(); err != nil {
		return fmt.Errorf("failed to set entry: %w", err)
	}

	return nil
}

func (that *dbLeaderboard) GetByKey(ctx context.Context, mode, key string) (*entity.LeaderboardEntry, error) {
	response, err := that.client.HGet(ctx, leaderboardKey(mode), key).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrEntryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get entry by key: %w", err)
	}

	entry, err := unmarshalEntry(key, response)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (that *dbLeaderboard) GetAll(ctx context.Context, mode string) ([]*entity.LeaderboardEntry, error) {
	response, err := that.client.HGetAll(ctx, leaderboardKey(mode)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	entries := make([]*entity.LeaderboardEntry, 0, len(response))
	for key, raw := range response {
		entry, err := unmarshalEntry(key, raw)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func unmarshalEntry(key, raw string) (*entity.LeaderboardEntry, error) {
	var entry entity.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}

	entry.Key = key

	return &entry, nil
}
