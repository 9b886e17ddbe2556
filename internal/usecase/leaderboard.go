package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
)

func (that *GameManager) handleSetName(ctx context.Context, player *entity.Player, raw json.RawMessage) {
	var payload setNamePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		that.send(player, profileMsg{Type: "profile", Error: apperror.ErrInvalidJSON.Error()})
		return
	}

	name := pkg.SanitizeName(payload.Name)
	if len([]rune(name)) < 2 {
		that.send(player, profileMsg{Type: "profile", Error: apperror.ErrInvalidDisplayName.Error()})
		return
	}

	oldKey := pkg.NormalizeNameKey(player.Name)
	newKey := pkg.NormalizeNameKey(name)
	player.Name = name

	that.send(player, profileMsg{Type: "profile", Name: name})

	// a cosmetic rename keeps the same normalized key; rewrite the stored
	// display name in place instead of forking a duplicate entry
	if oldKey == newKey {
		updated := false
		for _, mode := range []string{entity.ModePVP, entity.ModeSolo} {
			entry, err := that.leaderboardRepo.GetByKey(ctx, mode, newKey)
			if errors.Is(err, repository.ErrEntryNotFound) {
				continue
			}
			if err != nil {
				that.logger.Error("failed to load leaderboard entry", "error", err)
				continue
			}

			entry.Name = name
			if err = that.leaderboardRepo.Save(ctx, mode, entry); err != nil {
				that.logger.Error("failed to save leaderboard entry", "error", err)
				continue
			}
			updated = true
		}

		if updated {
			that.broadcastLeaderboards(ctx)
		}
	}
}

func (that *GameManager) handleLeaderboardRequest(ctx context.Context, player *entity.Player, _ json.RawMessage) {
	snapshot, err := that.buildLeaderboardData(ctx)
	if err != nil {
		that.send(player, leaderboardErrorMsg{Type: "leaderboardError", Message: "Leaderboard is unavailable."})
		return
	}

	that.send(player, snapshot)
}

func (that *GameManager) handleSoloResult(ctx context.Context, player *entity.Player, raw json.RawMessage) {
	var payload soloResultPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		that.send(player, leaderboardErrorMsg{Type: "leaderboardError", Message: apperror.ErrInvalidJSON.Error()})
		return
	}

	var wins, losses int
	switch payload.Result {
	case "win":
		wins = 1
	case "lose":
		losses = 1
	default:
		that.send(player, leaderboardErrorMsg{Type: "leaderboardError", Message: apperror.ErrInvalidSoloResult.Error()})
		return
	}

	that.recordResult(ctx, entity.ModeSolo, player.Name, wins, losses)
	that.broadcastLeaderboards(ctx)
}

// recordMatchResult - credits a head-to-head result to both sides and
// re-broadcasts the standings.
func (that *GameManager) recordMatchResult(ctx context.Context, winner, loser *entity.Player) {
	that.recordResult(ctx, entity.ModePVP, winner.Name, 1, 0)
	that.recordResult(ctx, entity.ModePVP, loser.Name, 0, 1)
	that.broadcastLeaderboards(ctx)
}

// recordResult - applies one +1 delta to the entry of a normalized name,
// creating the entry on first sight. Games is always recomputed as
// wins+losses.
func (that *GameManager) recordResult(ctx context.Context, mode, displayName string, wins, losses int) {
	log := that.logger.With("method", "recordResult")

	name := pkg.SanitizeName(displayName)
	key := pkg.NormalizeNameKey(name)
	if key == "" {
		return
	}

	entry, err := that.leaderboardRepo.GetByKey(ctx, mode, key)
	if errors.Is(err, repository.ErrEntryNotFound) {
		entry = &entity.LeaderboardEntry{Key: key, Name: name}
	} else if err != nil {
		log.Error("failed to load leaderboard entry", "error", err)
		return
	}

	entry.Name = name
	entry.ApplyDelta(wins, losses)

	if err = that.leaderboardRepo.Save(ctx, mode, entry); err != nil {
		log.Error("failed to save leaderboard entry", "error", err)
	}
}

func (that *GameManager) buildLeaderboardData(ctx context.Context) (leaderboardDataMsg, error) {
	pvp, err := that.leaderboardRepo.GetAll(ctx, entity.ModePVP)
	if err != nil {
		return leaderboardDataMsg{}, err
	}

	solo, err := that.leaderboardRepo.GetAll(ctx, entity.ModeSolo)
	if err != nil {
		return leaderboardDataMsg{}, err
	}

	return leaderboardDataMsg{
		Type: "leaderboardData",
		PVP:  entity.RankEntries(pvp),
		Solo: entity.RankEntries(solo),
	}, nil
}

// broadcastLeaderboards - pushes ranked snapshots to every connected player
// after every update.
func (that *GameManager) broadcastLeaderboards(ctx context.Context) {
	snapshot, err := that.buildLeaderboardData(ctx)
	if err != nil {
		that.logger.Error("failed to build leaderboard snapshot", "error", err)
		return
	}

	for player := range that.players {
		that.send(player, snapshot)
	}
}
