package usecase

import (
	"context"
	"encoding/json"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

type placeShipsPayload struct {
	Ships []battleship.ShipPlacement `json:"ships"`
}

func (that *GameManager) handlePlaceShips(_ context.Context, player *entity.Player, raw json.RawMessage) {
	game := player.Game
	if game == nil || !game.Active {
		that.send(player, newErrorMsg(apperror.ErrNoActiveGame.Error()))
		return
	}

	if game.IsOngoing() {
		that.send(player, newErrorMsg(apperror.ErrGameInProgress.Error()))
		return
	}

	var payload placeShipsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		that.send(player, newErrorMsg(apperror.ErrInvalidJSON.Error()))
		return
	}

	board, err := battleship.BuildBoard(payload.Ships)
	if err != nil {
		that.send(player, newErrorMsg(err.Error()))
		return
	}

	game.Boards[player.Index] = board
	player.Ready = true

	that.send(player, simpleMsg{Type: "layoutAccepted"})
	that.send(game.Opponent(player), simpleMsg{Type: "opponentReady"})

	if game.BothReady() {
		game.Start()

		starter := game.Players[game.Turn]
		that.send(starter, gameStartMsg{Type: "gameStart", YouStart: true})
		that.send(game.Opponent(starter), gameStartMsg{Type: "gameStart", YouStart: false})
		that.send(starter, simpleMsg{Type: "yourTurn"})
	}
}

func (that *GameManager) handleFire(ctx context.Context, player *entity.Player, raw json.RawMessage) {
	log := that.logger.With("method", "handleFire")

	game := player.Game
	if game == nil {
		that.send(player, newErrorMsg(apperror.ErrNoActiveGame.Error()))
		return
	}

	var payload firePayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.X == nil || payload.Y == nil {
		that.send(player, newErrorMsg(apperror.ErrInvalidShot.Error()))
		return
	}

	outcome, err := battleship.Fire(game, player, *payload.X, *payload.Y)
	if err != nil {
		that.send(player, newErrorMsg(err.Error()))
		return
	}

	var sunk *shipDetail
	if outcome.SunkShip != nil {
		sunk = &shipDetail{
			Name:        outcome.SunkShip.Name,
			Coordinates: outcome.SunkShip.Coordinates,
		}
	}

	opponent := game.Players[1-player.Index]

	that.send(player, fireReportMsg{
		Type:     "fireResult",
		X:        outcome.X,
		Y:        outcome.Y,
		Outcome:  outcome.Outcome,
		Ship:     sunk,
		NextTurn: outcome.NextTurn,
	})
	that.send(opponent, fireReportMsg{
		Type:     "opponentFire",
		X:        outcome.X,
		Y:        outcome.Y,
		Outcome:  outcome.Outcome,
		Ship:     sunk,
		NextTurn: outcome.NextTurn,
	})

	if outcome.GameEnded {
		that.send(player, gameOverMsg{Type: "gameOver", Result: "win"})
		that.send(opponent, gameOverMsg{Type: "gameOver", Result: "lose"})

		that.finishGame(ctx, game)
		that.recordMatchResult(ctx, player, opponent)

		log.Info("game finished", "gameID", game.ID, "winner", player.ID)
		return
	}

	that.send(game.Players[game.Turn], simpleMsg{Type: "yourTurn"})
}

func (that *GameManager) handleResetPlacement(_ context.Context, player *entity.Player, _ json.RawMessage) {
	game := player.Game

	if game != nil && game.IsOngoing() {
		that.send(player, newErrorMsg(apperror.ErrGameInProgress.Error()))
		return
	}

	player.Ready = false
	that.send(player, simpleMsg{Type: "resetAcknowledged"})

	if game != nil {
		opponent := game.Opponent(player)
		if opponent != nil && opponent.Ready {
			that.send(opponent, simpleMsg{Type: "opponentReset"})
		}
	}
}

// handleGameDisconnect - a mid-game disconnect terminates only that game.
// The remaining player is told the opponent left and is credited a win when
// the game had reached its turn phase. Requires the manager lock.
func (that *GameManager) handleGameDisconnect(ctx context.Context, game *entity.Game, leaver *entity.Player) {
	if !game.Active {
		return
	}

	started := game.IsOngoing()
	opponent := game.Opponent(leaver)

	game.Finish()
	that.finishGame(ctx, game)

	if opponent == nil {
		return
	}

	that.send(opponent, simpleMsg{Type: "opponentLeft"})

	// a forfeit only counts once the match was actually in progress
	if started {
		that.recordMatchResult(ctx, opponent, leaver)
	}
}

// finishGame - drops a terminated game and its chat channel from the
// registries and moves both players' chat scope back to the lobby.
func (that *GameManager) finishGame(_ context.Context, game *entity.Game) {
	delete(that.games, game.ID)
	delete(that.roomChats, game.ID)

	for _, player := range game.Players {
		if player == nil {
			continue
		}
		if _, connected := that.players[player]; connected {
			that.sendChatContext(player)
			that.sendChatHistory(player, entity.ScopeLobby)
		}
	}

	that.broadcastLobbyUpdate()
}
