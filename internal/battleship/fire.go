package battleship

import (
	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	OutcomeMiss = "miss"
	OutcomeHit  = "hit"
	OutcomeSunk = "sunk"
)

// FireOutcome is the full resolution of one shot, reported symmetrically to
// both sides of the match.
type FireOutcome struct {
	X         int
	Y         int
	Outcome   string
	SunkShip  *entity.Ship
	GameEnded bool
	NextTurn  *int // 1-based seat number of the next shooter, nil on the terminal shot
}

// Fire - validates and resolves one shot against the opponent's board.
// Rejections never mutate state. A miss hands the turn over; a hit or sunk
// keeps it, unless the shot downs the last ship, which terminates the game
// with no handoff.
func Fire(game *entity.Game, player *entity.Player, x, y int) (*FireOutcome, error) {
	if !game.Active {
		return nil, apperror.ErrGameNotActive
	}

	if !game.BothReady() {
		return nil, apperror.ErrPlayersNotReady
	}

	if player.Index != game.Turn {
		return nil, apperror.ErrNotYourTurn
	}

	if !entity.InBounds(x, y) {
		return nil, apperror.ErrInvalidShot
	}

	opponentIndex := 1 - player.Index
	opponentBoard := game.Boards[opponentIndex]
	key := entity.CellKey(x, y)

	if _, fired := opponentBoard.ShotsReceived[key]; fired {
		return nil, apperror.ErrAlreadyFired
	}

	outcome := &FireOutcome{X: x, Y: y, Outcome: OutcomeMiss}

	ship := opponentBoard.ShipAt(key)
	if ship == nil {
		opponentBoard.ShotsReceived[key] = entity.ShotMiss
	} else {
		opponentBoard.ShotsReceived[key] = entity.ShotHit
		ship.Hits[key] = struct{}{}

		outcome.Outcome = OutcomeHit
		if ship.IsSunk() {
			outcome.Outcome = OutcomeSunk
			outcome.SunkShip = ship
		}
	}

	if opponentBoard.AllSunk() {
		outcome.GameEnded = true
		game.Finish()

		return outcome, nil
	}

	if outcome.Outcome == OutcomeMiss {
		game.Turn = opponentIndex
	}

	next := game.Turn + 1
	outcome.NextTurn = &next

	return outcome, nil
}
