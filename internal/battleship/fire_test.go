package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// newTestGame - a started game where both sides use the standard layout.
func newTestGame(t *testing.T) (*entity.Game, *entity.Player, *entity.Player) {
	t.Helper()

	playerA := entity.NewPlayer("a", "Alice", nil)
	playerB := entity.NewPlayer("b", "Bob", nil)
	game := entity.NewGame("match", playerA, playerB)

	for i, player := range []*entity.Player{playerA, playerB} {
		board, err := BuildBoard(validLayout())
		require.NoError(t, err)
		game.Boards[i] = board
		player.Ready = true
	}

	game.Start()

	return game, playerA, playerB
}

func TestFire_MissHandsTurnOver(t *testing.T) {
	game, playerA, _ := newTestGame(t)

	// When: the starter fires at open water (row 9 is empty)
	outcome, err := Fire(game, playerA, 0, 9)

	// Then: a miss, and the turn goes to seat 1
	require.NoError(t, err)
	assert.Equal(t, OutcomeMiss, outcome.Outcome)
	assert.False(t, outcome.GameEnded)
	require.NotNil(t, outcome.NextTurn)
	assert.Equal(t, 2, *outcome.NextTurn)
	assert.Equal(t, 1, game.Turn)
}

func TestFire_HitKeepsTurn(t *testing.T) {
	game, playerA, _ := newTestGame(t)

	// When: the starter hits the Carrier at (0,0)
	outcome, err := Fire(game, playerA, 0, 0)

	// Then: a hit, and the shooter keeps the turn
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, outcome.Outcome)
	require.NotNil(t, outcome.NextTurn)
	assert.Equal(t, 1, *outcome.NextTurn)
	assert.Equal(t, 0, game.Turn)
}

func TestFire_SinkReportsShipDetail(t *testing.T) {
	game, playerA, _ := newTestGame(t)

	// When: hitting both Destroyer cells (row 4)
	first, err := Fire(game, playerA, 0, 4)
	require.NoError(t, err)
	require.Equal(t, OutcomeHit, first.Outcome)

	sunk, err := Fire(game, playerA, 1, 4)
	require.NoError(t, err)

	// Then: the second hit sinks the ship and names it
	assert.Equal(t, OutcomeSunk, sunk.Outcome)
	require.NotNil(t, sunk.SunkShip)
	assert.Equal(t, "Destroyer", sunk.SunkShip.Name)
	assert.Len(t, sunk.SunkShip.Coordinates, 2)
	assert.False(t, sunk.GameEnded)
	assert.Equal(t, 0, game.Turn, "sinking keeps the turn")
}

func TestFire_TerminalShotEndsGameWithoutHandoff(t *testing.T) {
	game, playerA, playerB := newTestGame(t)

	// Given: every fleet cell of B's board
	var outcome *FireOutcome
	var err error
	for _, placement := range validLayout() {
		for _, cell := range placement.Coordinates {
			outcome, err = Fire(game, playerA, cell.X, cell.Y)
			require.NoError(t, err)
		}
	}

	// Then: the final shot terminates the game with no next turn
	assert.Equal(t, OutcomeSunk, outcome.Outcome)
	assert.True(t, outcome.GameEnded)
	assert.Nil(t, outcome.NextTurn)
	assert.False(t, game.Active)
	assert.True(t, game.IsFinished())
	assert.Nil(t, playerA.Game)
	assert.Nil(t, playerB.Game)

	// and no further fire is accepted
	_, err = Fire(game, playerA, 9, 9)
	require.ErrorIs(t, err, apperror.ErrGameNotActive)
}

func TestFire_Rejections(t *testing.T) {
	t.Run("not your turn", func(t *testing.T) {
		game, _, playerB := newTestGame(t)

		_, err := Fire(game, playerB, 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 0, game.Turn)
	})

	t.Run("out of bounds leaves state untouched", func(t *testing.T) {
		game, playerA, _ := newTestGame(t)

		_, err := Fire(game, playerA, 10, 5)

		require.ErrorIs(t, err, apperror.ErrInvalidShot)
		assert.Equal(t, 0, game.Turn)
		assert.Empty(t, game.Boards[1].ShotsReceived)
	})

	t.Run("duplicate shot", func(t *testing.T) {
		game, playerA, _ := newTestGame(t)

		_, err := Fire(game, playerA, 0, 0)
		require.NoError(t, err)

		_, err = Fire(game, playerA, 0, 0)
		require.ErrorIs(t, err, apperror.ErrAlreadyFired)
	})

	t.Run("players not ready", func(t *testing.T) {
		game, playerA, playerB := newTestGame(t)
		playerB.Ready = false

		_, err := Fire(game, playerA, 0, 0)

		require.ErrorIs(t, err, apperror.ErrPlayersNotReady)
	})

	t.Run("inactive game", func(t *testing.T) {
		game, playerA, _ := newTestGame(t)
		game.Finish()

		_, err := Fire(game, playerA, 0, 0)

		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})
}
