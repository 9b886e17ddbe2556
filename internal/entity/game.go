package entity

// Game statuses mirror the session state machine: layouts are collected
// while waiting, turns run while ongoing, and a game terminates exactly once.
const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Game pairs exactly two players and their boards. Turn is always a valid
// index into Players while the game is active.
type Game struct {
	ID      string
	Players [2]*Player
	Boards  [2]*Board
	Turn    int
	Status  string
	Active  bool
}

// NewGame - seats two players into a fresh match awaiting layouts.
// The starter is seat 0, fixed for the whole match.
func NewGame(id string, playerA, playerB *Player) *Game {
	game := &Game{
		ID:     id,
		Status: StatusWaiting,
		Active: true,
	}

	game.Players[0] = playerA
	game.Players[1] = playerB

	for i, player := range game.Players {
		player.Index = i
		player.Game = game
		player.Ready = false
	}

	return game
}

// Opponent - the other seat.
func (that *Game) Opponent(player *Player) *Player {
	return that.Players[1-player.Index]
}

// BothReady - reports whether both layouts have been accepted.
func (that *Game) BothReady() bool {
	return that.Players[0].Ready && that.Players[1].Ready
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// Start - transitions to the turn phase; only valid once both boards exist.
func (that *Game) Start() {
	that.Status = StatusOngoing
}

// Finish - deactivates the game and unseats both players. Safe to call once;
// a finished game never accepts further fire.
func (that *Game) Finish() {
	that.Status = StatusFinished
	that.Active = false

	for _, player := range that.Players {
		if player == nil {
			continue
		}
		player.Game = nil
		player.Ready = false
	}
}
