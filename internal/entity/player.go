package entity

// Sender is the outbound half of a player's connection. The transport layer
// provides the implementation; entities never touch the socket directly.
type Sender interface {
	Send(v any) error
	Close(code int, reason string)
}

// Player is the per-connection identity. It lives exactly as long as its
// connection and belongs to at most one room or one game at a time.
type Player struct {
	ID         string
	Name       string
	RoomID     string
	IsRoomHost bool
	Game       *Game
	Index      int // seat within Game, 0 or 1
	Ready      bool

	conn Sender
}

func NewPlayer(id, name string, conn Sender) *Player {
	return &Player{
		ID:   id,
		Name: name,
		conn: conn,
	}
}

// Send - pushes one message to the player, silently dropped if the
// connection is already closed.
func (that *Player) Send(v any) error {
	if that.conn == nil {
		return nil
	}

	return that.conn.Send(v)
}

// InGame - reports whether the player is seated in an active match.
func (that *Player) InGame() bool {
	return that.Game != nil && that.Game.Active
}

// InRoom - reports whether the player is waiting in a lobby room.
func (that *Player) InRoom() bool {
	return that.RoomID != ""
}
