package entity

import "time"

// RoomCapacity - a lobby room pairs exactly two players.
const RoomCapacity = 2

// Room is a pre-game waiting slot. It is destroyed when it empties, fills
// (promotion to a Game) or is explicitly closed.
type Room struct {
	ID        string
	Name      string
	Players   []*Player
	CreatedAt time.Time
}

func NewRoom(id, name string) *Room {
	return &Room{
		ID:        id,
		Name:      name,
		Players:   make([]*Player, 0, RoomCapacity),
		CreatedAt: time.Now(),
	}
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= RoomCapacity
}

func (that *Room) Contains(player *Player) bool {
	for _, occupant := range that.Players {
		if occupant == player {
			return true
		}
	}

	return false
}

// Remove - drops a player from the room, preserving order.
func (that *Room) Remove(player *Player) {
	kept := that.Players[:0]
	for _, occupant := range that.Players {
		if occupant != player {
			kept = append(kept, occupant)
		}
	}
	that.Players = kept
}
