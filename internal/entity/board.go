package entity

import "fmt"

const (
	// BoardSize is the side length of the square grid; coordinates run 0..9.
	BoardSize = 10

	ShotHit  = "hit"
	ShotMiss = "miss"
)

// Coordinate is one grid cell.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CellKey - canonical map key for a cell.
func CellKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// InBounds - reports whether a cell lies on the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

// Ship is one placed vessel and the cells of it already hit.
type Ship struct {
	Name        string              `json:"name"`
	Length      int                 `json:"-"`
	Coordinates []Coordinate        `json:"coordinates"`
	Hits        map[string]struct{} `json:"-"`
}

// IsSunk - a ship is sunk when every one of its cells has been hit.
func (that *Ship) IsSunk() bool {
	return len(that.Hits) == that.Length
}

// Board is one player's private grid inside a game: ship occupancy plus the
// shots the opponent has landed on it.
type Board struct {
	Occupied      map[string]string // cell -> ship name
	ShotsReceived map[string]string // cell -> hit|miss
	Ships         []*Ship
}

func NewBoard() *Board {
	return &Board{
		Occupied:      make(map[string]string),
		ShotsReceived: make(map[string]string),
		Ships:         make([]*Ship, 0),
	}
}

// ShipAt - returns the ship occupying a cell, or nil.
func (that *Board) ShipAt(key string) *Ship {
	name, ok := that.Occupied[key]
	if !ok {
		return nil
	}

	for _, ship := range that.Ships {
		if ship.Name == name {
			return ship
		}
	}

	return nil
}

// AllSunk - reports whether the whole fleet is down.
func (that *Board) AllSunk() bool {
	for _, ship := range that.Ships {
		if !ship.IsSunk() {
			return false
		}
	}

	return len(that.Ships) > 0
}
