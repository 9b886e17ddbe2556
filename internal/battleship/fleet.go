package battleship

import (
	"fmt"
	"sort"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// fleetShip is one required vessel of the fixed fleet.
type fleetShip struct {
	name   string
	length int
}

// FleetSpec is the fixed fleet every layout must place.
var FleetSpec = []fleetShip{
	{name: "Carrier", length: 5},
	{name: "Battleship", length: 4},
	{name: "Cruiser", length: 3},
	{name: "Submarine", length: 3},
	{name: "Destroyer", length: 2},
}

// ShipPlacement is one candidate ship of a submitted layout.
type ShipPlacement struct {
	Name        string              `json:"name"`
	Coordinates []entity.Coordinate `json:"coordinates"`
}

// BuildBoard - validates a candidate layout against the fleet spec and
// constructs the board. Validation never mutates anything on failure; the
// returned error message is what the player sees.
func BuildBoard(layout []ShipPlacement) (*entity.Board, error) {
	if len(layout) != len(FleetSpec) {
		return nil, apperror.ErrInvalidLayout
	}

	board := entity.NewBoard()

	for _, spec := range FleetSpec {
		placement := findPlacement(layout, spec.name)
		if placement == nil {
			return nil, fmt.Errorf("Missing ship: %s", spec.name) //nolint: staticcheck // wire-facing message
		}

		if len(placement.Coordinates) != spec.length {
			return nil, fmt.Errorf("Invalid coordinates for %s", spec.name) //nolint: staticcheck // wire-facing message
		}

		coords := placement.Coordinates

		if !coordinatesAligned(coords) {
			return nil, fmt.Errorf("%s must be placed in a straight line.", spec.name) //nolint: staticcheck // wire-facing message
		}

		if !coordinatesConsecutive(coords) {
			return nil, fmt.Errorf("%s must be consecutive.", spec.name) //nolint: staticcheck // wire-facing message
		}

		for _, coord := range coords {
			if !entity.InBounds(coord.X, coord.Y) {
				return nil, apperror.ErrShipOutOfBounds
			}

			key := entity.CellKey(coord.X, coord.Y)
			if _, taken := board.Occupied[key]; taken {
				return nil, apperror.ErrShipsOverlap
			}

			board.Occupied[key] = spec.name
		}

		board.Ships = append(board.Ships, &entity.Ship{
			Name:        spec.name,
			Length:      spec.length,
			Coordinates: coords,
			Hits:        make(map[string]struct{}),
		})
	}

	return board, nil
}

func findPlacement(layout []ShipPlacement, name string) *ShipPlacement {
	for i := range layout {
		if layout[i].Name == name {
			return &layout[i]
		}
	}

	return nil
}

// coordinatesAligned - all cells share a row or a column.
func coordinatesAligned(coords []entity.Coordinate) bool {
	if len(coords) == 0 {
		return false
	}

	sameRow, sameCol := true, true
	for _, pt := range coords {
		if pt.Y != coords[0].Y {
			sameRow = false
		}
		if pt.X != coords[0].X {
			sameCol = false
		}
	}

	return sameRow || sameCol
}

// coordinatesConsecutive - sorted cells step by exactly one along the shared axis.
func coordinatesConsecutive(coords []entity.Coordinate) bool {
	if len(coords) == 0 {
		return false
	}

	sorted := make([]entity.Coordinate, len(coords))
	copy(sorted, coords)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X == sorted[j].X {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	byCol, byRow := true, true
	for _, pt := range sorted {
		if pt.X != sorted[0].X {
			byCol = false
		}
		if pt.Y != sorted[0].Y {
			byRow = false
		}
	}

	switch {
	case byCol:
		for i := 1; i < len(sorted); i++ {
			if sorted[i].Y != sorted[i-1].Y+1 {
				return false
			}
		}
		return true
	case byRow:
		for i := 1; i < len(sorted); i++ {
			if sorted[i].X != sorted[i-1].X+1 {
				return false
			}
		}
		return true
	default:
		return false
	}
}
