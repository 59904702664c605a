package battleship

const (
	PositionStateEmpty uint8 = iota
	PositionStateShip
	PositionStateMiss
	PositionStateHit

	// Cells around a sunk ship. They can no longer hold
	// a ship, so they are shown to the attacker like a miss.
	PositionStateContour
)

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Grid is the cell matrix of a board, indexed [x][y].
type Grid [][]uint8

// Creates a new default grid
// All indexes are zero/PositionStateEmpty
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]uint8, gridSize)
	}
	return grid
}

// Copy returns a deep copy so callers can't mutate the board through it.
func (g Grid) Copy() Grid {
	cp := make(Grid, len(g))
	for i := range g {
		cp[i] = append([]uint8(nil), g[i]...)
	}
	return cp
}
