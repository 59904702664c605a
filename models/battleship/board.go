package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battlesea/internal/error"
)

type ShotOutcome uint8

const (
	ShotMissed ShotOutcome = iota
	ShotDamaged
	ShotSunk
)

func (o ShotOutcome) String() string {
	switch o {
	case ShotMissed:
		return "Missed"
	case ShotDamaged:
		return "Damaged"
	case ShotSunk:
		return "Sunk"
	default:
		return "Unknown"
	}
}

// Only damaging a ship without sinking it keeps the turn.
func (o ShotOutcome) Repeat() bool {
	return o == ShotDamaged
}

// Offsets of a cell and its eight neighbours
var contourOffsets = [9][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board owns the cells, the ships and the set of used coordinates of one
// side. While ships are being placed, used holds ship cells and their
// contour; after ResetForPlay it holds only coordinates that were shot at
// or revealed around a sunk ship.
type Board struct {
	mu        sync.Mutex
	size      int
	concealed bool
	grid      Grid
	used      map[Coordinates]struct{}
	ships     []*Ship
	sunk      int
}

func NewBoard(size int, concealed bool) *Board {
	return &Board{
		size:      size,
		concealed: concealed,
		grid:      NewGrid(size),
		used:      make(map[Coordinates]struct{}, size*size),
		ships:     make([]*Ship, 0, len(DefaultFleet)),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Concealed() bool {
	return b.concealed
}

func (b *Board) SetConcealed(concealed bool) {
	b.mu.Lock()
	b.concealed = concealed
	b.mu.Unlock()
}

func (b *Board) IsOutOfBounds(c Coordinates) bool {
	return c.X < 0 || c.X >= b.size || c.Y < 0 || c.Y >= b.size
}

// PlaceShip puts sh on the board. Every cell of the ship has to be inside
// the board and unused, otherwise nothing changes and ErrWrongPlacement is
// returned.
func (b *Board) PlaceShip(sh *Ship) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	coords := sh.Coordinates()
	for _, c := range coords {
		if b.IsOutOfBounds(c) || b.isUsed(c) {
			return cerr.ErrShipWrongPlacement(sh.origin.X, sh.origin.Y, sh.length)
		}
	}

	for _, c := range coords {
		b.grid[c.X][c.Y] = PositionStateShip
		b.used[c] = struct{}{}
	}
	b.ships = append(b.ships, sh)

	// placement must not reveal the layout
	b.contour(sh, false)
	return nil
}

// contour marks every in-bounds unused neighbour of the ship as used.
// With reveal set the cells are also painted as PositionStateContour.
func (b *Board) contour(sh *Ship, reveal bool) {
	for _, c := range sh.Coordinates() {
		for _, off := range contourOffsets {
			n := NewCoordinates(c.X+off[0], c.Y+off[1])
			if b.IsOutOfBounds(n) || b.isUsed(n) {
				continue
			}
			if reveal {
				b.grid[n.X][n.Y] = PositionStateContour
			}
			b.used[n] = struct{}{}
		}
	}
}

// ResetForPlay forgets placement bookkeeping. From now on only shot
// history gates which coordinates can be targeted.
func (b *Board) ResetForPlay() {
	b.mu.Lock()
	b.used = make(map[Coordinates]struct{}, b.size*b.size)
	b.mu.Unlock()
}

// ResolveShot fires at c. Out of bounds and already used coordinates are
// rejected without touching the board.
func (b *Board) ResolveShot(c Coordinates) (ShotOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.IsOutOfBounds(c) {
		return ShotMissed, cerr.ErrXorYOutOfGridBound(c.X, c.Y)
	}
	if b.isUsed(c) {
		return ShotMissed, cerr.ErrPositionAlreadyTargeted(c.X, c.Y)
	}

	b.used[c] = struct{}{}

	for _, sh := range b.ships {
		if !sh.IsHitBy(c) {
			continue
		}

		sh.gotHit()
		b.grid[c.X][c.Y] = PositionStateHit
		if sh.IsSunk() {
			b.sunk++
			b.contour(sh, true)
			return ShotSunk, nil
		}
		return ShotDamaged, nil
	}

	b.grid[c.X][c.Y] = PositionStateMiss
	return ShotMissed, nil
}

func (b *Board) isUsed(c Coordinates) bool {
	_, prs := b.used[c]
	return prs
}

func (b *Board) IsUsed(c Coordinates) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.isUsed(c)
}

func (b *Board) UsedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.used)
}

// PositionState reports PositionStateEmpty for coordinates off the board.
func (b *Board) PositionState(c Coordinates) uint8 {
	if b.IsOutOfBounds(c) {
		return PositionStateEmpty
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid[c.X][c.Y]
}

func (b *Board) SunkenShips() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sunk
}

func (b *Board) Ships() []*Ship {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Ship(nil), b.ships...)
}

// Grid returns a copy of the cells. Concealed boards hide undamaged
// ship cells as empty.
func (b *Board) Grid() Grid {
	b.mu.Lock()
	defer b.mu.Unlock()

	grid := b.grid.Copy()
	if b.concealed {
		for x := range grid {
			for y := range grid[x] {
				if grid[x][y] == PositionStateShip {
					grid[x][y] = PositionStateEmpty
				}
			}
		}
	}
	return grid
}
