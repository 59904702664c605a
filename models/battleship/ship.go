package battleship

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "Horizontal"
	case OrientationVertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

type Ship struct {
	origin      Coordinates
	length      int
	orientation Orientation
	hp          int
}

func NewShip(origin Coordinates, length int, orientation Orientation) *Ship {
	return &Ship{
		origin:      origin,
		length:      length,
		orientation: orientation,
		hp:          length,
	}
}

func (sh *Ship) Origin() Coordinates {
	return sh.origin
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

// Number of undamaged segments left
func (sh *Ship) HP() int {
	return sh.hp
}

func (sh *Ship) IsSunk() bool {
	return sh.hp == 0
}

// Coordinates returns the cells the ship occupies, starting at its
// origin and growing along x (horizontal) or y (vertical).
func (sh *Ship) Coordinates() []Coordinates {
	coords := make([]Coordinates, sh.length)
	for i := 0; i < sh.length; i++ {
		c := sh.origin
		if sh.orientation == OrientationHorizontal {
			c.X += i
		} else {
			c.Y += i
		}
		coords[i] = c
	}
	return coords
}

func (sh *Ship) IsHitBy(shot Coordinates) bool {
	for _, c := range sh.Coordinates() {
		if c == shot {
			return true
		}
	}
	return false
}

// Only the board calls this, once per confirmed hit.
func (sh *Ship) gotHit() {
	if sh.hp > 0 {
		sh.hp--
	}
}
