package battleship

import (
	"context"

	cerr "github.com/saeidalz13/battlesea/internal/error"
)

const (
	DefaultGridSize          int = 6
	DefaultPlacementAttempts int = 2000
	DefaultMaxBoardRestarts  int = 1000
)

// One 3-deck, two 2-deck and four 1-deck ships
var DefaultFleet = []int{3, 2, 2, 1, 1, 1, 1}

// Random is the source of every random choice in a game.
type Random interface {
	Intn(n int) int
}

type BoardGenerator struct {
	rnd         Random
	attempts    int
	maxRestarts int
}

func NewBoardGenerator(rnd Random, attempts, maxRestarts int) *BoardGenerator {
	if attempts <= 0 {
		attempts = DefaultPlacementAttempts
	}
	if maxRestarts <= 0 {
		maxRestarts = DefaultMaxBoardRestarts
	}
	return &BoardGenerator{
		rnd:         rnd,
		attempts:    attempts,
		maxRestarts: maxRestarts,
	}
}

// Generate tries to place the whole fleet on an empty board. The attempt
// budget is shared by all ships of the fleet.
func (bg *BoardGenerator) Generate(size int, fleet []int) (*Board, error) {
	board := NewBoard(size, false)
	attempts := 0

	for _, length := range fleet {
		for {
			attempts++
			if attempts > bg.attempts {
				return nil, cerr.ErrGenerationAttemptsExceeded(bg.attempts)
			}

			origin := NewCoordinates(bg.rnd.Intn(size), bg.rnd.Intn(size))
			ship := NewShip(origin, length, Orientation(bg.rnd.Intn(2)))
			if err := board.PlaceShip(ship); err == nil {
				break
			}
		}
	}

	board.ResetForPlay()
	return board, nil
}

// RandomBoard keeps generating from scratch until a board comes out.
func (bg *BoardGenerator) RandomBoard(ctx context.Context, size int, fleet []int) (*Board, error) {
	for restarts := 0; restarts < bg.maxRestarts; restarts++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		board, err := bg.Generate(size, fleet)
		if err == nil {
			return board, nil
		}
	}
	return nil, cerr.ErrBoardRestartsExceeded(bg.maxRestarts)
}
