package console

import (
	"errors"
	"fmt"
	"io"
	"time"

	cerr "github.com/saeidalz13/battlesea/internal/error"
	mb "github.com/saeidalz13/battlesea/models/battleship"
)

const separator = "____________________"

type Presenter struct {
	w     io.Writer
	delay time.Duration
	sleep func(time.Duration)
}

var _ mb.Presenter = (*Presenter)(nil)

// NewPresenter pauses for delay after every miss and twice as long after
// a hit so the user can follow the AI.
func NewPresenter(w io.Writer, delay time.Duration) *Presenter {
	return &Presenter{w: w, delay: delay, sleep: time.Sleep}
}

func (p *Presenter) Greet() {
	fmt.Fprintln(p.w, "___________________")
	fmt.Fprintln(p.w, "    Welcome to     ")
	fmt.Fprintln(p.w, "     battlesea     ")
	fmt.Fprintln(p.w, "___________________")
	fmt.Fprintln(p.w, " input format: x y ")
	fmt.Fprintln(p.w, " x - row number    ")
	fmt.Fprintln(p.w, " y - column number ")
}

func (p *Presenter) ShowBoards(user, ai *mb.Board) {
	fmt.Fprintln(p.w, separator)
	fmt.Fprintln(p.w, "Your board:")
	fmt.Fprintln(p.w, user.String())
	fmt.Fprintln(p.w, separator)
	fmt.Fprintln(p.w, "Computer's board:")
	fmt.Fprintln(p.w, ai.String())
	fmt.Fprintln(p.w, separator)
}

func (p *Presenter) ShowTurn(side mb.Side) {
	if side == mb.SideUser {
		fmt.Fprintln(p.w, "Your turn!")
		return
	}
	fmt.Fprintln(p.w, "Computer's turn!")
}

func (p *Presenter) ShowTarget(side mb.Side, target mb.Coordinates) {
	if side == mb.SideAI {
		fmt.Fprintf(p.w, "Computer shoots: %d %d\n", target.X+1, target.Y+1)
	}
}

func (p *Presenter) ShowInputError(err error) {
	switch {
	case errors.Is(err, cerr.ErrNotNumeric):
		fmt.Fprintln(p.w, "Enter numbers")
	case errors.Is(err, cerr.ErrInvalidInput):
		fmt.Fprintln(p.w, "Enter 2 coordinates")
	default:
		fmt.Fprintln(p.w, err)
	}
}

// AI misfires are not shown; it simply picks again.
func (p *Presenter) ShowShotError(side mb.Side, err error) {
	if side != mb.SideUser {
		return
	}
	switch {
	case errors.Is(err, cerr.ErrOutOfBounds):
		fmt.Fprintln(p.w, "Those coordinates are outside the board")
	case errors.Is(err, cerr.ErrAlreadyTargeted):
		fmt.Fprintln(p.w, "You have already shot at this position")
	default:
		fmt.Fprintln(p.w, err)
	}
}

func (p *Presenter) ShowOutcome(side mb.Side, target mb.Coordinates, outcome mb.ShotOutcome) {
	whose := "an enemy"
	if side == mb.SideAI {
		whose = "your"
	}

	switch outcome {
	case mb.ShotSunk:
		fmt.Fprintf(p.w, "Sunk %s ship!\n", whose)
		p.sleep(2 * p.delay)
	case mb.ShotDamaged:
		fmt.Fprintf(p.w, "Damaged %s ship!\n", whose)
		p.sleep(2 * p.delay)
	default:
		fmt.Fprintln(p.w, "Miss!")
		p.sleep(p.delay)
	}
}

func (p *Presenter) ShowResult(state mb.GameState) {
	fmt.Fprintln(p.w, separator)
	switch state {
	case mb.GameStateWon:
		fmt.Fprintln(p.w, "You won!!!")
	case mb.GameStateLost:
		fmt.Fprintln(p.w, "   You lost :(   ")
		fmt.Fprintln(p.w, " the computer won ")
	}
}
