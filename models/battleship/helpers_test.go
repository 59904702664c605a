package battleship_test

import (
	"context"
	"testing"

	mb "github.com/saeidalz13/battlesea/models/battleship"
)

// newPlayBoard places ships and seals the board for shooting.
func newPlayBoard(t *testing.T, size int, ships ...*mb.Ship) *mb.Board {
	t.Helper()
	board := mb.NewBoard(size, false)
	for _, sh := range ships {
		if err := board.PlaceShip(sh); err != nil {
			t.Fatalf("failed to place ship at %+v: %v", sh.Origin(), err)
		}
	}
	board.ResetForPlay()
	return board
}

type scriptedTarget struct {
	coords mb.Coordinates
	err    error
}

// scriptedSelector replays targets in order and fails the test when it
// runs out.
type scriptedSelector struct {
	t       *testing.T
	targets []scriptedTarget
	next    int
}

func newScriptedSelector(t *testing.T, coords ...mb.Coordinates) *scriptedSelector {
	s := &scriptedSelector{t: t}
	for _, c := range coords {
		s.targets = append(s.targets, scriptedTarget{coords: c})
	}
	return s
}

func (s *scriptedSelector) SelectTarget(ctx context.Context) (mb.Coordinates, error) {
	return s.ReadTarget(ctx)
}

func (s *scriptedSelector) ReadTarget(ctx context.Context) (mb.Coordinates, error) {
	if s.next >= len(s.targets) {
		s.t.Fatalf("selector ran out of targets after %d", s.next)
	}
	target := s.targets[s.next]
	s.next++
	return target.coords, target.err
}

type recordingPresenter struct {
	mb.NopPresenter
	inputErrors []error
	shotErrors  []error
	outcomes    []mb.ShotOutcome
	results     []mb.GameState
	turns       []mb.Side
}

func (p *recordingPresenter) ShowInputError(err error) {
	p.inputErrors = append(p.inputErrors, err)
}

func (p *recordingPresenter) ShowShotError(side mb.Side, err error) {
	p.shotErrors = append(p.shotErrors, err)
}

func (p *recordingPresenter) ShowOutcome(side mb.Side, target mb.Coordinates, outcome mb.ShotOutcome) {
	p.outcomes = append(p.outcomes, outcome)
}

func (p *recordingPresenter) ShowResult(state mb.GameState) {
	p.results = append(p.results, state)
}

func (p *recordingPresenter) ShowTurn(side mb.Side) {
	p.turns = append(p.turns, side)
}

// cyclingRandom returns values in a loop, each reduced modulo n, and
// remembers the bounds it was asked for.
type cyclingRandom struct {
	values []int
	next   int
	bounds []int
}

func (r *cyclingRandom) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	v := r.values[r.next%len(r.values)] % n
	r.next++
	return v
}
