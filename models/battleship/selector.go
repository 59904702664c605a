package battleship

import (
	"context"
	"errors"

	cerr "github.com/saeidalz13/battlesea/internal/error"
)

// TargetSelector picks the next coordinates to shoot at.
type TargetSelector interface {
	SelectTarget(ctx context.Context) (Coordinates, error)
}

// RandomSelector draws both coordinates uniformly from [0, size) and keeps
// no memory of earlier shots.
type RandomSelector struct {
	rnd  Random
	size int
}

var _ TargetSelector = (*RandomSelector)(nil)

func NewRandomSelector(rnd Random, size int) *RandomSelector {
	return &RandomSelector{rnd: rnd, size: size}
}

func (rs *RandomSelector) SelectTarget(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	return NewCoordinates(rs.rnd.Intn(rs.size), rs.rnd.Intn(rs.size)), nil
}

// TargetReader gets coordinates typed by a human, already converted to
// 0-based. Syntactically broken input comes back as cerr.ErrInvalidInput.
type TargetReader interface {
	ReadTarget(ctx context.Context) (Coordinates, error)
}

type HumanSelector struct {
	reader    TargetReader
	presenter Presenter
}

var _ TargetSelector = (*HumanSelector)(nil)

func NewHumanSelector(reader TargetReader, presenter Presenter) *HumanSelector {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &HumanSelector{reader: reader, presenter: presenter}
}

// SelectTarget asks again on every invalid input. Any other reader error
// (closed input, cancelled context) is returned as is.
func (hs *HumanSelector) SelectTarget(ctx context.Context) (Coordinates, error) {
	for {
		target, err := hs.reader.ReadTarget(ctx)
		if err == nil {
			return target, nil
		}
		if !errors.Is(err, cerr.ErrInvalidInput) {
			return Coordinates{}, err
		}
		hs.presenter.ShowInputError(err)
	}
}
