package battleship

import (
	"context"

	cerr "github.com/saeidalz13/battlesea/internal/error"
)

type Side uint8

const (
	SideUser Side = iota
	SideAI
)

func (s Side) String() string {
	switch s {
	case SideUser:
		return "user"
	case SideAI:
		return "ai"
	default:
		return "unknown"
	}
}

func (s Side) Other() Side {
	if s == SideUser {
		return SideAI
	}
	return SideUser
}

// Player shoots at the enemy board with targets from its selector. It
// never touches its own board once the game has started.
type Player struct {
	side      Side
	board     *Board
	enemy     *Board
	selector  TargetSelector
	presenter Presenter
}

func NewPlayer(side Side, board, enemy *Board, selector TargetSelector, presenter Presenter) *Player {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &Player{
		side:      side,
		board:     board,
		enemy:     enemy,
		selector:  selector,
		presenter: presenter,
	}
}

func (p *Player) Side() Side {
	return p.side
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) Enemy() *Board {
	return p.enemy
}

// Move keeps asking for targets until one shot lands on the enemy board.
// Rejected shots are shown to this player and cost nothing.
func (p *Player) Move(ctx context.Context) (Coordinates, ShotOutcome, error) {
	for {
		target, err := p.selector.SelectTarget(ctx)
		if err != nil {
			return Coordinates{}, ShotMissed, err
		}
		p.presenter.ShowTarget(p.side, target)

		outcome, err := p.enemy.ResolveShot(target)
		if err != nil {
			if cerr.IsShotError(err) {
				p.presenter.ShowShotError(p.side, err)
				continue
			}
			return Coordinates{}, ShotMissed, err
		}
		return target, outcome, nil
	}
}
