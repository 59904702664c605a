package battleship

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battlesea/internal/error"
)

type GameState uint8

const (
	GameStateAwaitingUserTurn GameState = iota
	GameStateAwaitingAITurn
	GameStateWon
	GameStateLost
)

func (s GameState) String() string {
	switch s {
	case GameStateAwaitingUserTurn:
		return "AwaitingUserTurn"
	case GameStateAwaitingAITurn:
		return "AwaitingAITurn"
	case GameStateWon:
		return "Won"
	case GameStateLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

func (s GameState) IsOver() bool {
	return s == GameStateWon || s == GameStateLost
}

// Presenter shows the game to the human. It only observes; nothing it does
// changes the game.
type Presenter interface {
	ShowBoards(user, ai *Board)
	ShowTurn(side Side)
	ShowTarget(side Side, target Coordinates)
	ShowInputError(err error)
	ShowShotError(side Side, err error)
	ShowOutcome(side Side, target Coordinates, outcome ShotOutcome)
	ShowResult(state GameState)
}

type NopPresenter struct{}

var _ Presenter = NopPresenter{}

func (NopPresenter) ShowBoards(user, ai *Board)                                     {}
func (NopPresenter) ShowTurn(side Side)                                             {}
func (NopPresenter) ShowTarget(side Side, target Coordinates)                       {}
func (NopPresenter) ShowInputError(err error)                                       {}
func (NopPresenter) ShowShotError(side Side, err error)                             {}
func (NopPresenter) ShowOutcome(side Side, target Coordinates, outcome ShotOutcome) {}
func (NopPresenter) ShowResult(state GameState)                                     {}

// Turn is one resolved shot.
type Turn struct {
	Side    Side
	Target  Coordinates
	Outcome ShotOutcome
	State   GameState
}

type Game struct {
	mu        sync.Mutex
	uuid      string
	state     GameState
	shots     int
	fleetSize int
	user      *Player
	ai        *Player
	presenter Presenter
	createdAt time.Time
}

type GameOption func(*Game)

func WithPresenter(presenter Presenter) GameOption {
	return func(g *Game) {
		g.presenter = presenter
	}
}

func WithFleetSize(fleetSize int) GameOption {
	return func(g *Game) {
		g.fleetSize = fleetSize
	}
}

// NewGame seats the user and the AI at their boards. The AI board is
// concealed so its ships stay hidden from the user.
func NewGame(userBoard, aiBoard *Board, userSelector, aiSelector TargetSelector, opts ...GameOption) *Game {
	g := &Game{
		uuid:      uuid.NewString()[:6],
		state:     GameStateAwaitingUserTurn,
		fleetSize: len(DefaultFleet),
		presenter: NopPresenter{},
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(g)
	}

	aiBoard.SetConcealed(true)
	g.user = NewPlayer(SideUser, userBoard, aiBoard, userSelector, g.presenter)
	g.ai = NewPlayer(SideAI, aiBoard, userBoard, aiSelector, g.presenter)
	return g
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Number of shots that landed so far
func (g *Game) Shots() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shots
}

func (g *Game) FleetSize() int {
	return g.fleetSize
}

func (g *Game) FetchPlayer(side Side) *Player {
	if side == SideUser {
		return g.user
	}
	return g.ai
}

func (g *Game) UserBoard() *Board {
	return g.user.board
}

func (g *Game) AIBoard() *Board {
	return g.ai.board
}

// Step plays one shot of whoever's turn it is. Step must not be called
// concurrently for the same game.
func (g *Game) Step(ctx context.Context) (Turn, error) {
	state := g.State()
	if state.IsOver() {
		return Turn{State: state}, cerr.ErrGameIsOver(g.uuid)
	}

	mover := g.FetchPlayer(SideUser)
	if state == GameStateAwaitingAITurn {
		mover = g.FetchPlayer(SideAI)
	}

	target, outcome, err := mover.Move(ctx)
	if err != nil {
		return Turn{Side: mover.side, State: state}, err
	}

	g.mu.Lock()
	g.shots++
	g.state = g.nextState(state, outcome)
	turn := Turn{Side: mover.side, Target: target, Outcome: outcome, State: g.state}
	g.mu.Unlock()

	g.presenter.ShowOutcome(mover.side, target, outcome)
	return turn, nil
}

func (g *Game) nextState(current GameState, outcome ShotOutcome) GameState {
	if g.ai.board.SunkenShips() == g.fleetSize {
		return GameStateWon
	}
	if g.user.board.SunkenShips() == g.fleetSize {
		return GameStateLost
	}
	if outcome.Repeat() {
		return current
	}
	if current == GameStateAwaitingUserTurn {
		return GameStateAwaitingAITurn
	}
	return GameStateAwaitingUserTurn
}

// Run plays until someone wins or the user's input fails.
func (g *Game) Run(ctx context.Context) (GameState, error) {
	for {
		state := g.State()
		if state.IsOver() {
			g.presenter.ShowResult(state)
			return state, nil
		}

		g.presenter.ShowBoards(g.user.board, g.ai.board)
		if state == GameStateAwaitingUserTurn {
			g.presenter.ShowTurn(SideUser)
		} else {
			g.presenter.ShowTurn(SideAI)
		}

		if _, err := g.Step(ctx); err != nil {
			return g.State(), err
		}
	}
}
