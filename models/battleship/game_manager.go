package battleship

import (
	"context"
	"sync"

	cerr "github.com/saeidalz13/battlesea/internal/error"
)

type GameManager interface {
	CreateGame(ctx context.Context, reader TargetReader, presenter Presenter) (*Game, error)
	FetchGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	CountGames() int
}

type BattleshipGameManager struct {
	games     map[string]*Game
	mu        sync.RWMutex
	rules     Rules
	rnd       Random
	generator *BoardGenerator
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager(rules Rules, rnd Random) *BattleshipGameManager {
	return &BattleshipGameManager{
		games:     make(map[string]*Game, 10),
		rules:     rules,
		rnd:       rnd,
		generator: NewBoardGenerator(rnd, rules.PlacementAttempts, rules.MaxBoardRestarts),
	}
}

func (bgm *BattleshipGameManager) Rules() Rules {
	return bgm.rules
}

// CreateGame generates both boards and registers a new user vs AI game.
// The user's targets come from reader.
func (bgm *BattleshipGameManager) CreateGame(ctx context.Context, reader TargetReader, presenter Presenter) (*Game, error) {
	userBoard, err := bgm.generator.RandomBoard(ctx, bgm.rules.GridSize, bgm.rules.Fleet)
	if err != nil {
		return nil, err
	}
	aiBoard, err := bgm.generator.RandomBoard(ctx, bgm.rules.GridSize, bgm.rules.Fleet)
	if err != nil {
		return nil, err
	}

	if presenter == nil {
		presenter = NopPresenter{}
	}
	game := NewGame(
		userBoard,
		aiBoard,
		NewHumanSelector(reader, presenter),
		NewRandomSelector(bgm.rnd, bgm.rules.GridSize),
		WithPresenter(presenter),
		WithFleetSize(len(bgm.rules.Fleet)),
	)

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()

	return game, nil
}

func (bgm *BattleshipGameManager) FetchGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExistsUuid(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) CountGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
