package battleship

import (
	"fmt"

	cerr "github.com/saeidalz13/battlesea/internal/error"
)

type Rules struct {
	GridSize          int   `yaml:"grid_size"`
	Fleet             []int `yaml:"fleet"`
	PlacementAttempts int   `yaml:"placement_attempts"`
	MaxBoardRestarts  int   `yaml:"max_board_restarts"`
}

func DefaultRules() Rules {
	return Rules{
		GridSize:          DefaultGridSize,
		Fleet:             append([]int(nil), DefaultFleet...),
		PlacementAttempts: DefaultPlacementAttempts,
		MaxBoardRestarts:  DefaultMaxBoardRestarts,
	}
}

func (r Rules) Validate() error {
	if r.GridSize <= 0 {
		return cerr.ErrRules(fmt.Sprintf("grid size must be positive, got %d", r.GridSize))
	}
	if len(r.Fleet) == 0 {
		return cerr.ErrRules("fleet is empty")
	}
	for _, length := range r.Fleet {
		if length <= 0 || length > r.GridSize {
			return cerr.ErrRules(fmt.Sprintf("ship length %d does not fit a %dx%d grid", length, r.GridSize, r.GridSize))
		}
	}
	if r.PlacementAttempts <= 0 {
		return cerr.ErrRules("placement attempts must be positive")
	}
	if r.MaxBoardRestarts <= 0 {
		return cerr.ErrRules("max board restarts must be positive")
	}
	return nil
}
