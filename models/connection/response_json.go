package connection

import (
	mb "github.com/saeidalz13/battlesea/models/battleship"
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string `json:"game_uuid"`
	GridSize int    `json:"grid_size"`
	Fleet    []int  `json:"fleet"`
}

type RespBoards struct {
	UserGrid        [][]int `json:"user_grid"`
	AIGrid          [][]int `json:"ai_grid"`
	SunkenShipsUser int     `json:"sunken_ships_user"`
	SunkenShipsAI   int     `json:"sunken_ships_ai"`
}

type RespTurn struct {
	IsTurn bool `json:"is_turn"`
}

type RespAttack struct {
	Side          string `json:"side"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Outcome       string `json:"outcome"`
	PositionState uint8  `json:"position_state"`
	IsTurn        bool   `json:"is_turn"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

// Grids go out as numbers; a [][]uint8 would be encoded as base64 rows.
func NewRespBoards(user, ai *mb.Board) RespBoards {
	return RespBoards{
		UserGrid:        gridToInts(user.Grid()),
		AIGrid:          gridToInts(ai.Grid()),
		SunkenShipsUser: user.SunkenShips(),
		SunkenShipsAI:   ai.SunkenShips(),
	}
}

func MatchStatus(state mb.GameState) int {
	switch state {
	case mb.GameStateWon:
		return PlayerMatchStatusWon
	case mb.GameStateLost:
		return PlayerMatchStatusLost
	default:
		return PlayerMatchStatusUndefined
	}
}

func gridToInts(grid mb.Grid) [][]int {
	out := make([][]int, len(grid))
	for x, row := range grid {
		out[x] = make([]int, len(row))
		for y, state := range row {
			out[x][y] = int(state)
		}
	}
	return out
}
