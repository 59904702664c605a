package battleship

import (
	"fmt"
	"strings"
)

var positionSymbols = map[uint8]string{
	PositionStateEmpty:   "~",
	PositionStateShip:    "■",
	PositionStateMiss:    ".",
	PositionStateHit:     "X",
	PositionStateContour: ".",
}

// String renders the board with 1-based row and column labels.
func (b *Board) String() string {
	grid := b.Grid()

	var sb strings.Builder
	sb.WriteString(" |")
	for i := 1; i <= len(grid); i++ {
		fmt.Fprintf(&sb, " %d |", i)
	}

	for x, row := range grid {
		cells := make([]string, len(row))
		for y, state := range row {
			cells[y] = positionSymbols[state]
		}
		fmt.Fprintf(&sb, "\n%d| %s |", x+1, strings.Join(cells, " | "))
	}
	return sb.String()
}
