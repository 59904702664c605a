package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	cerr "github.com/saeidalz13/battlesea/internal/error"
	mb "github.com/saeidalz13/battlesea/models/battleship"
)

const prompt = "Your move: "

type inputLine struct {
	text string
	err  error
}

// Input reads "row column" lines typed by the user. Lines are scanned in a
// background goroutine so a cancelled context unblocks a pending read.
type Input struct {
	r     io.Reader
	w     io.Writer
	once  sync.Once
	lines chan inputLine
}

var _ mb.TargetReader = (*Input)(nil)

func NewInput(r io.Reader, w io.Writer) *Input {
	return &Input{r: r, w: w, lines: make(chan inputLine)}
}

func (in *Input) scan() {
	defer close(in.lines)

	scanner := bufio.NewScanner(in.r)
	for scanner.Scan() {
		in.lines <- inputLine{text: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		in.lines <- inputLine{err: err}
	}
}

// ReadTarget returns io.EOF once the input is exhausted and ctx.Err() as
// soon as ctx is done, even while waiting for a line.
func (in *Input) ReadTarget(ctx context.Context) (mb.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return mb.Coordinates{}, err
	}

	in.once.Do(func() {
		go in.scan()
	})

	fmt.Fprint(in.w, prompt)
	select {
	case <-ctx.Done():
		return mb.Coordinates{}, ctx.Err()
	case l, ok := <-in.lines:
		if !ok {
			return mb.Coordinates{}, io.EOF
		}
		if l.err != nil {
			return mb.Coordinates{}, l.err
		}
		return ParseTarget(l.text)
	}
}

// ParseTarget turns a 1-based "x y" line into 0-based coordinates. Only the
// shape of the line is checked; bounds are the board's business.
func ParseTarget(line string) (mb.Coordinates, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return mb.Coordinates{}, cerr.ErrExpectedTwoCoordinates(len(fields))
	}

	x, okX := parseDigits(fields[0])
	y, okY := parseDigits(fields[1])
	if !okX || !okY {
		return mb.Coordinates{}, cerr.ErrCoordinatesNotNumeric(fields[0], fields[1])
	}
	return mb.NewCoordinates(x-1, y-1), nil
}

// parseDigits accepts plain digit strings only. Values too large for an
// int are clamped so the board rejects them as out of bounds.
func parseDigits(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}
