package error

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds              = errors.New("coordinates are out of the board")
	ErrAlreadyTargeted          = errors.New("position has already been targeted")
	ErrWrongPlacement           = errors.New("ship cannot be placed here")
	ErrBoardGenerationExhausted = errors.New("board generation ran out of attempts")
	ErrInvalidInput             = errors.New("invalid input")
	ErrGameOver                 = errors.New("game is already over")
	ErrGameNotExists            = errors.New("game does not exist")
	ErrSessionNotFound          = errors.New("session not found")
	ErrInvalidRules             = errors.New("invalid game rules")

	ErrNotNumeric = fmt.Errorf("%w: coordinates must be numbers", ErrInvalidInput)
)

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrOutOfBounds, x, y)
}

func ErrPositionAlreadyTargeted(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrAlreadyTargeted, x, y)
}

func ErrShipWrongPlacement(x, y, length int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d\tlength: %d", ErrWrongPlacement, x, y, length)
}

func ErrGenerationAttemptsExceeded(attempts int) error {
	return fmt.Errorf("%w after %d attempts", ErrBoardGenerationExhausted, attempts)
}

func ErrBoardRestartsExceeded(restarts int) error {
	return fmt.Errorf("%w: gave up after %d fresh boards", ErrBoardGenerationExhausted, restarts)
}

func ErrExpectedTwoCoordinates(got int) error {
	return fmt.Errorf("%w: expected 2 coordinates, got %d", ErrInvalidInput, got)
}

func ErrCoordinatesNotNumeric(x, y string) error {
	return fmt.Errorf("%w\tx: %q\ty: %q", ErrNotNumeric, x, y)
}

func ErrGameIsOver(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameOver, gameUuid)
}

func ErrGameNotExistsUuid(gameUuid string) error {
	return fmt.Errorf("%w, uuid: %s", ErrGameNotExists, gameUuid)
}

func ErrSessionNotFoundId(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}

func ErrRules(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRules, reason)
}

// IsShotError reports whether err is one the move loop recovers from by
// asking for another target.
func IsShotError(err error) bool {
	return errors.Is(err, ErrOutOfBounds) || errors.Is(err, ErrAlreadyTargeted)
}
