package game

import (
	"errors"
	"fmt"

	"github.com/hailam/minichess/internal/board"
)

// ErrInvalidMove is returned for any rejected push. The more specific
// errors below all wrap it.
var ErrInvalidMove = errors.New("invalid move")

var (
	ErrNoPiece         = fmt.Errorf("%w: no piece on origin square", ErrInvalidMove)
	ErrWrongSide       = fmt.Errorf("%w: piece belongs to the other side", ErrInvalidMove)
	ErrIllegalTarget   = fmt.Errorf("%w: piece cannot reach destination", ErrInvalidMove)
	ErrSelfCheck       = fmt.Errorf("%w: move leaves own king in check", ErrInvalidMove)
	ErrGameOver        = fmt.Errorf("%w: game is over", ErrInvalidMove)
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
)

// MoveError reports a rejected push together with the move and the side
// that attempted it.
type MoveError struct {
	Move board.Move
	Side board.Color
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s move %s: %v", e.Side, e.Move, e.Err)
}

// Unwrap returns the underlying error so errors.Is works through MoveError.
func (e *MoveError) Unwrap() error {
	return e.Err
}
