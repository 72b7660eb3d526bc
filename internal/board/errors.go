package board

import "errors"

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidMove   = errors.New("invalid move notation")
	ErrInvalidBoard  = errors.New("invalid board")
)
