// Package board implements the 5x5 board representation using bitboards.
package board

import "fmt"

// Square is a board square index (0-24), row-major from the top-left corner:
// a5=0, e5=4, a4=5 ... a1=20, e1=24.
type Square uint8

// NoSquare marks the absence of a square.
const NoSquare Square = NumSquares

// NewSquare creates a square from a column (0=a) and a row (0=top).
func NewSquare(col, row int) Square {
	return Square(row*Cols + col)
}

// Row returns the row of the square, 0 being the top row.
func (sq Square) Row() int {
	return int(sq) / Cols
}

// Col returns the column of the square, 0 being file a.
func (sq Square) Col() int {
	return int(sq) % Cols
}

// Rank returns the rank number as written in notation (1 = bottom row).
func (sq Square) Rank() int {
	return Rows - sq.Row()
}

// File returns the file letter of the square.
func (sq Square) File() byte {
	return byte('a' + sq.Col())
}

// String returns the coordinate of the square (e.g., "b4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%d", sq.File(), sq.Rank())
}

// ParseSquare parses a coordinate (e.g., "b4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := int(s[0]) - 'a'
	rank := int(s[1]) - '0'

	if col < 0 || col >= Cols || rank < 1 || rank > Rows {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(col, Rows-rank), nil
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square flipped vertically, keeping its column.
func (sq Square) Mirror() Square {
	return NewSquare(sq.Col(), Rows-1-sq.Row())
}
