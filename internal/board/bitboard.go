package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, one bit per square.
// Bit index = row*Cols + col, with row 0 at the top of the board (rank 5)
// and column 0 on file a. Bits at or above NumSquares are never meaningful.
type Bitboard uint32

// Empty is the bitboard with no squares set.
const Empty Bitboard = 0

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount32(uint32(b))
}

// LSB returns the lowest set square, or NoSquare if the board is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros32(uint32(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Complement returns every board square not in b. Bits outside the board
// stay clear, unlike a plain bitwise NOT.
func (b Bitboard) Complement() Bitboard {
	return ^b & FullMask
}

// Mirror flips the board vertically: row r moves to row Rows-1-r while
// each square keeps its column. Mirror(Mirror(b)) == b for any b on the board.
func (b Bitboard) Mirror() Bitboard {
	var out Bitboard
	for r := 0; r < Rows; r++ {
		row := b & RowMask[r]
		dst := Rows - 1 - r
		if dst >= r {
			out |= row << ((dst - r) * Cols)
		} else {
			out |= row >> ((r - dst) * Cols)
		}
	}
	return out
}

// Shift operations for move generation. Each one refuses to step off the
// board edge it is heading toward, so no shift wraps into a neighbouring row.

// North shifts one row toward row 0.
func (b Bitboard) North() Bitboard {
	return b >> Cols
}

// South shifts one row toward the last row.
func (b Bitboard) South() Bitboard {
	return (b << Cols) & FullMask
}

// East shifts one column toward the right edge.
func (b Bitboard) East() Bitboard {
	return (b &^ RightEdge) << 1
}

// West shifts one column toward the left edge.
func (b Bitboard) West() Bitboard {
	return (b &^ LeftEdge) >> 1
}

// NorthEast shifts one square diagonally up and right.
func (b Bitboard) NorthEast() Bitboard {
	return (b &^ RightEdge) >> (Cols - 1)
}

// NorthWest shifts one square diagonally up and left.
func (b Bitboard) NorthWest() Bitboard {
	return (b &^ LeftEdge) >> (Cols + 1)
}

// SouthEast shifts one square diagonally down and right.
func (b Bitboard) SouthEast() Bitboard {
	return ((b &^ RightEdge) << (Cols + 1)) & FullMask
}

// SouthWest shifts one square diagonally down and left.
func (b Bitboard) SouthWest() Bitboard {
	return ((b &^ LeftEdge) << (Cols - 1)) & FullMask
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard, top row first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		sb.WriteByte(byte('0' + Rows - r))
		sb.WriteByte(' ')
		for c := 0; c < Cols; c++ {
			if b.IsSet(NewSquare(c, r)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for c := 0; c < Cols; c++ {
		sb.WriteByte(byte('a' + c))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}
