package board

import "fmt"

// Move encodes an origin/destination pair in 16 bits:
// bits 0-4:  from square (0-24)
// bits 5-9:  to square (0-24)
// A move whose origin equals its destination is a null move (a pass).
type Move uint16

// NoMove represents the absence of a move. It is not a null move.
const NoMove Move = 0xFFFF

// NewMove creates a move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<5
}

// NullMove returns the pass encoded on the given square.
func NullMove(sq Square) Move {
	return NewMove(sq, sq)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x1F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 5) & 0x1F)
}

// IsNull returns true if the move does not change the board.
func (m Move) IsNull() bool {
	return m != NoMove && m.From() == m.To()
}

// Mirror returns the move with both squares flipped vertically.
func (m Move) Mirror() Move {
	return NewMove(m.From().Mirror(), m.To().Mirror())
}

// String returns the 4-character coordinate notation (e.g., "b2b4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From().String() + m.To().String()
}

// ParseMove parses 4-character coordinate notation.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}

	return NewMove(from, to), nil
}

// MustParseMove is like ParseMove but panics on malformed input.
// Intended for tests and constant tables.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MarshalText encodes the move in coordinate notation.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes coordinate notation; "0000" decodes to NoMove.
func (m *Move) UnmarshalText(text []byte) error {
	if string(text) == "0000" {
		*m = NoMove
		return nil
	}
	mv, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}
