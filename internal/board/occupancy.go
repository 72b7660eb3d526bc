package board

import "fmt"

// Occupancy is the bitboard core: one occupancy mask per side.
// A square is set in at most one of the two masks.
type Occupancy struct {
	sides [2]Bitboard
}

// Side returns the squares occupied by the given color.
func (o Occupancy) Side(c Color) Bitboard {
	return o.sides[c]
}

// All returns every occupied square.
func (o Occupancy) All() Bitboard {
	return o.sides[White] | o.sides[Black]
}

// IsSet reports whether the given color occupies sq.
func (o Occupancy) IsSet(sq Square, c Color) bool {
	return o.sides[c].IsSet(sq)
}

// ColorAt returns the color occupying sq, or NoColor.
func (o Occupancy) ColorAt(sq Square) Color {
	switch {
	case o.sides[White].IsSet(sq):
		return White
	case o.sides[Black].IsSet(sq):
		return Black
	}
	return NoColor
}

// Lift clears sq for the given color. Lifting a square the color does not
// occupy means the caller's view of the board has drifted, so it panics.
func (o *Occupancy) Lift(sq Square, c Color) {
	if !o.sides[c].IsSet(sq) {
		panic(fmt.Sprintf("board: lift of %s for %s but no piece is there", sq, c))
	}
	o.sides[c] = o.sides[c].Clear(sq)
}

// Place sets sq for the given color and clears it for the opponent, so
// landing on an enemy square captures it.
func (o *Occupancy) Place(sq Square, c Color) {
	o.sides[c] = o.sides[c].Set(sq)
	o.sides[c.Other()] = o.sides[c.Other()].Clear(sq)
}

// Fences returns the left and right edge masks.
func (o Occupancy) Fences() (left, right Bitboard) {
	return LeftEdge, RightEdge
}

// Moves returns the destinations of a piece of kind pt belonging to c on sq,
// in board coordinates. White pieces are generated directly; Black pieces
// are generated on the mirrored board and the result is mirrored back.
func (o Occupancy) Moves(sq Square, pt PieceType, c Color) Bitboard {
	if !o.sides[c].IsSet(sq) {
		panic(fmt.Sprintf("board: move generation from %s for %s but no piece is there", sq, c))
	}

	occupied := o.All()
	enemies := o.sides[c.Other()]
	if c == White {
		return MovesFor(sq, pt, occupied, enemies)
	}

	return MovesFor(sq.Mirror(), pt, occupied.Mirror(), enemies.Mirror()).Mirror()
}
