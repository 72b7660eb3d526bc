package board

// All generators in this file work in the mover's perspective: the moving
// side advances toward row 0. Callers holding a Black piece mirror the
// origin and both occupancies first (see Occupancy.Moves).

// MovesFor returns the destination squares of a piece of kind pt standing
// on sq. occupied holds every piece on the board and enemies the subset the
// mover may capture. Own pieces are never included.
func MovesFor(sq Square, pt PieceType, occupied, enemies Bitboard) Bitboard {
	var moves Bitboard
	switch pt {
	case Pawn:
		moves = PawnMoves(sq, occupied, enemies)
	case Knight:
		moves = KnightMoves(sq, occupied, enemies)
	case Bishop:
		moves = BishopMoves(sq, occupied, enemies)
	case Rook:
		moves = RookMoves(sq, occupied, enemies)
	case Queen:
		moves = QueenMoves(sq, occupied, enemies)
	case King:
		moves = KingMoves(sq, occupied, enemies)
	}
	return moves & FullMask
}

// PawnMoves generates single and home-row double pushes onto empty squares
// plus forward diagonal captures. Straight captures and empty diagonals are
// never included.
func PawnMoves(sq Square, occupied, enemies Bitboard) Bitboard {
	pos := SquareBB(sq)
	empty := occupied.Complement()

	push := pos.North() & empty
	if push != 0 && pos&RowMask[HomeRow] != 0 {
		push |= push.North() & empty
	}

	attacks := (pos.NorthWest() | pos.NorthEast()) & enemies

	return (push | attacks) & FullMask
}

// KnightMoves generates the leaper pattern: two rows and one column, or two
// columns and one row. Vertical leaps are guarded by the edge fences and
// horizontal leaps by the origin's row mask, so nothing wraps.
func KnightMoves(sq Square, occupied, enemies Bitboard) Bitboard {
	pos := SquareBB(sq)
	row := RowMask[sq.Row()]

	// * . *
	// . . .
	//   N
	// (and the same pattern below)
	vertical := pos.North().North() | pos.South().South()
	leaps := vertical.West() | vertical.East()

	// * . . . *
	// . . N . .
	// * . . . *
	horizontal := (pos>>2)&row | (pos<<2)&row
	leaps |= horizontal.North() | horizontal.South()

	return leaps & (occupied.Complement() | enemies) & FullMask
}

// KingMoves generates one step in each of the eight directions.
func KingMoves(sq Square, occupied, enemies Bitboard) Bitboard {
	pos := SquareBB(sq)

	steps := pos.North() | pos.South() | pos.East() | pos.West() |
		pos.NorthEast() | pos.NorthWest() | pos.SouthEast() | pos.SouthWest()

	return steps & (occupied.Complement() | enemies) & FullMask
}

// RookMoves generates orthogonal rays.
func RookMoves(sq Square, occupied, enemies Bitboard) Bitboard {
	return rowRays(sq, occupied, enemies) | colRays(sq, occupied, enemies)
}

// BishopMoves generates diagonal rays.
func BishopMoves(sq Square, occupied, enemies Bitboard) Bitboard {
	return diagRays(sq, occupied, enemies)
}

// QueenMoves generates orthogonal and diagonal rays.
func QueenMoves(sq Square, occupied, enemies Bitboard) Bitboard {
	return RookMoves(sq, occupied, enemies) | BishopMoves(sq, occupied, enemies)
}

// rowRays walks left and right, never leaving the origin's row.
func rowRays(sq Square, occupied, enemies Bitboard) Bitboard {
	pos := SquareBB(sq)
	bounds := RowMask[sq.Row()] &^ pos

	return slide(pos, bounds, occupied, enemies, func(b Bitboard) Bitboard { return b >> 1 }) |
		slide(pos, bounds, occupied, enemies, func(b Bitboard) Bitboard { return b << 1 })
}

// colRays walks up and down, bounded by the whole board.
func colRays(sq Square, occupied, enemies Bitboard) Bitboard {
	pos := SquareBB(sq)

	return slide(pos, FullMask, occupied, enemies, Bitboard.North) |
		slide(pos, FullMask, occupied, enemies, Bitboard.South)
}

// diagRays walks the four diagonals. The diagonal shifts are fenced per
// step, so a ray ends at the first edge it touches.
func diagRays(sq Square, occupied, enemies Bitboard) Bitboard {
	pos := SquareBB(sq)

	return slide(pos, FullMask, occupied, enemies, Bitboard.NorthWest) |
		slide(pos, FullMask, occupied, enemies, Bitboard.NorthEast) |
		slide(pos, FullMask, occupied, enemies, Bitboard.SouthWest) |
		slide(pos, FullMask, occupied, enemies, Bitboard.SouthEast)
}

// slide extends a ray from pos one step at a time while it stays inside
// bounds. Empty squares are added; the first occupied square ends the ray
// and is added only when it holds an enemy.
func slide(pos, bounds, occupied, enemies Bitboard, step func(Bitboard) Bitboard) Bitboard {
	var moves Bitboard
	for cur := step(pos) & bounds; cur != 0; cur = step(cur) & bounds {
		if cur&occupied != 0 {
			return moves | cur&enemies
		}
		moves |= cur
	}
	return moves
}
