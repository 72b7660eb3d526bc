package board

import (
	"fmt"
	"iter"
	"log"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DebugMoveValidation re-checks the two board views after every mutation.
// Expensive; meant for tests and debugging sessions.
var DebugMoveValidation = false

// StartRows is the standard 5x5 starting position, top row first.
var StartRows = []string{
	"rnbqk",
	"ppppp",
	".....",
	"PPPPP",
	"RNBQK",
}

// Position holds the piece grid (which piece stands where) and the
// occupancy bitboards (who occupies what). Both views change only through
// Lift, Place and the apply/undo pair, which always update them together.
type Position struct {
	grid [NumSquares]Piece
	occ  Occupancy
}

// Placement describes the effect of placing a piece.
type Placement struct {
	Square   Square
	Piece    Piece // piece standing on Square afterwards
	Captured Piece // piece that stood there before, NoPiece if empty
	Promoted bool
}

// Undo stores what MakeMove changed so UnmakeMove can restore it.
type Undo struct {
	Move     Move
	Moved    Piece
	Captured Piece
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseBoard(StartRows)
	if err != nil {
		panic(err)
	}
	return pos
}

// EmptyPosition returns a board with no pieces.
func EmptyPosition() *Position {
	p := &Position{}
	for i := range p.grid {
		p.grid[i] = NoPiece
	}
	return p
}

// ParseBoard builds a position from row strings, top row first. Uppercase
// characters are White, lowercase Black and '.' an empty square.
func ParseBoard(rows []string) (*Position, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: need %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}

	p := EmptyPosition()
	for r, line := range rows {
		if len(line) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d squares, want %d", ErrInvalidBoard, r, len(line), Cols)
		}
		for c := 0; c < Cols; c++ {
			ch := line[c]
			if ch == '.' {
				continue
			}
			piece := PieceFromChar(ch)
			if piece == NoPiece {
				return nil, fmt.Errorf("%w: invalid piece character %q", ErrInvalidBoard, ch)
			}
			p.put(NewSquare(c, r), piece)
		}
	}

	return p, nil
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.grid[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == NoPiece
}

// Occupancy returns a copy of the occupancy bitboards.
func (p *Position) Occupancy() Occupancy {
	return p.occ
}

// KingSquare locates the king of the given color.
func (p *Position) KingSquare(c Color) (Square, bool) {
	king := NewPiece(King, c)
	for sq := Square(0); sq < NoSquare; sq++ {
		if p.grid[sq] == king {
			return sq, true
		}
	}
	return NoSquare, false
}

// Rows returns the textual board, top row first.
func (p *Position) Rows() []string {
	rows := make([]string, Rows)
	var line [Cols]byte
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			line[c] = p.grid[NewSquare(c, r)].Char()
		}
		rows[r] = string(line[:])
	}
	return rows
}

// String returns the textual board with rank and file labels.
func (p *Position) String() string {
	var sb strings.Builder
	for r, line := range p.Rows() {
		fmt.Fprintf(&sb, "%d  %s\n", Rows-r, line)
	}
	sb.WriteString("\n   ")
	for c := 0; c < Cols; c++ {
		sb.WriteByte(byte('a' + c))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Hash returns a key identifying the piece placement.
func (p *Position) Hash() uint64 {
	var buf [NumSquares]byte
	for i, piece := range p.grid {
		buf[i] = piece.Char()
	}
	return xxhash.Sum64(buf[:])
}

// Lift removes the piece on sq from both views and returns it.
// Lifting an empty square panics.
func (p *Position) Lift(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		panic(fmt.Sprintf("board: lift of empty square %s", sq))
	}

	p.occ.Lift(sq, piece.Color())
	p.grid[sq] = NoPiece

	p.debugValidate("lift")
	return piece
}

// Place puts piece on sq in both views, replacing whatever stood there.
// A pawn landing on its terminal row is promoted in the same step.
func (p *Position) Place(sq Square, piece Piece) Placement {
	if piece == NoPiece || !sq.IsValid() {
		panic(fmt.Sprintf("board: invalid placement of %q on %s", piece.Char(), sq))
	}

	c := piece.Color()
	pl := Placement{Square: sq, Captured: p.grid[sq]}

	p.occ.Place(sq, c)
	if piece.Type() == Pawn && relativeRow(sq, c) == PromotionRow {
		piece = NewPiece(PromotionType, c)
		pl.Promoted = true
	}
	p.grid[sq] = piece
	pl.Piece = piece

	p.debugValidate("place")
	return pl
}

// MakeMove applies m instantly (lift and place in one step) and returns the
// information needed to take it back. Null moves change nothing.
func (p *Position) MakeMove(m Move) Undo {
	u := Undo{Move: m, Moved: NoPiece, Captured: NoPiece}
	if m.IsNull() {
		return u
	}

	u.Moved = p.Lift(m.From())
	u.Captured = p.Place(m.To(), u.Moved).Captured
	return u
}

// UnmakeMove restores the position to its state before MakeMove.
func (p *Position) UnmakeMove(u Undo) {
	if u.Moved == NoPiece {
		return
	}

	p.put(u.Move.To(), u.Captured)
	p.put(u.Move.From(), u.Moved)

	p.debugValidate("unmake")
}

// put overwrites a square in both views without promotion.
func (p *Position) put(sq Square, piece Piece) {
	p.occ.sides[White] = p.occ.sides[White].Clear(sq)
	p.occ.sides[Black] = p.occ.sides[Black].Clear(sq)
	p.grid[sq] = piece
	if piece != NoPiece {
		p.occ.sides[piece.Color()] = p.occ.sides[piece.Color()].Set(sq)
	}
}

// GenerateMoves yields every move of the given color's pieces, scanning the
// board top row first. Each call starts a fresh scan.
func (p *Position) GenerateMoves(c Color) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for from := Square(0); from < NoSquare; from++ {
			piece := p.grid[from]
			if piece == NoPiece || piece.Color() != c {
				continue
			}
			targets := p.occ.Moves(from, piece.Type(), c)
			for targets != 0 {
				if !yield(NewMove(from, targets.PopLSB())) {
					return
				}
			}
		}
	}
}

// MovesFrom returns the destinations of the piece on sq, or Empty if the
// square is empty.
func (p *Position) MovesFrom(sq Square) Bitboard {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return Empty
	}
	return p.occ.Moves(sq, piece.Type(), piece.Color())
}

// IsAttacked reports whether any move of color by lands on sq.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	for m := range p.GenerateMoves(by) {
		if m.To() == sq {
			return true
		}
	}
	return false
}

// InCheck reports whether the king of color c is attacked. A board without
// that king is a broken invariant and panics.
func (p *Position) InCheck(c Color) bool {
	ksq, ok := p.KingSquare(c)
	if !ok {
		panic(fmt.Sprintf("board: no %s king on the board", c))
	}
	return p.IsAttacked(ksq, c.Other())
}

// LeavesKingInCheck applies m, tests whether c's king is attacked and
// takes the move back.
func (p *Position) LeavesKingInCheck(c Color, m Move) bool {
	u := p.MakeMove(m)
	defer p.UnmakeMove(u)
	return p.InCheck(c)
}

// Validate checks that the grid and the bitboards agree square by square
// and that no square is owned by both sides.
func (p *Position) Validate() error {
	if both := p.occ.sides[White] & p.occ.sides[Black]; both != 0 {
		return fmt.Errorf("%w: squares %v owned by both sides", ErrInvalidBoard, both.Squares())
	}
	if stray := p.occ.All() &^ FullMask; stray != 0 {
		return fmt.Errorf("%w: occupancy bits outside the board: %#x", ErrInvalidBoard, uint32(stray))
	}
	for sq := Square(0); sq < NoSquare; sq++ {
		piece := p.grid[sq]
		owner := p.occ.ColorAt(sq)
		if piece.Color() != owner {
			return fmt.Errorf("%w: %s holds %q but occupancy says %s", ErrInvalidBoard, sq, piece.Char(), owner)
		}
	}
	return nil
}

func (p *Position) debugValidate(op string) {
	if !DebugMoveValidation {
		return
	}
	if err := p.Validate(); err != nil {
		log.Panicf("board: after %s: %v", op, err)
	}
}

// relativeRow returns the row of sq as seen by color c, whose pieces
// advance toward row 0 of that frame.
func relativeRow(sq Square, c Color) int {
	if c == White {
		return sq.Row()
	}
	return Rows - 1 - sq.Row()
}
