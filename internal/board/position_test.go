package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustBoard(t *testing.T, rows ...string) *Position {
	t.Helper()
	pos, err := ParseBoard(rows)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return pos
}

func TestParseBoard(t *testing.T) {
	pos := NewPosition()
	if diff := cmp.Diff(StartRows, pos.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	if err := pos.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	occ := pos.Occupancy()
	if occ.Side(White).PopCount() != 10 || occ.Side(Black).PopCount() != 10 {
		t.Errorf("start position should have ten pieces per side")
	}
	if got := pos.PieceAt(mustSquare(t, "e1")); got != WhiteKing {
		t.Errorf("e1 = %v, want K", got)
	}
	if got := pos.PieceAt(mustSquare(t, "e5")); got != BlackKing {
		t.Errorf("e5 = %v, want k", got)
	}

	bad := [][]string{
		{"rnbqk", "ppppp", ".....", "PPPPP"},
		{"rnbqk", "ppppp", "....", "PPPPP", "RNBQK"},
		{"rnbqk", "ppppp", "..x..", "PPPPP", "RNBQK"},
	}
	for _, rows := range bad {
		if _, err := ParseBoard(rows); !errors.Is(err, ErrInvalidBoard) {
			t.Errorf("ParseBoard(%q) error = %v, want ErrInvalidBoard", rows, err)
		}
	}
}

func TestStartPositionMoves(t *testing.T) {
	pos := NewPosition()

	for _, c := range []Color{White, Black} {
		var got []string
		for m := range pos.GenerateMoves(c) {
			got = append(got, m.String())
		}
		if len(got) != 7 {
			t.Errorf("%v has %d moves from the start, want 7: %v", c, len(got), got)
		}
	}
}

func TestGenerateMovesRestartable(t *testing.T) {
	pos := NewPosition()
	seq := pos.GenerateMoves(White)

	var first, second []Move
	for m := range seq {
		first = append(first, m)
	}
	for m := range seq {
		second = append(second, m)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}

	// Stopping early must not break the sequence.
	for range seq {
		break
	}
}

func TestLiftAndPlace(t *testing.T) {
	pos := mustBoard(t,
		".....",
		".....",
		"..p..",
		".P...",
		".....",
	)

	piece := pos.Lift(mustSquare(t, "b2"))
	if piece != WhitePawn {
		t.Fatalf("Lift(b2) = %v, want P", piece)
	}
	if !pos.IsEmpty(mustSquare(t, "b2")) || pos.Occupancy().All().IsSet(mustSquare(t, "b2")) {
		t.Error("b2 should be empty in both views after lift")
	}

	pl := pos.Place(mustSquare(t, "c3"), piece)
	if pl.Captured != BlackPawn {
		t.Errorf("Captured = %v, want p", pl.Captured)
	}
	if pos.Occupancy().Side(Black) != Empty {
		t.Error("captured piece still occupies a black square")
	}
	if err := pos.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLiftEmptySquarePanics(t *testing.T) {
	pos := EmptyPosition()
	defer func() {
		if recover() == nil {
			t.Error("lifting an empty square should panic")
		}
	}()
	pos.Lift(mustSquare(t, "c3"))
}

func TestOccupancyLiftPanicsOnWrongSide(t *testing.T) {
	var occ Occupancy
	occ.Place(mustSquare(t, "a1"), White)
	defer func() {
		if recover() == nil {
			t.Error("lifting a square the side does not own should panic")
		}
	}()
	occ.Lift(mustSquare(t, "a1"), Black)
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		piece Piece
		want  Piece
	}{
		{"white pawn reaches rank 5", "a4", "a5", WhitePawn, WhiteQueen},
		{"black pawn reaches rank 1", "c2", "c1", BlackPawn, BlackQueen},
		{"white pawn short of rank 5", "a3", "a4", WhitePawn, WhitePawn},
		{"black pawn on white's terminal row stays a pawn", "b4", "b5", BlackPawn, BlackPawn},
		{"rook never promotes", "d4", "d5", WhiteRook, WhiteRook},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := EmptyPosition()
			pos.put(mustSquare(t, tc.from), tc.piece)

			piece := pos.Lift(mustSquare(t, tc.from))
			pl := pos.Place(mustSquare(t, tc.to), piece)

			if pl.Piece != tc.want {
				t.Errorf("placed %v, want %v", pl.Piece, tc.want)
			}
			if pl.Promoted != (tc.want != tc.piece) {
				t.Errorf("Promoted = %v", pl.Promoted)
			}
			if got := pos.PieceAt(mustSquare(t, tc.to)); got != tc.want {
				t.Errorf("board shows %v on %s, want %v", got, tc.to, tc.want)
			}
		})
	}
}

func TestMakeUnmakeRestores(t *testing.T) {
	pos := mustBoard(t,
		"....k",
		".p...",
		"..N..",
		"P....",
		"K....",
	)
	before := pos.Rows()
	hash := pos.Hash()

	for _, c := range []Color{White, Black} {
		for m := range pos.GenerateMoves(c) {
			u := pos.MakeMove(m)
			if err := pos.Validate(); err != nil {
				t.Fatalf("after %s: %v", m, err)
			}
			pos.UnmakeMove(u)
			if pos.Hash() != hash {
				t.Fatalf("unmake of %s did not restore the position:\n%s", m, pos)
			}
		}
	}
	if diff := cmp.Diff(before, pos.Rows()); diff != "" {
		t.Errorf("rows changed (-want +got):\n%s", diff)
	}
}

func TestMakeUnmakePromotion(t *testing.T) {
	pos := mustBoard(t,
		".r..k",
		"P....",
		".....",
		".....",
		"K....",
	)
	m := MustParseMove("a4b5")
	u := pos.MakeMove(m)
	if got := pos.PieceAt(mustSquare(t, "b5")); got != WhiteQueen {
		t.Fatalf("b5 = %v, want Q", got)
	}
	pos.UnmakeMove(u)
	if got := pos.PieceAt(mustSquare(t, "a4")); got != WhitePawn {
		t.Errorf("a4 = %v, want P", got)
	}
	if got := pos.PieceAt(mustSquare(t, "b5")); got != BlackRook {
		t.Errorf("b5 = %v, want r", got)
	}
}

func TestInCheck(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		color Color
		want  bool
	}{
		{
			name:  "queen on the open e-file",
			rows:  []string{"....k", ".....", ".....", ".....", "K...Q"},
			color: Black,
			want:  true,
		},
		{
			name:  "queen blocked by a pawn",
			rows:  []string{"....k", "....p", ".....", ".....", "K...Q"},
			color: Black,
			want:  false,
		},
		{
			name:  "black pawn attacks the white king",
			rows:  []string{"....k", ".....", ".p...", "..K..", "....."},
			color: White,
			want:  true,
		},
		{
			name:  "pawn straight ahead gives no check",
			rows:  []string{"....k", ".....", "..p..", "..K..", "....."},
			color: White,
			want:  false,
		},
		{
			name:  "knight check",
			rows:  []string{"....k", ".....", "...N.", ".....", "K...."},
			color: Black,
			want:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustBoard(t, tc.rows...)
			before := pos.Rows()
			if got := pos.InCheck(tc.color); got != tc.want {
				t.Errorf("InCheck(%v) = %v, want %v", tc.color, got, tc.want)
			}
			if diff := cmp.Diff(before, pos.Rows()); diff != "" {
				t.Errorf("check query mutated the board (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInCheckWithoutKingPanics(t *testing.T) {
	pos := mustBoard(t, ".....", ".....", ".....", ".....", "K....")
	defer func() {
		if recover() == nil {
			t.Error("check query without a king should panic")
		}
	}()
	pos.InCheck(Black)
}

func TestLeavesKingInCheck(t *testing.T) {
	pos := mustBoard(t,
		"....k",
		".....",
		".....",
		"....R",
		"....K",
	)
	hash := pos.Hash()

	// Nothing black attacks along the e-file, so the rook is free to leave.
	if pos.LeavesKingInCheck(White, MustParseMove("e2a2")) {
		t.Error("e2a2 should be safe")
	}

	pinned := mustBoard(t,
		"....r",
		".....",
		".....",
		"....R",
		"....K",
	)
	// No black king needed for a white query.
	if !pinned.LeavesKingInCheck(White, MustParseMove("e2a2")) {
		t.Error("moving the pinned rook off the e-file should expose the king")
	}
	if pinned.LeavesKingInCheck(White, MustParseMove("e2e5")) {
		t.Error("capturing the attacker should be safe")
	}
	if pos.Hash() != hash {
		t.Error("speculative query changed the position")
	}
}
