package board

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// targets lists the destinations of the piece on from, sorted.
func targets(t *testing.T, rows []string, from string) []string {
	t.Helper()
	pos, err := ParseBoard(rows)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	var out []string
	pos.MovesFrom(mustSquare(t, from)).ForEach(func(sq Square) {
		out = append(out, sq.String())
	})
	sort.Strings(out)
	return out
}

func sorted(s string) []string {
	out := strings.Fields(s)
	sort.Strings(out)
	return out
}

func TestPieceMoves(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		from string
		want string
	}{
		{
			name: "rook alone on a1 sweeps file and rank",
			rows: []string{".....", ".....", ".....", ".....", "R...."},
			from: "a1",
			want: "a2 a3 a4 a5 b1 c1 d1 e1",
		},
		{
			name: "rook rays stop at first piece",
			rows: []string{".....", ".....", "P....", ".....", "Rn..."},
			from: "a1",
			want: "a2 b1",
		},
		{
			name: "rook on right edge does not wrap into next row",
			rows: []string{".....", ".....", "....R", ".....", "....."},
			from: "e3",
			want: "a3 b3 c3 d3 e1 e2 e4 e5",
		},
		{
			name: "bishop in the centre",
			rows: []string{".....", ".....", "..B..", ".....", "....."},
			from: "c3",
			want: "a1 a5 b2 b4 d2 d4 e1 e5",
		},
		{
			name: "bishop captures enemy and stops at own piece",
			rows: []string{".....", ".p...", "..B..", "...P.", "....."},
			from: "c3",
			want: "b2 a1 b4 d4 e5",
		},
		{
			name: "bishop on left edge",
			rows: []string{".....", ".....", "B....", ".....", "....."},
			from: "a3",
			want: "b2 c1 b4 c5",
		},
		{
			name: "queen in the centre of an empty board",
			rows: []string{".....", ".....", "..Q..", ".....", "....."},
			from: "c3",
			want: "a1 a5 b2 b4 d2 d4 e1 e5 a3 b3 d3 e3 c1 c2 c4 c5",
		},
		{
			name: "knight in the corner",
			rows: []string{".....", ".....", ".....", ".....", "N...."},
			from: "a1",
			want: "b3 c2",
		},
		{
			name: "knight on the right edge does not wrap",
			rows: []string{".....", ".....", "....N", ".....", "....."},
			from: "e3",
			want: "d5 d1 c4 c2",
		},
		{
			name: "knight jumps over pieces and skips own targets",
			rows: []string{".....", ".....", "PpP..", "PPP..", "N...."},
			from: "a1",
			want: "b3",
		},
		{
			name: "knight captures enemy",
			rows: []string{".....", ".....", ".p...", ".....", "N...."},
			from: "a1",
			want: "b3 c2",
		},
		{
			name: "king on left edge does not wrap",
			rows: []string{".....", ".....", "K....", ".....", "....."},
			from: "a3",
			want: "a4 b4 b3 b2 a2",
		},
		{
			name: "king in the corner with a capture",
			rows: []string{".....", ".....", ".....", "pP...", "K...."},
			from: "a1",
			want: "a2 b1",
		},
		{
			name: "white pawn double step from home row",
			rows: []string{".....", ".....", ".....", ".P...", "....."},
			from: "b2",
			want: "b3 b4",
		},
		{
			name: "white pawn double step blocked at destination",
			rows: []string{".....", ".p...", ".....", ".P...", "....."},
			from: "b2",
			want: "b3",
		},
		{
			name: "white pawn blocked straight ahead",
			rows: []string{".....", ".....", ".p...", ".P...", "....."},
			from: "b2",
			want: "",
		},
		{
			name: "white pawn captures diagonally only onto enemies",
			rows: []string{".....", ".....", "p.P..", ".P...", "....."},
			from: "b2",
			want: "a3 b3 b4",
		},
		{
			name: "white pawn on left edge does not wrap",
			rows: []string{".....", "....p", ".....", "P....", "....."},
			from: "a2",
			want: "a3 a4",
		},
		{
			name: "white pawn off the home row single steps",
			rows: []string{".....", ".....", ".P...", ".....", "....."},
			from: "b3",
			want: "b4",
		},
		{
			name: "black pawn double step toward rank 1",
			rows: []string{".....", "...p.", ".....", ".....", "....."},
			from: "d4",
			want: "d3 d2",
		},
		{
			name: "black pawn captures toward rank 1",
			rows: []string{".....", "...p.", "..P.P", ".....", "....."},
			from: "d4",
			want: "c3 d3 d2 e3",
		},
		{
			name: "black pawn on right edge does not wrap",
			rows: []string{".....", "P...p", ".....", ".....", "....."},
			from: "e4",
			want: "e3 e2",
		},
		{
			name: "black rook in its own corner",
			rows: []string{"r....", ".....", ".....", ".....", "....."},
			from: "a5",
			want: "a4 a3 a2 a1 b5 c5 d5 e5",
		},
		{
			name: "black knight mirrors correctly",
			rows: []string{".n...", "...P.", ".....", ".....", "....."},
			from: "b5",
			want: "a3 c3 d4",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := targets(t, tc.rows, tc.from)
			want := sorted(tc.want)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("moves from %s (-want +got):\n%s", tc.from, diff)
			}
		})
	}
}

func TestMovesStayOnBoard(t *testing.T) {
	for sq := Square(0); sq < NoSquare; sq++ {
		for pt := Pawn; pt <= King; pt++ {
			moves := MovesFor(sq, pt, SquareBB(sq), Empty)
			if moves&^FullMask != 0 {
				t.Errorf("%v on %s produced off-board bits %#x", pt, sq, uint32(moves))
			}
			if moves.IsSet(sq) {
				t.Errorf("%v on %s can move to its own square", pt, sq)
			}
		}
	}
}

func TestLeaperAndKingNeverWrap(t *testing.T) {
	for sq := Square(0); sq < NoSquare; sq++ {
		for _, pt := range []PieceType{Knight, King} {
			moves := MovesFor(sq, pt, SquareBB(sq), Empty)
			moves.ForEach(func(to Square) {
				dc := abs(to.Col() - sq.Col())
				dr := abs(to.Row() - sq.Row())
				ok := false
				switch pt {
				case Knight:
					ok = (dc == 1 && dr == 2) || (dc == 2 && dr == 1)
				case King:
					ok = dc <= 1 && dr <= 1
				}
				if !ok {
					t.Errorf("%v on %s reaches %s", pt, sq, to)
				}
			})
		}
	}
}

func TestSlidersStopAtFirstBlocker(t *testing.T) {
	// Own blocker on c5 and enemy blocker on a3 around a rook on c3.
	occupied := SquareBB(mustSquare(t, "c3")) | SquareBB(mustSquare(t, "c5")) | SquareBB(mustSquare(t, "a3"))
	enemies := SquareBB(mustSquare(t, "a3"))

	moves := RookMoves(mustSquare(t, "c3"), occupied, enemies)

	if moves.IsSet(mustSquare(t, "c5")) {
		t.Error("rook captured its own piece")
	}
	if !moves.IsSet(mustSquare(t, "c4")) {
		t.Error("rook should reach c4 before the own blocker")
	}
	if !moves.IsSet(mustSquare(t, "a3")) {
		t.Error("rook should capture the enemy on a3")
	}
	if !moves.IsSet(mustSquare(t, "b3")) {
		t.Error("rook should reach b3")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
