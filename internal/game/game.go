// Package game runs a real-time 5x5 game: a pushed piece leaves its origin
// at once and lands on its destination a fixed number of ticks later.
package game

import (
	"fmt"
	"iter"
	"log"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/config"
)

// Game owns the position, the side to move, the clock and the queue of
// moves in flight. It is not safe for concurrent use; see Locked.
type Game struct {
	cfg   *config.Config
	pos   *board.Position
	turn  board.Color
	tick  int
	seq   uint64
	queue moveQueue

	over   bool
	winner board.Color
}

// Commit reports a piece landing on its destination.
type Commit struct {
	Move     board.Move  `json:"move"`
	Side     board.Color `json:"side"`
	Piece    board.Piece `json:"piece"`    // piece that was pushed
	Placed   board.Piece `json:"placed"`   // piece standing on the destination afterwards
	Captured board.Piece `json:"captured"` // NoPiece if the destination was empty
	Promoted bool        `json:"promoted"`
	Tick     int         `json:"tick"`
	Seq      uint64      `json:"seq"`
}

// PlacedPiece is one entry of PieceMap.
type PlacedPiece struct {
	Square   board.Square // for a piece in flight, its destination
	Piece    board.Piece
	InFlight bool
	From     board.Square // origin of a piece in flight
	Due      int          // landing tick of a piece in flight
}

// New creates a game from a configuration.
func New(cfg *config.Config) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pos, err := board.ParseBoard(cfg.StartBoard)
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:    cfg,
		pos:    pos,
		turn:   cfg.Turn(),
		winner: board.NoColor,
	}, nil
}

// NewDefault creates a game from the starting position with default settings.
func NewDefault() *Game {
	g, err := New(config.Default())
	if err != nil {
		panic(err)
	}
	return g
}

// Config returns the game's configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// SetTurn selects the side whose moves generation and Push apply to.
func (g *Game) SetTurn(c board.Color) {
	g.turn = c
}

// Turn returns the side to move.
func (g *Game) Turn() board.Color {
	return g.turn
}

// Tick returns the current clock value.
func (g *Game) Tick() int {
	return g.tick
}

// Board returns the settled board, top row first. Pieces in flight are not
// shown.
func (g *Game) Board() []string {
	return g.pos.Rows()
}

// String returns the labelled board.
func (g *Game) String() string {
	return g.pos.String()
}

// Position returns a copy of the settled position.
func (g *Game) Position() *board.Position {
	return g.pos.Copy()
}

// PieceAt returns the settled piece on sq.
func (g *Game) PieceAt(sq board.Square) board.Piece {
	return g.pos.PieceAt(sq)
}

// GenerateAllMoves yields every move of the side to move.
func (g *Game) GenerateAllMoves() iter.Seq[board.Move] {
	return g.pos.GenerateMoves(g.turn)
}

// GenerateMoves yields every move of the given side.
func (g *Game) GenerateMoves(c board.Color) iter.Seq[board.Move] {
	return g.pos.GenerateMoves(c)
}

// IsLegalMove reports whether m is among the side to move's moves. A null
// move is always legal.
func (g *Game) IsLegalMove(m board.Move) bool {
	return g.isLegalFor(g.turn, m)
}

func (g *Game) isLegalFor(c board.Color, m board.Move) bool {
	if m.IsNull() {
		return true
	}
	for candidate := range g.pos.GenerateMoves(c) {
		if candidate == m {
			return true
		}
	}
	return false
}

// Push lifts the moving piece immediately and schedules it to land after
// its delay. A null move succeeds and schedules nothing. A rejected move
// leaves the game untouched and returns a *MoveError.
func (g *Game) Push(m board.Move) error {
	if m.IsNull() {
		return nil
	}
	if err := g.check(g.turn, m); err != nil {
		if g.cfg.Verbose {
			log.Printf("game: tick %d: rejected %v", g.tick, err)
		}
		return err
	}

	piece := g.pos.Lift(m.From())
	g.seq++
	pm := &PendingMove{
		Move:   m,
		Piece:  piece,
		Side:   g.turn,
		Pushed: g.tick,
		Due:    g.tick + g.cfg.Delay(piece.Type()),
		Seq:    g.seq,
	}
	g.queue.enqueue(pm)

	if g.cfg.Verbose {
		log.Printf("game: tick %d: %s %s %s lifted, lands at tick %d", g.tick, g.turn, piece, m, pm.Due)
	}
	return nil
}

// PushString parses coordinate notation and pushes the move.
func (g *Game) PushString(s string) error {
	m, err := board.ParseMove(s)
	if err != nil {
		return &MoveError{Move: board.NoMove, Side: g.turn, Err: fmt.Errorf("%w: %v", ErrInvalidMove, err)}
	}
	return g.Push(m)
}

// check explains why m cannot be pushed by c, or returns nil.
func (g *Game) check(c board.Color, m board.Move) error {
	fail := func(err error) error {
		return &MoveError{Move: m, Side: c, Err: err}
	}

	if g.over {
		return fail(ErrGameOver)
	}
	if !g.isLegalFor(c, m) {
		piece := g.pos.PieceAt(m.From())
		switch {
		case piece == board.NoPiece:
			return fail(ErrNoPiece)
		case piece.Color() != c:
			return fail(ErrWrongSide)
		default:
			return fail(ErrIllegalTarget)
		}
	}
	if g.cfg.RejectSelfCheck && g.leavesKingInCheck(c, m) {
		return fail(ErrSelfCheck)
	}
	return nil
}

// AdvanceTick moves the clock forward by one and lands every piece due at
// the new tick, in push order. It returns nil when nothing landed.
func (g *Game) AdvanceTick() []Commit {
	g.tick++

	var commits []Commit
	for {
		pm, ok := g.queue.popDue(g.tick)
		if !ok {
			break
		}
		commits = append(commits, g.land(pm))
	}
	return commits
}

// land places a piece in flight. Whatever stands on the destination is
// replaced, so of two pieces aimed at one square the later arrival stays.
func (g *Game) land(pm *PendingMove) Commit {
	pl := g.pos.Place(pm.Move.To(), pm.Piece)

	c := Commit{
		Move:     pm.Move,
		Side:     pm.Side,
		Piece:    pm.Piece,
		Placed:   pl.Piece,
		Captured: pl.Captured,
		Promoted: pl.Promoted,
		Tick:     g.tick,
		Seq:      pm.Seq,
	}

	if pl.Captured != board.NoPiece && pl.Captured.Type() == board.King && !g.over {
		g.over = true
		g.winner = pl.Captured.Color().Other()
	}

	if g.cfg.Verbose {
		log.Printf("game: tick %d: %s landed %s", g.tick, pm.Piece, pm.Move)
		if pl.Captured != board.NoPiece && pl.Captured.Color() == pm.Side {
			log.Printf("game: tick %d: %s displaced own %s on %s", g.tick, pm.Piece, pl.Captured, pm.Move.To())
		}
	}
	return c
}

// Pending returns the moves in flight in landing order.
func (g *Game) Pending() []PendingMove {
	return g.queue.sorted()
}

// PieceMap lists every settled piece followed by every piece in flight.
func (g *Game) PieceMap() []PlacedPiece {
	var out []PlacedPiece
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		if piece := g.pos.PieceAt(sq); piece != board.NoPiece {
			out = append(out, PlacedPiece{Square: sq, Piece: piece, From: sq})
		}
	}
	for _, pm := range g.queue.sorted() {
		out = append(out, PlacedPiece{
			Square:   pm.Move.To(),
			Piece:    pm.Piece,
			InFlight: true,
			From:     pm.Move.From(),
			Due:      pm.Due,
		})
	}
	return out
}

// IsInCheck reports whether c's king is attacked by the opponent's
// current moves. A king in flight cannot be attacked. The turn is not
// changed. Panics if c has no king at all.
func (g *Game) IsInCheck(c board.Color) bool {
	if _, ok := g.pos.KingSquare(c); !ok && g.kingInFlight(c) {
		return false
	}
	return g.pos.InCheck(c)
}

// LeavesKingInCheck reports whether pushing m for the side to move would
// leave that side's king attacked, judged as if the move landed at once.
func (g *Game) LeavesKingInCheck(m board.Move) bool {
	return g.leavesKingInCheck(g.turn, m)
}

func (g *Game) leavesKingInCheck(c board.Color, m board.Move) bool {
	if m.IsNull() {
		return g.IsInCheck(c)
	}
	if _, ok := g.pos.KingSquare(c); !ok && g.kingInFlight(c) {
		return false
	}
	return g.pos.LeavesKingInCheck(c, m)
}

func (g *Game) kingInFlight(c board.Color) bool {
	king := board.NewPiece(board.King, c)
	for _, pm := range g.queue {
		if pm.Piece == king {
			return true
		}
	}
	return false
}

// Outcome reports whether a king has been captured and, if so, who won.
func (g *Game) Outcome() (winner board.Color, over bool) {
	return g.winner, g.over
}
