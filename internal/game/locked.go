package game

import (
	"slices"
	"sync"

	"github.com/hailam/minichess/internal/board"
)

// Locked serializes access to a Game so several callers (for example
// network clients) can share one authority.
type Locked struct {
	mu sync.Mutex
	g  *Game
}

// NewLocked wraps g. The caller must not use g directly afterwards.
func NewLocked(g *Game) *Locked {
	return &Locked{g: g}
}

// PushAs sets the side to move and pushes m as one step.
func (l *Locked) PushAs(c board.Color, m board.Move) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.g.SetTurn(c)
	return l.g.Push(m)
}

// AdvanceTick advances the clock and returns the moves that landed.
func (l *Locked) AdvanceTick() []Commit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.g.AdvanceTick()
}

// Moves returns the moves of side c as a slice, taken under the lock.
func (l *Locked) Moves(c board.Color) []board.Move {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Collect(l.g.GenerateMoves(c))
}

// IsInCheck reports whether c's king is attacked.
func (l *Locked) IsInCheck(c board.Color) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.g.IsInCheck(c)
}

// PieceMap returns settled and in-flight pieces.
func (l *Locked) PieceMap() []PlacedPiece {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.g.PieceMap()
}

// Snapshot captures the current state.
func (l *Locked) Snapshot() *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.g.Snapshot()
}

// Tick returns the clock value.
func (l *Locked) Tick() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.g.Tick()
}

// Do runs fn with exclusive access to the game.
func (l *Locked) Do(fn func(g *Game)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.g)
}

// Replace swaps in a new game, for example after a restore.
func (l *Locked) Replace(g *Game) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.g = g
}
