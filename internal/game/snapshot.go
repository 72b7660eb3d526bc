package game

import (
	"fmt"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/config"
)

// Snapshot is a serializable copy of a game in progress.
type Snapshot struct {
	Rows     []string      `json:"rows"`
	Turn     board.Color   `json:"turn"`
	Tick     int           `json:"tick"`
	Seq      uint64        `json:"seq"`
	Pending  []PendingMove `json:"pending"`
	Over     bool          `json:"over"`
	Winner   board.Color   `json:"winner"`
	Checksum uint64        `json:"checksum"` // board.Position.Hash of Rows
}

// Snapshot captures the current state.
func (g *Game) Snapshot() *Snapshot {
	return &Snapshot{
		Rows:     g.pos.Rows(),
		Turn:     g.turn,
		Tick:     g.tick,
		Seq:      g.seq,
		Pending:  g.queue.sorted(),
		Over:     g.over,
		Winner:   g.winner,
		Checksum: g.pos.Hash(),
	}
}

// Restore rebuilds a game from a snapshot. The configuration supplies the
// delays for moves pushed after the restore; moves already in flight keep
// the landing tick they were scheduled with.
func Restore(cfg *config.Config, s *Snapshot) (*Game, error) {
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}

	pos, err := board.ParseBoard(s.Rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if pos.Hash() != s.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrSnapshotCorrupt)
	}

	// An origin square may hold a settled piece again: a faster piece can
	// land there while the first is still in flight. Push order is unique.
	seqs := make(map[uint64]bool, len(s.Pending))
	for i := range s.Pending {
		pm := s.Pending[i]
		if pm.Seq == 0 || seqs[pm.Seq] {
			return nil, fmt.Errorf("%w: pending move %s reuses push order %d", ErrSnapshotCorrupt, pm.Move, pm.Seq)
		}
		seqs[pm.Seq] = true
		if pm.Piece == board.NoPiece || pm.Piece.Color() != pm.Side {
			return nil, fmt.Errorf("%w: pending move %s carries %q for %s", ErrSnapshotCorrupt, pm.Move, pm.Piece.Char(), pm.Side)
		}
		if pm.Due <= s.Tick {
			return nil, fmt.Errorf("%w: pending move %s was due at tick %d", ErrSnapshotCorrupt, pm.Move, pm.Due)
		}
		if pm.Seq > s.Seq {
			return nil, fmt.Errorf("%w: pending move %s is newer than the snapshot", ErrSnapshotCorrupt, pm.Move)
		}
		g.queue.enqueue(&pm)
	}

	g.pos = pos
	g.turn = s.Turn
	g.tick = s.Tick
	g.seq = s.Seq
	g.over = s.Over
	g.winner = s.Winner
	return g, nil
}
