// Package protocol implements a line-oriented text protocol for driving a
// real-time game from a terminal or another process.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/config"
	"github.com/hailam/minichess/internal/game"
	"github.com/hailam/minichess/internal/storage"
)

// DefaultGameID names the stored game when save/load get no argument.
const DefaultGameID = "default"

// Protocol reads commands and writes replies. One game is shared between
// the command loop and the clock goroutine started by "go".
type Protocol struct {
	cfg   *config.Config
	game  *game.Locked
	store *storage.Storage // nil disables save/load

	idMu sync.Mutex
	id   string // stored game that save, load and landed commits refer to

	outMu sync.Mutex
	out   io.Writer

	// Clock state
	clockMu   sync.Mutex
	clockStop chan struct{}
	clockDone chan struct{}
}

// New creates a protocol handler. store may be nil.
func New(cfg *config.Config, store *storage.Storage, out io.Writer) (*Protocol, error) {
	g, err := game.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Protocol{
		cfg:   g.Config(),
		game:  game.NewLocked(g),
		store: store,
		id:    DefaultGameID,
		out:   out,
	}, nil
}

// Game returns the shared game.
func (p *Protocol) Game() *game.Locked {
	return p.game
}

// Run processes commands until "quit" or the end of input.
func (p *Protocol) Run(in io.Reader) error {
	defer p.stopClock()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !p.Execute(line) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute handles one command line. It returns false on "quit".
func (p *Protocol) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		p.handleNew()
	case "position":
		p.handlePosition(args)
	case "turn":
		p.handleTurn(args)
	case "push":
		p.handlePush(args)
	case "tick":
		p.handleTick(args)
	case "go":
		p.handleGo(args)
	case "stop":
		p.stopClock()
	case "moves":
		p.handleMoves(args)
	case "check":
		p.handleCheck(args)
	case "pending":
		p.handlePending()
	case "d", "board":
		p.game.Do(func(g *game.Game) {
			p.printf("%s", g.String())
		})
	case "perft":
		p.handlePerft(args)
	case "save":
		p.handleSave(args)
	case "load":
		p.handleLoad(args)
	case "debug":
		on := len(args) > 0 && args[0] == "on"
		// The clock goroutine reads the switch while landing pieces, which
		// always happens under the game lock.
		p.game.Do(func(*game.Game) { board.DebugMoveValidation = on })
		p.printf("info debug %v\n", on)
	case "quit":
		return false
	default:
		p.printf("error unknown command %q\n", cmd)
	}
	return true
}

func (p *Protocol) gameID() string {
	p.idMu.Lock()
	defer p.idMu.Unlock()
	return p.id
}

func (p *Protocol) setGameID(id string) {
	p.idMu.Lock()
	defer p.idMu.Unlock()
	p.id = id
}

func (p *Protocol) printf(format string, args ...any) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

// handleNew resets the game from the configuration.
func (p *Protocol) handleNew() {
	g, err := game.New(p.cfg)
	if err != nil {
		p.printf("error %v\n", err)
		return
	}
	p.game.Replace(g)
	p.printf("ok\n")
}

// handlePosition sets up a board.
// Formats:
//   - position startpos
//   - position rows <row> <row> <row> <row> <row> [w|b]
func (p *Protocol) handlePosition(args []string) {
	if len(args) == 0 {
		p.printf("error position needs startpos or rows\n")
		return
	}

	cfg := *p.cfg
	switch args[0] {
	case "startpos":
		cfg.StartBoard = append([]string(nil), board.StartRows...)
		cfg.StartTurn = "w"
	case "rows":
		rows := args[1:]
		if len(rows) == board.Rows+1 {
			cfg.StartTurn = rows[board.Rows]
			rows = rows[:board.Rows]
		}
		cfg.StartBoard = rows
	default:
		p.printf("error unknown position format %q\n", args[0])
		return
	}

	g, err := game.New(&cfg)
	if err != nil {
		p.printf("error %v\n", err)
		return
	}
	p.game.Replace(g)
	p.printf("ok\n")
}

func (p *Protocol) handleTurn(args []string) {
	if len(args) == 0 {
		var turn board.Color
		p.game.Do(func(g *game.Game) { turn = g.Turn() })
		p.printf("turn %s\n", turn.Char())
		return
	}
	c, ok := board.ParseColor(args[0])
	if !ok {
		p.printf("error invalid color %q\n", args[0])
		return
	}
	p.game.Do(func(g *game.Game) { g.SetTurn(c) })
	p.printf("ok\n")
}

// handlePush pushes a move for the side to move, or for an explicit side:
//   - push b2b3
//   - push b b4b3
func (p *Protocol) handlePush(args []string) {
	var side string
	switch len(args) {
	case 1:
	case 2:
		side = args[0]
		args = args[1:]
	default:
		p.printf("error push needs a move\n")
		return
	}

	m, err := board.ParseMove(args[0])
	if err != nil {
		p.printf("error %v\n", err)
		return
	}

	if side == "" {
		p.game.Do(func(g *game.Game) { err = g.Push(m) })
	} else {
		c, ok := board.ParseColor(side)
		if !ok {
			p.printf("error invalid color %q\n", side)
			return
		}
		err = p.game.PushAs(c, m)
	}
	if err != nil {
		p.printf("error %v\n", err)
		return
	}
	p.printf("ok\n")
}

// handleTick advances the clock by n ticks (default 1).
func (p *Protocol) handleTick(args []string) {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			p.printf("error invalid tick count %q\n", args[0])
			return
		}
		n = v
	}
	for i := 0; i < n; i++ {
		p.advance()
	}
	p.printf("tick %d\n", p.game.Tick())
}

// advance runs one tick and reports what landed.
func (p *Protocol) advance() {
	commits := p.game.AdvanceTick()
	for _, c := range commits {
		p.reportCommit(c)
	}
	if len(commits) > 0 && p.store != nil {
		if err := p.store.AppendCommits(p.gameID(), commits); err != nil {
			p.printf("error %v\n", err)
		}
	}
}

func (p *Protocol) reportCommit(c game.Commit) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "commit %s %s tick %d", c.Move, c.Piece, c.Tick)
	if c.Captured != board.NoPiece {
		fmt.Fprintf(&sb, " captures %s", c.Captured)
	}
	if c.Promoted {
		fmt.Fprintf(&sb, " promotes %s", c.Placed)
	}
	p.printf("%s\n", sb.String())

	if c.Captured.Type() == board.King {
		var winner board.Color
		p.game.Do(func(g *game.Game) { winner, _ = g.Outcome() })
		p.printf("gameover %s\n", winner.Char())
	}
}

// handleGo starts the real-time clock: one tick every interval
// milliseconds until "stop".
func (p *Protocol) handleGo(args []string) {
	interval := 1000
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			p.printf("error invalid interval %q\n", args[0])
			return
		}
		interval = v
	}
	p.startClock(time.Duration(interval) * time.Millisecond)
}

func (p *Protocol) startClock(interval time.Duration) {
	p.stopClock()

	p.clockMu.Lock()
	defer p.clockMu.Unlock()
	stop := make(chan struct{})
	done := make(chan struct{})
	p.clockStop = stop
	p.clockDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.advance()
			}
		}
	}()
}

// stopClock stops the clock goroutine and waits for it. Safe to call when
// no clock is running.
func (p *Protocol) stopClock() {
	p.clockMu.Lock()
	defer p.clockMu.Unlock()
	if p.clockStop == nil {
		return
	}
	close(p.clockStop)
	<-p.clockDone
	p.clockStop = nil
	p.clockDone = nil
}

func (p *Protocol) handleMoves(args []string) {
	var c board.Color
	if len(args) > 0 {
		var ok bool
		if c, ok = board.ParseColor(args[0]); !ok {
			p.printf("error invalid color %q\n", args[0])
			return
		}
	} else {
		p.game.Do(func(g *game.Game) { c = g.Turn() })
	}

	moves := p.game.Moves(c)
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	p.printf("moves %s\n", strings.Join(strs, " "))
}

func (p *Protocol) handleCheck(args []string) {
	if len(args) == 0 {
		p.printf("error check needs a color\n")
		return
	}
	c, ok := board.ParseColor(args[0])
	if !ok {
		p.printf("error invalid color %q\n", args[0])
		return
	}

	var inCheck, hasKing bool
	p.game.Do(func(g *game.Game) {
		for _, pp := range g.PieceMap() {
			if pp.Piece == board.NewPiece(board.King, c) {
				hasKing = true
			}
		}
		if hasKing {
			inCheck = g.IsInCheck(c)
		}
	})
	if !hasKing {
		p.printf("error %s has no king\n", c)
		return
	}
	p.printf("check %s %v\n", c.Char(), inCheck)
}

func (p *Protocol) handlePending() {
	var pending []game.PendingMove
	p.game.Do(func(g *game.Game) { pending = g.Pending() })
	for _, pm := range pending {
		p.printf("pending %s %s due %d\n", pm.Move, pm.Piece, pm.Due)
	}
	p.printf("pending %d\n", len(pending))
}

// handlePerft runs a perft count on the settled board.
func (p *Protocol) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			p.printf("error invalid depth %q\n", args[0])
			return
		}
		depth = v
	}

	var pos *board.Position
	var turn board.Color
	p.game.Do(func(g *game.Game) {
		pos = g.Position()
		turn = g.Turn()
	})

	start := time.Now()
	nodes := pos.Perft(turn, depth)
	elapsed := time.Since(start)

	p.printf("Nodes: %d\n", nodes)
	p.printf("Time: %v\n", elapsed)
}

func (p *Protocol) handleSave(args []string) {
	if p.store == nil {
		p.printf("error storage disabled\n")
		return
	}
	if len(args) > 0 {
		p.setGameID(args[0])
	}
	id := p.gameID()
	if err := p.store.SaveSnapshot(id, p.game.Snapshot()); err != nil {
		p.printf("error %v\n", err)
		return
	}
	p.printf("saved %s\n", id)
}

func (p *Protocol) handleLoad(args []string) {
	if p.store == nil {
		p.printf("error storage disabled\n")
		return
	}
	id := p.gameID()
	if len(args) > 0 {
		id = args[0]
	}

	snap, err := p.store.LoadSnapshot(id)
	if err != nil {
		p.printf("error %v\n", err)
		return
	}
	g, err := game.Restore(p.cfg, snap)
	if err != nil {
		p.printf("error %v\n", err)
		return
	}
	p.setGameID(id)
	p.game.Replace(g)
	p.printf("loaded %s tick %d\n", id, g.Tick())
}
