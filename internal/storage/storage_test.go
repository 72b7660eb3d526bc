package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hailam/minichess/internal/board"
	"github.com/hailam/minichess/internal/config"
	"github.com/hailam/minichess/internal/game"
)

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func pushedGame(t *testing.T) *game.Game {
	t.Helper()
	cfg := config.Default()
	cfg.MoveDelay = 3
	g, err := game.New(cfg)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	if err := g.PushString("a2a3"); err != nil {
		t.Fatalf("push: %v", err)
	}
	g.AdvanceTick()
	return g
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := openMemory(t)
	g := pushedGame(t)
	want := g.Snapshot()

	if err := s.SaveSnapshot("g1", want); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	got, err := s.LoadSnapshot("g1")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	restored, err := game.Restore(g.Config(), got)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if diff := cmp.Diff(g.PieceMap(), restored.PieceMap()); diff != "" {
		t.Errorf("restored pieces differ (-want +got):\n%s", diff)
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	s := openMemory(t)
	if _, err := s.LoadSnapshot("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadSnapshot error = %v, want ErrNotFound", err)
	}
}

func TestCommitLog(t *testing.T) {
	s := openMemory(t)

	commits := []game.Commit{
		{Move: board.MustParseMove("a2a3"), Side: board.White, Piece: board.WhitePawn, Placed: board.WhitePawn, Captured: board.NoPiece, Tick: 12, Seq: 3},
		{Move: board.MustParseMove("b4b3"), Side: board.Black, Piece: board.BlackPawn, Placed: board.BlackPawn, Captured: board.NoPiece, Tick: 2, Seq: 1},
		{Move: board.MustParseMove("c2c3"), Side: board.White, Piece: board.WhitePawn, Placed: board.WhitePawn, Captured: board.NoPiece, Tick: 2, Seq: 2},
	}
	if err := s.AppendCommit("g1", commits[0]); err != nil {
		t.Fatalf("AppendCommit: %v", err)
	}
	if err := s.AppendCommits("g1", commits[1:]); err != nil {
		t.Fatalf("AppendCommits: %v", err)
	}
	if err := s.AppendCommit("g2", commits[0]); err != nil {
		t.Fatalf("AppendCommit: %v", err)
	}

	got, err := s.Commits("g1")
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	want := []game.Commit{commits[1], commits[2], commits[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commit log (-want +got):\n%s", diff)
	}

	if err := s.DeleteGame("g1"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	got, err = s.Commits("g1")
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("log survived delete: %v", got)
	}
	other, err := s.Commits("g2")
	if err != nil || len(other) != 1 {
		t.Errorf("deleting g1 touched g2: %v, %v", other, err)
	}
}

func TestOpenConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	s, err := OpenConfigured(cfg)
	if err != nil {
		t.Fatalf("OpenConfigured: %v", err)
	}
	if err := s.SaveSnapshot("g1", pushedGame(t).Snapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenConfigured(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.LoadSnapshot("g1"); err != nil {
		t.Errorf("snapshot did not survive reopen: %v", err)
	}
}

func TestOpenConfiguredDefaultsToDataHome(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("data home override is XDG only")
	}
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", home)

	s, err := OpenConfigured(config.Default())
	if err != nil {
		t.Fatalf("OpenConfigured: %v", err)
	}
	defer s.Close()

	dbDir := filepath.Join(home, "minichess", "db")
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database directory not created: %v", err)
	}
}
