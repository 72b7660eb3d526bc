// Package config holds the settings a game is created from.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hailam/minichess/internal/board"
)

// ErrInvalidConfig indicates a setting outside its allowed range.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultMoveDelay is the number of ticks between lifting a piece and
// landing it when nothing else is configured.
const DefaultMoveDelay = 1

// Config describes how a game is set up.
type Config struct {
	// MoveDelay is the number of ticks a move spends in flight.
	MoveDelay int `json:"move_delay"`

	// PieceDelays overrides MoveDelay per piece kind, keyed by kind name
	// ("knight") or board character ("n").
	PieceDelays map[string]int `json:"piece_delays,omitempty"`

	// RejectSelfCheck makes Push refuse moves that leave the mover's own
	// king attacked. Off by default.
	RejectSelfCheck bool `json:"reject_self_check"`

	// StartBoard is the initial board, top row first.
	StartBoard []string `json:"start_board"`

	// StartTurn is "w" or "b".
	StartTurn string `json:"start_turn"`

	// DataDir is where game snapshots are stored. Empty means the
	// platform data directory.
	DataDir string `json:"data_dir,omitempty"`

	Verbose bool `json:"verbose"`
}

// Default returns the standard setup: starting position, White to move,
// one tick per move.
func Default() *Config {
	return &Config{
		MoveDelay:  DefaultMoveDelay,
		StartBoard: append([]string(nil), board.StartRows...),
		StartTurn:  "w",
	}
}

// Load reads a JSON configuration file. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSON configuration on top of the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.MoveDelay < 1 {
		return fmt.Errorf("%w: move_delay must be at least 1, got %d", ErrInvalidConfig, c.MoveDelay)
	}
	seen := make(map[board.PieceType]string, len(c.PieceDelays))
	for name, d := range c.PieceDelays {
		pt, ok := board.ParsePieceType(name)
		if !ok {
			return fmt.Errorf("%w: unknown piece kind %q in piece_delays", ErrInvalidConfig, name)
		}
		if other, dup := seen[pt]; dup {
			return fmt.Errorf("%w: piece_delays names %s twice (%q and %q)", ErrInvalidConfig, pt, other, name)
		}
		seen[pt] = name
		if d < 1 {
			return fmt.Errorf("%w: delay for %s must be at least 1, got %d", ErrInvalidConfig, name, d)
		}
	}
	if _, ok := board.ParseColor(c.StartTurn); !ok {
		return fmt.Errorf("%w: start_turn must be \"w\" or \"b\", got %q", ErrInvalidConfig, c.StartTurn)
	}
	if _, err := board.ParseBoard(c.StartBoard); err != nil {
		return fmt.Errorf("%w: start_board: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Delay returns the flight time of a piece kind.
func (c *Config) Delay(pt board.PieceType) int {
	for name, d := range c.PieceDelays {
		if kind, ok := board.ParsePieceType(name); ok && kind == pt {
			return d
		}
	}
	return c.MoveDelay
}

// UniformDelay reports whether every piece kind shares one delay.
func (c *Config) UniformDelay() bool {
	for _, d := range c.PieceDelays {
		if d != c.MoveDelay {
			return false
		}
	}
	return true
}

// Turn returns the configured side to move.
func (c *Config) Turn() board.Color {
	color, ok := board.ParseColor(c.StartTurn)
	if !ok {
		return board.White
	}
	return color
}
