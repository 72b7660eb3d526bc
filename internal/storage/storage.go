// Package storage persists game snapshots and move logs in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/minichess/internal/config"
	"github.com/hailam/minichess/internal/game"
)

// ErrNotFound is returned when no snapshot exists for a game.
var ErrNotFound = errors.New("game not found")

// Storage key layout:
//
//	game/<id>/snapshot
//	game/<id>/commit/<tick>/<seq>   (zero padded, so keys sort by landing order)
const keyPrefix = "game/"

func snapshotKey(id string) []byte {
	return []byte(keyPrefix + id + "/snapshot")
}

func commitPrefix(id string) []byte {
	return []byte(keyPrefix + id + "/commit/")
}

func commitKey(id string, c game.Commit) []byte {
	return []byte(fmt.Sprintf("%s%s/commit/%010d/%020d", keyPrefix, id, c.Tick, c.Seq))
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// OpenConfigured opens the database in <data dir>/db, where the data dir is
// cfg.DataDir or, when none is configured, the platform data directory.
func OpenConfigured(cfg *config.Config) (*Storage, error) {
	dataDir := ""
	if cfg != nil {
		dataDir = cfg.DataDir
	}
	if dataDir == "" {
		base, err := platformDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(base, appName)
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, err
	}
	return Open(dbDir)
}

const appName = "minichess"

// platformDataDir returns the per-user application data root:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME (default ~/.local/share) elsewhere.
func platformDataDir() (string, error) {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
	} else if runtime.GOOS != "darwin" {
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		return filepath.Join(home, "AppData", "Roaming"), nil
	}
	return filepath.Join(home, ".local", "share"), nil
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores the latest state of a game, replacing any earlier one.
func (s *Storage) SaveSnapshot(id string, snap *game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(id), data)
	})
}

// LoadSnapshot returns the stored state of a game.
func (s *Storage) LoadSnapshot(id string) (*game.Snapshot, error) {
	snap := &game.Snapshot{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(id))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, snap)
		})
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// AppendCommit records a landed move in the game's log.
func (s *Storage) AppendCommit(id string, c game.Commit) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(commitKey(id, c), data)
	})
}

// AppendCommits records several landed moves in one transaction.
func (s *Storage) AppendCommits(id string, commits []game.Commit) error {
	if len(commits) == 0 {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, c := range commits {
			data, err := json.Marshal(c)
			if err != nil {
				return err
			}
			if err := txn.Set(commitKey(id, c), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Commits returns the game's log in landing order.
func (s *Storage) Commits(id string) ([]game.Commit, error) {
	var commits []game.Commit

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := commitPrefix(id)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var c game.Commit
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &c)
			})
			if err != nil {
				return err
			}
			commits = append(commits, c)
		}
		return nil
	})

	return commits, err
}

// DeleteGame removes a game's snapshot and log.
func (s *Storage) DeleteGame(id string) error {
	prefix := []byte(keyPrefix + id + "/")

	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
