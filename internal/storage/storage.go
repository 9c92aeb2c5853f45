package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/gridchess/internal/board"
)

// Storage keys
const (
	keyStats      = "stats"
	sessionPrefix = "session/"
	snapshotKey   = "/snapshot"
	seqKey        = "/seq"
	movePrefix    = "/move/"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session id")
)

// SessionRecord is a stored board snapshot with bookkeeping.
type SessionRecord struct {
	ID       string         `json:"id"`
	Snapshot board.Snapshot `json:"snapshot"`
	Updated  time.Time      `json:"updated"`
}

// MoveEntry is one applied move in a session's log.
type MoveEntry struct {
	Seq      int       `json:"seq"`
	Piece    string    `json:"piece"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Captured string    `json:"captured,omitempty"`
	At       time.Time `json:"at"`
}

// Stats aggregates play across sessions.
type Stats struct {
	Sessions int `json:"sessions"`
	Moves    int `json:"moves"`
	Captures int `json:"captures"`
	Undos    int `json:"undos"`
	Rejected int `json:"rejected"`
}

// SessionSummary is added into Stats when a session ends.
type SessionSummary struct {
	Moves    int
	Captures int
	Undos    int
	Rejected int
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (creating if needed) the database under dataDir.
// An empty dataDir uses the platform data directory.
func Open(dataDir string) (*Storage, error) {
	dbDir, err := GetDatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}
	log.Printf("Database directory: %s", dbDir)

	opts := badger.DefaultOptions(dbDir)
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
		return nil, fmt.Errorf("open badger: %w", err)
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

func sessionKey(id, suffix string) ([]byte, error) {
	if id == "" || strings.Contains(id, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSession, id)
	}
	return []byte(sessionPrefix + id + suffix), nil
}

// SaveSnapshot stores the current board of a session.
func (s *Storage) SaveSnapshot(id string, snap board.Snapshot) error {
	key, err := sessionKey(id, snapshotKey)
	if err != nil {
		return err
	}
	data, err := json.Marshal(SessionRecord{ID: id, Snapshot: snap, Updated: time.Now()})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// LoadSnapshot loads a session's board. Missing sessions return ErrSessionNotFound.
func (s *Storage) LoadSnapshot(id string) (*SessionRecord, error) {
	key, err := sessionKey(id, snapshotKey)
	if err != nil {
		return nil, err
	}

	rec := &SessionRecord{}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// AppendMove adds a move to the session log and returns its sequence number.
func (s *Storage) AppendMove(id string, m MoveEntry) (int, error) {
	seqK, err := sessionKey(id, seqKey)
	if err != nil {
		return 0, err
	}

	var seq int
	err = s.db.Update(func(txn *badger.Txn) error {
		seq = 0
		item, err := txn.Get(seqK)
		switch {
		case err == badger.ErrKeyNotFound:
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				n, err := strconv.Atoi(string(val))
				seq = n
				return err
			}); err != nil {
				return err
			}
		}
		seq++

		m.Seq = seq
		if m.At.IsZero() {
			m.At = time.Now()
		}
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		if err := txn.Set(moveKey(id, seq), data); err != nil {
			return err
		}
		return txn.Set(seqK, []byte(strconv.Itoa(seq)))
	})
	return seq, err
}

func moveKey(id string, seq int) []byte {
	return []byte(fmt.Sprintf("%s%s%s%08d", sessionPrefix, id, movePrefix, seq))
}

// Moves returns the session's move log in order.
func (s *Storage) Moves(id string) ([]MoveEntry, error) {
	prefix, err := sessionKey(id, movePrefix)
	if err != nil {
		return nil, err
	}

	var moves []MoveEntry
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var m MoveEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return err
			}
			moves = append(moves, m)
		}
		return nil
	})
	return moves, err
}

// PopMove deletes the most recent entry of the session's move log.
func (s *Storage) PopMove(id string) error {
	seqK, err := sessionKey(id, seqKey)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(seqK)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		var seq int
		if err := item.Value(func(val []byte) error {
			seq, err = strconv.Atoi(string(val))
			return err
		}); err != nil {
			return err
		}
		if seq == 0 {
			return nil
		}
		if err := txn.Delete(moveKey(id, seq)); err != nil {
			return err
		}
		return txn.Set(seqK, []byte(strconv.Itoa(seq-1)))
	})
}

// DeleteSession removes a session's snapshot and move log.
func (s *Storage) DeleteSession(id string) error {
	prefix, err := sessionKey(id, "/")
	if err != nil {
		return err
	}

	var keys [][]byte
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Sessions lists the IDs of stored sessions in key order.
func (s *Storage) Sessions() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sessionPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			k := string(it.Item().Key())
			if id, ok := strings.CutSuffix(strings.TrimPrefix(k, sessionPrefix), snapshotKey); ok {
				ids = append(ids, id)
			}
		}
		return nil
	})
	return ids, err
}

// SaveStats saves aggregate statistics
func (s *Storage) SaveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads aggregate statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordSession adds a finished session's counters to the statistics.
func (s *Storage) RecordSession(sum SessionSummary) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Sessions++
	stats.Moves += sum.Moves
	stats.Captures += sum.Captures
	stats.Undos += sum.Undos
	stats.Rejected += sum.Rejected

	return s.SaveStats(stats)
}

// CaptureRate returns captures per move as a percentage (0-100)
func (s *Stats) CaptureRate() float64 {
	if s.Moves == 0 {
		return 0
	}
	return float64(s.Captures) / float64(s.Moves) * 100
}
