package session

import (
	"errors"
	"fmt"

	"github.com/hailam/gridchess/internal/board"
	"github.com/hailam/gridchess/internal/storage"
)

// Loader reads stored snapshots. *storage.Storage implements it.
type Loader interface {
	LoadSnapshot(id string) (*storage.SessionRecord, error)
}

// LoadBoard returns the stored board for id when resume is set and one
// exists, otherwise a fresh board built from layout with the kinds of cat.
// The bool reports whether the board was resumed.
func LoadBoard(l Loader, cat *board.Catalog, id, layout string, resume bool) (*board.Board, bool, error) {
	if resume && l != nil {
		rec, err := l.LoadSnapshot(id)
		switch {
		case err == nil:
			b, err := board.FromSnapshot(rec.Snapshot)
			if err != nil {
				return nil, false, fmt.Errorf("restore session %s: %w", id, err)
			}
			return b, true, nil
		case !errors.Is(err, storage.ErrSessionNotFound):
			return nil, false, err
		}
	}

	if cat == nil {
		cat = board.DefaultCatalog()
	}
	b, err := cat.NewBoard(layout)
	if err != nil {
		return nil, false, err
	}
	return b, false, nil
}
