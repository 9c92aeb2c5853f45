package rules

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hailam/gridchess/internal/board"
)

// Slide moves along a ray in one of the piece's directions, optionally
// capped by range, and stops at the first piece in the way.
type Slide struct{}

// Allows implements Rule.
func (Slide) Allows(v View, p *board.Piece, from, to board.Square) error {
	dirs, err := directions(p)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return errors.New("slide piece has no directions")
	}
	limit, err := moveRange(p)
	if err != nil {
		return err
	}

	d, ok := unit(from, to)
	if !ok || !slices.Contains(dirs, d) {
		return illegal(p, from, to, "not on a permitted line")
	}
	if dist := board.Distance(from, to); limit > 0 && dist > limit {
		return illegal(p, from, to, fmt.Sprintf("%d squares exceeds range %d", dist, limit))
	}

	var blocker error
	board.Between(from, to).ForEach(func(sq board.Square) {
		if blocker == nil && v.Occupied(sq) {
			blocker = illegal(p, from, to, "path blocked at "+sq.String())
		}
	})
	return blocker
}

// Free allows any destination that passed the engine's shared checks.
type Free struct{}

// Allows implements Rule.
func (Free) Allows(View, *board.Piece, board.Square, board.Square) error {
	return nil
}
