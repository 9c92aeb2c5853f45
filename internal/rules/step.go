package rules

import (
	"errors"

	"github.com/hailam/gridchess/internal/board"
)

// Step moves a fixed displacement, jumping over anything in between.
// Displacements come from the offsets attribute ("dx,dy"), or else from
// directions repeated up to range squares (default one).
type Step struct{}

// Allows implements Rule.
func (Step) Allows(_ View, p *board.Piece, from, to board.Square) error {
	targets, err := StepTargets(p, from)
	if err != nil {
		return err
	}
	if !targets.IsSet(to) {
		return illegal(p, from, to, "not a step target")
	}
	return nil
}

// StepTargets returns every square a stepping piece reaches from from.
func StepTargets(p *board.Piece, from board.Square) (board.Bitboard, error) {
	deltas, err := stepDeltas(p)
	if err != nil {
		return board.Empty, err
	}
	if !from.IsValid() {
		return board.Empty, nil
	}
	return tableFor(deltas)[from], nil
}

func stepDeltas(p *board.Piece) ([]Delta, error) {
	if offs := p.Attr(board.AttrOffsets); len(offs) > 0 {
		out := make([]Delta, 0, len(offs))
		for _, o := range offs {
			d, err := ParseOffset(o)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	}

	dirs, err := directions(p)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, errors.New("step piece has neither offsets nor directions")
	}
	n, err := moveRange(p)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		n = 1
	}
	out := make([]Delta, 0, len(dirs)*n)
	for _, d := range dirs {
		for k := 1; k <= n; k++ {
			out = append(out, Delta{d.DX * k, d.DY * k})
		}
	}
	return out, nil
}
