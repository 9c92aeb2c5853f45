package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/gridchess/internal/board"
)

// Delta is a file/rank displacement.
type Delta struct {
	DX, DY int
}

var compass = map[string]Delta{
	"N":  {0, 1},
	"NE": {1, 1},
	"E":  {1, 0},
	"SE": {1, -1},
	"S":  {0, -1},
	"SW": {-1, -1},
	"W":  {-1, 0},
	"NW": {-1, 1},
}

// ParseDirection converts a compass name (N, NE, ... NW) to a unit delta.
func ParseDirection(s string) (Delta, error) {
	d, ok := compass[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return Delta{}, fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}

// ParseOffset converts "dx,dy" to a delta.
func ParseOffset(s string) (Delta, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Delta{}, fmt.Errorf("invalid offset %q", s)
	}
	dx, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Delta{}, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	dy, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Delta{}, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return Delta{dx, dy}, nil
}

// directions reads the piece's directions attribute.
func directions(p *board.Piece) ([]Delta, error) {
	names := p.Attr(board.AttrDirections)
	out := make([]Delta, 0, len(names))
	for _, n := range names {
		d, err := ParseDirection(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// MaxRange is the longest distance between two squares.
const MaxRange = max(board.Width, board.Height) - 1

// moveRange reads the piece's range attribute; 0 means unlimited.
func moveRange(p *board.Piece) (int, error) {
	s := p.AttrFirst(board.AttrRange)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxRange {
		return 0, fmt.Errorf("invalid range %q: want 0-%d", s, MaxRange)
	}
	return n, nil
}

// unit returns the direction from one square to another if they are aligned.
func unit(from, to board.Square) (Delta, bool) {
	if !board.Aligned(from, to) {
		return Delta{}, false
	}
	return Delta{sign(to.X() - from.X()), sign(to.Y() - from.Y())}, true
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
