package board

import (
	"fmt"
	"strings"
)

// DefaultLayout is the setup used when none is configured.
const DefaultLayout = "rook@A1"

// Placement is one entry of a layout string.
type Placement struct {
	Name   string
	Kind   string
	Side   string
	Square Square
}

// ParseLayout parses a comma separated list of placements.
// Each entry has the form name[:kind][/side]@square, e.g. "rook@A1" or
// "wr:rook/white@A1". The kind defaults to the name.
func ParseLayout(s string) ([]Placement, error) {
	var out []Placement
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		pl, err := parsePlacement(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, pl)
	}
	return out, nil
}

func parsePlacement(entry string) (Placement, error) {
	head, sqStr, ok := strings.Cut(entry, "@")
	if !ok {
		return Placement{}, fmt.Errorf("invalid placement %q: missing @square", entry)
	}

	sq, err := ParseSquare(sqStr)
	if err != nil {
		return Placement{}, fmt.Errorf("invalid placement %q: %w", entry, err)
	}

	var pl Placement
	pl.Square = sq
	head, pl.Side, _ = strings.Cut(head, "/")
	pl.Name, pl.Kind, _ = strings.Cut(head, ":")
	if pl.Name == "" {
		return Placement{}, fmt.Errorf("invalid placement %q: missing name", entry)
	}
	if pl.Kind == "" {
		pl.Kind = pl.Name
	}
	return pl, nil
}

// NewBoardFromLayout builds a board from a layout string using the
// built-in kinds.
func NewBoardFromLayout(layout string) (*Board, error) {
	return DefaultCatalog().NewBoard(layout)
}

// NewBoard builds a board from a layout string using the catalog's kinds.
func (c *Catalog) NewBoard(layout string) (*Board, error) {
	placements, err := ParseLayout(layout)
	if err != nil {
		return nil, err
	}

	b := NewBoard()
	for _, pl := range placements {
		p, err := c.NewPiece(pl.Name, pl.Kind)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", pl.Name, err)
		}
		if pl.Side != "" {
			p.SetAttr(AttrSide, pl.Side)
		}
		if err := b.PlaceAt(p, pl.Square); err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
	}
	return b, nil
}
