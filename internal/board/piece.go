package board

import (
	"maps"
	"slices"
)

// Well-known attribute names.
const (
	AttrMovement   = "movement"
	AttrDirections = "directions"
	AttrOffsets    = "offsets"
	AttrRange      = "range"
	AttrSide       = "side"
	AttrScript     = "script"
	AttrKind       = "kind"
)

// Piece is a named game piece with a display glyph and open-ended
// string-valued attributes describing how it moves.
type Piece struct {
	Name  string
	Stamp byte
	Glyph string

	attrs  map[string][]string
	square Square // NoSquare until placed; only Board writes it
}

// NewPiece creates an unplaced piece.
func NewPiece(stamp byte, glyph, name string) *Piece {
	return &Piece{
		Name:   name,
		Stamp:  stamp,
		Glyph:  glyph,
		attrs:  make(map[string][]string),
		square: NoSquare,
	}
}

// SetAttr replaces the values of the named attribute.
func (p *Piece) SetAttr(name string, values ...string) {
	p.attrs[name] = slices.Clone(values)
}

// Attr returns a copy of the values of the named attribute.
func (p *Piece) Attr(name string) []string {
	return slices.Clone(p.attrs[name])
}

// AttrFirst returns the first value of the named attribute, or "".
func (p *Piece) AttrFirst(name string) string {
	if v := p.attrs[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Attrs returns the attribute names in sorted order.
func (p *Piece) Attrs() []string {
	return slices.Sorted(maps.Keys(p.attrs))
}

// Side returns the value of the side attribute, "" if the piece has none.
func (p *Piece) Side() string {
	return p.AttrFirst(AttrSide)
}

// Square returns the current square and false if the piece is not on the board.
func (p *Piece) Square() (Square, bool) {
	return p.square, p.square.IsValid()
}

// Clone returns a detached copy with the same square.
func (p *Piece) Clone() *Piece {
	c := &Piece{
		Name:   p.Name,
		Stamp:  p.Stamp,
		Glyph:  p.Glyph,
		attrs:  make(map[string][]string, len(p.attrs)),
		square: p.square,
	}
	for k, v := range p.attrs {
		c.attrs[k] = slices.Clone(v)
	}
	return c
}

// String returns the glyph, falling back to the stamp.
func (p *Piece) String() string {
	if p.Glyph != "" {
		return p.Glyph
	}
	return string(p.Stamp)
}
