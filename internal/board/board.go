package board

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// EmptyMarker is the default cell text for an unoccupied square.
const EmptyMarker = "-"

// Board owns the occupancy words and every piece placed on it.
// The occupancy bits, the square->piece index and each piece's own
// square are kept in lock-step by Place, Relocate and Remove.
type Board struct {
	occ     Occupancy
	pieces  map[string]*Piece
	pieceAt [Squares]*Piece
}

// NewBoard creates an empty 8x8 board.
func NewBoard() *Board {
	return &Board{
		occ:    NewOccupancy(Squares),
		pieces: make(map[string]*Piece),
	}
}

// Place puts an unplaced piece on (x, y) and registers it under its name.
func (b *Board) Place(p *Piece, x, y int) error {
	return b.PlaceAt(p, NewSquare(x, y))
}

// PlaceAt is Place addressed by square.
func (b *Board) PlaceAt(p *Piece, sq Square) error {
	if !sq.IsValid() {
		return fmt.Errorf("place %s: %w: %d", p.Name, ErrMalformedSquare, sq)
	}
	if _, ok := b.pieces[p.Name]; ok {
		return fmt.Errorf("place %s: %w", p.Name, ErrDuplicatePiece)
	}
	if cur, on := p.Square(); on {
		return fmt.Errorf("place %s: already on %s: %w", p.Name, cur, ErrDuplicatePiece)
	}
	if b.occ.IsSet(sq) {
		return fmt.Errorf("place %s on %s: %w", p.Name, sq, ErrSquareOccupied)
	}

	p.square = sq
	b.occ.Set(sq)
	b.pieceAt[sq] = p
	b.pieces[p.Name] = p
	return nil
}

// Relocate moves the piece on from to the empty square to.
func (b *Board) Relocate(from, to Square) error {
	if !from.IsValid() || !to.IsValid() {
		return fmt.Errorf("relocate %s->%s: %w", from, to, ErrMalformedSquare)
	}
	p := b.pieceAt[from]
	if p == nil || !b.occ.IsSet(from) {
		return fmt.Errorf("relocate from %s: %w", from, ErrNoPieceAtSquare)
	}
	if from == to {
		return nil
	}
	if b.occ.IsSet(to) {
		return fmt.Errorf("relocate %s to %s: %w", p.Name, to, ErrSquareOccupied)
	}

	b.occ.Clear(from)
	b.occ.Set(to)
	b.pieceAt[from] = nil
	b.pieceAt[to] = p
	p.square = to
	return nil
}

// RelocateMask is Relocate addressed by single-bit masks.
func (b *Board) RelocateMask(from, to Bitboard) error {
	f, err := SquareFromMask(from)
	if err != nil {
		return fmt.Errorf("relocate: %w", err)
	}
	t, err := SquareFromMask(to)
	if err != nil {
		return fmt.Errorf("relocate: %w", err)
	}
	return b.Relocate(f, t)
}

// Remove takes a piece off the board and out of the registry.
func (b *Board) Remove(name string) (*Piece, error) {
	p, ok := b.pieces[name]
	if !ok {
		return nil, fmt.Errorf("remove %s: %w", name, ErrPieceNotFound)
	}
	if sq, on := p.Square(); on {
		b.occ.Clear(sq)
		b.pieceAt[sq] = nil
	}
	delete(b.pieces, name)
	p.square = NoSquare
	return p, nil
}

// PieceByName returns the piece registered under name.
func (b *Board) PieceByName(name string) (*Piece, bool) {
	p, ok := b.pieces[name]
	return p, ok
}

// PieceAt returns the piece occupying sq.
func (b *Board) PieceAt(sq Square) (*Piece, bool) {
	if !sq.IsValid() {
		return nil, false
	}
	p := b.pieceAt[sq]
	return p, p != nil
}

// Occupied reports whether sq holds a piece.
func (b *Board) Occupied(sq Square) bool {
	return sq.IsValid() && b.occ.IsSet(sq)
}

// Occupancy returns a copy of the occupancy words.
func (b *Board) Occupancy() Occupancy {
	return b.occ.Clone()
}

// Pieces returns every registered piece sorted by name.
func (b *Board) Pieces() []*Piece {
	names := slices.Sorted(maps.Keys(b.pieces))
	out := make([]*Piece, 0, len(names))
	for _, n := range names {
		out = append(out, b.pieces[n])
	}
	return out
}

// Len returns the number of registered pieces.
func (b *Board) Len() int {
	return len(b.pieces)
}

// Rows projects the board for display: rank 8 first, file A first, each
// cell holding the occupant's glyph or the empty marker.
func (b *Board) Rows(empty string) [][]string {
	rows := make([][]string, 0, Height)
	for y := Height - 1; y >= 0; y-- {
		row := make([]string, 0, Width)
		for x := 0; x < Width; x++ {
			sq := NewSquare(x, y)
			if p, ok := b.PieceAt(sq); ok && b.occ.IsSet(sq) {
				row = append(row, p.String())
			} else {
				row = append(row, empty)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// String returns the console grid, one "[cell]" per square.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Rows(EmptyMarker) {
		for _, cell := range row {
			sb.WriteString("[" + cell + "]")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Validate checks that every occupied square is owned by exactly one piece
// and every registered piece's square is occupied.
func (b *Board) Validate() error {
	owned := NewOccupancy(Squares)
	for name, p := range b.pieces {
		sq, on := p.Square()
		if !on {
			return fmt.Errorf("%w: %s is registered but not placed", ErrCorrupt, name)
		}
		if owned.IsSet(sq) {
			return fmt.Errorf("%w: %s shares %s", ErrCorrupt, name, sq)
		}
		if !b.occ.IsSet(sq) {
			return fmt.Errorf("%w: %s claims empty %s", ErrCorrupt, name, sq)
		}
		if b.pieceAt[sq] != p {
			return fmt.Errorf("%w: index for %s does not point at %s", ErrCorrupt, sq, name)
		}
		owned.Set(sq)
	}
	for i, w := range b.occ {
		if w != owned[i] {
			return fmt.Errorf("%w: occupancy word %d has %#016x, pieces own %#016x", ErrCorrupt, i, uint64(w), uint64(owned[i]))
		}
	}
	return nil
}
