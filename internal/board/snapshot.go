package board

import "fmt"

// PieceState is the serializable form of a placed piece.
type PieceState struct {
	Name   string              `json:"name"`
	Stamp  string              `json:"stamp"`
	Glyph  string              `json:"glyph"`
	Attrs  map[string][]string `json:"attrs,omitempty"`
	Square string              `json:"square"`
}

// Snapshot is the serializable form of a board.
type Snapshot struct {
	Pieces []PieceState `json:"pieces"`
}

// Snapshot captures every piece and its square, sorted by name.
func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	for _, p := range b.Pieces() {
		st := PieceState{
			Name:   p.Name,
			Stamp:  string(p.Stamp),
			Glyph:  p.Glyph,
			Square: p.square.String(),
		}
		if len(p.attrs) > 0 {
			st.Attrs = p.Clone().attrs
		}
		s.Pieces = append(s.Pieces, st)
	}
	return s
}

// FromSnapshot rebuilds a board, applying the same checks as Place.
func FromSnapshot(s Snapshot) (*Board, error) {
	b := NewBoard()
	for _, st := range s.Pieces {
		if len(st.Stamp) != 1 {
			return nil, fmt.Errorf("snapshot %s: stamp %q must be one byte", st.Name, st.Stamp)
		}
		sq, err := ParseSquare(st.Square)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", st.Name, err)
		}
		p := NewPiece(st.Stamp[0], st.Glyph, st.Name)
		for k, v := range st.Attrs {
			p.SetAttr(k, v...)
		}
		if err := b.PlaceAt(p, sq); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	return b, nil
}
