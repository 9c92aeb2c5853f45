package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit word where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
type Bitboard uint64

// Empty has no squares set.
const Empty Bitboard = 0

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | sq.Mask()
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ sq.Mask()
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&sq.Mask() != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	for y := Height - 1; y >= 0; y-- {
		sb.WriteByte(byte('1' + y))
		sb.WriteByte(' ')
		for x := 0; x < Width; x++ {
			if b.IsSet(NewSquare(x, y)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  A B C D E F G H\n")
	return sb.String()
}

// Occupancy is the ordered sequence of 64-bit words covering every square.
// Bit b of word w is set iff the square with index w*64+b is occupied.
type Occupancy []Bitboard

// NewOccupancy allocates enough words to cover the given number of squares.
func NewOccupancy(squares int) Occupancy {
	return make(Occupancy, (squares+63)/64)
}

// Set marks the square occupied.
func (o Occupancy) Set(sq Square) {
	o[sq.Word()] |= sq.Mask()
}

// Clear marks the square empty.
func (o Occupancy) Clear(sq Square) {
	o[sq.Word()] &^= sq.Mask()
}

// IsSet reports whether the square is occupied.
func (o Occupancy) IsSet(sq Square) bool {
	return o[sq.Word()]&sq.Mask() != 0
}

// Count returns the number of occupied squares.
func (o Occupancy) Count() int {
	n := 0
	for _, w := range o {
		n += w.PopCount()
	}
	return n
}

// Clone returns an independent copy.
func (o Occupancy) Clone() Occupancy {
	c := make(Occupancy, len(o))
	copy(c, o)
	return c
}
