// Package board implements the grid board representation using bitboards.
package board

import (
	"fmt"
	"math/bits"
)

// Board dimensions.
const (
	Width   = 8
	Height  = 8
	Squares = Width * Height
)

// Square is a board location stored as its linear index (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
// Every other representation (x/y, mask, word and bit) is derived.
type Square uint8

// Square constants for the corners and a sentinel.
const (
	A1       Square = 0
	H1       Square = 7
	A8       Square = 56
	H8       Square = 63
	NoSquare Square = Squares
)

// NewSquare creates a square from x (file) and y (rank), both 0-indexed.
// Out-of-range coordinates are a programming error.
func NewSquare(x, y int) Square {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		panic(fmt.Sprintf("board: coordinate (%d,%d) off board", x, y))
	}
	return Square(y*Width + x)
}

// SquareFromIndex creates a square from its linear index.
func SquareFromIndex(i int) Square {
	if i < 0 || i >= Squares {
		panic(fmt.Sprintf("board: index %d off board", i))
	}
	return Square(i)
}

// SquareFromMask creates a square from a mask with exactly one bit set.
func SquareFromMask(m Bitboard) (Square, error) {
	if bits.OnesCount64(uint64(m)) != 1 {
		return NoSquare, fmt.Errorf("%w: %#016x", ErrMalformedMask, uint64(m))
	}
	return Square(bits.TrailingZeros64(uint64(m))), nil
}

// ParseSquare parses algebraic notation (e.g., "E4") into a Square.
// The file must be an upper-case letter A-H and the rank a digit 1-8.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}

	x := int(s[0]) - 'A'
	y := int(s[1]) - '1'

	if x < 0 || x >= Width || y < 0 || y >= Height {
		return NoSquare, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}

	return Square(y*Width + x), nil
}

// X returns the file (column) of the square (0-7, where 0=A).
func (sq Square) X() int {
	return int(sq) % Width
}

// Y returns the rank (row) of the square (0-7, where 0=1).
func (sq Square) Y() int {
	return int(sq) / Width
}

// Index returns the linear index of the square.
func (sq Square) Index() int {
	return int(sq)
}

// Mask returns a bitboard with only this square set.
func (sq Square) Mask() Bitboard {
	return 1 << (sq % 64)
}

// Word returns which occupancy word holds this square.
func (sq Square) Word() int {
	return int(sq) / 64
}

// Bit returns the bit position of this square within its word.
func (sq Square) Bit() int {
	return int(sq) % 64
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Offset returns the square dx files and dy ranks away, and false if that
// falls off the board.
func (sq Square) Offset(dx, dy int) (Square, bool) {
	x, y := sq.X()+dx, sq.Y()+dy
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return NoSquare, false
	}
	return Square(y*Width + x), true
}

// String returns the algebraic notation for the square (e.g., "E4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'A'+sq.X(), '1'+sq.Y())
}
