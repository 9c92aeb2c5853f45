package board

// Pre-computed line tables for sliding movement.
var (
	betweenBB [Squares][Squares]Bitboard // Squares strictly between two squares
	rayBB     [Squares][Squares]Bitboard // Ray from the first square through the second to the edge
)

func init() {
	initLines()
}

func initLines() {
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			if sq1 == sq2 {
				continue
			}

			x1, y1 := sq1.X(), sq1.Y()
			x2, y2 := sq2.X(), sq2.Y()
			dx, dy := sign(x2-x1), sign(y2-y1)

			// Only aligned squares (same rank, file or diagonal)
			if dx != 0 && dy != 0 && abs(x2-x1) != abs(y2-y1) {
				continue
			}

			var between, ray Bitboard
			passed := false
			for cur, ok := sq1.Offset(dx, dy); ok; cur, ok = cur.Offset(dx, dy) {
				ray |= cur.Mask()
				if cur == sq2 {
					passed = true
				}
				if !passed {
					between |= cur.Mask()
				}
			}
			betweenBB[sq1][sq2] = between
			rayBB[sq1][sq2] = ray
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Between returns the squares strictly between two squares.
// Returns empty if the squares are not aligned.
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// Aligned returns true if two distinct squares share a rank, file or diagonal.
func Aligned(sq1, sq2 Square) bool {
	return rayBB[sq1][sq2] != 0
}

// Distance returns the Chebyshev distance between two squares.
func Distance(sq1, sq2 Square) int {
	return max(abs(sq1.X()-sq2.X()), abs(sq1.Y()-sq2.Y()))
}
