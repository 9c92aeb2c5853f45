// Package render draws a board as console text, SVG or PNG.
package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hailam/gridchess/internal/board"
)

// Text writes the console grid: rank 8 first, one "[cell]" per square.
func Text(w io.Writer, b *board.Board, empty string) error {
	if empty == "" {
		empty = board.EmptyMarker
	}
	bw := bufio.NewWriter(w)
	for _, row := range b.Rows(empty) {
		for _, cell := range row {
			fmt.Fprintf(bw, "[%s]", cell)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Palette colors shared by the SVG and PNG renderers.
const (
	lightSquare = "#f0d9b5"
	darkSquare  = "#b58863"
	whiteDisc   = "#fafafa"
	blackDisc   = "#262626"
	neutralDisc = "#8c8c8c"
	discStroke  = "#000000"
)

func discColor(p *board.Piece) string {
	switch p.Side() {
	case "white":
		return whiteDisc
	case "black":
		return blackDisc
	default:
		return neutralDisc
	}
}

func isLight(sq board.Square) bool {
	return (sq.X()+sq.Y())%2 == 1
}
