package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/hailam/gridchess/internal/board"
)

// SVGOptions controls the SVG diagram.
type SVGOptions struct {
	Cell   int  // pixels per square, default 48
	Glyphs bool // draw piece glyphs as text over the discs
	Labels bool // draw file letters and rank digits
}

func (o SVGOptions) cell() int {
	if o.Cell <= 0 {
		return 48
	}
	return o.Cell
}

// SVG writes a board diagram. Pieces are discs colored by side.
func SVG(w io.Writer, b *board.Board, opts SVGOptions) error {
	cell := opts.cell()
	size := cell * board.Width
	margin := 0
	if opts.Labels {
		margin = cell / 2
	}
	total := size + 2*margin

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(total, total, 0, 0, total, total)
	canvas.Rect(0, 0, total, total, `fill="#ffffff"`)

	for y := 0; y < board.Height; y++ {
		for x := 0; x < board.Width; x++ {
			sq := board.NewSquare(x, y)
			px, py := margin+x*cell, margin+(board.Height-1-y)*cell
			fill := darkSquare
			if isLight(sq) {
				fill = lightSquare
			}
			canvas.Rect(px, py, cell, cell, fmt.Sprintf(`fill="%s"`, fill))

			p, ok := b.PieceAt(sq)
			if !ok {
				continue
			}
			cx, cy := px+cell/2, py+cell/2
			canvas.Circle(cx, cy, cell*2/5,
				fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="1"`, discColor(p), discStroke))
			if opts.Glyphs {
				canvas.Text(cx, cy+cell/6, p.String(),
					fmt.Sprintf(`text-anchor="middle" font-size="%d" fill="%s"`, cell/2, textColor(p)))
			}
		}
	}

	if opts.Labels {
		style := fmt.Sprintf(`text-anchor="middle" font-size="%d" fill="#333333"`, cell/3)
		for x := 0; x < board.Width; x++ {
			canvas.Text(margin+x*cell+cell/2, total-margin/4, string(rune('A'+x)), style)
		}
		for y := 0; y < board.Height; y++ {
			canvas.Text(margin/2, margin+(board.Height-1-y)*cell+cell/2+cell/8, string(rune('1'+y)), style)
		}
	}

	canvas.End()
	return ew.err
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func textColor(p *board.Piece) string {
	if p.Side() == "black" {
		return whiteDisc
	}
	return blackDisc
}
