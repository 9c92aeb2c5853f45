package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/gridchess/internal/board"
)

// rasterCell is the square size the board is rasterized at before scaling.
const rasterCell = 32

// Image rasterizes the board to a size x size RGBA image. Pieces are drawn
// as side-colored discs stamped with their one-character stamp.
func Image(b *board.Board, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("image size %d must be positive", size)
	}

	var buf bytes.Buffer
	if err := SVG(&buf, b, SVGOptions{Cell: rasterCell}); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}

	n := rasterCell * board.Width
	icon.SetTarget(0, 0, float64(n), float64(n))
	rgba := image.NewRGBA(image.Rect(0, 0, n, n))
	scanner := rasterx.NewScannerGV(n, n, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(n, n, scanner)
	icon.Draw(raster, 1.0)

	drawStamps(rgba, b)

	if size == n {
		return rgba, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), rgba, rgba.Bounds(), draw.Over, nil)
	return out, nil
}

// PNG writes the board as a size x size PNG.
func PNG(w io.Writer, b *board.Board, size int) error {
	img, err := Image(b, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func drawStamps(dst *image.RGBA, b *board.Board) {
	face := basicfont.Face7x13
	for _, p := range b.Pieces() {
		sq, ok := p.Square()
		if !ok {
			continue
		}
		ink := color.Color(color.Black)
		if p.Side() == "black" {
			ink = color.White
		}
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(ink), Face: face}
		stamp := string(p.Stamp)
		width := d.MeasureString(stamp).Ceil()
		x := sq.X()*rasterCell + (rasterCell-width)/2
		y := (board.Height-1-sq.Y())*rasterCell + (rasterCell+face.Ascent-face.Descent)/2
		d.Dot = fixed.P(x, y)
		d.DrawString(stamp)
	}
}
