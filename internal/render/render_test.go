package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/hailam/gridchess/internal/board"
)

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.NewBoardFromLayout("rook@B1,wk:king/white@E1,bq:queen/black@D8")
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, testBoard(t), ""); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("%d lines", len(lines))
	}
	if lines[7] != "[-][♜][-][-][♚][-][-][-]" {
		t.Errorf("rank 1 = %q", lines[7])
	}
	if lines[0] != "[-][-][-][♛][-][-][-][-]" {
		t.Errorf("rank 8 = %q", lines[0])
	}

	buf.Reset()
	_ = Text(&buf, board.NewBoard(), ".")
	if !strings.HasPrefix(buf.String(), "[.][.]") {
		t.Errorf("custom marker ignored: %q", buf.String()[:12])
	}
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, testBoard(t), SVGOptions{Cell: 40, Glyphs: true, Labels: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if got := strings.Count(out, "<rect"); got != 65 {
		t.Errorf("%d rects, want 65 (background + 64 squares)", got)
	}
	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("%d discs, want 3", got)
	}
	for _, want := range []string{"♜", "♚", "♛", ">A<", ">8<", `viewBox="0 0 360 360"`} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestPNG(t *testing.T) {
	for _, size := range []int{256, 100} {
		var buf bytes.Buffer
		if err := PNG(&buf, testBoard(t), size); err != nil {
			t.Fatalf("PNG(%d): %v", size, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
			t.Errorf("image is %dx%d, want %d", b.Dx(), b.Dy(), size)
		}
	}

	if err := PNG(&bytes.Buffer{}, testBoard(t), 0); err == nil {
		t.Error("zero size accepted")
	}
}

func TestImageColorsSquares(t *testing.T) {
	img, err := Image(board.NewBoard(), rasterCell*board.Width)
	if err != nil {
		t.Fatal(err)
	}
	// A1 is dark, B1 light; sample the centers of the bottom row.
	y := 7*rasterCell + rasterCell/2
	a1 := img.RGBAAt(rasterCell/2, y)
	b1 := img.RGBAAt(rasterCell+rasterCell/2, y)
	if int(a1.R)+int(a1.G)+int(a1.B) >= int(b1.R)+int(b1.G)+int(b1.B) {
		t.Errorf("A1 %v is not darker than B1 %v", a1, b1)
	}
}
