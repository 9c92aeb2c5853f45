package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hailam/gridchess/internal/board"
)

func scripted(t *testing.T, b *board.Board, src string, x, y int) *board.Piece {
	t.Helper()
	p := board.NewPiece('s', "s", "scripted")
	p.SetAttr(board.AttrMovement, board.MoveScript)
	p.SetAttr(board.AttrScript, src)
	if err := b.Place(p, x, y); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestScriptRule(t *testing.T) {
	// A camel: leaps (1,3) in any orientation.
	const camel = `
function allow(fx, fy, tx, ty)
  local dx = math.abs(tx - fx)
  local dy = math.abs(ty - fy)
  return (dx == 1 and dy == 3) or (dx == 3 and dy == 1)
end`
	b := board.NewBoard()
	p := scripted(t, b, camel, 0, 0)
	e := NewEngine()

	if !e.IsLegal(b, p, board.A1, sq(t, "B4")) {
		t.Error("camel leap rejected")
	}
	if e.IsLegal(b, p, board.A1, sq(t, "B3")) {
		t.Error("knight leap accepted")
	}
	if got := e.Targets(b, p).PopCount(); got != 2 {
		t.Errorf("camel on A1 has %d targets, want 2", got)
	}
}

func TestScriptSeesBoard(t *testing.T) {
	const lance = `
function allow(fx, fy, tx, ty)
  return fx == tx and ty > fy and between_clear(fx, fy, tx, ty) and not occupied(tx, ty)
end`
	b := setup(t, "wall:king@A5")
	p := scripted(t, b, lance, 0, 0)
	e := NewEngine()

	if !e.IsLegal(b, p, board.A1, sq(t, "A4")) {
		t.Error("open file rejected")
	}
	if e.IsLegal(b, p, board.A1, sq(t, "A7")) {
		t.Error("jumped the wall")
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"syntax", "function allow("},
		{"no allow", "x = 1"},
		{"runtime error", "function allow() error('boom') end"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := board.NewBoard()
			p := scripted(t, b, tc.src, 0, 0)
			err := NewEngine().Check(b, p, board.A1, board.H8)
			if !errors.Is(err, ErrIllegalMove) {
				t.Errorf("err = %v, want ErrIllegalMove", err)
			}
		})
	}
}

func TestScriptSandbox(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outside.lua")
	if err := os.WriteFile(path, []byte("outside = true"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  string
	}{
		{"dofile", fmt.Sprintf("dofile(%q)\nfunction allow() return outside == true end", path)},
		{"loadfile", fmt.Sprintf("loadfile(%q)()\nfunction allow() return outside == true end", path)},
		{"load", "function allow() return load('return true')() end"},
		{"endless load", "while true do end"},
		{"endless allow", "function allow() while true do end end"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := board.NewBoard()
			p := scripted(t, b, tc.src, 0, 0)

			done := make(chan error, 1)
			go func() { done <- NewEngine().Check(b, p, board.A1, board.H8) }()
			select {
			case err := <-done:
				if !errors.Is(err, ErrIllegalMove) {
					t.Errorf("err = %v, want ErrIllegalMove", err)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("script ran past its instruction budget")
			}
		})
	}
}
