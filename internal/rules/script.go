package rules

import (
	"errors"
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/hailam/gridchess/internal/board"
)

// ScriptBudget is the number of Lua instructions a script may run per check,
// loading included.
const ScriptBudget = 100000

// Globals removed from the base library: scripts must not read files or
// compile further chunks.
var scriptDenied = []string{"dofile", "loadfile", "load", "loadstring", "require"}

// Script evaluates a Lua predicate stored in the piece's script attribute.
// The chunk must define
//
//	function allow(fx, fy, tx, ty)
//
// returning true when the move is permitted. Coordinates are 0-indexed.
// The chunk may call occupied(x, y) and between_clear(fx, fy, tx, ty).
type Script struct{}

// Allows implements Rule.
func (Script) Allows(v View, p *board.Piece, from, to board.Square) error {
	src := p.AttrFirst(board.AttrScript)
	if src == "" {
		return errors.New("script piece has no script attribute")
	}

	state := newScriptState(v)
	if err := lua.DoString(state, src); err != nil {
		return fmt.Errorf("load script for %s: %w", p.Name, err)
	}

	state.Global("allow")
	if !state.IsFunction(-1) {
		state.Pop(1)
		return fmt.Errorf("script for %s does not define allow", p.Name)
	}
	state.PushInteger(from.X())
	state.PushInteger(from.Y())
	state.PushInteger(to.X())
	state.PushInteger(to.Y())
	if err := state.ProtectedCall(4, 1, 0); err != nil {
		return fmt.Errorf("run script for %s: %w", p.Name, err)
	}
	ok := state.ToBoolean(-1)
	state.Pop(1)

	if !ok {
		return illegal(p, from, to, "rejected by script")
	}
	return nil
}

func newScriptState(v View) *lua.State {
	state := lua.NewState()
	for _, lib := range []lua.RegistryFunction{
		{Name: "_G", Function: lua.BaseOpen},
		{Name: "math", Function: lua.MathOpen},
		{Name: "string", Function: lua.StringOpen},
		{Name: "table", Function: lua.TableOpen},
	} {
		lua.Require(state, lib.Name, lib.Function, true)
		state.Pop(1)
	}
	for _, name := range scriptDenied {
		state.PushNil()
		state.SetGlobal(name)
	}
	lua.SetDebugHook(state, func(l *lua.State, _ lua.Debug) {
		l.PushString(fmt.Sprintf("instruction budget of %d exceeded", ScriptBudget))
		l.Error()
	}, lua.MaskCount, ScriptBudget)

	state.Register("occupied", func(l *lua.State) int {
		sq, ok := luaSquare(l, 1)
		l.PushBoolean(ok && v.Occupied(sq))
		return 1
	})
	state.Register("between_clear", func(l *lua.State) int {
		from, ok1 := luaSquare(l, 1)
		to, ok2 := luaSquare(l, 3)
		if !ok1 || !ok2 {
			l.PushBoolean(false)
			return 1
		}
		empty := true
		board.Between(from, to).ForEach(func(sq board.Square) {
			if v.Occupied(sq) {
				empty = false
			}
		})
		l.PushBoolean(empty)
		return 1
	})
	return state
}

// luaSquare reads an (x, y) argument pair starting at index.
func luaSquare(l *lua.State, index int) (board.Square, bool) {
	x := lua.CheckInteger(l, index)
	y := lua.CheckInteger(l, index+1)
	if x < 0 || x >= board.Width || y < 0 || y >= board.Height {
		return board.NoSquare, false
	}
	return board.NewSquare(x, y), true
}
