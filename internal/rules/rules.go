// Package rules decides whether a piece may move between two squares.
//
// Each piece is dispatched to a Rule by its "movement" attribute, then by
// its name, then to the engine's fallback. Checks shared by every rule
// (distinct on-board squares, no landing on a friendly piece) run first.
package rules

import (
	"errors"
	"fmt"

	"github.com/hailam/gridchess/internal/board"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrNoRule      = errors.New("no movement rule")
)

// View is the read-only board surface rules consult.
type View interface {
	PieceAt(sq board.Square) (*board.Piece, bool)
	Occupied(sq board.Square) bool
}

// Rule decides one movement class. It returns nil when the move is allowed.
type Rule interface {
	Allows(v View, p *board.Piece, from, to board.Square) error
}

// Engine dispatches legality checks to registered rules.
type Engine struct {
	rules    map[string]Rule
	fallback Rule
}

// NewEngine returns an engine with the built-in rule classes registered.
// Pieces without a movement attribute fall back to Free.
func NewEngine() *Engine {
	e := &Engine{
		rules:    make(map[string]Rule),
		fallback: Free{},
	}
	e.Register(board.MoveStep, Step{})
	e.Register(board.MoveSlide, Slide{})
	e.Register(board.MoveFree, Free{})
	e.Register(board.MoveScript, Script{})
	return e
}

// Register binds a rule to a movement kind or piece name.
func (e *Engine) Register(key string, r Rule) {
	e.rules[key] = r
}

// SetFallback sets the rule used when nothing else matches. A nil fallback
// makes unmatched pieces immovable.
func (e *Engine) SetFallback(r Rule) {
	e.fallback = r
}

// RuleFor returns the rule that governs p.
func (e *Engine) RuleFor(p *board.Piece) (Rule, bool) {
	if r, ok := e.rules[p.AttrFirst(board.AttrMovement)]; ok {
		return r, true
	}
	if r, ok := e.rules[p.Name]; ok {
		return r, true
	}
	return e.fallback, e.fallback != nil
}

// Check returns nil if p may move from from to to, or an error wrapping
// ErrIllegalMove that says why not.
func (e *Engine) Check(v View, p *board.Piece, from, to board.Square) error {
	if !from.IsValid() || !to.IsValid() {
		return illegal(p, from, to, "off board")
	}
	if from == to {
		return illegal(p, from, to, "piece must leave its square")
	}
	if occupant, ok := v.PieceAt(to); ok && !Opposed(p, occupant) {
		return illegal(p, from, to, "blocked by "+occupant.Name)
	}

	r, ok := e.RuleFor(p)
	if !ok {
		return fmt.Errorf("%w: %s: %w", ErrIllegalMove, p.Name, ErrNoRule)
	}
	if err := r.Allows(v, p, from, to); err != nil {
		if errors.Is(err, ErrIllegalMove) {
			return err
		}
		return fmt.Errorf("%w: %s %s->%s: %w", ErrIllegalMove, p.Name, from, to, err)
	}
	return nil
}

// IsLegal reports whether Check passes.
func (e *Engine) IsLegal(v View, p *board.Piece, from, to board.Square) bool {
	return e.Check(v, p, from, to) == nil
}

// Targets returns every square p could legally move to from its current square.
func (e *Engine) Targets(v View, p *board.Piece) board.Bitboard {
	from, on := p.Square()
	if !on {
		return board.Empty
	}
	var targets board.Bitboard
	for to := board.A1; to <= board.H8; to++ {
		if e.IsLegal(v, p, from, to) {
			targets = targets.Set(to)
		}
	}
	return targets
}

// Opposed reports whether two pieces are on different sides. Pieces without
// a side attribute are never opposed, so they can block but not capture.
func Opposed(a, b *board.Piece) bool {
	sa, sb := a.Side(), b.Side()
	return sa != "" && sb != "" && sa != sb
}

func illegal(p *board.Piece, from, to board.Square, reason string) error {
	return fmt.Errorf("%w: %s %s->%s: %s", ErrIllegalMove, p.Name, from, to, reason)
}
