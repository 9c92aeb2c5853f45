package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hailam/gridchess/internal/board"
	"github.com/hailam/gridchess/internal/rules"
)

const tracerName = "github.com/hailam/gridchess/internal/command"

// Record is one applied move.
type Record struct {
	Piece    string
	From     board.Square
	To       board.Square
	Captured *board.Piece
}

// String returns the move in "rook A1->B1" form.
func (r Record) String() string {
	s := fmt.Sprintf("%s %s->%s", r.Piece, r.From, r.To)
	if r.Captured != nil {
		s += " x " + r.Captured.Name
	}
	return s
}

// Result describes what an executed command did.
type Result struct {
	Verb   Verb
	Move   *Record // set by move and undo
	Output string  // text for pieces, moves, show and help
	Quit   bool
}

// Interpreter applies commands to a board. It is not safe for concurrent use.
type Interpreter struct {
	board   *board.Board
	engine  *rules.Engine
	history []Record
	tracer  trace.Tracer
}

// NewInterpreter creates an interpreter over b using engine for legality.
func NewInterpreter(b *board.Board, engine *rules.Engine) *Interpreter {
	return &Interpreter{
		board:  b,
		engine: engine,
		tracer: otel.Tracer(tracerName),
	}
}

// Board returns the board being played on.
func (in *Interpreter) Board() *board.Board {
	return in.board
}

// History returns the applied moves, oldest first.
func (in *Interpreter) History() []Record {
	return append([]Record(nil), in.history...)
}

// Execute applies cmd. Every error path leaves the board unchanged.
func (in *Interpreter) Execute(ctx context.Context, cmd Command) (res Result, err error) {
	_, span := in.tracer.Start(ctx, "command."+cmd.Verb.String(), trace.WithAttributes(
		attribute.String("gridchess.piece", cmd.Piece),
		attribute.String("gridchess.dest", cmd.Dest),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	res.Verb = cmd.Verb
	switch cmd.Verb {
	case VerbMove:
		rec, err := in.move(cmd.Piece, cmd.Dest)
		if err != nil {
			return res, err
		}
		res.Move = &rec
	case VerbUndo:
		rec, err := in.Undo()
		if err != nil {
			return res, err
		}
		res.Move = &rec
	case VerbPieces:
		res.Output = in.listPieces()
	case VerbMoves:
		out, err := in.listMoves(cmd.Piece)
		if err != nil {
			return res, err
		}
		res.Output = out
	case VerbShow:
		res.Output = strings.TrimSuffix(in.board.String(), "\n")
	case VerbHelp:
		res.Output = Usage
	case VerbQuit:
		res.Quit = true
	default:
		return res, fmt.Errorf("%w: verb %d", ErrUnknownCommand, cmd.Verb)
	}
	return res, nil
}

// ExecuteTokens parses and executes one tokenized line.
func (in *Interpreter) ExecuteTokens(ctx context.Context, tokens []string) (Result, error) {
	cmd, err := Parse(tokens)
	if err != nil {
		return Result{}, err
	}
	return in.Execute(ctx, cmd)
}

func (in *Interpreter) move(name, dest string) (Record, error) {
	p, ok := in.board.PieceByName(name)
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrPieceNotFound, name)
	}
	to, err := board.ParseSquare(dest)
	if err != nil {
		return Record{}, err
	}
	from, on := p.Square()
	if !on {
		return Record{}, fmt.Errorf("%w: %s is not on the board", ErrPieceNotFound, name)
	}
	if err := in.engine.Check(in.board, p, from, to); err != nil {
		return Record{}, err
	}

	rec := Record{Piece: name, From: from, To: to}
	if occupant, ok := in.board.PieceAt(to); ok {
		if _, err := in.board.Remove(occupant.Name); err != nil {
			return Record{}, err
		}
		rec.Captured = occupant
	}
	if err := in.board.Relocate(from, to); err != nil {
		if rec.Captured != nil {
			// Put the captured piece back so the board is unchanged.
			if perr := in.board.PlaceAt(rec.Captured, to); perr != nil {
				return Record{}, errors.Join(err, perr)
			}
		}
		return Record{}, err
	}

	in.history = append(in.history, rec)
	return rec, nil
}

// Undo reverts the most recent move, restoring any captured piece.
func (in *Interpreter) Undo() (Record, error) {
	if len(in.history) == 0 {
		return Record{}, ErrNothingToUndo
	}
	rec := in.history[len(in.history)-1]

	if err := in.board.Relocate(rec.To, rec.From); err != nil {
		return Record{}, fmt.Errorf("undo %s: %w", rec, err)
	}
	if rec.Captured != nil {
		if err := in.board.PlaceAt(rec.Captured, rec.To); err != nil {
			return Record{}, fmt.Errorf("undo %s: %w", rec, err)
		}
	}

	in.history = in.history[:len(in.history)-1]
	return rec, nil
}

func (in *Interpreter) listPieces() string {
	var sb strings.Builder
	for _, p := range in.board.Pieces() {
		sq, _ := p.Square()
		fmt.Fprintf(&sb, "%s %s %s", p.Glyph, p.Name, sq)
		if side := p.Side(); side != "" {
			fmt.Fprintf(&sb, " (%s)", side)
		}
		sb.WriteByte('\n')
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (in *Interpreter) listMoves(name string) (string, error) {
	p, ok := in.board.PieceByName(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPieceNotFound, name)
	}
	targets := in.engine.Targets(in.board, p)
	if targets == board.Empty {
		return name + ": no moves", nil
	}
	names := make([]string, 0, targets.PopCount())
	for _, sq := range targets.Squares() {
		names = append(names, sq.String())
	}
	return name + ": " + strings.Join(names, " "), nil
}
