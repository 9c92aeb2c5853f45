// Package command parses tokenized player instructions and applies them
// to a board.
package command

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"

	"github.com/hailam/gridchess/internal/board"
)

var (
	ErrUnknownCommand = errors.New("unrecognized command")
	ErrPieceNotFound  = board.ErrPieceNotFound
	ErrNothingToUndo  = errors.New("nothing to undo")
)

// Verb identifies a command.
type Verb int

const (
	VerbMove Verb = iota
	VerbUndo
	VerbPieces
	VerbMoves
	VerbShow
	VerbHelp
	VerbQuit
)

var verbNames = map[string]Verb{
	"move":   VerbMove,
	"undo":   VerbUndo,
	"pieces": VerbPieces,
	"moves":  VerbMoves,
	"show":   VerbShow,
	"help":   VerbHelp,
	"quit":   VerbQuit,
	"exit":   VerbQuit,
}

// String returns the canonical verb name.
func (v Verb) String() string {
	switch v {
	case VerbMove:
		return "move"
	case VerbUndo:
		return "undo"
	case VerbPieces:
		return "pieces"
	case VerbMoves:
		return "moves"
	case VerbShow:
		return "show"
	case VerbHelp:
		return "help"
	case VerbQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one parsed instruction.
type Command struct {
	Verb  Verb
	Piece string // move, moves
	Dest  string // move; parsed when executed
}

// Usage lists the accepted commands.
const Usage = `commands:
  move <piece> <square>   move a piece, e.g. "move rook B1"
  moves <piece>           list the squares a piece can reach
  pieces                  list pieces and their squares
  show                    draw the board
  undo                    take back the last move
  help                    show this text
  quit | exit             end the session`

// foldVerb case-folds a verb token. Casers are stateful, so one is made per call.
func foldVerb(s string) string {
	return cases.Fold().String(s)
}

// Parse recognizes a tokenized command. Verbs are case-insensitive, piece
// names are not. Tokens after the required ones are ignored.
func Parse(tokens []string) (Command, error) {
	if len(tokens) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}

	verb, ok := verbNames[foldVerb(tokens[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0])
	}

	cmd := Command{Verb: verb}
	switch verb {
	case VerbMove:
		if len(tokens) < 3 {
			return Command{}, fmt.Errorf("%w: usage: move <piece> <square>", ErrUnknownCommand)
		}
		cmd.Piece, cmd.Dest = tokens[1], tokens[2]
	case VerbMoves:
		if len(tokens) < 2 {
			return Command{}, fmt.Errorf("%w: usage: moves <piece>", ErrUnknownCommand)
		}
		cmd.Piece = tokens[1]
	}
	return cmd, nil
}

// IsQuit reports whether the tokens contain a terminate token anywhere.
func IsQuit(tokens []string) bool {
	for _, tok := range tokens {
		if v, ok := verbNames[foldVerb(tok)]; ok && v == VerbQuit {
			return true
		}
	}
	return false
}
