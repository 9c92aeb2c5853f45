package command

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   Command
	}{
		{"move", []string{"move", "rook", "B1"}, Command{Verb: VerbMove, Piece: "rook", Dest: "B1"}},
		{"move extra tokens", []string{"move", "rook", "B1", "now"}, Command{Verb: VerbMove, Piece: "rook", Dest: "B1"}},
		{"upper-case verb", []string{"MOVE", "Rook", "b1"}, Command{Verb: VerbMove, Piece: "Rook", Dest: "b1"}},
		{"quit", []string{"quit"}, Command{Verb: VerbQuit}},
		{"exit", []string{"Exit"}, Command{Verb: VerbQuit}},
		{"undo", []string{"undo"}, Command{Verb: VerbUndo}},
		{"moves", []string{"moves", "rook"}, Command{Verb: VerbMoves, Piece: "rook"}},
		{"pieces", []string{"pieces"}, Command{Verb: VerbPieces}},
		{"show", []string{"SHOW"}, Command{Verb: VerbShow}},
		{"help", []string{"help"}, Command{Verb: VerbHelp}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.tokens)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.tokens, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.tokens, got, tc.want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, tokens := range [][]string{
		nil,
		{"jump", "rook", "B1"},
		{"move", "rook"},
		{"move"},
		{"moves"},
	} {
		if _, err := Parse(tokens); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("Parse(%q) err = %v, want ErrUnknownCommand", tokens, err)
		}
	}
}

func TestIsQuit(t *testing.T) {
	if !IsQuit([]string{"move", "rook", "B1", "quit"}) {
		t.Error("trailing quit not detected")
	}
	if IsQuit([]string{"move", "rook", "B1"}) {
		t.Error("quit detected in a plain move")
	}
}

func TestVerbString(t *testing.T) {
	for name, v := range verbNames {
		if name == "exit" {
			continue
		}
		if v.String() != name {
			t.Errorf("%d.String() = %q, want %q", v, v.String(), name)
		}
	}
}
