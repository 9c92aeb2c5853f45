// Package session runs the interactive console: it reads lines, applies
// them as commands and redraws the board.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/hailam/gridchess/internal/board"
	"github.com/hailam/gridchess/internal/command"
	"github.com/hailam/gridchess/internal/render"
	"github.com/hailam/gridchess/internal/storage"
)

// Prompt is printed before each line is read.
const Prompt = ">: "

// Store persists a session as it is played. *storage.Storage implements it.
type Store interface {
	SaveSnapshot(id string, snap board.Snapshot) error
	AppendMove(id string, m storage.MoveEntry) (int, error)
	PopMove(id string) error
	RecordSession(sum storage.SessionSummary) error
}

// Options configures a Session.
type Options struct {
	ID    string // session id used as the storage key
	Empty string // empty-square marker, default "-"
	Store Store  // nil disables persistence
}

// Session drives an interpreter from line input.
type Session struct {
	mu      sync.Mutex
	in      *command.Interpreter
	out     io.Writer
	errOut  io.Writer
	opts    Options
	summary storage.SessionSummary
}

// New creates a session writing the board and command output to out and
// rejected commands to errOut.
func New(in *command.Interpreter, out, errOut io.Writer, opts Options) *Session {
	if opts.Empty == "" {
		opts.Empty = board.EmptyMarker
	}
	return &Session{in: in, out: out, errOut: errOut, opts: opts}
}

// Summary returns the counters accumulated so far.
func (s *Session) Summary() storage.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Run reads commands from r until a quit token or end of input. The board
// is drawn before every prompt. A line carrying a quit token after a
// command still runs that command first.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	s.saveInitial()
	defer s.finish()

	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.draw(); err != nil {
			return err
		}
		fmt.Fprint(s.out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		res, err := s.Handle(ctx, tokens)
		switch {
		case err != nil:
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		case res.Output != "":
			fmt.Fprintln(s.out, res.Output)
		}

		if res.Quit || command.IsQuit(tokens) {
			return nil
		}
	}
}

// Handle executes one tokenized line. It is safe for concurrent use; each
// command commits fully before the next starts.
func (s *Session) Handle(ctx context.Context, tokens []string) (command.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.in.ExecuteTokens(ctx, tokens)
	if err != nil {
		s.summary.Rejected++
		return res, err
	}

	switch res.Verb {
	case command.VerbMove:
		s.summary.Moves++
		if res.Move.Captured != nil {
			s.summary.Captures++
		}
		s.recordMove(*res.Move)
	case command.VerbUndo:
		s.summary.Undos++
		s.popMove()
	}
	return res, nil
}

func (s *Session) draw() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Text(s.out, s.in.Board(), s.opts.Empty)
}

func (s *Session) recordMove(rec command.Record) {
	if s.opts.Store == nil {
		return
	}
	entry := storage.MoveEntry{
		Piece: rec.Piece,
		From:  rec.From.String(),
		To:    rec.To.String(),
		At:    time.Now(),
	}
	if rec.Captured != nil {
		entry.Captured = rec.Captured.Name
	}
	if _, err := s.opts.Store.AppendMove(s.opts.ID, entry); err != nil {
		log.Printf("Warning: Failed to log move %s: %v", rec, err)
	}
	s.saveSnapshot()
}

func (s *Session) popMove() {
	if s.opts.Store == nil {
		return
	}
	if err := s.opts.Store.PopMove(s.opts.ID); err != nil {
		log.Printf("Warning: Failed to drop logged move: %v", err)
	}
	s.saveSnapshot()
}

func (s *Session) saveSnapshot() {
	if err := s.opts.Store.SaveSnapshot(s.opts.ID, s.in.Board().Snapshot()); err != nil {
		log.Printf("Warning: Failed to save session %s: %v", s.opts.ID, err)
	}
}

func (s *Session) saveInitial() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.Store != nil {
		s.saveSnapshot()
	}
}

func (s *Session) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.Store == nil {
		return
	}
	if err := s.opts.Store.RecordSession(s.summary); err != nil {
		log.Printf("Warning: Failed to record session stats: %v", err)
	}
}
