package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/hailam/gridchess/internal/board"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshot(t *testing.T) {
	s := openTest(t)

	b, err := board.NewBoardFromLayout("rook@A1,king/white@E1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot("game1", b.Snapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	rec, err := s.LoadSnapshot("game1")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	restored, err := board.FromSnapshot(rec.Snapshot)
	if err != nil {
		t.Fatal(err)
	}
	if restored.String() != b.String() {
		t.Errorf("restored board differs:\n%s", restored)
	}
	if rec.Updated.IsZero() {
		t.Error("Updated not set")
	}

	if _, err := s.LoadSnapshot("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("missing session err = %v", err)
	}
	if err := s.SaveSnapshot("a/b", b.Snapshot()); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("slash in id err = %v", err)
	}
}

func TestMoveLog(t *testing.T) {
	s := openTest(t)

	for i, m := range []MoveEntry{
		{Piece: "rook", From: "A1", To: "B1"},
		{Piece: "rook", From: "B1", To: "B5"},
		{Piece: "rook", From: "B5", To: "H5", Captured: "knight"},
	} {
		seq, err := s.AppendMove("g", m)
		if err != nil {
			t.Fatalf("AppendMove: %v", err)
		}
		if seq != i+1 {
			t.Errorf("seq = %d, want %d", seq, i+1)
		}
	}

	moves, err := s.Moves("g")
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 3 || moves[2].Captured != "knight" || moves[0].To != "B1" {
		t.Fatalf("moves = %+v", moves)
	}

	if err := s.PopMove("g"); err != nil {
		t.Fatal(err)
	}
	moves, _ = s.Moves("g")
	if len(moves) != 2 {
		t.Fatalf("%d moves after pop", len(moves))
	}
	seq, err := s.AppendMove("g", MoveEntry{Piece: "rook", From: "B5", To: "B8"})
	if err != nil || seq != 3 {
		t.Errorf("append after pop: seq %d, err %v", seq, err)
	}

	if other, _ := s.Moves("g2"); len(other) != 0 {
		t.Errorf("unrelated session has %d moves", len(other))
	}
}

func TestSessionsAndDelete(t *testing.T) {
	s := openTest(t)
	b := board.NewBoard()

	for _, id := range []string{"alpha", "beta"} {
		if err := s.SaveSnapshot(id, b.Snapshot()); err != nil {
			t.Fatal(err)
		}
		if _, err := s.AppendMove(id, MoveEntry{Piece: "x", From: "A1", To: "A2"}); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := s.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "alpha" || ids[1] != "beta" {
		t.Errorf("sessions = %v", ids)
	}

	if err := s.DeleteSession("alpha"); err != nil {
		t.Fatal(err)
	}
	ids, _ = s.Sessions()
	if len(ids) != 1 || ids[0] != "beta" {
		t.Errorf("sessions after delete = %v", ids)
	}
	if moves, _ := s.Moves("alpha"); len(moves) != 0 {
		t.Errorf("deleted session kept %d moves", len(moves))
	}
}

func TestStats(t *testing.T) {
	s := openTest(t)

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sessions != 0 || stats.CaptureRate() != 0 {
		t.Errorf("fresh stats = %+v", stats)
	}

	_ = s.RecordSession(SessionSummary{Moves: 8, Captures: 2, Undos: 1})
	_ = s.RecordSession(SessionSummary{Moves: 2, Rejected: 3})

	stats, err = s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sessions != 2 || stats.Moves != 10 || stats.Rejected != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if rate := stats.CaptureRate(); rate != 20 {
		t.Errorf("Expected 20%% capture rate, got %.2f%%", rate)
	}
}

func TestDataPaths(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := GetDatabaseDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("Database directory was not created: %v", err)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveSnapshot("disk", board.NewBoard().Snapshot()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.LoadSnapshot("disk"); err != nil {
		t.Errorf("snapshot lost across reopen: %v", err)
	}
}
