package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/guard-patrol/internal/storage"
)

func TestHistoryShowsStoredRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	base := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	store.SaveRun(storage.Run{PuzzleID: "lab", Outcome: "exited", Visited: 41, Obstructions: 6, CreatedAt: base})
	store.SaveRun(storage.Run{PuzzleID: "lab", Outcome: "exited", Visited: 41, Obstructions: storage.NoObstructions, CreatedAt: base.Add(time.Minute)})
	store.SaveRun(storage.Run{PuzzleID: "custom", Outcome: "cycled", Visited: 8, Obstructions: storage.NoObstructions, CreatedAt: base})

	m := NewHistoryModel(store, 120, 40, "lab")
	if m.Current() != "lab" {
		t.Fatalf("Expected initial puzzle lab, got %q", m.Current())
	}
	if len(m.Runs()) != 2 {
		t.Fatalf("Expected 2 lab runs, got %d", len(m.Runs()))
	}

	rows := runRows(m.Runs())
	if rows[0][3] != "-" || rows[1][3] != "6" {
		t.Errorf("Unexpected loop columns: %q, %q", rows[0][3], rows[1][3])
	}

	if !strings.Contains(m.View(), "2 runs") {
		t.Error("Expected stats line in view")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.Current() != "custom" {
		t.Errorf("Expected tab to wrap to custom, got %q", m.Current())
	}
	if len(m.Runs()) != 1 || m.Runs()[0].Outcome != "cycled" {
		t.Errorf("Unexpected custom runs: %+v", m.Runs())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(HistoryModel)
	if !m.IsGoingBack() || cmd == nil {
		t.Error("Expected esc to go back")
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20, "")
	if len(m.Runs()) != 0 {
		t.Error("Expected no runs without a store")
	}
	if !strings.Contains(m.View(), "disabled") {
		t.Error("Expected disabled message")
	}
}
