package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	id, err := store.SaveRun(Run{
		PuzzleID:     "lab",
		Width:        10,
		Height:       10,
		Outcome:      "exited",
		Visited:      41,
		Obstructions: 6,
		Workers:      4,
		Duration:     12 * time.Millisecond,
		CreatedAt:    base,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("SaveRun() returned invalid uuid %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("Expected UUIDv7, got version %d", parsed.Version())
	}

	runs, err := store.RunsForPuzzle("lab", 10)
	if err != nil {
		t.Fatalf("RunsForPuzzle() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != id || got.Visited != 41 || got.Obstructions != 6 || got.Workers != 4 {
		t.Errorf("Unexpected run: %+v", got)
	}
	if got.Duration != 12*time.Millisecond {
		t.Errorf("Expected duration 12ms, got %v", got.Duration)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("Expected created at %v, got %v", base, got.CreatedAt)
	}
	if got.Width != 10 || got.Height != 10 || got.Outcome != "exited" {
		t.Errorf("Unexpected puzzle dimensions or outcome: %+v", got)
	}
}

func TestStoreSkippedPartTwo(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(Run{
		PuzzleID:     "carousel",
		Outcome:      "cycled",
		Visited:      8,
		Obstructions: NoObstructions,
		Error:        "baseline walk never exits",
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.LatestRun("carousel")
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if run == nil {
		t.Fatal("Expected a run")
	}
	if run.HasObstructions() {
		t.Errorf("Expected no obstruction count, got %d", run.Obstructions)
	}
	if run.Error != "baseline walk never exits" {
		t.Errorf("Expected error text to round trip, got %q", run.Error)
	}
}

func TestStoreRejectsMissingPuzzleID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{Visited: 1}); err == nil {
		t.Error("Expected error for run without puzzle id")
	}
}

func TestStoreRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.SaveRun(Run{
			PuzzleID:  "lab",
			Visited:   i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun(Run{PuzzleID: "corridor", Visited: 99, CreatedAt: base.Add(-time.Hour)})

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first: 4, 3, 2
	if runs[0].Visited != 4 || runs[1].Visited != 3 || runs[2].Visited != 2 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	all, err := store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected default limit to cover all 6 runs, got %d", len(all))
	}
	if all[5].PuzzleID != "corridor" {
		t.Errorf("Expected oldest run last, got %q", all[5].PuzzleID)
	}
}

func TestStoreLatestRunMissing(t *testing.T) {
	store := openTestStore(t)

	run, err := store.LatestRun("nope")
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Expected nil run for unknown puzzle, got %+v", run)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{PuzzleID: "lab"})
	store.SaveRun(Run{PuzzleID: "lab"})
	store.SaveRun(Run{PuzzleID: "corridor"})

	n, err := store.ClearRuns("lab")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 deleted runs, got %d", n)
	}

	labRuns, _ := store.RunsForPuzzle("lab", 10)
	if len(labRuns) != 0 {
		t.Errorf("Expected 0 lab runs after clear, got %d", len(labRuns))
	}

	corridorRuns, _ := store.RunsForPuzzle("corridor", 10)
	if len(corridorRuns) != 1 {
		t.Errorf("Corridor runs should not be affected by clearing lab")
	}

	n, err = store.ClearRuns("")
	if err != nil {
		t.Fatalf("ClearRuns(\"\") failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 deleted run, got %d", n)
	}
}

func TestStorePuzzleStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.PuzzleStats("lab")
	if err != nil {
		t.Fatalf("PuzzleStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.Fastest != 0 || !empty.LastRun.IsZero() {
		t.Errorf("Expected zero stats for unsolved puzzle, got %+v", empty)
	}

	base := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	store.SaveRun(Run{PuzzleID: "lab", Duration: 10 * time.Millisecond, CreatedAt: base})
	store.SaveRun(Run{PuzzleID: "lab", Duration: 30 * time.Millisecond, CreatedAt: base.Add(time.Minute)})
	store.SaveRun(Run{PuzzleID: "corridor", Duration: 5 * time.Millisecond, CreatedAt: base})

	stats, err := store.PuzzleStats("lab")
	if err != nil {
		t.Fatalf("PuzzleStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.Runs)
	}
	if stats.Fastest != 10*time.Millisecond {
		t.Errorf("Expected fastest 10ms, got %v", stats.Fastest)
	}
	if stats.Average != 20*time.Millisecond {
		t.Errorf("Expected average 20ms, got %v", stats.Average)
	}
	if !stats.LastRun.Equal(base.Add(time.Minute)) {
		t.Errorf("Expected last run %v, got %v", base.Add(time.Minute), stats.LastRun)
	}

	all, err := store.AllPuzzleStats()
	if err != nil {
		t.Fatalf("AllPuzzleStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 puzzles, got %d", len(all))
	}
	if all["corridor"].Runs != 1 || all["lab"].Runs != 2 {
		t.Errorf("Unexpected aggregated stats: lab=%+v corridor=%+v", all["lab"], all["corridor"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
