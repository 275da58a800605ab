package puzzles_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles"
	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles/formats"
)

// getTestdataPath returns path to testdata/puzzles.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	return filepath.Join(dir, "testdata", "puzzles")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := puzzles.NewLoader(getTestdataPath())

	var skipped []string
	loader.OnSkip = func(path string, err error) {
		skipped = append(skipped, filepath.Base(path))
	}

	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("expected 2 puzzles, got %d", len(all))
	}

	// Should be sorted by ID
	if all[0].ID != "corridor" || all[1].ID != "lab01" {
		t.Errorf("expected [corridor lab01], got [%s %s]", all[0].ID, all[1].ID)
	}

	if len(skipped) != 1 || skipped[0] != "twoguards.yaml" {
		t.Errorf("expected twoguards.yaml to be skipped, got %v", skipped)
	}
}

func TestLoaderLoadYAML(t *testing.T) {
	loader := puzzles.NewLoader(getTestdataPath())

	p, err := loader.LoadByID("lab01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if p.Name != "Prototype Lab" {
		t.Errorf("expected Name 'Prototype Lab', got %q", p.Name)
	}
	if p.Layout.Grid.W != 10 || p.Layout.Grid.H != 10 {
		t.Errorf("expected 10x10, got %dx%d", p.Layout.Grid.W, p.Layout.Grid.H)
	}
	if p.Layout.Start.At != patrol.C(4, 6) {
		t.Errorf("expected start (4,6), got %v", p.Layout.Start.At)
	}
	if p.Expect.Visited == nil || *p.Expect.Visited != 41 {
		t.Errorf("expected visited expectation 41, got %v", p.Expect.Visited)
	}
	if p.Expect.Obstructions == nil || *p.Expect.Obstructions != 6 {
		t.Errorf("expected obstructions expectation 6, got %v", p.Expect.Obstructions)
	}
	if p.Metadata["author"] != "lab" {
		t.Errorf("expected metadata author 'lab', got %q", p.Metadata["author"])
	}
	if filepath.Base(p.FilePath) != "lab01.yaml" {
		t.Errorf("expected FilePath to end in lab01.yaml, got %q", p.FilePath)
	}
}

func TestLoaderLoadText(t *testing.T) {
	p, err := puzzles.LoadFile(filepath.Join(getTestdataPath(), "corridor.txt"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if p.ID != "corridor" || p.Name != "corridor" {
		t.Errorf("expected ID and Name 'corridor', got %q/%q", p.ID, p.Name)
	}
	if p.Layout.Start.Facing != patrol.DirRight {
		t.Errorf("expected guard facing Right, got %v", p.Layout.Start.Facing)
	}
	if p.Expect.Visited != nil || p.Expect.Obstructions != nil {
		t.Error("text puzzles carry no expectations")
	}
}

func TestLoaderLoadByIDNotFound(t *testing.T) {
	loader := puzzles.NewLoader(getTestdataPath())

	_, err := loader.LoadByID("nope")
	if !errors.Is(err, puzzles.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoaderInvalidFile(t *testing.T) {
	_, err := puzzles.LoadFile(filepath.Join(getTestdataPath(), "broken", "twoguards.yaml"))
	if !errors.Is(err, patrol.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoaderListIDs(t *testing.T) {
	loader := puzzles.NewLoader(getTestdataPath())

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "corridor" || ids[1] != "lab01" {
		t.Errorf("expected [corridor lab01], got %v", ids)
	}
}

func TestPuzzleChecks(t *testing.T) {
	visited, obstructions := 41, 6
	p := puzzles.Puzzle{
		ID:     "lab01",
		Expect: formats.Expect{Visited: &visited, Obstructions: &obstructions},
	}

	if err := p.CheckVisited(41); err != nil {
		t.Errorf("CheckVisited(41): unexpected error %v", err)
	}
	if err := p.CheckObstructions(6); err != nil {
		t.Errorf("CheckObstructions(6): unexpected error %v", err)
	}

	err := p.CheckVisited(40)
	var mismatch *puzzles.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mismatch.Expected != 41 || mismatch.Got != 40 {
		t.Errorf("expected 41/40, got %d/%d", mismatch.Expected, mismatch.Got)
	}

	// No expectation: anything goes.
	empty := puzzles.Puzzle{ID: "free"}
	if err := empty.CheckObstructions(99); err != nil {
		t.Errorf("CheckObstructions without expectation: unexpected error %v", err)
	}
}

func TestParseYAMLMissingID(t *testing.T) {
	_, err := formats.ParseYAML([]byte("name: nameless\nmap: \"^\"\n"))
	if err == nil {
		t.Error("expected error for puzzle without id")
	}
}
