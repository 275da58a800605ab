// Package puzzles provides puzzle loading for the patrol simulator.
// This package depends on patrol but patrol does not depend on puzzles.
package puzzles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles/formats"
)

// ErrNotFound is returned by LoadByID when no file carries the ID.
var ErrNotFound = errors.New("puzzle not found")

// Puzzle represents a complete puzzle definition.
type Puzzle struct {
	ID       string
	Name     string
	Layout   *patrol.Layout
	Expect   formats.Expect
	Metadata map[string]string
	FilePath string // Empty for built-in puzzles
}

// FromFormat converts a parsed puzzle.
func FromFormat(p formats.Puzzle, path string) Puzzle {
	return Puzzle{
		ID:       p.ID,
		Name:     p.Name,
		Layout:   p.Layout,
		Expect:   p.Expect,
		Metadata: p.Metadata,
		FilePath: path,
	}
}

// MismatchError reports an answer that differs from the puzzle's expectation.
type MismatchError struct {
	PuzzleID string
	Part     string
	Expected int
	Got      int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("puzzle %s: %s expected %d, got %d", e.PuzzleID, e.Part, e.Expected, e.Got)
}

// CheckVisited compares a part one answer with the expectation, if any.
func (p *Puzzle) CheckVisited(got int) error {
	if p.Expect.Visited != nil && *p.Expect.Visited != got {
		return &MismatchError{PuzzleID: p.ID, Part: "visited", Expected: *p.Expect.Visited, Got: got}
	}
	return nil
}

// CheckObstructions compares a part two answer with the expectation, if any.
func (p *Puzzle) CheckObstructions(got int) error {
	if p.Expect.Obstructions != nil && *p.Expect.Obstructions != got {
		return &MismatchError{PuzzleID: p.ID, Part: "obstructions", Expected: *p.Expect.Obstructions, Got: got}
	}
	return nil
}

// Loader handles loading puzzles from a directory.
type Loader struct {
	Root string

	// OnSkip, if set, is called for every file LoadAll could not parse.
	OnSkip func(path string, err error)
}

// NewLoader creates a new puzzle loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all puzzle files.
// Returns puzzles sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Puzzle, error) {
	var puzzles []Puzzle

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		puzzle, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			if l.OnSkip != nil {
				l.OnSkip(path, err)
			}
			return nil
		}

		puzzles = append(puzzles, puzzle)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(puzzles, func(i, j int) bool {
		return puzzles[i].ID < puzzles[j].ID
	})

	return puzzles, nil
}

// LoadFile loads a single puzzle file.
func (l *Loader) LoadFile(path string) (Puzzle, error) {
	return LoadFile(path)
}

// LoadFile loads a single puzzle file by extension.
// Raw .txt maps take their ID from the file name.
func LoadFile(path string) (Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Puzzle{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return Puzzle{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return FromFormat(parsed, path), nil
}

// LoadByID loads a specific puzzle by ID.
func (l *Loader) LoadByID(id string) (Puzzle, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return Puzzle{}, err
	}

	for _, p := range puzzles {
		if p.ID == id {
			return p, nil
		}
	}

	return Puzzle{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all puzzle IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(puzzles))
	for i, p := range puzzles {
		ids[i] = p.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext, name string) (formats.Puzzle, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".txt":
		return formats.ParseText(name, data)
	default:
		return formats.Puzzle{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
