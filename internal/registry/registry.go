// Package registry provides a global registry of built-in puzzles.
// Puzzle sets register themselves in init() functions, allowing the CLI
// and the SSH server to discover puzzles without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles"
)

// PuzzleInfo contains metadata about a registered puzzle.
type PuzzleInfo struct {
	ID    string
	Title string
	W, H  int
}

// Factory is a function that builds a fresh copy of a puzzle.
type Factory func() (puzzles.Puzzle, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]PuzzleInfo)
	mu        sync.RWMutex
)

// Register adds a puzzle factory to the registry.
// Typically called from an init() function.
// Panics if a puzzle with the same ID is already registered or if the
// factory fails: built-in puzzles are compiled in and must parse.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: puzzle %q already registered", id))
	}

	// Get title and size by creating a temporary instance
	p, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: puzzle %q: %v", id, err))
	}

	factories[id] = f
	infos[id] = PuzzleInfo{
		ID:    id,
		Title: p.Name,
		W:     p.Layout.Grid.W,
		H:     p.Layout.Grid.H,
	}
}

// List returns information about all registered puzzles, sorted by ID.
func List() []PuzzleInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PuzzleInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a registered puzzle by its ID.
// Returns an error if the puzzle ID is not registered.
func Create(id string) (puzzles.Puzzle, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return puzzles.Puzzle{}, fmt.Errorf("registry: unknown puzzle %q", id)
	}

	return f()
}

// Exists checks if a puzzle with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
