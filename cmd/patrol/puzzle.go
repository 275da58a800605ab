package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles"
	"github.com/vovakirdan/guard-patrol/internal/registry"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var errUnknownPuzzle = errors.New("unknown puzzle")

// resolvePuzzle finds a puzzle by built-in ID, then as a file path, then by ID in dir.
func resolvePuzzle(arg, dir string) (puzzles.Puzzle, error) {
	if registry.Exists(arg) {
		return registry.Create(arg)
	}

	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return puzzles.LoadFile(arg)
	}

	if dir != "" {
		p, err := puzzles.NewLoader(dir).LoadByID(arg)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, puzzles.ErrNotFound) {
			return puzzles.Puzzle{}, err
		}
	}

	return puzzles.Puzzle{}, fmt.Errorf("%w %q", errUnknownPuzzle, arg)
}

// mustResolvePuzzle resolves a puzzle or exits with the CLI error contract.
func mustResolvePuzzle(arg, dir string) puzzles.Puzzle {
	p, err := resolvePuzzle(arg, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUnknownPuzzle) {
			fmt.Fprintln(os.Stderr, "Run 'patrol list' to see available puzzles, or pass a map file.")
		}
		os.Exit(1)
	}
	return p
}

// openStore opens the run history database, logging instead of failing.
// Returns nil when history is unavailable.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("run history unavailable", "db", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}
