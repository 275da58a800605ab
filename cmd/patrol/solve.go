package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	flagPart    int
	flagWorkers int
	flagDraw    bool
	flagList    bool
	flagNoSave  bool
	flagDir     string
)

var solveCmd = &cobra.Command{
	Use:   "solve <puzzle|file>",
	Short: "Solve a puzzle",
	Long: `Walk the guard across a puzzle and report:

  Part 1 - the number of distinct cells the guard visits before leaving
  Part 2 - the number of cells where one extra wall traps the guard in a loop

The argument is a built-in puzzle ID, a map file (.txt, .yaml) or the ID of
a puzzle in --dir. A puzzle that declares expected answers fails when the
answers differ.

Examples:
  patrol solve lab
  patrol solve ./input.txt --part 1
  patrol solve courtyard --workers 4 --list
  patrol solve lab --draw`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagPart, "part", 0, "Solve only part 1 or part 2 (0 = both)")
	solveCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent walks for part 2 (overrides config)")
	solveCmd.Flags().BoolVar(&flagDraw, "draw", false, "Print the map with the guard's path")
	solveCmd.Flags().BoolVar(&flagList, "list", false, "List the loop obstruction cells")
	solveCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in history")
	solveCmd.Flags().StringVar(&flagDir, "dir", "", "Directory of puzzle files to search for the ID")
}

// solveReport is the outcome of one solve.
type solveReport struct {
	baseline     patrol.Result
	hits         []patrol.Coord
	walked       bool // Baseline finished, exited or looping
	searched     bool
	workers      int
	baselineTime time.Duration
	searchTime   time.Duration
	err          error
}

func runSolve(cmd *cobra.Command, args []string) {
	if flagPart < 0 || flagPart > 2 {
		fmt.Fprintf(os.Stderr, "Error: --part must be 0, 1 or 2, got %d\n", flagPart)
		os.Exit(1)
	}

	p := mustResolvePuzzle(args[0], flagDir)

	workers := cfg.Search.Workers
	if cmd.Flags().Changed("workers") {
		workers = flagWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep := solve(ctx, p, workers)

	if rep.walked && flagPart != 2 {
		if rep.baseline.Cycled() {
			fmt.Printf("Part 1: %d (the guard never leaves the map)\n", rep.baseline.VisitedCount())
		} else {
			fmt.Printf("Part 1: %d\n", rep.baseline.VisitedCount())
		}
	}
	if rep.searched && (flagPart == 0 || flagPart == 2) {
		fmt.Printf("Part 2: %d\n", len(rep.hits))
	}
	if flagList && rep.searched {
		for _, c := range rep.hits {
			fmt.Printf("  %s\n", c)
		}
	}
	if flagDraw && rep.walked {
		fmt.Println()
		fmt.Print(patrol.RenderASCII(p.Layout, patrol.RenderOptions{
			Visited:      &rep.baseline,
			Obstructions: rep.hits,
		}))
	}

	logger.Debug("solve timings",
		"puzzle", p.ID,
		"baseline", rep.baselineTime,
		"search", rep.searchTime,
		"workers", rep.workers,
	)

	if !flagNoSave && cfg.Storage.SaveRuns {
		saveRun(p, rep)
	}

	if err := checkSolve(p, rep); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// solve runs the baseline walk and, unless only part 1 was asked for, the
// obstruction search.
func solve(ctx context.Context, p puzzles.Puzzle, workers int) solveReport {
	rep := solveReport{workers: workers}

	start := time.Now()
	baseline, err := patrol.Baseline(p.Layout.Grid, p.Layout.Start, cfg.Search.StepLimit)
	rep.baseline = baseline
	rep.baselineTime = time.Since(start)
	rep.walked = err == nil || errors.Is(err, patrol.ErrNonTerminatingBaseline)
	if err != nil {
		rep.err = err
		return rep
	}
	if flagPart == 1 {
		return rep
	}

	start = time.Now()
	hits, err := patrol.FindCycleObstructions(ctx, p.Layout.Grid, p.Layout.Start, patrol.SearchOptions{
		Workers:   workers,
		StepLimit: cfg.Search.StepLimit,
	})
	rep.searchTime = time.Since(start)
	if err != nil {
		rep.err = err
		return rep
	}

	rep.hits = hits
	rep.searched = true
	logger.Info("search finished",
		"puzzle", p.ID,
		"candidates", len(patrol.Candidates(baseline, p.Layout.Start.At)),
		"loops", len(hits),
		"elapsed", rep.searchTime.Round(time.Millisecond),
	)
	return rep
}

// checkSolve turns walk errors and expectation mismatches into the command's error.
func checkSolve(p puzzles.Puzzle, rep solveReport) error {
	if errors.Is(rep.err, patrol.ErrNonTerminatingBaseline) && flagPart == 1 {
		// Part 1 alone is still answered: the cells of the loop
		return p.CheckVisited(rep.baseline.VisitedCount())
	}
	if rep.err != nil {
		return fmt.Errorf("puzzle %s: %w", p.ID, rep.err)
	}

	if flagPart != 2 {
		if err := p.CheckVisited(rep.baseline.VisitedCount()); err != nil {
			return err
		}
	}
	if rep.searched {
		if err := p.CheckObstructions(len(rep.hits)); err != nil {
			return err
		}
	}
	return nil
}

// saveRun records the run in history. Failures are logged, never fatal.
func saveRun(p puzzles.Puzzle, rep solveReport) {
	store := openStore()
	if store == nil {
		return
	}
	defer store.Close()

	run := storage.Run{
		PuzzleID:     p.ID,
		Width:        p.Layout.Grid.W,
		Height:       p.Layout.Grid.H,
		Outcome:      rep.baseline.Outcome.String(),
		Visited:      rep.baseline.VisitedCount(),
		Obstructions: storage.NoObstructions,
		Workers:      rep.workers,
		Duration:     rep.baselineTime + rep.searchTime,
	}
	if rep.searched {
		run.Obstructions = len(rep.hits)
	}
	if rep.err != nil {
		run.Error = rep.err.Error()
	}

	id, err := store.SaveRun(run)
	if err != nil {
		logger.Warn("could not save run", "puzzle", p.ID, "error", err)
		return
	}
	logger.Debug("run saved", "id", id)
}
