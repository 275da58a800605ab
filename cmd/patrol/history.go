package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

var (
	flagHistoryTUI   bool
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [puzzle]",
	Short: "Show recorded solve runs",
	Long: `Display recorded runs, newest first. Without a puzzle all runs are shown.

Examples:
  patrol history
  patrol history lab --limit 5
  patrol history --tui
  patrol history lab --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse history interactively")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) {
	puzzleID := ""
	if len(args) == 1 {
		puzzleID = args[0]
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		n, err := store.ClearRuns(puzzleID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		logger.Info("history cleared", "puzzle", puzzleID, "runs", n)
		fmt.Printf("Deleted %d runs.\n", n)

	case flagHistoryTUI:
		view := core.DefaultConfig()
		if v, err := viewConfig(); err == nil {
			view = v
		}
		if _, err := tui.RunHistory(store, view.ScreenW, view.ScreenH, puzzleID); err != nil {
			fmt.Fprintf(os.Stderr, "Error running history: %v\n", err)
			os.Exit(1)
		}

	default:
		if err := printHistory(store, puzzleID); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
			os.Exit(1)
		}
	}
}

func printHistory(store *storage.Store, puzzleID string) error {
	var (
		runs []storage.Run
		err  error
	)
	if puzzleID == "" {
		runs, err = store.RecentRuns(flagHistoryLimit)
	} else {
		runs, err = store.RunsForPuzzle(puzzleID, flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	if puzzleID == "" {
		fmt.Println("Run History")
	} else {
		fmt.Printf("Run History - %s\n", puzzleID)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'patrol solve <puzzle>' to record one.")
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %-8s  %-7s  %-5s  %-9s  %s\n", "Date", "Puzzle", "Outcome", "Visited", "Loops", "Time", "Workers")
	fmt.Printf("  %-16s  %-12s  %-8s  %-7s  %-5s  %-9s  %s\n", "----", "------", "-------", "-------", "-----", "----", "-------")

	for _, r := range runs {
		loops := "-"
		if r.HasObstructions() {
			loops = fmt.Sprintf("%d", r.Obstructions)
		}
		fmt.Printf("  %-16s  %-12s  %-8s  %-7d  %-5s  %-9s  %d\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.PuzzleID,
			r.Outcome,
			r.Visited,
			loops,
			r.Duration.Round(time.Millisecond),
			r.Workers,
		)
		if r.Error != "" {
			fmt.Printf("  %16s  error: %s\n", "", r.Error)
		}
	}

	if puzzleID == "" {
		return nil
	}

	stats, err := store.PuzzleStats(puzzleID)
	if err != nil || stats.Runs == 0 {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Fastest: %s  Average: %s\n",
		stats.Runs,
		stats.Fastest.Round(time.Millisecond),
		stats.Average.Round(time.Millisecond))

	if latest, err := store.LatestRun(puzzleID); err == nil && latest != nil {
		fmt.Printf("Latest: %s (%s)\n", latest.ID, latest.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
