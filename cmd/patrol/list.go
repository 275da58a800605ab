package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/patrol/puzzles"
	"github.com/vovakirdan/guard-patrol/internal/registry"
)

var flagListDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available puzzles",
	Long: `Shows the built-in puzzles, or the puzzle files in a directory.

Examples:
  patrol list
  patrol list --dir ./puzzles`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListDir, "dir", "", "List puzzle files in this directory instead")
}

type listRow struct {
	id, title string
	w, h      int
	source    string
}

func runList(cmd *cobra.Command, args []string) {
	var rows []listRow

	if flagListDir != "" {
		loader := puzzles.NewLoader(flagListDir)
		loader.OnSkip = func(path string, err error) {
			logger.Warn("skipping puzzle file", "path", path, "error", err)
		}
		all, err := loader.LoadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, p := range all {
			rows = append(rows, listRow{p.ID, p.Name, p.Layout.Grid.W, p.Layout.Grid.H, p.FilePath})
		}
	} else {
		for _, info := range registry.List() {
			rows = append(rows, listRow{info.ID, info.Title, info.W, info.H, "built-in"})
		}
	}

	if len(rows) == 0 {
		fmt.Println("No puzzles available.")
		return
	}

	fmt.Println("Available puzzles:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, r := range rows {
		maxIDLen = max(maxIDLen, len(r.id))
		maxTitleLen = max(maxTitleLen, len(r.title))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Size", "Source")
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "------")

	for _, r := range rows {
		size := fmt.Sprintf("%dx%d", r.w, r.h)
		fmt.Printf("  %-*s  %-*s  %-7s  %s\n", maxIDLen, r.id, maxTitleLen, r.title, size, r.source)
	}

	fmt.Println()
	fmt.Println("Run 'patrol solve <id>' to solve a puzzle or 'patrol watch <id>' to watch it.")
}
