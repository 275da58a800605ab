// patrol simulates a guard patrolling a grid map and finds the cells where
// one extra wall would trap the guard in a loop.
//
// Usage:
//
//	patrol list                 - List built-in puzzles (or a directory with --dir)
//	patrol solve <puzzle|file>  - Count visited cells and loop obstructions
//	patrol watch [puzzle]       - Animate a walk (no argument opens the picker)
//	patrol history [puzzle]     - Show recorded runs
//	patrol serve                - Start SSH server for remote watching
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.patrol/config.yaml)
//	--db <path>         - Run history database (default: ~/.patrol/runs.db)
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/config"
	// Import built-in puzzles to register them
	_ "github.com/vovakirdan/guard-patrol/internal/patrol/puzzles/builtin"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	cfg    = config.DefaultConfig()
	logger = newLogger(log.InfoLevel)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "patrol",
	Short: "Guard Patrol - simulate a guard walking a grid map",
	Long: `Guard Patrol walks a guard across a grid map. The guard moves forward
until something blocks it, then turns right. patrol counts the cells the
guard visits before leaving the map, and the cells where a single extra
wall would trap it in a loop instead.

Available commands:
  list     - Show available puzzles
  solve    - Solve a puzzle or map file
  watch    - Watch the guard walk in the terminal
  history  - Show recorded runs
  serve    - Start SSH server for remote watching

Examples:
  patrol list
  patrol solve lab
  patrol solve ./input.txt --workers 8
  patrol watch courtyard
  patrol history lab`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration and applies global flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("db") {
		loaded.Storage.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = flagLogLevel
	}

	level, err := loaded.Log.ParsedLevel()
	if err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}

	cfg = loaded
	logger = newLogger(level)
	logger.Debug("config loaded", "db", cfg.Storage.DBPath, "workers", cfg.Search.Workers)
	return nil
}

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "patrol",
		Level:           level,
	})
}
