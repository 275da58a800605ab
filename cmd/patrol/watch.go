package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
)

var (
	flagObstruction string
	flagWatchDir    string
	flagRate        int
)

var watchCmd = &cobra.Command{
	Use:   "watch [puzzle|file]",
	Short: "Watch the guard walk",
	Long: `Animate the guard's walk in the terminal. Without an argument a puzzle
picker opens; from the picker you can also open the run history.

Controls:
  Space/P  - Pause
  N        - Single step while paused
  +/-      - Faster / slower
  R        - Restart
  T        - Toggle trail
  C        - Show cells where one extra wall traps the guard
  O        - Place the next trapping wall and restart
  Q        - Quit

Examples:
  patrol watch
  patrol watch lab
  patrol watch lab --obstruction 3,6
  patrol watch ./input.txt --rate 100`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagObstruction, "obstruction", "", "Extra wall as x,y")
	watchCmd.Flags().StringVar(&flagWatchDir, "dir", "", "Directory of puzzle files to search for the ID")
	watchCmd.Flags().IntVar(&flagRate, "rate", 0, "Steps per second (overrides config)")
}

func runWatch(cmd *cobra.Command, args []string) {
	view, err := viewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("rate") {
		view.TickRate = flagRate
	}

	if len(args) == 0 {
		if err := runPicker(view); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := mustResolvePuzzle(args[0], flagWatchDir)

	var obstruction *patrol.Coord
	if flagObstruction != "" {
		c, err := parseCoord(flagObstruction)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: --obstruction: %v\n", err)
			os.Exit(1)
		}
		if !p.Layout.Grid.InBounds(c) {
			fmt.Fprintf(os.Stderr, "Error: --obstruction %s is outside the %dx%d map\n", c, p.Layout.Grid.W, p.Layout.Grid.H)
			os.Exit(1)
		}
		obstruction = &c
	}

	_, err = tui.RunWatch(tui.WatchOptions{
		PuzzleID:    p.ID,
		Title:       p.Name,
		Layout:      p.Layout,
		Obstruction: obstruction,
		StepLimit:   cfg.Search.StepLimit,
		Workers:     cfg.Search.Workers,
	}, view)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running watch: %v\n", err)
		os.Exit(1)
	}
}

// runPicker loops menu -> watch or history -> menu until the user quits.
func runPicker(view core.RuntimeConfig) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	for {
		result, err := tui.RunMenu(store, view)
		if err != nil {
			return err
		}
		view = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsHistory:
			goBack, err := tui.RunHistory(store, view.ScreenW, view.ScreenH, "")
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			p := mustResolvePuzzle(result.PuzzleID, "")
			goBack, err := tui.RunWatch(tui.WatchOptions{
				PuzzleID:  p.ID,
				Title:     p.Name,
				Layout:    p.Layout,
				StepLimit: cfg.Search.StepLimit,
				Workers:   cfg.Search.Workers,
			}, view)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
		}
	}
}

// viewConfig builds the watch settings from config and the terminal size.
func viewConfig() (core.RuntimeConfig, error) {
	palette, ok := tui.PaletteByName(cfg.Watch.Theme)
	if !ok {
		return core.RuntimeConfig{}, fmt.Errorf("unknown theme %q (available: %s)",
			cfg.Watch.Theme, strings.Join(tui.ThemeNames(), ", "))
	}

	view := core.DefaultConfig()
	view.TickRate = cfg.Watch.TickRate
	view.ShowTrail = cfg.Watch.ShowTrail
	view.ShowCandidates = cfg.Watch.ShowCandidates
	view.Palette = palette

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		view.ScreenW = w
		view.ScreenH = h
	}
	return view, nil
}

// parseCoord parses "x,y".
func parseCoord(s string) (patrol.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return patrol.Coord{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return patrol.Coord{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return patrol.Coord{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return patrol.C(x, y), nil
}
