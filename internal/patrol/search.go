package patrol

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SearchOptions tunes FindCycleObstructions.
type SearchOptions struct {
	// Workers is the number of concurrent candidate walks.
	// Zero means runtime.NumCPU().
	Workers int

	// StepLimit is passed to every Simulator. Zero means the grid's bound.
	StepLimit int
}

// workers returns the effective worker count.
func (o SearchOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// Baseline walks the unmodified grid. A baseline that loops is reported as
// ErrNonTerminatingBaseline: with no exit there is nothing to search.
func Baseline(g *Grid, start Pose, stepLimit int) (Result, error) {
	res, err := Simulator{Grid: g, StepLimit: stepLimit}.Run(start, nil)
	if err != nil {
		return res, fmt.Errorf("baseline walk: %w", err)
	}
	if res.Cycled() {
		return res, ErrNonTerminatingBaseline
	}
	return res, nil
}

// Candidates returns the cells worth trying as an obstruction: every cell
// of the baseline walk except the guard's starting cell, ordered by row
// then column. Cells off the baseline path cannot change the walk.
func Candidates(baseline Result, start Coord) []Coord {
	coords := baseline.VisitedCoords()
	out := coords[:0]
	for _, c := range coords {
		if c != start {
			out = append(out, c)
		}
	}
	return out
}

// FindCycleObstructions returns every candidate cell that, turned into a
// wall, traps the guard in a loop. Candidates are walked concurrently;
// each walk reads only the shared grid and start pose.
// The result is ordered by row then column.
func FindCycleObstructions(ctx context.Context, g *Grid, start Pose, opts SearchOptions) ([]Coord, error) {
	baseline, err := Baseline(g, start, opts.StepLimit)
	if err != nil {
		return nil, err
	}

	candidates := Candidates(baseline, start.At)
	sim := Simulator{Grid: g, StepLimit: opts.StepLimit}

	var (
		mu   sync.Mutex
		hits []Coord
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.workers())

	for _, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		obstruction := c
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := sim.Run(start, &obstruction)
			if err != nil {
				return fmt.Errorf("obstruction %v: %w", obstruction, err)
			}
			if res.Cycled() {
				mu.Lock()
				hits = append(hits, obstruction)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Less(hits[j])
	})
	return hits, nil
}

// CountCycleObstructions counts loop-inducing obstructions with a single
// sequential pass.
func CountCycleObstructions(g *Grid, start Pose) (int, error) {
	baseline, err := Baseline(g, start, 0)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, c := range Candidates(baseline, start.At) {
		obstruction := c
		if Run(g, start, &obstruction).Cycled() {
			count++
		}
	}
	return count, nil
}
