package patrol

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Move is what a single step did to the guard.
type Move uint8

const (
	MoveForward Move = iota // Guard advanced one cell
	MoveTurn                // Guard turned right in place
	MoveExit                // Next cell is off the grid; the walk is over
	MoveLoop                // Pose repeated; the walk never exits
)

// String returns the string representation of a move.
func (m Move) String() string {
	switch m {
	case MoveForward:
		return "Forward"
	case MoveTurn:
		return "Turn"
	case MoveExit:
		return "Exit"
	case MoveLoop:
		return "Loop"
	default:
		return "Unknown"
	}
}

// Outcome is how a walk ended.
type Outcome uint8

const (
	OutcomeExited Outcome = iota
	OutcomeCycled
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeExited:
		return "exited"
	case OutcomeCycled:
		return "cycled"
	default:
		return "unknown"
	}
}

// Result is the outcome of a complete walk.
type Result struct {
	Outcome Outcome
	Visited mapset.Set[Coord] // Distinct cells the guard stood on
	States  int               // Distinct poses recorded
	Steps   int               // Poses evaluated, including the final one
	Last    Pose              // Pose at which the walk ended
}

// Exited reports whether the guard left the grid.
func (r Result) Exited() bool {
	return r.Outcome == OutcomeExited
}

// Cycled reports whether the guard was caught in a loop.
func (r Result) Cycled() bool {
	return r.Outcome == OutcomeCycled
}

// VisitedCount returns the number of distinct cells visited.
func (r Result) VisitedCount() int {
	return r.Visited.Size()
}

// VisitedCoords returns the visited cells ordered by row then column.
func (r Result) VisitedCoords() []Coord {
	coords := make([]Coord, 0, r.Visited.Size())
	r.Visited.Each(func(c Coord) {
		coords = append(coords, c)
	})
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
	return coords
}

// Step evaluates one pose against the grid and returns the next pose.
// The cell ahead is bounds-checked before it is read; a blocked cell
// (wall or obstruction) turns the guard in place.
// Step never returns MoveLoop; loop detection needs history, see Walker.
func Step(g *Grid, p Pose, obstruction *Coord) (Pose, Move) {
	ahead := p.At.Step(p.Facing)
	if !g.InBounds(ahead) {
		return p, MoveExit
	}
	if g.Blocked(ahead, obstruction) {
		return p.Turned(), MoveTurn
	}
	return p.Forward(), MoveForward
}

// Simulator runs walks on a fixed grid.
type Simulator struct {
	Grid *Grid

	// StepLimit caps the poses evaluated per walk.
	// Zero means Grid.StateBound()+1, which a walk can never exceed.
	StepLimit int
}

// limit returns the effective step ceiling.
func (s Simulator) limit() int {
	if s.StepLimit > 0 {
		return s.StepLimit
	}
	return s.Grid.StateBound() + 1
}

// Walk starts a step-by-step walk from start. obstruction may be nil.
func (s Simulator) Walk(start Pose, obstruction *Coord) *Walker {
	return &Walker{
		grid:        s.Grid,
		obstruction: obstruction,
		limit:       s.limit(),
		pose:        start,
		visited:     mapset.New[Coord](),
		seen:        mapset.New[Pose](),
	}
}

// Run walks from start until the guard exits or repeats a pose.
// Returns ErrStepLimit if StepLimit is set and reached first.
func (s Simulator) Run(start Pose, obstruction *Coord) (Result, error) {
	w := s.Walk(start, obstruction)
	for !w.Done() {
		if _, err := w.Advance(); err != nil {
			return w.Result(), err
		}
	}
	return w.Result(), nil
}

// Run walks g from start with the default step ceiling.
func Run(g *Grid, start Pose, obstruction *Coord) Result {
	// The default ceiling is never reached, so Run cannot fail.
	res, _ := Simulator{Grid: g}.Run(start, obstruction)
	return res
}

// Walker is a walk in progress. It owns its visited sets; a Walker must
// not be shared between goroutines.
type Walker struct {
	grid        *Grid
	obstruction *Coord
	limit       int

	pose    Pose
	visited mapset.Set[Coord]
	seen    mapset.Set[Pose]
	steps   int

	done    bool
	last    Move
	outcome Outcome
	err     error
}

// Advance evaluates the current pose once and returns what happened.
// After the walk is done, Advance returns the final move again.
func (w *Walker) Advance() (Move, error) {
	if w.done {
		return w.last, w.err
	}
	if w.steps >= w.limit {
		w.done = true
		w.last = MoveLoop
		w.outcome = OutcomeCycled
		w.err = ErrStepLimit
		return w.last, w.err
	}
	w.steps++

	w.visited.Put(w.pose.At)
	if w.seen.Has(w.pose) {
		return w.finish(MoveLoop, OutcomeCycled), nil
	}
	w.seen.Put(w.pose)

	next, move := Step(w.grid, w.pose, w.obstruction)
	if move == MoveExit {
		return w.finish(MoveExit, OutcomeExited), nil
	}
	w.pose = next
	w.last = move
	return move, nil
}

func (w *Walker) finish(m Move, o Outcome) Move {
	w.done = true
	w.last = m
	w.outcome = o
	return m
}

// Done reports whether the walk has ended.
func (w *Walker) Done() bool {
	return w.done
}

// Pose returns the guard's current pose.
func (w *Walker) Pose() Pose {
	return w.pose
}

// Steps returns the number of poses evaluated so far.
func (w *Walker) Steps() int {
	return w.steps
}

// Obstruction returns the extra wall of this walk, or nil.
func (w *Walker) Obstruction() *Coord {
	return w.obstruction
}

// HasVisited reports whether the guard has stood on c.
func (w *Walker) HasVisited(c Coord) bool {
	return w.visited.Has(c)
}

// VisitedCount returns the number of distinct cells visited so far.
func (w *Walker) VisitedCount() int {
	return w.visited.Size()
}

// Result returns the walk's result. Outcome is only meaningful once Done.
func (w *Walker) Result() Result {
	return Result{
		Outcome: w.outcome,
		Visited: w.visited,
		States:  w.seen.Size(),
		Steps:   w.steps,
		Last:    w.pose,
	}
}
