// Package patrol simulates a guard walking a walled grid and searches for
// single-cell obstructions that trap the guard in a loop.
// This package is UI-agnostic and deterministic.
package patrol

// Dir is the heading of the guard.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// AllDirs returns the four headings in clockwise order starting at Up.
func AllDirs() []Dir {
	return []Dir{DirUp, DirRight, DirDown, DirLeft}
}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Rotate returns the heading after a 90 degree right turn.
// Up -> Right -> Down -> Left -> Up.
func (d Dir) Rotate() Dir {
	return (d + 1) % 4
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Marker returns the map character that shows a guard facing d.
func (d Dir) Marker() rune {
	switch d {
	case DirUp:
		return '^'
	case DirRight:
		return '>'
	case DirDown:
		return 'v'
	case DirLeft:
		return '<'
	default:
		return '?'
	}
}

// DirFromMarker parses a heading marker. The down marker is accepted in
// either case; every other rune is rejected.
func DirFromMarker(r rune) (Dir, bool) {
	switch r {
	case '^':
		return DirUp, true
	case '>':
		return DirRight, true
	case 'v', 'V':
		return DirDown, true
	case '<':
		return DirLeft, true
	default:
		return 0, false
	}
}

// Cell is the kind of a single grid cell.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellWall
)

// Char returns the map character for the cell.
func (c Cell) Char() rune {
	if c == CellWall {
		return '#'
	}
	return '.'
}

// Pose is the guard's position and heading. Poses are compared by value
// and are the unit of cycle detection.
type Pose struct {
	At     Coord
	Facing Dir
}

// String returns a string representation of the pose.
func (p Pose) String() string {
	return p.At.String() + " " + p.Facing.String()
}

// Turned returns the pose after a right turn in place.
func (p Pose) Turned() Pose {
	return Pose{At: p.At, Facing: p.Facing.Rotate()}
}

// Forward returns the pose one step ahead with the same heading.
func (p Pose) Forward() Pose {
	return Pose{At: p.At.Step(p.Facing), Facing: p.Facing}
}
