package patrol

import "strings"

// RenderOptions selects what RenderASCII overlays on the map.
type RenderOptions struct {
	Visited      *Result // Cells of this walk are drawn as 'X'
	Obstructions []Coord // Drawn as 'O'
	Guard        *Pose   // Guard pose; nil means the layout's start
}

// RenderASCII draws the layout in its input format.
// Used for the solve --draw output and for golden tests.
//
// Format:
//   - '.' open, '#' wall, 'X' visited, 'O' obstruction
//   - the guard is drawn with its heading marker
func RenderASCII(l *Layout, opts RenderOptions) string {
	guard := l.Start
	if opts.Guard != nil {
		guard = *opts.Guard
	}

	marks := make(map[Coord]bool, len(opts.Obstructions))
	for _, c := range opts.Obstructions {
		marks[c] = true
	}

	var sb strings.Builder
	sb.Grow((l.Grid.W + 1) * l.Grid.H)

	for y := 0; y < l.Grid.H; y++ {
		for x := 0; x < l.Grid.W; x++ {
			c := C(x, y)
			cell, _ := l.Grid.At(c)
			switch {
			case c == guard.At:
				sb.WriteRune(guard.Facing.Marker())
			case marks[c]:
				sb.WriteRune('O')
			case cell == CellWall:
				sb.WriteRune('#')
			case opts.Visited != nil && opts.Visited.Visited.Has(c):
				sb.WriteRune('X')
			default:
				sb.WriteRune('.')
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
