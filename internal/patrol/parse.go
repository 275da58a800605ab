package patrol

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Layout is a parsed map: the grid and where the guard starts.
type Layout struct {
	Grid  *Grid
	Start Pose
}

// ParseString parses a map from a string. See Parse.
func ParseString(s string) (*Layout, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a map made of '.' (open), '#' (wall) and exactly one guard
// marker ('^', '>', 'v' or 'V', '<'). The guard's cell is open.
// Trailing blank lines and carriage returns are ignored.
func Parse(r io.Reader) (*Layout, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, &InputError{Code: CodeEmptyGrid, Message: "map has no cells"}
	}

	w := len([]rune(lines[0]))
	h := len(lines)
	g := &Grid{W: w, H: h, Cells: make([]Cell, w*h)}

	var start Pose
	guards := 0
	for y, line := range lines {
		row := []rune(line)
		if len(row) != w {
			return nil, &InputError{
				Code:    CodeRaggedRows,
				Line:    y + 1,
				Col:     1,
				Message: fmt.Sprintf("row has %d cells, expected %d", len(row), w),
			}
		}
		for x, ch := range row {
			switch ch {
			case '.':
				// open
			case '#':
				g.Cells[y*w+x] = CellWall
			default:
				d, ok := DirFromMarker(ch)
				if !ok {
					return nil, &InputError{
						Code:    CodeBadCell,
						Line:    y + 1,
						Col:     x + 1,
						Message: fmt.Sprintf("unexpected character %q", ch),
					}
				}
				guards++
				if guards > 1 {
					return nil, &InputError{
						Code:    CodeMultipleGuards,
						Line:    y + 1,
						Col:     x + 1,
						Message: fmt.Sprintf("second guard marker %q, first at %v", ch, start.At),
					}
				}
				start = Pose{At: C(x, y), Facing: d}
			}
		}
	}

	if guards == 0 {
		return nil, &InputError{Code: CodeNoGuard, Message: "map has no guard marker"}
	}

	return &Layout{Grid: g, Start: start}, nil
}
