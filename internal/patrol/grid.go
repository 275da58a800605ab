package patrol

// Grid represents the lab floor as a rectangular grid of cells.
// Cells are stored in row-major order: index = y*W + x.
// A Grid is never modified after construction.
type Grid struct {
	W     int    // Width of the grid
	H     int    // Height of the grid
	Cells []Cell // Flat array of cells, length W*H
}

// NewGrid creates a grid with the given dimensions and walls.
// Walls outside the bounds are ignored.
func NewGrid(w, h int, walls []Coord) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
	for _, c := range walls {
		if g.InBounds(c) {
			g.Cells[g.index(c)] = CellWall
		}
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the cell at c and whether c is in bounds.
func (g *Grid) At(c Coord) (Cell, bool) {
	if !g.InBounds(c) {
		return CellEmpty, false
	}
	return g.Cells[g.index(c)], true
}

// Blocked reports whether c is a wall, counting the obstruction (if any)
// as a wall. Out-of-bounds coordinates are never blocked.
func (g *Grid) Blocked(c Coord, obstruction *Coord) bool {
	if obstruction != nil && *obstruction == c {
		return true
	}
	cell, ok := g.At(c)
	return ok && cell == CellWall
}

// Area returns W*H.
func (g *Grid) Area() int {
	return g.W * g.H
}

// StateBound returns the number of distinct poses a walk on this grid can
// take: four headings per cell.
func (g *Grid) StateBound() int {
	return 4 * g.Area()
}

// Walls returns all wall coordinates, ordered by row then column.
func (g *Grid) Walls() []Coord {
	coords := make([]Coord, 0)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Cells[y*g.W+x] == CellWall {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// WallCount returns the number of wall cells.
func (g *Grid) WallCount() int {
	count := 0
	for _, cell := range g.Cells {
		if cell == CellWall {
			count++
		}
	}
	return count
}
