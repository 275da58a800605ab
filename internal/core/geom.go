// Package core provides the screen buffer and geometry helpers used to draw
// patrol maps. It has no Bubble Tea dependency so rendering stays testable.
package core

// Rect represents an axis-aligned box on the screen or map.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Viewport returns the window of a contentW x contentH map that fits in a
// viewW x viewH area and keeps (focusX, focusY) as close to center as the
// map edges allow. The result is in map coordinates.
func Viewport(contentW, contentH, viewW, viewH, focusX, focusY int) Rect {
	w := Min(contentW, Max(viewW, 0))
	h := Min(contentH, Max(viewH, 0))

	x := Clamp(focusX-w/2, 0, contentW-w)
	y := Clamp(focusY-h/2, 0, contentH-h)
	return Rect{X: x, Y: y, W: w, H: h}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
