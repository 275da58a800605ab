package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Map glyphs used by DrawMap.
const (
	glyphFloor       = '.'
	glyphWall        = '#'
	glyphTrail       = 'X'
	glyphObstruction = 'O'
	glyphCandidate   = '+'
)

// MapView is what DrawMap needs to draw a walk in progress.
type MapView struct {
	Layout         *patrol.Layout
	Walker         *patrol.Walker
	Candidates     []patrol.Coord
	ShowTrail      bool
	ShowCandidates bool
	Palette        core.Palette
}

// DrawMap draws the map into area, scrolled to keep the guard in view.
// Returns the part of the map that was drawn, in map coordinates.
func DrawMap(s *core.Screen, area core.Rect, v MapView) core.Rect {
	g := v.Layout.Grid
	guard := v.Layout.Start
	var obstruction *patrol.Coord
	if v.Walker != nil {
		guard = v.Walker.Pose()
		obstruction = v.Walker.Obstruction()
	}

	cands := mapset.New[patrol.Coord]()
	if v.ShowCandidates {
		for _, c := range v.Candidates {
			cands.Put(c)
		}
	}

	win := core.Viewport(g.W, g.H, area.W, area.H, guard.At.X, guard.At.Y)
	for y := 0; y < win.H; y++ {
		for x := 0; x < win.W; x++ {
			c := patrol.C(win.X+x, win.Y+y)
			r, col := cellGlyph(g, c, guard, obstruction, cands, v)
			s.SetColored(area.X+x, area.Y+y, r, col)
		}
	}
	return win
}

func cellGlyph(g *patrol.Grid, c patrol.Coord, guard patrol.Pose, obstruction *patrol.Coord,
	cands mapset.Set[patrol.Coord], v MapView) (rune, core.Color) {
	pal := v.Palette
	switch {
	case c == guard.At:
		return guard.Facing.Marker(), pal.Guard
	case obstruction != nil && c == *obstruction:
		return glyphObstruction, pal.Obstruction
	}

	if cell, _ := g.At(c); cell == patrol.CellWall {
		return glyphWall, pal.Wall
	}
	if cands.Has(c) {
		return glyphCandidate, pal.Candidate
	}
	if v.ShowTrail && v.Walker != nil && v.Walker.HasVisited(c) {
		return glyphTrail, pal.Trail
	}
	return glyphFloor, pal.Floor
}
