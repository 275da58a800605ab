package tui

import (
	"sort"

	"github.com/vovakirdan/guard-patrol/internal/core"
)

// themes are the map palettes selectable with watch.theme.
var themes = map[string]core.Palette{
	"default": core.DefaultPalette(),
	"neon": {
		Floor:       core.ColorBlue,
		Wall:        core.ColorBrightCyan,
		Trail:       core.ColorMagenta,
		Guard:       core.ColorBrightGreen,
		Obstruction: core.ColorBrightRed,
		Candidate:   core.ColorOrange,
		Border:      core.ColorMagenta,
		Text:        core.ColorBrightCyan,
	},
	"mono": {
		Floor:       core.ColorGray,
		Wall:        core.ColorWhite,
		Trail:       core.ColorWhite,
		Guard:       core.ColorDefault,
		Obstruction: core.ColorDefault,
		Candidate:   core.ColorGray,
		Border:      core.ColorGray,
		Text:        core.ColorDefault,
	},
}

// PaletteByName returns the named palette.
func PaletteByName(name string) (core.Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// ThemeNames returns the available palette names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
