package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for map elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Palette assigns colors to the things drawn on a patrol map.
type Palette struct {
	Floor       Color
	Wall        Color
	Trail       Color
	Guard       Color
	Obstruction Color
	Candidate   Color
	Border      Color
	Text        Color
}

// DefaultPalette is used when no palette is configured.
func DefaultPalette() Palette {
	return Palette{
		Floor:       ColorGray,
		Wall:        ColorWhite,
		Trail:       ColorCyan,
		Guard:       ColorBrightYellow,
		Obstruction: ColorBrightRed,
		Candidate:   ColorMagenta,
		Border:      ColorBlue,
		Text:        ColorDefault,
	}
}
