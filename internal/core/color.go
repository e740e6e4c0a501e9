package core

// Color represents a foreground color for a screen cell.
// Backends map it onto their own palette (ANSI 256 or tcell colors).
type Color uint8

// Palette used by the game.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorRed
	ColorYellow
	ColorWhite
	ColorGray
)

// Intensity values understood by display backends. Zero always erases;
// the renderer only relies on the erase/draw distinction.
const (
	IntensityErase = 0
	IntensityApple = 512
	IntensityBody  = 1024
)

// IntensityColor picks the color a backend uses for a filled cell.
func IntensityColor(intensity int) Color {
	switch {
	case intensity <= IntensityErase:
		return ColorDefault
	case intensity < IntensityBody:
		return ColorRed
	default:
		return ColorBrightGreen
	}
}
