package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for board tokens and HUD elements.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// String returns a short name for the color, mostly for test output.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed, ColorBrightRed:
		return "red"
	case ColorGreen, ColorBrightGreen:
		return "green"
	case ColorYellow, ColorBrightYellow:
		return "yellow"
	case ColorBlue, ColorBrightBlue:
		return "blue"
	case ColorMagenta, ColorBrightMagenta:
		return "magenta"
	case ColorCyan, ColorBrightCyan:
		return "cyan"
	case ColorWhite, ColorBrightWhite:
		return "white"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}
