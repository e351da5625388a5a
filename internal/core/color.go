package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
}

// ParseColor maps a config color name to a Color.
// Unknown names fall back to ColorDefault.
func ParseColor(name string) Color {
	if c, ok := colorNames[name]; ok {
		return c
	}
	return ColorDefault
}

// RGB returns an approximate 24-bit value for graphical frontends.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorRed:
		return 0xcc, 0x22, 0x22
	case ColorGreen:
		return 0x22, 0xcc, 0x44
	case ColorYellow:
		return 0xdd, 0xcc, 0x22
	case ColorBlue:
		return 0x22, 0x44, 0xdd
	case ColorMagenta:
		return 0xcc, 0x22, 0xcc
	case ColorCyan:
		return 0x00, 0xe5, 0xff
	case ColorWhite:
		return 0xdd, 0xdd, 0xdd
	case ColorBrightRed:
		return 0xff, 0x44, 0x44
	case ColorBrightGreen:
		return 0x44, 0xff, 0x66
	case ColorBrightYellow:
		return 0xff, 0xff, 0x00
	case ColorBrightBlue:
		return 0x55, 0x77, 0xff
	case ColorBrightMagenta:
		return 0xff, 0x55, 0xff
	case ColorBrightCyan:
		return 0x66, 0xff, 0xff
	case ColorBrightWhite:
		return 0xff, 0xff, 0xff
	case ColorOrange:
		return 0xff, 0x88, 0x00
	case ColorGray:
		return 0x88, 0x88, 0x88
	default:
		return 0xcc, 0xcc, 0xcc
	}
}
