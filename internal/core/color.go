package core

// Color is the foreground colour of a screen cell. The platform maps each
// value to an ANSI 256-colour code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorBrightWhite
	ColorBrightYellow
	ColorBrightRed
)
