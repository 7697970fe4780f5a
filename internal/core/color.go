package core

// Color is the foreground color of a screen cell.
// Values map to ANSI colors in the terminal renderer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorRed
	ColorGray
)
