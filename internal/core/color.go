package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for level elements.
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
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPink

	// Celebration palette.
	ColorConfettiRed    // #ff4757
	ColorConfettiGreen  // #2ed573
	ColorConfettiBlue   // #1e90ff
	ColorConfettiOrange // #ffa502
	ColorConfettiWhite  // #ffffff
)
