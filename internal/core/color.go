package core

// Color is a render slot for a screen cell. The platform layer decides the
// concrete terminal color for each slot through its palette, which is how the
// colorblind palette swaps hues without touching game logic.
type Color uint8

// Render slots. The ink slots mirror the game's entity colors.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorWhite
	ColorRed
	ColorGreen
	ColorBlue
	ColorPink
	ColorYellow
	ColorBrown
	ColorGray
	ColorHighlight
)

// String returns the slot name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorPink:
		return "pink"
	case ColorYellow:
		return "yellow"
	case ColorBrown:
		return "brown"
	case ColorGray:
		return "gray"
	case ColorHighlight:
		return "highlight"
	default:
		return "unknown"
	}
}
