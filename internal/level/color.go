package level

import "strconv"

// Color identifies an entity's color.
type Color int

// Game colors. ColorBlack marks "outside the board" and never interacts;
// ColorBrown is neutral and interacts with everything.
const (
	ColorBlack  Color = -1
	ColorWhite  Color = 0
	ColorRed    Color = 1
	ColorGreen  Color = 2
	ColorBlue   Color = 3
	ColorPink   Color = 4
	ColorYellow Color = 5
	ColorBrown  Color = 6
)

// Colors lists every color an entity can carry, in id order.
var Colors = []Color{ColorWhite, ColorRed, ColorGreen, ColorBlue, ColorPink, ColorYellow, ColorBrown}

var colorNames = map[Color]string{
	ColorBlack:  "black",
	ColorWhite:  "white",
	ColorRed:    "red",
	ColorGreen:  "green",
	ColorBlue:   "blue",
	ColorPink:   "pink",
	ColorYellow: "yellow",
	ColorBrown:  "brown",
}

// String returns the color name, or its id for unknown values.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "color(" + strconv.Itoa(int(c)) + ")"
}

// Clamp restricts c to the encodable range [ColorWhite, ColorBrown].
func (c Color) Clamp() Color {
	if c < ColorWhite {
		return ColorWhite
	}
	if c > ColorBrown {
		return ColorBrown
	}
	return c
}

// CanInteract reports whether entities of colors a and b block, push, crush
// and kill each other. Equal colors pass through one another. Black never
// interacts, brown always does. The relation is symmetric.
func CanInteract(a, b Color) bool {
	if a == ColorBrown || b == ColorBrown {
		return true
	}
	if a == ColorBlack || b == ColorBlack {
		return false
	}
	return a != b
}
