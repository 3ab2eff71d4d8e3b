package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/level"
)

// cellWidth is the number of terminal columns used per board cell.
const cellWidth = 2

// Palette maps core.Color render slots to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

func ink(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// DefaultPalette is the game's original color set.
var DefaultPalette = Palette{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorBlack:     ink("#3a3a3a"),
	core.ColorWhite:     ink("#d9d9d9"),
	core.ColorRed:       ink("#ff0000"),
	core.ColorGreen:     ink("#28ff00"),
	core.ColorBlue:      ink("#4263ff"),
	core.ColorPink:      ink("#ff21f7"),
	core.ColorYellow:    ink("#fff600"),
	core.ColorBrown:     ink("#eab923"),
	core.ColorGray:      ink("#767676"),
	core.ColorHighlight: ink("#ffffaf").Bold(true),
}

// ColorblindPalette uses the IBM color-blind safe hues.
var ColorblindPalette = Palette{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorBlack:     ink("#3a3a3a"),
	core.ColorWhite:     ink("#d9d9d9"),
	core.ColorRed:       ink("#fe6100"),
	core.ColorGreen:     ink("#9ff986"),
	core.ColorBlue:      ink("#648fff"),
	core.ColorPink:      ink("#dc267f"),
	core.ColorYellow:    ink("#ffb000"),
	core.ColorBrown:     ink("#d2a96a"),
	core.ColorGray:      ink("#767676"),
	core.ColorHighlight: ink("#ffffaf").Bold(true),
}

// PaletteFor returns the colorblind or default palette.
func PaletteFor(colorblind bool) Palette {
	if colorblind {
		return ColorblindPalette
	}
	return DefaultPalette
}

// style returns the style for a slot, falling back to the default style.
func (p Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p[c]; ok {
		return s
	}
	return p[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// slot maps a game color to its render slot.
func slot(c level.Color) core.Color {
	switch c {
	case level.ColorBlack:
		return core.ColorBlack
	case level.ColorWhite:
		return core.ColorWhite
	case level.ColorRed:
		return core.ColorRed
	case level.ColorGreen:
		return core.ColorGreen
	case level.ColorBlue:
		return core.ColorBlue
	case level.ColorPink:
		return core.ColorPink
	case level.ColorYellow:
		return core.ColorYellow
	case level.ColorBrown:
		return core.ColorBrown
	default:
		return core.ColorDefault
	}
}

// glyph returns the two runes drawn for an entity.
func glyph(e *level.Entity) [cellWidth]rune {
	switch e.Kind() {
	case level.KindPlayer:
		if e.ArtDirection().X < 0 {
			return [cellWidth]rune{'◄', '@'}
		}
		return [cellWidth]rune{'@', '►'}
	case level.KindWall:
		return [cellWidth]rune{'█', '█'}
	case level.KindBox:
		return [cellWidth]rune{'[', ']'}
	case level.KindPotion:
		return [cellWidth]rune{'¡', ' '}
	case level.KindSnake:
		return [cellWidth]rune{'~', 'S'}
	case level.KindEnemy:
		switch e.Direction() {
		case core.Up:
			return [cellWidth]rune{'▲', '▲'}
		case core.Down:
			return [cellWidth]rune{'▼', '▼'}
		case core.Left:
			return [cellWidth]rune{'◄', '◄'}
		case core.Right:
			return [cellWidth]rune{'►', '►'}
		default:
			return [cellWidth]rune{'◆', '◆'}
		}
	}
	return [cellWidth]rune{'?', '?'}
}

// BoardSize returns the screen size needed to draw b inside a frame.
func BoardSize(b *level.Board) (w, h int) {
	area := b.Area()
	return area.W*cellWidth + 2, area.H + 2
}

// DrawBoard draws b framed at (x, y). Entities in highlight are drawn with the
// highlight slot instead of their own color.
func DrawBoard(s *core.Screen, x, y int, b *level.Board, highlight level.EntitySet) {
	area := b.Area()
	w, h := BoardSize(b)
	s.DrawBox(core.NewRect(x, y, w, h), core.ColorGray)

	for gy := 0; gy < area.H; gy++ {
		for gx := 0; gx < area.W; gx++ {
			p := core.Pt(area.X+gx, area.Y+gy)
			sx, sy := x+1+gx*cellWidth, y+1+gy

			e := level.Topmost(b.EntitiesAt(p))
			if e == nil {
				s.Set(sx, sy, '·', core.ColorGray)
				s.Set(sx+1, sy, ' ', core.ColorDefault)
				continue
			}
			c := slot(e.Color())
			if highlight != nil && highlight.Has(e) {
				c = core.ColorHighlight
			}
			g := glyph(e)
			for i, r := range g {
				s.Set(sx+i, sy, r, c)
			}
		}
	}
}

// RenderBoard draws b on its own screen and renders it with p.
func RenderBoard(b *level.Board, p Palette, highlight level.EntitySet) string {
	w, h := BoardSize(b)
	s := core.NewScreen(w, h)
	DrawBoard(s, 0, 0, b, highlight)
	return RenderScreen(s, p)
}
