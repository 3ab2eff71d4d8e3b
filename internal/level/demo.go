package level

import (
	"math/rand"

	"github.com/vovakirdan/knightmare/internal/core"
)

// SampleBlob is a small handmade level used by examples and tests.
var SampleBlob = Blob{
	Name: "Blocks",
	Data: []string{
		"W0 W0 W0 W0 W0 W0 W0 W0 W0 W0",
		"W0                p3       W0",
		"W0                         W0",
		"W0       P1       B6       W0",
		"W0                L2       W0",
		"W0                         W0",
		"W0 W0 W0 W0 W0 W0 W0 W0 W0 W0",
	},
}

// Demo returns the fixed demo board: a red player beside an L of walls, a
// green enemy walking left, three boxes and a pink potion.
func Demo(f *Factory) *Board {
	b := NewBoard("Demo")
	enemy, _ := f.Enemy(ColorGreen, core.Left)

	placed := []Placed{
		{f.Player(ColorRed), core.Pt(4, 4)},
		{f.Wall(ColorWhite), core.Pt(5, 2)},
		{f.Wall(ColorWhite), core.Pt(5, 3)},
		{f.Wall(ColorWhite), core.Pt(5, 4)},
		{f.Wall(ColorWhite), core.Pt(6, 4)},
		{f.Wall(ColorWhite), core.Pt(7, 4)},
		{enemy, core.Pt(6, 5)},
		{f.Box(ColorBrown), core.Pt(2, 5)},
		{f.Box(ColorBrown), core.Pt(3, 6)},
		{f.Box(ColorBrown), core.Pt(5, 7)},
		{f.Potion(ColorPink), core.Pt(8, 5)},
	}
	for _, pl := range placed {
		// Unbounded board, cannot fail.
		_ = b.Add(pl.Pos, pl.Entity)
	}
	b.CacheBounds()
	return b
}

// RandomBoard generates a w x h board walled on every edge, with random
// interior walls, boxes, potions and enemies, and a red player on a random
// interior cell. Sizes below 3x3 are raised to 3x3.
func RandomBoard(f *Factory, rng *rand.Rand, w, h int) *Board {
	w, h = core.Max(w, 3), core.Max(h, 3)

	name := make([]byte, 6)
	for i := range name {
		name[i] = byte('a' + rng.Intn(26))
	}
	b := NewBoard(string(name))
	_ = b.SetBounds(core.NewRect(0, 0, w, h))

	// Colors up to yellow; brown is reserved for neutral boxes.
	randColor := func() Color { return Color(rng.Intn(int(ColorYellow) + 1)) }
	directions := []core.Point{core.Left, core.Right, core.Down, core.Up, core.Zero}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			pos := core.Pt(x, y)
			edge := x == 0 || y == 0 || x == w-1 || y == h-1

			var e *Entity
			switch {
			case edge || rng.Float64() < 0.2:
				c := ColorWhite
				if rng.Float64() < 0.1 {
					c = Colors[rng.Intn(len(Colors))]
				}
				e = f.Wall(c)
			case rng.Float64() < 0.2:
				c := ColorBrown
				if rng.Float64() < 0.8 {
					c = randColor()
				}
				e = f.Box(c)
			case rng.Float64() <= 0.1:
				e = f.Potion(randColor())
			case rng.Float64() <= 0.1:
				e, _ = f.Enemy(randColor(), directions[rng.Intn(len(directions))])
			}
			if e != nil {
				_ = b.Add(pos, e)
			}
		}
	}

	start := core.Pt(1+rng.Intn(w-2), 1+rng.Intn(h-2))
	for _, e := range b.EntitiesAt(start) {
		_ = b.Remove(start, e)
	}
	_ = b.Add(start, f.Player(ColorRed))
	return b
}
