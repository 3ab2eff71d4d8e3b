package level

import (
	"testing"

	"github.com/vovakirdan/knightmare/internal/core"
)

func TestTopmost(t *testing.T) {
	f := NewFactory()
	wall, player, potion := f.Wall(ColorRed), f.Player(ColorRed), f.Potion(ColorBlue)
	enemy, _ := f.Enemy(ColorRed, core.Up)

	tests := []struct {
		name  string
		stack []*Entity
		want  *Entity
	}{
		{"empty", nil, nil},
		{"player over wall", []*Entity{wall, player}, player},
		{"player over enemy", []*Entity{enemy, player}, player},
		{"enemy over potion", []*Entity{potion, enemy}, enemy},
		{"single", []*Entity{potion}, potion},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Topmost(tc.stack); got != tc.want {
				t.Errorf("Topmost() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestToken(t *testing.T) {
	f := NewFactory()
	left, _ := f.Enemy(ColorGreen, core.Left)
	still, _ := f.Enemy(ColorBlue, core.Zero)

	tests := []struct {
		e    *Entity
		want string
	}{
		{nil, "  "},
		{f.Player(ColorRed), "P1"},
		{f.Wall(ColorWhite), "W0"},
		{f.Box(ColorBrown), "B6"},
		{f.Potion(ColorPink), "p4"},
		{left, "L2"},
		{still, "N3"},
	}
	for _, tc := range tests {
		if got := Token(tc.e); got != tc.want {
			t.Errorf("Token(%v) = %q, expected %q", tc.e, got, tc.want)
		}
	}
}
