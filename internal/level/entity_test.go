package level

import (
	"errors"
	"testing"

	"github.com/vovakirdan/knightmare/internal/core"
)

func TestKindCapabilities(t *testing.T) {
	tests := []struct {
		kind      Kind
		solid     bool
		pushable  bool
		crushable bool
	}{
		{KindPlayer, false, true, false},
		{KindWall, true, false, false},
		{KindBox, true, true, false},
		{KindEnemy, false, true, true},
		{KindPotion, false, true, true},
		{KindSnake, true, true, false},
	}

	f := NewFactory()
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			e, err := f.New(tc.kind, ColorRed, core.Zero)
			if err != nil {
				t.Fatalf("New(%s) error: %v", tc.kind, err)
			}
			if e.IsSolid() != tc.solid {
				t.Errorf("IsSolid() = %v, expected %v", e.IsSolid(), tc.solid)
			}
			if e.IsPushable() != tc.pushable {
				t.Errorf("IsPushable() = %v, expected %v", e.IsPushable(), tc.pushable)
			}
			if e.IsCrushable() != tc.crushable {
				t.Errorf("IsCrushable() = %v, expected %v", e.IsCrushable(), tc.crushable)
			}
			if e.IsWall() != (tc.kind == KindWall) || e.IsBox() != (tc.kind == KindBox) {
				t.Errorf("IsWall/IsBox mismatch for %s", tc.kind)
			}
		})
	}
}

func TestFactoryUniqueIDs(t *testing.T) {
	f := NewFactory()
	seen := make(map[EntityID]bool)
	for i := 0; i < 100; i++ {
		e := f.Box(ColorBrown)
		if seen[e.ID()] {
			t.Fatalf("duplicate id %d", e.ID())
		}
		seen[e.ID()] = true
	}

	// Independent factories do not share counters.
	if NewFactory().Wall(ColorWhite).ID() != NewFactory().Wall(ColorWhite).ID() {
		t.Error("fresh factories should start from the same id")
	}
}

func TestEnemyDirection(t *testing.T) {
	tests := []struct {
		dir    core.Point
		walker Walker
		ok     bool
	}{
		{core.Zero, WalkerStationary, true},
		{core.Left, WalkerHorizontal, true},
		{core.Right, WalkerHorizontal, true},
		{core.Up, WalkerVertical, true},
		{core.Down, WalkerVertical, true},
		{core.Pt(1, 1), WalkerNone, false},
		{core.Pt(0, 2), WalkerNone, false},
	}

	f := NewFactory()
	for _, tc := range tests {
		e, err := f.Enemy(ColorGreen, tc.dir)
		if !tc.ok {
			if !errors.Is(err, ErrInvalidDirection) {
				t.Errorf("Enemy(%v) error = %v, expected ErrInvalidDirection", tc.dir, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Enemy(%v) unexpected error: %v", tc.dir, err)
		}
		if e.Walker() != tc.walker {
			t.Errorf("Enemy(%v).Walker() = %s, expected %s", tc.dir, e.Walker(), tc.walker)
		}
		if e.Direction() != tc.dir {
			t.Errorf("Enemy(%v).Direction() = %v", tc.dir, e.Direction())
		}
	}

	if w := f.Player(ColorRed).Walker(); w != WalkerNone {
		t.Errorf("player Walker() = %s, expected none", w)
	}
}

func TestSetDirectionKeepsOtherAxis(t *testing.T) {
	f := NewFactory()
	e, _ := f.Enemy(ColorGreen, core.Left)
	if e.ArtDirection() != core.Pt(-1, 1) {
		t.Fatalf("initial art direction = %v, expected (-1,1)", e.ArtDirection())
	}

	e.SetDirection(core.Up)
	if e.Direction() != core.Up {
		t.Errorf("Direction() = %v, expected up", e.Direction())
	}
	if e.ArtDirection() != core.Pt(-1, -1) {
		t.Errorf("vertical turn should keep horizontal facing, got %v", e.ArtDirection())
	}

	e.SetDirection(core.Zero)
	if e.ArtDirection() != core.Pt(-1, -1) {
		t.Errorf("zero direction should not change art direction, got %v", e.ArtDirection())
	}
}

func TestEntityCopy(t *testing.T) {
	f := NewFactory()
	e := f.Player(ColorRed)
	c := e.Copy()

	if c == e {
		t.Fatal("Copy returned the same pointer")
	}
	if c.ID() != e.ID() {
		t.Errorf("Copy changed id: %d != %d", c.ID(), e.ID())
	}

	c.SetDirection(core.Left)
	c.color = ColorBlue
	if e.Direction() == core.Left || e.Color() == ColorBlue {
		t.Error("mutating a copy must not affect the original")
	}
}

func TestCanInteract(t *testing.T) {
	all := append([]Color{ColorBlack}, Colors...)
	for _, a := range all {
		for _, b := range all {
			if CanInteract(a, b) != CanInteract(b, a) {
				t.Errorf("CanInteract(%s, %s) is not symmetric", a, b)
			}
		}
		if a != ColorBrown && CanInteract(a, a) {
			t.Errorf("CanInteract(%s, %s) should be false", a, a)
		}
	}

	tests := []struct {
		a, b     Color
		expected bool
	}{
		{ColorRed, ColorGreen, true},
		{ColorBrown, ColorBrown, true},
		{ColorBrown, ColorBlack, true},
		{ColorRed, ColorBlack, false},
		{ColorBlack, ColorBlack, false},
	}
	for _, tc := range tests {
		if got := CanInteract(tc.a, tc.b); got != tc.expected {
			t.Errorf("CanInteract(%s, %s) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestColorClamp(t *testing.T) {
	if got := ColorBlack.Clamp(); got != ColorWhite {
		t.Errorf("ColorBlack.Clamp() = %s", got)
	}
	if got := Color(9).Clamp(); got != ColorBrown {
		t.Errorf("Color(9).Clamp() = %s", got)
	}
	if got := ColorPink.Clamp(); got != ColorPink {
		t.Errorf("ColorPink.Clamp() = %s", got)
	}
}
