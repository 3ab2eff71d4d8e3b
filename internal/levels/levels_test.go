package levels

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/level"
)

func TestEmbeddedPack(t *testing.T) {
	pack, err := NewLoader(Embedded(), nil, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"Push", "Colors", "Potions", "Patrol", "Blocks"}
	if pack.Len() != len(want) {
		t.Fatalf("Len() = %d, expected %d", pack.Len(), len(want))
	}
	for i, name := range want {
		l := pack.At(i)
		if l.Name() != name {
			t.Errorf("level %d = %q, expected %q", i, l.Name(), name)
		}
		if !l.Board.PlayerAlive() || l.Board.EnemiesRemaining() == 0 {
			t.Errorf("level %q needs a player and an enemy", name)
		}
		if _, ok := l.Board.Bounds(); !ok {
			t.Errorf("level %q has no bounds", name)
		}
	}
}

// The first levels are tutorials with short known solutions.
func TestEmbeddedSolutions(t *testing.T) {
	solutions := map[string][]core.Point{
		"Push":    {core.Right, core.Right},
		"Colors":  {core.Down, core.Right, core.Right, core.Right},
		"Potions": {core.Right, core.Right, core.Right},
		"Patrol":  {core.Right, core.Right, core.Right},
	}

	pack, err := NewLoader(Embedded(), nil, nil).Load()
	if err != nil {
		t.Fatal(err)
	}
	for name, moves := range solutions {
		t.Run(name, func(t *testing.T) {
			l, ok := pack.ByName(name)
			if !ok {
				t.Fatalf("level %q missing", name)
			}
			b := l.Board
			for i, dir := range moves {
				next, err := b.Next(dir)
				if err != nil {
					t.Fatalf("move %d: %v", i, err)
				}
				b = next
				if !b.PlayerAlive() {
					t.Fatalf("player died on move %d: %s", i, b.Events())
				}
			}
			if !b.IsSuccess() {
				t.Errorf("not solved after %d moves:\n%s", len(moves), b)
			}
		})
	}
}

func TestLoaderOrderAndFailures(t *testing.T) {
	fsys := fstest.MapFS{
		"b.json":     {Data: []byte(`{"name": "Second", "data": ["P1 L2"]}`)},
		"a.json":     {Data: []byte(`{"name": "First", "data": ["P1 N2"]}`)},
		"c.json":     {Data: []byte(`{broken`)},
		"d.json":     {Data: []byte(`{"data": ["P1 R3"]}`)},
		"readme.txt": {Data: []byte("not a level")},
		"sub/e.json": {Data: []byte(`{"name": "Nested", "data": ["P1"]}`)},
	}

	var buf bytes.Buffer
	logger := log.New(&buf)
	pack, err := NewLoader(fsys, nil, logger).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"First", "Second", "d"}
	if pack.Len() != len(want) {
		t.Fatalf("Len() = %d, expected %d", pack.Len(), len(want))
	}
	for i, name := range want {
		if got := pack.At(i).Name(); got != name {
			t.Errorf("level %d = %q, expected %q", i, got, name)
		}
	}
	if !strings.Contains(buf.String(), "c.json") {
		t.Errorf("broken file should be logged with its name:\n%s", buf.String())
	}
	if pack.IndexOf("Second") != 1 || pack.IndexOf("Nested") != -1 {
		t.Error("IndexOf mismatch")
	}
}

func TestLoaderEmpty(t *testing.T) {
	fsys := fstest.MapFS{"bad.json": {Data: []byte(`nope`)}}
	if _, err := NewLoader(fsys, nil, nil).Load(); !errors.Is(err, ErrNoLevels) {
		t.Errorf("Load error = %v, expected ErrNoLevels", err)
	}
}

func TestPackDuplicateNames(t *testing.T) {
	f := level.NewFactory()
	a, b := level.Demo(f), level.Demo(f)
	pack := NewPack([]Level{{Board: a}, {Board: b}})
	if pack.Len() != 1 {
		t.Errorf("Len() = %d, expected duplicates dropped", pack.Len())
	}
	if l, ok := pack.ByName("Demo"); !ok || l.Board != a {
		t.Error("ByName should return the first level")
	}
}

func TestFake(t *testing.T) {
	pack := Fake(level.NewFactory(), rand.New(rand.NewSource(3)), 24)
	if pack.Len() == 0 || pack.Len() > 24 {
		t.Fatalf("Len() = %d", pack.Len())
	}
	for _, l := range pack.Levels() {
		if !l.Board.PlayerAlive() {
			t.Errorf("fake level %q has no player", l.Name())
		}
	}
}

func TestCheck(t *testing.T) {
	codec := level.NewCodec(level.NewFactory(), nil)
	decode := func(name string, rows ...string) *level.Board {
		t.Helper()
		b, err := codec.Decode(level.Blob{Name: name, Data: rows})
		if err != nil {
			t.Fatal(err)
		}
		return b
	}

	tests := []struct {
		name   string
		board  *level.Board
		expect []string
		fatal  bool
	}{
		{"clean", decode("clean", "P1 B6 N2 W0"), nil, false},
		{"no player", decode("empty", "W0 N2"), []string{"no player"}, true},
		{"no enemies", decode("calm", "P1 W0"), []string{"no enemies"}, true},
		{"two players", decode("twins", "P1 P2 N3"), []string{"2 players"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			problems := Check(Level{File: tc.name + ".json", Board: tc.board})
			if len(problems) != len(tc.expect) {
				t.Fatalf("Check() = %v, expected %d problems", problems, len(tc.expect))
			}
			for i, want := range tc.expect {
				if !strings.Contains(problems[i].Message, want) {
					t.Errorf("problem %d = %q, expected %q", i, problems[i].Message, want)
				}
				if problems[i].Fatal != tc.fatal {
					t.Errorf("problem %d fatal = %v", i, problems[i].Fatal)
				}
			}
		})
	}
}

func TestCheckStackedCell(t *testing.T) {
	f := level.NewFactory()
	b := level.NewBoard("stacked")
	_ = b.Add(core.Pt(0, 0), f.Player(level.ColorRed))
	_ = b.Add(core.Pt(0, 0), f.Potion(level.ColorBlue))
	e, _ := f.Enemy(level.ColorGreen, core.Zero)
	_ = b.Add(core.Pt(1, 0), e)

	problems := Check(Level{Board: b})
	if len(problems) != 1 || !strings.Contains(problems[0].String(), "stacked: warning: cell (0,0) holds 2 entities") {
		t.Errorf("Check() = %v", problems)
	}
}

func TestEmbeddedPackIsClean(t *testing.T) {
	pack, err := NewLoader(Embedded(), nil, nil).Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range CheckPack(pack) {
		t.Errorf("embedded level problem: %s", p)
	}
}

func TestLoaderLogsDuplicateNames(t *testing.T) {
	fsys := fstest.MapFS{
		"01.json": {Data: []byte(`{"name": "Same", "data": ["P1 N2"]}`)},
		"02.json": {Data: []byte(`{"name": "Same", "data": ["P1 L2"]}`)},
	}

	var buf bytes.Buffer
	pack, err := NewLoader(fsys, nil, log.New(&buf)).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pack.Len() != 1 || pack.At(0).File != "01.json" {
		t.Errorf("expected only 01.json to be kept, got %d levels", pack.Len())
	}
	out := buf.String()
	if !strings.Contains(out, "duplicate level name") || !strings.Contains(out, "02.json") {
		t.Errorf("duplicate should be logged with its file:\n%s", out)
	}
}
