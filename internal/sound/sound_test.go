package sound

import (
	"bytes"
	"testing"

	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/level"
)

func turn(t *testing.T, dir core.Point, rows ...string) *level.Events {
	t.Helper()
	b, err := level.NewCodec(level.NewFactory(), nil).Decode(level.Blob{Name: "t", Data: rows})
	if err != nil {
		t.Fatal(err)
	}
	next, err := b.Next(dir)
	if err != nil {
		t.Fatal(err)
	}
	return next.Events()
}

func TestCues(t *testing.T) {
	tests := []struct {
		name string
		dir  core.Point
		rows []string
		want []Cue
	}{
		{"walk", core.Right, []string{"P1    W0"}, []Cue{PlayerMoved}},
		{"skip", core.Zero, []string{"P1 W0"}, []Cue{PlayerSkipped}},
		{"push box", core.Right, []string{"P1 B6    W0"}, []Cue{BoxMoved, PlayerMoved}},
		{"crush enemy", core.Right, []string{"P1 B6 N2 W0"}, []Cue{BoxMoved, PlayerMoved, EnemyKilled}},
		{"crush potion", core.Right, []string{"P1 B6 p3 W0"}, []Cue{BoxMoved, PlayerMoved, PotionCrushed}},
		{"drink potion", core.Right, []string{"P1 p3 W0"}, []Cue{PlayerMoved, PotionConsumed}},
		{"die", core.Zero, []string{"P1 L2"}, []Cue{PlayerKilled}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Cues(turn(t, tc.dir, tc.rows...))
			if len(got) != len(tc.want) {
				t.Fatalf("Cues() = %v, expected %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Cues()[%d] = %q, expected %q", i, got[i], tc.want[i])
				}
			}
		})
	}

	if Cues(nil) != nil {
		t.Error("Cues(nil) should be nil")
	}
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	p := New(false, &buf)
	PlayAll(p, []Cue{PlayerMoved, BoxMoved, PlayerKilled, LevelCompleted})
	if got := buf.String(); got != "\a\a" {
		t.Errorf("bell output = %q, expected two bells", got)
	}

	buf.Reset()
	PlayAll(New(true, &buf), []Cue{PlayerKilled})
	if buf.Len() != 0 {
		t.Error("muted player should stay silent")
	}
}
