package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/level"
	"github.com/vovakirdan/knightmare/internal/levels"
)

func decode(t *testing.T, name string, rows ...string) *level.Board {
	t.Helper()
	b, err := level.NewCodec(level.NewFactory(), nil).Decode(level.Blob{Name: name, Data: rows})
	if err != nil {
		t.Fatalf("decode %s: %v", name, err)
	}
	return b
}

// push is solved by moving right twice.
func push(t *testing.T) *level.Board {
	return decode(t, "Push",
		"W0 W0 W0 W0 W0 W0",
		"W0 P1 B6    N2 W0",
		"W0 W0 W0 W0 W0 W0",
	)
}

func positions(b *level.Board) map[level.EntityID]core.Point {
	out := make(map[level.EntityID]core.Point)
	for _, pl := range b.All() {
		out[pl.Entity.ID()] = pl.Pos
	}
	return out
}

func TestSessionMoveUndoReset(t *testing.T) {
	initial := push(t)
	s := NewSession(initial)
	start := positions(s.Board())

	if s.Undo() {
		t.Error("Undo at the start should report false")
	}

	if _, err := s.Move(core.Right); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if s.Steps() != 1 {
		t.Errorf("Steps() = %d, expected 1", s.Steps())
	}
	afterOne := positions(s.Board())

	if _, err := s.Move(core.Up); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !s.Undo() {
		t.Fatal("Undo should succeed")
	}
	if s.Steps() != 1 {
		t.Errorf("Steps() after undo = %d, expected 1", s.Steps())
	}
	got := positions(s.Board())
	for id, p := range afterOne {
		if got[id] != p {
			t.Errorf("undo: entity %d at %v, expected %v", id, got[id], p)
		}
	}

	s.Reset()
	if s.Steps() != 0 || s.Board().Prev() != nil {
		t.Error("Reset should return to a fresh initial board")
	}
	got = positions(s.Board())
	for id, p := range start {
		if got[id] != p {
			t.Errorf("reset: entity %d at %v, expected %v", id, got[id], p)
		}
	}
	for id, p := range positions(initial) {
		if start[id] != p {
			t.Errorf("initial board changed during play: entity %d at %v", id, p)
		}
	}
}

func TestSessionUndoDoesNotAlias(t *testing.T) {
	s := NewSession(push(t))
	_, _ = s.Move(core.Right)
	first := s.Board()
	_, _ = s.Move(core.Right)
	s.Undo()

	if s.Board() == first {
		t.Fatal("Undo should adopt a copy of the previous board")
	}
	_, _ = s.Move(core.Right)
	if first.IsSuccess() {
		t.Error("playing after undo mutated the history entry")
	}
}

func TestSessionWinAndLose(t *testing.T) {
	s := NewSession(push(t))
	if s.Won() {
		t.Error("Won() before any move")
	}
	if s.OriginalEnemies() != 1 {
		t.Errorf("OriginalEnemies() = %d", s.OriginalEnemies())
	}

	_, _ = s.Move(core.Right)
	ev, err := s.Move(core.Right)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Won() || ev.Killed.Len() != 1 {
		t.Fatalf("expected a win, events: %s", ev)
	}
	if s.OriginalEnemies() != 1 {
		t.Errorf("OriginalEnemies() after win = %d", s.OriginalEnemies())
	}
	if _, err := s.Move(core.Left); !errors.Is(err, ErrLevelOver) {
		t.Errorf("Move after win error = %v", err)
	}

	lose := NewSession(decode(t, "Lose", "P1 L2"))
	_, _ = lose.Move(core.Zero)
	if !lose.Lost() {
		t.Fatal("player should have died")
	}
	if _, err := lose.Move(core.Zero); !errors.Is(err, ErrLevelOver) {
		t.Errorf("Move after death error = %v", err)
	}
	if !lose.Undo() || lose.Lost() {
		t.Error("Undo should bring the player back")
	}
}

func TestSessionKeepsBoardOnError(t *testing.T) {
	s := NewSession(push(t))
	before := s.Board()
	if _, err := s.Move(core.Pt(2, 0)); !errors.Is(err, level.ErrInvalidDirection) {
		t.Errorf("Move error = %v", err)
	}
	if s.Board() != before {
		t.Error("failed move replaced the board")
	}
}

func newCampaign(t *testing.T, store ProgressStore) *Campaign {
	t.Helper()
	pack := levels.NewPack([]levels.Level{
		{Board: push(t)},
		{Board: decode(t, "Second", "P1 N2 W0")},
		{Board: decode(t, "Third", "P1 N3 W0")},
	})
	return NewCampaign(pack, store, "tester")
}

func TestCampaignCompletion(t *testing.T) {
	c := newCampaign(t, nil)

	improved, err := c.Complete("Push", 5)
	if err != nil || !improved {
		t.Fatalf("first completion = %v, %v", improved, err)
	}
	if improved, _ := c.Complete("Push", 7); improved {
		t.Error("a worse run must not replace the best")
	}
	if improved, _ := c.Complete("Push", 2); !improved {
		t.Error("a better run should replace the best")
	}
	_, _ = c.Complete("Second", 4)

	total, err := c.TotalSteps()
	if err != nil || total != 6 {
		t.Errorf("TotalSteps() = %d, %v, expected 6", total, err)
	}
	if done, _ := c.AllComplete(); done {
		t.Error("AllComplete() with a level left")
	}
	if got := c.FirstIncomplete(); got != 2 {
		t.Errorf("FirstIncomplete() = %d, expected 2", got)
	}

	_, _ = c.Complete("Third", 1)
	if done, _ := c.AllComplete(); !done {
		t.Error("AllComplete() should be true")
	}

	progress, err := c.Progress()
	if err != nil {
		t.Fatal(err)
	}
	if len(progress) != 3 || progress[0].BestSteps != 2 || !progress[1].Completed || progress[2].Enemies != 1 {
		t.Errorf("Progress() = %+v", progress)
	}
}

func TestCampaignNavigation(t *testing.T) {
	c := newCampaign(t, NewMemoryProgress())

	if i, ok := c.Next("Push"); !ok || i != 1 {
		t.Errorf("Next(Push) = %d, %v", i, ok)
	}
	if _, ok := c.Next("Third"); ok {
		t.Error("Next after the last level should report false")
	}
	if _, ok := c.Next("Missing"); ok {
		t.Error("Next of an unknown level should report false")
	}

	s, err := c.Start(1)
	if err != nil || s.Name() != "Second" {
		t.Fatalf("Start(1) = %v, %v", s, err)
	}
	if _, err := c.Start(3); err == nil {
		t.Error("Start out of range should fail")
	}
}

func TestMemoryProgressProfiles(t *testing.T) {
	m := NewMemoryProgress()
	_, _ = m.RecordCompletion("alice", "Push", 3)

	if _, ok, _ := m.BestSteps("bob", "Push"); ok {
		t.Error("profiles must not share progress")
	}
	if steps, ok, _ := m.BestSteps("alice", "Push"); !ok || steps != 3 {
		t.Errorf("BestSteps = %d, %v", steps, ok)
	}
}
