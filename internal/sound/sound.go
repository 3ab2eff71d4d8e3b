// Package sound decides which sound cues a turn produces and plays them on
// whatever the front-end has available.
package sound

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knightmare/internal/level"
)

// Cue names a sound effect.
type Cue string

// Turn cues. Several events share a sample.
const (
	BoxMoved       Cue = "box_move"
	PlayerMoved    Cue = "move"
	EnemyMoved     Cue = "move"
	PlayerSkipped  Cue = "move"
	PlayerKilled   Cue = "synth"
	EnemyKilled    Cue = "synth"
	PotionCrushed  Cue = "click"
	PotionConsumed Cue = "powerup"
)

// Menu and level-flow cues.
const (
	LevelStart     Cue = "level_start"
	LevelQuit      Cue = "level_quit"
	LevelReset     Cue = "reset"
	Undo           Cue = "undo"
	LevelCompleted Cue = "level_complete"
	GameWon        Cue = "game_won"
	Error          Cue = "error"
)

// Cues maps a turn's events to the cues to play, without duplicates.
// At most one cue comes from each of three groups: boxes, the player and
// enemies, and deaths or potions.
func Cues(ev *level.Events) []Cue {
	if ev == nil {
		return nil
	}

	var out []Cue
	add := func(c Cue) {
		for _, have := range out {
			if have == c {
				return
			}
		}
		out = append(out, c)
	}

	if ev.Moved.HasKind(level.KindBox) {
		add(BoxMoved)
	}

	switch {
	case ev.Killed.HasKind(level.KindPlayer):
		add(PlayerKilled)
	case ev.Moved.HasKind(level.KindPlayer):
		add(PlayerMoved)
	case ev.Moved.HasKind(level.KindEnemy), ev.Turned.HasKind(level.KindEnemy):
		add(EnemyMoved)
	default:
		add(PlayerSkipped)
	}

	switch {
	case ev.Killed.HasKind(level.KindEnemy):
		add(EnemyKilled)
	case ev.Crushed.HasKind(level.KindPotion):
		add(PotionCrushed)
	case ev.Consumed.HasKind(level.KindPotion):
		add(PotionConsumed)
	}
	return out
}

// Player plays cues.
type Player interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) {}

// Bell rings the terminal bell for cues worth the player's attention.
// Ordinary movement stays silent.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell writing to w, usually the session's terminal.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(c Cue) {
	switch c {
	case PlayerKilled, LevelCompleted, GameWon, Error:
	default:
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	//nolint:errcheck // A missed bell is harmless
	b.w.Write([]byte{'\a'})
}

// Log records cues at debug level, for headless front-ends.
type Log struct {
	Logger *log.Logger
}

func (l Log) Play(c Cue) {
	if l.Logger != nil {
		l.Logger.Debug("sound", "cue", string(c))
	}
}

// New returns the player for the given settings.
func New(muted bool, w io.Writer) Player {
	if muted || w == nil {
		return Nop{}
	}
	return NewBell(w)
}

// PlayAll plays each cue in order.
func PlayAll(p Player, cues []Cue) {
	for _, c := range cues {
		p.Play(c)
	}
}
