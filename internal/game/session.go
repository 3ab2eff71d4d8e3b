// Package game drives play of a level pack: a Session owns the current board
// and its history, a Campaign tracks completions across levels.
package game

import (
	"errors"

	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/level"
)

// ErrLevelOver is returned by Move once the level is won or the player died.
// Undo and Reset still work.
var ErrLevelOver = errors.New("game: level is over")

// Session plays one level. The initial board is never mutated.
type Session struct {
	initial *level.Board
	current *level.Board
}

// NewSession starts a session on a copy of initial.
func NewSession(initial *level.Board) *Session {
	return &Session{
		initial: initial,
		current: initial.Clone(),
	}
}

// Name returns the level name.
func (s *Session) Name() string { return s.initial.Name }

// Board returns the current board. Callers must not mutate it.
func (s *Session) Board() *level.Board { return s.current }

// Steps returns the number of turns taken since the start or last reset.
func (s *Session) Steps() int { return s.current.Step }

// Won reports whether at least one turn was taken and no enemy remains.
func (s *Session) Won() bool {
	return s.current.Step > 0 && s.current.IsSuccess()
}

// Lost reports whether the player is gone.
func (s *Session) Lost() bool {
	return !s.current.PlayerAlive()
}

// OriginalEnemies returns the enemy count of the first board in the history.
func (s *Session) OriginalEnemies() int {
	return s.current.Initial().EnemiesRemaining()
}

// Move resolves one turn. On error the current board is kept.
func (s *Session) Move(dir core.Point) (*level.Events, error) {
	if s.Won() || s.Lost() {
		return nil, ErrLevelOver
	}
	next, err := s.current.Next(dir)
	if err != nil {
		return nil, err
	}
	s.current = next
	return next.Events(), nil
}

// Undo steps back one turn. It reports false at the start of the history.
func (s *Session) Undo() bool {
	prev := s.current.Prev()
	if prev == nil {
		return false
	}
	// Clone so the history entry stays untouched by later turns.
	s.current = prev.Clone()
	return true
}

// Reset discards the history and restarts from the initial board.
func (s *Session) Reset() {
	s.current = s.initial.Clone()
}
