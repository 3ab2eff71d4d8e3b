package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// stepDoneMsg ends the move animation of turn seq.
type stepDoneMsg struct {
	seq int
}

// stepCmd returns a command that ends the animation of turn seq after d.
func stepCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return stepDoneMsg{seq: seq}
	})
}
