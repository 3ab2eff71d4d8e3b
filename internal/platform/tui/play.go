package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/game"
	"github.com/vovakirdan/knightmare/internal/level"
	"github.com/vovakirdan/knightmare/internal/sound"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Italic(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PlayModel is the Bubble Tea model for playing one level of a campaign.
type PlayModel struct {
	campaign *game.Campaign
	index    int
	session  *game.Session
	sound    sound.Player
	logger   *log.Logger
	keys     PlayKeyMap
	help     help.Model
	config   core.RuntimeConfig

	best      int
	hasBest   bool
	seq       int  // turn counter for animation messages
	animating bool // a move animation is running
	queued    *core.Point
	highlight level.EntitySet
	status    string

	completed   bool // the current win has been recorded; cleared by undo and reset
	campaignWon bool
	backToMenu  bool
	quitting    bool
}

// NewPlayModel opens level index of c.
func NewPlayModel(c *game.Campaign, index int, player sound.Player, logger *log.Logger, cfg core.RuntimeConfig) (PlayModel, error) {
	if player == nil {
		player = sound.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	m := PlayModel{
		campaign: c,
		sound:    player,
		logger:   logger,
		keys:     DefaultPlayKeyMap(),
		help:     h,
		config:   cfg,
	}
	if err := m.open(index); err != nil {
		return m, err
	}
	return m, nil
}

// open starts a session on level index.
func (m *PlayModel) open(index int) error {
	s, err := m.campaign.Start(index)
	if err != nil {
		return err
	}
	m.index = index
	m.session = s
	m.completed = false
	m.campaignWon = false
	m.stopAnimation()
	m.loadBest()
	m.status = ""
	m.sound.Play(sound.LevelStart)
	m.logger.Debug("level started", "level", s.Name(), "index", index, "profile", m.campaign.Profile())
	return nil
}

func (m *PlayModel) loadBest() {
	best, ok, err := m.campaign.Best(m.session.Name())
	if err != nil {
		m.logger.Warn("could not load best steps", "level", m.session.Name(), "error", err)
	}
	m.best, m.hasBest = best, ok
}

func (m *PlayModel) stopAnimation() {
	m.animating = false
	m.queued = nil
	m.highlight = nil
}

// Init initializes the play model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stepDoneMsg:
		if msg.seq != m.seq || !m.animating {
			return m, nil
		}
		queued := m.queued
		m.stopAnimation()
		if queued != nil {
			return m.move(*queued)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.sound.Play(sound.LevelQuit)
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Colorblind):
		m.config.Colorblind = !m.config.Colorblind
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		m.stopAnimation()
		if m.session.Undo() {
			m.sound.Play(sound.Undo)
			m.completed = false
			m.campaignWon = false
			m.status = ""
		} else {
			m.status = "Nothing to undo."
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.stopAnimation()
		m.session.Reset()
		m.completed = false
		m.campaignWon = false
		m.sound.Play(sound.LevelReset)
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if !m.session.Won() {
			return m, nil
		}
		next, ok := m.campaign.Next(m.session.Name())
		if !ok {
			m.backToMenu = true
			return m, nil
		}
		if err := m.open(next); err != nil {
			m.logger.Error("could not open level", "index", next, "error", err)
			m.status = "Could not open the next level."
		}
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		if m.animating {
			m.queued = &dir
			return m, nil
		}
		return m.move(dir)
	}
	return m, nil
}

// move plays one turn.
func (m PlayModel) move(dir core.Point) (tea.Model, tea.Cmd) {
	name := m.session.Name()
	ev, err := m.session.Move(dir)
	if errors.Is(err, game.ErrLevelOver) {
		return m, nil
	}
	if err != nil {
		m.logger.Error("turn failed", "level", name, "step", m.session.Steps(), "error", err)
		m.sound.Play(sound.Error)
		m.status = "That move broke the board; it was discarded."
		return m, nil
	}

	m.logger.Debug("turn", "level", name, "step", m.session.Steps(), "events", ev)
	sound.PlayAll(m.sound, sound.Cues(ev))
	m.status = ""

	switch {
	case m.session.Won():
		m.complete()
	case m.session.Lost():
		m.status = "You were caught! Press z to undo or r to reset."
	}

	if m.config.StepTime <= 0 {
		return m, nil
	}
	m.seq++
	m.animating = true
	m.highlight = ev.Moved
	return m, stepCmd(m.config.StepTime, m.seq)
}

// complete records the win of the current level once.
func (m *PlayModel) complete() {
	if m.completed {
		return
	}
	m.completed = true
	name, steps := m.session.Name(), m.session.Steps()

	improved, err := m.campaign.Complete(name, steps)
	if err != nil {
		m.logger.Warn("could not record completion", "level", name, "error", err)
	}
	m.logger.Info("level completed", "level", name, "steps", steps, "profile", m.campaign.Profile(), "improved", improved)
	m.loadBest()

	if _, ok := m.campaign.Next(name); ok {
		m.sound.Play(sound.LevelCompleted)
		m.status = fmt.Sprintf("Cleared in %d steps! Press enter for the next level.", steps)
		return
	}

	done, err := m.campaign.AllComplete()
	if err != nil {
		m.logger.Warn("could not check campaign", "error", err)
	}
	if done {
		m.campaignWon = true
		m.sound.Play(sound.GameWon)
		total, _ := m.campaign.TotalSteps()
		m.status = fmt.Sprintf("Every level cleared! %d steps in total. Press enter to return.", total)
		return
	}
	m.sound.Play(sound.LevelCompleted)
	m.status = fmt.Sprintf("Cleared in %d steps! Some levels remain. Press enter to return.", steps)
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	b := m.session.Board()
	title := titleStyle.Render(fmt.Sprintf("Level %d/%d  %s", m.index+1, m.campaign.Pack().Len(), m.session.Name()))

	best := "-"
	if m.hasBest {
		best = fmt.Sprintf("%d", m.best)
	}
	info := infoStyle.Render(fmt.Sprintf("step %d   best %s   enemies %d/%d",
		m.session.Steps(), best, b.EnemiesRemaining(), m.session.OriginalEnemies()))

	board := RenderBoard(b, PaletteFor(m.config.Colorblind), m.highlight)

	parts := []string{title, info, "", board, ""}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(m.help.View(m.keys)))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return content
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, content)
}

// Session returns the level session being played.
func (m PlayModel) Session() *game.Session { return m.session }

// Index returns the pack index of the level being played.
func (m PlayModel) Index() int { return m.index }

// Config returns the current runtime config (may have been updated by resize or palette toggle).
func (m PlayModel) Config() core.RuntimeConfig { return m.config }

// CampaignWon reports whether the last win completed the whole pack.
func (m PlayModel) CampaignWon() bool { return m.campaignWon }

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to level select.
func (m PlayModel) BackToMenu() bool { return m.backToMenu }
