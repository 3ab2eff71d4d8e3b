// Package tui provides the Bubble Tea front-end for knightmare: the level
// select screen, the play screen and the Wish SSH server that serves both.
package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/game"
	"github.com/vovakirdan/knightmare/internal/sound"
)

// SessionModel manages the full session flow: level select -> play -> level select.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	campaign *game.Campaign
	sound    sound.Player
	logger   *log.Logger
	config   core.RuntimeConfig
	menu     LevelSelectModel
	play     *PlayModel
	inGame   bool
	quitting bool
}

// NewSessionModel creates a new session model on campaign c.
func NewSessionModel(c *game.Campaign, player sound.Player, logger *log.Logger, cfg core.RuntimeConfig) SessionModel {
	if player == nil {
		player = sound.Nop{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		campaign: c,
		sound:    player,
		logger:   logger,
		config:   cfg,
		menu:     NewLevelSelectModel(c, cfg.ScreenW, cfg.ScreenH, c.FirstIncomplete()),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.inGame && m.play != nil {
		return m.updatePlay(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when on the level select screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(LevelSelectModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if index, ok := m.menu.Selected(); ok {
		play, err := NewPlayModel(m.campaign, index, m.sound, m.logger, m.config)
		if err != nil {
			m.logger.Error("could not open level", "index", index, "error", err)
			m.menu = NewLevelSelectModel(m.campaign, m.config.ScreenW, m.config.ScreenH, index)
			return m, nil
		}
		m.play = &play
		m.inGame = true
		return m, m.play.Init()
	}

	return m, cmd
}

// updatePlay handles updates when playing a level.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(PlayModel); ok {
		m.play = &playModel
	}

	if m.play.BackToMenu() {
		// Keep the palette choice across levels
		m.config.Colorblind = m.play.Config().Colorblind
		cursor := m.play.Index()
		if m.play.CampaignWon() {
			cursor = 0
		}
		m.inGame = false
		m.play = nil
		m.menu = NewLevelSelectModel(m.campaign, m.config.ScreenW, m.config.ScreenH, cursor)
		return m, m.menu.Init()
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inGame && m.play != nil {
		return m.play.View()
	}
	return m.menu.View()
}

// Run starts a local Bubble Tea program on campaign c.
func Run(c *game.Campaign, player sound.Player, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewSessionModel(c, player, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
