package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/knightmare/internal/game"
)

// Level select layout constants
const (
	selectMinHeight = 5  // Minimum visible table rows
	selectChrome    = 10 // Lines taken by title, totals, borders and help
)

// LevelSelectModel is the Bubble Tea model for picking a level.
type LevelSelectModel struct {
	campaign *game.Campaign
	progress []game.LevelProgress
	total    int
	table    table.Model
	help     help.Model
	keys     SelectKeyMap
	width    int
	height   int
	err      error
	selected int // -1 until the user picks a level
	quitting bool
}

// NewLevelSelectModel creates a level select model with the cursor on cursor.
func NewLevelSelectModel(c *game.Campaign, width, height, cursor int) LevelSelectModel {
	m := LevelSelectModel{
		campaign: c,
		help:     help.New(),
		keys:     DefaultSelectKeyMap(),
		width:    width,
		height:   height,
		selected: -1,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.loadProgress()
	m.table.SetCursor(cursor)
	return m
}

// createTable creates a new table with appropriate columns.
func (m *LevelSelectModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 24},
		{Title: "Enemies", Width: 8},
		{Title: "Best", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-selectChrome, selectMinHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadProgress refreshes the rows from the campaign's save data.
func (m *LevelSelectModel) loadProgress() {
	progress, err := m.campaign.Progress()
	if err != nil {
		m.err = err
		progress = nil
	}
	m.progress = progress
	m.total, _ = m.campaign.TotalSteps()

	rows := make([]table.Row, len(progress))
	for i, p := range progress {
		best := "-"
		if p.Completed {
			best = fmt.Sprintf("%d", p.BestSteps)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", p.Index+1),
			p.Name,
			fmt.Sprintf("%d", p.Enemies),
			best,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the level select model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the level select screen.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.progress) > 0 {
				m.selected = m.table.Cursor()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.loadProgress()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the level select screen.
func (m LevelSelectModel) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.MarginBottom(1).Render("K N I G H T M A R E")

	done := 0
	for _, p := range m.progress {
		if p.Completed {
			done++
		}
	}
	totals := infoStyle.Render(fmt.Sprintf("profile %s   cleared %d/%d   total best %d steps",
		m.campaign.Profile(), done, len(m.progress), m.total))

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	body := m.table.View()
	if m.err != nil {
		body = statusStyle.Render("Could not load save data: " + m.err.Error())
	} else if len(m.progress) == 0 {
		body = statusStyle.Render("No levels found.")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		totals,
		tableStyle.Render(body),
		helpStyle.Render(m.help.View(m.keys)),
	)
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Selected returns the chosen level index, or false if none was chosen.
func (m LevelSelectModel) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// IsQuitting returns true if user requested to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}
