package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

// History layout constants
const (
	maxSessions  = 100 // Max sessions to load
	idColumn     = 8   // Short ID width, enough for `candy replay`
	tableChrome  = 8   // Rows taken by title, tabs, borders and help
	minTableRows = 3
)

// SessionSource is the part of the journal the history screen reads.
type SessionSource interface {
	RecentSessions(gameID string, limit int) ([]storage.SessionRecord, error)
	DeleteSession(id string) error
}

// historyFilter is one tab of the history screen.
type historyFilter struct {
	title  string
	gameID string // empty matches every game
}

var historyFilters = []historyFilter{
	{"All", ""},
	{"Campaign", candy.IDCampaign},
	{"Endless", candy.IDEndless},
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Delete  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing journaled sessions.
type HistoryModel struct {
	source    SessionSource
	filter    int
	sessions  []storage.SessionRecord
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history screen over source.
func NewHistoryModel(source SessionSource, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		source: source,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: idColumn},
		{Title: "Mode", Width: 9},
		{Title: "Lvl", Width: 3},
		{Title: "Score", Width: 7},
		{Title: "Ticks", Width: 7},
		{Title: "Done", Width: 4},
		{Title: "Played", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-tableChrome, minTableRows)),
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

// load reads the sessions for the current tab.
func (m *HistoryModel) load() {
	m.sessions, m.loadErr = nil, nil
	if m.source != nil {
		m.sessions, m.loadErr = m.source.RecentSessions(historyFilters[m.filter].gameID, maxSessions)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded sessions.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = sessionRow(s)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func sessionRow(s storage.SessionRecord) table.Row {
	mode, level := "endless", "-"
	if s.GameID == candy.IDCampaign {
		mode = "campaign"
		level = fmt.Sprintf("%d", max(s.StartLevel, 1))
	}
	done := ""
	if s.Finished {
		done = "yes"
	}
	return table.Row{
		shortID(s.ID),
		mode,
		level,
		fmt.Sprintf("%d", s.Score),
		fmt.Sprintf("%d", s.Ticks),
		done,
		s.CreatedAt.Format("Jan 02 15:04"),
	}
}

// shortID trims a session ID to the width shown in the table.
func shortID(id string) string {
	if len(id) > idColumn {
		return id[:idColumn]
	}
	return id
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.filter = (m.filter + 1) % len(historyFilters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.filter = (m.filter + len(historyFilters) - 1) % len(historyFilters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// deleteSelected removes the highlighted session from the journal.
func (m *HistoryModel) deleteSelected() {
	i := m.table.Cursor()
	if m.source == nil || i < 0 || i >= len(m.sessions) {
		return
	}
	if err := m.source.DeleteSession(m.sessions[i].ID); err != nil {
		m.loadErr = err
		return
	}
	m.load()
	if len(m.sessions) > 0 {
		m.table.SetCursor(min(i, len(m.sessions)-1))
	}
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("SESSION HISTORY"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) renderTabs() string {
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(historyFilters))
	for i, f := range historyFilters {
		if i == m.filter {
			tabs[i] = activeTabStyle.Render(f.title)
		} else {
			tabs[i] = dimStyle.Render(" " + f.title + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or a placeholder.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Journal unavailable:\n" + m.loadErr.Error())
	case len(m.sessions) == 0:
		return emptyStyle.Render("No sessions journaled yet.\nPlay a game to start one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(source SessionSource, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(source, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
