package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
)

// menuEntry is one line of the main menu.
type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryEndless
	entrySelectLevel
	entryHistory
)

var menuEntries = []string{
	"Campaign (%d levels)",
	"Endless",
	"Select Level...",
	"History",
}

// MenuModel lets users choose a game mode, a starting level, or the
// session history.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	result        MenuResult
	done          bool
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID       string // Selected game, empty unless a mode was picked
	Level        int    // 1-based start level, 0 to start from the beginning
	WantsHistory bool
	Quit         bool
	Config       core.RuntimeConfig // Updated by resizes while the menu ran
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelect(action)
		}
		return m.handleMain(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) finish(res MenuResult) (tea.Model, tea.Cmd) {
	m.result = res
	m.done = true
	return m, tea.Quit
}

func (m MenuModel) handleMain(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		return m.finish(MenuResult{Quit: true})
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch menuEntry(m.cursor) {
		case entryCampaign:
			return m.finish(MenuResult{GameID: candy.IDCampaign})
		case entryEndless:
			return m.finish(MenuResult{GameID: candy.IDEndless})
		case entrySelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		case entryHistory:
			return m.finish(MenuResult{WantsHistory: true})
		}
	}
	return m, nil
}

func (m MenuModel) handleLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		return m.finish(MenuResult{Quit: true})
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < candy.LevelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.finish(MenuResult{GameID: candy.IDCampaign, Level: m.levelCursor + 1})
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("C A N D Y"), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		m.viewLevels(&b)
	} else {
		m.viewMain(&b)
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("↑/↓: Navigate  |  Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) viewMain(b *strings.Builder) {
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, entry := range menuEntries {
		if menuEntry(i) == entryCampaign {
			entry = fmt.Sprintf(entry, candy.LevelCount())
		}
		b.WriteString(centerText(menuLine(entry, i == m.cursor), m.width))
		b.WriteString("\n")
	}
}

func (m MenuModel) viewLevels(b *strings.Builder) {
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	targets := candy.LevelTargets()
	for i, name := range candy.LevelNames() {
		line := fmt.Sprintf("%2d. %-16s target %6d", i+1, name, targets[i])
		b.WriteString(centerText(menuLine(line, i == m.levelCursor), m.width))
		b.WriteString("\n")
	}
}

func menuLine(text string, selected bool) string {
	if selected {
		return cursorStyle.Render("> " + text)
	}
	return "  " + text
}

// Result returns what the user picked.
func (m MenuModel) Result() MenuResult {
	res := m.result
	if !m.done {
		res.Quit = true
	}
	res.Config = m.config
	return res
}

// centerText centers text within the given width, measuring the printed
// width so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Quit: true}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
