package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/registry"
)

// footerHeight is the number of terminal rows reserved for the help line.
const footerHeight = 1

// Journal receives the history of a running session.
// *storage.Store satisfies it.
type Journal interface {
	BeginSession(gameID string, seed int64, startLevel int, configYAML string) (string, error)
	RecordSwap(sessionID string, tick uint64, from, to int, committed bool) error
	FinishSession(sessionID string, ticks uint64, score int) error
}

// Recordable is implemented by games whose sessions can be journaled and
// replayed later.
type Recordable interface {
	Seed() int64
	StartLevel() int
	SessionTicks() uint64
	ConfigYAML() (string, error)
}

// Options configures a game run.
type Options struct {
	Journal Journal     // nil disables journaling
	Logger  *log.Logger // nil discards log output
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	journal    Journal
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool

	sessionID string // journal session, empty when not journaling
	finished  bool   // whether the journal session was closed for this game

	// Mouse drag in progress: the board position the button went down on.
	pressPos int
	pressed  bool
}

// NewModel creates a new Bubble Tea model for the given game and resets
// the game so the first frame has something to draw.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		journal:    opts.Journal,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
	m.start()
	return m
}

// gameHeight is the screen height left to the game under the help line.
func gameHeight(termH int) int {
	return max(termH-footerHeight, 1)
}

// start resets the game and opens a journal session for it.
func (m *Model) start() {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	m.game.Reset(cfg)
	m.gameState = m.game.State()
	m.finished = false

	if le, ok := m.game.(interface{ LoadError() error }); ok && le.LoadError() != nil {
		m.logger.Warn("config not loaded, using defaults", "err", le.LoadError())
	}
	m.logger.Info("game started", "seed", cfg.Seed, "interval", m.interval())

	m.beginJournal()
}

func (m *Model) beginJournal() {
	m.sessionID = ""
	rec, ok := m.game.(Recordable)
	if m.journal == nil || !ok {
		return
	}
	cfgYAML, err := rec.ConfigYAML()
	if err != nil {
		m.logger.Error("cannot encode config for journal", "err", err)
		return
	}
	id, err := m.journal.BeginSession(m.game.ID(), rec.Seed(), rec.StartLevel(), cfgYAML)
	if err != nil {
		m.logger.Error("journal unavailable", "err", err)
		return
	}
	m.sessionID = id
	m.logger.Debug("journal session opened", "session", id)
}

// finishJournal closes the journal session with the game's current totals.
func (m *Model) finishJournal() {
	if m.sessionID == "" || m.finished {
		return
	}
	m.finished = true
	rec, ok := m.game.(Recordable)
	if !ok {
		return
	}
	score := m.game.State().Score
	if err := m.journal.FinishSession(m.sessionID, rec.SessionTicks(), score); err != nil {
		m.logger.Error("cannot finish journal session", "session", m.sessionID, "err", err)
		return
	}
	m.logger.Info("session journaled", "session", m.sessionID, "score", score, "ticks", rec.SessionTicks())
}

// interval is the tick period, taken from the game when it has one.
func (m Model) interval() time.Duration {
	if t, ok := m.game.(registry.Ticker); ok {
		if d := t.TickInterval(); d > 0 {
			return d
		}
	}
	if m.config.TickInterval > 0 {
		return m.config.TickInterval
	}
	return core.DefaultTickInterval
}

// Init starts the tick loop. The game was reset by NewModel.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if quit := m.keys.MapKeyToFrame(msg, &m.inputFrame); quit {
		m.finishJournal()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns a left-button drag between two board cells into a
// swap gesture for the next tick.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	loc, ok := m.game.(registry.Locator)
	if !ok {
		return m, nil
	}

	// Some terminals report no button on release.
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pressPos, m.pressed = loc.CellAt(msg.X, msg.Y)
	case msg.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		if pos, ok := loc.CellAt(msg.X, msg.Y); ok && pos != m.pressPos {
			m.inputFrame.SetGesture(m.pressPos, pos)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := gameHeight(msg.Height)
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width

	// Games that can follow a resize keep their board; others restart.
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, h)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.finishJournal()
		m.start()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.finishJournal()
		m.config.Seed = time.Now().UnixNano()
		m.start()
		m.inputFrame.Clear()
		return m, tickCmd(m.interval())
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.journalEvents(result.Events)

	if m.gameState.GameOver {
		m.finishJournal()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.interval())
}

// journalEvents records swaps and logs the rest.
func (m *Model) journalEvents(events []core.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case core.EventSwap:
			m.logger.Debug("swap", "tick", ev.Tick, "from", ev.From, "to", ev.To, "committed", ev.Committed)
			if m.sessionID == "" {
				continue
			}
			if err := m.journal.RecordSwap(m.sessionID, ev.Tick, ev.From, ev.To, ev.Committed); err != nil {
				m.logger.Error("cannot journal swap", "session", m.sessionID, "err", err)
			}
		default:
			m.logger.Debug(ev.Kind.String(), "tick", ev.Tick)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".candy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + renderFooter(m.help.View(m.keys.Keys()))
}

// SessionID returns the journal session of the current game, if any.
func (m Model) SessionID() string {
	return m.sessionID
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Drag tokens with the mouse
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		// Interrupted programs never saw a quit key.
		m.finishJournal()
	}
	return err
}
