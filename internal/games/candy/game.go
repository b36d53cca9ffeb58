// Package candy implements the match-three board as an arcade game with
// endless and campaign modes. The rules live in the board subpackage; this
// package adds the cursor and drag selection, levels and move budgets, and
// drawing into a core.Screen.
package candy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy/board"
	"github.com/vovakirdan/tui-candy/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeEndless  Mode = "endless"
	ModeCampaign Mode = "campaign"
)

// Registered game IDs.
const (
	IDEndless  = "candy"
	IDCampaign = "candy_campaign"
)

// levelClearPause is how long the "level cleared" overlay stays up.
const levelClearPause = 2 * time.Second

// Game is the candy board with a keyboard cursor.
type Game struct {
	mode Mode
	cfg  config.CandyConfig
	// fixedConfig is set when the config was supplied by the caller and
	// must not be reloaded from disk on Reset.
	fixedConfig bool
	loadErr     error

	rng     *rand.Rand
	seed    int64
	session *board.Session
	tick    uint64

	// Screen dimensions
	screenW int
	screenH int

	// Selection: the cursor cell and the picked-up token, if any.
	cursor  int
	dragged int

	hint      board.Move
	hasHint   bool
	hintUntil uint64 // session tick at which the hint disappears

	levelIndex      int
	startLevel      int // 1-based level the run began at, 0 for endless
	pendingLevel    int // start level requested by a replay, 1-based
	movesLeft       int
	levelClearTicks int

	// Game state flags
	gameOver     bool
	levelCleared bool
	won          bool
	paused       bool
	tooSmall     bool

	events []core.Event
}

// Package-level variables for config/difficulty, set by the CLI before Reset.
var (
	configPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
)

// SetConfigPath sets a custom config file path. Empty uses the search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied after loading config.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetStartLevel sets the starting level (1-10). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign, dragged: board.NoPosition}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless, dragged: board.NoPosition}
}

// NewWithConfig creates a game that always uses cfg instead of loading
// configuration from disk. startLevel is 1-based; 0 starts at the first level.
func NewWithConfig(mode Mode, cfg config.CandyConfig, startLevel int) *Game {
	return &Game{
		mode:         mode,
		cfg:          cfg.Clone(),
		fixedConfig:  true,
		pendingLevel: startLevel,
		dragged:      board.NoPosition,
	}
}

// ModeForID maps a registered game ID to its mode.
func ModeForID(id string) (Mode, error) {
	switch id {
	case IDEndless:
		return ModeEndless, nil
	case IDCampaign:
		return ModeCampaign, nil
	default:
		return "", fmt.Errorf("candy: unknown game %q", id)
	}
}

func init() {
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Candy (Endless)"
	}
	return "Candy"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.fixedConfig {
		g.loadConfig()
	}
	if cfg.TickInterval > 0 {
		g.cfg.Timing.TickInterval = cfg.TickInterval
	}

	g.seed = cfg.Seed
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.session = board.NewSession(sessionOptions(g.cfg), g.rng)
	g.tick = 0
	g.cursor = 0
	g.dragged = board.NoPosition
	g.hasHint = false
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.events = nil

	// Apply selected start level (campaign only)
	g.levelIndex = 0
	if g.mode == ModeCampaign {
		level := selectedStartLevel
		if g.pendingLevel > 0 {
			level = g.pendingLevel
		}
		if level > 0 && level <= LevelCount() {
			g.levelIndex = level - 1
		}
		selectedStartLevel = 0 // Reset after use
		g.startLevel = g.levelIndex + 1
	} else {
		g.startLevel = 0
	}
	g.loadLevel()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// loadConfig reads the config from disk and applies the difficulty preset.
// A broken custom file falls back to defaults; the error is kept for the
// platform to report.
func (g *Game) loadConfig() {
	cfg, err := config.LoadCandy(configPath)
	g.loadErr = err
	if err != nil {
		cfg = config.DefaultCandyConfig()
	}
	if difficultyPreset != "" && !config.IsFixedPreset(difficultyPreset) {
		config.ApplyCandyPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
}

// LoadError returns the error from the last config load, if any.
func (g *Game) LoadError() error {
	return g.loadErr
}

// sessionOptions converts the YAML config to board options.
func sessionOptions(cfg config.CandyConfig) board.Options {
	return board.Options{
		Width:  cfg.Board.Width,
		Colors: cfg.Board.Colors,
		Tiers:  append([]int(nil), cfg.Scoring.Tiers...),
		Scoring: board.Scoring{
			RowMultiplier:    cfg.Scoring.RowMultiplier,
			ColumnMultiplier: cfg.Scoring.ColumnMultiplier,
		},
		TickInterval:   cfg.Timing.TickInterval,
		NotifyDuration: cfg.Timing.NotifyDuration,
		InitialFill:    board.FillMode(cfg.Rules.InitialFill),
		Cascade:        board.CascadeMode(cfg.Rules.Cascade),
		Reshuffle:      cfg.Rules.Reshuffle,
	}
}

// loadLevel sets the move budget for the current campaign level.
func (g *Game) loadLevel() {
	if g.mode != ModeCampaign {
		g.movesLeft = 0
		return
	}
	level := GetLevel(g.levelIndex)
	if level == nil {
		level = GetLevel(LevelCount() - 1)
	}
	g.movesLeft = g.cfg.Campaign.ScaleMoves(level.Moves)
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	if g.session == nil {
		return
	}
	boardW, boardH := boardSize(g.session.Width())
	minW := max(boardW, minHUDWidth)
	minH := hudHeight + boardH + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// TickInterval returns the simulation period from the loaded config.
func (g *Game) TickInterval() time.Duration {
	if g.cfg.Timing.TickInterval > 0 {
		return g.cfg.Timing.TickInterval
	}
	return core.DefaultTickInterval
}

// ticksFor converts a duration to a whole number of ticks, at least one.
func (g *Game) ticksFor(d time.Duration) int {
	interval := g.TickInterval()
	n := int((d + interval - 1) / interval)
	return max(n, 1)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.events = nil

	// Handle window size check
	if g.tooSmall {
		return g.result()
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	// Restart is handled by the platform
	if g.gameOver || g.won {
		return g.result()
	}

	if !g.levelCleared {
		g.handleInput(in)
	}
	g.advance()

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// handleInput applies at most one swap per tick. A gesture in the frame
// takes precedence over keys.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Gesture != nil {
		g.swap(in.Gesture.From, in.Gesture.To)
		return
	}

	if in.Has(core.ActionHint) {
		g.showHint()
	}
	if in.Has(core.ActionBack) {
		g.dragged = board.NoPosition
	}
	if in.Has(core.ActionSelect) {
		g.selectCell()
		return
	}
	for _, a := range [...]core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if in.Has(a) {
			g.moveCursor(a)
			return
		}
	}
}

// selectCell picks up the token under the cursor, or drops the held one
// there. Selecting the held cell again cancels the pick.
func (g *Game) selectCell() {
	if g.dragged == board.NoPosition {
		g.dragged = g.cursor
		return
	}
	if g.dragged == g.cursor {
		g.dragged = board.NoPosition
		return
	}
	g.swap(g.dragged, g.cursor)
}

// moveCursor moves the cursor one cell. While a token is held, the move
// drops it onto that neighbor instead.
func (g *Game) moveCursor(a core.Action) {
	from := g.cursor
	if g.dragged != board.NoPosition {
		from = g.dragged
	}
	target := neighbor(from, g.session.Width(), a)
	if target == board.NoPosition {
		return
	}
	if g.dragged != board.NoPosition {
		g.swap(g.dragged, target)
	}
	g.cursor = target
}

// neighbor returns the cell next to pos in the direction of a, or NoPosition at an edge.
func neighbor(pos, width int, a core.Action) int {
	row, col := pos/width, pos%width
	switch a {
	case core.ActionUp:
		if row > 0 {
			return pos - width
		}
	case core.ActionDown:
		if row < width-1 {
			return pos + width
		}
	case core.ActionLeft:
		if col > 0 {
			return pos - 1
		}
	case core.ActionRight:
		if col < width-1 {
			return pos + 1
		}
	}
	return board.NoPosition
}

// swap hands one gesture to the session and records it.
func (g *Game) swap(from, to int) {
	if g.mode == ModeCampaign && g.movesLeft <= 0 {
		return
	}

	tick := g.session.Ticks()
	out := g.session.AttemptSwap(from, to)
	g.dragged = board.NoPosition
	g.hasHint = false

	if out.Committed && g.mode == ModeCampaign {
		g.movesLeft--
	}
	g.events = append(g.events, core.Event{
		Kind:      core.EventSwap,
		Tick:      tick,
		From:      from,
		To:        to,
		Committed: out.Committed,
	})
}

// showHint highlights a legal swap for the notification duration.
func (g *Game) showHint() {
	mv, ok := g.session.FindMove()
	if !ok {
		return
	}
	g.hint = mv
	g.hasHint = true
	g.hintUntil = g.session.Ticks() + uint64(g.ticksFor(g.cfg.Timing.NotifyDuration))
}

// advance runs one session tick and the campaign bookkeeping.
func (g *Game) advance() {
	tick := g.session.Ticks()
	res := g.session.Tick()
	if res.Reshuffled {
		g.hasHint = false
		g.events = append(g.events, core.Event{Kind: core.EventReshuffle, Tick: tick})
	}
	if g.hasHint && g.session.Ticks() >= g.hintUntil {
		g.hasHint = false
	}

	if g.mode != ModeCampaign {
		return
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.ticksFor(levelClearPause) {
			g.advanceLevel()
		}
		return
	}

	if g.session.Score() >= g.target() {
		g.levelCleared = true
		g.levelClearTicks = 0
		g.dragged = board.NoPosition
		g.hasHint = false
		g.events = append(g.events, core.Event{Kind: core.EventLevelCleared, Tick: tick})
		return
	}

	// Out of moves: wait for the cascade to finish, it may still reach the target.
	if g.movesLeft <= 0 && g.session.Stable() {
		g.gameOver = true
	}
}

// advanceLevel moves to the next level, keeping board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= LevelCount()-1 {
		// Completed all levels
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
	g.session.Notify(fmt.Sprintf("Level %d: %s", g.levelIndex+1, Levels[g.levelIndex].Name))
}

// target returns the score needed to clear the current level.
func (g *Game) target() int {
	if level := GetLevel(g.levelIndex); level != nil {
		return level.Target
	}
	return 0
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.session != nil {
		score = g.session.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Seed returns the RNG seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}

// StartLevel returns the 1-based campaign level the run began at, 0 in endless mode.
func (g *Game) StartLevel() int {
	return g.startLevel
}

// SessionTicks returns the number of board ticks run so far.
// Paused and too-small ticks are not counted.
func (g *Game) SessionTicks() uint64 {
	if g.session == nil {
		return 0
	}
	return g.session.Ticks()
}

// Config returns the effective configuration.
func (g *Game) Config() config.CandyConfig {
	return g.cfg.Clone()
}

// ConfigYAML returns the effective configuration as YAML for the journal.
func (g *Game) ConfigYAML() (string, error) {
	data, err := config.Marshal(g.cfg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
