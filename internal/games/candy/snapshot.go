package candy

import "github.com/vovakirdan/tui-candy/internal/games/candy/board"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StatePaused       GameStateType = "paused"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	SessionTick  uint64
	Mode         string // "campaign" or "endless"
	Level        int    // Current level (1-indexed), 0 for endless
	Target       int
	MovesLeft    int
	Score        int
	Board        string // Grid.String() of the board
	Notification string
	Cursor       int
	Dragged      int
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	level, target := 0, 0
	if g.mode == ModeCampaign {
		level = g.levelIndex + 1
		target = g.target()
	}

	snap := Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Level:     level,
		Target:    target,
		MovesLeft: g.movesLeft,
		Cursor:    g.cursor,
		Dragged:   g.dragged,
		State:     state,
	}
	if g.session != nil {
		s := g.session.Snapshot()
		snap.SessionTick = s.Tick
		snap.Score = s.Score
		snap.Board = board.FromTokens(s.Width, s.Tokens).String()
		snap.Notification = s.Notification
	}
	return snap
}
