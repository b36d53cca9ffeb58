package candy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/core"
)

// ErrReplayDiverged is returned when a replay does not reproduce the recording.
var ErrReplayDiverged = errors.New("candy: replay diverged")

// Headless screen size used by replay and autoplay. Large enough for any
// board the config allows.
const (
	headlessW = 120
	headlessH = 40
)

// RecordedSwap is one swap gesture from a journal.
type RecordedSwap struct {
	Tick      uint64 // Session tick at which the gesture was applied
	From      int
	To        int
	Committed bool
}

// Recording is everything needed to rebuild a session.
type Recording struct {
	GameID     string
	Seed       int64
	StartLevel int
	Config     config.CandyConfig
	Ticks      uint64 // Session ticks run
	Score      int
	Swaps      []RecordedSwap
	// Unfinished marks a session that was never closed, so Ticks and Score
	// are unknown. Replay stops after the last swap.
	Unfinished bool
}

// ReplayResult is the state a replay finished in.
type ReplayResult struct {
	Snapshot Snapshot
	Swaps    int
}

// Replay rebuilds the game from the recording's seed and config, applies
// every swap at its recorded tick and runs to the recorded tick count.
// Any mismatch in swap outcome, tick count or score wraps ErrReplayDiverged.
// Unfinished recordings are only checked swap by swap.
func Replay(rec Recording) (ReplayResult, error) {
	mode, err := ModeForID(rec.GameID)
	if err != nil {
		return ReplayResult{}, err
	}
	if err := config.Validate(rec.Config); err != nil {
		return ReplayResult{}, fmt.Errorf("candy: recorded config: %w", err)
	}

	g := NewWithConfig(mode, rec.Config, rec.StartLevel)
	g.Reset(core.RuntimeConfig{
		ScreenW:      headlessW,
		ScreenH:      headlessH,
		TickInterval: rec.Config.Timing.TickInterval,
		Seed:         rec.Seed,
	})

	cells := rec.Config.Board.Width * rec.Config.Board.Width
	empty := core.NewInputFrame()
	var last uint64
	for i, sw := range rec.Swaps {
		if sw.From < 0 || sw.From >= cells || sw.To < 0 || sw.To >= cells {
			return ReplayResult{}, fmt.Errorf("candy: swap %d: position out of range (%d, %d)", i, sw.From, sw.To)
		}
		if i > 0 && sw.Tick <= last {
			return ReplayResult{}, fmt.Errorf("candy: swap %d: tick %d not after %d", i, sw.Tick, last)
		}
		last = sw.Tick

		for g.SessionTicks() < sw.Tick && !g.finished() {
			g.Step(empty)
		}
		if g.SessionTicks() != sw.Tick {
			return ReplayResult{Snapshot: g.Snapshot(), Swaps: i}, fmt.Errorf("%w: game ended at tick %d before swap %d at tick %d",
				ErrReplayDiverged, g.SessionTicks(), i, sw.Tick)
		}

		frame := core.NewInputFrame()
		frame.SetGesture(sw.From, sw.To)
		res := g.Step(frame)
		ev, ok := swapEvent(res.Events)
		if !ok {
			return ReplayResult{Snapshot: g.Snapshot(), Swaps: i}, fmt.Errorf("%w: swap %d at tick %d was not applied", ErrReplayDiverged, i, sw.Tick)
		}
		if ev.Committed != sw.Committed {
			return ReplayResult{Snapshot: g.Snapshot(), Swaps: i}, fmt.Errorf("%w: swap %d at tick %d committed=%t, recorded %t",
				ErrReplayDiverged, i, sw.Tick, ev.Committed, sw.Committed)
		}
	}

	if rec.Unfinished {
		return ReplayResult{Snapshot: g.Snapshot(), Swaps: len(rec.Swaps)}, nil
	}

	for g.SessionTicks() < rec.Ticks && !g.finished() {
		g.Step(empty)
	}

	result := ReplayResult{Snapshot: g.Snapshot(), Swaps: len(rec.Swaps)}
	if g.SessionTicks() != rec.Ticks {
		return result, fmt.Errorf("%w: ran %d ticks, recorded %d", ErrReplayDiverged, g.SessionTicks(), rec.Ticks)
	}
	if result.Snapshot.Score != rec.Score {
		return result, fmt.Errorf("%w: score %d, recorded %d", ErrReplayDiverged, result.Snapshot.Score, rec.Score)
	}
	return result, nil
}

// finished reports whether the board has stopped ticking for good.
func (g *Game) finished() bool {
	return g.gameOver || g.won
}

func swapEvent(events []core.Event) (core.Event, bool) {
	for _, ev := range events {
		if ev.Kind == core.EventSwap {
			return ev, true
		}
	}
	return core.Event{}, false
}
