package candy

import (
	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/core"
)

// AutoplayOptions configures a headless run.
type AutoplayOptions struct {
	Mode       Mode
	Config     config.CandyConfig
	Seed       int64
	StartLevel int
	Ticks      int // Maximum steps to run
	Every      int // Steps between moves; the board must also be stable
}

// AutoplayResult summarizes a headless run.
type AutoplayResult struct {
	Snapshot   Snapshot
	Recording  Recording
	Swaps      int
	Committed  int
	Reshuffles int
}

// Autoplay plays the move finder's suggestion every opts.Every steps once
// the board has settled, until opts.Ticks steps have run or the game ends.
// The returned recording replays to the same result.
func Autoplay(opts AutoplayOptions) AutoplayResult {
	every := max(opts.Every, 1)
	g := NewWithConfig(opts.Mode, opts.Config, opts.StartLevel)
	g.Reset(core.RuntimeConfig{
		ScreenW:      headlessW,
		ScreenH:      headlessH,
		TickInterval: opts.Config.Timing.TickInterval,
		Seed:         opts.Seed,
	})

	res := AutoplayResult{
		Recording: Recording{
			GameID:     g.ID(),
			Seed:       opts.Seed,
			StartLevel: g.StartLevel(),
			Config:     g.Config(),
		},
	}

	for step := 1; step <= opts.Ticks && !g.finished(); step++ {
		frame := core.NewInputFrame()
		if step%every == 0 && !g.levelCleared && g.session.Stable() {
			if mv, ok := g.session.FindMove(); ok {
				frame.SetGesture(mv.From, mv.To)
			}
		}

		out := g.Step(frame)
		for _, ev := range out.Events {
			switch ev.Kind {
			case core.EventSwap:
				res.Swaps++
				if ev.Committed {
					res.Committed++
				}
				res.Recording.Swaps = append(res.Recording.Swaps, RecordedSwap{
					Tick:      ev.Tick,
					From:      ev.From,
					To:        ev.To,
					Committed: ev.Committed,
				})
			case core.EventReshuffle:
				res.Reshuffles++
			}
		}
	}

	res.Snapshot = g.Snapshot()
	res.Recording.Ticks = g.SessionTicks()
	res.Recording.Score = res.Snapshot.Score
	return res
}
