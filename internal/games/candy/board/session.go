package board

import (
	"fmt"
	"math/rand"
	"time"
)

// Notification texts.
const (
	NoticeStart     = "Start!"
	NoticeGoodJob   = "Good job!"
	NoticeReshuffle = "No moves - shuffling"
)

// FillMode selects how a new board is populated.
type FillMode string

const (
	FillStable FillMode = "stable" // no runs on the opening board
	FillRandom FillMode = "random" // independent uniform draws, runs allowed
)

// CascadeMode selects when a committed swap's fallout is resolved.
type CascadeMode string

const (
	CascadeTicked CascadeMode = "ticked" // one gravity pass per tick
	CascadeSync   CascadeMode = "sync"   // settle fully before AttemptSwap returns
)

// Phase is the turn state of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseCommitted
	PhaseReverted
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseCommitted:
		return "committed"
	case PhaseReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Options configures a session.
type Options struct {
	Width          int
	Colors         int
	Tiers          []int
	Scoring        Scoring
	TickInterval   time.Duration
	NotifyDuration time.Duration
	InitialFill    FillMode
	Cascade        CascadeMode
	Reshuffle      bool
}

// DefaultOptions returns the classic 8x8 six-color rules.
func DefaultOptions() Options {
	return Options{
		Width:          DefaultWidth,
		Colors:         PaletteSize,
		Tiers:          append([]int(nil), DefaultTiers...),
		Scoring:        DefaultScoring(),
		TickInterval:   100 * time.Millisecond,
		NotifyDuration: 2 * time.Second,
		InitialFill:    FillStable,
		Cascade:        CascadeTicked,
		Reshuffle:      false,
	}
}

// syncRoundLimit bounds the synchronous cascade; anything left over is
// resolved by later ticks.
const syncRoundLimit = 1000

// Session owns one board: grid, score, notification and turn phase.
// It is not safe for concurrent use; a single goroutine drives it.
type Session struct {
	opts    Options
	rng     *rand.Rand
	grid    *Grid
	palette []Token
	matcher Matcher
	notes   *Notifier

	score int
	phase Phase
	ticks uint64
	clock time.Duration
}

// NewSession creates a session with a freshly filled board.
// Invalid options are a programming error and panic.
func NewSession(opts Options, rng *rand.Rand) *Session {
	s := newSession(opts, rng, NewGrid(opts.Width))
	s.fill()
	return s
}

// NewSessionWithGrid creates a session around a copy of g.
// The grid width overrides opts.Width.
func NewSessionWithGrid(opts Options, rng *rand.Rand, g *Grid) *Session {
	opts.Width = g.Width()
	return newSession(opts, rng, g.Clone())
}

func newSession(opts Options, rng *rand.Rand, g *Grid) *Session {
	if opts.TickInterval <= 0 {
		panic(fmt.Sprintf("board: invalid tick interval %v", opts.TickInterval))
	}
	s := &Session{
		opts:    opts,
		rng:     rng,
		grid:    g,
		palette: Palette(opts.Colors),
		matcher: NewMatcher(opts.Tiers, opts.Scoring),
		notes:   NewNotifier(opts.NotifyDuration),
	}
	s.notes.Show(NoticeStart, 0)
	return s
}

func (s *Session) fill() {
	if s.opts.InitialFill == FillRandom {
		s.grid.RandomFill(s.rng, s.palette)
		return
	}
	s.grid.StableFill(s.rng, s.palette)
}

// AttemptSwap validates and applies one swap gesture. Rejected swaps leave
// the grid, score and notification untouched. A committed swap that cleared
// a run of GoodJobLength or more shows NoticeGoodJob.
func (s *Session) AttemptSwap(from, to int) SwapOutcome {
	s.phase = PhaseValidating
	out := TrySwap(s.grid, s.matcher, from, to)
	if !out.Committed {
		s.phase = PhaseReverted
		return out
	}

	s.phase = PhaseCommitted
	s.score += out.Points
	if out.GoodJob {
		s.notes.Show(NoticeGoodJob, s.clock)
	}
	if s.opts.Cascade == CascadeSync {
		s.score += s.stabilize()
	}
	return out
}

// stabilize resolves matches and gravity until the board is full and has no
// runs. Returns the points scored on the way.
func (s *Session) stabilize() int {
	points := 0
	for round := 0; round < syncRoundLimit; round++ {
		points += TotalPoints(s.matcher.Sweep(s.grid))
		res := Settle(s.grid, s.rng, s.palette)
		if !res.Changed() && s.grid.HasEmpty() {
			Fill(s.grid, s.rng, s.palette)
		}
		if !s.grid.HasEmpty() && !s.matcher.HasRun(s.grid) {
			break
		}
	}
	return points
}

// TickResult reports what one stabilization tick did.
type TickResult struct {
	Matches       []Match
	Points        int
	Settle        SettleResult
	Reshuffled    bool
	NoticeCleared bool
}

// Tick runs one stabilization step: every match check once, one gravity
// pass, then the clock advances and an expired notification clears. When
// enabled, a stable board with no legal move is reshuffled.
func (s *Session) Tick() TickResult {
	var res TickResult
	res.Matches = s.matcher.Sweep(s.grid)
	res.Points = TotalPoints(res.Matches)
	s.score += res.Points
	res.Settle = Settle(s.grid, s.rng, s.palette)

	s.ticks++
	s.clock += s.opts.TickInterval
	res.NoticeCleared = s.notes.Update(s.clock)
	s.phase = PhaseIdle

	if s.opts.Reshuffle && s.Stable() {
		if _, ok := FindMove(s.grid, s.matcher); !ok {
			s.Shuffle()
			res.Reshuffled = true
		}
	}
	return res
}

// Shuffle replaces the board with a new run-free fill and announces it.
// Palettes too small for a stable fill fall back to a random one.
func (s *Session) Shuffle() {
	if len(s.palette) >= 3 {
		s.grid.StableFill(s.rng, s.palette)
	} else {
		s.grid.RandomFill(s.rng, s.palette)
	}
	s.notes.Show(NoticeReshuffle, s.clock)
}

// Notify shows text on the session clock with the configured duration.
func (s *Session) Notify(text string) {
	s.notes.Show(text, s.clock)
}

// Stable reports whether the board is full and contains no run.
func (s *Session) Stable() bool {
	return !s.grid.HasEmpty() && !s.matcher.HasRun(s.grid)
}

// FindMove returns a swap that would match on the current board.
func (s *Session) FindMove() (Move, bool) {
	return FindMove(s.grid, s.matcher)
}

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Phase returns the turn phase.
func (s *Session) Phase() Phase { return s.phase }

// Ticks returns the number of ticks run.
func (s *Session) Ticks() uint64 { return s.ticks }

// Clock returns the session time, TickInterval per tick.
func (s *Session) Clock() time.Duration { return s.clock }

// Notification returns the current message, or "".
func (s *Session) Notification() string { return s.notes.Text() }

// Options returns the options the session was built with.
func (s *Session) Options() Options { return s.opts }

// Grid returns a copy of the board.
func (s *Session) Grid() *Grid { return s.grid.Clone() }

// Width returns the board side length.
func (s *Session) Width() int { return s.grid.Width() }

// TokenAt returns the token at pos.
func (s *Session) TokenAt(pos int) Token { return s.grid.Get(pos) }

// Snapshot is an immutable view of a session for rendering and tests.
type Snapshot struct {
	Width        int
	Tokens       []Token
	Score        int
	Notification string
	Phase        Phase
	Tick         uint64
	Clock        time.Duration
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Width:        s.grid.Width(),
		Tokens:       s.grid.Tokens(),
		Score:        s.score,
		Notification: s.notes.Text(),
		Phase:        s.phase,
		Tick:         s.ticks,
		Clock:        s.clock,
	}
}
