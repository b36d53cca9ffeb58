package board

import "fmt"

// Orientation is the direction of a run.
type Orientation int

const (
	Column Orientation = iota
	Row
)

// String returns "column" or "row".
func (o Orientation) String() string {
	if o == Row {
		return "row"
	}
	return "column"
}

// DefaultTiers lists the run lengths checked each sweep, highest priority first.
var DefaultTiers = []int{5, 4, 3}

// Run is a straight line of positions that all hold the same non-Empty token.
type Run struct {
	Orientation Orientation
	Token       Token
	Positions   []int
}

// Len returns the number of positions in the run.
func (r Run) Len() int {
	return len(r.Positions)
}

// Start returns the first (lowest) position of the run.
func (r Run) Start() int {
	return r.Positions[0]
}

// Scoring holds the per-orientation score multipliers.
// Row runs are weighted ten times column runs by default; the asymmetry
// is part of the game's scoring and kept configurable rather than evened out.
type Scoring struct {
	RowMultiplier    int
	ColumnMultiplier int
}

// DefaultScoring returns the standard weights.
func DefaultScoring() Scoring {
	return Scoring{RowMultiplier: 10, ColumnMultiplier: 1}
}

// Points returns the score for clearing r.
func (s Scoring) Points(r Run) int {
	if r.Orientation == Row {
		return r.Len() * s.RowMultiplier
	}
	return r.Len() * s.ColumnMultiplier
}

// runAt returns the run of the given length and orientation starting at
// start, if it fits on the board and every cell holds the same non-Empty token.
func runAt(g *Grid, start, length int, o Orientation) (Run, bool) {
	step := 1
	if o == Column {
		if g.Row(start)+length > g.width {
			return Run{}, false
		}
		step = g.width
	} else if g.Col(start)+length > g.width {
		return Run{}, false
	}

	first := g.cells[start]
	if first == Empty {
		return Run{}, false
	}
	for k := 1; k < length; k++ {
		if g.cells[start+k*step] != first {
			return Run{}, false
		}
	}

	positions := make([]int, length)
	for k := range positions {
		positions[k] = start + k*step
	}
	return Run{Orientation: o, Token: first, Positions: positions}, true
}

// FindRuns returns every window of exactly length cells in orientation o
// that qualifies as a run, ordered by start position. Windows may overlap:
// a row of six identical tokens yields two runs of length five.
func FindRuns(g *Grid, length int, o Orientation) []Run {
	if length < 1 {
		panic(fmt.Sprintf("board: invalid run length %d", length))
	}
	var runs []Run
	for start := range g.cells {
		if r, ok := runAt(g, start, length, o); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// FirstRun returns the lowest-start run of the given length and orientation.
func FirstRun(g *Grid, length int, o Orientation) (Run, bool) {
	for start := range g.cells {
		if r, ok := runAt(g, start, length, o); ok {
			return r, true
		}
	}
	return Run{}, false
}

// ClearRun writes Empty into every position of r.
func ClearRun(g *Grid, r Run) {
	for _, p := range r.Positions {
		g.Set(p, Empty)
	}
}

// Check is one step of a sweep: a run length and an orientation.
type Check struct {
	Length      int
	Orientation Orientation
}

// String formats the check as e.g. "column-of-5".
func (c Check) String() string {
	return fmt.Sprintf("%s-of-%d", c.Orientation, c.Length)
}

// Checks expands tiers into the sweep order: for each tier in the order
// given, the column check first and then the row check.
func Checks(tiers []int) []Check {
	out := make([]Check, 0, 2*len(tiers))
	for _, l := range tiers {
		out = append(out, Check{Length: l, Orientation: Column}, Check{Length: l, Orientation: Row})
	}
	return out
}

// Match records a run cleared by one check of a sweep.
type Match struct {
	Check  Check
	Run    Run
	Points int
}

// Matcher runs the priority-ordered checks against a grid.
type Matcher struct {
	checks  []Check
	scoring Scoring
}

// NewMatcher builds a matcher for the given tiers (highest priority first).
func NewMatcher(tiers []int, scoring Scoring) Matcher {
	if len(tiers) == 0 {
		panic("board: matcher needs at least one tier")
	}
	for _, l := range tiers {
		if l < 2 {
			panic(fmt.Sprintf("board: invalid tier %d", l))
		}
	}
	return Matcher{checks: Checks(tiers), scoring: scoring}
}

// Checks returns the sweep order.
func (m Matcher) Checks() []Check {
	return append([]Check(nil), m.checks...)
}

// Scoring returns the matcher's score weights.
func (m Matcher) Scoring() Scoring {
	return m.scoring
}

// GoodJobLength is the run length that earns NoticeGoodJob, whatever tiers
// are configured.
const GoodJobLength = 5

// IsGoodJob reports whether a match cleared a run of GoodJobLength or more.
func IsGoodJob(match Match) bool {
	return match.Run.Len() >= GoodJobLength
}

// Sweep runs every check once, in order. A check clears only the first run
// it finds, and later checks see the grid as earlier ones left it. Returns
// the matches in the order they were cleared.
func (m Matcher) Sweep(g *Grid) []Match {
	var matches []Match
	for _, c := range m.checks {
		r, ok := FirstRun(g, c.Length, c.Orientation)
		if !ok {
			continue
		}
		ClearRun(g, r)
		matches = append(matches, Match{Check: c, Run: r, Points: m.scoring.Points(r)})
	}
	return matches
}

// HasRun reports whether any check would find a run. The grid is not modified.
func (m Matcher) HasRun(g *Grid) bool {
	for _, c := range m.checks {
		if _, ok := FirstRun(g, c.Length, c.Orientation); ok {
			return true
		}
	}
	return false
}

// TotalPoints sums the points of matches.
func TotalPoints(matches []Match) int {
	total := 0
	for _, m := range matches {
		total += m.Points
	}
	return total
}
