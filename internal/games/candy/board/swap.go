package board

// SwapReason explains the outcome of a swap attempt.
type SwapReason int

const (
	SwapCommitted SwapReason = iota
	SwapNotAdjacent
	SwapNoMatch
)

// String returns a short label for the reason.
func (r SwapReason) String() string {
	switch r {
	case SwapCommitted:
		return "committed"
	case SwapNotAdjacent:
		return "not adjacent"
	case SwapNoMatch:
		return "no match"
	default:
		return "unknown"
	}
}

// SwapOutcome is the result of TrySwap.
type SwapOutcome struct {
	From, To  int
	Committed bool
	Reason    SwapReason
	Matches   []Match
	Points    int
	// GoodJob is set when any match was a run of GoodJobLength or more.
	GoodJob bool
}

// TrySwap validates and applies a swap between from and to.
//
// The swap is rejected without touching the grid when the positions are
// not orthogonal neighbors. Otherwise it is applied and every check of m
// runs once; if none matches, the swap is reverted. Either cell may hold
// Empty: Empty never matches, so only the token that moved can form a run.
// Out-of-range positions panic.
func TrySwap(g *Grid, m Matcher, from, to int) SwapOutcome {
	out := SwapOutcome{From: from, To: to}
	if !g.Adjacent(from, to) {
		out.Reason = SwapNotAdjacent
		return out
	}

	g.Swap(from, to)
	matches := m.Sweep(g)
	if len(matches) == 0 {
		g.Swap(from, to)
		out.Reason = SwapNoMatch
		return out
	}

	out.Committed = true
	out.Reason = SwapCommitted
	out.Matches = matches
	out.Points = TotalPoints(matches)
	for _, match := range matches {
		if IsGoodJob(match) {
			out.GoodJob = true
			break
		}
	}
	return out
}
