package board

import "math/rand"

// SettleResult describes one gravity pass.
type SettleResult struct {
	Moved   int // tokens that dropped one row
	Spawned int // new tokens placed in the top row
}

// Changed reports whether the pass altered the grid.
func (r SettleResult) Changed() bool {
	return r.Moved > 0 || r.Spawned > 0
}

// Settle runs a single gravity pass over every position except the bottom
// row, in increasing order. An Empty cell in the top row is refilled from
// palette first. Then, if the cell directly below is Empty, the token drops
// into it. A token drops at most one row per pass; settling a column of gaps
// takes repeated passes.
func Settle(g *Grid, rng *rand.Rand, palette []Token) SettleResult {
	var res SettleResult
	w := g.width
	landed := make([]bool, len(g.cells))
	for i := 0; i < len(g.cells)-w; i++ {
		if i < w && g.cells[i] == Empty {
			g.cells[i] = palette[rng.Intn(len(palette))]
			res.Spawned++
		}
		if landed[i] || g.cells[i] == Empty {
			continue
		}
		below := i + w
		if g.cells[below] == Empty {
			g.cells[below] = g.cells[i]
			g.cells[i] = Empty
			landed[below] = true
			res.Moved++
		}
	}
	return res
}

// Fill replaces every Empty cell with a random token from palette and
// returns how many were filled. Used by the synchronous cascade once
// gravity alone cannot make progress, e.g. a one-row board.
func Fill(g *Grid, rng *rand.Rand, palette []Token) int {
	n := 0
	for i, t := range g.cells {
		if t == Empty {
			g.cells[i] = palette[rng.Intn(len(palette))]
			n++
		}
	}
	return n
}
