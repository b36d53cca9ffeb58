package board

// Move is a swap between two adjacent positions.
type Move struct {
	From, To int
}

// FindMove returns the first swap, scanning positions in increasing order
// and trying the right neighbor before the one below, that would produce a
// match under m. The grid is not modified.
func FindMove(g *Grid, m Matcher) (Move, bool) {
	scratch := g.Clone()
	w := g.width
	for i, t := range g.cells {
		if t == Empty {
			continue
		}
		var targets [2]int
		n := 0
		if g.Col(i) < w-1 {
			targets[n] = i + 1
			n++
		}
		if g.Row(i) < w-1 {
			targets[n] = i + w
			n++
		}
		for _, j := range targets[:n] {
			u := g.cells[j]
			if u == Empty || u == t {
				continue
			}
			scratch.Swap(i, j)
			ok := m.HasRun(scratch)
			scratch.Swap(i, j)
			if ok {
				return Move{From: i, To: j}, true
			}
		}
	}
	return Move{}, false
}
