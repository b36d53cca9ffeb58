package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paint(g *Grid, t Token, positions ...int) {
	for _, p := range positions {
		g.Set(p, t)
	}
}

func span(start, length, step int) []int {
	out := make([]int, length)
	for k := range out {
		out[k] = start + k*step
	}
	return out
}

func TestSweepClearsRowRun(t *testing.T) {
	tests := []struct {
		length, start int
	}{
		{3, 0},
		{3, 5},
		{3, 61},
		{4, 12},
		{4, 36},
		{5, 3},
		{5, 59},
	}
	m := NewMatcher(DefaultTiers, DefaultScoring())
	for _, tt := range tests {
		g := background(DefaultWidth)
		run := span(tt.start, tt.length, 1)
		paint(g, Blue, run...)

		matches := m.Sweep(g)
		require.Len(t, matches, 1, "row of %d at %d", tt.length, tt.start)
		assert.Equal(t, Check{Length: tt.length, Orientation: Row}, matches[0].Check)
		assert.Equal(t, run, matches[0].Run.Positions)
		assert.Equal(t, 10*tt.length, TotalPoints(matches))
		for _, p := range run {
			assert.Equal(t, Empty, g.Get(p))
		}
		assert.Equal(t, tt.length, g.EmptyCount())
	}
}

func TestSweepClearsColumnRun(t *testing.T) {
	tests := []struct {
		length, start int
	}{
		{3, 0},
		{3, 47},
		{4, 39},
		{4, 10},
		{5, 7},
		{5, 31},
	}
	m := NewMatcher(DefaultTiers, DefaultScoring())
	for _, tt := range tests {
		g := background(DefaultWidth)
		run := span(tt.start, tt.length, DefaultWidth)
		paint(g, Blue, run...)

		matches := m.Sweep(g)
		require.Len(t, matches, 1, "column of %d at %d", tt.length, tt.start)
		assert.Equal(t, Column, matches[0].Run.Orientation)
		assert.Equal(t, run, matches[0].Run.Positions)
		assert.Equal(t, tt.length, TotalPoints(matches))
		assert.Equal(t, tt.length, g.EmptyCount())
	}
}

func TestRowRunsDoNotWrap(t *testing.T) {
	g := background(DefaultWidth)
	paint(g, Blue, 6, 7, 8)
	assert.Empty(t, FindRuns(g, 3, Row))

	_, ok := FirstRun(g, 3, Row)
	assert.False(t, ok)
}

func TestColumnRunsFitHeight(t *testing.T) {
	g := background(DefaultWidth)
	paint(g, Blue, 40, 48, 56)

	runs := FindRuns(g, 3, Column)
	require.Len(t, runs, 1)
	assert.Equal(t, 40, runs[0].Start())
	assert.Empty(t, FindRuns(g, 4, Column))
}

func TestEmptyNeverMatches(t *testing.T) {
	g := NewGrid(DefaultWidth)
	m := NewMatcher(DefaultTiers, DefaultScoring())

	assert.Empty(t, FindRuns(g, 3, Row))
	assert.Empty(t, FindRuns(g, 3, Column))
	assert.False(t, m.HasRun(g))
	assert.Empty(t, m.Sweep(g))
}

func TestFindRunsReturnsOverlappingWindows(t *testing.T) {
	g := background(DefaultWidth)
	paint(g, Blue, 0, 1, 2, 3, 4, 5)

	runs := FindRuns(g, 5, Row)
	require.Len(t, runs, 2)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, runs[0].Positions)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, runs[1].Positions)

	// Detection alone leaves the grid untouched.
	assert.Equal(t, 0, g.EmptyCount())
}

func TestSweepOnlyClearsFirstRunPerCheck(t *testing.T) {
	g := background(DefaultWidth)
	paint(g, Blue, 0, 1, 2)
	paint(g, Blue, 40, 41, 42)
	m := NewMatcher(DefaultTiers, DefaultScoring())

	matches := m.Sweep(g)
	require.Len(t, matches, 1)
	assert.Equal(t, []int{0, 1, 2}, matches[0].Run.Positions)
	assert.Equal(t, Blue, g.Get(40))

	matches = m.Sweep(g)
	require.Len(t, matches, 1)
	assert.Equal(t, []int{40, 41, 42}, matches[0].Run.Positions)
}

func TestChecksOrder(t *testing.T) {
	want := []Check{
		{5, Column}, {5, Row},
		{4, Column}, {4, Row},
		{3, Column}, {3, Row},
	}
	assert.Equal(t, want, Checks(DefaultTiers))
	assert.Equal(t, want, NewMatcher(DefaultTiers, DefaultScoring()).Checks())
	assert.Equal(t, "column-of-5", want[0].String())
}

func TestHigherTierWinsOverLowerTier(t *testing.T) {
	g := background(DefaultWidth)
	// A row of five and, elsewhere, a column of three.
	paint(g, Blue, 16, 17, 18, 19, 20)
	paint(g, Red, 7, 15, 23)
	m := NewMatcher(DefaultTiers, DefaultScoring())

	matches := m.Sweep(g)
	require.Len(t, matches, 2)
	assert.Equal(t, Check{5, Row}, matches[0].Check)
	assert.Equal(t, Check{3, Column}, matches[1].Check)
	assert.Equal(t, 50+3, TotalPoints(matches))
	assert.True(t, IsGoodJob(matches[0]))
	assert.False(t, IsGoodJob(matches[1]))
}

func TestScoringWeights(t *testing.T) {
	s := DefaultScoring()
	assert.Equal(t, 30, s.Points(Run{Orientation: Row, Positions: span(0, 3, 1)}))
	assert.Equal(t, 3, s.Points(Run{Orientation: Column, Positions: span(0, 3, 8)}))

	custom := Scoring{RowMultiplier: 2, ColumnMultiplier: 7}
	assert.Equal(t, 8, custom.Points(Run{Orientation: Row, Positions: span(0, 4, 1)}))
	assert.Equal(t, 28, custom.Points(Run{Orientation: Column, Positions: span(0, 4, 8)}))
}

func TestNewMatcherRejectsBadTiers(t *testing.T) {
	assert.Panics(t, func() { NewMatcher(nil, DefaultScoring()) })
	assert.Panics(t, func() { NewMatcher([]int{3, 1}, DefaultScoring()) })
}
