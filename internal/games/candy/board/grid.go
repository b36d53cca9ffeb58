package board

import (
	"fmt"
	"math/rand"
	"strings"
)

// DefaultWidth is the side length of the standard board.
const DefaultWidth = 8

// NoPosition marks a missing neighbor.
const NoPosition = -1

// Grid is a square board of tokens stored in row-major order:
// position i is row i/width, column i%width.
// Its length is always width*width.
type Grid struct {
	width int
	cells []Token
}

// NewGrid creates a width x width grid filled with Empty.
func NewGrid(width int) *Grid {
	if width < 1 {
		panic(fmt.Sprintf("board: invalid grid width %d", width))
	}
	return &Grid{
		width: width,
		cells: make([]Token, width*width),
	}
}

// FromTokens builds a grid from a row-major token slice.
// The slice is copied; its length must be width*width.
func FromTokens(width int, tokens []Token) *Grid {
	g := NewGrid(width)
	if len(tokens) != len(g.cells) {
		panic(fmt.Sprintf("board: %d tokens for a %dx%d grid", len(tokens), width, width))
	}
	copy(g.cells, tokens)
	return g
}

// ParseGrid builds a grid from rows of Letter codes, e.g. "BGBG" per row.
// Whitespace between rows is ignored. Intended for fixtures.
func ParseGrid(rows ...string) (*Grid, error) {
	width := len(rows)
	g := NewGrid(width)
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != width {
			return nil, fmt.Errorf("board: row %d has %d cells, expected %d", r, len(row), width)
		}
		for c := 0; c < width; c++ {
			t, ok := ParseToken(row[c])
			if !ok {
				return nil, fmt.Errorf("board: unknown token %q at row %d col %d", row[c], r, c)
			}
			g.cells[r*width+c] = t
		}
	}
	return g, nil
}

// Width returns the side length.
func (g *Grid) Width() int {
	return g.width
}

// Len returns the number of positions (width squared).
func (g *Grid) Len() int {
	return len(g.cells)
}

// InBounds reports whether pos is a valid position.
func (g *Grid) InBounds(pos int) bool {
	return pos >= 0 && pos < len(g.cells)
}

// mustInBounds panics on an out-of-range position. Callers passing such a
// position have a bug; there is nothing to recover.
func (g *Grid) mustInBounds(pos int) {
	if !g.InBounds(pos) {
		panic(fmt.Sprintf("board: position %d out of range [0, %d)", pos, len(g.cells)))
	}
}

// Row returns the row of pos.
func (g *Grid) Row(pos int) int {
	return pos / g.width
}

// Col returns the column of pos.
func (g *Grid) Col(pos int) int {
	return pos % g.width
}

// Index converts (row, col) to a linear position.
func (g *Grid) Index(row, col int) int {
	if row < 0 || row >= g.width || col < 0 || col >= g.width {
		panic(fmt.Sprintf("board: cell (%d,%d) out of range for width %d", row, col, g.width))
	}
	return row*g.width + col
}

// Get returns the token at pos.
func (g *Grid) Get(pos int) Token {
	g.mustInBounds(pos)
	return g.cells[pos]
}

// Set stores t at pos.
func (g *Grid) Set(pos int, t Token) {
	g.mustInBounds(pos)
	g.cells[pos] = t
}

// Swap exchanges the tokens at a and b.
func (g *Grid) Swap(a, b int) {
	g.mustInBounds(a)
	g.mustInBounds(b)
	g.cells[a], g.cells[b] = g.cells[b], g.cells[a]
}

// Neighbors holds the four orthogonal neighbors of a position.
// Missing neighbors (board edge) are NoPosition; rows never wrap.
type Neighbors struct {
	Up    int
	Down  int
	Left  int
	Right int
}

// All returns the existing neighbors in up, down, left, right order.
func (n Neighbors) All() []int {
	out := make([]int, 0, 4)
	for _, p := range [...]int{n.Up, n.Down, n.Left, n.Right} {
		if p != NoPosition {
			out = append(out, p)
		}
	}
	return out
}

// Neighbors returns the orthogonal neighbors of pos.
func (g *Grid) Neighbors(pos int) Neighbors {
	g.mustInBounds(pos)
	n := Neighbors{Up: NoPosition, Down: NoPosition, Left: NoPosition, Right: NoPosition}
	row, col := g.Row(pos), g.Col(pos)
	if row > 0 {
		n.Up = pos - g.width
	}
	if row < g.width-1 {
		n.Down = pos + g.width
	}
	if col > 0 {
		n.Left = pos - 1
	}
	if col < g.width-1 {
		n.Right = pos + 1
	}
	return n
}

// Adjacent reports whether a and b are orthogonal neighbors.
func (g *Grid) Adjacent(a, b int) bool {
	g.mustInBounds(a)
	g.mustInBounds(b)
	n := g.Neighbors(a)
	return b == n.Up || b == n.Down || b == n.Left || b == n.Right
}

// RandomFill sets every position independently and uniformly from palette.
func (g *Grid) RandomFill(rng *rand.Rand, palette []Token) {
	for i := range g.cells {
		g.cells[i] = palette[rng.Intn(len(palette))]
	}
}

// StableFill fills the grid so that no horizontal or vertical run of three
// exists. Each position draws uniformly from the colors that would not
// complete a run with the two cells to its left or the two above it.
// The palette needs at least three colors.
func (g *Grid) StableFill(rng *rand.Rand, palette []Token) {
	if len(palette) < 3 {
		panic(fmt.Sprintf("board: stable fill needs 3 colors, got %d", len(palette)))
	}
	candidates := make([]Token, 0, len(palette))
	for i := range g.cells {
		row, col := g.Row(i), g.Col(i)
		var left, up Token
		if col >= 2 && g.cells[i-1] == g.cells[i-2] {
			left = g.cells[i-1]
		}
		if row >= 2 && g.cells[i-g.width] == g.cells[i-2*g.width] {
			up = g.cells[i-g.width]
		}
		candidates = candidates[:0]
		for _, t := range palette {
			if t != left && t != up {
				candidates = append(candidates, t)
			}
		}
		g.cells[i] = candidates[rng.Intn(len(candidates))]
	}
}

// EmptyCount returns the number of Empty positions.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, t := range g.cells {
		if t == Empty {
			n++
		}
	}
	return n
}

// HasEmpty reports whether any position is Empty.
func (g *Grid) HasEmpty() bool {
	for _, t := range g.cells {
		if t == Empty {
			return true
		}
	}
	return false
}

// Tokens returns a copy of the cells in row-major order.
func (g *Grid) Tokens() []Token {
	out := make([]Token, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return FromTokens(g.width, g.cells)
}

// Equal returns true if two grids have the same width and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width {
		return false
	}
	for i, t := range g.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as rows of Letter codes separated by newlines.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(len(g.cells) + g.width)
	for i, t := range g.cells {
		if i > 0 && i%g.width == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte(t.Letter())
	}
	return sb.String()
}
