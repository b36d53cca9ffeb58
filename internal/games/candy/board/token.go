// Package board implements the match-three rules: the token grid, run
// detection by tier, the one-row gravity pass, swap validation, and the
// session that ties them together on a fixed tick.
//
// Nothing here knows about terminals or the wall clock. Time is a duration the
// session advances by one tick interval per Tick call.
package board

import "fmt"

// Token is a colored piece on the board. The zero value is Empty.
type Token uint8

const (
	Empty Token = iota
	Blue
	Green
	Orange
	Purple
	Red
	Yellow
)

// PaletteSize is the number of colors in the full palette.
const PaletteSize = 6

var tokenNames = [...]string{"Empty", "Blue", "Green", "Orange", "Purple", "Red", "Yellow"}

// String returns the color name.
func (t Token) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("Token(%d)", uint8(t))
}

// Letter returns a one-character code used by Grid.String and test fixtures.
func (t Token) Letter() byte {
	if t == Empty {
		return '.'
	}
	return t.String()[0]
}

// IsEmpty reports whether t is the Empty sentinel.
func (t Token) IsEmpty() bool {
	return t == Empty
}

// Palette returns the first n colors of the palette, n clamped to [1, PaletteSize].
func Palette(n int) []Token {
	if n < 1 {
		n = 1
	}
	if n > PaletteSize {
		n = PaletteSize
	}
	p := make([]Token, n)
	for i := range p {
		p[i] = Token(i + 1)
	}
	return p
}

// ParseToken converts a Letter code back to a Token.
func ParseToken(b byte) (Token, bool) {
	if b == '.' {
		return Empty, true
	}
	for i := 1; i < len(tokenNames); i++ {
		if tokenNames[i][0] == b {
			return Token(i), true
		}
	}
	return Empty, false
}
