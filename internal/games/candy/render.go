package candy

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy/board"
)

const (
	cellWidth    = 3 // marker, glyph, marker
	hudHeight    = 3
	footerHeight = 2 // notification and a spare line
	minHUDWidth  = 34
)

// tokenStyle is how a token is drawn.
type tokenStyle struct {
	glyph rune
	color core.Color
}

var tokenStyles = map[board.Token]tokenStyle{
	board.Empty:  {'·', core.ColorGray},
	board.Blue:   {'●', core.ColorBrightBlue},
	board.Green:  {'▲', core.ColorGreen},
	board.Orange: {'◆', core.ColorOrange},
	board.Purple: {'■', core.ColorMagenta},
	board.Red:    {'♥', core.ColorRed},
	board.Yellow: {'★', core.ColorYellow},
}

// boardSize returns the framed board dimensions in screen cells.
func boardSize(width int) (w, h int) {
	return width*cellWidth + 2, width + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardSize(g.session.Width())
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderNotification(dst, boardY+boardH)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// CellAt maps a screen coordinate to the board position drawn there.
// The frame and anything outside the grid report false.
func (g *Game) CellAt(x, y int) (int, bool) {
	if g.session == nil || g.tooSmall {
		return board.NoPosition, false
	}
	w := g.session.Width()
	boardW, _ := boardSize(w)
	col := x - ((g.screenW-boardW)/2 + 1)
	row := y - (hudHeight + 1)
	if col < 0 || row < 0 || row >= w || col >= w*cellWidth {
		return board.NoPosition, false
	}
	return row*w + col/cellWidth, true
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and level info.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, "C A N D Y")

	score := fmt.Sprintf("Score: %d", g.session.Score())
	var info string
	if g.mode == ModeCampaign {
		info = fmt.Sprintf("Level %d/%d  Moves: %d  Target: %d", g.levelIndex+1, LevelCount(), g.movesLeft, g.target())
	} else {
		info = "Endless"
	}
	dst.DrawTextCentered(1, score)
	x := (g.screenW - utf8.RuneCountInString(info)) / 2
	dst.DrawTextColored(x, 2, info, core.ColorGray)
}

// renderBoard draws the framed grid with cursor, pick and hint markers.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	w := g.session.Width()
	boardW, boardH := boardSize(w)
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH))

	snap := g.session.Snapshot()
	for pos, tok := range snap.Tokens {
		x := boardX + 1 + (pos%w)*cellWidth
		y := boardY + 1 + pos/w

		style, ok := tokenStyles[tok]
		if !ok {
			style = tokenStyle{'?', core.ColorDefault}
		}
		dst.SetColored(x+1, y, style.glyph, style.color)

		left, right, color, marked := g.marker(pos)
		if marked {
			dst.SetColored(x, y, left, color)
			dst.SetColored(x+2, y, right, color)
		}
	}
}

// marker returns the brackets drawn around pos. A held token outranks the
// cursor, which outranks a hint.
func (g *Game) marker(pos int) (left, right rune, color core.Color, ok bool) {
	switch {
	case pos == g.dragged:
		return '<', '>', core.ColorBrightYellow, true
	case pos == g.cursor:
		return '[', ']', core.ColorBrightWhite, true
	case g.hasHint && (pos == g.hint.From || pos == g.hint.To):
		return '(', ')', core.ColorCyan, true
	}
	return 0, 0, core.ColorDefault, false
}

// renderNotification draws the session's transient message under the board.
func (g *Game) renderNotification(dst *core.Screen, y int) {
	text := g.session.Notification()
	if text == "" {
		return
	}
	x := (g.screenW - utf8.RuneCountInString(text)) / 2
	dst.DrawTextColored(x, y, text, core.ColorBrightYellow)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.levelCleared {
		cleared := fmt.Sprintf("Level %d cleared!", g.levelIndex+1)
		if g.levelIndex >= LevelCount()-1 {
			drawOverlay(dst, centerX, centerY, cleared, "Final level complete!")
		} else {
			drawOverlay(dst, centerX, centerY, cleared, fmt.Sprintf("Next: %s", Levels[g.levelIndex+1].Name))
		}
		return
	}

	if g.won {
		drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", fmt.Sprintf("Score: %d", g.session.Score()), "Press R to restart")
		return
	}

	if g.gameOver {
		drawOverlay(dst, centerX, centerY, "OUT OF MOVES", fmt.Sprintf("Target was %d", g.target()), "Press R to restart")
	}
}

// drawOverlay draws a boxed, centered block of text.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Enter: Pick/Drop | Esc: Cancel | ?: Hint | P: Pause | Q: Quit"
}
