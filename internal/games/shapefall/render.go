package shapefall

import (
	"fmt"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/engine"
)

const (
	cellWidth = 2 // Columns per cell
	hudHeight = 2
)

// Visual characters for rendering
const (
	TileChar      = '█'
	HighlightChar = '▓'
	FlashChar     = '░'
	CursorLeft    = '['
	CursorRight   = ']'
)

type layout struct {
	boardX, boardY int // top-left corner of the border
	boardW, boardH int // including the border
	rows           int
}

// layout centers the board below the HUD.
func (g *Game) layout() layout {
	w, h := g.settings.Board.Width, g.settings.Board.Height
	l := layout{
		boardW: w*cellWidth + 2,
		boardH: h + 2,
		rows:   h,
	}
	l.boardX = max((g.screenW-l.boardW)/2, 0)
	l.boardY = hudHeight
	return l
}

// screenPos returns the screen position of the left half of cell c.
func (l layout) screenPos(c core.Coord) (int, int) {
	return l.boardX + 1 + c.X*cellWidth, l.boardY + 1 + (l.rows - 1 - c.Y)
}

// cellAt translates a screen position into a grid cell.
func (g *Game) cellAt(p core.Coord) (core.Coord, bool) {
	l := g.layout()
	innerX, innerY := p.X-l.boardX-1, p.Y-l.boardY-1
	if innerX < 0 || innerY < 0 {
		return core.Coord{}, false
	}
	c := core.C(innerX/cellWidth, l.rows-1-innerY)
	if g.grid == nil {
		return core.Coord{}, false
	}
	w, h := g.grid.Dimensions()
	if c.X >= w || c.Y < 0 || c.Y >= h {
		return core.Coord{}, false
	}
	return c, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(g.screenH/2, "Cannot start puzzle: "+g.err.Error())
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderBoard(dst, l)
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the score and board info.
func (g *Game) renderHUD(dst *core.Screen, l layout) {
	dst.DrawTextCentered(0, g.Title())

	scoreStr := fmt.Sprintf("Score: %d", g.score)
	dst.DrawText(l.boardX, 1, scoreStr)

	infoStr := fmt.Sprintf("Tiles: %d  Min: %d", g.grid.OccupiedCount(), g.grid.MinMatch())
	if m, outcome := g.hovered(); outcome == engine.OutcomeCleared {
		infoStr = fmt.Sprintf("+%d  %s", g.settings.Points(m.Size()), infoStr)
	}
	infoX := max(l.boardX+l.boardW-len(infoStr), l.boardX+len(scoreStr)+1)
	dst.DrawText(infoX, 1, infoStr)
}

// hovered returns the shape under the cursor, if no animation is running.
func (g *Game) hovered() (engine.Match, engine.Outcome) {
	if g.animPhase != PhaseNone || g.gameOver {
		return engine.Match{}, engine.OutcomeNotFound
	}
	return g.grid.Peek(g.cursor.X, g.cursor.Y)
}

// renderBoard draws the border, tiles, animations and cursor.
func (g *Game) renderBoard(dst *core.Screen, l layout) {
	dst.DrawBox(core.Rect{X: l.boardX, Y: l.boardY, W: l.boardW, H: l.boardH})

	highlight := make(map[core.Coord]bool)
	if m, outcome := g.hovered(); outcome == engine.OutcomeCleared {
		for _, c := range m.Cells {
			highlight[c] = true
		}
	}

	w, h := g.grid.Dimensions()
	progress := g.dropProgress()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := core.C(x, y)
			tile, ok := g.grid.TileAt(x, y)
			if !ok {
				continue
			}

			ch := TileChar
			if highlight[c] {
				ch = HighlightChar
			}

			drawAt := c
			if m, falling := g.dropping(c); falling {
				drawAt = core.C(x, dropRow(m, progress))
			}
			g.drawCell(dst, l, drawAt, ch, g.kindColor(tile.Kind))
		}
	}

	if g.animPhase == PhaseFlash && g.flashVisible() {
		for _, c := range g.flashCells {
			g.drawCell(dst, l, c, FlashChar, g.kindColor(g.flashKind))
		}
	}

	if !g.gameOver && g.animPhase == PhaseNone {
		g.renderCursor(dst, l)
	}
}

func (g *Game) drawCell(dst *core.Screen, l layout, c core.Coord, ch rune, col core.Color) {
	sx, sy := l.screenPos(c)
	for i := range cellWidth {
		dst.SetColored(sx+i, sy, ch, col)
	}
}

// renderCursor brackets the selected cell.
func (g *Game) renderCursor(dst *core.Screen, l layout) {
	col := core.ColorBrightWhite
	if k := g.grid.KindAt(g.cursor.X, g.cursor.Y); k != engine.NoKind {
		col = g.kindColor(k)
	}
	sx, sy := l.screenPos(g.cursor)
	dst.SetColored(sx, sy, CursorLeft, col)
	dst.SetColored(sx+cellWidth-1, sy, CursorRight, col)
}

func (g *Game) kindColor(k engine.TileKind) core.Color {
	if k < 0 || int(k) >= len(g.colors) {
		return core.ColorGray
	}
	return g.colors[k]
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	centerX := l.boardX + l.boardW/2
	centerY := l.boardY + l.boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		clearedStr := fmt.Sprintf("Cleared %d tiles in %d moves", g.stats.TilesCleared, g.stats.Moves)
		if g.cleared {
			bonusStr := fmt.Sprintf("Board cleared! +%d", g.settings.Rules.ClearBonus)
			g.drawOverlay(dst, centerX, centerY, bonusStr, clearedStr, "Press R to restart")
			return
		}
		g.drawOverlay(dst, centerX, centerY, "NO MORE MOVES", clearedStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.Rect{X: centerX - boxW/2, Y: centerY - boxH/2, W: boxW, H: boxH}

	dst.FillRect(box)
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Description returns the menu blurb for the mode.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Columns refill after every pop. Chase the longest run."
	}
	return "Empty the board. The run ends when nothing can pop."
}
