package tetris

import (
	"fmt"

	"github.com/vovakirdan/tetry/internal/core"
	"github.com/vovakirdan/tetry/internal/games/tetris/engine"
)

// Layout constants in screen characters. Each cell is two characters wide.
const (
	cellW   = 2
	wellW   = engine.Width*cellW + 2 // Including borders
	wellH   = engine.Height + 2
	sideW   = 12
	sideGap = 2

	minScreenW = wellW + 2*(sideW+sideGap)
	minScreenH = wellH
)

var shapeColors = [engine.ShapeCount]core.Color{
	engine.ShapeI: core.ColorCyan,
	engine.ShapeO: core.ColorYellow,
	engine.ShapeT: core.ColorMagenta,
	engine.ShapeS: core.ColorGreen,
	engine.ShapeZ: core.ColorRed,
	engine.ShapeJ: core.ColorBlue,
	engine.ShapeL: core.ColorOrange,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	snap := g.eng.Snapshot()
	wellX := (dst.Width() - wellW) / 2
	wellY := (dst.Height() - wellH) / 2

	g.renderWell(dst, wellX, wellY, snap)
	g.renderHold(dst, wellX-sideGap-sideW, wellY, snap)
	g.renderHelp(dst, wellX-sideGap-sideW, wellY+7)
	g.renderNext(dst, wellX+wellW+sideGap, wellY, snap)
	g.renderStats(dst, wellX+wellW+sideGap, wellY+7)

	switch {
	case g.gameOver():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d - press R", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderWell draws the field border, the locked stack, the ghost and the
// active piece.
func (g *Game) renderWell(dst *core.Screen, x, y int, snap engine.Snapshot) {
	dst.DrawBoxColor(core.NewRect(x, y, wellW, wellH), core.ColorGray)

	cellAt := func(p engine.Pos) (int, int, bool) {
		if p.Col < 0 || p.Col >= engine.Width || p.Row < 0 || p.Row >= engine.Height {
			return 0, 0, false
		}
		return x + 1 + p.Col*cellW, y + 1 + (engine.Height - 1 - p.Row), true
	}

	for row := range engine.Height {
		for col := range engine.Width {
			if sx, sy, ok := cellAt(engine.Pos{Col: col, Row: row}); ok {
				dst.DrawTextColor(sx, sy, " .", core.ColorDarkGray)
			}
		}
	}

	for _, c := range snap.Locked {
		if sx, sy, ok := cellAt(c.Pos); ok {
			dst.DrawTextColor(sx, sy, "[]", shapeColors[c.Shape])
		}
	}

	if snap.GhostVisible {
		for _, p := range snap.GhostCells {
			if sx, sy, ok := cellAt(p); ok {
				dst.DrawTextColor(sx, sy, "::", core.ColorGray)
			}
		}
	}

	color := shapeColors[snap.Active.Shape]
	if snap.State == engine.StateGameOver {
		color = core.ColorGray
	}
	for _, p := range snap.ActiveCells {
		if sx, sy, ok := cellAt(p); ok {
			dst.DrawTextColor(sx, sy, "[]", color)
		}
	}
}

func (g *Game) renderHold(dst *core.Screen, x, y int, snap engine.Snapshot) {
	drawPanel(dst, x, y, 6, "Hold")
	if !snap.HoldVisible {
		return
	}
	color := shapeColors[snap.Hold]
	if snap.HoldUsed {
		color = core.ColorGray
	}
	drawShape(dst, x, y+2, snap.Hold, color)
}

func (g *Game) renderNext(dst *core.Screen, x, y int, snap engine.Snapshot) {
	drawPanel(dst, x, y, 6, "Next")
	drawShape(dst, x, y+2, snap.Next, shapeColors[snap.Next])
}

func (g *Game) renderStats(dst *core.Screen, x, y int) {
	drawPanel(dst, x, y, 11, "Stats")
	rows := []struct {
		label string
		value int
	}{
		{"Score", g.score},
		{"Best", g.Best()},
		{"Lines", g.lines},
		{"Level", g.level + 1},
	}
	for i, r := range rows {
		dst.DrawTextColor(x+1, y+1+i*2, r.label, core.ColorGray)
		dst.DrawTextColor(x+1, y+2+i*2, fmt.Sprintf("%*d", sideW-2, r.value), core.ColorBrightWhite)
	}
	if g.clearFlash > 0 && g.lastClear > 0 {
		label := clearLabel(g.lastClear)
		dst.DrawTextColor(x+(sideW-len(label))/2, y+9, label, core.ColorBrightYellow)
	}
}

func (g *Game) renderHelp(dst *core.Screen, x, y int) {
	lines := []string{
		"←→  move",
		"↑   rotate",
		"↓   soft",
		"spc drop",
		"c   hold",
		"p   pause",
		"q   quit",
	}
	drawPanel(dst, x, y, len(lines)+2, "Keys")
	for i, l := range lines {
		dst.DrawTextColor(x+1, y+1+i, l, core.ColorGray)
	}
}

// drawPanel draws a side box with a title in its top border.
func drawPanel(dst *core.Screen, x, y, h int, title string) {
	dst.DrawBoxColor(core.NewRect(x, y, sideW, h), core.ColorGray)
	dst.DrawTextColor(x+2, y, " "+title+" ", core.ColorWhite)
}

// drawShape draws a shape in its spawn orientation, centred in a panel
// whose left border is at x.
func drawShape(dst *core.Screen, x, y int, s engine.Shape, color core.Color) {
	offsets := s.Offsets()
	minX, maxX, maxY := offsets[0].X, offsets[0].X, offsets[0].Y
	for _, o := range offsets[1:] {
		minX = min(minX, o.X)
		maxX = max(maxX, o.X)
		maxY = max(maxY, o.Y)
	}
	w := (maxX-minX)/engine.Unit + 1
	left := x + 1 + (sideW-2-w*cellW)/2
	for _, o := range offsets {
		col := (o.X - minX) / engine.Unit
		row := (maxY - o.Y) / engine.Unit
		dst.DrawTextColor(left+col*cellW, y+row, "[]", color)
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
