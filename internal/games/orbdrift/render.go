package orbdrift

import (
	"fmt"

	"github.com/vovakirdan/orbdrift/internal/config"
	"github.com/vovakirdan/orbdrift/internal/core"
	"github.com/vovakirdan/orbdrift/internal/games/orbdrift/sim"
	"github.com/vovakirdan/orbdrift/internal/registry"
)

const (
	minScreenW = 24
	minScreenH = 8
	hudRows    = 1 // Rows above the play area
)

// viewport maps world units onto screen cells.
// Row 0 holds the HUD and the last row holds the ground.
type viewport struct {
	sx, sy float64
	top    int
	rows   int
}

func newViewport(field config.FieldConfig, w, h int) viewport {
	rows := h - hudRows - 1
	return viewport{
		sx:   float64(w) / field.Width,
		sy:   float64(rows) / field.Height,
		top:  hudRows,
		rows: rows,
	}
}

func (v viewport) cell(x, y float64) (int, int) {
	cx := int(x * v.sx)
	cy := int(y * v.sy)
	if cy >= v.rows {
		cy = v.rows - 1
	}
	return cx, v.top + cy
}

// world returns the world coordinates of a cell centre.
func (v viewport) world(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) / v.sx, (float64(cy-v.top) + 0.5) / v.sy
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		g.renderTooSmall(dst)
		return
	}

	theme := g.assets.Theme()
	vp := newViewport(g.cfg.Field, w, h)
	st := g.engine.State()

	dst.DrawHLine(0, h-1, w, theme.Ground.Rune, theme.Ground.Color)

	for _, ent := range g.engine.Entities() {
		glyph := g.assets.Resolve(ent.Visual)
		if ent.Kind == sim.KindPlayer {
			if g.flash > 0 {
				glyph.Color = core.ColorBrightRed
			}
			g.drawBox(dst, vp, ent.Bounds(), glyph)
			if st.DebugMode {
				g.drawOutline(dst, vp, ent.Hitbox(g.cfg.Player.HitboxFraction), theme.Hitbox)
			}
			continue
		}
		g.drawCircle(dst, vp, ent, glyph)
		if st.DebugMode {
			g.drawOutline(dst, vp, ent.Bounds(), theme.Hitbox)
		}
	}

	g.renderHUD(dst, st, theme.HUD)
	if st.DebugMode {
		g.renderDebug(dst, theme.HUD)
	}
	g.renderOverlays(dst, st, theme.Banner)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

// drawBox fills the cells covered by b.
func (g *Game) drawBox(dst *core.Screen, vp viewport, b core.Box, glyph registry.Glyph) {
	x0, y0 := vp.cell(b.MinX, b.MinY)
	x1, y1 := vp.cell(b.MaxX, b.MaxY)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, glyph.Rune, glyph.Color)
		}
	}
}

// drawOutline marks the corners of b.
func (g *Game) drawOutline(dst *core.Screen, vp viewport, b core.Box, glyph registry.Glyph) {
	x0, y0 := vp.cell(b.MinX, b.MinY)
	x1, y1 := vp.cell(b.MaxX, b.MaxY)
	for _, p := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		if dst.Get(p[0], p[1]) == ' ' {
			dst.SetColored(p[0], p[1], glyph.Rune, glyph.Color)
		}
	}
}

// drawCircle fills the cells whose centres lie inside the entity's circle.
// The centre cell is always drawn so small circles stay visible.
func (g *Game) drawCircle(dst *core.Screen, vp viewport, ent sim.Entity, glyph registry.Glyph) {
	b := ent.Bounds()
	x0, y0 := vp.cell(b.MinX, b.MinY)
	x1, y1 := vp.cell(b.MaxX, b.MaxY)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			wx, wy := vp.world(x, y)
			if core.Distance(wx, wy, ent.X, ent.Y) <= ent.Radius {
				dst.SetColored(x, y, glyph.Rune, glyph.Color)
			}
		}
	}
	cx, cy := vp.cell(ent.X, ent.Y)
	dst.SetColored(cx, cy, glyph.Rune, glyph.Color)
}

// renderHUD draws score, level, orb quota and the countdown.
func (g *Game) renderHUD(dst *core.Screen, st sim.GameState, c core.Color) {
	left := fmt.Sprintf(" Score: %d  Orbs: %d/%d", st.Score, st.OrbsCollected, st.OrbsRequired)
	dst.DrawTextColored(0, 0, left, c)

	right := fmt.Sprintf("L%d/%d %s  %4.1fs ", st.Level, g.cfg.LevelCount(), st.LevelName, st.TimeRemaining/1000)
	x := dst.Width() - len([]rune(right))
	if x < len(left)+1 {
		right = fmt.Sprintf("L%d %4.1fs ", st.Level, st.TimeRemaining/1000)
		x = dst.Width() - len(right)
	}
	dst.DrawTextColored(x, 0, right, c)
}

// renderDebug writes engine counters over the ground line.
func (g *Game) renderDebug(dst *core.Screen, c core.Color) {
	s := g.engine.Stats()
	line := fmt.Sprintf(" DEBUG gen=%d ents=%d timers=%d stale=%d assets=%d ",
		g.engine.State().Generation, s.Entities, s.PendingTimers, s.StaleTimers, g.assets.Live())
	dst.DrawTextColored(1, dst.Height()-1, line, c)
}

// renderOverlays draws the state banners.
func (g *Game) renderOverlays(dst *core.Screen, st sim.GameState, c core.Color) {
	switch {
	case st.Status == sim.StatusIdle:
		g.drawCenteredMessage(dst, "ORB DRIFT", "Press Space to start", c)
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", c)
	case st.Status == sim.StatusLevelComplete:
		g.drawCenteredMessage(dst, fmt.Sprintf("LEVEL %d", st.Level), st.LevelName, c)
	case st.Status == sim.StatusGameOver:
		g.drawCenteredMessage(dst, outcomeTitle(st.Outcome),
			fmt.Sprintf("Score: %d  |  Press R to restart", st.Score), c)
	}
}

func outcomeTitle(o sim.Outcome) string {
	switch o {
	case sim.OutcomeVictory:
		return "VICTORY"
	case sim.OutcomeTimeExpired:
		return "TIME UP"
	default:
		return "GAME OVER"
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	if boxW > w {
		boxW = w
	}
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)

	dst.DrawTextCentered(boxY+1, title, c)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorDefault)
}
