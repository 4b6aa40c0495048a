package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1× then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 180
	inspBufH  = 150
	inspPad   = 4
	inspLineH = 13

	inspPickRadius = 60.0 // world units around the orb centroid
)

// Inspector tracks the monster picked with the right mouse button. Selection
// is by id so a dead monster simply drops out.
type Inspector struct {
	selected int
	rawView  bool // false = curated, true = raw dump
	buf      *ebiten.Image
}

// NewInspector returns an inspector with nothing selected.
func NewInspector() *Inspector {
	return &Inspector{selected: -1, buf: ebiten.NewImage(inspBufW, inspBufH)}
}

// Pick selects the live monster whose centroid is nearest to the world point,
// or clears the selection when none is within reach.
func (in *Inspector) Pick(w *World, at Vec2) bool {
	in.selected = -1
	best := inspPickRadius
	for _, m := range w.Monsters().Monsters() {
		if d := m.Centroid().Dist(at); d < best {
			best = d
			in.selected = m.ID
		}
	}
	return in.selected >= 0
}

// Selected returns the inspected monster, or nil.
func (in *Inspector) Selected(w *World) *WaterMonster {
	if in.selected < 0 {
		return nil
	}
	for _, m := range w.Monsters().Monsters() {
		if m.ID == in.selected {
			return m
		}
	}
	return nil
}

// Lines describes m for the panel.
func (in *Inspector) Lines(w *World, m *WaterMonster) []string {
	dist := m.Centroid().Dist(w.Player().Pos())
	if in.rawView {
		r := m.PhysicsRect()
		return []string{
			fmt.Sprintf("pos    %.1f,%.1f", m.Body.Pos.X, m.Body.Pos.Y),
			fmt.Sprintf("vel    %.1f,%.1f", m.Body.Vel.X, m.Body.Vel.Y),
			fmt.Sprintf("rect   %.0f,%.0f %.0fx%.0f", r.X, r.Y, r.W, r.H),
			fmt.Sprintf("ground %v", m.Body.OnGround),
			fmt.Sprintf("temp   %.1f/%.0f", m.Temp.Value, m.Temp.Max),
			fmt.Sprintf("move   %.2f,%.2f", m.AI.Movement().X, m.AI.Movement().Y),
			fmt.Sprintf("attack %v", m.AI.WantsAttack()),
		}
	}
	return []string{
		fmt.Sprintf("state  %s", m.AI.State()),
		fmt.Sprintf("heat   %s (%.0f%%)", heatLabel(m.Temp.Fraction()), m.Temp.Fraction()*100),
		fmt.Sprintf("dist   %.0f", dist),
		fmt.Sprintf("orbs   %d", m.Orbs.Count()),
		fmt.Sprintf("alive  %v", m.Alive()),
	}
}

// Draw renders the inspector panel for the selected monster at (x, y).
func (in *Inspector) Draw(screen *ebiten.Image, w *World, x, y int) {
	m := in.Selected(w)
	if m == nil {
		return
	}
	in.buf.Clear()
	buf := in.buf
	bw, bh := float32(inspBufW), float32(inspBufH)

	panelBorder := color.RGBA{R: 55, G: 80, B: 120, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 12, G: 14, B: 20, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	lx, ly := inspPad, inspPad
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ MONSTER M%d ]", m.ID), lx, ly)
	ly += inspLineH
	viewName := "CURATED"
	if in.rawView {
		viewName = "RAW"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I]", viewName), lx, ly)
	ly += inspLineH + 2
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-inspPad, float32(ly), 1.0, panelBorder, false)
	ly += 4

	for _, line := range in.Lines(w, m) {
		ebitenutil.DebugPrintAt(buf, line, lx, ly)
		ly += inspLineH
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(inspScale, inspScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(buf, op)
}
