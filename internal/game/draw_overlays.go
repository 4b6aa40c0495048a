package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colCollider    = color.RGBA{R: 255, G: 255, B: 0, A: 120}
	colHitbox      = color.RGBA{R: 0, G: 255, B: 0, A: 200}
	colDamageBox   = color.RGBA{R: 255, G: 60, B: 60, A: 200}
	colSearchRing  = color.RGBA{R: 80, G: 140, B: 255, A: 60}
	colAttackRing  = color.RGBA{R: 255, G: 120, B: 60, A: 80}
	colProbe       = color.RGBA{R: 255, G: 0, B: 255, A: 200}
	colHitMarker   = color.RGBA{R: 255, G: 255, B: 255, A: 220}
	colFocalPoint  = color.RGBA{R: 255, G: 200, B: 0, A: 160}
	colCollisionPt = color.RGBA{R: 255, G: 90, B: 0, A: 255}
)

// aiStateColor returns the label colour for a monster state.
func aiStateColor(s MonsterState) color.RGBA {
	switch s {
	case MonsterAttack:
		return color.RGBA{R: 230, G: 70, B: 50, A: 220}
	case MonsterApproach:
		return color.RGBA{R: 230, G: 190, B: 60, A: 220}
	default:
		return color.RGBA{R: 90, G: 90, B: 110, A: 220}
	}
}

func (g *Game) strokeWorldRect(dst *ebiten.Image, r Rect, c color.Color) {
	x, y := g.toScreen(Vec2{r.X, r.Y})
	z := float32(g.world.Camera().Zoom)
	vector.StrokeRect(dst, x, y, float32(r.W)*z, float32(r.H)*z, 1, c, false)
}

func (g *Game) strokeWorldCircle(dst *ebiten.Image, c Circle, col color.Color) {
	x, y := g.toScreen(c.Center)
	vector.StrokeCircle(dst, x, y, float32(c.R*g.world.Camera().Zoom), 1, col, true)
}

// drawDebugOverlays draws everything behind the F3 toggle.
func (g *Game) drawDebugOverlays(dst *ebiten.Image) {
	g.drawColliderOverlay(dst)
	g.drawFocalPoints(dst)
	g.drawMonsterOverlay(dst)
	g.drawPlayerOverlay(dst)
	g.drawCombatOverlay(dst)
}

// drawColliderOverlay outlines main-layer colliders inside the view.
func (g *Game) drawColliderOverlay(dst *ebiten.Image) {
	view := g.world.Camera().View()
	layer := g.world.Level().Layer(LayerMain)
	if layer == nil {
		return
	}
	for _, r := range layer.Overlapping(view, 1) {
		g.strokeWorldRect(dst, r, colCollider)
	}
}

func (g *Game) drawFocalPoints(dst *ebiten.Image) {
	for _, fp := range g.world.Level().FocalPoints {
		g.strokeWorldCircle(dst, Circle{Center: fp.Pos, R: fp.Radius}, colFocalPoint)
		x, y := g.toScreen(fp.Pos)
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("w=%.1f %v", fp.Weight, fp.MonsterIDs), int(x)+4, int(y)+4)
	}
}

// drawMonsterOverlay draws each in-range monster's AI radii, probe, physics
// rect, damage collider and a state label.
func (g *Game) drawMonsterOverlay(dst *ebiten.Image) {
	for _, m := range g.world.Monsters().InRange(g.world.Player().Pos()) {
		cfg := m.AI.Config()
		c := m.Centroid()
		g.strokeWorldCircle(dst, Circle{Center: c, R: cfg.SearchRadius}, colSearchRing)
		g.strokeWorldCircle(dst, Circle{Center: c, R: cfg.AttackRadius}, colAttackRing)
		g.strokeWorldRect(dst, m.PhysicsRect(), colHitbox)
		g.strokeWorldRect(dst, m.DamageCollider(), colDamageBox)
		if probe := m.AI.Probe(); probe.W > 0 {
			g.strokeWorldRect(dst, probe, colProbe)
		}

		label := fmt.Sprintf("M%d %s", m.ID, m.AI.State())
		x, y := g.toScreen(m.DamageCollider().MidBottom())
		vector.FillRect(dst, x-float32(len(label)*3)-2, y+2, float32(len(label)*6)+4, 16, aiStateColor(m.AI.State()), false)
		ebitenutil.DebugPrintAt(dst, label, int(x)-len(label)*3, int(y)+2)
	}
}

func (g *Game) drawPlayerOverlay(dst *ebiten.Image) {
	p := g.world.Player()
	g.strokeWorldRect(dst, p.Rect(), colHitbox)
	for _, pos := range g.world.Collision().Positions() {
		x, y := g.toScreen(pos)
		vector.FillRect(dst, x-1, y-1, 3, 3, colCollisionPt, false)
	}
	tx, ty := g.toScreen(p.AimTarget())
	vector.StrokeLine(dst, tx-4, ty, tx+4, ty, 1, colProbe, false)
	vector.StrokeLine(dst, tx, ty-4, tx, ty+4, 1, colProbe, false)

	x, y := g.toScreen(p.Rect().MidBottom())
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s %s vel=%.0f,%.0f", p.Mode(), p.Anim.Current(), p.Body.Vel.X, p.Body.Vel.Y), int(x)-60, int(y)+4)
}

// drawCombatOverlay shows where damage landed recently and the boss cooldown.
func (g *Game) drawCombatOverlay(dst *ebiten.Image) {
	for _, m := range g.world.Combat().Markers() {
		alpha := float64(m.Life) / hitMarkerTicks
		col := colHitMarker
		col.A = uint8(float64(col.A) * alpha)
		g.strokeWorldCircle(dst, Circle{Center: m.Pos, R: m.R}, col)
	}
	if b := g.world.Boss(); b != nil {
		g.strokeWorldRect(dst, b.Rect(), colHitbox)
		x, y := g.toScreen(b.Rect().MidBottom())
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("BOSS %s cd=%.1f", b.Anim.Current(), b.Cooldown().Remaining()), int(x)-50, int(y)+4)
	}
}
