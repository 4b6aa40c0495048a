package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colSky        = color.RGBA{R: 150, G: 180, B: 223, A: 255}
	colWater      = color.RGBA{R: 30, G: 70, B: 160, A: 120}
	colTile       = color.RGBA{R: 70, G: 60, B: 50, A: 255}
	colTileWater  = color.RGBA{R: 60, G: 110, B: 200, A: 200}
	colTileBack   = color.RGBA{R: 90, G: 110, B: 140, A: 255}
	colPlayer     = color.RGBA{R: 200, G: 80, B: 40, A: 255}
	colGun        = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	colBoss       = color.RGBA{R: 120, G: 40, B: 140, A: 255}
	colProjectile = color.RGBA{R: 110, G: 100, B: 80, A: 255}
	colCheckpoint = color.RGBA{R: 80, G: 210, B: 110, A: 90}
	colActiveCP   = color.RGBA{R: 80, G: 240, B: 120, A: 200}
	colHealth     = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	colGunTemp    = color.RGBA{R: 240, G: 150, B: 40, A: 255}
	colBarBack    = color.RGBA{R: 20, G: 20, B: 20, A: 180}
)

func (g *Game) Draw(screen *ebiten.Image) {
	cfg := g.world.Context().Config
	view := screen
	view.Fill(colSky)
	g.drawTiles(view, func(layer int) bool { return layer < LayerMain })
	g.drawWater(view)
	g.drawCheckpoints(view)
	g.drawParticles(view, g.world.WaterFX())
	g.drawBoss(view)
	g.drawMonsters(view)
	g.drawProjectiles(view)
	g.drawPlayer(view)
	g.drawParticles(view, g.world.LandFX())
	g.drawTiles(view, func(layer int) bool { return layer >= LayerMain })
	if g.showDebug {
		g.drawDebugOverlays(view)
	}
	g.drawHUD(view)
	g.inspector.Draw(view, g.world, cfg.ScreenWidth-inspBufW*inspScale-8, 8)

	if g.showLog {
		g.events.Draw(screen, cfg.ScreenWidth, cfg.ScreenHeight)
	}
}

// toScreen maps a world point through the camera.
func (g *Game) toScreen(p Vec2) (float32, float32) {
	s := g.world.Camera().WorldToScreen(p)
	return float32(s.X), float32(s.Y)
}

func (g *Game) fillWorldRect(dst *ebiten.Image, r Rect, c color.Color) {
	x, y := g.toScreen(Vec2{r.X, r.Y})
	z := float32(g.world.Camera().Zoom)
	vector.FillRect(dst, x, y, float32(r.W)*z, float32(r.H)*z, c, false)
}

// drawTiles draws the layers accepted by keep, each shifted by its parallax
// layer's scale and vertical offset.
func (g *Game) drawTiles(dst *ebiten.Image, keep func(layer int) bool) {
	lv := g.world.Level()
	cam := g.world.Camera()
	screenW := float64(g.world.Context().Config.ScreenWidth)
	screenH := float64(g.world.Context().Config.ScreenHeight)

	for _, id := range lv.LayerIDs() {
		if !keep(id) {
			continue
		}
		pl, ok := lv.ParallaxLayer(id)
		if !ok {
			continue
		}
		scale := ParallaxScale(pl) * cam.Zoom
		offY := ParallaxOffsetY(pl, screenH)
		col := colTile
		switch {
		case id == LayerWater:
			col = colTileWater
		case id < LayerMain:
			col = colTileBack
		}
		for _, t := range lv.Layer(id).Tiles() {
			rel := Vec2{t.Rect.X, t.Rect.Y}.Sub(cam.Pos).Sub(cam.Offset()).Scale(scale)
			x := rel.X + screenW/2
			y := rel.Y + screenH/2 + offY
			w, h := t.Rect.W*scale, t.Rect.H*scale
			if x+w < 0 || y+h < 0 || x > screenW || y > screenH {
				continue
			}
			vector.FillRect(dst, float32(x), float32(y), float32(w)+1, float32(h)+1, col, false)
		}
	}
}

func (g *Game) drawWater(dst *ebiten.Image) {
	cfg := g.world.Context().Config
	_, y := g.toScreen(Vec2{0, cfg.WaterLevel})
	if int(y) >= cfg.ScreenHeight {
		return
	}
	if y < 0 {
		y = 0
	}
	vector.FillRect(dst, 0, y, float32(cfg.ScreenWidth), float32(cfg.ScreenHeight)-y, colWater, false)
}

func (g *Game) drawCheckpoints(dst *ebiten.Image) {
	lv := g.world.Level()
	z := float32(g.world.Camera().Zoom)
	for _, cp := range lv.Checkpoints {
		x, y := g.toScreen(cp.Pos)
		col := colCheckpoint
		if cp.ID == lv.ActiveCheckpoint() {
			col = colActiveCP
		}
		vector.StrokeCircle(dst, x, y, float32(cp.Radius)*z, 2, col, true)
	}
}

func (g *Game) drawParticles(dst *ebiten.Image, pe *ParticleEngine) {
	view := g.world.Camera().View().Inflate(50)
	z := float32(g.world.Camera().Zoom)
	for _, p := range pe.Particles() {
		if !view.Contains(p.Pos) {
			continue
		}
		x, y := g.toScreen(p.Pos)
		vector.FillCircle(dst, x, y, float32(p.Size)*z, p.Color, false)
	}
}

func (g *Game) drawPlayer(dst *ebiten.Image) {
	p := g.world.Player()
	if !p.Alive() {
		return
	}
	g.fillWorldRect(dst, p.Rect(), colPlayer)

	hx, hy := g.toScreen(p.Pos().Add(p.gunOffset))
	tx, ty := g.toScreen(p.GunTip)
	vector.StrokeLine(dst, hx, hy, tx, ty, 6, colGun, true)
}

func (g *Game) drawMonsters(dst *ebiten.Image) {
	z := float32(g.world.Camera().Zoom)
	for _, m := range g.world.Monsters().Monsters() {
		for _, grp := range m.Orbs.Groups() {
			for _, o := range grp.Orbs {
				x, y := g.toScreen(o.Pos)
				vector.FillCircle(dst, x, y, float32(o.Size)*z, o.Color, true)
			}
		}
	}
}

func (g *Game) drawBoss(dst *ebiten.Image) {
	b := g.world.Boss()
	if b == nil {
		return
	}
	r := b.Rect()
	if b.Anim.Current() == BossAnimSlam {
		// Squash while slamming.
		frac := float64(b.Anim.Clip().Frame()) / float64(bossSlamFrames)
		squash := r.H * 0.2 * (1 - frac)
		r.Y += squash
		r.H -= squash
	}
	g.fillWorldRect(dst, r, colBoss)
}

func (g *Game) drawProjectiles(dst *ebiten.Image) {
	z := float32(g.world.Camera().Zoom)
	for _, pr := range g.world.Projectiles().Projectiles() {
		x, y := g.toScreen(pr.Pos)
		vector.FillCircle(dst, x, y, float32(pr.Radius)*z, colProjectile, true)
	}
}

// drawHUD draws status bars and text into a reduced buffer that is upscaled
// onto the view.
func (g *Game) drawHUD(dst *ebiten.Image) {
	g.hudBuf.Clear()
	p := g.world.Player()

	drawBar(g.hudBuf, 8, 8, 120, 8, p.Health.Fraction(), colHealth)
	drawBar(g.hudBuf, 8, 20, 120, 8, p.Temp.Fraction(), colGunTemp)
	g.hudText(fmt.Sprintf("HP %d", p.Health.Current), 134, 6, color.White)
	g.hudText(fmt.Sprintf("GUN %s", heatLabel(p.Temp.Fraction())), 134, 18, color.White)

	status := fmt.Sprintf("%s  x%.1f", p.Mode(), g.simSpeed)
	if g.simSpeed == 0 {
		status = "PAUSED"
	}
	g.hudText(status, 8, 32, color.White)

	if g.showHUD {
		g.hudText("A/D move  W jump/swim  LMB fire", 8, g.hudBuf.Bounds().Dy()-40, color.White)
		g.hudText("F3 debug  F9 report  H hud  L log", 8, g.hudBuf.Bounds().Dy()-28, color.White)
		g.hudText("P pause  , slower  . faster", 8, g.hudBuf.Bounds().Dy()-16, color.White)
	}
	if g.reportMsgTicks > 0 {
		g.hudText(g.reportMsg, 8, 44, color.RGBA{R: 255, G: 230, B: 120, A: 255})
	}
	if g.world.Dead() {
		g.hudText("YOU BOILED OVER", g.hudBuf.Bounds().Dx()/2-52, g.hudBuf.Bounds().Dy()/2, color.RGBA{R: 255, G: 80, B: 80, A: 255})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	dst.DrawImage(g.hudBuf, op)
}

func (g *Game) hudText(s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(g.hudBuf, s, g.face, op)
}

func drawBar(dst *ebiten.Image, x, y, w, h, frac float64, c color.Color) {
	frac = clamp(frac, 0, 1)
	vector.FillRect(dst, float32(x), float32(y), float32(w), float32(h), colBarBack, false)
	vector.FillRect(dst, float32(x), float32(y), float32(w*frac), float32(h), c, false)
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 1, color.White, false)
}
