package game

// Camera tuning.
const (
	cameraFollowRate = 3.0   // lerp rate toward the player per second
	cameraBossRate   = 2.0   // lerp rate while framing the boss
	cameraFocalRate  = 2.0   // lerp rate inside a focal point
	cameraBossRange  = 700.0 // boss framing kicks in inside this distance
	cameraShakeMag   = 8.0   // max shake offset in world units
)

// Camera tracks a world point shown at the screen centre.
type Camera struct {
	Pos  Vec2
	Zoom float64

	screenW, screenH float64
	rnd              Random
	shake            *Timer
	offset           Vec2
}

// NewCamera centres a camera on pos.
func NewCamera(rnd Random, pos Vec2, screenW, screenH float64) *Camera {
	return &Camera{
		Pos:     pos,
		Zoom:    1,
		screenW: screenW,
		screenH: screenH,
		rnd:     rnd,
		shake:   NewTimer(0, true),
	}
}

// Shake jitters the view for the given seconds.
func (c *Camera) Shake(seconds float64) {
	c.shake.SetCooldown(seconds)
	c.shake.Start()
}

// Shaking reports whether a shake is running.
func (c *Camera) Shaking() bool { return !c.shake.Done() }

// Offset is the current shake displacement.
func (c *Camera) Offset() Vec2 { return c.offset }

// Tick advances the shake.
func (c *Camera) Tick(dt float64) {
	c.shake.Tick(dt)
	if c.shake.Done() {
		c.offset = Vec2{}
		return
	}
	c.offset = Vec2{
		Uniform(c.rnd, -cameraShakeMag, cameraShakeMag),
		Uniform(c.rnd, -cameraShakeMag, cameraShakeMag),
	}
}

// Follow moves the camera a rate*dt fraction of the way to target.
func (c *Camera) Follow(target Vec2, rate, dt float64) {
	c.Pos = c.Pos.Lerp(target, clamp(rate*dt, 0, 1))
}

// Snap jumps straight to target.
func (c *Camera) Snap(target Vec2) { c.Pos = target }

// Focus picks the camera target for this tick: a live focal point first, the
// player/boss midpoint near the boss, the player otherwise.
func (c *Camera) Focus(dt float64, player Vec2, boss *Vec2, focal *FocalPoint) {
	switch {
	case focal != nil:
		w := focal.Weight
		target := player.Add(focal.Pos.Scale(w)).Scale(1 / (1 + w))
		c.Follow(target, cameraFocalRate, dt)
	case boss != nil && boss.Dist(player) < cameraBossRange:
		c.Follow(player.Scale(2).Add(*boss).Scale(1.0/3), cameraBossRate, dt)
	default:
		c.Follow(player, cameraFollowRate, dt)
	}
}

// WorldToScreen maps a world point to screen pixels.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	rel := p.Sub(c.Pos).Sub(c.offset).Scale(c.Zoom)
	return Vec2{rel.X + c.screenW/2, rel.Y + c.screenH/2}
}

// ScreenToWorld maps screen pixels back to a world point.
func (c *Camera) ScreenToWorld(s Vec2) Vec2 {
	rel := Vec2{s.X - c.screenW/2, s.Y - c.screenH/2}.Scale(1 / c.Zoom)
	return rel.Add(c.Pos).Add(c.offset)
}

// View is the world rectangle on screen.
func (c *Camera) View() Rect {
	w, h := c.screenW/c.Zoom, c.screenH/c.Zoom
	return RectCentered(c.Pos.Add(c.offset), w, h)
}
