package game

// Body is an axis-separated kinematic body positioned by its bottom-centre.
// X is integrated and resolved fully before Y; corner contacts therefore
// resolve on X first.
type Body struct {
	Pos      Vec2
	Vel      Vec2
	Acc      Vec2
	W, H     float64
	OnGround bool
}

// Rect is the body's collider at its current position.
func (b *Body) Rect() Rect { return RectMidBottom(b.Pos, b.W, b.H) }

// IntegrateX advances X velocity then position. maxVX <= 0 disables the clamp.
func (b *Body) IntegrateX(dt, maxVX float64) {
	b.Vel.X += b.Acc.X * dt
	if maxVX > 0 {
		b.Vel.X = clamp(b.Vel.X, -maxVX, maxVX)
	}
	b.Pos.X += b.Vel.X*dt + 0.5*b.Acc.X*dt*dt
}

// IntegrateY advances Y velocity then position, clamped to [minVY, maxVY].
func (b *Body) IntegrateY(dt, minVY, maxVY float64) {
	b.Vel.Y += b.Acc.Y * dt
	b.Vel.Y = clamp(b.Vel.Y, minVY, maxVY)
	b.Pos.Y += b.Vel.Y*dt + 0.5*b.Acc.Y*dt*dt
}

// ResolveX pushes the body out of colliders it overlaps along X and zeroes
// X velocity. When stepOffset is non-zero a low obstruction is climbed
// instead: the foot probe (leading bottom corner raised by stepOffset) must be
// clear in the obstacle and, across all colliders, neither the probe nor the
// leading top corner may be blocked. All tests use the rect from before
// resolution.
func (b *Body) ResolveX(colliders []Rect, stepOffset float64) {
	r := b.Rect()
	for _, c := range colliders {
		if !r.Overlaps(c) {
			continue
		}
		switch {
		case b.Vel.X > 0:
			foot := Vec2{r.Right(), r.Bottom() + stepOffset}
			head := Vec2{r.Right(), r.Top()}
			if stepOffset != 0 && !c.Contains(foot) && isStep(colliders, foot, head) {
				b.Pos.Y = c.Top()
				continue
			}
			b.Pos.X = c.Left() - b.W/2
			b.Vel.X = 0
		case b.Vel.X < 0:
			foot := Vec2{r.Left(), r.Bottom() + stepOffset}
			head := Vec2{r.Left(), r.Top()}
			if stepOffset != 0 && !c.Contains(foot) && isStep(colliders, foot, head) {
				b.Pos.Y = c.Top()
				continue
			}
			b.Pos.X = c.Right() + b.W/2
			b.Vel.X = 0
		}
	}
}

func isStep(colliders []Rect, foot, head Vec2) bool {
	for _, c := range colliders {
		if c.Contains(foot) || c.Contains(head) {
			return false
		}
	}
	return true
}

// ResolveY pushes the body out of colliders along Y, zeroes Y velocity and
// sets OnGround only for a downward contact.
func (b *Body) ResolveY(colliders []Rect) {
	r := b.Rect()
	b.OnGround = false
	for _, c := range colliders {
		if !r.Overlaps(c) {
			continue
		}
		switch {
		case b.Vel.Y > 0:
			b.Pos.Y = c.Top()
			b.Vel.Y = 0
			b.OnGround = true
		case b.Vel.Y < 0:
			b.Pos.Y = c.Bottom() + b.H
			b.Vel.Y = 0
		}
	}
}

// Overlapping reports whether r overlaps any collider.
func Overlapping(r Rect, colliders []Rect) bool {
	for _, c := range colliders {
		if r.Overlaps(c) {
			return true
		}
	}
	return false
}

// asymmetricGravity returns the Y acceleration for a grounded-style body.
// Rising bodies use base gravity; falling airborne bodies fall faster. A body
// resting on the ground keeps its current acceleration.
func asymmetricGravity(vy, current, g, downMul float64, onGround bool) float64 {
	if vy <= 0 {
		return g
	}
	if !onGround {
		return g * downMul
	}
	return current
}

// jumpAccel converts an instantaneous impulse into a one-tick acceleration.
// A zero dt yields no impulse.
func jumpAccel(impulse, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return impulse / dt
}

// turnThreshold is the opposing speed that triggers the turn boost.
const turnThreshold = 200.0

// steerAxis computes one axis of input-driven acceleration. Acceleration is
// doubled while turn is running; turn restarts when the input opposes a
// velocity of at least turnThreshold.
func steerAxis(input, vel, accel float64, turn *Timer) float64 {
	a := input * accel
	if !turn.Done() {
		a *= 2
	}
	if abs(vel) >= turnThreshold && input != sign(vel) {
		turn.Start()
	}
	return a
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
