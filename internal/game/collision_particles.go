package game

// CollisionHit is one particle death reported to the caller.
type CollisionHit struct {
	Pos     Vec2
	Profile string
}

type collisionParticle struct {
	Particle
	dead bool
}

func (cp *collisionParticle) alive() bool { return !cp.dead && cp.Size > particleMinSize }

// CollisionParticleGroup simulates particles that die on first contact and
// report where they died. The caller turns the reports into secondary effects
// and damage.
type CollisionParticleGroup struct {
	rnd       Random
	profile   *ParticleProfile
	colliders *TileLayer
	particles []collisionParticle
	scratch   []Rect
}

// NewCollisionParticleGroup creates a group emitting prof particles that die
// against colliders.
func NewCollisionParticleGroup(rnd Random, prof *ParticleProfile, colliders *TileLayer) *CollisionParticleGroup {
	return &CollisionParticleGroup{rnd: rnd, profile: prof, colliders: colliders}
}

// SetMedium swaps profile and colliders and drops every live particle.
func (g *CollisionParticleGroup) SetMedium(prof *ParticleProfile, colliders *TileLayer) {
	g.profile = prof
	g.colliders = colliders
	g.particles = g.particles[:0]
}

// Profile returns the active profile.
func (g *CollisionParticleGroup) Profile() *ParticleProfile { return g.profile }

// Len returns the live particle count.
func (g *CollisionParticleGroup) Len() int { return len(g.particles) }

// Positions returns the live particle positions.
func (g *CollisionParticleGroup) Positions() []Vec2 {
	out := make([]Vec2, len(g.particles))
	for i := range g.particles {
		out[i] = g.particles[i].Pos
	}
	return out
}

// AddParticle spawns one particle with the active profile.
func (g *CollisionParticleGroup) AddParticle(pos, vel Vec2) {
	g.particles = append(g.particles, collisionParticle{Particle: newParticle(g.rnd, pos, g.profile, vel)})
}

// Update advances every particle against the static colliders in a ±1 tile
// window and this tick's dynamic colliders, returning one hit per particle
// that died on contact.
func (g *CollisionParticleGroup) Update(dt float64, dynamic []Rect) []CollisionHit {
	var hits []CollisionHit
	for i := range g.particles {
		p := &g.particles[i]
		g.scratch = append(g.scratch[:0], dynamic...)
		if g.colliders != nil {
			g.scratch = g.colliders.AroundInto(g.scratch, p.Pos, 1)
		}
		if pos, hit := p.step(dt, g.scratch); hit {
			hits = append(hits, CollisionHit{Pos: pos, Profile: g.profile.Name})
		}
	}

	n := 0
	for i := range g.particles {
		if g.particles[i].alive() {
			g.particles[n] = g.particles[i]
			n++
		}
	}
	g.particles = g.particles[:n]
	return hits
}

// step integrates X then Y. The first axis that lands inside a collider
// kills the particle and ends the step.
func (cp *collisionParticle) step(dt float64, colliders []Rect) (Vec2, bool) {
	cp.Vel.X += cp.Gravity.X * dt
	cp.Vel.X -= cp.Vel.X * dt * cp.VelDecay
	cp.Pos.X += cp.Vel.X * dt
	if pointInAny(cp.Pos, colliders) {
		cp.dead = true
		return cp.Pos, true
	}

	cp.Vel.Y += cp.Gravity.Y * dt
	cp.Vel.Y -= cp.Vel.Y * dt * cp.VelDecay
	cp.Pos.Y += cp.Vel.Y * dt
	if pointInAny(cp.Pos, colliders) {
		cp.dead = true
		return cp.Pos, true
	}

	cp.Size -= cp.SizeDecay * dt
	return Vec2{}, false
}

func pointInAny(p Vec2, rects []Rect) bool {
	for _, r := range rects {
		if r.Contains(p) {
			return true
		}
	}
	return false
}
