package game

import (
	"image/color"
	"math"
)

// particleMinSize is the size below which a particle is dead.
const particleMinSize = 0.2

// Particle is a single decorative particle. Particles are value types owned
// by their engine's slice; nothing outside the engine holds on to one.
type Particle struct {
	Pos, Vel   Vec2
	Size       float64
	SizeDecay  float64
	VelDecay   float64
	Gravity    Vec2
	Color      color.RGBA
	Collidable bool
	BounceX    float64
	BounceY    float64
}

// Alive reports whether the particle is still above the size floor.
func (p *Particle) Alive() bool { return p.Size >= particleMinSize }

// newParticle draws a particle's per-instance values from prof.
func newParticle(rnd Random, pos Vec2, prof *ParticleProfile, vel Vec2) Particle {
	p := Particle{
		Pos:        pos,
		Vel:        vel,
		Size:       UniformRange(rnd, prof.Size),
		SizeDecay:  UniformRange(rnd, prof.SizeDecay),
		VelDecay:   UniformRange(rnd, prof.VelDecay),
		Gravity:    prof.Gravity,
		Collidable: prof.Collidable,
		BounceX:    UniformRange(rnd, prof.BounceX),
		BounceY:    UniformRange(rnd, prof.BounceY),
	}
	if len(prof.Colors) > 0 {
		p.Color = prof.Colors[rnd.Intn(len(prof.Colors))]
	}
	return p
}

// chunkKey identifies one cell of the collider chunk grid.
type chunkKey struct{ cx, cy int }

// ParticleEngine owns a pool of particles, the spawners that feed it and a
// chunked index of static colliders.
type ParticleEngine struct {
	rnd       Random
	chunkSize float64
	chunks    map[chunkKey][]Rect
	dynamic   []Rect

	particles []Particle
	max       int // 0 = unbounded
	ovrIdx    int // circular overwrite cursor once full

	spawners []*Spawner
}

// NewParticleEngine creates an engine whose collider chunks are chunkSize
// wide. maxParticles caps the pool; when full, new particles overwrite old
// slots in a circle.
func NewParticleEngine(rnd Random, chunkSize float64, maxParticles int) *ParticleEngine {
	return &ParticleEngine{
		rnd:       rnd,
		chunkSize: chunkSize,
		chunks:    make(map[chunkKey][]Rect),
		max:       maxParticles,
	}
}

func (pe *ParticleEngine) chunkOf(p Vec2) chunkKey {
	return chunkKey{int(math.Floor(p.X / pe.chunkSize)), int(math.Floor(p.Y / pe.chunkSize))}
}

// GenerateChunkedColliders replaces the static collider index. Each rect is
// filed under every chunk it overlaps so a point lookup needs one chunk.
func (pe *ParticleEngine) GenerateChunkedColliders(rects []Rect) {
	pe.chunks = make(map[chunkKey][]Rect)
	for _, r := range rects {
		lo := pe.chunkOf(Vec2{r.Left(), r.Top()})
		// Right/bottom edges are exclusive.
		hi := pe.chunkOf(Vec2{math.Nextafter(r.Right(), math.Inf(-1)), math.Nextafter(r.Bottom(), math.Inf(-1))})
		for cy := lo.cy; cy <= hi.cy; cy++ {
			for cx := lo.cx; cx <= hi.cx; cx++ {
				k := chunkKey{cx, cy}
				pe.chunks[k] = append(pe.chunks[k], r)
			}
		}
	}
}

// StaticCollidersAt returns the static colliders filed under p's chunk.
func (pe *ParticleEngine) StaticCollidersAt(p Vec2) []Rect {
	return pe.chunks[pe.chunkOf(p)]
}

// PassDynamicColliders supplies moving obstacles for the next Update only.
func (pe *ParticleEngine) PassDynamicColliders(rects []Rect) {
	pe.dynamic = append(pe.dynamic[:0], rects...)
}

// AddParticle creates one particle immediately.
func (pe *ParticleEngine) AddParticle(pos Vec2, prof *ParticleProfile, vel Vec2) {
	pe.push(newParticle(pe.rnd, pos, prof, vel))
}

func (pe *ParticleEngine) push(p Particle) {
	if pe.max <= 0 || len(pe.particles) < pe.max {
		pe.particles = append(pe.particles, p)
		return
	}
	if pe.ovrIdx >= len(pe.particles) {
		pe.ovrIdx = 0
	}
	pe.particles[pe.ovrIdx] = p
	pe.ovrIdx++
}

// AddSpawner registers s and returns it as the handle.
func (pe *ParticleEngine) AddSpawner(s *Spawner) *Spawner {
	pe.spawners = append(pe.spawners, s)
	return s
}

// RemoveSpawner unregisters s. Unknown handles are ignored.
func (pe *ParticleEngine) RemoveSpawner(s *Spawner) {
	for i, sp := range pe.spawners {
		if sp == s {
			pe.spawners = append(pe.spawners[:i], pe.spawners[i+1:]...)
			return
		}
	}
}

// Spawners returns the registered spawners.
func (pe *ParticleEngine) Spawners() []*Spawner { return pe.spawners }

// Particles exposes the live pool for drawing. Callers must not retain it.
func (pe *ParticleEngine) Particles() []Particle { return pe.particles }

// Len returns the live particle count.
func (pe *ParticleEngine) Len() int { return len(pe.particles) }

// Clear drops every particle.
func (pe *ParticleEngine) Clear() {
	pe.particles = pe.particles[:0]
	pe.ovrIdx = 0
}

// Update ticks spawners, integrates particles and purges the dead. Dynamic
// colliders passed this tick are consumed.
func (pe *ParticleEngine) Update(dt float64) {
	for _, s := range pe.spawners {
		s.tick(dt, pe)
	}

	for i := range pe.particles {
		pe.step(&pe.particles[i], dt)
	}

	// Stable in-place purge.
	n := 0
	for i := range pe.particles {
		if pe.particles[i].Alive() {
			pe.particles[n] = pe.particles[i]
			n++
		}
	}
	pe.particles = pe.particles[:n]
	if pe.ovrIdx > n {
		pe.ovrIdx = 0
	}
	pe.dynamic = pe.dynamic[:0]
}

func (pe *ParticleEngine) step(p *Particle, dt float64) {
	// X axis.
	oldX := p.Pos.X
	p.Pos.X += p.Vel.X*dt + 0.5*p.Gravity.X*dt*dt
	p.Vel.X += p.Gravity.X * dt
	p.Vel.X -= p.Vel.X * dt * p.VelDecay
	if p.Collidable && pe.blocked(p.Pos) {
		p.Pos.X = oldX
		p.Vel.X *= -p.BounceX
	}

	// Y axis.
	oldY := p.Pos.Y
	p.Pos.Y += p.Vel.Y*dt + 0.5*p.Gravity.Y*dt*dt
	p.Vel.Y += p.Gravity.Y * dt
	p.Vel.Y -= p.Vel.Y * dt * p.VelDecay
	if p.Collidable && pe.blocked(p.Pos) {
		p.Pos.Y = oldY
		p.Vel.Y *= -p.BounceY
	}

	p.Size -= p.SizeDecay * dt
}

func (pe *ParticleEngine) blocked(pos Vec2) bool {
	for _, r := range pe.chunks[pe.chunkOf(pos)] {
		if r.Contains(pos) {
			return true
		}
	}
	for _, r := range pe.dynamic {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}
