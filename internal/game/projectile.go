package game

// Projectile tuning.
const (
	projectileMaxSpeed      = 10000.0
	projectileGroundDamping = 5.0
	projectileWaterDamping  = 1.0
	projectileSpentSpeed    = 50.0 // below this a projectile can no longer hurt
	projectileSnapFactor    = 1.3  // edge snap distance in radii
	projectileHitScale      = 2.0  // hit circle radius in collider radii

	garbageRadius  = 10.0
	garbageDamage  = 3
	garbageDespawn = 3.0
)

// ProjectileEnv is the world the projectile flies through.
type ProjectileEnv struct {
	Gravity    float64
	WaterLevel float64
}

// Projectile is a circular ballistic body that deals damage once, on the
// first tick it touches anything.
type Projectile struct {
	Pos, Vel, Acc Vec2
	Radius        float64
	Damage        int
	BounceX       float64
	BounceY       float64
	OnGround      bool
	Angle         float64 // cosmetic sprite rotation in degrees

	env          ProjectileEnv
	despawn      *Timer
	hasCollided  bool
	justCollided bool
}

// NewProjectile creates a live projectile.
func NewProjectile(env ProjectileEnv, pos, vel Vec2, radius float64, damage int, despawn float64, bounceX, bounceY float64) *Projectile {
	return &Projectile{
		Pos: pos, Vel: vel, Acc: Vec2{0, env.Gravity},
		Radius: radius, Damage: damage, BounceX: bounceX, BounceY: bounceY,
		env:     env,
		despawn: NewTimer(despawn, false),
	}
}

// NewGarbageProjectile is the water monster's thrown junk.
func NewGarbageProjectile(env ProjectileEnv, rnd Random, pos, vel Vec2) *Projectile {
	p := NewProjectile(env, pos, vel, garbageRadius, garbageDamage, garbageDespawn, 0.5, 0.2)
	p.Angle = RandAngle(rnd)
	return p
}

// Collider is the projectile's physical circle.
func (p *Projectile) Collider() Circle { return Circle{Center: p.Pos, R: p.Radius} }

// JustCollided is true only on the tick of the projectile's first contact.
func (p *Projectile) JustCollided() bool { return p.justCollided }

// Spent reports whether the projectile can no longer deal damage.
func (p *Projectile) Spent() bool { return p.hasCollided }

// Alive reports whether the despawn timer is still running.
func (p *Projectile) Alive() bool { return !p.despawn.Done() }

// Update advances one tick against colliders.
func (p *Projectile) Update(dt float64, colliders []Rect) {
	if p.Vel.Len() < projectileSpentSpeed {
		p.hasCollided = true
	}
	p.despawn.Tick(dt)
	if p.hasCollided {
		p.justCollided = false
	}
	p.move(dt, colliders)
}

func (p *Projectile) submerged() bool { return p.Pos.Y > p.env.WaterLevel }

func (p *Projectile) markContact() {
	if !p.hasCollided {
		p.justCollided = true
		p.hasCollided = true
	}
}

func (p *Projectile) move(dt float64, colliders []Rect) {
	switch {
	case p.OnGround:
		p.Acc.X = -p.Vel.X * projectileGroundDamping
	case p.submerged():
		p.Acc.X = -p.Vel.X * projectileWaterDamping
	default:
		p.Acc.X = 0
	}
	p.Vel.X = clamp(p.Vel.X+p.Acc.X*dt, -projectileMaxSpeed, projectileMaxSpeed)
	dx := p.Vel.X*dt + 0.5*p.Acc.X*dt*dt
	p.Pos.X += dx

	for _, r := range colliders {
		if !p.Collider().OverlapsRect(r) {
			continue
		}
		p.Pos.X -= dx
		if p.Collider().OverlapsRect(r) {
			if abs(p.Pos.X-r.Left()) < abs(p.Pos.X-r.Right()) {
				p.Pos.X = r.Left() - p.Radius*projectileSnapFactor
			} else {
				p.Pos.X = r.Right() + p.Radius*projectileSnapFactor
			}
		}
		p.Vel.X *= -p.BounceX
		p.markContact()
		break
	}

	if p.submerged() {
		p.Acc.Y = -p.Vel.Y * projectileWaterDamping
	} else {
		p.Acc.Y = p.env.Gravity
	}
	p.Vel.Y = clamp(p.Vel.Y+p.Acc.Y*dt, -projectileMaxSpeed, projectileMaxSpeed)
	dy := p.Vel.Y*dt + 0.5*p.Acc.Y*dt*dt
	p.Pos.Y += dy

	p.OnGround = false
	for _, r := range colliders {
		if !p.Collider().OverlapsRect(r) {
			continue
		}
		p.OnGround = true
		p.Pos.Y -= dy
		if p.Collider().OverlapsRect(r) {
			if abs(p.Pos.Y-r.Top()) < abs(p.Pos.Y-r.Bottom()) {
				p.Pos.Y = r.Top() - p.Radius*projectileSnapFactor
			} else {
				p.Pos.Y = r.Bottom() + p.Radius*projectileSnapFactor
			}
		}
		p.Vel.Y *= -p.BounceY
		p.markContact()
		break
	}
}

// ProjectileHit is a damage area produced by a projectile's first contact.
type ProjectileHit struct {
	Area   Circle
	Damage int
}

// ProjectileGroup steps projectiles against a ±2 tile window of static
// colliders plus this tick's dynamic colliders.
type ProjectileGroup struct {
	colliders   *TileLayer
	projectiles []*Projectile
	scratch     []Rect
}

// NewProjectileGroup creates a group colliding with colliders.
func NewProjectileGroup(colliders *TileLayer) *ProjectileGroup {
	return &ProjectileGroup{colliders: colliders}
}

// Add registers a projectile.
func (g *ProjectileGroup) Add(p *Projectile) { g.projectiles = append(g.projectiles, p) }

// Projectiles returns the live projectiles.
func (g *ProjectileGroup) Projectiles() []*Projectile { return g.projectiles }

// Len returns the live projectile count.
func (g *ProjectileGroup) Len() int { return len(g.projectiles) }

// Clear removes every projectile.
func (g *ProjectileGroup) Clear() { g.projectiles = g.projectiles[:0] }

// Update steps every projectile and returns one hit per first contact this
// tick. Expired projectiles are purged afterwards.
func (g *ProjectileGroup) Update(dt float64, dynamic []Rect) []ProjectileHit {
	var hits []ProjectileHit
	for _, p := range g.projectiles {
		g.scratch = g.scratch[:0]
		if g.colliders != nil {
			g.scratch = g.colliders.AroundInto(g.scratch, p.Pos, 2)
		}
		g.scratch = append(g.scratch, dynamic...)
		p.Update(dt, g.scratch)
		if p.JustCollided() {
			hits = append(hits, ProjectileHit{
				Area:   Circle{Center: p.Pos, R: p.Radius * projectileHitScale},
				Damage: p.Damage,
			})
		}
	}

	n := 0
	for _, p := range g.projectiles {
		if p.Alive() {
			g.projectiles[n] = p
			n++
		}
	}
	for i := n; i < len(g.projectiles); i++ {
		g.projectiles[i] = nil
	}
	g.projectiles = g.projectiles[:n]
	return hits
}
