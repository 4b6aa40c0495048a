package game

import "github.com/sirupsen/logrus"

// Water monster tuning.
const (
	monsterAccel        = 200.0
	monsterXDamping     = 8.0
	monsterSwimDamping  = 2.0
	monsterJumpImpulse  = 600.0
	monsterMaxVX        = 100.0
	monsterMaxVY        = 1000.0
	monsterSwimMaxVY    = 100.0
	monsterW, monsterH  = 20.0, 100.0
	monsterDamageW      = 50.0 // centroid hitbox that heat is tested against
	monsterDamageH      = 90.0
	monsterMaxTemp      = 100.0
	monsterCooling      = 5.0
	monsterHeatPerHit   = 10.0
	monsterActiveRange  = 1000.0
	monsterColliderPad  = 2
	monsterThrowSpeedLo = 400.0
	monsterThrowSpeedHi = 600.0
)

var (
	monsterOrbOffset     = Vec2{0, -80}
	monsterThrowCooldown = Rng(0.5, 1.3)
	monsterDeathBurst    = [2]int{50, 120}
)

// MonsterEventKind labels something a monster did during a tick.
type MonsterEventKind uint8

const (
	MonsterStateChanged MonsterEventKind = iota
	MonsterThrew
	MonsterDied
)

func (k MonsterEventKind) String() string {
	switch k {
	case MonsterStateChanged:
		return "state_change"
	case MonsterThrew:
		return "throw"
	case MonsterDied:
		return "death"
	default:
		return "unknown"
	}
}

// MonsterEvent is reported from MonsterGroup.Update for logging.
type MonsterEvent struct {
	ID    int
	Kind  MonsterEventKind
	State MonsterState
	Pos   Vec2
}

// WaterMonster is a walking pillar of water orbs. Its temperature is its life:
// it boils away once the temperature is maxed out.
type WaterMonster struct {
	ID   int
	Body Body
	AI   *MonsterAI
	Orbs *WaterOrbGroup
	Temp *Temperature

	ctx         *Context
	colliders   *TileLayer
	fx          *ParticleEngine
	projectiles *ProjectileGroup
	spawner     *Spawner
	throw       *Timer
	dead        bool
}

// NewWaterMonster spawns a monster at pos (bottom-centre). Its drip spawner is
// registered on fx; thrown garbage goes into projectiles.
func NewWaterMonster(ctx *Context, id int, pos Vec2, colliders *TileLayer, fx *ParticleEngine, projectiles *ProjectileGroup) *WaterMonster {
	rnd := ctx.Rand
	m := &WaterMonster{
		ID:          id,
		Body:        Body{Pos: pos, W: monsterW, H: monsterH},
		AI:          NewMonsterAI(DefaultAIConfig()),
		Temp:        NewTemperature(monsterMaxTemp, monsterCooling),
		ctx:         ctx,
		colliders:   colliders,
		fx:          fx,
		projectiles: projectiles,
		throw:       NewTimer(UniformRange(rnd, monsterThrowCooldown), true),
	}
	m.Orbs = NewWaterOrbGroup(rnd, &m.Body.Pos, WaterOrbSpec{
		Offset:    monsterOrbOffset,
		Count:     RandInt(rnd, 8, 15),
		SizeRange: Rng(5, 30),
		AttractX:  Rng(-10, 10),
		AttractY:  Rng(-50, 50),
		Colors:    ctx.Config.MonsterPalette(),
	})
	m.spawner = fx.AddSpawner(
		NewCircleSpawner(pos, 0.1, 4, 30, false, ctx.Profiles.MustGet(ProfileWater), Rng(0, 100)))
	return m
}

// Pos returns the bottom-centre position.
func (m *WaterMonster) Pos() Vec2 { return m.Body.Pos }

// Centroid is the orb mass centre, the point the monster attacks from.
func (m *WaterMonster) Centroid() Vec2 { return m.Orbs.Centroid() }

// PhysicsRect is the thin rect that collides with tiles and particles.
func (m *WaterMonster) PhysicsRect() Rect { return m.Body.Rect() }

// DamageCollider is the hitbox centred on the orb centroid that heat is
// tested against.
func (m *WaterMonster) DamageCollider() Rect {
	return RectCentered(m.Centroid(), monsterDamageW, monsterDamageH)
}

// Alive reports whether the monster has not yet boiled.
func (m *WaterMonster) Alive() bool { return !m.dead && m.Temp.NotMaxed(defaultMaxedBuffer) }

// Heat raises the monster's temperature by hits tenths of its maximum.
func (m *WaterMonster) Heat(hits int) {
	m.Temp.Heat(monsterHeatPerHit * float64(hits))
}

// Update advances AI, movement, orbs and attacks. It reports whether the AI
// changed state and whether garbage was thrown.
func (m *WaterMonster) Update(dt float64, target Vec2) (changed, threw bool) {
	m.Temp.Tick(dt)
	m.throw.Tick(dt)

	var colliders []Rect
	if m.colliders != nil {
		colliders = m.colliders.Overlapping(m.Body.Rect(), monsterColliderPad)
	}
	submerged := m.ctx.Underwater(m.Body.Pos.Y)
	changed = m.AI.Update(m.Body.Pos, target, colliders, submerged)
	m.move(dt, colliders, submerged)
	m.Orbs.Update(dt)
	m.spawner.Pos = m.Body.Pos.Add(monsterOrbOffset)

	if m.AI.WantsAttack() {
		threw = m.attack(target)
	}
	return changed, threw
}

func (m *WaterMonster) move(dt float64, colliders []Rect, submerged bool) {
	b := &m.Body
	in := m.AI.Movement()

	if in.X != 0 {
		b.Acc.X = in.X * monsterAccel
	} else {
		b.Acc.X = -b.Vel.X * monsterXDamping
	}
	b.IntegrateX(dt, monsterMaxVX)
	b.ResolveX(colliders, 0)

	if submerged {
		if in.Y != 0 {
			b.Acc.Y = in.Y * monsterAccel
		} else {
			b.Acc.Y = -b.Vel.Y * monsterSwimDamping
		}
		b.IntegrateY(dt, -monsterSwimMaxVY, monsterSwimMaxVY)
	} else {
		b.Acc.Y = m.ctx.Config.Gravity
		if in.Y < 0 && b.OnGround && dt > 0 {
			b.Vel.Y = 0
			b.Acc.Y -= jumpAccel(monsterJumpImpulse, dt)
			b.OnGround = false
		}
		b.IntegrateY(dt, -monsterMaxVY, monsterMaxVY)
	}
	b.ResolveY(colliders)
}

// attack throws garbage from the centroid on a ballistic arc through target.
func (m *WaterMonster) attack(target Vec2) bool {
	if !m.throw.Done() {
		return false
	}
	origin := m.Centroid()
	vel, ok := ballisticVelocity(origin, target, m.ctx.Config.Gravity, Uniform(m.ctx.Rand, monsterThrowSpeedLo, monsterThrowSpeedHi))
	if !ok {
		return false
	}
	env := ProjectileEnv{Gravity: m.ctx.Config.Gravity, WaterLevel: m.ctx.Config.WaterLevel}
	m.projectiles.Add(NewGarbageProjectile(env, m.ctx.Rand, origin, vel))
	m.throw.SetCooldown(UniformRange(m.ctx.Rand, monsterThrowCooldown))
	m.throw.Start()
	return true
}

// ballisticVelocity takes the horizontal speed from the unit direction to
// target scaled by speed and solves the vertical speed that lands the arc on
// target under gravity g.
func ballisticVelocity(from, to Vec2, g, speed float64) (Vec2, bool) {
	d := to.Sub(from)
	vx := d.Normalize().X * speed
	if vx == 0 {
		return Vec2{}, false
	}
	vy := -((0.5 * g * d.X * d.X / vx) - d.Y*vx) / d.X
	return Vec2{vx, vy}, true
}

// Kill removes the monster's spawner and bursts it into boiled water.
func (m *WaterMonster) Kill() {
	if m.dead {
		return
	}
	m.dead = true
	m.fx.RemoveSpawner(m.spawner)
	prof := m.ctx.Profiles.MustGet(ProfileBoiledWater)
	centre := m.Centroid()
	for i, n := 0, RandInt(m.ctx.Rand, monsterDeathBurst[0], monsterDeathBurst[1]); i < n; i++ {
		m.fx.AddParticle(centre, prof, AngledVec(RandAngle(m.ctx.Rand), Uniform(m.ctx.Rand, 0, 200)))
	}
}

// MonsterGroup owns the level's water monsters.
type MonsterGroup struct {
	ctx      *Context
	monsters []*WaterMonster
	byID     map[int]*WaterMonster
	active   []*WaterMonster
	nextID   int
}

// NewMonsterGroup creates an empty group.
func NewMonsterGroup(ctx *Context) *MonsterGroup {
	return &MonsterGroup{ctx: ctx, byID: make(map[int]*WaterMonster)}
}

// Add registers m. A negative m.ID is replaced with the next free id.
func (g *MonsterGroup) Add(m *WaterMonster) *WaterMonster {
	if m.ID < 0 {
		m.ID = g.nextID
	}
	if m.ID >= g.nextID {
		g.nextID = m.ID + 1
	}
	g.monsters = append(g.monsters, m)
	g.byID[m.ID] = m
	return m
}

// NextID returns an id not yet used by the group.
func (g *MonsterGroup) NextID() int { return g.nextID }

// Monsters returns the live monsters.
func (g *MonsterGroup) Monsters() []*WaterMonster { return g.monsters }

// Len is the live monster count.
func (g *MonsterGroup) Len() int { return len(g.monsters) }

// Alive reports whether monster id is still in the group.
func (g *MonsterGroup) Alive(id int) bool {
	_, ok := g.byID[id]
	return ok
}

// InRange returns the monsters within the activity range of pos.
func (g *MonsterGroup) InRange(pos Vec2) []*WaterMonster {
	g.active = g.active[:0]
	for _, m := range g.monsters {
		if m.Body.Pos.Dist(pos) <= monsterActiveRange {
			g.active = append(g.active, m)
		}
	}
	return g.active
}

// Colliders returns physics rects of the monsters within radius of pos.
func (g *MonsterGroup) Colliders(pos Vec2, radius float64) []Rect {
	var out []Rect
	for _, m := range g.monsters {
		if m.Body.Pos.Dist(pos) <= radius {
			out = append(out, m.PhysicsRect())
		}
	}
	return out
}

// Update advances every monster near playerPos, applies heat hits keyed by
// monster id, and removes monsters that boiled.
func (g *MonsterGroup) Update(dt float64, playerPos, target Vec2, heat map[int]int) []MonsterEvent {
	var events []MonsterEvent
	kept := g.monsters[:0]
	for _, m := range g.monsters {
		inRange := m.Body.Pos.Dist(playerPos) <= monsterActiveRange
		m.spawner.Active = inRange
		if inRange {
			changed, threw := m.Update(dt, target)
			if changed {
				events = append(events, MonsterEvent{ID: m.ID, Kind: MonsterStateChanged, State: m.AI.State(), Pos: m.Body.Pos})
			}
			if threw {
				events = append(events, MonsterEvent{ID: m.ID, Kind: MonsterThrew, State: m.AI.State(), Pos: m.Body.Pos})
			}
		}
		if n := heat[m.ID]; n > 0 {
			m.Heat(n)
		}
		if !m.Alive() {
			m.Kill()
			delete(g.byID, m.ID)
			events = append(events, MonsterEvent{ID: m.ID, Kind: MonsterDied, State: m.AI.State(), Pos: m.Centroid()})
			g.ctx.Log.WithFields(logrus.Fields{"id": m.ID, "temp": m.Temp.Value}).Info("monster boiled")
			continue
		}
		kept = append(kept, m)
	}
	for i := len(kept); i < len(g.monsters); i++ {
		g.monsters[i] = nil
	}
	g.monsters = kept
	return events
}

// Clear drops every monster and its spawner without a death burst.
func (g *MonsterGroup) Clear() {
	for _, m := range g.monsters {
		m.fx.RemoveSpawner(m.spawner)
		m.dead = true
	}
	g.monsters = nil
	g.byID = make(map[int]*WaterMonster)
}
