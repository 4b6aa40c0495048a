package game

import "github.com/sirupsen/logrus"

// Player tuning.
const (
	playerDownGravityMul = 1.5
	playerMaxVX          = 500.0
	playerMaxVY          = 1000.0 // falling; rising is capped at twice this
	playerWaterMaxVX     = 250.0
	playerWaterMaxVY     = 300.0
	playerWaterSoftClamp = 15.0 // lerp rate toward the water speed cap
	playerGroundDamping  = 9.0
	playerAirDamping     = 2.0
	playerWaterDamping   = 2.0
	playerAccel          = 1200.0
	playerJumpImpulse    = 600.0
	playerStepOffset     = -10.0
	playerTurnTime       = 0.2
	playerCoyoteTime     = 0.1
	playerMaxHealth      = 100

	playerGroundW, playerGroundH = 30.0, 110.0
	playerWaterW, playerWaterH   = 90.0, 30.0

	gunCooling         = 15.0
	gunMaxTemp         = 100.0
	gunDuration        = 3.3  // seconds of continuous fire from cold
	gunRefireFrac      = 0.8  // firing re-enabled below this fraction
	gunSmokeFrac       = 0.8  // tip smokes above this fraction
	gunTipReach        = 32.0 // gun tip distance from the gun pivot toward the aim
	gunSpread          = 3.0  // degrees either side on land; tripled in water
	gunCollisionPeriod = 0.1
	gunTipAmount       = 3
	gunSmokeAmount     = 8

	playerColliderMargin = 2 // tiles searched around the hitbox
)

var (
	gunOffsetLand  = Vec2{0, -60}
	gunOffsetWater = Vec2{0, -20}
	gunStreamSpeed = Rng(720, 830)
)

// Player animation clip names.
const (
	AnimIdle    = "idle"
	AnimRun     = "run"
	AnimSlowing = "slowing"
	AnimSwim    = "swim"
)

// MovementMode is the physics model the player is using.
type MovementMode uint8

const (
	ModeGround MovementMode = iota
	ModeWater
)

func (m MovementMode) String() string {
	if m == ModeWater {
		return "water"
	}
	return "ground"
}

// InputState is one tick of sampled input. MoveY < 0 means up (jump on land).
type InputState struct {
	MoveX, MoveY float64
	Fire         bool
	Aim          Vec2 // world-space aim point
}

// PlayerTick reports what changed during one Player.Update.
type PlayerTick struct {
	ModeChanged bool
	AnimChanged bool
	Splashed    bool
	Firing      bool
}

// Player is the fire-gun wielding protagonist.
type Player struct {
	ctx       *Context
	colliders *TileLayer

	Body   Body
	Health *Health
	Temp   *Temperature
	Anim   *AnimationSet
	FlipX  bool

	mode     MovementMode
	input    InputState
	alive    bool
	canFire  bool
	firing   bool
	turn     *Timer
	coyote   *Timer
	gunHeat  float64
	aimAngle float64

	gunOffset     Vec2
	GunTip        Vec2 // followed by the gun spawners
	Head          Vec2 // followed by the breath bubble spawner
	prevPos       Vec2
	prevGunOffset Vec2
	prevAimAngle  float64

	// Set for the single tick the gun tip crosses the water surface.
	GunLandToWater bool
	GunWaterToLand bool

	landFX, waterFX *ParticleEngine
	collision       *CollisionParticleGroup
	collisionTimer  *Timer

	flamethrower *Spawner
	boilingWater *Spawner
	tipFire      *Spawner
	tipWater     *Spawner
	bubbles      *Spawner

	profFire, profSmoke, profSplash *ParticleProfile
}

// NewPlayer places a player at pos (bottom-centre) and registers its spawners
// on the land and water effect engines.
func NewPlayer(ctx *Context, pos Vec2, colliders *TileLayer, landFX, waterFX *ParticleEngine, collision *CollisionParticleGroup) *Player {
	p := &Player{
		ctx:       ctx,
		colliders: colliders,
		Body:      Body{Pos: pos, W: playerGroundW, H: playerGroundH},
		Health:    NewHealth(playerMaxHealth),
		Temp:      NewTemperature(gunMaxTemp, gunCooling),
		Anim: NewAnimationSet(AnimIdle,
			&Animation{Name: AnimIdle, Frames: 4, FPS: 4, Loop: true},
			&Animation{Name: AnimRun, Frames: 4, FPS: 8, Loop: true},
			&Animation{Name: AnimSlowing, Frames: 4, FPS: 6, Loop: true},
			&Animation{Name: AnimSwim, Frames: 4, FPS: 6, Loop: true},
		),
		alive:          true,
		canFire:        true,
		turn:           NewTimer(playerTurnTime, true),
		coyote:         NewTimer(playerCoyoteTime, true),
		gunHeat:        gunCooling + gunMaxTemp/gunDuration,
		gunOffset:      gunOffsetLand,
		prevGunOffset:  gunOffsetLand,
		prevPos:        pos,
		landFX:         landFX,
		waterFX:        waterFX,
		collision:      collision,
		collisionTimer: NewTimer(gunCollisionPeriod, true),
		profFire:       ctx.Profiles.MustGet(ProfileFire),
		profSmoke:      ctx.Profiles.MustGet(ProfileSmoke),
		profSplash:     ctx.Profiles.MustGet(ProfileWaterSplash),
	}
	p.mode = p.modeAt(pos.Y)
	p.GunTip = pos.Add(p.gunOffset)
	p.Head = pos

	lib := ctx.Profiles
	p.flamethrower = landFX.AddSpawner(
		NewPointSpawner(pos, 0.01, 2, false, lib.MustGet(ProfileFlamethrower), gunStreamSpeed).LinkPos(&p.GunTip))
	p.boilingWater = waterFX.AddSpawner(
		NewPointSpawner(pos, 0.01, 2, false, lib.MustGet(ProfileBoilingWater), gunStreamSpeed).LinkPos(&p.GunTip))
	p.tipFire = landFX.AddSpawner(
		NewCircleSpawner(pos, 0.2, gunTipAmount, 10, false, p.profFire, Rng(0, 20)).LinkPos(&p.GunTip))
	p.tipWater = waterFX.AddSpawner(
		NewCircleSpawner(pos, 0.2, gunTipAmount, 10, false, lib.MustGet(ProfileWaterVapour), Rng(0, 20)).LinkPos(&p.GunTip))
	p.bubbles = waterFX.AddSpawner(
		NewCircleSpawner(pos, 2, 5, 10, false, lib.MustGet(ProfileBubble), Rng(0, 0)).
			LinkPos(&p.Head).
			WithJitter(Rng(0.8, 2.2), 1, 3))
	return p
}

func (p *Player) modeAt(y float64) MovementMode {
	if p.ctx.Underwater(y) {
		return ModeWater
	}
	return ModeGround
}

// Pos returns the bottom-centre position.
func (p *Player) Pos() Vec2 { return p.Body.Pos }

// Mode returns the active movement model.
func (p *Player) Mode() MovementMode { return p.mode }

// Swimming reports whether the swim clip is playing; it selects the hitbox.
func (p *Player) Swimming() bool { return p.Anim.Current() == AnimSwim }

// Alive reports whether the player still accepts input.
func (p *Player) Alive() bool { return p.alive }

// CanFire reports whether the gun is not locked out by overheat.
func (p *Player) CanFire() bool { return p.canFire }

// Firing reports whether the gun fired this tick.
func (p *Player) Firing() bool { return p.firing }

// AimAngle is the current aim direction in degrees.
func (p *Player) AimAngle() float64 { return p.aimAngle }

// Rect returns the active hitbox: a tall rect on land, a flat one swimming.
func (p *Player) Rect() Rect {
	if p.Swimming() {
		return RectMidBottom(p.Body.Pos, playerWaterW, playerWaterH)
	}
	return RectMidBottom(p.Body.Pos, playerGroundW, playerGroundH)
}

// Center is the middle of the active hitbox.
func (p *Player) Center() Vec2 { return p.Rect().Center() }

// AimTarget is where enemies aim: low when swimming, chest height otherwise.
func (p *Player) AimTarget() Vec2 {
	if p.Swimming() {
		return p.Body.Pos.Add(Vec2{0, -10})
	}
	return p.Body.Pos.Add(Vec2{0, -80})
}

// Kill removes the player's spawners and stops input.
func (p *Player) Kill() {
	if !p.alive {
		return
	}
	p.landFX.RemoveSpawner(p.flamethrower)
	p.landFX.RemoveSpawner(p.tipFire)
	p.waterFX.RemoveSpawner(p.boilingWater)
	p.waterFX.RemoveSpawner(p.tipWater)
	p.waterFX.RemoveSpawner(p.bubbles)
	p.alive = false
	p.firing = false
	p.ctx.Log.WithField("pos", p.Body.Pos).Debug("player killed")
}

func (p *Player) switchAnim(name string, tick *PlayerTick) {
	if p.Anim.Switch(name) {
		tick.AnimChanged = true
	}
}

func (p *Player) nearbyColliders() []Rect {
	if p.colliders == nil {
		return nil
	}
	return p.colliders.Overlapping(p.Rect(), playerColliderMargin)
}

// Update advances the player one tick.
func (p *Player) Update(dt float64, in InputState) PlayerTick {
	var tick PlayerTick
	wl := p.ctx.Config.WaterLevel

	p.GunLandToWater = false
	p.GunWaterToLand = false
	p.Temp.Tick(dt)
	p.collisionTimer.Tick(dt)

	p.aimAngle = in.Aim.Sub(p.Body.Pos.Add(p.gunOffset)).AngleDeg()

	p.Anim.Update(dt)
	if p.Swimming() {
		p.gunOffset = gunOffsetWater
	} else {
		p.gunOffset = gunOffsetLand
	}

	p.turn.Tick(dt)
	p.coyote.Tick(dt)

	if p.alive {
		p.input = in
	} else {
		p.input = InputState{Aim: in.Aim}
	}

	if p.Swimming() {
		dir := 1.0
		if p.FlipX {
			dir = -1
		}
		p.Head = Vec2{p.Body.Pos.X + 30*dir, p.Body.Pos.Y - 20}
	} else {
		p.Head = Vec2{p.Body.Pos.X, p.Body.Pos.Y - 80}
	}
	p.bubbles.Active = p.alive && p.Head.Y > wl

	colliders := p.nearbyColliders()
	prevMode := p.mode
	p.mode = p.modeAt(p.Body.Pos.Y)
	if p.mode == ModeGround {
		p.groundMovement(dt, colliders, &tick)
		switch {
		case p.Swimming() && p.Body.OnGround:
			p.switchAnim(AnimIdle, &tick)
		case p.input.MoveX == 0 && p.Anim.Current() != AnimIdle && abs(p.Body.Vel.X) < 2:
			p.switchAnim(AnimIdle, &tick)
		}
	} else {
		p.enterSwimIfClear(colliders, &tick)
		p.waterMovement(dt, colliders)
	}

	// Crossing the surface switches physics and clip on the same tick.
	if now := p.modeAt(p.Body.Pos.Y); now != p.mode {
		p.mode = now
		if now == ModeWater {
			p.enterSwimIfClear(colliders, &tick)
		}
	}
	tick.ModeChanged = p.mode != prevMode

	p.GunTip = p.Body.Pos.Add(p.gunOffset).Add(AngledVec(p.aimAngle, gunTipReach))

	if (p.prevPos.Y <= wl && wl < p.Body.Pos.Y) || (p.prevPos.Y > wl && wl >= p.Body.Pos.Y) {
		p.splash()
		tick.Splashed = true
	}

	p.updateGun(dt, &tick)

	p.prevPos = p.Body.Pos
	p.prevGunOffset = p.gunOffset
	p.prevAimAngle = p.aimAngle
	return tick
}

func (p *Player) enterSwimIfClear(colliders []Rect, tick *PlayerTick) {
	if !Overlapping(RectMidBottom(p.Body.Pos, playerWaterW, playerWaterH), colliders) {
		p.switchAnim(AnimSwim, tick)
	}
}

func (p *Player) syncHitbox() {
	if p.Swimming() {
		p.Body.W, p.Body.H = playerWaterW, playerWaterH
	} else {
		p.Body.W, p.Body.H = playerGroundW, playerGroundH
	}
}

func (p *Player) face(x float64) {
	if x < 0 {
		p.FlipX = true
	} else if x > 0 {
		p.FlipX = false
	}
}

func (p *Player) groundMovement(dt float64, colliders []Rect, tick *PlayerTick) {
	p.syncHitbox()
	b := &p.Body

	if p.input.MoveX != 0 {
		if !p.Swimming() {
			p.switchAnim(AnimRun, tick)
		}
		p.face(p.input.MoveX)
		b.Acc.X = steerAxis(p.input.MoveX, b.Vel.X, playerAccel, p.turn)
	} else {
		if p.Anim.Current() == AnimRun {
			p.switchAnim(AnimSlowing, tick)
		}
		if b.OnGround {
			b.Acc.X = -b.Vel.X * playerGroundDamping
		} else {
			b.Acc.X = -b.Vel.X * playerAirDamping
		}
	}
	b.IntegrateX(dt, playerMaxVX)
	b.ResolveX(colliders, playerStepOffset)

	b.Acc.Y = asymmetricGravity(b.Vel.Y, b.Acc.Y, p.ctx.Config.Gravity, playerDownGravityMul, b.OnGround)
	if p.input.MoveY < 0 && (b.OnGround || !p.coyote.Done()) && dt > 0 {
		b.Vel.Y = 0
		b.Acc.Y -= jumpAccel(playerJumpImpulse, dt)
		p.coyote.Finish()
		b.OnGround = false
	}
	b.IntegrateY(dt, -playerMaxVY*2, playerMaxVY)

	wasGrounded := b.OnGround
	b.ResolveY(colliders)
	if wasGrounded && !b.OnGround {
		p.coyote.Start()
	}
}

func (p *Player) waterMovement(dt float64, colliders []Rect) {
	p.syncHitbox()
	b := &p.Body

	if p.input.MoveX != 0 {
		p.face(p.input.MoveX)
		b.Acc.X = steerAxis(p.input.MoveX, b.Vel.X, playerAccel, p.turn)
	} else {
		b.Acc.X = -b.Vel.X * playerWaterDamping
	}
	b.Vel.X = softClamp(b.Vel.X+b.Acc.X*dt, playerWaterMaxVX, playerWaterSoftClamp*dt)
	b.Pos.X += b.Vel.X*dt + 0.5*b.Acc.X*dt*dt
	b.ResolveX(colliders, playerStepOffset)

	if p.input.MoveY != 0 {
		b.Acc.Y = steerAxis(p.input.MoveY, b.Vel.Y, playerAccel, p.turn)
	} else {
		b.Acc.Y = -b.Vel.Y * playerWaterDamping
	}
	b.Vel.Y = softClamp(b.Vel.Y+b.Acc.Y*dt, playerWaterMaxVY, playerWaterSoftClamp*dt)
	b.Pos.Y += b.Vel.Y*dt + 0.5*b.Acc.Y*dt*dt
	b.ResolveY(colliders)
}

// softClamp pulls v toward ±limit by fraction t when it exceeds the limit.
func softClamp(v, limit, t float64) float64 {
	if t > 1 {
		t = 1
	}
	switch {
	case v < -limit:
		return lerp(v, -limit, t)
	case v > limit:
		return lerp(v, limit, t)
	}
	return v
}

func (p *Player) splash() {
	rnd := p.ctx.Rand
	for i, n := 0, RandInt(rnd, 10, 30); i < n; i++ {
		dir := AngledVec(RandAngle(rnd), 1)
		p.waterFX.AddParticle(
			p.Body.Pos.Add(dir.Scale(Uniform(rnd, 0, 60))),
			p.profSplash,
			Vec2{dir.X * 100, abs(dir.Y) * -500},
		)
	}
}

func (p *Player) allGunSpawnersOff() {
	p.flamethrower.Active = false
	p.tipFire.Active = false
	p.boilingWater.Active = false
	p.tipWater.Active = false
}

func (p *Player) updateGun(dt float64, tick *PlayerTick) {
	wl := p.ctx.Config.WaterLevel
	prevTip := p.prevPos.Add(p.prevGunOffset).Add(AngledVec(p.prevAimAngle, gunTipReach))
	tip := p.GunTip

	switch {
	case prevTip.Y <= wl && wl < tip.Y:
		p.GunLandToWater = true
		p.allGunSpawnersOff()
		p.tipFire.Amount = gunTipAmount
		p.tipWater.Amount = gunTipAmount
	case prevTip.Y > wl && wl >= tip.Y:
		p.GunWaterToLand = true
		p.allGunSpawnersOff()
		p.tipFire.Amount = gunTipAmount
		p.tipWater.Amount = gunTipAmount
	}

	stream, tipSpawner, spread := p.flamethrower, p.tipFire, gunSpread
	if tip.Y > wl {
		stream, tipSpawner, spread = p.boilingWater, p.tipWater, gunSpread*3
	}

	if p.Temp.Fraction() < gunRefireFrac {
		p.canFire = true
		p.tipFire.Profile = p.profFire
	}

	p.firing = p.alive && p.input.Fire && p.canFire
	if p.firing {
		stream.AngleRange = Rng(p.aimAngle-spread, p.aimAngle+spread)
		extra := p.Body.Vel.Dot(AngledVec(p.aimAngle, 1))
		stream.VelocityRange = Rng(gunStreamSpeed.Min+extra, gunStreamSpeed.Max+extra)
		stream.Active = true
		tipSpawner.Active = true

		if p.collisionTimer.Done() {
			rnd := p.ctx.Rand
			vel := AngledVec(UniformRange(rnd, stream.AngleRange), UniformRange(rnd, stream.VelocityRange))
			p.collision.AddParticle(p.GunTip, vel)
			p.collisionTimer.Start()
		}

		p.Temp.Heat(p.gunHeat * dt)
		if !p.Temp.NotMaxed(defaultMaxedBuffer) {
			p.canFire = false
			p.ctx.Log.WithFields(logrus.Fields{"temp": p.Temp.Value}).Debug("gun overheated")
		}
	} else {
		tipSpawner.Amount = gunTipAmount
		p.allGunSpawnersOff()
	}
	tick.Firing = p.firing

	if p.Temp.Fraction() > gunSmokeFrac {
		p.tipFire.Profile = p.profSmoke
		tipSpawner.Amount = gunSmokeAmount
		tipSpawner.Active = true
	}
}
