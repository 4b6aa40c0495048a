package game

import "github.com/sirupsen/logrus"

// Boss animation clip names.
const (
	BossAnimIdle = "idle"
	BossAnimSlam = "slam"
)

// Boss tuning.
const (
	bossW, bossH       = 200.0, 250.0
	bossSlamFrames     = 16
	bossSlamFPS        = 12
	bossImpactFrame    = 6 // slam frame that releases the burst
	bossActiveRange    = 1000.0
	bossColliderMargin = 2
)

var (
	bossCooldown     = Rng(9, 13)
	bossSummon       = [2]int{1, 2}
	bossBurstOffset  = Vec2{0, -40}
	bossVapourBurst  = burstSpec{ProfileWaterVapour, 30, 60, Rng(100, 300)}
	bossBoilingBurst = burstSpec{ProfileBoilingWater, 100, 200, Rng(20, 300)}
	bossBubbleBurst  = burstSpec{ProfileBubble, 5, 15, Rng(100, 200)}
)

// burstSpec is a one-shot radial particle emission.
type burstSpec struct {
	profile  string
	min, max int
	speed    Range
}

func (b burstSpec) emit(ctx *Context, fx *ParticleEngine, at Vec2) int {
	prof := ctx.Profiles.MustGet(b.profile)
	n := RandInt(ctx.Rand, b.min, b.max)
	for i := 0; i < n; i++ {
		fx.AddParticle(at, prof, AngledVec(RandAngle(ctx.Rand), UniformRange(ctx.Rand, b.speed)))
	}
	return n
}

// BossTick reports what one Boss.Update did.
type BossTick struct {
	Slammed bool // switched into the slam clip
	Impact  bool // released the slam burst
	Spawn   int  // minions to summon
}

// Boss sits in place and periodically slams, bursting steam and summoning
// water monsters on the impact frame.
type Boss struct {
	Body Body
	Anim *AnimationSet

	ctx       *Context
	colliders *TileLayer
	fx        *ParticleEngine
	cooldown  *Timer
	acted     bool
}

// NewBoss places the boss at pos (bottom-centre). The first slam comes one
// full cooldown after spawning.
func NewBoss(ctx *Context, pos Vec2, colliders *TileLayer, fx *ParticleEngine) *Boss {
	return &Boss{
		Body: Body{Pos: pos, W: bossW, H: bossH},
		Anim: NewAnimationSet(BossAnimIdle,
			&Animation{Name: BossAnimIdle, Frames: 1, FPS: 1, Loop: true},
			&Animation{Name: BossAnimSlam, Frames: bossSlamFrames, FPS: bossSlamFPS},
		),
		ctx:       ctx,
		colliders: colliders,
		fx:        fx,
		cooldown:  NewTimer(UniformRange(ctx.Rand, bossCooldown), false),
		acted:     true,
	}
}

// Pos returns the bottom-centre position.
func (b *Boss) Pos() Vec2 { return b.Body.Pos }

// Rect is the boss body.
func (b *Boss) Rect() Rect { return b.Body.Rect() }

// SummonPoint is where slam bursts and minions appear.
func (b *Boss) SummonPoint() Vec2 { return b.Body.Pos.Add(bossBurstOffset) }

// Cooldown exposes the slam timer.
func (b *Boss) Cooldown() *Timer { return b.cooldown }

// InRange reports whether the boss is awake for a player at pos.
func (b *Boss) InRange(pos Vec2) bool { return b.Body.Pos.Dist(pos) <= bossActiveRange }

// Update advances the slam cycle. Nothing happens while the player is out of
// range.
func (b *Boss) Update(dt float64, playerPos Vec2) BossTick {
	var tick BossTick
	if !b.InRange(playerPos) {
		return tick
	}
	b.settle(dt)

	b.Anim.Update(dt)
	if b.Anim.Current() == BossAnimSlam {
		if !b.acted && b.Anim.Clip().Frame() >= bossImpactFrame {
			b.acted = true
			tick.Impact = true
			tick.Spawn = b.impact()
		}
		if b.Anim.Done() {
			b.Anim.Switch(BossAnimIdle)
		}
	}

	b.cooldown.Tick(dt)
	if b.cooldown.Done() {
		b.Anim.Switch(BossAnimSlam)
		b.acted = false
		b.cooldown.SetCooldown(UniformRange(b.ctx.Rand, bossCooldown))
		b.cooldown.Start()
		tick.Slammed = true
	}
	return tick
}

func (b *Boss) impact() int {
	at := b.SummonPoint()
	vapour := bossVapourBurst.emit(b.ctx, b.fx, at)
	boiling := bossBoilingBurst.emit(b.ctx, b.fx, at)
	bubbles := bossBubbleBurst.emit(b.ctx, b.fx, at)
	spawn := RandInt(b.ctx.Rand, bossSummon[0], bossSummon[1])
	b.ctx.Log.WithFields(logrus.Fields{
		"vapour":  vapour,
		"boiling": boiling,
		"bubbles": bubbles,
		"spawn":   spawn,
	}).Debug("boss slam")
	return spawn
}

// settle drops the boss onto the ground above the water line.
func (b *Boss) settle(dt float64) {
	if b.colliders == nil || b.Body.OnGround || b.ctx.Underwater(b.Body.Pos.Y) {
		return
	}
	b.Body.Acc.Y = b.ctx.Config.Gravity
	b.Body.IntegrateY(dt, 0, playerMaxVY)
	b.Body.ResolveY(b.colliders.Overlapping(b.Body.Rect(), bossColliderMargin))
}
