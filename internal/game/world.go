package game

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// World tuning.
const (
	particleChunkTiles = 4   // particle collider chunk edge in tiles
	checkpointShake    = 0.3 // camera shake seconds on checkpoint activation
	respawnDelay       = 1.0 // seconds between death and the world reset
	worldLabel         = "--"
	playerLabel        = "P"
	bossLabel          = "B"
)

// World owns every simulated entity of one level session and steps them in a
// fixed order each tick.
type World struct {
	ctx      *Context
	level    *Level
	progress *ProgressStore
	log      *SimLog
	events   *EventLog
	tick     int

	landColliders  *TileLayer // terrain plus water-surface tiles
	waterColliders *TileLayer // terrain only

	landFX      *ParticleEngine
	waterFX     *ParticleEngine
	collision   *CollisionParticleGroup
	projectiles *ProjectileGroup
	monsters    *MonsterGroup
	boss        *Boss
	player      *Player
	camera      *Camera
	combat      *CombatRouter

	respawn *Timer
	dead    bool
}

// NewWorld builds a session for lvl, restoring the active checkpoint from
// progress. A nil progress store disables persistence.
func NewWorld(ctx *Context, lvl *Level, progress *ProgressStore) (*World, error) {
	if lvl == nil {
		return nil, fmt.Errorf("%w: nil level", ErrInvalidConfig)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	if progress == nil {
		progress = NewProgressStore("", nil)
	}
	lvl.log = ctx.Log.WithField("component", "level")
	saved, err := progress.Load()
	if err != nil {
		ctx.Log.WithError(err).Warn("progress unreadable, starting fresh")
	}
	lvl.SetActiveCheckpoint(saved.ActiveCheckpoint)

	ts := lvl.TileSize()
	main := lvl.Layer(LayerMain)
	if main == nil {
		main = NewTileLayer(ts)
	}
	w := &World{
		ctx:            ctx,
		level:          lvl,
		progress:       progress,
		log:            NewSimLog(false),
		landColliders:  MergeLayers(ts, main, lvl.Layer(LayerWater)),
		waterColliders: main,
		combat:         NewCombatRouter(),
		respawn:        NewTimer(respawnDelay, false),
	}
	w.reset()
	ctx.Log.WithFields(logrus.Fields{
		"tiles":       main.Len(),
		"monsters":    w.monsters.Len(),
		"boss":        lvl.HasBoss,
		"checkpoint":  lvl.ActiveCheckpoint(),
		"water_level": ctx.Config.WaterLevel,
	}).Info("world ready")
	return w, nil
}

// reset rebuilds every dynamic entity from the level, keeping the active
// checkpoint.
func (w *World) reset() {
	ctx, lvl := w.ctx, w.level
	chunk := lvl.TileSize() * particleChunkTiles

	w.landFX = NewParticleEngine(ctx.Rand, chunk, ctx.Config.MaxParticles)
	w.landFX.GenerateChunkedColliders(w.landColliders.Rects())
	w.waterFX = NewParticleEngine(ctx.Rand, chunk, ctx.Config.MaxParticles)
	w.waterFX.GenerateChunkedColliders(w.waterColliders.Rects())
	w.collision = NewCollisionParticleGroup(ctx.Rand, ctx.Profiles.MustGet(ProfileFlamethrower), w.landColliders)
	w.projectiles = NewProjectileGroup(w.waterColliders)

	w.monsters = NewMonsterGroup(ctx)
	for _, s := range lvl.MonsterSpawns {
		w.monsters.Add(NewWaterMonster(ctx, s.ID, s.Pos, w.waterColliders, w.waterFX, w.projectiles))
	}
	w.boss = nil
	if lvl.HasBoss {
		w.boss = NewBoss(ctx, lvl.BossPos, w.waterColliders, w.waterFX)
	}

	w.player = NewPlayer(ctx, lvl.RespawnPos(), w.waterColliders, w.landFX, w.waterFX, w.collision)
	if ctx.Underwater(w.player.GunTip.Y) {
		w.collision.SetMedium(ctx.Profiles.MustGet(ProfileBoilingWater), w.waterColliders)
	}
	w.camera = NewCamera(ctx.Rand, w.player.Center(), float64(ctx.Config.ScreenWidth), float64(ctx.Config.ScreenHeight))
	w.dead = false
	w.respawn.Start()
}

// SetSimLog replaces the event recorder.
func (w *World) SetSimLog(sl *SimLog) { w.log = sl }

// AttachEventLog mirrors recorded events into an on-screen log.
func (w *World) AttachEventLog(el *EventLog) { w.events = el }

func (w *World) record(entity, category, key, value string, num float64) {
	w.log.Add(w.tick, entity, category, key, value, num)
	if w.events != nil {
		w.events.Add(w.tick, entity, category, key+" "+value)
	}
}

// Update steps the world by dt seconds of simulated time.
func (w *World) Update(dt float64, in InputState) {
	if dt > w.ctx.Config.MaxDeltaTime {
		dt = w.ctx.Config.MaxDeltaTime
	}
	if dt < 0 {
		dt = 0
	}
	w.tick++

	if w.level.Update(w.player.Pos()) {
		w.player.Health.Heal(w.player.Health.Max)
		w.camera.Shake(checkpointShake)
		id := w.level.ActiveCheckpoint()
		if err := w.progress.Save(Progress{ActiveCheckpoint: id}); err != nil {
			w.record(worldLabel, "checkpoint", "save_failed", err.Error(), float64(id))
		}
		w.record(worldLabel, "checkpoint", "activate", fmt.Sprintf("id=%d", id), float64(id))
	}

	w.camera.Tick(dt)
	w.combat.Tick()

	// Dynamic colliders must reach the engines before they step.
	dynamic := w.monsters.Colliders(w.player.Pos(), monsterActiveRange)
	w.landFX.PassDynamicColliders(dynamic)
	w.waterFX.PassDynamicColliders(dynamic)
	w.landFX.Update(dt)
	w.waterFX.Update(dt)
	heatCircles := w.secondaryBursts(w.collision.Update(dt, dynamic))

	hits := w.projectiles.Update(dt, []Rect{w.player.Rect()})
	for _, h := range hits {
		w.record(worldLabel, "projectile", "hit", fmt.Sprintf("(%.0f,%.0f)", h.Area.Center.X, h.Area.Center.Y), float64(h.Damage))
	}
	if dmg := w.combat.PlayerDamage(hits, w.player.Rect()); dmg > 0 && w.player.Alive() {
		w.player.Health.Damage(dmg)
		w.camera.Shake(playerHitShake)
		w.record(playerLabel, "player", "damage", fmt.Sprintf("-%d hp=%d", dmg, w.player.Health.Current), float64(dmg))
	}

	heat := w.combat.HeatByMonster(heatCircles, w.monsters.InRange(w.player.Pos()))
	for _, ev := range w.monsters.Update(dt, w.player.Pos(), w.player.AimTarget(), heat) {
		label := fmt.Sprintf("M%d", ev.ID)
		switch ev.Kind {
		case MonsterStateChanged:
			w.record(label, "ai", "state_change", ev.State.String(), float64(ev.State))
		case MonsterThrew:
			w.record(label, "monster", "throw", fmt.Sprintf("(%.0f,%.0f)", ev.Pos.X, ev.Pos.Y), 0)
		case MonsterDied:
			w.record(label, "monster", "death", fmt.Sprintf("(%.0f,%.0f)", ev.Pos.X, ev.Pos.Y), 0)
		}
	}

	prevAnim := w.player.Anim.Current()
	pt := w.player.Update(dt, in)
	if pt.ModeChanged {
		w.record(playerLabel, "player", "mode_change", w.player.Mode().String(), w.player.Pos().Y)
	}
	if pt.AnimChanged {
		w.record(playerLabel, "player", "anim_change", prevAnim+" → "+w.player.Anim.Current(), 0)
	}

	if w.boss != nil {
		bt := w.boss.Update(dt, w.player.Pos())
		if bt.Slammed {
			w.record(bossLabel, "boss", "slam", fmt.Sprintf("next=%.1fs", w.boss.Cooldown().Cooldown()), w.boss.Cooldown().Cooldown())
		}
		if bt.Impact {
			w.summon(bt.Spawn)
		}
	}

	w.focusCamera(dt)

	switch {
	case w.player.GunWaterToLand:
		w.collision.SetMedium(w.ctx.Profiles.MustGet(ProfileFlamethrower), w.landColliders)
	case w.player.GunLandToWater:
		w.collision.SetMedium(w.ctx.Profiles.MustGet(ProfileBoilingWater), w.waterColliders)
	}

	w.checkDeath(dt)
}

// secondaryBursts spawns impact effects for stream particles that hit
// something and returns the heat circles they leave behind.
func (w *World) secondaryBursts(hits []CollisionHit) []Circle {
	if len(hits) == 0 {
		return nil
	}
	rnd, lib := w.ctx.Rand, w.ctx.Profiles
	circles := make([]Circle, 0, len(hits))
	for _, h := range hits {
		switch h.Profile {
		case ProfileFlamethrower:
			fire, smoke := lib.MustGet(ProfileFire), lib.MustGet(ProfileSmoke)
			for i, n := 0, RandInt(rnd, 5, 10); i < n; i++ {
				w.landFX.AddParticle(h.Pos.Add(AngledVec(RandAngle(rnd), Uniform(rnd, 0, 20))), fire, Vec2{})
			}
			for i, n := 0, RandInt(rnd, 10, 15); i < n; i++ {
				off := AngledVec(RandAngle(rnd), Uniform(rnd, 0, 20))
				w.landFX.AddParticle(h.Pos.Add(off), smoke, off.Scale(Uniform(rnd, 2, 5)))
			}
		case ProfileBoilingWater:
			vapour := lib.MustGet(ProfileWaterVapour)
			for i, n := 0, RandInt(rnd, 20, 30); i < n; i++ {
				off := AngledVec(RandAngle(rnd), Uniform(rnd, 0, 20))
				w.waterFX.AddParticle(h.Pos.Add(off), vapour, off.Scale(Uniform(rnd, 4, 8)))
			}
		}
		circles = append(circles, Circle{Center: h.Pos, R: hitCircleRadius})
	}
	return circles
}

func (w *World) summon(n int) {
	at := w.boss.SummonPoint()
	for i := 0; i < n; i++ {
		m := w.monsters.Add(NewWaterMonster(w.ctx, -1, at, w.waterColliders, w.waterFX, w.projectiles))
		w.record(bossLabel, "boss", "summon", fmt.Sprintf("M%d", m.ID), float64(m.ID))
	}
}

func (w *World) focusCamera(dt float64) {
	var bossPos *Vec2
	if w.boss != nil {
		p := w.boss.Pos()
		bossPos = &p
	}
	var focal *FocalPoint
	if fp, ok := w.level.CurrentFocalPoint(w.player.Pos(), w.monsters.Alive); ok {
		focal = &fp
	}
	w.camera.Focus(dt, w.player.Center(), bossPos, focal)
}

func (w *World) checkDeath(dt float64) {
	if !w.dead && !w.player.Health.Alive() {
		w.player.Kill()
		w.dead = true
		w.respawn.Start()
		w.record(playerLabel, "player", "death", fmt.Sprintf("(%.0f,%.0f)", w.player.Pos().X, w.player.Pos().Y), 0)
		return
	}
	if !w.dead {
		return
	}
	w.respawn.Tick(dt)
	if w.respawn.Done() {
		w.reset()
		w.record(playerLabel, "player", "respawn", fmt.Sprintf("checkpoint=%d", w.level.ActiveCheckpoint()), float64(w.level.ActiveCheckpoint()))
	}
}

// Tick is the number of updates run.
func (w *World) Tick() int { return w.tick }

func (w *World) Context() *Context                  { return w.ctx }
func (w *World) Level() *Level                      { return w.level }
func (w *World) Log() *SimLog                       { return w.log }
func (w *World) Player() *Player                    { return w.player }
func (w *World) Monsters() *MonsterGroup            { return w.monsters }
func (w *World) Boss() *Boss                        { return w.boss }
func (w *World) Camera() *Camera                    { return w.camera }
func (w *World) LandFX() *ParticleEngine            { return w.landFX }
func (w *World) WaterFX() *ParticleEngine           { return w.waterFX }
func (w *World) Collision() *CollisionParticleGroup { return w.collision }
func (w *World) Projectiles() *ProjectileGroup      { return w.projectiles }
func (w *World) Combat() *CombatRouter              { return w.combat }
func (w *World) Dead() bool                         { return w.dead }
