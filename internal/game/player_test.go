package game

import "testing"

type playerRig struct {
	ctx       *Context
	player    *Player
	landFX    *ParticleEngine
	waterFX   *ParticleEngine
	collision *CollisionParticleGroup
}

func newPlayerRig(seed int64, pos Vec2, colliders *TileLayer) playerRig {
	ctx := testContext(seed)
	land := NewParticleEngine(ctx.Rand, 256, 0)
	water := NewParticleEngine(ctx.Rand, 256, 0)
	coll := NewCollisionParticleGroup(ctx.Rand, ctx.Profiles.MustGet(ProfileFlamethrower), colliders)
	return playerRig{
		ctx:       ctx,
		player:    NewPlayer(ctx, pos, colliders, land, water, coll),
		landFX:    land,
		waterFX:   water,
		collision: coll,
	}
}

func testFloor() *TileLayer {
	l := NewTileLayer(64)
	for c := -20; c <= 20; c++ {
		l.Set(Tile{Pos: TilePos{c, 15}, Name: "ground"})
	}
	return l
}

func TestPlayer_CrossingWaterSwitchesToSwimSameTick(t *testing.T) {
	rig := newPlayerRig(1, Vec2{0, 995}, nil)
	p := rig.player
	p.Body.Vel.Y = 300

	tick := p.Update(1.0/60, InputState{MoveY: 1})
	if p.Pos().Y <= rig.ctx.Config.WaterLevel {
		t.Fatalf("setup: expected to cross the surface, y=%.2f", p.Pos().Y)
	}
	if p.Mode() != ModeWater || !tick.ModeChanged {
		t.Fatalf("expected water mode on the crossing tick, got %s (changed=%v)", p.Mode(), tick.ModeChanged)
	}
	if !p.Swimming() || !tick.AnimChanged {
		t.Fatalf("expected swim clip on the crossing tick, got %s", p.Anim.Current())
	}
	if !tick.Splashed || rig.waterFX.Len() < 10 {
		t.Fatalf("crossing should splash 10-30 particles, got %d", rig.waterFX.Len())
	}
}

func TestPlayer_StandsAndJumps(t *testing.T) {
	rig := newPlayerRig(2, Vec2{0, 900}, testFloor())
	p := rig.player
	for i := 0; i < 60; i++ {
		p.Update(1.0/60, InputState{})
	}
	if !p.Body.OnGround || p.Pos().Y != 960 {
		t.Fatalf("player should rest on the floor, got %v ground=%v", p.Pos(), p.Body.OnGround)
	}
	p.Update(1.0/60, InputState{MoveY: -1})
	if p.Body.OnGround || p.Body.Vel.Y >= 0 {
		t.Fatalf("jump should leave the ground moving up, vel=%v", p.Body.Vel)
	}
}

func TestPlayer_RunAndFacing(t *testing.T) {
	rig := newPlayerRig(3, Vec2{0, 960}, testFloor())
	p := rig.player
	p.Update(1.0/60, InputState{MoveX: 1})
	if p.Anim.Current() != AnimRun || p.FlipX {
		t.Fatalf("expected run facing right, got %s flip=%v", p.Anim.Current(), p.FlipX)
	}
	for i := 0; i < 120; i++ {
		p.Update(1.0/60, InputState{MoveX: 1})
	}
	if p.Body.Vel.X > playerMaxVX {
		t.Fatalf("ground speed above cap: %.1f", p.Body.Vel.X)
	}
	p.Update(1.0/60, InputState{})
	if p.Anim.Current() != AnimSlowing {
		t.Fatalf("releasing input should play slowing, got %s", p.Anim.Current())
	}
	for i := 0; i < 120; i++ {
		p.Update(1.0/60, InputState{})
	}
	if p.Anim.Current() != AnimIdle {
		t.Fatalf("player should settle to idle, got %s (vx=%.2f)", p.Anim.Current(), p.Body.Vel.X)
	}
	p.Update(1.0/60, InputState{MoveX: -1})
	if !p.FlipX {
		t.Fatal("moving left should flip the sprite")
	}
}

func TestPlayer_GunOverheatLocksAndRecovers(t *testing.T) {
	rig := newPlayerRig(4, Vec2{0, 960}, testFloor())
	p := rig.player
	fire := InputState{Fire: true, Aim: Vec2{300, 900}}

	locked := -1
	for i := 0; i < 300; i++ {
		tick := p.Update(1.0/60, fire)
		if i == 0 && !tick.Firing {
			t.Fatal("a cold gun should fire")
		}
		if !p.CanFire() {
			locked = i
			break
		}
	}
	if secs := float64(locked) / 60; locked < 0 || secs < 3 || secs > 3.6 {
		t.Fatalf("gun should lock after ~%.1fs of fire, locked at tick %d", gunDuration, locked)
	}
	if tick := p.Update(1.0/60, fire); tick.Firing {
		t.Fatal("an overheated gun must not fire")
	}
	if rig.collision.Len() == 0 && rig.landFX.Len() == 0 {
		t.Fatal("firing should have produced flame particles")
	}

	for i := 0; i < 100; i++ {
		p.Update(1.0/60, InputState{})
	}
	if !p.CanFire() {
		t.Fatalf("gun should re-enable below %.0f%%, temp=%.1f", gunRefireFrac*100, p.Temp.Value)
	}
}

func TestPlayer_FiringEmitsCollisionParticlesOnPeriod(t *testing.T) {
	rig := newPlayerRig(5, Vec2{0, 960}, testFloor())
	p := rig.player
	fire := InputState{Fire: true, Aim: Vec2{300, 0}}
	for i := 0; i < 30; i++ {
		p.Update(1.0/60, fire)
	}
	// One immediately, then one every 0.1s across half a second.
	if n := rig.collision.Len(); n < 4 || n > 6 {
		t.Fatalf("expected ~5 collision particles, got %d", n)
	}
}

func TestPlayer_WaterSpeedSoftClamped(t *testing.T) {
	rig := newPlayerRig(6, Vec2{0, 1500}, nil)
	p := rig.player
	for i := 0; i < 300; i++ {
		p.Update(1.0/60, InputState{MoveX: 1})
	}
	if p.Mode() != ModeWater || !p.Swimming() {
		t.Fatalf("deep player should swim, mode=%s anim=%s", p.Mode(), p.Anim.Current())
	}
	if p.Body.Vel.X > playerWaterMaxVX*1.3 {
		t.Fatalf("water speed should hover near %.0f, got %.1f", playerWaterMaxVX, p.Body.Vel.X)
	}
	if p.Rect().W != playerWaterW {
		t.Fatal("swimming hitbox should be the flat one")
	}
}

func TestPlayer_KillRemovesSpawners(t *testing.T) {
	rig := newPlayerRig(7, Vec2{0, 960}, testFloor())
	if len(rig.landFX.Spawners()) != 2 || len(rig.waterFX.Spawners()) != 3 {
		t.Fatalf("unexpected spawner counts %d/%d", len(rig.landFX.Spawners()), len(rig.waterFX.Spawners()))
	}
	rig.player.Kill()
	rig.player.Kill()
	if len(rig.landFX.Spawners()) != 0 || len(rig.waterFX.Spawners()) != 0 {
		t.Fatal("kill should remove every gun spawner")
	}
	if tick := rig.player.Update(1.0/60, InputState{Fire: true}); tick.Firing {
		t.Fatal("a dead player cannot fire")
	}
}

func TestSoftClamp(t *testing.T) {
	if softClamp(100, 250, 0.25) != 100 {
		t.Fatal("values inside the limit pass through")
	}
	if got := softClamp(350, 250, 0.25); got != 325 {
		t.Fatalf("expected lerp to 325, got %.1f", got)
	}
	if got := softClamp(-350, 250, 2); got != -250 {
		t.Fatalf("t above 1 should snap to the limit, got %.1f", got)
	}
}

func ledgeFloor() *TileLayer {
	l := NewTileLayer(64)
	for c := -20; c <= 0; c++ {
		l.Set(Tile{Pos: TilePos{c, 10}, Name: "ground"})
	}
	return l
}

// runOffLedge runs right until the player leaves the ledge and returns the tick count.
func runOffLedge(t *testing.T, p *Player) int {
	t.Helper()
	for i := 0; i < 30; i++ {
		p.Update(1.0/60, InputState{})
	}
	if !p.Body.OnGround {
		t.Fatalf("setup: player should start on the ledge, got %v", p.Pos())
	}
	for i := 0; i < 240; i++ {
		p.Update(1.0/60, InputState{MoveX: 1})
		if !p.Body.OnGround {
			return i
		}
	}
	t.Fatalf("player never left the ledge, x=%.1f", p.Pos().X)
	return -1
}

func TestPlayer_CoyoteJumpAfterLedge(t *testing.T) {
	rig := newPlayerRig(11, Vec2{-200, 640}, ledgeFloor())
	p := rig.player
	runOffLedge(t, p)
	if p.coyote.Done() {
		t.Fatal("leaving the ground without jumping should open the grace window")
	}
	p.Update(1.0/60, InputState{MoveX: 1, MoveY: -1})
	if p.Body.Vel.Y >= 0 {
		t.Fatalf("jump inside the grace window should launch upward, vy=%.1f", p.Body.Vel.Y)
	}
}

func TestPlayer_CoyoteWindowExpires(t *testing.T) {
	rig := newPlayerRig(12, Vec2{-200, 640}, ledgeFloor())
	p := rig.player
	runOffLedge(t, p)
	for i := 0; i < 9; i++ {
		p.Update(1.0/60, InputState{MoveX: 1})
	}
	if !p.coyote.Done() {
		t.Fatal("grace window should be over after 0.15s")
	}
	p.Update(1.0/60, InputState{MoveX: 1, MoveY: -1})
	if p.Body.Vel.Y <= 0 {
		t.Fatalf("late jump must not launch, vy=%.1f", p.Body.Vel.Y)
	}
}

func TestPlayer_JumpClosesCoyoteWindow(t *testing.T) {
	rig := newPlayerRig(13, Vec2{0, 900}, testFloor())
	p := rig.player
	for i := 0; i < 60; i++ {
		p.Update(1.0/60, InputState{})
	}
	p.Update(1.0/60, InputState{MoveY: -1})
	if !p.coyote.Done() {
		t.Fatal("a jump should leave no grace window")
	}
	first := p.Body.Vel.Y
	p.Update(1.0/60, InputState{MoveY: -1})
	if p.Body.Vel.Y <= first {
		t.Fatalf("holding jump in the air must not jump again: %.1f then %.1f", first, p.Body.Vel.Y)
	}
}
