package game

import "testing"

func testProjectileEnv() ProjectileEnv {
	return ProjectileEnv{Gravity: 1600, WaterLevel: 10000}
}

func TestProjectile_JustCollidedExactlyOneTick(t *testing.T) {
	floor := layerWith(64, TilePos{0, 2}, TilePos{1, 2})
	p := NewProjectile(testProjectileEnv(), Vec2{32, 0}, Vec2{0, 200}, 10, 3, 5, 0.5, 0.2)

	contactTicks := 0
	for i := 0; i < 120; i++ {
		p.Update(1.0/60, floor.Around(p.Pos, 2))
		if p.JustCollided() {
			contactTicks++
			if p.Vel.Y > 0 {
				t.Fatalf("tick %d: vertical velocity should reverse on contact, got %.1f", i, p.Vel.Y)
			}
		}
		if p.Collider().OverlapsRect(Rect{X: 0, Y: 128, W: 128, H: 64}) {
			t.Fatalf("tick %d: projectile left inside floor at %v", i, p.Pos)
		}
	}
	if contactTicks != 1 {
		t.Fatalf("expected exactly one just-collided tick, got %d", contactTicks)
	}
	if !p.Spent() {
		t.Fatal("projectile should be spent after contact")
	}
}

func TestProjectile_SlowProjectileIsHarmless(t *testing.T) {
	floor := layerWith(64, TilePos{0, 0})
	p := NewProjectile(testProjectileEnv(), Vec2{32, -11}, Vec2{0, 10}, 10, 3, 5, 0.5, 0.2)
	p.Update(1.0/60, floor.Around(p.Pos, 2))
	if p.JustCollided() {
		t.Fatal("a projectile below the spent speed must not report contact")
	}
}

func TestProjectile_WallBounceReversesX(t *testing.T) {
	wall := layerWith(64, TilePos{2, 0}, TilePos{2, 1}, TilePos{2, -1})
	p := NewProjectile(ProjectileEnv{Gravity: 0, WaterLevel: 10000}, Vec2{100, 64}, Vec2{600, 0}, 10, 3, 5, 0.5, 0.2)
	for i := 0; i < 10 && !p.Spent(); i++ {
		p.Update(1.0/60, wall.Around(p.Pos, 2))
	}
	if !p.Spent() {
		t.Fatal("projectile should have hit the wall")
	}
	if p.Vel.X >= 0 {
		t.Fatalf("X velocity should reverse off the wall, got %.1f", p.Vel.X)
	}
	if p.Pos.X+p.Radius > 128 {
		t.Fatalf("projectile should be pushed out of the wall, x=%.1f", p.Pos.X)
	}
}

func TestProjectileGroup_OneHitThenDespawn(t *testing.T) {
	floor := layerWith(64, TilePos{0, 2}, TilePos{1, 2})
	g := NewProjectileGroup(floor)
	g.Add(NewGarbageProjectile(testProjectileEnv(), NewSeededRandom(1), Vec2{32, 0}, Vec2{0, 200}))

	var hits []ProjectileHit
	for i := 0; i < 240; i++ {
		hits = append(hits, g.Update(1.0/60, nil)...)
	}
	if len(hits) != 1 {
		t.Fatalf("expected one hit, got %d", len(hits))
	}
	if hits[0].Damage != garbageDamage || hits[0].Area.R != garbageRadius*projectileHitScale {
		t.Fatalf("unexpected hit %+v", hits[0])
	}
	if g.Len() != 0 {
		t.Fatalf("projectile should despawn after %.0fs", garbageDespawn)
	}
}

func TestProjectileGroup_HitsDynamicCollider(t *testing.T) {
	g := NewProjectileGroup(nil)
	g.Add(NewProjectile(ProjectileEnv{WaterLevel: 10000}, Vec2{0, 0}, Vec2{600, 0}, 10, 7, 5, 0.5, 0.2))
	player := Rect{X: 50, Y: -55, W: 30, H: 110}
	hits := 0
	for i := 0; i < 20; i++ {
		for _, h := range g.Update(1.0/60, []Rect{player}) {
			hits++
			if h.Damage != 7 {
				t.Fatalf("damage should carry through, got %d", h.Damage)
			}
		}
	}
	if hits != 1 {
		t.Fatalf("expected one hit on the player rect, got %d", hits)
	}
}
