package game

import "testing"

func TestCollisionParticle_DiesOnWallAndReportsOnce(t *testing.T) {
	wall := layerWith(64, TilePos{2, 0})
	prof := fixedProfile("jet", 10, 0, Vec2{}, true)
	g := NewCollisionParticleGroup(NewSeededRandom(1), prof, wall)
	g.AddParticle(Vec2{100, 32}, Vec2{600, 0})

	var hits []CollisionHit
	for i := 0; i < 30; i++ {
		hits = append(hits, g.Update(1.0/60, nil)...)
	}
	if len(hits) != 1 {
		t.Fatalf("expected exactly one hit, got %d", len(hits))
	}
	if hits[0].Profile != "jet" {
		t.Fatalf("hit should carry the profile name, got %q", hits[0].Profile)
	}
	if hits[0].Pos.X < 128 {
		t.Fatalf("hit should be reported inside the wall, got %v", hits[0].Pos)
	}
	if g.Len() != 0 {
		t.Fatalf("dead particle should be purged, %d left", g.Len())
	}
}

func TestCollisionParticle_DynamicCollider(t *testing.T) {
	prof := fixedProfile("jet", 10, 0, Vec2{}, true)
	g := NewCollisionParticleGroup(NewSeededRandom(1), prof, nil)
	g.AddParticle(Vec2{0, 0}, Vec2{0, 600})
	target := Rect{X: -20, Y: 40, W: 40, H: 40}

	hits := 0
	for i := 0; i < 10; i++ {
		hits += len(g.Update(1.0/60, []Rect{target}))
	}
	if hits != 1 {
		t.Fatalf("expected one hit on the dynamic rect, got %d", hits)
	}
}

func TestCollisionParticle_ShrinksWithoutContact(t *testing.T) {
	prof := fixedProfile("jet", 2, 4, Vec2{}, true)
	g := NewCollisionParticleGroup(NewSeededRandom(1), prof, nil)
	g.AddParticle(Vec2{}, Vec2{100, 0})
	for i := 0; i < 60; i++ {
		if hits := g.Update(1.0/60, nil); len(hits) != 0 {
			t.Fatal("shrinking away must not report a hit")
		}
	}
	if g.Len() != 0 {
		t.Fatal("particle should have shrunk below the size floor")
	}
}

func TestCollisionParticle_SetMediumClears(t *testing.T) {
	lib := DefaultProfiles()
	g := NewCollisionParticleGroup(NewSeededRandom(1), lib.MustGet(ProfileFlamethrower), nil)
	g.AddParticle(Vec2{}, Vec2{1, 0})
	g.SetMedium(lib.MustGet(ProfileBoilingWater), nil)
	if g.Len() != 0 {
		t.Fatal("medium swap should drop live particles")
	}
	if g.Profile().Name != ProfileBoilingWater {
		t.Fatalf("profile not swapped: %s", g.Profile().Name)
	}
}
