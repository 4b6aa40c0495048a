package game

import (
	"math"
	"testing"
)

func TestParticle_FreeFallMatchesKinematics(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(1), 256, 0)
	pe.AddParticle(Vec2{}, fixedProfile("probe", 100, 0, Vec2{0, 10}, false), Vec2{})

	const dt = 1.0 / 60
	for i := 1; i <= 120; i++ {
		pe.Update(dt)
		tm := float64(i) * dt
		p := pe.Particles()[0]
		if math.Abs(p.Pos.Y-5*tm*tm) > 1e-9 || p.Pos.X != 0 {
			t.Fatalf("tick %d: expected (0, %.6f), got (%.6f, %.6f)", i, 5*tm*tm, p.Pos.X, p.Pos.Y)
		}
	}
}

func TestParticle_ShrinksAndDies(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(2), 256, 0)
	prof := DefaultProfiles().MustGet(ProfileFire)
	for i := 0; i < 50; i++ {
		pe.AddParticle(Vec2{0, 0}, prof, Vec2{10, -10})
	}
	ticks := 0
	for pe.Len() > 0 && ticks < 600 {
		pe.Update(1.0 / 60)
		ticks++
	}
	if pe.Len() != 0 {
		t.Fatalf("fire particles should die within 10s, %d left", pe.Len())
	}
}

func TestParticle_BouncesOffFloor(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(3), 256, 0)
	floor := Rect{X: -100, Y: 50, W: 200, H: 64}
	pe.GenerateChunkedColliders([]Rect{floor})
	prof := fixedProfile("drop", 50, 0, Vec2{0, 600}, true)
	pe.AddParticle(Vec2{0, 0}, prof, Vec2{})
	for i := 0; i < 120; i++ {
		pe.Update(1.0 / 60)
		if p := pe.Particles()[0]; floor.Contains(p.Pos) {
			t.Fatalf("tick %d: particle inside floor at %+v", i, p.Pos)
		}
	}
}

func TestParticleEngine_ChunkLookup(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(1), 64, 0)
	wide := Rect{X: 32, Y: 0, W: 64, H: 64} // spans chunks 0 and 1
	edge := Rect{X: 128, Y: 0, W: 64, H: 64}
	pe.GenerateChunkedColliders([]Rect{wide, edge})

	if got := pe.StaticCollidersAt(Vec2{10, 10}); len(got) != 1 || got[0] != wide {
		t.Fatalf("chunk 0 should hold the wide rect only, got %v", got)
	}
	if got := pe.StaticCollidersAt(Vec2{100, 10}); len(got) != 1 || got[0] != wide {
		t.Fatalf("chunk 1 should hold the wide rect only (right edge exclusive), got %v", got)
	}
	if got := pe.StaticCollidersAt(Vec2{130, 10}); len(got) != 1 || got[0] != edge {
		t.Fatalf("chunk 2 should hold the edge rect, got %v", got)
	}
	if got := pe.StaticCollidersAt(Vec2{-10, 10}); len(got) != 0 {
		t.Fatalf("negative chunk should be empty, got %v", got)
	}
}

func TestParticleEngine_CapOverwrites(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(1), 64, 3)
	prof := fixedProfile("p", 5, 0, Vec2{}, false)
	for i := 0; i < 5; i++ {
		pe.AddParticle(Vec2{float64(i), 0}, prof, Vec2{})
	}
	if pe.Len() != 3 {
		t.Fatalf("cap of 3 exceeded: %d", pe.Len())
	}
	// Slots 0 and 1 were overwritten by particles 3 and 4.
	xs := []float64{pe.Particles()[0].Pos.X, pe.Particles()[1].Pos.X, pe.Particles()[2].Pos.X}
	if xs[0] != 3 || xs[1] != 4 || xs[2] != 2 {
		t.Fatalf("unexpected overwrite order: %v", xs)
	}
}

func TestParticleEngine_DynamicCollidersLastOneTick(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(1), 64, 0)
	pe.PassDynamicColliders([]Rect{{X: 0, Y: 0, W: 10, H: 10}})
	if !pe.blocked(Vec2{5, 5}) {
		t.Fatal("dynamic collider should block before update")
	}
	pe.Update(1.0 / 60)
	if pe.blocked(Vec2{5, 5}) {
		t.Fatal("dynamic colliders should be consumed by Update")
	}
}

// --- Spawner ---

func TestSpawner_EmitsOnCooldown(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(4), 64, 0)
	prof := fixedProfile("p", 100, 0, Vec2{}, false)
	s := pe.AddSpawner(NewPointSpawner(Vec2{}, 0.1, 4, true, prof, Rng(0, 0)))

	pe.Update(1.0 / 60)
	if pe.Len() != 4 {
		t.Fatalf("a fresh spawner should emit immediately, got %d", pe.Len())
	}
	for i := 0; i < 3; i++ {
		pe.Update(1.0 / 60)
	}
	if pe.Len() != 4 {
		t.Fatalf("no emission before the cooldown elapses, got %d", pe.Len())
	}
	s.Active = false
	for i := 0; i < 30; i++ {
		pe.Update(1.0 / 60)
	}
	if pe.Len() != 4 {
		t.Fatalf("inactive spawner must not emit, got %d", pe.Len())
	}
}

func TestSpawner_FollowsLinkedAnchor(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(5), 64, 0)
	prof := fixedProfile("p", 100, 0, Vec2{}, false)
	anchor := Vec2{100, 200}
	pe.AddSpawner(NewPointSpawner(Vec2{}, 1, 1, true, prof, Rng(0, 0)).LinkPos(&anchor))
	pe.Update(0)
	if got := pe.Particles()[0].Pos; got != anchor {
		t.Fatalf("expected emission at linked anchor %v, got %v", anchor, got)
	}
}

func TestSpawner_CircleStaysInsideRadius(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(6), 64, 0)
	prof := fixedProfile("p", 100, 0, Vec2{}, false)
	pe.AddSpawner(NewCircleSpawner(Vec2{50, 50}, 1, 200, 30, true, prof, Rng(0, 0)))
	pe.Update(0)
	for _, p := range pe.Particles() {
		if p.Pos.Dist(Vec2{50, 50}) > 30+1e-9 {
			t.Fatalf("particle outside spawn circle: %v", p.Pos)
		}
	}
}

func TestSpawner_JitterRerollsAmount(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(7), 64, 0)
	prof := fixedProfile("p", 100, 0, Vec2{}, false)
	s := pe.AddSpawner(NewPointSpawner(Vec2{}, 1, 1, true, prof, Rng(0, 0)).WithJitter(Rng(2, 3), 5, 8))
	pe.Update(0)
	if s.Amount < 5 || s.Amount > 8 {
		t.Fatalf("amount should be re-rolled into [5,8], got %d", s.Amount)
	}
	if c := s.Timer.Cooldown(); c < 2 || c >= 3 {
		t.Fatalf("cooldown should be re-rolled into [2,3), got %.2f", c)
	}
}

func TestParticleEngine_RemoveSpawner(t *testing.T) {
	pe := NewParticleEngine(NewSeededRandom(1), 64, 0)
	a := pe.AddSpawner(NewPointSpawner(Vec2{}, 1, 1, true, nil, Rng(0, 0)))
	b := pe.AddSpawner(NewPointSpawner(Vec2{}, 1, 1, true, nil, Rng(0, 0)))
	pe.RemoveSpawner(a)
	pe.RemoveSpawner(a)
	if len(pe.Spawners()) != 1 || pe.Spawners()[0] != b {
		t.Fatalf("expected only b to remain, got %d spawners", len(pe.Spawners()))
	}
}
