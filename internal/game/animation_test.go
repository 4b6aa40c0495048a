package game

import "testing"

func TestAnimation_LoopWraps(t *testing.T) {
	a := &Animation{Name: "run", Frames: 4, FPS: 8, Loop: true}
	a.update(0.5) // 4 frames
	if a.Frame() != 0 {
		t.Fatalf("looping clip should wrap to 0, got %d", a.Frame())
	}
	a.update(0.3)
	if a.Frame() != 2 || a.Done() {
		t.Fatalf("frame=%d done=%v", a.Frame(), a.Done())
	}
}

func TestAnimation_OneShotHoldsLastFrame(t *testing.T) {
	a := &Animation{Name: "slam", Frames: 16, FPS: 12}
	a.update(0.5)
	if a.Frame() != 6 || a.Done() {
		t.Fatalf("frame=%d done=%v", a.Frame(), a.Done())
	}
	a.update(10)
	if a.Frame() != 15 || !a.Done() {
		t.Fatalf("one-shot should stop on the last frame, got %d", a.Frame())
	}
}

func TestAnimationSet_Switch(t *testing.T) {
	as := NewAnimationSet("idle",
		&Animation{Name: "idle", Frames: 2, FPS: 2, Loop: true},
		&Animation{Name: "slam", Frames: 4, FPS: 4},
	)
	if as.Switch("idle") {
		t.Fatal("switching to the playing clip is not a change")
	}
	if as.Switch("missing") || as.Current() != "idle" {
		t.Fatal("unknown clips are ignored")
	}
	if !as.Switch("slam") {
		t.Fatal("expected a change")
	}
	as.Update(2)
	if !as.Done() {
		t.Fatal("slam should have finished")
	}
	as.Switch("idle")
	as.Switch("slam")
	if as.Clip().Frame() != 0 || as.Done() {
		t.Fatal("switching restarts the clip from frame zero")
	}
}

func TestHealth_Clamped(t *testing.T) {
	h := NewHealth(100)
	h.Damage(30)
	h.Heal(500)
	if h.Current != 100 {
		t.Fatalf("heal should clamp to max, got %d", h.Current)
	}
	h.Damage(250)
	if h.Current != 0 || h.Alive() || h.Fraction() != 0 {
		t.Fatalf("damage should clamp to zero, got %d", h.Current)
	}
}

func TestTemperature_HeatAndCool(t *testing.T) {
	tp := NewTemperature(100, 15)
	tp.Heat(250)
	if tp.Value != 100 || tp.NotMaxed(defaultMaxedBuffer) {
		t.Fatalf("heat should cap at max, got %.1f", tp.Value)
	}
	tp.Tick(1)
	if tp.Value != 85 || !tp.NotMaxed(defaultMaxedBuffer) || tp.Fraction() != 0.85 {
		t.Fatalf("one second should cool by 15, got %.1f", tp.Value)
	}
	tp.Tick(100)
	if tp.Value != 0 {
		t.Fatal("temperature never goes below zero")
	}
}
