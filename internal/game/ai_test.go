package game

import "testing"

func TestNextMonsterState_Table(t *testing.T) {
	c := DefaultAIConfig()
	cases := []struct {
		from MonsterState
		dist float64
		want MonsterState
	}{
		{MonsterSearch, 250, MonsterAttack},
		{MonsterSearch, 500, MonsterApproach},
		{MonsterSearch, 700, MonsterSearch},
		{MonsterApproach, 700, MonsterSearch},
		{MonsterApproach, 250, MonsterAttack},
		{MonsterApproach, 450, MonsterApproach},
		{MonsterAttack, 700, MonsterSearch},
		{MonsterAttack, 400, MonsterApproach},
		{MonsterAttack, 250, MonsterAttack},
	}
	for _, tc := range cases {
		if got := NextMonsterState(tc.from, tc.dist, c); got != tc.want {
			t.Fatalf("%s @ %.0f: expected %s, got %s", tc.from, tc.dist, tc.want, got)
		}
	}
}

func TestNextMonsterState_SettlesInOneStep(t *testing.T) {
	c := DefaultAIConfig()
	for _, s := range []MonsterState{MonsterSearch, MonsterApproach, MonsterAttack} {
		for d := 0.0; d <= 900; d += 25 {
			once := NextMonsterState(s, d, c)
			if twice := NextMonsterState(once, d, c); twice != once {
				t.Fatalf("%s @ %.0f: %s then %s; state should be stable at a fixed distance", s, d, once, twice)
			}
		}
	}
}

func TestMonsterOutput_HoldsRange(t *testing.T) {
	c := DefaultAIConfig()
	near := MonsterOutput(MonsterAttack, Vec2{100, 0}, c)
	if !near.Attack || near.Move.X != -1 {
		t.Fatalf("inside hold distance should back off while attacking, got %+v", near)
	}
	edge := MonsterOutput(MonsterAttack, Vec2{-290, 0}, c)
	if !edge.Attack || edge.Move.X != -1 {
		t.Fatalf("near the attack edge should close in, got %+v", edge)
	}
	if out := MonsterOutput(MonsterApproach, Vec2{-400, 0}, c); out.Move.X != -1 || out.Attack {
		t.Fatalf("approach should move toward target without attacking, got %+v", out)
	}
	if out := MonsterOutput(MonsterSearch, Vec2{900, 0}, c); out != (AIOutput{}) {
		t.Fatalf("search should hold still, got %+v", out)
	}
}

func TestMonsterAI_JumpsWhenProbeBlocked(t *testing.T) {
	ai := NewMonsterAI(DefaultAIConfig())
	wall := Rect{X: 15, Y: 0, W: 64, H: 200}
	changed := ai.Update(Vec2{0, 100}, Vec2{400, 100}, []Rect{wall}, false)
	if !changed || ai.State() != MonsterApproach {
		t.Fatalf("expected change into approach, got %s (changed=%v)", ai.State(), changed)
	}
	if ai.Movement().Y != -1 {
		t.Fatalf("blocked probe should request a jump, got %+v", ai.Movement())
	}
	if ai.Update(Vec2{0, 100}, Vec2{400, 100}, nil, false) {
		t.Fatal("same distance should not report a change")
	}
	if ai.Movement().Y != 0 {
		t.Fatal("clear probe should not jump")
	}
}

func TestMonsterAI_SwimsTowardTargetDepth(t *testing.T) {
	ai := NewMonsterAI(DefaultAIConfig())
	ai.Update(Vec2{0, 1500}, Vec2{100, 1200}, nil, true)
	if ai.Movement().Y != -1 {
		t.Fatalf("submerged monster should swim up toward target, got %+v", ai.Movement())
	}
	ai.Update(Vec2{0, 1500}, Vec2{100, 1700}, nil, true)
	if ai.Movement().Y != 1 {
		t.Fatalf("submerged monster should dive toward target, got %+v", ai.Movement())
	}
}
