package game

import (
	"strings"
	"testing"
)

func TestSimLog_FilterAndCount(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "M1", "ai", "state_change", "approach", 1)
	sl.Add(2, "M1", "monster", "throw", "(0,0)", 0)
	sl.Add(5, "P", "player", "damage", "-10 hp=90", 10)
	sl.Add(9, "P", "player", "damage", "-5 hp=85", 5)
	sl.AddVerbose(9, "P", "move", "position", "(0,0)", 0)

	if sl.Len() != 4 {
		t.Fatalf("verbose entries should be dropped, len=%d", sl.Len())
	}
	if n := sl.CountCategory("player", "damage"); n != 2 {
		t.Fatalf("want 2 damage entries, got %d", n)
	}
	if s := sl.SumCategory("player", "damage"); s != 15 {
		t.Fatalf("want 15 damage total, got %.0f", s)
	}
	if n := len(sl.Filter("", "throw")); n != 1 {
		t.Fatalf("key-only filter: %d", n)
	}
	if n := len(sl.FilterEntity("M1")); n != 2 {
		t.Fatalf("entity filter: %d", n)
	}
	if n := len(sl.FilterTickRange(2, 5)); n != 2 {
		t.Fatalf("tick range is inclusive: %d", n)
	}
	last, ok := sl.LastOf("player", "damage")
	if !ok || last.Tick != 9 {
		t.Fatalf("LastOf: %+v %v", last, ok)
	}
	if _, ok := sl.LastOf("boss", "slam"); ok {
		t.Fatal("no boss entries recorded")
	}
	if !sl.HasEntry("player", "damage", "hp=85") || sl.HasEntry("player", "damage", "hp=1") {
		t.Fatal("substring match on value")
	}
}

func TestSimLog_Format(t *testing.T) {
	sl := NewSimLog(true)
	sl.Add(42, "M3", "ai", "state_change", "search → approach", 1)
	sl.AddVerbose(43, "P", "stats", "gun_temp", "12.0", 12)
	out := sl.Format()
	if !strings.Contains(out, "[T=042] M3   ai         state_change     search → approach") {
		t.Fatalf("unexpected line format:\n%s", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Fatal("verbose log should hold both lines")
	}
	if got := sl.FormatRange(43, 43); !strings.Contains(got, "gun_temp") || strings.Contains(got, "M3") {
		t.Fatalf("range format: %q", got)
	}
}

func TestEventLog_RingBufferOrder(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		el.Add(i, "P", "player", "x")
	}
	if el.Len() != logMaxEntries {
		t.Fatalf("len should cap at %d, got %d", logMaxEntries, el.Len())
	}
	recent := el.Recent()
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != logMaxEntries+4 {
		t.Fatalf("oldest-first order broken: first=%d last=%d", recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestEventLog_MirrorsWorldEvents(t *testing.T) {
	ts := NewTestSim(WithFloor(-10, 10, 15), WithPlayerAt(0, 960), WithCheckpoint(0, 0, 960, 100))
	el := NewEventLog()
	ts.World.AttachEventLog(el)
	ts.RunTicks(1)
	if el.Len() == 0 || el.Recent()[0].Category != "checkpoint" {
		t.Fatalf("checkpoint activation should reach the on-screen log, got %+v", el.Recent())
	}
}

func TestSimReporter_WindowSummary(t *testing.T) {
	ts := NewTestSim(
		WithFloor(-10, 20, 15), WithPlayerAt(0, 960), WithMonsterAt(1, 500, 1100),
		WithReportEvery(60),
		WithInput(InputState{Fire: true, Aim: Vec2{500, 900}}),
	)
	if ts.Reporter.WindowSummary() != nil || ts.Reporter.Latest() != nil {
		t.Fatal("no samples yet")
	}
	ts.RunTicks(600)
	if n := len(ts.Reporter.History()); n != 10 {
		t.Fatalf("want 10 samples, got %d", n)
	}
	wr := ts.Reporter.WindowSummary()
	if wr.SampleCount != 10 || wr.ToTick != 600 || wr.FromTick != 60 {
		t.Fatalf("unexpected window %d..%d (%d)", wr.FromTick, wr.ToTick, wr.SampleCount)
	}
	if wr.FiringPct <= 0 || wr.AvgParticles <= 0 {
		t.Fatalf("holding fire should show up in the report: %+v", wr)
	}
	out := wr.Format()
	for _, want := range []string{"World Report", "--- Player ---", "--- Monsters ---", "--- Load ---"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(ts.Reporter.FormatLatest(), "T=600") {
		t.Fatal("latest snapshot should be the last sample")
	}
	var nilReport *WindowReport
	if nilReport.Format() != "No data collected yet.\n" {
		t.Fatal("nil report should format")
	}
}

func TestHeatLabel(t *testing.T) {
	cases := map[float64]string{0: "cold", 0.3: "warm", 0.6: "hot", 0.95: "smoking"}
	for frac, want := range cases {
		if got := heatLabel(frac); got != want {
			t.Fatalf("heatLabel(%.2f)=%s want %s", frac, got, want)
		}
	}
}

func TestDebugReport_Sections(t *testing.T) {
	ts := NewTestSim(WithFloor(-10, 20, 15), WithPlayerAt(0, 960), WithMonsterAt(1, 300, 1100), WithBoss(900, 960))
	ts.RunTicks(30)
	out := DebugReport(ts.World, 60)
	for _, want := range []string{"== player ==", "== monsters (1) ==", "== boss ==", "== effects ==", "== events"} {
		if !strings.Contains(out, want) {
			t.Fatalf("debug report missing %q:\n%s", want, out)
		}
	}
	if DebugReport(nil, 10) != "" {
		t.Fatal("nil world renders nothing")
	}
	if !strings.Contains(ts.SimLog.Summary(ts.World), "Boss: anim=") {
		t.Fatal("summary should describe the boss")
	}
}
