package main

import (
	"flag"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Garsondee/Boiling-Point/internal/game"
	"github.com/Garsondee/Boiling-Point/internal/logger"
)

type runStats struct {
	runIndex int
	seed     int64

	firstThrowTick  int
	firstDamageTick int
	firstKillTick   int
	firstDeathTick  int
	firstSlamTick   int

	kills        int
	deaths       int
	respawns     int
	throws       int
	hits         int
	damageTaken  float64
	stateChanges int
	modeChanges  int
	slams        int
	summons      int
	checkpoints  int
	killed       map[string]struct{}

	windowSummary *game.WindowReport
}

// scenario builds a fresh sim for one seed.
type scenario func(seed int64) *game.TestSim

var scenarios = map[string]scenario{
	"shore-assault": scenarioShoreAssault,
	"boss-arena":    scenarioBossArena,
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenarioName string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenarioName, "scenario", "shore-assault", "scenario name")
	flag.Parse()

	logger.Silence()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	build, ok := scenarios[scenarioName]
	if !ok {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenarioName, scenarioNames())
		return
	}

	fmt.Printf("=== Headless World Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenarioName, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		ts := build(seed)
		ts.RunTicks(ticks)
		stats := collectStats(i+1, seed, ts)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// huntInput walks toward the nearest monster and fires once it is close.
func huntInput(_ int, w *game.World) game.InputState {
	p := w.Player()
	var target *game.WaterMonster
	best := math.MaxFloat64
	for _, m := range w.Monsters().Monsters() {
		if d := m.Centroid().Dist(p.Pos()); d < best {
			best = d
			target = m
		}
	}
	if target == nil {
		return game.InputState{MoveX: 1, Aim: p.Pos().Add(game.Vec2{X: 200})}
	}
	c := target.Centroid()
	in := game.InputState{Aim: c}
	if best > 250 {
		if c.X > p.Pos().X {
			in.MoveX = 1
		} else {
			in.MoveX = -1
		}
	}
	in.Fire = best < 400 && p.CanFire()
	return in
}

func scenarioShoreAssault(seed int64) *game.TestSim {
	return game.NewTestSim(
		game.WithSeed(seed),
		game.WithFloor(-5, 60, 15),
		game.WithPlayerAt(200, 960),
		game.WithCheckpoint(1, 600, 920, 80),
		game.WithMonsterAt(1, 900, 960),
		game.WithMonsterAt(2, 1400, 960),
		game.WithMonsterAt(3, 2100, 960),
		game.WithInputScript(huntInput),
	)
}

func scenarioBossArena(seed int64) *game.TestSim {
	return game.NewTestSim(
		game.WithSeed(seed),
		game.WithFloor(-5, 40, 15),
		game.WithPlayerAt(300, 960),
		game.WithCheckpoint(1, 300, 920, 80),
		game.WithBoss(1200, 960),
		game.WithInputScript(huntInput),
	)
}

func collectStats(runIndex int, seed int64, ts *game.TestSim) runStats {
	sl := ts.SimLog
	killed := map[string]struct{}{}
	for _, e := range sl.Filter("monster", "death") {
		killed[e.Entity] = struct{}{}
	}
	entries := sl.Entries()
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		firstThrowTick:  firstTick(entries, "monster", "throw", ""),
		firstDamageTick: firstTick(entries, "player", "damage", ""),
		firstKillTick:   firstTick(entries, "monster", "death", ""),
		firstDeathTick:  firstTick(entries, "player", "death", ""),
		firstSlamTick:   firstTick(entries, "boss", "slam", ""),
		kills:           sl.CountCategory("monster", "death"),
		deaths:          sl.CountCategory("player", "death"),
		respawns:        sl.CountCategory("player", "respawn"),
		throws:          sl.CountCategory("monster", "throw"),
		hits:            sl.CountCategory("projectile", "hit"),
		damageTaken:     sl.SumCategory("player", "damage"),
		stateChanges:    sl.CountCategory("ai", "state_change"),
		modeChanges:     sl.CountCategory("player", "mode_change"),
		slams:           sl.CountCategory("boss", "slam"),
		summons:         sl.CountCategory("boss", "summon"),
		checkpoints:     sl.CountCategory("checkpoint", "activate"),
		killed:          killed,
		windowSummary:   ts.Reporter.WindowSummary(),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_throw=%d first_damage=%d first_kill=%d first_death=%d first_slam=%d\n",
		rs.firstThrowTick, rs.firstDamageTick, rs.firstKillTick, rs.firstDeathTick, rs.firstSlamTick)
	fmt.Printf("combat_totals: kills=%d deaths=%d respawns=%d throws=%d hits=%d damage_taken=%.0f\n",
		rs.kills, rs.deaths, rs.respawns, rs.throws, rs.hits, rs.damageTaken)
	fmt.Printf("event_totals: ai_state_change=%d mode_change=%d slam=%d summon=%d checkpoint=%d\n",
		rs.stateChanges, rs.modeChanges, rs.slams, rs.summons, rs.checkpoints)
	fmt.Printf("killed_labels: %s\n", joinSet(rs.killed))
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalKills := 0
	totalDeaths := 0
	totalThrows := 0
	totalHits := 0
	totalStates := 0
	totalSlams := 0
	totalDamage := 0.0

	throwTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	killedGlobal := map[string]struct{}{}

	for _, rs := range all {
		totalKills += rs.kills
		totalDeaths += rs.deaths
		totalThrows += rs.throws
		totalHits += rs.hits
		totalStates += rs.stateChanges
		totalSlams += rs.slams
		totalDamage += rs.damageTaken
		if rs.firstThrowTick >= 0 {
			throwTicks = append(throwTicks, rs.firstThrowTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		for label := range rs.killed {
			killedGlobal[label] = struct{}{}
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", n)
	fmt.Printf("avg_per_run: kills=%.1f deaths=%.1f throws=%.1f hits=%.1f ai_state_change=%.1f slams=%.1f damage_taken=%.1f\n",
		avg(totalKills, n), avg(totalDeaths, n), avg(totalThrows, n), avg(totalHits, n), avg(totalStates, n), avg(totalSlams, n), totalDamage/math.Max(1, float64(n)))
	fmt.Printf("phase_marker_avg_ticks: first_throw=%s first_kill=%s first_death=%s\n",
		avgTickString(throwTicks), avgTickString(killTicks), avgTickString(deathTicks))
	fmt.Printf("hit_rate=%s\n", ratioString(totalHits, totalThrows))
	fmt.Printf("unique_killed_labels=%d [%s]\n", len(killedGlobal), joinSet(killedGlobal))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func ratioString(num, den int) string {
	if den <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(num)/float64(den)*100)
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
