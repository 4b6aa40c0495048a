package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// MonsterReport captures a single monster's state.
type MonsterReport struct {
	ID       int
	State    MonsterState
	Pos      Vec2
	TempFrac float64
	InRange  bool
}

// SimReport is a full snapshot of the world at one tick.
type SimReport struct {
	Tick int

	PlayerHealth int
	PlayerTemp   float64 // fraction of max
	PlayerMode   MovementMode
	PlayerFiring bool
	PlayerAlive  bool

	MonstersAlive   int
	MonstersInRange int
	MonsterStates   map[MonsterState]int

	LandParticles      int
	WaterParticles     int
	CollisionParticles int
	Projectiles        int

	BossAnim string // empty when the level has no boss

	// Monsters detail (optional, for verbose mode).
	Monsters []MonsterReport
}

// --- Reporter ---

// SimReporter collects periodic reports from the world and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
	verbose     bool
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int, verbose bool) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{
		windowTicks: windowTicks,
		verbose:     verbose,
	}
}

// Collect gathers a snapshot from the current world state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(w *World) {
	p := w.Player()
	report := SimReport{
		Tick:               w.Tick(),
		PlayerHealth:       p.Health.Current,
		PlayerTemp:         p.Temp.Fraction(),
		PlayerMode:         p.Mode(),
		PlayerFiring:       p.Firing(),
		PlayerAlive:        p.Alive(),
		MonstersAlive:      w.Monsters().Len(),
		MonsterStates:      make(map[MonsterState]int),
		LandParticles:      w.LandFX().Len(),
		WaterParticles:     w.WaterFX().Len(),
		CollisionParticles: w.Collision().Len(),
		Projectiles:        w.Projectiles().Len(),
	}
	if b := w.Boss(); b != nil {
		report.BossAnim = b.Anim.Current()
	}

	for _, m := range w.Monsters().Monsters() {
		report.MonsterStates[m.AI.State()]++
		inRange := m.Pos().Dist(p.Pos()) <= monsterActiveRange
		if inRange {
			report.MonstersInRange++
		}
		if r.verbose {
			report.Monsters = append(report.Monsters, MonsterReport{
				ID:       m.ID,
				State:    m.AI.State(),
				Pos:      m.Pos(),
				TempFrac: m.Temp.Fraction(),
				InRange:  inRange,
			})
		}
	}

	r.history = append(r.history, report)
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// WindowSummary returns an aggregated summary over the recent time window.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
		StatePct:    make(map[MonsterState]float64),
	}

	stateTotal := make(map[MonsterState]float64)
	var monsterTotal float64
	for _, rpt := range window {
		for s, c := range rpt.MonsterStates {
			stateTotal[s] += float64(c)
			monsterTotal += float64(c)
		}
		wr.AvgPlayerHealth += float64(rpt.PlayerHealth)
		wr.AvgPlayerTemp += rpt.PlayerTemp
		if rpt.PlayerFiring {
			wr.FiringPct++
		}
		if rpt.PlayerMode == ModeWater {
			wr.UnderwaterPct++
		}
		wr.AvgMonstersAlive += float64(rpt.MonstersAlive)
		wr.AvgMonstersInRange += float64(rpt.MonstersInRange)
		total := rpt.LandParticles + rpt.WaterParticles + rpt.CollisionParticles
		wr.AvgParticles += float64(total)
		if total > wr.PeakParticles {
			wr.PeakParticles = total
		}
		wr.AvgProjectiles += float64(rpt.Projectiles)
	}

	if monsterTotal > 0 {
		for s, c := range stateTotal {
			wr.StatePct[s] = c / monsterTotal * 100
		}
	}

	wr.AvgPlayerHealth /= n
	wr.AvgPlayerTemp /= n
	wr.FiringPct = wr.FiringPct / n * 100
	wr.UnderwaterPct = wr.UnderwaterPct / n * 100
	wr.AvgMonstersAlive /= n
	wr.AvgMonstersInRange /= n
	wr.AvgParticles /= n
	wr.AvgProjectiles /= n

	return wr
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// Monster AI state distribution as percentages (0-100).
	StatePct map[MonsterState]float64

	// Averages over the window.
	AvgPlayerHealth, AvgPlayerTemp       float64
	FiringPct, UnderwaterPct             float64
	AvgMonstersAlive, AvgMonstersInRange float64
	AvgParticles, AvgProjectiles         float64

	PeakParticles int
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== World Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Player ---\n")
	fmt.Fprintf(&sb, "  health=%.1f  gun_temp=%.0f%% (%s)\n",
		wr.AvgPlayerHealth, wr.AvgPlayerTemp*100, heatLabel(wr.AvgPlayerTemp))
	fmt.Fprintf(&sb, "  firing=%.1f%%  underwater=%.1f%%\n", wr.FiringPct, wr.UnderwaterPct)

	sb.WriteString("\n--- Monsters ---\n")
	fmt.Fprintf(&sb, "  alive=%.1f  in_range=%.1f\n", wr.AvgMonstersAlive, wr.AvgMonstersInRange)
	for _, s := range []MonsterState{MonsterSearch, MonsterApproach, MonsterAttack} {
		if pct, ok := wr.StatePct[s]; ok && pct > 0.5 {
			fmt.Fprintf(&sb, "  %-10s %5.1f%%\n", s, pct)
		}
	}

	sb.WriteString("\n--- Load ---\n")
	fmt.Fprintf(&sb, "  particles avg=%.0f peak=%d  projectiles avg=%.1f\n",
		wr.AvgParticles, wr.PeakParticles, wr.AvgProjectiles)

	return sb.String()
}

func heatLabel(frac float64) string {
	switch {
	case frac > gunSmokeFrac:
		return "smoking"
	case frac > 0.5:
		return "hot"
	case frac > 0.15:
		return "warm"
	default:
		return "cold"
	}
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	fmt.Fprintf(&sb, "Player: hp=%d temp=%.0f%% mode=%s firing=%t alive=%t\n",
		rpt.PlayerHealth, rpt.PlayerTemp*100, rpt.PlayerMode, rpt.PlayerFiring, rpt.PlayerAlive)
	fmt.Fprintf(&sb, "Monsters: alive=%d in_range=%d ", rpt.MonstersAlive, rpt.MonstersInRange)
	for _, s := range []MonsterState{MonsterSearch, MonsterApproach, MonsterAttack} {
		fmt.Fprintf(&sb, "%s=%d ", s, rpt.MonsterStates[s])
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Particles: land=%d water=%d collision=%d  projectiles=%d\n",
		rpt.LandParticles, rpt.WaterParticles, rpt.CollisionParticles, rpt.Projectiles)
	if rpt.BossAnim != "" {
		fmt.Fprintf(&sb, "Boss: %s\n", rpt.BossAnim)
	}
	return sb.String()
}

// History returns all collected reports.
func (r *SimReporter) History() []SimReport {
	return r.history
}
