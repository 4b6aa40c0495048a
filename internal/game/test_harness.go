package game

import (
	"fmt"

	"github.com/Garsondee/Boiling-Point/internal/logger"
)

// TestSim is a headless world harness used by tests and the headless report.
// It drives World.Update at a fixed delta with scripted input and no Ebiten
// dependency.
type TestSim struct {
	Config   Config
	Level    *Level
	World    *World
	SimLog   *SimLog
	Reporter *SimReporter
	DT       float64

	seed     int64
	rnd      Random
	profiles *ProfileLibrary
	progressPath string
	verbose  bool
	input    func(tick int, w *World) InputState

	reportEvery int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // config, seed, level, verbose — applied first
	simOptEntity                      // spawns placed into the level
	simOptInput                       // input scripts — applied once the world exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
		ts.rnd = nil
	}}
}

// WithRandom injects a random source, overriding WithSeed.
func WithRandom(rnd Random) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rnd = rnd
	}}
}

// WithConfig replaces the default config.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Config = cfg
	}}
}

// WithLevel replaces the empty default level.
func WithLevel(lvl *Level) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Level = lvl
	}}
}

// WithProfiles replaces the default particle profile library.
func WithProfiles(lib *ProfileLibrary) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.profiles = lib
	}}
}

// WithProgress persists checkpoints at path.
func WithProgress(path string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.progressPath = path
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithReportEvery collects a SimReporter sample every n ticks.
func WithReportEvery(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.reportEvery = n
	}}
}

// WithFloor fills main-layer tiles from column c0 to c1 inclusive on row.
func WithFloor(c0, c1, row int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		for c := c0; c <= c1; c++ {
			_ = ts.Level.AddTile(TilePos{c, row}, LayerMain, "ground")
		}
	}}
}

// WithPlayerAt sets the level's player spawn.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Level.PlayerSpawn = Vec2{x, y}
	}}
}

// WithMonsterAt adds a water monster spawn.
func WithMonsterAt(id int, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Level.MonsterSpawns = append(ts.Level.MonsterSpawns, MonsterSpawn{ID: id, Pos: Vec2{x, y}})
	}}
}

// WithCheckpoint adds a checkpoint circle.
func WithCheckpoint(id int, x, y, radius float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Level.Checkpoints = append(ts.Level.Checkpoints, Checkpoint{ID: id, Pos: Vec2{x, y}, Radius: radius})
	}}
}

// WithBoss places the boss.
func WithBoss(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Level.BossPos = Vec2{x, y}
		ts.Level.HasBoss = true
	}}
}

// WithInput holds the same input every tick.
func WithInput(in InputState) SimOption {
	return SimOption{simOptInput, func(ts *TestSim) {
		ts.input = func(int, *World) InputState { return in }
	}}
}

// WithInputScript computes input per tick.
func WithInputScript(fn func(tick int, w *World) InputState) SimOption {
	return SimOption{simOptInput, func(ts *TestSim) {
		ts.input = fn
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (config, seed, level, verbose)
//  2. Entity spawns written into the level
//  3. World construction
//  4. Input scripts
//
// It panics if the world cannot be built, which only happens for an invalid
// level passed through WithLevel.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Config: DefaultConfig(),
		DT:     1.0 / 60,
		seed:   1,
	}
	ts.Config.ProgressPath = ""
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if ts.Level == nil {
		ts.Level = NewLevel(ts.Config.TileSize)
	}
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	if ts.rnd == nil {
		ts.rnd = NewSeededRandom(ts.seed)
	}
	ctx := NewContext(ts.Config, ts.rnd, ts.profiles)
	ctx.Log = logger.Discard()
	progress := NewProgressStore(ts.progressPath, ctx.Log.WithField("component", "progress"))

	w, err := NewWorld(ctx, ts.Level, progress)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.World = w
	ts.SimLog = NewSimLog(ts.verbose)
	w.SetSimLog(ts.SimLog)
	ts.Reporter = NewSimReporter(reportWindowTicks, ts.verbose)
	ts.input = func(int, *World) InputState { return InputState{} }

	for _, o := range opts {
		if o.kind == simOptInput {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.World.Tick()
		}
	}
	return -1
}

// runOneTick feeds one tick of scripted input to the world.
func (ts *TestSim) runOneTick() {
	w := ts.World
	in := ts.input(w.Tick()+1, w)
	w.Update(ts.DT, in)

	tick := w.Tick()
	p := w.Player()
	ts.SimLog.AddVerbose(tick, playerLabel, "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", p.Pos().X, p.Pos().Y), p.Pos().Y)
	ts.SimLog.AddVerbose(tick, playerLabel, "stats", "gun_temp",
		fmt.Sprintf("%.1f", p.Temp.Value), p.Temp.Value)

	if ts.reportEvery > 0 && tick%ts.reportEvery == 0 {
		ts.Reporter.Collect(w)
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.World.Tick()
}

// SimSnapshot is a lightweight state summary.
type SimSnapshot struct {
	Tick     int
	Player   PlayerSnapshot
	Monsters []MonsterReport
}

// PlayerSnapshot is a lightweight copy of the player's state at a tick.
type PlayerSnapshot struct {
	Pos    Vec2
	Vel    Vec2
	Mode   MovementMode
	Anim   string
	Health int
	Temp   float64
}

// Snapshot returns the current state of the player and every monster.
func (ts *TestSim) Snapshot() SimSnapshot {
	w := ts.World
	p := w.Player()
	snap := SimSnapshot{
		Tick: w.Tick(),
		Player: PlayerSnapshot{
			Pos:    p.Pos(),
			Vel:    p.Body.Vel,
			Mode:   p.Mode(),
			Anim:   p.Anim.Current(),
			Health: p.Health.Current,
			Temp:   p.Temp.Value,
		},
	}
	for _, m := range w.Monsters().Monsters() {
		snap.Monsters = append(snap.Monsters, MonsterReport{
			ID:       m.ID,
			State:    m.AI.State(),
			Pos:      m.Pos(),
			TempFrac: m.Temp.Fraction(),
			InRange:  m.Pos().Dist(p.Pos()) <= monsterActiveRange,
		})
	}
	return snap
}
