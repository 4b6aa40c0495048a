package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// reportFlashTicks is how long the clipboard confirmation stays visible.
const reportFlashTicks = 180

// Game adapts a World to ebiten.Game: it samples input, steps the world with
// the frame delta and draws it.
type Game struct {
	width  int
	height int
	world  *World
	events *EventLog

	// Toggles.
	showDebug bool // F3: collider / AI overlays
	showLog   bool // L: event log panel
	showHUD   bool // H: key legend
	prevKeys  map[ebiten.Key]bool

	prevMouseRight bool // for edge-triggered picking
	inspector      *Inspector

	// Simulation speed control.
	simSpeed float64 // multiplier: 0=paused, 0.5, 1, 2

	// Analytics reporter, sampled every second.
	reporter *SimReporter

	// F9 feedback line.
	reportMsg      string
	reportMsgTicks int

	face   text.Face
	hudBuf *ebiten.Image
}

// New wraps w for running under ebiten.
func New(w *World) *Game {
	cfg := w.Context().Config
	g := &Game{
		width:     cfg.ScreenWidth + logPanelWidth,
		height:    cfg.ScreenHeight,
		world:     w,
		events:    NewEventLog(),
		showLog:   true,
		showHUD:   true,
		showDebug: cfg.Debug,
		prevKeys:  make(map[ebiten.Key]bool),
		simSpeed:  1,
		reporter:  NewSimReporter(reportWindowTicks, false),
		face:      text.NewGoXFace(basicfont.Face7x13),
		inspector: NewInspector(),
	}
	w.AttachEventLog(g.events)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	return g
}

// World returns the simulated world.
func (g *Game) World() *World { return g.world }

func (g *Game) Update() error {
	g.handleInput()
	if g.reportMsgTicks > 0 {
		g.reportMsgTicks--
	}
	if g.simSpeed <= 0 {
		return nil
	}

	dt := g.simSpeed / float64(ebiten.TPS())
	g.world.Update(dt, g.sampleInput())

	if g.world.Tick()%60 == 0 {
		g.reporter.Collect(g.world)
	}
	return nil
}

// sampleInput reads the instantaneous key and mouse state.
func (g *Game) sampleInput() InputState {
	var in InputState
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeySpace) {
		in.MoveY--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY++
	}
	in.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	mx, my := ebiten.CursorPosition()
	in.Aim = g.world.Camera().ScreenToWorld(Vec2{float64(mx), float64(my)})
	return in
}

// pressed reports a key edge and records its state for the next frame.
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

// handleInput processes toggle keypresses (edge-triggered).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	if g.pressed(currentKeys, ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}
	if g.pressed(currentKeys, ebiten.KeyF9) {
		g.copyReport()
	}
	if g.pressed(currentKeys, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.pressed(currentKeys, ebiten.KeyL) {
		g.showLog = !g.showLog
	}
	if g.pressed(currentKeys, ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}

	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if right && !g.prevMouseRight {
		mx, my := ebiten.CursorPosition()
		g.inspector.Pick(g.world, g.world.Camera().ScreenToWorld(Vec2{float64(mx), float64(my)}))
	}
	g.prevMouseRight = right

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2}
	if g.pressed(currentKeys, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.pressed(currentKeys, ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if g.pressed(currentKeys, ebiten.KeyPeriod) {
		for _, s := range speeds {
			if s > g.simSpeed {
				g.simSpeed = s
				break
			}
		}
	}

	g.prevKeys = currentKeys
}

func (g *Game) copyReport() {
	report := DebugReport(g.world, 600) + "\n" + g.reporter.WindowSummary().Format()
	g.reportMsgTicks = reportFlashTicks
	if err := copyToClipboard(report); err != nil {
		g.world.Context().Log.WithError(err).Warn("debug report not copied")
		g.reportMsg = "report copy failed: " + err.Error()
		return
	}
	g.reportMsg = fmt.Sprintf("debug report copied (%d bytes)", len(report))
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
