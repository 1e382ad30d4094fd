//go:build ebiten

package app

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"flocklab/internal/core"
	"flocklab/internal/render"
	"flocklab/internal/ui"
	"flocklab/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Optional command surfaces a simulation may expose beyond core.Sim. The
// Game probes for them once and degrades gracefully when absent.
type windCommander interface {
	SetWind(theta float64)
	ClearWind()
}

type startler interface {
	Startle()
	Startled() bool
}

type inserter interface {
	Insert(pos, vel geom.Vec)
}

type rewinder interface {
	Rewind()
}

type historyProvider interface {
	Tick() uint64
	HistoryLen() int
	HistoryCap() int
}

type speedProvider interface {
	MaxSpeed() float64
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.AgentPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pacer   *core.FixedStep
	rng     *rand.Rand

	background color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	// 0 is calm; 1..8 walk the compass headings counter-clockwise.
	windIdx int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	maxSpeed := 1.0
	if provider, ok := sim.(speedProvider); ok && provider.MaxSpeed() > 0 {
		maxSpeed = provider.MaxSpeed()
	}
	return &Game{
		sim:        sim,
		painter:    render.NewAgentPainter(cfg.Scale, maxSpeed),
		hud:        ui.NewHUD(sim, HUDWidth),
		overlay:    ui.NewOverlay(sim, cfg.Scale),
		pacer:      core.NewFixedStep(cfg.TPS),
		rng:        core.NewRNG(cfg.Seed).Source(),
		background: color.RGBA{R: 10, G: 12, B: 16, A: 255},
		scale:      cfg.Scale,
		seed:       cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.windIdx = 0
}

// Update handles per-frame input and advances the simulation at its own tick
// rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if commander, ok := g.sim.(windCommander); ok && inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.windIdx = (g.windIdx + 1) % 9
		if g.windIdx == 0 {
			commander.ClearWind()
		} else {
			commander.SetWind(g.windTheta())
		}
	}
	if s, ok := g.sim.(startler); ok && inpututil.IsKeyJustPressed(ebiten.KeyX) {
		s.Startle()
	}
	if r, ok := g.sim.(rewinder); ok && ebiten.IsKeyPressed(ebiten.KeyBackspace) {
		r.Rewind()
	}
	g.handleInsertion()

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update(g.buildStatus())
	}

	steps := g.pacer.Steps()
	if g.paused {
		steps = 0
	}
	if g.tickOnce {
		steps = 1
		g.tickOnce = false
	}
	for i := 0; i < steps; i++ {
		g.sim.Step()
	}
	return nil
}

// handleInsertion drops a boid at the cursor with a random unit velocity.
func (g *Game) handleInsertion() {
	ins, ok := g.sim.(inserter)
	if !ok || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	scale := g.scale
	if scale <= 0 {
		scale = 1
	}
	if mx < 0 || my < 0 || mx >= size.W*scale || my >= size.H*scale {
		return
	}
	pos := geom.Vec{X: float64(mx) / float64(scale), Y: float64(my) / float64(scale)}
	ins.Insert(pos, geom.RandDir(g.rng, 1))
}

func (g *Game) buildStatus() ui.Status {
	status := ui.Status{Paused: g.paused}
	if provider, ok := g.sim.(historyProvider); ok {
		status.Tick = provider.Tick()
		status.HistoryLen = provider.HistoryLen()
		status.HistoryCap = provider.HistoryCap()
	}
	if g.windIdx > 0 {
		status.WindSet = true
		status.WindTheta = g.windTheta()
	}
	if s, ok := g.sim.(startler); ok {
		status.Startled = s.Startled()
	}
	return status
}

func (g *Game) windTheta() float64 {
	return float64(g.windIdx-1) * math.Pi / 4
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.painter.Blit(screen, g.sim.Agents())
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		size := g.sim.Size()
		g.hud.Draw(screen, size.W*g.scale, g.scale)
	}
}

// Layout returns the logical screen size including the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + HUDWidth, s.H * g.scale
}
