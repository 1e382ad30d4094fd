// Package flock implements a 2D boids simulation with a bounded frame
// history. Boids steer by separation, alignment and cohesion against a frozen
// snapshot of the previous frame; global effects (persistent wind, a one-shot
// startle, synchronous insertion) layer on top, and the retained history
// supports a sliding rewind.
package flock

import (
	"math/rand/v2"
	"sync"

	"flocklab/internal/core"
	"flocklab/pkg/geom"
)

// World owns the frame history and the transient global effects, and advances
// the flock one tick at a time. All exported operations serialize on one
// mutex, so commands land either fully before or fully after a step, never
// mid-frame.
type World struct {
	mu sync.Mutex

	cfg   Config
	hist  *history
	rng   *rand.Rand
	gusts *gustField

	wind    *geom.Vec           // nil means calm
	oneShot func(Boid) geom.Vec // replaces flocking for exactly one tick

	tick uint64
}

// New returns a World with the default configuration, seeded and ready.
func New() *World {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig returns a World configured from cfg. The history is seeded
// with an explosion frame, so CurrentFrame is valid immediately.
func NewWithConfig(cfg Config) *World {
	w := &World{
		cfg:  cfg,
		hist: newHistory(cfg.FrameMemory),
	}
	w.resetLocked(cfg.Seed)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "flock" }

// Size reports the field dimensions in world units.
func (w *World) Size() core.Size {
	return core.Size{W: w.cfg.Width, H: w.cfg.Height}
}

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Reset discards the history and all transient effects, reseeds the RNG, and
// pushes a fresh explosion frame. A zero seed falls back to the configured
// seed.
func (w *World) Reset(seed int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked(seed)
}

func (w *World) resetLocked(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng = core.NewRNG(seed).Source()
	w.gusts = newGustField(w.cfg.Params, seed)
	w.wind = nil
	w.oneShot = nil
	w.tick = 0
	w.hist.clear()
	w.hist.push(w.explosionLocked(w.cfg.Boids))
}

// Step advances the flock one tick. Every boid is computed against the same
// snapshot of the previous frame. When a one-shot perturbation is armed it
// replaces flocking for all boids this tick, paired with a randomized wind
// term instead of the persistent wind; it is cleared exactly once, after the
// whole frame is computed.
func (w *World) Step() {
	w.mu.Lock()
	defer w.mu.Unlock()

	frame := w.hist.current()
	size := core.Size{W: w.cfg.Width, H: w.cfg.Height}
	wind := w.windLocked()

	next := make([]Boid, len(frame))
	for i, b := range frame {
		if w.oneShot != nil {
			gust := geom.RandDir(w.rng, w.cfg.Params.StartleStrength)
			next[i] = b.Update(w.oneShot(b), gust, w.cfg.Params, size)
			continue
		}
		next[i] = b.Update(b.Flock(frame, w.cfg.Params), wind, w.cfg.Params, size)
	}
	w.oneShot = nil
	w.hist.push(next)
	w.tick++
}

// windLocked returns the effective wind for this tick: the persistent wind
// (zero when calm) plus the gust layer when one is enabled.
func (w *World) windLocked() geom.Vec {
	var v geom.Vec
	if w.wind != nil {
		v = *w.wind
	}
	return v.Add(w.gusts.at(w.tick))
}

// SetWind sets the persistent wind blowing from the compass direction theta
// (meteorological convention, hence the negation), replacing any previous
// wind. It stays in force until replaced or cleared.
func (w *World) SetWind(theta float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v := geom.FromPolar(w.cfg.Params.WindStrength, theta).Scale(-1)
	w.wind = &v
}

// ClearWind returns the field to calm.
func (w *World) ClearWind() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.wind = nil
}

// Wind reports the persistent wind vector and whether one is set.
func (w *World) Wind() (geom.Vec, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.wind == nil {
		return geom.Vec{}, false
	}
	return *w.wind, true
}

// EffectiveWind reports the wind plus gust sample the next Step will apply.
func (w *World) EffectiveWind() geom.Vec {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.windLocked()
}

// Startle arms a one-shot perturbation for the next tick: every boid
// accelerates by its own position scaled by StartleStrength, so the kick
// grows with distance from the origin corner.
func (w *World) Startle() {
	w.mu.Lock()
	defer w.mu.Unlock()
	strength := w.cfg.Params.StartleStrength
	w.oneShot = func(b Boid) geom.Vec {
		return b.Pos.Scale(strength)
	}
}

// Startled reports whether a one-shot perturbation is armed.
func (w *World) Startled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.oneShot != nil
}

// Insert clones the current frame, appends a boid with the given position and
// velocity, and pushes the clone as a new frame. The insertion is synchronous:
// the new boid is visible to readers immediately, not on the next tick.
// Positions from the host surface are folded onto the torus.
func (w *World) Insert(pos, vel geom.Vec) {
	w.mu.Lock()
	defer w.mu.Unlock()
	frame := w.hist.current()
	next := make([]Boid, len(frame), len(frame)+1)
	copy(next, frame)
	next = append(next, Boid{
		Pos: geom.Vec{
			X: mod(pos.X, float64(w.cfg.Width)),
			Y: mod(pos.Y, float64(w.cfg.Height)),
		},
		Vel: vel,
	})
	w.hist.push(next)
}

// Rewind re-pushes the earliest retained frame. With a full buffer this
// evicts that same frame from the front, so repeated calls slide the retained
// window forward one slot at a time: a stepping replay, not a jump to t=0.
func (w *World) Rewind() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hist.push(w.hist.earliest())
}

// Explosion returns n fresh boids at the center of the field, each with a
// unit-magnitude velocity in a uniformly random direction. It does not touch
// the history.
func (w *World) Explosion(n int) []Boid {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.explosionLocked(n)
}

func (w *World) explosionLocked(n int) []Boid {
	if n < 0 {
		n = 0
	}
	center := geom.Vec{X: float64(w.cfg.Width) / 2, Y: float64(w.cfg.Height) / 2}
	boids := make([]Boid, n)
	for i := range boids {
		boids[i] = Boid{Pos: center, Vel: geom.RandDir(w.rng, 1)}
	}
	return boids
}

// CurrentFrame returns a copy of the most recent frame.
func (w *World) CurrentFrame() []Boid {
	w.mu.Lock()
	defer w.mu.Unlock()
	frame := w.hist.current()
	out := make([]Boid, len(frame))
	copy(out, frame)
	return out
}

// Agents exposes the current frame as renderer-ready snapshots.
func (w *World) Agents() []core.AgentState {
	w.mu.Lock()
	defer w.mu.Unlock()
	frame := w.hist.current()
	agents := make([]core.AgentState, len(frame))
	for i, b := range frame {
		agents[i] = core.AgentState{X: b.Pos.X, Y: b.Pos.Y, VX: b.Vel.X, VY: b.Vel.Y}
	}
	return agents
}

// Tick reports how many steps have run since the last reset.
func (w *World) Tick() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tick
}

// HistoryLen reports the number of retained frames.
func (w *World) HistoryLen() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hist.len()
}

// HistoryCap reports the frame memory the history is bounded to.
func (w *World) HistoryCap() int { return w.cfg.FrameMemory }

// MaxSpeed reports the steering speed cap. Hosts use it to anchor color
// ramps and polarization metrics.
func (w *World) MaxSpeed() float64 { return w.cfg.Params.MaxSpeed }
