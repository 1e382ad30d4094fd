//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"flocklab/internal/core"
	"flocklab/pkg/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type effectiveWindProvider interface {
	EffectiveWind() geom.Vec
}

// Overlay draws optional debugging visuals on top of the base view.
type Overlay struct {
	sim      core.Sim
	scale    int
	showVel  bool
	showWind bool
	pixel    *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showVel = !o.showVel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showWind = !o.showWind
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showVel {
		o.drawVelocities(screen, scale)
	}
	if o.showWind {
		if provider, ok := o.sim.(effectiveWindProvider); ok {
			o.drawWindArrow(screen, provider.EffectiveWind(), size, scale)
		}
	}
}

// drawVelocities projects each agent's velocity a few ticks ahead.
func (o *Overlay) drawVelocities(screen *ebiten.Image, scale int) {
	const lookahead = 8.0
	col := color.RGBA{R: 120, G: 220, B: 160, A: 170}
	s := float64(scale)
	for _, a := range o.sim.Agents() {
		o.drawLine(screen, a.X*s, a.Y*s, (a.X+a.VX*lookahead)*s, (a.Y+a.VY*lookahead)*s, 1, col)
	}
}

// drawWindArrow anchors an arrow for the effective wind in the lower left
// corner, or a calm dot when the air is still.
func (o *Overlay) drawWindArrow(screen *ebiten.Image, wind geom.Vec, size core.Size, scale int) {
	const (
		margin    = 28.0
		span      = 36.0
		headAngle = math.Pi / 6
	)

	cx := margin
	cy := float64(size.H*scale) - margin
	speed := wind.Mag()
	if speed < 1e-9 {
		o.drawPoint(screen, cx, cy, 4, color.RGBA{R: 90, G: 130, B: 170, A: 120})
		return
	}

	nx := wind.X / speed
	ny := wind.Y / speed
	tipX := cx + nx*span
	tipY := cy + ny*span
	tailX := cx - nx*span*0.4
	tailY := cy - ny*span*0.4

	col := color.RGBA{R: 120, G: 190, B: 250, A: 220}
	o.drawLine(screen, tailX, tailY, tipX, tipY, 2, col)

	angle := math.Atan2(ny, nx)
	head := span * 0.35
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, 2, col)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, 2, col)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
