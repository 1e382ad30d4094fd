package render

import (
	"image/color"
	"math"
)

// Projector maps world coordinates onto screen pixels at an integer scale.
type Projector struct {
	scale float64
}

// NewProjector allocates a projector for the given pixel scale.
func NewProjector(scale int) Projector {
	if scale < 1 {
		scale = 1
	}
	return Projector{scale: float64(scale)}
}

// Scale reports the pixel scale as a float.
func (p Projector) Scale() float64 { return p.scale }

// Screen maps a world coordinate to screen pixels.
func (p Projector) Screen(x, y float64) (float64, float64) {
	return x * p.scale, y * p.scale
}

// Heading returns the screen endpoint of a heading stroke of the given world
// length along (vx, vy). A stationary agent keeps the stroke collapsed onto
// its own position.
func (p Projector) Heading(x, y, vx, vy, length float64) (float64, float64) {
	m := math.Hypot(vx, vy)
	if m == 0 {
		return p.Screen(x, y)
	}
	return p.Screen(x+vx/m*length, y+vy/m*length)
}

// SpeedColor maps a speed fraction in [0, 1] onto the body color ramp, cool
// at rest and warm at full speed.
func SpeedColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(90 + 150*t))
	g := uint8(math.Round(170 + 40*t))
	b := uint8(math.Round(235 - 120*t))
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
