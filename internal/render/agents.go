//go:build ebiten

package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"flocklab/internal/core"
)

const (
	bodyRadius    = 2.0 // world units
	headingLength = 6.0 // world units
)

// AgentPainter draws agent snapshots as filled dots with a heading stroke,
// tinted by speed.
type AgentPainter struct {
	proj     Projector
	maxSpeed float64
}

// NewAgentPainter allocates a painter for the given pixel scale. maxSpeed
// anchors the top of the color ramp.
func NewAgentPainter(scale int, maxSpeed float64) *AgentPainter {
	if maxSpeed <= 0 {
		maxSpeed = 1
	}
	return &AgentPainter{proj: NewProjector(scale), maxSpeed: maxSpeed}
}

// Blit draws every agent onto dst.
func (ap *AgentPainter) Blit(dst *ebiten.Image, agents []core.AgentState) {
	s := ap.proj.Scale()
	for _, a := range agents {
		sx, sy := ap.proj.Screen(a.X, a.Y)
		speed := math.Hypot(a.VX, a.VY)
		col := SpeedColor(speed / ap.maxSpeed)

		hx, hy := ap.proj.Heading(a.X, a.Y, a.VX, a.VY, headingLength)
		vector.StrokeLine(dst, float32(sx), float32(sy), float32(hx), float32(hy), float32(s), col, true)
		vector.DrawFilledCircle(dst, float32(sx), float32(sy), float32(bodyRadius*s), col, true)
	}
}
