package flock

import (
	"math"

	"github.com/aquilax/go-perlin"

	"flocklab/pkg/geom"
)

// gustField layers a slowly drifting perturbation on top of the persistent
// wind. Direction and strength follow 1D Perlin noise sampled along the tick
// axis, so consecutive ticks see correlated gusts rather than white noise.
type gustField struct {
	noise    *perlin.Perlin
	scale    float64 // tick-axis sample spacing
	strength float64 // gust magnitude ceiling
}

// gustStrengthOffset shifts the strength channel away from the direction
// channel on the noise axis so the two do not track each other.
const gustStrengthOffset = 4096

func newGustField(p Params, seed int64) *gustField {
	if p.GustScale <= 0 || p.GustStrength <= 0 {
		return nil
	}
	return &gustField{
		noise:    perlin.NewPerlin(2, 2, 3, seed),
		scale:    p.GustScale,
		strength: p.GustStrength,
	}
}

// at samples the gust vector for the given tick. A nil field is calm.
func (g *gustField) at(tick uint64) geom.Vec {
	if g == nil {
		return geom.Vec{}
	}
	t := float64(tick) * g.scale
	theta := g.noise.Noise1D(t) * 2 * math.Pi
	mag := (g.noise.Noise1D(t+gustStrengthOffset) + 1) / 2 * g.strength
	return geom.FromPolar(mag, theta)
}
