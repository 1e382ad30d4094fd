// Package geom provides the 2D vector algebra used by the flock simulation.
package geom

import (
	"math"
	"math/rand/v2"
)

// Vec is an immutable 2D vector. Every operation returns a new value.
type Vec struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of v and o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by the scalar k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Div returns v divided by the scalar k. Division by zero yields the zero
// vector so callers averaging over empty sets stay total.
func (v Vec) Div(k float64) Vec {
	if k == 0 {
		return Vec{}
	}
	return Vec{X: v.X / k, Y: v.Y / k}
}

// Mag returns the Euclidean magnitude of v.
func (v Vec) Mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to itself; steering sums over empty neighborhoods rely on this.
func (v Vec) Normalize() Vec {
	m := v.Mag()
	if m == 0 {
		return Vec{}
	}
	return Vec{X: v.X / m, Y: v.Y / m}
}

// Limit rescales v to max when its magnitude exceeds max and returns it
// unchanged otherwise.
func (v Vec) Limit(max float64) Vec {
	m := v.Mag()
	if m > max {
		return v.Scale(max / m)
	}
	return v
}

// FromPolar builds the vector (r·cos θ, r·sin θ).
func FromPolar(r, theta float64) Vec {
	sin, cos := math.Sincos(theta)
	return Vec{X: r * cos, Y: r * sin}
}

// RandDir draws a uniformly random direction in [0, 2π) from rng and scales
// it to the given magnitude.
func RandDir(rng *rand.Rand, mag float64) Vec {
	return FromPolar(mag, rng.Float64()*2*math.Pi)
}
