package flock

import (
	"math"

	"flocklab/internal/core"
	"flocklab/pkg/geom"
)

// Boid is one flocking agent. Steering methods return accelerations and never
// mutate the receiver; Update returns the advanced copy.
type Boid struct {
	Pos geom.Vec
	Vel geom.Vec
}

// Within filters others down to the boids whose distance to b lies strictly
// between 0 and dist. The lower bound keeps b itself (and exact position
// twins) out of every neighbourhood rule.
func (b Boid) Within(others []Boid, dist float64) []Boid {
	var near []Boid
	for _, o := range others {
		if d := b.Pos.Dist(o.Pos); d > 0 && d < dist {
			near = append(near, o)
		}
	}
	return near
}

// Separate steers away from boids inside the desired-separation radius.
// Each neighbour repels along the unit vector away from it, weighted by the
// inverse of its distance, so the closest crowders dominate.
func (b Boid) Separate(others []Boid, p Params) geom.Vec {
	near := b.Within(others, p.DesiredSeparation)
	if len(near) == 0 {
		return geom.Vec{}
	}
	var sum geom.Vec
	for _, o := range near {
		d := b.Pos.Dist(o.Pos)
		sum = sum.Add(b.Pos.Sub(o.Pos).Normalize().Div(d))
	}
	return sum.Normalize().Scale(p.MaxSpeed).Sub(b.Vel)
}

// Align steers toward the mean heading of the boids inside the
// neighbour-distance radius.
func (b Boid) Align(others []Boid, p Params) geom.Vec {
	near := b.Within(others, p.NeighbourDist)
	if len(near) == 0 {
		return geom.Vec{}
	}
	var sum geom.Vec
	for _, o := range near {
		sum = sum.Add(o.Vel)
	}
	desired := sum.Div(float64(len(near))).Normalize().Scale(p.MaxSpeed)
	return desired.Sub(b.Vel.Limit(p.MaxForce))
}

// Seek returns a force-limited acceleration toward target at full speed.
func (b Boid) Seek(target geom.Vec, p Params) geom.Vec {
	desired := target.Sub(b.Pos).Normalize().Scale(p.MaxSpeed)
	return desired.Sub(b.Vel).Limit(p.MaxForce)
}

// Cohesion seeks the mean position of the boids inside the neighbour-distance
// radius.
func (b Boid) Cohesion(others []Boid, p Params) geom.Vec {
	near := b.Within(others, p.NeighbourDist)
	if len(near) == 0 {
		return geom.Vec{}
	}
	var sum geom.Vec
	for _, o := range near {
		sum = sum.Add(o.Pos)
	}
	return b.Seek(sum.Div(float64(len(near))), p)
}

// Flock combines separation, alignment and cohesion into one acceleration,
// capped at the maximum steering force.
func (b Boid) Flock(others []Boid, p Params) geom.Vec {
	steer := b.Separate(others, p).Add(b.Align(others, p)).Add(b.Cohesion(others, p))
	return steer.Limit(p.MaxForce)
}

// Update applies one Euler step. The speed cap lands before wind is added, so
// a tailwind can carry the effective speed past MaxSpeed; the position
// integrates the pre-update velocity, so accelerations move the boid one tick
// later.
func (b Boid) Update(acc, wind geom.Vec, p Params, size core.Size) Boid {
	vel := b.Vel.Add(acc).Limit(p.MaxSpeed).Add(wind)
	pos := b.Pos.Add(b.Vel)
	return Boid{
		Pos: geom.Vec{
			X: wrap(pos.X, float64(size.W)),
			Y: wrap(pos.Y, float64(size.H)),
		},
		Vel: vel,
	}
}

// wrap folds a coordinate that drifted at most one field length out of bounds
// back onto the torus. The upper bound is inclusive, so landing exactly on
// the far edge re-enters at zero.
func wrap(x, dim float64) float64 {
	switch {
	case x >= dim:
		return x - dim
	case x < 0:
		return x + dim
	}
	return x
}

// mod folds an arbitrary coordinate into [0, dim). Insertions can originate
// anywhere on the host surface, so a single shift is not enough for them.
func mod(x, dim float64) float64 {
	x = math.Mod(x, dim)
	if x < 0 {
		x += dim
	}
	return x
}
