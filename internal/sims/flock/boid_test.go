package flock

import (
	"math"
	"testing"

	"flocklab/internal/core"
	"flocklab/pkg/geom"
)

func vecClose(a, b geom.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestWithinBoundsAreStrict(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 100, Y: 100}}
	others := []Boid{
		{Pos: geom.Vec{X: 100, Y: 100}},                       // exact twin, distance 0
		{Pos: geom.Vec{X: 110, Y: 100}},                       // inside
		{Pos: geom.Vec{X: 100 + p.DesiredSeparation, Y: 100}}, // exactly on the radius
		{Pos: geom.Vec{X: 400, Y: 100}},                       // far away
	}

	near := b.Within(others, p.DesiredSeparation)
	if len(near) != 1 {
		t.Fatalf("expected exactly one neighbour inside the open interval, got %d", len(near))
	}
	if near[0].Pos.X != 110 {
		t.Fatalf("expected the boid at x=110, got %v", near[0].Pos)
	}
}

func TestSteeringZeroWithoutNeighbours(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 50, Y: 50}, Vel: geom.Vec{X: 1, Y: 0}}
	others := []Boid{b, {Pos: geom.Vec{X: 500, Y: 400}}}

	if got := b.Separate(others, p); got != (geom.Vec{}) {
		t.Fatalf("expected zero separation with no neighbours, got %v", got)
	}
	if got := b.Align(others, p); got != (geom.Vec{}) {
		t.Fatalf("expected zero alignment with no neighbours, got %v", got)
	}
	if got := b.Cohesion(others, p); got != (geom.Vec{}) {
		t.Fatalf("expected zero cohesion with no neighbours, got %v", got)
	}
	if got := b.Flock(others, p); got != (geom.Vec{}) {
		t.Fatalf("expected zero flock steer with no neighbours, got %v", got)
	}
}

func TestSeparateSteersDirectlyAway(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 100, Y: 100}}
	others := []Boid{{Pos: geom.Vec{X: 110, Y: 100}}}

	got := b.Separate(others, p)
	want := geom.Vec{X: -p.MaxSpeed, Y: 0}
	if !vecClose(got, want, 1e-12) {
		t.Fatalf("expected separation %v, got %v", want, got)
	}
}

func TestSeparateWeightsCloserNeighbours(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 100, Y: 100}}
	others := []Boid{
		{Pos: geom.Vec{X: 105, Y: 100}}, // distance 5, east
		{Pos: geom.Vec{X: 100, Y: 120}}, // distance 20, south
	}

	got := b.Separate(others, p)
	// Away vectors: (-1,0)/5 and (0,-1)/20; the closer neighbour dominates,
	// so the normalized steer points mostly west.
	if got.X >= 0 {
		t.Fatalf("expected westward steer away from the close neighbour, got %v", got)
	}
	if math.Abs(got.X) <= math.Abs(got.Y) {
		t.Fatalf("expected the distance-5 neighbour to dominate the distance-20 one, got %v", got)
	}
	if m := got.Mag(); math.Abs(m-p.MaxSpeed) > 1e-12 {
		t.Fatalf("expected steer magnitude %v with zero velocity, got %v", p.MaxSpeed, m)
	}
}

func TestAlignMatchesNeighbourHeading(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 100, Y: 100}}
	others := []Boid{
		{Pos: geom.Vec{X: 120, Y: 100}, Vel: geom.Vec{X: 0, Y: 1}},
		{Pos: geom.Vec{X: 80, Y: 100}, Vel: geom.Vec{X: 0, Y: 1}},
	}

	got := b.Align(others, p)
	want := geom.Vec{X: 0, Y: p.MaxSpeed}
	if !vecClose(got, want, 1e-12) {
		t.Fatalf("expected alignment %v, got %v", want, got)
	}
}

func TestAlignSubtractsForceLimitedVelocity(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 100, Y: 100}, Vel: geom.Vec{X: 1, Y: 0}}
	others := []Boid{{Pos: geom.Vec{X: 120, Y: 100}, Vel: geom.Vec{X: 0, Y: 1}}}

	// The subtrahend is the boid's velocity limited to MaxForce, not the raw
	// velocity and not a limit on the final steer.
	got := b.Align(others, p)
	want := geom.Vec{X: -p.MaxForce, Y: p.MaxSpeed}
	if !vecClose(got, want, 1e-12) {
		t.Fatalf("expected alignment %v, got %v", want, got)
	}
}

func TestSeekCapsForce(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 0, Y: 0}}

	got := b.Seek(geom.Vec{X: 100, Y: 0}, p)
	want := geom.Vec{X: p.MaxForce, Y: 0}
	if !vecClose(got, want, 1e-12) {
		t.Fatalf("expected seek steer %v, got %v", want, got)
	}
}

func TestSeekTowardSelfIsZero(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 42, Y: 17}}

	if got := b.Seek(b.Pos, p); got != (geom.Vec{}) {
		t.Fatalf("expected zero steer toward own position, got %v", got)
	}
}

func TestCohesionSeeksNeighbourMean(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 100, Y: 100}}
	others := []Boid{
		{Pos: geom.Vec{X: 120, Y: 100}},
		{Pos: geom.Vec{X: 140, Y: 100}},
	}

	got := b.Cohesion(others, p)
	want := b.Seek(geom.Vec{X: 130, Y: 100}, p)
	if !vecClose(got, want, 1e-12) {
		t.Fatalf("expected cohesion to match seek of the mean position, want %v got %v", want, got)
	}
	if got.X <= 0 {
		t.Fatalf("expected eastward pull toward the group, got %v", got)
	}
}

func TestFlockCapsCombinedSteer(t *testing.T) {
	p := DefaultConfig().Params
	b := Boid{Pos: geom.Vec{X: 100, Y: 100}}
	others := []Boid{
		{Pos: geom.Vec{X: 105, Y: 100}, Vel: geom.Vec{X: 0, Y: 2}},
		{Pos: geom.Vec{X: 110, Y: 105}, Vel: geom.Vec{X: 1, Y: 1}},
	}

	got := b.Flock(others, p)
	if m := got.Mag(); m > p.MaxForce+1e-12 {
		t.Fatalf("expected combined steer capped at %v, got magnitude %v", p.MaxForce, m)
	}
	if got == (geom.Vec{}) {
		t.Fatal("expected a non-zero steer with crowding neighbours")
	}
}

func TestUpdateIntegratesPreUpdateVelocity(t *testing.T) {
	p := DefaultConfig().Params
	size := core.Size{W: 640, H: 480}
	b := Boid{Pos: geom.Vec{X: 10, Y: 10}, Vel: geom.Vec{X: 1, Y: 0}}

	next := b.Update(geom.Vec{X: 0, Y: 1}, geom.Vec{}, p, size)

	if !vecClose(next.Pos, geom.Vec{X: 11, Y: 10}, 1e-12) {
		t.Fatalf("position must integrate the pre-update velocity, got %v", next.Pos)
	}
	if !vecClose(next.Vel, geom.Vec{X: 1, Y: 1}, 1e-12) {
		t.Fatalf("expected velocity (1,1), got %v", next.Vel)
	}
}

func TestUpdateCapsSpeedBeforeWind(t *testing.T) {
	p := DefaultConfig().Params
	size := core.Size{W: 640, H: 480}
	b := Boid{Pos: geom.Vec{X: 10, Y: 10}, Vel: geom.Vec{X: 3, Y: 0}}

	next := b.Update(geom.Vec{}, geom.Vec{X: 0.5, Y: 0}, p, size)

	want := geom.Vec{X: p.MaxSpeed + 0.5, Y: 0}
	if !vecClose(next.Vel, want, 1e-12) {
		t.Fatalf("expected capped velocity plus wind %v, got %v", want, next.Vel)
	}
	if next.Vel.Mag() <= p.MaxSpeed {
		t.Fatal("tailwind should be able to push effective speed past the cap")
	}
}

func TestUpdateWrapsOffBothEdges(t *testing.T) {
	p := DefaultConfig().Params
	size := core.Size{W: 640, H: 480}

	east := Boid{Pos: geom.Vec{X: 639.5, Y: 479.5}, Vel: geom.Vec{X: 1, Y: 1}}
	next := east.Update(geom.Vec{}, geom.Vec{}, p, size)
	if !vecClose(next.Pos, geom.Vec{X: 0.5, Y: 0.5}, 1e-12) {
		t.Fatalf("expected wrap past the far edges, got %v", next.Pos)
	}

	west := Boid{Pos: geom.Vec{X: 0.5, Y: 0.5}, Vel: geom.Vec{X: -1, Y: -1}}
	next = west.Update(geom.Vec{}, geom.Vec{}, p, size)
	if !vecClose(next.Pos, geom.Vec{X: 639.5, Y: 479.5}, 1e-12) {
		t.Fatalf("expected wrap past the near edges, got %v", next.Pos)
	}
}

func TestUpdateKeepsPositionInHalfOpenRange(t *testing.T) {
	p := DefaultConfig().Params
	size := core.Size{W: 640, H: 480}

	// Landing exactly on the far edge must re-enter at zero, keeping the
	// position invariant 0 <= x < w.
	edge := Boid{Pos: geom.Vec{X: 639, Y: 479}, Vel: geom.Vec{X: 1, Y: 1}}
	next := edge.Update(geom.Vec{}, geom.Vec{}, p, size)
	if next.Pos.X != 0 || next.Pos.Y != 0 {
		t.Fatalf("expected the far edge to map to zero, got %v", next.Pos)
	}
}

func TestModFoldsArbitraryCoordinates(t *testing.T) {
	cases := []struct {
		x, dim, want float64
	}{
		{5, 640, 5},
		{645, 640, 5},
		{-5, 640, 635},
		{-1285, 640, 635},
		{640, 640, 0},
	}
	for _, c := range cases {
		if got := mod(c.x, c.dim); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("mod(%v, %v) = %v, want %v", c.x, c.dim, got, c.want)
		}
	}
}
