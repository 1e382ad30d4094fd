package flock

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"flocklab/internal/core"
)

// SteeringResult captures telemetry from a deterministic headless run used for tuning.
type SteeringResult struct {
	// Polarization is the mean heading agreement over the sampled window:
	// 1 means the whole flock flies one way, 0 means headings cancel out.
	Polarization float64
	// PeakPolarization records the highest single-sample agreement seen.
	PeakPolarization float64
	// PeakStep stores the tick at which the peak was first achieved.
	PeakStep int
	// MeanNeighbourDist is the average toroidal nearest-neighbour distance.
	MeanNeighbourDist float64
	// GroupedFraction reports the share of boids whose nearest neighbour sits
	// inside the neighbour radius.
	GroupedFraction float64
	// MeanSpeed is the average boid speed over the sampled window.
	MeanSpeed float64
	// StepsSimulated reports how many ticks the simulation executed.
	StepsSimulated int
}

// SweepRecord documents a single improvement encountered while exploring the
// tuning parameter space.
type SweepRecord struct {
	Pass      int
	Parameter string
	Value     string
	Result    SteeringResult
	Params    Params
}

// Polarization measures heading agreement as the magnitude of the mean unit
// velocity across the frame. It also reports the mean speed.
func Polarization(frame []Boid) (float64, float64) {
	if len(frame) == 0 {
		return 0, 0
	}
	var sumX, sumY, speedSum float64
	for _, b := range frame {
		m := b.Vel.Mag()
		speedSum += m
		if m == 0 {
			continue
		}
		sumX += b.Vel.X / m
		sumY += b.Vel.Y / m
	}
	n := float64(len(frame))
	return math.Hypot(sumX, sumY) / n, speedSum / n
}

// NeighbourStats reports the mean toroidal nearest-neighbour distance and the
// fraction of boids with at least one neighbour inside radius.
func NeighbourStats(frame []Boid, size core.Size, radius float64) (float64, float64) {
	if len(frame) < 2 {
		return 0, 0
	}
	w := float64(size.W)
	h := float64(size.H)
	var nnSum float64
	grouped := 0
	for i, b := range frame {
		nearest := math.MaxFloat64
		for j, o := range frame {
			if i == j {
				continue
			}
			if d := torusDist(b.Pos.X, b.Pos.Y, o.Pos.X, o.Pos.Y, w, h); d < nearest {
				nearest = d
			}
		}
		nnSum += nearest
		if nearest < radius {
			grouped++
		}
	}
	n := float64(len(frame))
	return nnSum / n, float64(grouped) / n
}

// torusDist is the shortest distance between two points on the wrapped field.
func torusDist(x1, y1, x2, y2, w, h float64) float64 {
	dx := math.Abs(x1 - x2)
	if dx > w/2 {
		dx = w - dx
	}
	dy := math.Abs(y1 - y2)
	if dy > h/2 {
		dy = h - dy
	}
	return math.Hypot(dx, dy)
}

// MeasureSteering runs a deterministic scenario with the provided
// configuration and returns the flocking telemetry.
//
// The helper seeds a fresh world, advances it for the requested number of
// steps, and samples polarization and spacing statistics over the second half
// of the run so the burst-in transient does not skew the averages.
func MeasureSteering(cfg Config, steps int) SteeringResult {
	if steps <= 0 {
		return SteeringResult{}
	}

	world := NewWithConfig(cfg)
	world.Reset(0)

	warmup := steps / 2
	const sampleEvery = 10

	result := SteeringResult{StepsSimulated: steps}
	var samples int
	var polSum, nnSum, groupSum, speedSum float64

	for step := 1; step <= steps; step++ {
		world.Step()
		if step <= warmup || (step-warmup)%sampleEvery != 0 {
			continue
		}
		frame := world.CurrentFrame()
		pol, speed := Polarization(frame)
		nn, grouped := NeighbourStats(frame, world.Size(), cfg.Params.NeighbourDist)
		if pol > result.PeakPolarization {
			result.PeakPolarization = pol
			result.PeakStep = step
		}
		polSum += pol
		nnSum += nn
		groupSum += grouped
		speedSum += speed
		samples++
	}

	if samples == 0 {
		return result
	}
	n := float64(samples)
	result.Polarization = polSum / n
	result.MeanNeighbourDist = nnSum / n
	result.GroupedFraction = groupSum / n
	result.MeanSpeed = speedSum / n
	return result
}

type floatSpec struct {
	name   string
	values []float64
	getter func(Params) float64
	setter func(*Params, float64)
	skip   func(Params, float64) bool
}

// SteeringParameterSweep performs a coarse coordinate-descent search across
// the steering parameters and returns the best parameter set discovered along
// with the associated telemetry and an improvement trace.
func SteeringParameterSweep(base Config, steps, passes, workers int) (Params, SteeringResult, []SweepRecord) {
	if steps <= 0 {
		steps = 300
	}
	if passes <= 0 {
		passes = 1
	}
	if workers <= 0 {
		workers = 1
	}

	currentParams := base.Params
	currentResult := MeasureSteering(applyParams(base, currentParams), steps)

	records := []SweepRecord{{
		Pass:      0,
		Parameter: "baseline",
		Value:     "",
		Result:    currentResult,
		Params:    currentParams,
	}}

	randomSamples := passes * 8
	if randomSamples < 16 {
		randomSamples = 16
	}
	rng := rand.New(rand.NewSource(base.Seed + 0x5f3759df))
	for i := 0; i < randomSamples; i++ {
		candidate := randomizeParams(rng, base.Params)
		res := MeasureSteering(applyParams(base, candidate), steps)
		if betterSteeringResult(res, currentResult) {
			currentParams = candidate
			currentResult = res
			records = append(records, SweepRecord{
				Pass:      0,
				Parameter: fmt.Sprintf("random#%d", i+1),
				Value:     "",
				Result:    res,
				Params:    candidate,
			})
		}
	}

	floatSpecs := []floatSpec{
		{
			name:   "desired_separation",
			values: []float64{15, 20, 25, 30, 40},
			getter: func(p Params) float64 { return p.DesiredSeparation },
			setter: func(p *Params, v float64) { p.DesiredSeparation = v },
			skip:   func(p Params, v float64) bool { return v >= p.NeighbourDist },
		},
		{
			name:   "neighbour_dist",
			values: []float64{40, 50, 65, 80, 100},
			getter: func(p Params) float64 { return p.NeighbourDist },
			setter: func(p *Params, v float64) { p.NeighbourDist = v },
			skip:   func(p Params, v float64) bool { return v <= p.DesiredSeparation },
		},
		{
			name:   "max_speed",
			values: []float64{1.5, 2.0, 2.5, 3.0},
			getter: func(p Params) float64 { return p.MaxSpeed },
			setter: func(p *Params, v float64) {
				p.MaxSpeed = v
				p.StartleStrength = v
			},
		},
		{
			name:   "max_force",
			values: []float64{0.02, 0.03, 0.04, 0.06, 0.08},
			getter: func(p Params) float64 { return p.MaxForce },
			setter: func(p *Params, v float64) { p.MaxForce = v },
		},
	}

	for pass := 1; pass <= passes; pass++ {
		improved := false

		for _, spec := range floatSpecs {
			bestParams, bestResult, changed, rec := evaluateFloatSpec(base, currentParams, currentResult, spec, steps, workers, pass)
			if changed {
				currentParams = bestParams
				currentResult = bestResult
				records = append(records, rec...)
				improved = true
			}
		}

		if !improved {
			break
		}
	}

	return currentParams, currentResult, records
}

func evaluateFloatSpec(base Config, params Params, baseline SteeringResult, spec floatSpec, steps, workers, pass int) (Params, SteeringResult, bool, []SweepRecord) {
	bestParams := params
	bestResult := baseline
	changed := false
	records := make([]SweepRecord, 0)

	type candidate struct {
		value  float64
		result SteeringResult
		valid  bool
	}

	candidates := make([]candidate, len(spec.values))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for idx, value := range spec.values {
		if almostEqual(value, spec.getter(params)) {
			continue
		}
		if spec.skip != nil && spec.skip(params, value) {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, v float64) {
			defer wg.Done()
			candidateParams := params
			spec.setter(&candidateParams, v)
			res := MeasureSteering(applyParams(base, candidateParams), steps)
			candidates[i] = candidate{value: v, result: res, valid: true}
			<-sem
		}(idx, value)
	}

	wg.Wait()

	for idx, value := range spec.values {
		cand := candidates[idx]
		if !cand.valid {
			continue
		}
		if betterSteeringResult(cand.result, bestResult) {
			candidateParams := params
			spec.setter(&candidateParams, value)
			bestParams = candidateParams
			bestResult = cand.result
			changed = true
			records = append(records, SweepRecord{
				Pass:      pass,
				Parameter: spec.name,
				Value:     fmt.Sprintf("%.3f", value),
				Result:    cand.result,
				Params:    candidateParams,
			})
		}
	}

	return bestParams, bestResult, changed, records
}

func betterSteeringResult(a, b SteeringResult) bool {
	if a.Polarization > b.Polarization {
		return true
	}
	if a.Polarization < b.Polarization {
		return false
	}
	return a.GroupedFraction > b.GroupedFraction
}

func almostEqual(a, b float64) bool {
	const eps = 1e-6
	return math.Abs(a-b) <= eps
}

func applyParams(base Config, params Params) Config {
	cfg := base
	cfg.Params = params
	return cfg
}

func randomizeParams(rng *rand.Rand, base Params) Params {
	params := base
	params.DesiredSeparation = randomFloatRange(rng, 12, 45)
	params.MaxForce = randomFloatRange(rng, 0.015, 0.08)
	speed := randomFloatRange(rng, 1.5, 3.0)
	params.MaxSpeed = speed
	params.StartleStrength = speed
	params.NeighbourDist = randomFloatRange(rng, params.DesiredSeparation+10, 120)
	return params
}

func randomFloatRange(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
