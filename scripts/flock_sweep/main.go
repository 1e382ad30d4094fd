package main

import (
	"fmt"

	flock "flocklab/internal/sims/flock"
)

type sweepParams struct {
	desiredSeparation float64
	neighbourDist     float64
	maxSpeed          float64
	maxForce          float64
}

func main() {
	candidates := []sweepParams{
		{
			desiredSeparation: 25,
			neighbourDist:     50,
			maxSpeed:          2.0,
			maxForce:          0.03,
		},
		{
			desiredSeparation: 20,
			neighbourDist:     70,
			maxSpeed:          2.0,
			maxForce:          0.04,
		},
		{
			desiredSeparation: 30,
			neighbourDist:     90,
			maxSpeed:          2.5,
			maxForce:          0.05,
		},
	}

	fmt.Printf("evaluating %d parameter combinations\n", len(candidates))
	for _, params := range candidates {
		peak, grouped := simulate(params)
		fmt.Printf("peak polarization %.3f vs grouped %.2f with params: sep=%.0f neigh=%.0f speed=%.1f force=%.3f\n",
			peak, grouped, params.desiredSeparation, params.neighbourDist, params.maxSpeed, params.maxForce)
	}
}

func simulate(params sweepParams) (float64, float64) {
	cfg := flock.DefaultConfig()
	cfg.Boids = 120
	cfg.FrameMemory = 8

	cfg.Params.DesiredSeparation = params.desiredSeparation
	cfg.Params.NeighbourDist = params.neighbourDist
	cfg.Params.MaxSpeed = params.maxSpeed
	cfg.Params.StartleStrength = params.maxSpeed
	cfg.Params.MaxForce = params.maxForce

	world := flock.NewWithConfig(cfg)
	world.Reset(0)

	pol, speed := flock.Polarization(world.CurrentFrame())
	fmt.Printf("initial polarization: %.3f at mean speed %.2f\n", pol, speed)

	peak := pol
	ticks := 600
	for i := 0; i < ticks; i++ {
		world.Step()
		frame := world.CurrentFrame()
		pol, speed = flock.Polarization(frame)
		if pol > peak {
			peak = pol
		}
		if i == 0 {
			fmt.Printf("after first step polarization: %.3f, mean speed %.2f\n", pol, speed)
		}
		if i == 50 {
			nn, grouped := flock.NeighbourStats(frame, world.Size(), cfg.Params.NeighbourDist)
			fmt.Printf("after 50 steps polarization %.3f, grouped %.2f, nn dist %.1f\n", pol, grouped, nn)
		}
	}

	frame := world.CurrentFrame()
	_, grouped := flock.NeighbourStats(frame, world.Size(), cfg.Params.NeighbourDist)
	return peak, grouped
}
