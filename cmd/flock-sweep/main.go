package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"flocklab/internal/sims/flock"
)

type paramSet struct {
	separation float64
	neighbour  float64
	maxSpeed   float64
	maxForce   float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("sep=%.0f neigh=%.0f speed=%.1f force=%.3f",
		p.separation, p.neighbour, p.maxSpeed, p.maxForce)
}

type scenarioResult struct {
	params       paramSet
	polarization float64
	nnDist       float64
	grouped      float64
	meanSpeed    float64
}

func main() {
	steps := flag.Int("steps", 300, "ticks to simulate per scenario")
	boids := flag.Int("boids", 120, "boids per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	baseCfg := flock.DefaultConfig()
	baseCfg.Boids = *boids
	baseCfg.FrameMemory = 8

	separationOptions := []float64{15, 25, 35}
	neighbourOptions := []float64{40, 50, 70}
	speedOptions := []float64{1.5, 2, 2.5}
	forceOptions := []float64{0.02, 0.03, 0.05}

	var sets []paramSet
	for _, sep := range separationOptions {
		for _, neigh := range neighbourOptions {
			for _, speed := range speedOptions {
				for _, force := range forceOptions {
					sets = append(sets, paramSet{
						separation: sep,
						neighbour:  neigh,
						maxSpeed:   speed,
						maxForce:   force,
					})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	best := scenarioResult{polarization: -1}
	for res := range results {
		all = append(all, res)
		if res.polarization > best.polarization {
			best = res
		}
		if res.polarization >= 0.9 {
			fmt.Printf("Candidate polarized to %.3f with %s\n", res.polarization, res.params)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].polarization > all[j].polarization })
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) pol=%.3f nn=%.1f grouped=%.2f speed=%.2f params=%s\n",
			i+1, res.polarization, res.nnDist, res.grouped, res.meanSpeed, res.params)
	}

	fmt.Printf("\nBest overall: pol=%.3f nn=%.1f grouped=%.2f speed=%.2f params=%s\n",
		best.polarization, best.nnDist, best.grouped, best.meanSpeed, best.params)
}

func runScenario(base flock.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.DesiredSeparation = params.separation
	cfg.Params.NeighbourDist = params.neighbour
	cfg.Params.MaxSpeed = params.maxSpeed
	cfg.Params.StartleStrength = params.maxSpeed
	cfg.Params.MaxForce = params.maxForce

	res := flock.MeasureSteering(cfg, steps)
	return scenarioResult{
		params:       params,
		polarization: res.Polarization,
		nnDist:       res.MeanNeighbourDist,
		grouped:      res.GroupedFraction,
		meanSpeed:    res.MeanSpeed,
	}
}
