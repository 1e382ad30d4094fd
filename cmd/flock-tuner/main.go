package main

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"flocklab/internal/sims/flock"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	steps := flag.Int("steps", 400, "number of ticks to simulate per candidate")
	passes := flag.Int("passes", 3, "coordinate-descent passes to execute")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	boids := flag.Int("boids", 96, "boids per tuning run")
	seed := flag.Int64("seed", 1337, "seed used for deterministic simulations")
	manualOnly := flag.Bool("manual", false, "skip sweeping and only evaluate provided overrides")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	cfg := flock.DefaultConfig()
	cfg.Seed = *seed
	cfg.Boids = *boids
	cfg.FrameMemory = 8
	cfg.Params.GustScale = 0
	cfg.Params.GustStrength = 0

	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		applyOverride(&cfg.Params, parts[0], parts[1])
	}

	baseline := flock.MeasureSteering(cfg, *steps)

	fmt.Printf("Baseline: polarization %.3f (peak %.3f at step %d), grouped %.2f, nn dist %.1f (spacing ratio %.2f), mean speed %.2f over %d steps\n",
		baseline.Polarization, baseline.PeakPolarization, baseline.PeakStep, baseline.GroupedFraction,
		baseline.MeanNeighbourDist, spacingRatio(baseline, cfg.Params), baseline.MeanSpeed, baseline.StepsSimulated)

	if *manualOnly {
		fmt.Println("Manual evaluation requested; skipping sweep.")
		printParams(cfg.Params)
		return
	}

	params, result, trace := flock.SteeringParameterSweep(cfg, *steps, *passes, *workers)

	fmt.Printf("\nBest found: polarization %.3f (peak %.3f at step %d), grouped %.2f, nn dist %.1f (spacing ratio %.2f), mean speed %.2f\n",
		result.Polarization, result.PeakPolarization, result.PeakStep, result.GroupedFraction,
		result.MeanNeighbourDist, spacingRatio(result, params), result.MeanSpeed)
	printParams(params)

	if len(trace) > 1 {
		fmt.Println("\nImprovements:")
		for _, rec := range trace[1:] {
			fmt.Printf("  pass %d: %s=%s -> polarization %.3f, grouped %.2f (spacing ratio %.2f)\n",
				rec.Pass, rec.Parameter, rec.Value, rec.Result.Polarization, rec.Result.GroupedFraction,
				spacingRatio(rec.Result, rec.Params))
		}
	}
}

// spacingRatio relates the measured nearest-neighbour distance to the desired
// separation; 1.0 means the flock settles right at the separation radius.
func spacingRatio(res flock.SteeringResult, p flock.Params) float64 {
	if p.DesiredSeparation <= 0 {
		return 0
	}
	return res.MeanNeighbourDist / p.DesiredSeparation
}

func applyOverride(params *flock.Params, key, value string) {
	switch key {
	case "desired_separation":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.DesiredSeparation = v
		}
	case "neighbour_dist":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.NeighbourDist = v
		}
	case "max_speed":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.MaxSpeed = v
			if params.StartleStrength < v {
				params.StartleStrength = v
			}
		}
	case "max_force":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.MaxForce = v
		}
	case "wind_strength":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.WindStrength = v
		}
	case "startle_strength":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.StartleStrength = v
		}
	case "gust_scale":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.GustScale = v
		}
	case "gust_strength":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			params.GustStrength = v
		}
	}
}

func printParams(params flock.Params) {
	fmt.Println("Parameters:")
	fmt.Printf("  desired_separation=%.3f\n", params.DesiredSeparation)
	fmt.Printf("  neighbour_dist=%.3f\n", params.NeighbourDist)
	fmt.Printf("  max_speed=%.3f\n", params.MaxSpeed)
	fmt.Printf("  max_force=%.3f\n", params.MaxForce)
	fmt.Printf("  wind_strength=%.3f\n", params.WindStrength)
	fmt.Printf("  startle_strength=%.3f\n", params.StartleStrength)
	fmt.Printf("  gust_scale=%.3f\n", params.GustScale)
	fmt.Printf("  gust_strength=%.3f\n", params.GustStrength)
}
