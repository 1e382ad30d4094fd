//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"flocklab/internal/app"
	"flocklab/internal/sims/flock"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	simCfg := flock.DefaultConfig()
	if cfg.ConfigPath != "" {
		loaded, err := flock.LoadFile(cfg.ConfigPath)
		if err != nil {
			log.Fatal(err)
		}
		simCfg = loaded
	}
	// Explicit flags win over the config file; untouched ones defer to it.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			simCfg.Seed = cfg.Seed
		case "boids":
			simCfg.Boids = cfg.Boids
		}
	})
	cfg.Seed = simCfg.Seed
	cfg.Boids = simCfg.Boids

	sim := flock.NewWithConfig(simCfg)

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("flocklab — " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale+app.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
