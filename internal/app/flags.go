package app

import "flag"

// HUDWidth is the pixel width of the status panel docked right of the view.
const HUDWidth = 240

// Config represents the command-line parameters for the application.
type Config struct {
	ConfigPath string
	Scale      int
	TPS        int
	Seed       int64
	Boids      int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 1, TPS: 60, Seed: 1337, Boids: 150}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "path to a TOML config file")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Boids, "boids", c.Boids, "number of boids in the seed frame")
}
