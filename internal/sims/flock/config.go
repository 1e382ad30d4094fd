package flock

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Params holds the steering and weather tunables for the flock sim.
type Params struct {
	DesiredSeparation float64 `toml:"desired_separation"`
	NeighbourDist     float64 `toml:"neighbour_dist"`
	MaxSpeed          float64 `toml:"max_speed"`
	MaxForce          float64 `toml:"max_force"`

	WindStrength    float64 `toml:"wind_strength"`
	StartleStrength float64 `toml:"startle_strength"`

	GustScale    float64 `toml:"gust_scale"`
	GustStrength float64 `toml:"gust_strength"`
}

// Config controls the flock simulation field and population.
type Config struct {
	Width  int `toml:"w"`
	Height int `toml:"h"`

	Seed int64 `toml:"seed"`

	Boids       int `toml:"boids"`
	FrameMemory int `toml:"frame_memory"`

	Params Params `toml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       640,
		Height:      480,
		Seed:        1337,
		Boids:       150,
		FrameMemory: 60,
		Params: Params{
			DesiredSeparation: 25,
			NeighbourDist:     50,
			MaxSpeed:          2,
			MaxForce:          0.03,
			WindStrength:      0.02,
			StartleStrength:   2,
			GustScale:         0,
			GustStrength:      0,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["boids"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Boids = parsed
		}
	}
	if v, ok := cfg["frame_memory"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.FrameMemory = parsed
		}
	}
	if v, ok := cfg["desired_separation"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DesiredSeparation = parsed
		}
	}
	if v, ok := cfg["neighbour_dist"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.NeighbourDist = parsed
		}
	}
	if v, ok := cfg["max_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.MaxSpeed = parsed
		}
	}
	if v, ok := cfg["max_force"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.MaxForce = parsed
		}
	}
	if v, ok := cfg["wind_strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.WindStrength = parsed
		}
	}
	if v, ok := cfg["startle_strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.StartleStrength = parsed
		}
	}
	if v, ok := cfg["gust_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.GustScale = parsed
		}
	}
	if v, ok := cfg["gust_strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.GustStrength = parsed
		}
	}
	return c
}

// LoadFile reads a TOML config from path, layered over the defaults.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, fmt.Errorf("flock: load config %s: %w", path, err)
	}
	return c.normalized(), nil
}

// normalized clamps decoded values back into the ranges the sim expects.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.Boids < 0 {
		c.Boids = 0
	}
	if c.FrameMemory <= 0 {
		c.FrameMemory = d.FrameMemory
	}
	for _, f := range []*float64{
		&c.Params.DesiredSeparation,
		&c.Params.NeighbourDist,
		&c.Params.MaxSpeed,
		&c.Params.MaxForce,
		&c.Params.WindStrength,
		&c.Params.StartleStrength,
		&c.Params.GustScale,
		&c.Params.GustStrength,
	} {
		if *f < 0 {
			*f = 0
		}
	}
	return c
}
