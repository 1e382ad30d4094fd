package flock

import (
	"strconv"

	"flocklab/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("boids", "Boids", w.cfg.Boids),
				intParam("frame_memory", "Frame memory", w.cfg.FrameMemory),
			},
		},
		{
			Name: "Steering",
			Params: []core.Parameter{
				floatParam("desired_separation", "Desired separation", params.DesiredSeparation),
				floatParam("neighbour_dist", "Neighbour distance", params.NeighbourDist),
				floatParam("max_speed", "Max speed", params.MaxSpeed),
				floatParam("max_force", "Max force", params.MaxForce),
			},
		},
		{
			Name: "Weather",
			Params: []core.Parameter{
				floatParam("wind_strength", "Wind strength", params.WindStrength),
				floatParam("startle_strength", "Startle strength", params.StartleStrength),
				floatParam("gust_scale", "Gust scale", params.GustScale),
				floatParam("gust_strength", "Gust strength", params.GustStrength),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
