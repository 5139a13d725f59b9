package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// SimConfig is the demo binary's process configuration: motion/sensor/filter
// parameters, world geometry, and step count. It loads from an optional
// YAML file with flag overrides layered on top, the same split
// AleutianFOSS and viamrobotics/rdk use for their process config.
type SimConfig struct {
	Particles int     `mapstructure:"particles"`
	Steps     int     `mapstructure:"steps"`
	Seed      int64   `mapstructure:"seed"`
	WorldW    float64 `mapstructure:"world_width"`
	WorldH    float64 `mapstructure:"world_height"`

	MotionA1 float64 `mapstructure:"motion_a1"`
	MotionA2 float64 `mapstructure:"motion_a2"`
	MotionA3 float64 `mapstructure:"motion_a3"`
	MotionA4 float64 `mapstructure:"motion_a4"`

	SensorVariance float64 `mapstructure:"sensor_variance"`
	SensorMaxRay   float64 `mapstructure:"sensor_max_ray"`
	SensorSamples  int     `mapstructure:"sensor_samples"`
	SensorSize     int     `mapstructure:"sensor_size"`

	ResampleFrac      float64 `mapstructure:"resample_frac"`
	EliminationFactor float64 `mapstructure:"elimination_factor"`

	OutDir string `mapstructure:"out_dir"`
}

func defaultSimConfig() SimConfig {
	return SimConfig{
		Particles: 200,
		Steps:     40,
		Seed:      42,
		WorldW:    20,
		WorldH:    20,

		MotionA1: 0.02,
		MotionA2: 0.02,
		MotionA3: 0.05,
		MotionA4: 0.02,

		SensorVariance: 0.25,
		SensorMaxRay:   15,
		SensorSamples:  36,
		SensorSize:     360,

		ResampleFrac:      0.5,
		EliminationFactor: 0.01,

		OutDir: "plots",
	}
}

func loadSimConfig(v *viper.Viper) (SimConfig, error) {
	cfg := defaultSimConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("dpslam-sim: unmarshal config: %w", err)
	}
	if cfg.SensorSize%cfg.SensorSamples != 0 {
		return cfg, fmt.Errorf("dpslam-sim: sensor_size (%d) must be divisible by sensor_samples (%d)", cfg.SensorSize, cfg.SensorSamples)
	}
	return cfg, nil
}
