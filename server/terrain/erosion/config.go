// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"fmt"
)

// Config holds the parameters of one erosion pass.
type Config struct {
	// Inertia in [0, 1] trades the previous direction against the downhill gradient.
	Inertia float32 `json:"inertia"`
	// Capacity scales how much sediment a drop can carry.
	Capacity float32 `json:"capacity"`
	// Deposition in [0, 1] is the fraction of excess sediment dropped per step.
	Deposition float32 `json:"deposition"`
	// Erosion in [0, 1] is the fraction of free capacity filled per step.
	Erosion float32 `json:"erosion"`
	// Evaporation in [0, 1) is the fraction of water lost per step.
	Evaporation float32 `json:"evaporation"`
	// Radius of the erosion kernel in cells.
	Radius int `json:"radius"`
	// MinSlope keeps capacity from collapsing on flat or uphill terrain.
	MinSlope float32 `json:"minSlope"`
	Gravity  float32 `json:"gravity"`
	MaxSteps int     `json:"maxSteps"`

	NumRaindrops int `json:"numRaindrops"`

	InitialVelocity float32 `json:"initialVelocity"`
	InitialWater    float32 `json:"initialWater"`

	// Workers > 1 runs drops in deterministic parallel batches of BatchSize.
	// Batched passes do not reproduce sequential results bit for bit.
	Workers   int `json:"workers"`
	BatchSize int `json:"batchSize"`

	// RecordPaths records every committed drop position in Result.Paths.
	RecordPaths bool `json:"recordPaths"`
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		Inertia:         0.1,
		Capacity:        10,
		Deposition:      0.3,
		Erosion:         0.3,
		Evaporation:     0.001,
		Radius:          5,
		MinSlope:        0.1,
		Gravity:         20,
		MaxSteps:        30,
		NumRaindrops:    10000,
		InitialVelocity: 5,
		InitialWater:    1,
		Workers:         1,
		BatchSize:       256,
	}
}

// ConfigError is an invalid erosion parameter. It is returned before anything is mutated.
type ConfigError struct {
	Field  string
	Reason string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("erosion: invalid %s: %s", err.Field, err.Reason)
}

func invalid(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// inRange also rejects NaN.
func inRange(f, lo, hi float32) bool {
	return f >= lo && f <= hi
}

// Validate checks every parameter. Nothing is clamped silently.
func (cfg Config) Validate() error {
	switch {
	case !inRange(cfg.Inertia, 0, 1):
		return invalid("Inertia", "%v not in [0, 1]", cfg.Inertia)
	case !(cfg.Capacity > 0):
		return invalid("Capacity", "%v is not positive", cfg.Capacity)
	case !inRange(cfg.Deposition, 0, 1):
		return invalid("Deposition", "%v not in [0, 1]", cfg.Deposition)
	case !inRange(cfg.Erosion, 0, 1):
		return invalid("Erosion", "%v not in [0, 1]", cfg.Erosion)
	case !(cfg.Evaporation >= 0 && cfg.Evaporation < 1):
		return invalid("Evaporation", "%v not in [0, 1)", cfg.Evaporation)
	case cfg.Radius < 0:
		return invalid("Radius", "%d is negative", cfg.Radius)
	case !(cfg.MinSlope > 0):
		return invalid("MinSlope", "%v is not positive", cfg.MinSlope)
	case !(cfg.Gravity >= 0):
		return invalid("Gravity", "%v is negative", cfg.Gravity)
	case cfg.MaxSteps < 0:
		return invalid("MaxSteps", "%d is negative", cfg.MaxSteps)
	case cfg.NumRaindrops < 0:
		return invalid("NumRaindrops", "%d is negative", cfg.NumRaindrops)
	case !(cfg.InitialVelocity >= 0):
		return invalid("InitialVelocity", "%v is negative", cfg.InitialVelocity)
	case !(cfg.InitialWater > 0):
		return invalid("InitialWater", "%v is not positive", cfg.InitialWater)
	case cfg.Workers < 0:
		return invalid("Workers", "%d is negative", cfg.Workers)
	case cfg.Workers > 1 && cfg.BatchSize < 1:
		return invalid("BatchSize", "%d < 1 with %d workers", cfg.BatchSize, cfg.Workers)
	}
	return nil
}
