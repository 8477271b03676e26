// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"
	"github.com/SoftbearStudios/erosion/server/terrain"
)

// Backend selects the Noise2D implementation.
type Backend string

const (
	Perlin  Backend = "perlin"
	Simplex Backend = "simplex"
)

// Config holds heightmap generation parameters.
type Config struct {
	Size      int     `json:"size"`      // Width and height of the grid.
	Frequency float64 `json:"frequency"` // Frequency of the first octave over the whole grid.
	Amplitude float64 `json:"amplitude"` // Amplitude of the first octave.
	Octaves   int     `json:"octaves"`
	OffsetX   float64 `json:"offsetX"` // Offsets in noise space act as a seed.
	OffsetY   float64 `json:"offsetY"`
	Seed      int64   `json:"seed"` // Seed of the backend's permutation table.
	Backend   Backend `json:"backend"`
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		Size:      terrain.DefaultSize,
		Frequency: 1,
		Amplitude: 1,
		Octaves:   1,
		Seed:      terrain.Seed,
		Backend:   Perlin,
	}
}

// ConfigError is an invalid generation parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("noise: invalid %s: %s", err.Field, err.Reason)
}

// Validate checks every parameter before any generation happens.
func (cfg Config) Validate() error {
	switch {
	case cfg.Size < terrain.MinSize:
		return &ConfigError{Field: "Size", Reason: fmt.Sprintf("%d < %d", cfg.Size, terrain.MinSize)}
	case cfg.Octaves < 1:
		return &ConfigError{Field: "Octaves", Reason: fmt.Sprintf("%d < 1", cfg.Octaves)}
	case !(cfg.Frequency > 0):
		return &ConfigError{Field: "Frequency", Reason: fmt.Sprintf("%v is not positive", cfg.Frequency)}
	case !(cfg.Amplitude > 0):
		return &ConfigError{Field: "Amplitude", Reason: fmt.Sprintf("%v is not positive", cfg.Amplitude)}
	case cfg.Backend != Perlin && cfg.Backend != Simplex:
		return &ConfigError{Field: "Backend", Reason: fmt.Sprintf("unknown backend %q", cfg.Backend)}
	}
	return nil
}
