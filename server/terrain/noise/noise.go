// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise2D is deterministic, continuous coherent noise in [0, 1].
type Noise2D interface {
	Eval2(x, y float64) float64
}

const (
	// perlinAlpha and perlinBeta only matter for perlin's internal octaves, of which one is used.
	perlinAlpha = 2.0
	perlinBeta  = 2.0
)

// perlinNoise remaps go-perlin's roughly [-1, 1] output into [0, 1].
type perlinNoise struct {
	p *perlin.Perlin
}

func (n perlinNoise) Eval2(x, y float64) float64 {
	return clamp((n.p.Noise2D(x, y)+1)*0.5, 0, 1)
}

// NewNoise2D creates the noise function for a backend.
func NewNoise2D(backend Backend, seed int64) (Noise2D, error) {
	switch backend {
	case Perlin:
		return perlinNoise{p: perlin.NewPerlin(perlinAlpha, perlinBeta, 1, seed)}, nil
	case Simplex:
		return opensimplex.NewNormalized(seed), nil
	default:
		return nil, &ConfigError{Field: "Backend", Reason: "unknown backend " + string(backend)}
	}
}

// Generator generates a heightmap by summing octaves of noise (fractal Brownian motion).
type Generator struct {
	cfg   Config
	noise Noise2D
}

// New creates a new Generator from a validated config.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n, err := NewNoise2D(cfg.Backend, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, noise: n}, nil
}

// Config returns the generator's config.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate implements terrain.Source.Generate.
// Each octave doubles frequency and halves amplitude. Heights are not normalized.
func (g *Generator) Generate(size int) (*terrain.HeightField, error) {
	field, err := terrain.New(size)
	if err != nil {
		return nil, err
	}

	n := float64(size)
	samples := field.Samples()

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			x := float64(i) / n
			y := float64(j) / n

			var h float64
			frequency := g.cfg.Frequency
			amplitude := g.cfg.Amplitude
			for o := 0; o < g.cfg.Octaves; o++ {
				h += amplitude * g.noise.Eval2(x*frequency+g.cfg.OffsetX, y*frequency+g.cfg.OffsetY)
				frequency *= 2
				amplitude *= 0.5
			}

			samples[i+j*size] = float32(h)
		}
	}

	return field, nil
}

// Generate creates a HeightField of cfg.Size from cfg.
func Generate(cfg Config) (*terrain.HeightField, error) {
	g, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return g.Generate(cfg.Size)
}
