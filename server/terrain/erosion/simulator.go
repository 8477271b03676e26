// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package erosion mutates a HeightField with a particle based hydraulic erosion simulation.
package erosion

import (
	"context"
	"errors"
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/world"
)

var (
	ErrNilField  = errors.New("erosion: nil height field")
	ErrNilKernel = errors.New("erosion: nil kernel")
	ErrNilSpawn  = errors.New("erosion: nil spawn source")
)

// Result summarizes one pass.
type Result struct {
	Drops      int `json:"drops"`
	Steps      int `json:"steps"`
	OffMap     int `json:"offMap"`
	Evaporated int `json:"evaporated"`
	Exhausted  int `json:"exhausted"`

	// Eroded and Deposited are the height removed from and added to the field.
	Eroded    float64 `json:"eroded"`
	Deposited float64 `json:"deposited"`
	// Clipped is erosion that was credited to drops but not removed from the field,
	// because the kernel overhung the border or a cell had less height than its share.
	Clipped float64 `json:"clipped"`
	// Sediment is the load carried by all drops when they died.
	Sediment float64 `json:"sediment"`

	// Paths holds the committed positions of each drop if Config.RecordPaths is set.
	Paths [][]world.Vec2f `json:"paths,omitempty"`
}

// Net is the height the field lost: Sediment - Clipped up to rounding.
func (result *Result) Net() float64 {
	return result.Eroded - result.Deposited
}

// Add accumulates other's statistics, e.g. over several passes. Paths are not kept.
func (result *Result) Add(other *Result) {
	result.Drops += other.Drops
	result.Steps += other.Steps
	result.OffMap += other.OffMap
	result.Evaporated += other.Evaporated
	result.Exhausted += other.Exhausted
	result.Eroded += other.Eroded
	result.Deposited += other.Deposited
	result.Clipped += other.Clipped
	result.Sediment += other.Sediment
}

func (result *Result) add(fate Fate, drop *Drop) {
	result.Drops++
	result.Sediment += float64(drop.Sediment)
	switch fate {
	case OffMap:
		result.OffMap++
	case Evaporated:
		result.Evaporated++
	case Exhausted:
		result.Exhausted++
	}
}

func (result *Result) addStepper(s *stepper) {
	result.Steps += s.steps
	result.Eroded += s.eroded
	result.Deposited += s.deposited
	result.Clipped += s.clipped
}

// Simulator runs erosion passes. It is not safe for concurrent use; neither is the field.
type Simulator struct {
	rng Rand
}

// NewSimulator creates a Simulator drawing direction resets and batch seeds from rng.
func NewSimulator(rng Rand) *Simulator {
	return &Simulator{rng: rng}
}

// Run runs one pass. See RunContext.
func (sim *Simulator) Run(field *terrain.HeightField, kernel *Kernel, spawn SpawnSource, cfg Config) (Result, error) {
	return sim.RunContext(context.Background(), field, kernel, spawn, cfg)
}

// RunContext runs NumRaindrops drops of at most MaxSteps each, mutating field in place.
// Invalid parameters are rejected before the field is touched. Batched passes check ctx
// between batches; a cancelled pass returns ctx.Err() with the batches already merged.
func (sim *Simulator) RunContext(ctx context.Context, field *terrain.HeightField, kernel *Kernel, spawn SpawnSource, cfg Config) (Result, error) {
	if err := sim.check(field, kernel, spawn, cfg); err != nil {
		return Result{}, err
	}

	if cfg.NumRaindrops == 0 || cfg.MaxSteps == 0 {
		return Result{}, nil
	}

	if cfg.Workers > 1 {
		return sim.runBatched(ctx, field, kernel, spawn, cfg)
	}
	return sim.runSequential(field, kernel, spawn, cfg), nil
}

func (sim *Simulator) check(field *terrain.HeightField, kernel *Kernel, spawn SpawnSource, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	switch {
	case field == nil:
		return ErrNilField
	case kernel == nil:
		return ErrNilKernel
	case spawn == nil:
		return ErrNilSpawn
	case kernel.Radius() != cfg.Radius:
		return invalid("Radius", "kernel built for radius %d, config has %d", kernel.Radius(), cfg.Radius)
	}
	return nil
}

// runSequential runs drops one after another in spawn order, which is fully deterministic.
func (sim *Simulator) runSequential(field *terrain.HeightField, kernel *Kernel, spawn SpawnSource, cfg Config) Result {
	var result Result
	if cfg.RecordPaths {
		result.Paths = make([][]world.Vec2f, cfg.NumRaindrops)
	}

	s := &stepper{cfg: cfg, kernel: kernel, grid: field, rng: sim.rng}
	for i := 0; i < cfg.NumRaindrops; i++ {
		var path *[]world.Vec2f
		if cfg.RecordPaths {
			path = &result.Paths[i]
		}

		drop := s.spawn(spawn.Sample())
		fate := s.run(&drop, path)
		result.add(fate, &drop)
	}

	result.addStepper(s)
	return result
}
