// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"context"
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/world"
	"golang.org/x/sync/errgroup"
)

// batchDrop is one drop of a batch and everything it produced.
type batchDrop struct {
	x, y    float64
	seed    int64
	drop    Drop
	fate    Fate
	stepper stepper
	overlay *overlay
	path    []world.Vec2f
}

// runBatched splits drops into batches that all start from the same field.
// Spawn samples and seeds are drawn on the calling goroutine in drop order, each drop
// writes into its own overlay, and overlays are merged in drop order, so the outcome
// only depends on the seed and the batch size, never on scheduling.
func (sim *Simulator) runBatched(ctx context.Context, field *terrain.HeightField, kernel *Kernel, spawn SpawnSource, cfg Config) (Result, error) {
	var result Result
	if cfg.RecordPaths {
		result.Paths = make([][]world.Vec2f, 0, cfg.NumRaindrops)
	}

	batch := make([]batchDrop, 0, cfg.BatchSize)

	for start := 0; start < cfg.NumRaindrops; start += cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := world.MinInt(start+cfg.BatchSize, cfg.NumRaindrops)
		batch = batch[:0]
		for i := start; i < end; i++ {
			x, y := spawn.Sample()
			batch = append(batch, batchDrop{x: x, y: y, seed: seedFrom(sim.rng)})
		}

		var group errgroup.Group
		group.SetLimit(cfg.Workers)
		for i := range batch {
			b := &batch[i]
			group.Go(func() error {
				b.run(field, kernel, cfg)
				return nil
			})
		}
		_ = group.Wait()

		for i := range batch {
			b := &batch[i]
			result.Clipped += b.overlay.merge()
			result.add(b.fate, &b.drop)
			result.addStepper(&b.stepper)
			if cfg.RecordPaths {
				result.Paths = append(result.Paths, b.path)
			}
			b.overlay = nil
		}
	}

	return result, nil
}

func (b *batchDrop) run(field *terrain.HeightField, kernel *Kernel, cfg Config) {
	b.overlay = newOverlay(field)
	b.stepper = stepper{cfg: cfg, kernel: kernel, grid: b.overlay, rng: NewRand(b.seed)}

	var path *[]world.Vec2f
	if cfg.RecordPaths {
		path = &b.path
	}

	b.drop = b.stepper.spawn(b.x, b.y)
	b.fate = b.stepper.run(&b.drop, path)
}
