// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/terrain/compressed"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"github.com/SoftbearStudios/erosion/server/terrain/noise"
	"time"
)

// Erode runs a pass of drops raindrops under the current clouds.
func (h *Hub) Erode(drops int) (erosion.Result, error) {
	defer h.timeFunction("erode", time.Now())

	if h.cloudsChanged {
		h.rebuildSpawn()
	}

	cfg := h.erosion
	cfg.NumRaindrops = drops
	cfg.RecordPaths = false

	result, err := h.sim.Run(h.field, h.kernel, h.spawn, cfg)
	if err != nil {
		return result, err
	}
	if result.Drops == 0 {
		return result, nil
	}

	h.passes++
	h.lastPass = result
	h.total.Add(&result)
	h.pending.Add(&result)
	h.pendingPasses++
	h.terrainChanged = true
	return result, nil
}

// rebuildSpawn collects the clouds of all clients in list order.
func (h *Hub) rebuildSpawn() {
	h.cloudsChanged = false
	h.circles = h.circles[:0]
	for client := h.clients.First; client != nil; client = client.Data().Next {
		h.circles = append(h.circles, client.Data().Clouds...)
	}

	if len(h.circles) == 0 {
		h.spawn = erosion.UniformSpawn{Rand: h.rng}
	} else {
		h.spawn = erosion.NewCircleSpawn(h.circles, h.rng)
	}
}

// Regenerate replaces the terrain with a new one of the same size.
func (h *Hub) Regenerate(cfg noise.Config) error {
	defer h.timeFunction("regenerate", time.Now())

	cfg.Size = h.field.Size()
	generator, err := noise.New(cfg)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	var source terrain.Source = generator
	field, err := source.Generate(cfg.Size)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	// Keep the same instance so Field() holders see the new terrain.
	h.field.CopyFrom(field)
	h.noise = generator.Config()
	h.terrainChanged = true
	return nil
}

// Update sends the terrain to all real clients, if it changed.
func (h *Hub) Update() {
	if !h.terrainChanged && !h.cloudsChanged {
		return
	}
	defer h.timeFunction("update", time.Now())

	if h.cloudsChanged {
		h.rebuildSpawn()
	}
	h.terrainChanged = false

	data := compressed.Encode(h.field, h.precision)
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if !client.Bot() {
			client.Send(h.terrainUpdate(data))
		}
	}
	data.Pool()
}

// terrainUpdate creates an update for one client, encoding the terrain if data is nil.
func (h *Hub) terrainUpdate(data *terrain.Data) *TerrainUpdate {
	update := NewTerrainUpdate()
	if data == nil {
		update.Terrain = compressed.Encode(h.field, h.precision)
	} else {
		update.Terrain = data.Clone()
	}
	update.Clouds = append(update.Clouds, h.circles...)
	if h.passes > 0 {
		stats := passStats(&h.lastPass)
		update.Pass = &stats
	}
	update.Passes = h.passes
	update.Seed = h.noise.Seed
	return update
}
