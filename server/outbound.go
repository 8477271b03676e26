// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"sync"
)

type (
	// PassStats are the statistics of an erosion pass, without drop paths.
	PassStats struct {
		Drops      int     `json:"drops"`
		Steps      int     `json:"steps"`
		OffMap     int     `json:"offMap"`
		Evaporated int     `json:"evaporated"`
		Exhausted  int     `json:"exhausted"`
		Eroded     float32 `json:"eroded"`
		Deposited  float32 `json:"deposited"`
	}

	// TerrainUpdate is a snapshot of the terrain and where it is raining.
	TerrainUpdate struct {
		Terrain *terrain.Data    `json:"terrain,omitempty"`
		Clouds  []erosion.Circle `json:"clouds,omitempty"`
		Pass    *PassStats       `json:"pass,omitempty"` // most recent pass
		Passes  int              `json:"passes"`
		Seed    int64            `json:"seed"`
	}
)

func init() {
	registerOutbound(
		&TerrainUpdate{},
	)
}

func passStats(result *erosion.Result) PassStats {
	return PassStats{
		Drops:      result.Drops,
		Steps:      result.Steps,
		OffMap:     result.OffMap,
		Evaporated: result.Evaporated,
		Exhausted:  result.Exhausted,
		Eroded:     float32(result.Eroded),
		Deposited:  float32(result.Deposited),
	}
}

var terrainUpdatePool = sync.Pool{
	New: func() interface{} {
		return &TerrainUpdate{
			Clouds: make([]erosion.Circle, 0, maxClientClouds),
		}
	},
}

func NewTerrainUpdate() *TerrainUpdate {
	return terrainUpdatePool.Get().(*TerrainUpdate)
}

// Pool Uses pointers for reuse in pool
func (update *TerrainUpdate) Pool() {
	// Terrain has its own pool
	if update.Terrain != nil {
		update.Terrain.Pool()
	}

	*update = TerrainUpdate{
		Clouds: update.Clouds[:0],
	}
	terrainUpdatePool.Put(update)
}
