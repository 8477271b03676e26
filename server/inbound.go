// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"log"
	"math"
)

const (
	// maxClientClouds is how many clouds one client may place.
	maxClientClouds = 16
	// maxOctaves bounds regeneration cost.
	maxOctaves = 12
)

// Make sure to register in init function
type (
	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}

	// Rain runs an erosion pass right away, in addition to the periodic ones.
	Rain struct {
		Drops int `json:"drops"`
	}

	// Regenerate replaces the terrain with freshly generated noise.
	// Zero Octaves keeps the current number.
	Regenerate struct {
		Seed    int64   `json:"seed"`
		OffsetX float64 `json:"offsetX"`
		OffsetY float64 `json:"offsetY"`
		Octaves int     `json:"octaves"`
	}

	// SetClouds replaces the sender's clouds. Raindrops spawn under all
	// clouds, or anywhere if there are none.
	SetClouds struct {
		Clouds []erosion.Circle `json:"clouds"`
	}
)

func init() {
	registerInbound(
		Rain{},
		Regenerate{},
		SetClouds{},
	)
}

func (data Rain) Inbound(h *Hub, _ Client) {
	if data.Drops <= 0 {
		return
	}
	if data.Drops > h.maxRain {
		data.Drops = h.maxRain
	}
	if _, err := h.Erode(data.Drops); err != nil {
		log.Println("rain error:", err)
	}
}

func (data Regenerate) Inbound(h *Hub, _ Client) {
	if data.Octaves < 0 || data.Octaves > maxOctaves || !finite(data.OffsetX) || !finite(data.OffsetY) {
		return
	}

	cfg := h.noise
	cfg.Seed = data.Seed
	cfg.OffsetX = data.OffsetX
	cfg.OffsetY = data.OffsetY
	if data.Octaves != 0 {
		cfg.Octaves = data.Octaves
	}

	if err := h.Regenerate(cfg); err != nil {
		log.Println("regenerate error:", err)
	}
}

func (data SetClouds) Inbound(h *Hub, client Client) {
	if len(data.Clouds) > maxClientClouds {
		return
	}
	for _, c := range data.Clouds {
		if !validCloud(c) {
			return
		}
	}

	client.Data().Clouds = append(client.Data().Clouds[:0], data.Clouds...)
	h.cloudsChanged = true
}

func validCloud(c erosion.Circle) bool {
	return finite(c.X) && finite(c.Y) && c.X >= 0 && c.X <= 1 && c.Y >= 0 && c.Y <= 1 &&
		c.Radius > 0 && c.Radius <= 1
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
