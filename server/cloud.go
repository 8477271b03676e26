// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"log"
	"time"
)

// Cloud is where a hub records its passes and publishes terrain snapshots.
type Cloud interface {
	fmt.Stringer
	UpdateServer(clients int) error
	RecordPass(seed int64, size int, result erosion.Result) error
	UploadTerrainSnapshot(data []byte) error // takes an encoded PNG
	UpdatePeriod() time.Duration
}

// Offline is a Cloud that discards everything.
type Offline struct{}

func (offline Offline) String() string {
	return "offline"
}

func (offline Offline) UpdateServer(clients int) error {
	return nil
}

func (offline Offline) RecordPass(seed int64, size int, result erosion.Result) error {
	return nil
}

func (offline Offline) UploadTerrainSnapshot(data []byte) error {
	return nil
}

func (offline Offline) UpdatePeriod() time.Duration {
	return time.Hour
}

// status is served by ServeIndex.
type status struct {
	Clients int    `json:"clients"`
	Bots    int    `json:"bots"`
	Clouds  int    `json:"clouds"`
	Size    int    `json:"size"`
	Seed    int64  `json:"seed"`
	Passes  int    `json:"passes"`
	Drops   int    `json:"drops"`
	Steps   int    `json:"steps"`
	Cloud   string `json:"cloud"`
}

// Cloud records the passes since the last call and refreshes the status.
func (h *Hub) Cloud() {
	clients, bots := h.clients.Count()

	if h.pendingPasses > 0 {
		// Copy, the goroutine must not touch hub state
		seed, size, pending := h.noise.Seed, h.field.Size(), h.pending
		go func() {
			if err := h.cloud.RecordPass(seed, size, pending); err != nil {
				log.Println("Error recording pass:", err)
			}
		}()
		h.pending = erosion.Result{}
		h.pendingPasses = 0
	}

	statusJSON, err := json.Marshal(status{
		Clients: clients,
		Bots:    bots,
		Clouds:  len(h.circles),
		Size:    h.field.Size(),
		Seed:    h.noise.Seed,
		Passes:  h.passes,
		Drops:   h.total.Drops,
		Steps:   h.total.Steps,
		Cloud:   h.cloud.String(),
	})
	if err == nil {
		h.statusJSON.Store(statusJSON)
	} else {
		log.Println("error marshaling status:", err)
	}

	if err = h.cloud.UpdateServer(clients); err != nil {
		log.Println("Error updating server:", err)
	}
}
