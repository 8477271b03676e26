// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"fmt"
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/terrain/compressed"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"github.com/SoftbearStudios/erosion/server/terrain/noise"
	"log"
	"sync/atomic"
	"time"
)

const (
	botPeriod      = time.Second / 4
	debugPeriod    = time.Second * 5
	updatePeriod   = time.Second / 2
	snapshotPeriod = time.Minute

	// encodeBotMessages makes BotClient.Send marshal json and check for errors.
	// Only useful for testing/benchmarking (drops performance significantly).
	encodeBotMessages = false
)

// HubOptions configures a Hub.
type HubOptions struct {
	// Cloud receives pass records and snapshots; nil means Offline.
	Cloud Cloud
	// Noise generates the initial terrain.
	Noise noise.Config
	// Erosion is used for every pass. NumRaindrops is the number per ErodePeriod.
	Erosion erosion.Config
	// Seed seeds raindrop spawning and direction resets.
	Seed int64
	// ErodePeriod is the time between periodic passes.
	ErodePeriod time.Duration
	// MinClouds is how many bot clouds drift over the terrain.
	MinClouds int
	// MaxRain limits the drops of a single rain message.
	MaxRain int
	// Precision of terrain updates, see compressed.Encode.
	Precision uint8
}

// DefaultHubOptions erodes a default terrain offline.
func DefaultHubOptions() HubOptions {
	noiseConfig := noise.DefaultConfig()
	noiseConfig.Octaves = 6
	noiseConfig.Frequency = 4
	noiseConfig.Amplitude = 32

	cfg := erosion.DefaultConfig()
	cfg.NumRaindrops = 1000

	return HubOptions{
		Cloud:       Offline{},
		Noise:       noiseConfig,
		Erosion:     cfg,
		Seed:        terrain.Seed,
		ErodePeriod: time.Second,
		MaxRain:     50000,
		Precision:   compressed.DefaultPrecision,
	}
}

// Hub owns the terrain and the set of active clients, runs erosion passes and
// broadcasts the terrain to clients. Everything but statusJSON is only accessed
// on the hub goroutine.
type Hub struct {
	// Terrain state
	field     *terrain.HeightField
	noise     noise.Config
	erosion   erosion.Config
	kernel    *erosion.Kernel
	sim       *erosion.Simulator
	rng       erosion.Rand
	precision uint8

	// Rain comes from clouds of clients, rebuilt when changed
	spawn         erosion.SpawnSource
	circles       []erosion.Circle
	cloudsChanged bool

	// Statistics
	passes         int
	lastPass       erosion.Result
	total          erosion.Result
	pending        erosion.Result // not yet recorded to cloud
	pendingPasses  int
	terrainChanged bool

	clients   ClientList // implemented as double-linked list
	minClouds int
	maxRain   int

	// Cloud (and things that are served atomically by HTTP)
	cloud      Cloud
	statusJSON atomic.Value

	// funcBenches are benchmarks of core Hub functions.
	funcBenches []funcBench

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	erodeTicker    *time.Ticker
	erodePeriod    time.Duration
	updateTicker   *time.Ticker
	cloudTicker    *time.Ticker
	debugTicker    *time.Ticker
	botsTicker     *time.Ticker
	snapshotTicker *time.Ticker
}

// NewHub generates the terrain. Tickers only start in Run.
func NewHub(options HubOptions) (*Hub, error) {
	if err := options.Erosion.Validate(); err != nil {
		return nil, err
	}
	kernel, err := erosion.NewKernel(options.Erosion.Radius)
	if err != nil {
		return nil, err
	}
	field, err := noise.Generate(options.Noise)
	if err != nil {
		return nil, err
	}
	if options.Cloud == nil {
		options.Cloud = Offline{}
	}
	if options.ErodePeriod <= 0 {
		return nil, fmt.Errorf("erode period %v is not positive", options.ErodePeriod)
	}

	rng := erosion.NewRand(options.Seed)
	return &Hub{
		field:       field,
		noise:       options.Noise,
		erosion:     options.Erosion,
		kernel:      kernel,
		sim:         erosion.NewSimulator(rng),
		rng:         rng,
		precision:   options.Precision,
		spawn:       erosion.UniformSpawn{Rand: rng},
		minClouds:   options.MinClouds,
		maxRain:     options.MaxRain,
		cloud:       options.Cloud,
		inbound:     make(chan SignedInbound, 16),
		register:    make(chan Client, 8+options.MinClouds),
		unregister:  make(chan Client, 16+options.MinClouds),
		erodePeriod: options.ErodePeriod,
	}, nil
}

// Run runs the hub until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	h.erodeTicker = time.NewTicker(h.erodePeriod)
	h.updateTicker = time.NewTicker(updatePeriod)
	h.cloudTicker = time.NewTicker(h.cloud.UpdatePeriod())
	h.debugTicker = time.NewTicker(debugPeriod)
	h.botsTicker = time.NewTicker(botPeriod)
	h.snapshotTicker = time.NewTicker(snapshotPeriod)

	defer func() {
		h.erodeTicker.Stop()
		h.updateTicker.Stop()
		h.cloudTicker.Stop()
		h.debugTicker.Stop()
		h.botsTicker.Stop()
		h.snapshotTicker.Stop()

		for client := h.clients.First; client != nil; client = h.clients.Remove(client) {
			client.Close()
		}
	}()

	h.Cloud()

	for {
		select {
		case <-ctx.Done():
			log.Println("hub stopped:", ctx.Err())
			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)

			for {
				// If not same hub the message is old
				if h == in.Client.Data().Hub {
					in.Inbound(h, in.Client)
				}

				if n--; n < 0 {
					break
				}

				in = <-h.inbound
			}
		case <-h.erodeTicker.C:
			if _, err := h.Erode(h.erosion.NumRaindrops); err != nil {
				log.Println("erode error:", err)
			}
		case <-h.updateTicker.C:
			h.Update()
		case <-h.botsTicker.C:
			h.Bots()
		case <-h.debugTicker.C:
			h.Debug()
		case <-h.snapshotTicker.C:
			h.SnapshotTerrain()
		case <-h.cloudTicker.C:
			h.Cloud()
		}
	}
}

// add registers a client and sends it the current terrain.
func (h *Hub) add(client Client) {
	h.clients.Add(client)
	client.Data().Hub = h
	client.Init()

	if len(client.Data().Clouds) > 0 {
		h.rebuildSpawn()
	}
	if !client.Bot() {
		client.Send(h.terrainUpdate(nil))
	}
}

func (h *Hub) remove(client Client) {
	client.Close()
	if len(client.Data().Clouds) > 0 {
		h.cloudsChanged = true
	}
	client.Data().Hub = nil
	h.clients.Remove(client)
}

// Field returns the terrain. Only use on the hub goroutine.
func (h *Hub) Field() *terrain.HeightField {
	return h.field
}
