// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"fmt"
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/dustin/go-humanize"
	"image/png"
	"log"
	"runtime"
	"time"
)

// snapshotRelief is the hillshading of uploaded snapshots.
const snapshotRelief = 64

// Debug prints debugging info to console and tmp files.
func (h *Hub) Debug() {
	fmt.Printf("Debug [%v] %s\n", time.Now().Format(time.UnixDate), h.cloud)
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	fmt.Printf(" - memstats: %s/%s\n", humanize.Bytes(stats.HeapInuse), humanize.Bytes(stats.NextGC))

	clients, bots := h.clients.Count()
	fmt.Printf(" - clients: %d, bots: %d, clouds: %d\n", clients, bots, len(h.circles))

	lo, hi := h.field.Range()
	fmt.Printf(" - terrain: %dx%d, seed: %d, height: [%.02f, %.02f], volume: %.01f\n",
		h.field.Size(), h.field.Size(), h.noise.Seed, lo, hi, h.field.Sum())

	fmt.Printf(" - passes: %s, drops: %s, steps: %s, eroded: %.02f, deposited: %.02f, clipped: %.02f\n",
		humanize.Comma(int64(h.passes)), humanize.Comma(int64(h.total.Drops)), humanize.Comma(int64(h.total.Steps)),
		h.total.Eroded, h.total.Deposited, h.total.Clipped)

	// Function benchmarks
	var totalDuration time.Duration

	fmt.Print(" - ")
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]

		duration := bench.reset()
		totalDuration += duration

		fmt.Print(bench.name, ": ", duration, ", ")
	}
	fmt.Println("total:", totalDuration)

	_ = AppendLog("/tmp/erosion.log", []interface{}{
		unixMillis(),
		clients,
		bots,
		h.passes,
		h.total.Drops,
		lo,
		hi,
	})
}

// SnapshotTerrain uploads a rendering of the terrain to the cloud.
func (h *Hub) SnapshotTerrain() {
	if _, offline := h.cloud.(Offline); offline {
		return
	}

	img := terrain.Render(h.field, terrain.RenderOptions{Relief: snapshotRelief})

	// Encoding and uploading don't touch the field
	go func() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			log.Println("Error encoding snapshot:", err)
			return
		}
		if err := h.cloud.UploadTerrainSnapshot(buf.Bytes()); err != nil {
			log.Println("Error uploading snapshot:", err)
		}
	}()
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
