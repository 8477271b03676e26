// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"github.com/SoftbearStudios/erosion/server/terrain"
	"github.com/SoftbearStudios/erosion/server/terrain/compressed"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"github.com/SoftbearStudios/erosion/server/terrain/noise"
	"github.com/dustin/go-humanize"
	"image/png"
	"log"
	"os"
	"runtime/pprof"
	"time"
)

func main() {
	noiseConfig := noise.DefaultConfig()
	erosionConfig := erosion.DefaultConfig()

	var (
		cpuProfile string
		out        string
		backend    string
		seed       int64
		relief     float64
		precision  uint
	)

	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&out, "out", "out.png", "output PNG `file`")
	flag.Float64Var(&relief, "relief", 64, "hillshading relief, 0 to disable")
	flag.UintVar(&precision, "precision", compressed.DefaultPrecision, "bits per sample when reporting compressed size")

	flag.IntVar(&noiseConfig.Size, "size", noiseConfig.Size, "width and height of the terrain")
	flag.Int64Var(&noiseConfig.Seed, "seed", noiseConfig.Seed, "terrain seed")
	flag.IntVar(&noiseConfig.Octaves, "octaves", 6, "noise octaves")
	flag.Float64Var(&noiseConfig.Frequency, "frequency", 4, "noise frequency")
	flag.Float64Var(&noiseConfig.Amplitude, "amplitude", 32, "noise amplitude")
	flag.Float64Var(&noiseConfig.OffsetX, "offset-x", 0, "noise offset")
	flag.Float64Var(&noiseConfig.OffsetY, "offset-y", 0, "noise offset")
	flag.StringVar(&backend, "noise", string(noiseConfig.Backend), "noise backend (perlin or simplex)")

	flag.IntVar(&erosionConfig.NumRaindrops, "drops", erosionConfig.NumRaindrops, "number of raindrops, 0 to skip erosion")
	flag.IntVar(&erosionConfig.Radius, "radius", erosionConfig.Radius, "erosion radius")
	flag.IntVar(&erosionConfig.MaxSteps, "steps", erosionConfig.MaxSteps, "maximum steps per raindrop")
	flag.IntVar(&erosionConfig.Workers, "workers", erosionConfig.Workers, "workers for batched passes, 1 is sequential")
	flag.Int64Var(&seed, "rain-seed", 1, "raindrop seed")
	flag.Parse()

	noiseConfig.Backend = noise.Backend(backend)

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(noiseConfig, erosionConfig, seed, out, float32(relief), uint8(precision)); err != nil {
		log.Fatal(err)
	}
}

func run(noiseConfig noise.Config, erosionConfig erosion.Config, seed int64, out string, relief float32, precision uint8) error {
	start := time.Now()
	field, err := noise.Generate(noiseConfig)
	if err != nil {
		return err
	}
	before := field.Sum()
	log.Printf("generated %dx%d terrain in %v\n", field.Size(), field.Size(), time.Since(start))

	kernel, err := erosion.NewKernel(erosionConfig.Radius)
	if err != nil {
		return err
	}

	start = time.Now()
	rng := erosion.NewRand(seed)
	result, err := erosion.NewSimulator(rng).RunContext(context.Background(), field, kernel, erosion.UniformSpawn{Rand: rng}, erosionConfig)
	if err != nil {
		return err
	}
	log.Printf("eroded with %s drops, %s steps in %v\n",
		humanize.Comma(int64(result.Drops)), humanize.Comma(int64(result.Steps)), time.Since(start))
	log.Printf(" - off map: %s, evaporated: %s, exhausted: %s\n",
		humanize.Comma(int64(result.OffMap)), humanize.Comma(int64(result.Evaporated)), humanize.Comma(int64(result.Exhausted)))
	log.Printf(" - eroded: %.02f, deposited: %.02f, sediment: %.02f, clipped: %.02f, volume change: %.02f\n",
		result.Eroded, result.Deposited, result.Sediment, result.Clipped, field.Sum()-before)

	data := compressed.Encode(field, precision)
	log.Printf(" - compressed: %s of %s\n", humanize.Bytes(uint64(len(data.Data))), humanize.Bytes(uint64(data.Length)))
	data.Pool()

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	defer file.Close()

	img := terrain.Render(field, terrain.RenderOptions{Relief: relief})
	if err = png.Encode(file, img); err != nil {
		return err
	}
	return file.Close()
}
