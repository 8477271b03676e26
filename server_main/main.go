// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/SoftbearStudios/erosion/server"
	"github.com/SoftbearStudios/erosion/server/cloud"
	"github.com/SoftbearStudios/erosion/server/terrain/noise"
	"golang.org/x/net/netutil"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"time"
)

func main() {
	options := server.DefaultHubOptions()

	var (
		aws            bool
		dataDir        string
		port           int
		maxConnections int
		backend        string
	)

	flag.BoolVar(&aws, "aws", false, "record passes and snapshots to AWS, configured by EC2 user data")
	flag.StringVar(&dataDir, "data", "", "record passes and snapshots to a local directory")
	flag.IntVar(&port, "port", 8192, "http service port, negative to only simulate")
	flag.IntVar(&maxConnections, "max-connections", 256, "maximum number of inbound TCP connections")

	flag.IntVar(&options.Noise.Size, "size", options.Noise.Size, "width and height of the terrain")
	flag.Int64Var(&options.Noise.Seed, "seed", options.Noise.Seed, "terrain seed")
	flag.IntVar(&options.Noise.Octaves, "octaves", options.Noise.Octaves, "noise octaves")
	flag.Float64Var(&options.Noise.Frequency, "frequency", options.Noise.Frequency, "noise frequency")
	flag.Float64Var(&options.Noise.Amplitude, "amplitude", options.Noise.Amplitude, "noise amplitude")
	flag.StringVar(&backend, "noise", string(options.Noise.Backend), "noise backend (perlin or simplex)")

	flag.IntVar(&options.Erosion.NumRaindrops, "drops", options.Erosion.NumRaindrops, "raindrops per erosion pass")
	flag.IntVar(&options.Erosion.Radius, "radius", options.Erosion.Radius, "erosion radius")
	flag.IntVar(&options.Erosion.Workers, "workers", options.Erosion.Workers, "workers for batched passes, 1 is sequential")
	flag.DurationVar(&options.ErodePeriod, "erode-period", options.ErodePeriod, "time between erosion passes")
	flag.IntVar(&options.MinClouds, "clouds", 4, "number of drifting rain clouds")
	flag.Parse()

	options.Noise.Backend = noise.Backend(backend)

	switch {
	case aws:
		c, err := cloud.New()
		if err != nil {
			// Cloud is not required for server to function, just log an error
			log.Printf("Cloud error: %v\n", err)
		} else {
			options.Cloud = c
		}
	case dataDir != "":
		c, err := cloud.NewLocal(dataDir)
		if err != nil {
			log.Printf("Cloud error: %v\n", err)
		} else {
			options.Cloud = c
		}
	}
	log.Println("Cloud:", options.Cloud)

	hub, err := server.NewHub(options)
	if err != nil {
		log.Fatal("invalid options: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	if port < 0 {
		log.Println("erosion simulation started")
		<-done
		return
	}

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/ws", hub.ServeSocket)

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	l = netutil.LimitListener(l, maxConnections)

	srv := &http.Server{ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-done
		_ = srv.Close()
	}()

	log.Printf("erosion server started on http://localhost:%d\n", port)
	if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
		log.Fatal("Serve: ", err)
	}
}
