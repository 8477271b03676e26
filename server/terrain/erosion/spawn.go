// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"math"
	"sort"
)

// SpawnSource supplies raindrop starting positions in normalized [0, 1]^2 terrain space.
// The simulator scales samples by Size-2 and makes no assumption about their distribution.
type SpawnSource interface {
	Sample() (x, y float64)
}

// UniformSpawn samples uniformly over the whole terrain.
type UniformSpawn struct {
	Rand Rand
}

func (spawn UniformSpawn) Sample() (x, y float64) {
	return spawn.Rand.Float64(), spawn.Rand.Float64()
}

// PointSpawn always returns the same position.
type PointSpawn struct {
	X, Y float64
}

func (spawn PointSpawn) Sample() (x, y float64) {
	return spawn.X, spawn.Y
}

// Circle is a region of terrain where rain falls (e.g. under a cloud), in normalized terrain space.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// CircleSpawn samples uniformly inside a set of circles, choosing each circle with
// probability proportional to its area. With no circles it falls back to UniformSpawn.
type CircleSpawn struct {
	circles    []Circle
	cumulative []float64 // running sum of areas
	rng        Rand
}

// NewCircleSpawn ignores circles without a positive radius.
func NewCircleSpawn(circles []Circle, rng Rand) *CircleSpawn {
	spawn := &CircleSpawn{rng: rng}
	var total float64
	for _, c := range circles {
		if !(c.Radius > 0) {
			continue
		}
		total += c.Area()
		spawn.circles = append(spawn.circles, c)
		spawn.cumulative = append(spawn.cumulative, total)
	}
	return spawn
}

// Circles returns the circles that can be sampled.
func (spawn *CircleSpawn) Circles() []Circle {
	return spawn.circles
}

func (spawn *CircleSpawn) Sample() (x, y float64) {
	if len(spawn.circles) == 0 {
		return UniformSpawn{Rand: spawn.rng}.Sample()
	}

	total := spawn.cumulative[len(spawn.cumulative)-1]
	i := sort.SearchFloat64s(spawn.cumulative, spawn.rng.Float64()*total)
	if i == len(spawn.circles) {
		i--
	}
	c := spawn.circles[i]

	// sqrt keeps the density uniform over the disk.
	angle := spawn.rng.Float64() * 2 * math.Pi
	dist := c.Radius * math.Sqrt(spawn.rng.Float64())
	sin, cos := math.Sincos(angle)

	return clamp01(c.X + cos*dist), clamp01(c.Y + sin*dist)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
