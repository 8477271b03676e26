// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"math"
)

// Kernel is a normalized radial falloff table spreading one erosion event over
// the (2r+1)*(2r+1) cells around its center. It is immutable once built.
type Kernel struct {
	radius  int
	side    int
	weights []float32
}

// NewKernel builds the weights max(0, r - |(dx, dy)|) / sum.
// Radius 0 is a single unit weight at the center, since the formula would be all zeros.
func NewKernel(radius int) (*Kernel, error) {
	if radius < 0 {
		return nil, invalid("Radius", "%d is negative", radius)
	}

	side := 2*radius + 1
	k := &Kernel{
		radius:  radius,
		side:    side,
		weights: make([]float32, side*side),
	}

	if radius == 0 {
		k.weights[0] = 1
		return k, nil
	}

	raw := make([]float64, len(k.weights))
	var sum float64
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			w := math.Max(0, float64(radius)-math.Hypot(float64(dx), float64(dy)))
			raw[k.index(dx, dy)] = w
			sum += w
		}
	}

	for i, w := range raw {
		k.weights[i] = float32(w / sum)
	}

	return k, nil
}

// MustKernel is NewKernel for radii known to be valid.
func MustKernel(radius int) *Kernel {
	k, err := NewKernel(radius)
	if err != nil {
		panic(err)
	}
	return k
}

func (k *Kernel) index(dx, dy int) int {
	return (dy+k.radius)*k.side + (dx + k.radius)
}

func (k *Kernel) Radius() int {
	return k.radius
}

// Side is the width and height of the table.
func (k *Kernel) Side() int {
	return k.side
}

// Weight at offset (dx, dy) from the center; offsets beyond the radius weigh 0.
func (k *Kernel) Weight(dx, dy int) float32 {
	if dx < -k.radius || dx > k.radius || dy < -k.radius || dy > k.radius {
		return 0
	}
	return k.weights[k.index(dx, dy)]
}

// Sum of all weights, 1 up to rounding.
func (k *Kernel) Sum() float32 {
	var sum float32
	for _, w := range k.weights {
		sum += w
	}
	return sum
}
