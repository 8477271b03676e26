// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"github.com/SoftbearStudios/erosion/server/world"
	"math/rand"
)

// Rand is the source of randomness for spawning and direction resets.
// *rand.Rand implements it; tests may script a fixed sequence.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRand returns a seeded Rand.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// randomDirection returns a uniformly distributed unit vector.
func randomDirection(rng Rand) world.Vec2f {
	return world.ToAngle(float32(rng.Float64())).Vec2f()
}

// seedFrom derives a child seed, so batched drops get independent deterministic sources.
func seedFrom(rng Rand) int64 {
	return int64(rng.Float64() * (1 << 53))
}
