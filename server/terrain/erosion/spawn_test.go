// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package erosion

import (
	"math"
	"testing"
)

func TestCircleSpawn_Sample(t *testing.T) {
	circles := []Circle{
		{X: 0.2, Y: 0.3, Radius: 0.1},
		{X: 0.95, Y: 0.95, Radius: 0.2}, // overhangs the terrain
		{X: 0.5, Y: 0.5, Radius: 0},     // ignored
	}
	spawn := NewCircleSpawn(circles, NewRand(1))

	if n := len(spawn.Circles()); n != 2 {
		t.Fatal("expected zero radius circle to be ignored, got", n, "circles")
	}

	var first, second int
	for i := 0; i < 10000; i++ {
		x, y := spawn.Sample()
		if x < 0 || x > 1 || y < 0 || y > 1 {
			t.Fatalf("sample (%v, %v) outside [0, 1]^2", x, y)
		}

		switch {
		case math.Hypot(x-0.2, y-0.3) <= 0.1+1e-9:
			first++
		case math.Hypot(x-0.95, y-0.95) <= 0.2+1e-9 || x == 1 || y == 1:
			second++
		default:
			t.Fatalf("sample (%v, %v) outside every circle", x, y)
		}
	}

	// Areas are 1:4.
	if ratio := float64(second) / float64(first); ratio < 3.5 || ratio > 4.5 {
		t.Errorf("expected about 4 times as many samples in the larger circle, got %v", ratio)
	}
}

func TestCircleSpawn_Empty(t *testing.T) {
	spawn := NewCircleSpawn(nil, NewRand(2))
	var sumX, sumY float64
	const n = 10000
	for i := 0; i < n; i++ {
		x, y := spawn.Sample()
		if x < 0 || x >= 1 || y < 0 || y >= 1 {
			t.Fatalf("sample (%v, %v) outside [0, 1)^2", x, y)
		}
		sumX += x
		sumY += y
	}

	if mx, my := sumX/n, sumY/n; math.Abs(mx-0.5) > 0.02 || math.Abs(my-0.5) > 0.02 {
		t.Errorf("expected uniform fallback with mean 0.5, got (%v, %v)", mx, my)
	}
}
