// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math/rand"
	"testing"
)

func TestToAngle(t *testing.T) {
	tests := []struct {
		turns    float32
		expected Vec2f
	}{
		{0, Vec2f{X: 1}},
		{0.25, Vec2f{Y: 1}},
		{0.5, Vec2f{X: -1}},
		{0.75, Vec2f{Y: -1}},
	}

	for _, test := range tests {
		vec := ToAngle(test.turns).Vec2f()
		if vec.Sub(test.expected).Length() > 1e-5 {
			t.Errorf("%v turns: expected %v, got %v", test.turns, test.expected, vec)
		}
	}
}

func BenchmarkAngle_Vec2f(b *testing.B) {
	const count = 1024
	angles := make([]Angle, count)
	for i := range angles {
		angles[i] = ToAngle(rand.Float32())
	}
	b.ResetTimer()

	var acc Vec2f
	for i := 0; i < b.N; i++ {
		acc = acc.Add(angles[i&(count-1)].Vec2f())
	}
	_ = acc
}
