// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func BenchmarkVec2f_Norm(b *testing.B) {
	const count = 1024
	vectors := make([]Vec2f, count)
	for i := range vectors {
		vectors[i] = Vec2f{X: rand.Float32()*100 - 50, Y: rand.Float32()*100 - 50}
	}
	b.ResetTimer()

	var acc Vec2f
	for i := 0; i < b.N; i++ {
		acc = acc.Add(vectors[i&(count-1)].Norm())
	}
	_ = acc
}

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.0001
}

func TestVec2f_Norm(t *testing.T) {
	tests := []Vec2f{
		{1, 0},
		{3, 4},
		{-0.001, 0.002},
		{-50, -50},
	}

	for _, vec := range tests {
		if n := vec.Norm(); !approx(n.Length(), 1) {
			t.Errorf("expected %v.Norm() to have length 1, got %v", vec, n.Length())
		}
	}

	if n := (Vec2f{}).Norm(); !n.IsZero() {
		t.Errorf("expected zero vector to stay zero, got %v", n)
	}
}

func TestVec2f_Cell(t *testing.T) {
	tests := []struct {
		vec     Vec2f
		cell    Vec2i
		nearest Vec2i
	}{
		{Vec2f{0, 0}, Vec2i{0, 0}, Vec2i{0, 0}},
		{Vec2f{1.25, 3.75}, Vec2i{1, 3}, Vec2i{1, 4}},
		{Vec2f{6, 0.5}, Vec2i{6, 0}, Vec2i{6, 1}},
		{Vec2f{-0.25, 2.49}, Vec2i{-1, 2}, Vec2i{0, 2}},
	}

	for _, test := range tests {
		if cell := test.vec.Cell(); cell != test.cell {
			t.Errorf("expected %v.Cell(): %v, got %v", test.vec, test.cell, cell)
		}
		if nearest := test.vec.Nearest(); nearest != test.nearest {
			t.Errorf("expected %v.Nearest(): %v, got %v", test.vec, test.nearest, nearest)
		}
	}

	fract := Vec2f{1.25, 3.75}.Fract()
	if !approx(fract.X, 0.25) || !approx(fract.Y, 0.75) {
		t.Errorf("expected fract (0.25, 0.75), got %v", fract)
	}
}

func TestBlerp(t *testing.T) {
	if h := Blerp(0, 1, 2, 3, 0, 0); h != 0 {
		t.Error("expected corner 00, got", h)
	}
	if h := Blerp(0, 1, 2, 3, 1, 1); h != 3 {
		t.Error("expected corner 11, got", h)
	}
	if h := Blerp(0, 1, 2, 3, 0.5, 0.5); !approx(h, 1.5) {
		t.Error("expected center 1.5, got", h)
	}
}
