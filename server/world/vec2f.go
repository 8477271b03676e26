// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math"
)

// Vec2f is a position or direction in terrain space (grid cell units).
type Vec2f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (vec Vec2f) Mul(factor float32) Vec2f {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec Vec2f) Div(divisor float32) Vec2f {
	return vec.Mul(1.0 / divisor)
}

func (vec Vec2f) AddScaled(otherVec Vec2f, factor float32) Vec2f {
	vec.X += otherVec.X * factor
	vec.Y += otherVec.Y * factor
	return vec
}

func (vec Vec2f) Add(otherVec Vec2f) Vec2f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

func (vec Vec2f) Sub(otherVec Vec2f) Vec2f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2f) Dot(otherVec Vec2f) float32 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y
}

func (vec Vec2f) Length() float32 {
	return math32.Hypot(vec.X, vec.Y)
}

func (vec Vec2f) IsZero() bool {
	return vec.X == 0 && vec.Y == 0
}

// Norm returns a unit vector. The zero vector stays zero instead of turning into NaN.
func (vec Vec2f) Norm() Vec2f {
	length := vec.Length()
	if length == 0 {
		return Vec2f{}
	}
	return vec.Div(length)
}

func (vec Vec2f) Lerp(otherVec Vec2f, factor float32) Vec2f {
	vec.X = Lerp(vec.X, otherVec.X, factor)
	vec.Y = Lerp(vec.Y, otherVec.Y, factor)
	return vec
}

func (vec Vec2f) Floor() Vec2f {
	// Use math.Floor instead because it uses assembly
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	return vec
}

func (vec Vec2f) Round() Vec2f {
	vec.X = float32(math.Round(float64(vec.X)))
	vec.Y = float32(math.Round(float64(vec.Y)))
	return vec
}

// Clamp clamps both components into [minimum, maximum].
func (vec Vec2f) Clamp(minimum, maximum float32) Vec2f {
	vec.X = Clamp(vec.X, minimum, maximum)
	vec.Y = Clamp(vec.Y, minimum, maximum)
	return vec
}

// Fract is the offset of vec inside the cell returned by Floor.
func (vec Vec2f) Fract() Vec2f {
	return vec.Sub(vec.Floor())
}

// Cell returns the integer grid point at or below vec.
func (vec Vec2f) Cell() Vec2i {
	f := vec.Floor()
	return Vec2i{X: int(f.X), Y: int(f.Y)}
}

// Nearest returns the closest integer grid point.
func (vec Vec2f) Nearest() Vec2i {
	r := vec.Round()
	return Vec2i{X: int(r.X), Y: int(r.Y)}
}

// Vec2i is an integer grid point.
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (vec Vec2i) Add(otherVec Vec2i) Vec2i {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

func (vec Vec2i) Vec2f() Vec2f {
	return Vec2f{X: float32(vec.X), Y: float32(vec.Y)}
}
