// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"github.com/SoftbearStudios/erosion/server/world"
	"github.com/go-gl/mathgl/mgl32"
	"image"
	"image/color"
)

type ColorVec [3]float32

var colors = [...]ColorVec{
	RGB(0, 50, 115),
	RGB(0, 75, 130),
	RGB(194, 178, 128),
	RGB(90, 180, 30),
	RGB(105, 110, 115),
	Gray(220),
}

// light is the direction towards the sun for hillshading.
var light = mgl32.Vec3{-1, -1, 2}.Normalize()

// RenderOptions controls Render.
type RenderOptions struct {
	// Relief exaggerates slopes for shading, in pixels per full height range.
	// Zero disables hillshading.
	Relief float32
}

// Render draws the field with a color ramp over its normalized height.
func Render(field *HeightField, options RenderOptions) *image.RGBA {
	size := field.Size()
	lo, hi := field.Range()
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			c := rampColor(Quantize(field.At(i, j), lo, hi))
			if options.Relief > 0 && hi > lo {
				c = c.Mul(shade(field, i, j, options.Relief/(hi-lo)))
			}
			img.Set(i, j, c.Color())
		}
	}

	return img
}

func rampColor(h byte) ColorVec {
	switch {
	case h <= OceanLevel:
		return colors[0].Lerp(colors[1], clamp(float32(h)/float32(OceanLevel)))
	case h <= SandLevel:
		return colors[2]
	case h <= GrassLevel:
		return colors[2].Lerp(colors[3], clamp(float32(h-SandLevel)*0.05))
	case h <= RockLevel:
		return colors[3].Lerp(colors[4], clamp(float32(h-GrassLevel)*0.1))
	default:
		return colors[4].Lerp(colors[5], clamp(float32(h-RockLevel)*0.07))
	}
}

// shade returns a brightness factor from the surface normal at (i, j).
func shade(field *HeightField, i, j int, relief float32) float32 {
	last := field.Size() - 1
	west := field.At(world.MaxInt(i-1, 0), j)
	east := field.At(world.MinInt(i+1, last), j)
	north := field.At(i, world.MaxInt(j-1, 0))
	south := field.At(i, world.MinInt(j+1, last))

	tangentX := mgl32.Vec3{2, 0, (east - west) * relief}
	tangentY := mgl32.Vec3{0, 2, (south - north) * relief}
	normal := tangentX.Cross(tangentY).Normalize()

	return 0.6 + 0.4*clamp(normal.Dot(light))
}

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) String() string {
	return fmt.Sprintf("vec4(%.3f, %.3f, %.3f, 1.0)", vec[0], vec[1], vec[2])
}

func (vec ColorVec) Mul(v float32) ColorVec {
	vec[0] *= v
	vec[1] *= v
	vec[2] *= v
	return vec
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] = world.Lerp(vec[i], other[i], factor)
	}
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func clamp(f float32) float32 {
	return world.Clamp(f, 0, 1)
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f * 255)
}
