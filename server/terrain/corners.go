// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import "github.com/SoftbearStudios/erosion/server/world"

// Corners are the four heights surrounding a cell.
// H01 is at (x, y+1) and H10 is at (x+1, y).
type Corners struct {
	H00, H01, H10, H11 float32
}

// CornersOf reads the corners of the cell with top-left grid point cell.
// cell must lie within [0, Size-2].
func CornersOf(r Reader, cell world.Vec2i) Corners {
	x, y := cell.X, cell.Y

	// A cell on the last row or column reuses its own heights.
	x1 := world.MinInt(x+1, r.Size()-1)
	y1 := world.MinInt(y+1, r.Size()-1)

	return Corners{
		H00: r.At(x, y),
		H01: r.At(x, y1),
		H10: r.At(x1, y),
		H11: r.At(x1, y1),
	}
}

// Height interpolates the corners at offset (each component in [0, 1]).
func (c Corners) Height(offset world.Vec2f) float32 {
	return world.Blerp(c.H00, c.H10, c.H01, c.H11, offset.X, offset.Y)
}

// Gradient is the bilinear gradient via finite differences weighted by the offset.
func (c Corners) Gradient(offset world.Vec2f) world.Vec2f {
	return world.Vec2f{
		X: (c.H10-c.H00)*(1-offset.Y) + (c.H11-c.H01)*offset.Y,
		Y: (c.H01-c.H00)*(1-offset.X) + (c.H11-c.H10)*offset.X,
	}
}

// Weights are the bilinear corner weights at offset, ordered 00, 10, 01, 11.
func Weights(offset world.Vec2f) [4]float32 {
	return [4]float32{
		(1 - offset.X) * (1 - offset.Y),
		offset.X * (1 - offset.Y),
		(1 - offset.X) * offset.Y,
		offset.X * offset.Y,
	}
}

// Bilinear samples r at a continuous position.
func Bilinear(r Reader, pos world.Vec2f) float32 {
	return CornersOf(r, pos.Cell()).Height(pos.Fract())
}
