// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"github.com/chewxy/math32"
)

// Angle is in radians.
type Angle float32

const Pi = Angle(math32.Pi)

// ToAngle maps a fraction of a full turn to an Angle, e.g. from a uniform random value.
func ToAngle(turns float32) Angle {
	return Angle(turns * 2 * math32.Pi)
}

// Vec2f returns the unit vector pointing at angle.
func (angle Angle) Vec2f() Vec2f {
	sin, cos := math32.Sincos(float32(angle))
	return Vec2f{
		X: cos,
		Y: sin,
	}
}

func (angle Angle) String() string {
	return fmt.Sprintf("%.01f°", float32(angle)*180/math32.Pi)
}
