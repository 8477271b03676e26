// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

// Blerp does bi-linear interpolation of 4 corners given the tx and ty offsets.
// Corners are named by their offset: c10 is (x+1, y).
func Blerp(c00, c10, c01, c11, tx, ty float32) float32 {
	return Lerp(Lerp(c00, c10, tx), Lerp(c01, c11, tx), ty)
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func Clamp(val, minimum, maximum float32) float32 {
	return Min(Max(val, minimum), maximum)
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
