// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

// Levels of a height quantized to a byte over the field's range.
const (
	OceanLevel = 63
	SandLevel  = OceanLevel + 10
	GrassLevel = SandLevel + 50
	RockLevel  = GrassLevel + 40
	SnowLevel  = 255
)

// Quantize maps h from [lo, hi] to a byte. A flat range maps to 0.
func Quantize(h, lo, hi float32) byte {
	if hi <= lo {
		return 0
	}
	f := (h - lo) / (hi - lo) * 255
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return byte(f + 0.5)
}

// Dequantize is the inverse of Quantize (up to rounding).
func Dequantize(b byte, lo, hi float32) float32 {
	return lo + float32(b)*(hi-lo)/255
}
