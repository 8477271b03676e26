// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

/*
	List of curated seeds/offsets:
		1, 0.5, 0.5
		46, 0, 1
		56, -2, -2
*/

const (
	// Seed default seed.
	Seed = int64(56)
	// DefaultSize default width and height of a HeightField.
	// Multiples of 16 divide evenly into erosion batches.
	DefaultSize = 256
)

// Source generates heightmap data.
type Source interface {
	Generate(size int) (*HeightField, error)
}
