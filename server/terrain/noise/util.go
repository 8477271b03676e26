// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

func clamp(f, minimum, maximum float64) float64 {
	if f < minimum {
		return minimum
	}
	if f > maximum {
		return maximum
	}
	return f
}
