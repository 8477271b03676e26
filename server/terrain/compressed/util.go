// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

func clampPrecision(precision uint8) uint8 {
	if precision < 1 {
		return 1
	}
	if precision > 8 {
		return 8
	}
	return precision
}
