// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dns

import "testing"

func TestHostname(t *testing.T) {
	if h := Hostname("us-east-1", 2, "example.com"); h != "terrain-us-east-1-2.example.com" {
		t.Error("unexpected hostname", h)
	}
}
