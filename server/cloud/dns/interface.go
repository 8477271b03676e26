// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package dns

import (
	"fmt"
	"net"
)

type DNS interface {
	UpdateRoute(region string, slot int, address net.IP) error
}

// Hostname is where clients find the hub in a region's slot.
func Hostname(region string, slot int, domain string) string {
	return fmt.Sprintf("terrain-%s-%d.%s", region, slot, domain)
}
