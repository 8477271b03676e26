// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

// Server is a running hub, so a restarted instance can reclaim its slot.
type Server struct {
	Region  string `dynamo:"region" db:"region"`
	Slot    int    `dynamo:"slot" db:"slot"`
	IP      string `dynamo:"ip" db:"ip"`
	Clients int    `dynamo:"clients" db:"clients"`
	TTL     int64  `dynamo:"ttl,omitempty" db:"ttl"`
}

// Pass is the record of one erosion pass over a server's terrain.
type Pass struct {
	Server string `dynamo:"server" db:"server"`
	Time   int64  `dynamo:"time" db:"time"` // unix millis
	ID     string `dynamo:"id" db:"id"`
	Seed   int64  `dynamo:"seed" db:"seed"`
	Size   int    `dynamo:"size" db:"size"`

	Drops      int     `dynamo:"drops" db:"drops"`
	Steps      int     `dynamo:"steps" db:"steps"`
	OffMap     int     `dynamo:"offMap" db:"off_map"`
	Evaporated int     `dynamo:"evaporated" db:"evaporated"`
	Exhausted  int     `dynamo:"exhausted" db:"exhausted"`
	Eroded     float64 `dynamo:"eroded" db:"eroded"`
	Deposited  float64 `dynamo:"deposited" db:"deposited"`
	Sediment   float64 `dynamo:"sediment" db:"sediment"`
	Clipped    float64 `dynamo:"clipped" db:"clipped"`

	TTL int64 `dynamo:"ttl,omitempty" db:"ttl"`
}
