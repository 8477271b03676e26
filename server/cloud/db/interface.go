// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

type Database interface {
	UpdateServer(server Server) error
	ReadServersByRegion(region string) (servers []Server, err error)
	PutPass(pass Pass) error
	// ReadPasses returns up to limit of a server's most recent passes, newest first.
	ReadPasses(server string, limit int) (passes []Pass, err error)
}
