// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"fmt"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteDatabase keeps the same records as DynamoDBDatabase in a local file.
type SQLiteDatabase struct {
	conn *sqlx.DB
}

// NewSQLiteDatabase opens or creates a database file at path.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// The hub writes from one goroutine at a time
	conn.SetMaxOpenConns(1)

	sdb := &SQLiteDatabase{conn: conn}
	if err := sdb.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return sdb, nil
}

func (sdb *SQLiteDatabase) Close() error {
	return sdb.conn.Close()
}

func (sdb *SQLiteDatabase) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS servers (
		region TEXT NOT NULL,
		slot INTEGER NOT NULL,
		ip TEXT NOT NULL,
		clients INTEGER NOT NULL,
		ttl INTEGER NOT NULL,
		PRIMARY KEY (region, slot)
	);

	CREATE TABLE IF NOT EXISTS passes (
		server TEXT NOT NULL,
		time INTEGER NOT NULL,
		id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		size INTEGER NOT NULL,
		drops INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		off_map INTEGER NOT NULL,
		evaporated INTEGER NOT NULL,
		exhausted INTEGER NOT NULL,
		eroded REAL NOT NULL,
		deposited REAL NOT NULL,
		sediment REAL NOT NULL,
		clipped REAL NOT NULL,
		ttl INTEGER NOT NULL,
		PRIMARY KEY (server, time)
	);
	`
	_, err := sdb.conn.Exec(schema)
	return err
}

func (sdb *SQLiteDatabase) UpdateServer(server Server) error {
	_, err := sdb.conn.NamedExec(`INSERT OR REPLACE INTO servers (region, slot, ip, clients, ttl)
		VALUES (:region, :slot, :ip, :clients, :ttl)`, server)
	return err
}

func (sdb *SQLiteDatabase) ReadServersByRegion(region string) (servers []Server, err error) {
	err = sdb.conn.Select(&servers, "SELECT * FROM servers WHERE region = ? ORDER BY slot", region)
	return
}

func (sdb *SQLiteDatabase) PutPass(pass Pass) error {
	_, err := sdb.conn.NamedExec(`INSERT OR IGNORE INTO passes
		(server, time, id, seed, size, drops, steps, off_map, evaporated, exhausted,
		 eroded, deposited, sediment, clipped, ttl)
		VALUES (:server, :time, :id, :seed, :size, :drops, :steps, :off_map, :evaporated, :exhausted,
		 :eroded, :deposited, :sediment, :clipped, :ttl)`, pass)
	if err != nil {
		return fmt.Errorf("insert pass %s: %w", pass.ID, err)
	}
	return nil
}

func (sdb *SQLiteDatabase) ReadPasses(server string, limit int) (passes []Pass, err error) {
	err = sdb.conn.Select(&passes, "SELECT * FROM passes WHERE server = ? ORDER BY time DESC LIMIT ?", server, limit)
	return
}
