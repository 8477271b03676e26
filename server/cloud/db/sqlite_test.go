// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"path/filepath"
	"testing"
)

func openTestDatabase(t *testing.T) *SQLiteDatabase {
	sdb, err := NewSQLiteDatabase(filepath.Join(t.TempDir(), "erosion.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = sdb.Close()
	})
	return sdb
}

func TestSQLiteDatabase_Passes(t *testing.T) {
	sdb := openTestDatabase(t)

	for i := 0; i < 5; i++ {
		err := sdb.PutPass(Pass{Server: "local", Time: int64(1000 + i), ID: string(rune('a' + i)), Drops: i, Eroded: float64(i) / 2})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := sdb.PutPass(Pass{Server: "other", Time: 5000, ID: "z"}); err != nil {
		t.Fatal(err)
	}

	// Retried pass is ignored
	if err := sdb.PutPass(Pass{Server: "local", Time: 1004, ID: "retry", Drops: 99}); err != nil {
		t.Fatal(err)
	}

	passes, err := sdb.ReadPasses("local", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 3 {
		t.Fatal("expected 3 passes, got", len(passes))
	}
	for i, pass := range passes {
		if expected := int64(1004 - i); pass.Time != expected {
			t.Errorf("pass %d: expected time %d, got %d", i, expected, pass.Time)
		}
	}
	if passes[0].ID != "e" || passes[0].Drops != 4 || passes[0].Eroded != 2 {
		t.Error("unexpected newest pass", passes[0])
	}
}

func TestSQLiteDatabase_Servers(t *testing.T) {
	sdb := openTestDatabase(t)

	servers := []Server{
		{Region: "local", Slot: 1, IP: "127.0.0.2"},
		{Region: "local", Slot: 0, IP: "127.0.0.1", Clients: 3},
		{Region: "remote", Slot: 0, IP: "10.0.0.1"},
	}
	for _, server := range servers {
		if err := sdb.UpdateServer(server); err != nil {
			t.Fatal(err)
		}
	}

	// Update replaces the slot
	if err := sdb.UpdateServer(Server{Region: "local", Slot: 0, IP: "127.0.0.1", Clients: 7}); err != nil {
		t.Fatal(err)
	}

	read, err := sdb.ReadServersByRegion("local")
	if err != nil {
		t.Fatal(err)
	}
	if len(read) != 2 {
		t.Fatal("expected 2 servers, got", read)
	}
	if read[0].Slot != 0 || read[0].Clients != 7 || read[1].IP != "127.0.0.2" {
		t.Error("unexpected servers", read)
	}
}
