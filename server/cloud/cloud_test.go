// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"github.com/SoftbearStudios/erosion/server/cloud/db"
	"github.com/SoftbearStudios/erosion/server/cloud/fs"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testCloud(t *testing.T) (*Cloud, string) {
	dir := t.TempDir()
	filesystem, err := fs.NewLocalFilesystem(dir)
	if err != nil {
		t.Fatal(err)
	}
	database, err := db.NewSQLiteDatabase(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	// Every call is a second later
	clock := time.Unix(1600000000, 0)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return newCloud(database, filesystem, now), dir
}

func TestCloud_RecordPass(t *testing.T) {
	cloud, _ := testCloud(t)

	for i := 1; i <= 3; i++ {
		err := cloud.RecordPass(56, 128, erosion.Result{Drops: i * 100, Steps: i * 1000, Eroded: float64(i)})
		if err != nil {
			t.Fatal(err)
		}
	}

	passes, err := cloud.RecentPasses(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 2 {
		t.Fatal("expected 2 passes, got", passes)
	}
	if passes[0].Drops != 300 || passes[1].Drops != 200 {
		t.Error("expected newest passes first, got", passes)
	}
	if passes[0].Server != "local/0" || passes[0].Seed != 56 || passes[0].Size != 128 {
		t.Error("unexpected pass", passes[0])
	}
	if passes[0].ID == passes[1].ID || len(passes[0].ID) != 36 {
		t.Error("expected distinct uuids, got", passes[0].ID, passes[1].ID)
	}
}

func TestCloud_UploadTerrainSnapshot(t *testing.T) {
	cloud, dir := testCloud(t)

	png := []byte("\x89PNG")
	if err := cloud.UploadTerrainSnapshot(png); err != nil {
		t.Fatal(err)
	}

	read, err := os.ReadFile(filepath.Join(dir, "terrain", "local-0.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(read, png) {
		t.Error("snapshot differs")
	}
}

func TestCloud_Nil(t *testing.T) {
	var cloud *Cloud

	if s := cloud.String(); s != "[offline]" {
		t.Error("unexpected string", s)
	}
	if err := cloud.RecordPass(0, 0, erosion.Result{}); err != nil {
		t.Error(err)
	}
	if err := cloud.UpdateServer(1); err != nil {
		t.Error(err)
	}
	if err := cloud.UploadTerrainSnapshot(nil); err != nil {
		t.Error(err)
	}
	if passes, err := cloud.RecentPasses(10); passes != nil || err != nil {
		t.Error("expected nothing from offline cloud, got", passes, err)
	}
}

func TestParseUserData(t *testing.T) {
	const userData = `DOMAIN="example.com"
REGION=us-east-1
STAGE="prod"
SERVER_SLOTS=4
ROUTE53_ZONEID="Z123"
`
	data, err := parseUserData(strings.NewReader(userData))
	if err != nil {
		t.Fatal(err)
	}
	expected := UserData{Domain: "example.com", Region: "us-east-1", Stage: "prod", ServerSlots: 4, Route53ZoneID: "Z123"}
	if *data != expected {
		t.Errorf("expected %+v, got %+v", expected, *data)
	}

	if _, err := parseUserData(strings.NewReader("REGION=us-east-1\n")); err == nil {
		t.Error("expected error for missing domain")
	}
	if _, err := parseUserData(strings.NewReader("SERVER_SLOTS=four\n")); err == nil {
		t.Error("expected error for bad server slots")
	}
}
