// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud records erosion passes and terrain snapshots, either to AWS or to a local directory.
package cloud

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/erosion/server/cloud/db"
	"github.com/SoftbearStudios/erosion/server/cloud/dns"
	"github.com/SoftbearStudios/erosion/server/cloud/fs"
	"github.com/SoftbearStudios/erosion/server/terrain/erosion"
	"github.com/google/uuid"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	UpdatePeriod = 30 * time.Second
	// passTTL is how long pass records are kept by databases that expire items.
	passTTL = 7 * 24 * time.Hour
	// snapshotCache is how many seconds clients may cache a terrain snapshot.
	snapshotCache = 10
	// localRegion is the region of a Cloud made by NewLocal.
	localRegion = "local"
)

// A nil cloud is valid to use with any methods (acts as a no-op)
// This just means server is in offline mode
type Cloud struct {
	region     string
	serverSlot int
	ip         net.IP
	database   db.Database
	dns        dns.DNS // nil when local
	fs         fs.Filesystem
	now        func() time.Time
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	if cloud == nil {
		builder.WriteString("offline")
	} else {
		builder.WriteString(cloud.region)
		builder.WriteByte(' ')
		builder.WriteString(strconv.Itoa(cloud.serverSlot))
		builder.WriteByte(' ')
		builder.WriteString(cloud.ip.String())
	}
	builder.WriteByte(']')
	return builder.String()
}

// New connects to AWS using the instance's user data. Returns nil cloud on error.
func New() (*Cloud, error) {
	userData, err := loadUserData()
	if err != nil {
		return nil, err
	}

	cloud := &Cloud{region: userData.Region, now: time.Now}

	cloud.ip, err = getPublicIP()
	if err != nil {
		return nil, err
	}
	session, err := getAWSSession(cloud.region)
	if err != nil {
		return nil, err
	}

	if cloud.database, err = db.NewDynamoDBDatabase(session, userData.Stage); err != nil {
		return nil, err
	}
	if cloud.dns, err = dns.NewRoute53DNS(session, userData.Domain, userData.Route53ZoneID); err != nil {
		return nil, err
	}
	if cloud.fs, err = fs.NewS3Filesystem(session, userData.Stage); err != nil {
		return nil, err
	}

	if err = cloud.claimSlot(userData.ServerSlots); err != nil {
		return nil, err
	}
	if err = cloud.dns.UpdateRoute(cloud.region, cloud.serverSlot, cloud.ip); err != nil {
		return nil, err
	}
	if err = cloud.UpdateServer(0); err != nil {
		return nil, err
	}

	return cloud, nil
}

// NewLocal keeps a SQLite database and snapshots in dir. Returns nil cloud on error.
func NewLocal(dir string) (*Cloud, error) {
	filesystem, err := fs.NewLocalFilesystem(dir)
	if err != nil {
		return nil, err
	}
	database, err := db.NewSQLiteDatabase(filepath.Join(dir, "erosion.db"))
	if err != nil {
		return nil, err
	}
	return newCloud(database, filesystem, time.Now), nil
}

// newCloud creates a local cloud in slot 0 from existing storage.
func newCloud(database db.Database, filesystem fs.Filesystem, now func() time.Time) *Cloud {
	return &Cloud{
		region:   localRegion,
		ip:       net.IPv4(127, 0, 0, 1),
		database: database,
		fs:       filesystem,
		now:      now,
	}
}

// claimSlot reclaims this IP's old slot, or takes the first free one.
func (cloud *Cloud) claimSlot(slots int) error {
	servers, err := cloud.database.ReadServersByRegion(cloud.region)
	if err != nil {
		return err
	}

	cloud.serverSlot = -1

	for _, server := range servers {
		if cloud.ip.Equal(net.ParseIP(server.IP)) {
			cloud.serverSlot = server.Slot
			return nil
		}
	}

scan:
	for slot := 0; slot < slots; slot++ {
		for _, server := range servers {
			if server.Slot == slot {
				// Slot is taken
				continue scan
			}
		}
		cloud.serverSlot = slot
		return nil
	}

	return errors.New("no empty server slot")
}

// name identifies this server's records.
func (cloud *Cloud) name() string {
	return cloud.region + "/" + strconv.Itoa(cloud.serverSlot)
}

// UpdateServer should be called at least every UpdatePeriod.
func (cloud *Cloud) UpdateServer(clients int) error {
	if cloud == nil {
		return nil
	}
	return cloud.database.UpdateServer(db.Server{
		Region:  cloud.region,
		Slot:    cloud.serverSlot,
		IP:      cloud.ip.String(),
		Clients: clients,
		TTL:     cloud.now().Unix() + int64(UpdatePeriod/time.Second) + 5,
	})
}

// RecordPass stores the statistics of one erosion pass.
func (cloud *Cloud) RecordPass(seed int64, size int, result erosion.Result) error {
	if cloud == nil {
		return nil
	}

	now := cloud.now()
	err := cloud.database.PutPass(db.Pass{
		Server:     cloud.name(),
		Time:       now.UnixNano() / int64(time.Millisecond),
		ID:         uuid.NewString(),
		Seed:       seed,
		Size:       size,
		Drops:      result.Drops,
		Steps:      result.Steps,
		OffMap:     result.OffMap,
		Evaporated: result.Evaporated,
		Exhausted:  result.Exhausted,
		Eroded:     result.Eroded,
		Deposited:  result.Deposited,
		Sediment:   result.Sediment,
		Clipped:    result.Clipped,
		TTL:        now.Add(passTTL).Unix(),
	})
	if err != nil {
		return fmt.Errorf("record pass: %w", err)
	}
	return nil
}

// RecentPasses returns up to limit of this server's passes, newest first.
func (cloud *Cloud) RecentPasses(limit int) ([]db.Pass, error) {
	if cloud == nil {
		return nil, nil
	}
	return cloud.database.ReadPasses(cloud.name(), limit)
}

// UploadTerrainSnapshot takes an encoded PNG.
func (cloud *Cloud) UploadTerrainSnapshot(data []byte) error {
	if cloud == nil {
		return nil
	}
	filename := fmt.Sprintf("terrain/%s-%d.png", cloud.region, cloud.serverSlot)
	return cloud.fs.UploadStaticFile(filename, snapshotCache, data)
}

func (cloud *Cloud) UpdatePeriod() time.Duration {
	return UpdatePeriod
}
