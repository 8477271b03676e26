// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalFilesystem(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocalFilesystem(filepath.Join(dir, "static"))
	if err != nil {
		t.Fatal(err)
	}

	data := []byte("{}")
	if err := local.UploadStaticFile("snapshots/terrain.json", 10, data); err != nil {
		t.Fatal(err)
	}
	// Overwrite
	data = []byte(`{"ok":true}`)
	if err := local.UploadStaticFile("snapshots/terrain.json", 10, data); err != nil {
		t.Fatal(err)
	}

	read, err := os.ReadFile(filepath.Join(dir, "static", "snapshots", "terrain.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(read, data) {
		t.Errorf("expected %s, got %s", data, read)
	}

	if err := local.UploadStaticFile("../escape.png", 10, data); !errors.Is(err, ErrFilename) {
		t.Error("expected ErrFilename, got", err)
	}
}

func TestContentTypeOf(t *testing.T) {
	if mime, ok := contentTypeOf("terrain.png"); !ok || mime != "image/png" {
		t.Error("expected image/png, got", mime)
	}
	if _, ok := contentTypeOf("terrain.bin"); ok {
		t.Error("expected no content type for .bin")
	}
}
