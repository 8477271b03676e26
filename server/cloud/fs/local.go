// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var ErrFilename = errors.New("fs: filename escapes directory")

var contentTypes = map[string]string{
	".json": "application/json",
	".png":  "image/png",
}

func contentTypeOf(filename string) (string, bool) {
	for ext, mime := range contentTypes {
		if strings.HasSuffix(filename, ext) {
			return mime, true
		}
	}
	return "", false
}

// LocalFilesystem writes static files into a directory, for running without AWS.
type LocalFilesystem struct {
	dir string
}

// NewLocalFilesystem creates dir if it doesn't exist.
func NewLocalFilesystem(dir string) (*LocalFilesystem, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalFilesystem{dir: dir}, nil
}

// UploadStaticFile replaces filename atomically. There is no cache to control.
func (local *LocalFilesystem) UploadStaticFile(filename string, _ int, data []byte) error {
	path := filepath.Join(local.dir, filepath.FromSlash(filename))
	if rel, err := filepath.Rel(local.dir, path); err != nil || strings.HasPrefix(rel, "..") {
		return ErrFilename
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
