// SPDX-License-Identifier: Apache-2.0

// Package extracted writes decoded artifacts to local disk.
package extracted

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrIO reports a filesystem failure while persisting an artifact.
var ErrIO = errors.New("io error")

// File is an artifact persisted on local disk.
type File struct {
	// Path is absolute and cleaned.
	Path     string `json:"path"`
	Size     int64  `json:"bytes"`
	MIMEType string `json:"mime_type,omitempty"`
}

// Write creates or truncates path and writes data to it. Partial writes are
// left in place on failure.
func Write(path string, data []byte) (File, error) {
	if path == "" {
		return File{}, fmt.Errorf("%w: output path is empty", ErrIO)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("%w: resolve %q: %v", ErrIO, path, err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return File{Path: abs, Size: int64(len(data))}, nil
}
