// SPDX-License-Identifier: Apache-2.0

// Package dataset reads the metadata of the dataset a preprocessing run
// was started for: its identity, storage location and file manifest.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Manifest columns holding the file name. NameColumn is canonical;
// FileColumn is read when a manifest has no NameColumn.
const (
	NameColumn = "name"
	FileColumn = "file"
)

const sraSuffix = ".sra"

// ErrInvalidManifest reports a files manifest that cannot be interpreted.
var ErrInvalidManifest = errors.New("invalid files manifest")

// Dataset describes the running dataset.
type Dataset struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	S3    string `yaml:"s3"`
	Files []File `yaml:"-"`
}

// File is one row of the files manifest.
type File struct {
	Name   string
	Sample string
}

// Load reads the dataset descriptor at path (YAML or JSON) and, when
// manifestPath is set, its files manifest.
func Load(path, manifestPath string) (*Dataset, error) {
	ds := &Dataset{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, ds); err != nil {
			return nil, fmt.Errorf("parse dataset %s: %w", path, err)
		}
	}
	if manifestPath != "" {
		fh, err := os.Open(manifestPath)
		if err != nil {
			return nil, fmt.Errorf("read files manifest %s: %w", manifestPath, err)
		}
		defer fh.Close()
		files, err := ReadManifest(fh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", manifestPath, err)
		}
		ds.Files = files
	}
	return ds, nil
}

// ReadManifest parses a CSV files manifest with a header row. The file name
// is taken from the "name" column, or the "file" column when there is no
// "name"; a "sample" column is optional.
func ReadManifest(r io.Reader) ([]File, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	nameIdx, fallbackIdx, sampleIdx := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case NameColumn:
			nameIdx = i
		case FileColumn:
			fallbackIdx = i
		case "sample":
			sampleIdx = i
		}
	}
	fileIdx := nameIdx
	if fileIdx < 0 {
		fileIdx = fallbackIdx
	}
	if fileIdx < 0 {
		return nil, fmt.Errorf("%w: missing %q or %q column in header %v", ErrInvalidManifest, NameColumn, FileColumn, header)
	}

	var files []File
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
		if fileIdx >= len(rec) || strings.TrimSpace(rec[fileIdx]) == "" {
			continue
		}
		f := File{Name: strings.TrimSpace(rec[fileIdx])}
		if sampleIdx >= 0 && sampleIdx < len(rec) {
			f.Sample = strings.TrimSpace(rec[sampleIdx])
		}
		files = append(files, f)
	}
	return files, nil
}

// SRAFiles returns the manifest entries that are SRA archives.
func (d *Dataset) SRAFiles() []File {
	var out []File
	for _, f := range d.Files {
		if strings.HasSuffix(f.Name, sraSuffix) {
			out = append(out, f)
		}
	}
	return out
}

// InputDir is the location the pipeline reads the dataset files from.
func (d *Dataset) InputDir() string {
	if d.S3 == "" {
		return ""
	}
	return strings.TrimSuffix(d.S3, "/") + "/data"
}
