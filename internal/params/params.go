// SPDX-License-Identifier: Apache-2.0

// Package params holds the pipeline parameters a preprocessing run reads and
// rewrites before the pipeline engine starts.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Conventional parameter names.
const (
	NGCFile         = "ngc_file"
	SRAListFile     = "sra_list_file"
	SRAList         = "sra_list"
	SamplesheetFile = "samplesheet_file"
	InputDir        = "input_dir"
)

// ErrParamExists is returned by Add when the parameter is already set and
// overwrite was not requested.
var ErrParamExists = errors.New("parameter already set")

// Store is the parameter store consumed by the pipeline engine.
type Store interface {
	Get(name string) (any, bool)
	Add(name string, value any, overwrite bool) error
	Remove(name string)
}

// Params is an in-memory Store that can be loaded from and saved to a
// params file.
type Params struct {
	values map[string]any
}

// New returns a Params holding a copy of values.
func New(values map[string]any) *Params {
	p := &Params{values: make(map[string]any, len(values))}
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

// Load reads a JSON or YAML params file. A missing file is an error that
// matches os.ErrNotExist.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params %s: %w", path, err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidParams, path, err)
	}
	return New(values), nil
}

// Save writes the parameters to path. Files ending in .yaml or .yml are
// written as YAML, everything else as indented JSON.
func (p *Params) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(p.values)
	default:
		data, err = json.MarshalIndent(p.values, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write params %s: %w", path, err)
	}
	return nil
}

func (p *Params) Get(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

func (p *Params) Add(name string, value any, overwrite bool) error {
	if _, ok := p.values[name]; ok && !overwrite {
		return fmt.Errorf("%w: %s", ErrParamExists, name)
	}
	p.values[name] = value
	return nil
}

func (p *Params) Remove(name string) {
	delete(p.values, name)
}

// Names returns the parameter names in sorted order.
func (p *Params) Names() []string {
	names := make([]string, 0, len(p.values))
	for k := range p.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Values returns a copy of the parameters.
func (p *Params) Values() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// String returns the named parameter as text. Absent, nil and empty values
// all report ok=false.
func String(s Store, name string) (string, bool) {
	v, ok := s.Get(name)
	if !ok || v == nil {
		return "", false
	}
	str, isString := v.(string)
	if !isString {
		str = fmt.Sprint(v)
	}
	if str == "" {
		return "", false
	}
	return str, true
}

// Replace swaps the value of name for value, removing the original entry
// first so stale inline data never survives in the store.
func Replace(s Store, name string, value any) error {
	s.Remove(name)
	return s.Add(name, value, true)
}
