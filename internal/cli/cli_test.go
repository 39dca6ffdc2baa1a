// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/params"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/preprocess"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestPrefetchCommand(t *testing.T) {
	dir := t.TempDir()
	paramsPath := filepath.Join(dir, "params.json")
	outPath := filepath.Join(dir, "nextflow.json")
	writeJSON(t, paramsPath, map[string]any{
		"ngc_file":      "data:application/octet-stream;base64," + b64("key"),
		"sra_list_file": "data:text/plain;base64," + b64("SRR1\n#x\nSRR2\n"),
	})

	code, stdout, stderr := run("prefetch", "--params", paramsPath, "--out", outPath, "--dir", dir)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "Preprocessing complete: 2 SRA ID(s) found")
	assert.Equal(t, 1, strings.Count(stdout, "\n"), "summary is a single line")
	assert.Contains(t, stderr, "run_id=")

	got := readJSON(t, outPath)
	assert.Equal(t, filepath.Join(dir, "ngc_key.ngc"), got["ngc_file"])
	assert.Equal(t, filepath.Join(dir, "sra_list.txt"), got["sra_list_file"])
	assert.NotContains(t, got, "samplesheet_file")
	assert.NoFileExists(t, filepath.Join(dir, "samplesheet.csv"))
}

func TestPrefetchCommand_MissingNGCFile(t *testing.T) {
	dir := t.TempDir()
	paramsPath := filepath.Join(dir, "params.json")
	writeJSON(t, paramsPath, map[string]any{"sra_list": "SRR1"})

	code, stdout, stderr := run("prefetch", "--params", paramsPath, "--dir", dir)
	assert.Equal(t, ExitMissingInput, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "ngc_file is required")
	assert.NoFileExists(t, filepath.Join(dir, "sra_list.txt"))

	// params are not rewritten on failure
	assert.Equal(t, map[string]any{"sra_list": "SRR1"}, readJSON(t, paramsPath))
}

func TestPrefetchCommand_EnvConfig(t *testing.T) {
	dir := t.TempDir()
	paramsPath := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(paramsPath, []byte(
		"ngc_file: data:;base64,"+b64("k")+"\nsra_list: |\n  SRR9\n"), 0o644))
	t.Setenv("PREPROCESS_PARAMS", paramsPath)
	t.Setenv("PREPROCESS_DIR", dir)
	t.Setenv("PREPROCESS_LOG_LEVEL", "error")

	code, stdout, stderr := run("prefetch")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "1 SRA ID(s) found")
	assert.Empty(t, stderr)

	p, err := params.Load(paramsPath)
	require.NoError(t, err)
	v, _ := p.Get("sra_list_file")
	assert.Equal(t, filepath.Join(dir, "sra_list.txt"), v)
}

func TestFastqCommand(t *testing.T) {
	dir := t.TempDir()
	paramsPath := filepath.Join(dir, "params.json")
	datasetPath := filepath.Join(dir, "dataset.json")
	filesPath := filepath.Join(dir, "files.csv")
	writeJSON(t, paramsPath, map[string]any{})
	writeJSON(t, datasetPath, map[string]any{"id": "ds-1", "s3": "s3://bucket/ds-1"})
	require.NoError(t, os.WriteFile(filesPath, []byte("sample,file\nA,data/A.sra\n"), 0o644))

	code, stdout, stderr := run("fastq", "--params", paramsPath, "--dataset", datasetPath, "--files", filesPath, "--dir", dir)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "1 SRA file(s) in dataset")
	assert.Equal(t, "s3://bucket/ds-1/data", readJSON(t, paramsPath)["input_dir"])

	require.NoError(t, os.WriteFile(filesPath, []byte("file\nreads.fastq.gz\n"), 0o644))
	code, _, stderr = run("fastq", "--params", paramsPath, "--dataset", datasetPath, "--files", filesPath, "--dir", dir)
	assert.Equal(t, ExitMissingInput, code)
	assert.Contains(t, stderr, "no .sra files")
}

func TestPrefetchCommand_PlainTextNGCKey(t *testing.T) {
	dir := t.TempDir()
	paramsPath := filepath.Join(dir, "params.json")
	writeJSON(t, paramsPath, map[string]any{"ngc_file": "not-a-data-url", "sra_list": "SRR1"})

	code, _, stderr := run("prefetch", "--params", paramsPath, "--dir", dir)
	assert.Equal(t, ExitInvalidInput, code)
	assert.Contains(t, stderr, "ngc_file")
	assert.NoFileExists(t, filepath.Join(dir, "ngc_key.ngc"))
}

func TestFastqCommand_MissingParamsFile(t *testing.T) {
	dir := t.TempDir()
	paramsPath := filepath.Join(dir, "parmas.json")
	filesPath := filepath.Join(dir, "files.csv")
	require.NoError(t, os.WriteFile(filesPath, []byte("name\nA.sra\n"), 0o644))

	code, _, stderr := run("fastq", "--params", paramsPath, "--files", filesPath, "--dir", dir)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "parmas.json")
	assert.NoFileExists(t, paramsPath, "a mistyped params path is not created")
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "key.ngc")

	code, stdout, stderr := run("extract", "data:;base64,"+b64("secret"), out)
	require.Equal(t, ExitOK, code, stderr)
	assert.Equal(t, out+"\n", stdout)

	code, _, _ = run("extract", "not-a-data-url", filepath.Join(dir, "x"))
	assert.Equal(t, ExitInvalidInput, code)
	assert.NoFileExists(t, filepath.Join(dir, "x"))

	code, _, _ = run("extract", "data:text/plain;base64,!!!invalid!!!", filepath.Join(dir, "y"))
	assert.Equal(t, ExitDecodeError, code)

	code, _, _ = run("extract", "data:;base64,"+b64("x"), filepath.Join(dir, "missing", "z"))
	assert.Equal(t, ExitIOError, code)
}

func TestExtractCommand_Stdin(t *testing.T) {
	out := filepath.Join(t.TempDir(), "list.txt")
	root := NewRootCommand()
	var stdout bytes.Buffer
	root.SetArgs([]string{"extract", "-", out})
	root.SetIn(strings.NewReader("data:text/plain;base64," + b64("SRR1\n") + "\n"))
	root.SetOut(&stdout)

	require.NoError(t, root.Execute())
	assert.Equal(t, out+"\n", stdout.String())
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "SRR1\n", string(data))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "missing input", err: fmt.Errorf("wrap: %w", preprocess.ErrMissingRequiredInput), want: ExitMissingInput},
		{name: "invalid format", err: dataurl.ErrInvalidFormat, want: ExitInvalidInput},
		{name: "invalid params", err: params.ErrInvalidParams, want: ExitInvalidInput},
		{name: "decode", err: dataurl.ErrDecode, want: ExitDecodeError},
		{name: "io", err: extracted.ErrIO, want: ExitIOError},
		{name: "other", err: errors.New("boom"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cmd := NewRootCommand()
	cfg, err := loadConfig(cmd.PersistentFlags())
	require.NoError(t, err)
	assert.Equal(t, "params.json", cfg.Params)
	assert.Equal(t, "params.json", cfg.Out)
	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, "info", cfg.LogLevel)

	_, err = newLogger(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}
