// SPDX-License-Identifier: Apache-2.0

// Package preprocess prepares pipeline parameters before the pipeline engine
// starts: uploaded artifacts are written to local files and the parameters
// are rewritten to reference those files.
package preprocess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/accession"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/artifact"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataset"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/params"
)

// ErrMissingRequiredInput reports a mandatory input that was not supplied.
var ErrMissingRequiredInput = errors.New("missing required input")

// Pipeline names.
const (
	PipelinePrefetch = "sra-prefetch"
	PipelineFastq    = "sra-to-fastq"
)

// Preprocessor runs the preprocessing steps against an injected parameter
// store, writing files under dir.
type Preprocessor struct {
	store  params.Store
	dir    string
	logger *slog.Logger
}

// New creates a Preprocessor. A nil logger discards log output.
func New(store params.Store, dir string, logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Preprocessor{store: store, dir: dir, logger: logger}
}

// RunPrefetch prepares the parameters of the SRA prefetch pipeline. The NGC
// key and the accession list are required; the sample sheet is optional.
func (p *Preprocessor) RunPrefetch(ctx context.Context) (Report, error) {
	report := Report{Pipeline: PipelinePrefetch}
	p.logger.Info("preprocessing dataset", "pipeline", PipelinePrefetch)

	artifacts := PrefetchArtifacts()
	if err := p.checkRequired(artifacts); err != nil {
		return report, err
	}
	if err := params.Validate(params.SchemaPrefetch, p.store); err != nil {
		return report, err
	}

	if err := p.processAll(ctx, artifacts, &report); err != nil {
		return report, err
	}
	return report, nil
}

// RunFastq prepares the parameters of the SRA-to-FASTQ pipeline. The dataset
// must contain at least one .sra file.
func (p *Preprocessor) RunFastq(ctx context.Context, ds *dataset.Dataset) (Report, error) {
	report := Report{Pipeline: PipelineFastq}
	if ds == nil {
		ds = &dataset.Dataset{}
	}
	p.logger.Info("preprocessing dataset",
		"pipeline", PipelineFastq,
		"dataset_id", ds.ID,
		"dataset_s3", ds.S3,
		"files", len(ds.Files),
	)

	sra := ds.SRAFiles()
	report.SRAFiles = len(sra)
	p.logger.Info("found SRA files to convert", "count", len(sra))
	if len(sra) == 0 {
		return report, fmt.Errorf("%w: no .sra files found in input dataset", ErrMissingRequiredInput)
	}

	if err := params.Validate(params.SchemaFastq, p.store); err != nil {
		return report, err
	}

	if err := p.processAll(ctx, FastqArtifacts(), &report); err != nil {
		return report, err
	}

	if _, ok := params.String(p.store, params.InputDir); !ok && ds.InputDir() != "" {
		if err := p.store.Add(params.InputDir, ds.InputDir(), true); err != nil {
			return report, err
		}
		p.logger.Info("set parameter", "param", params.InputDir, "value", ds.InputDir())
	}
	return report, nil
}

// checkRequired fails before anything is written when a required artifact
// has no value under any of its source parameters.
func (p *Preprocessor) checkRequired(artifacts []Artifact) error {
	for _, a := range artifacts {
		if !a.Required {
			continue
		}
		if _, _, ok := p.lookup(a); !ok {
			return fmt.Errorf("%w: %s is required", ErrMissingRequiredInput, a.Target)
		}
	}
	return nil
}

func (p *Preprocessor) processAll(ctx context.Context, artifacts []Artifact, report *Report) error {
	for _, a := range artifacts {
		res, err := p.Process(ctx, a)
		if err != nil {
			return err
		}
		report.Results = append(report.Results, res)

		if res.Status == Written && a.Target == params.SRAListFile {
			n, err := accession.CountFile(res.File.Path)
			if err != nil {
				return err
			}
			report.Accessions = n
		}
	}
	return nil
}

// Process writes one artifact and rewrites its parameters. Failures of
// required artifacts are returned as errors; failures of optional artifacts
// are reported in the Result with Status SkippedError.
func (p *Preprocessor) Process(ctx context.Context, a Artifact) (Result, error) {
	res := Result{Param: a.Target}

	param, value, ok := p.lookup(a)
	if !ok {
		if a.Required {
			return res, fmt.Errorf("%w: %s is required", ErrMissingRequiredInput, a.Target)
		}
		res.Status = SkippedAbsent
		p.logger.Info("optional input absent, skipping", "param", a.Target)
		return res, nil
	}

	out, err := p.write(ctx, a, param, value)
	if err != nil {
		if a.Required {
			return res, err
		}
		res.Status = SkippedError
		res.Err = err
		p.logger.Warn("optional input could not be processed, skipping", "param", param, "error", err)
		return res, nil
	}

	res.Status = Written
	res.File = out.File
	res.Decoder = out.DecoderUsed
	p.logger.Info("wrote artifact",
		"param", a.Target,
		"source", param,
		"path", out.File.Path,
		"bytes", out.File.Size,
		"mime_type", out.File.MIMEType,
		"decoder", out.DecoderUsed,
	)
	return res, nil
}

func (p *Preprocessor) write(ctx context.Context, a Artifact, param, value string) (artifact.RunResult, error) {
	out, err := a.Pipeline.Run(ctx, artifact.Source{
		Param:      param,
		Value:      value,
		OutputPath: filepath.Join(p.dir, a.Filename),
	})
	if err != nil {
		return artifact.RunResult{}, err
	}

	for _, src := range a.Sources {
		p.store.Remove(src)
	}
	if err := params.Replace(p.store, a.Target, out.File.Path); err != nil {
		return artifact.RunResult{}, err
	}
	return out, nil
}

// lookup returns the first source parameter of a holding a value.
func (p *Preprocessor) lookup(a Artifact) (string, string, bool) {
	for _, name := range a.Sources {
		if v, ok := params.String(p.store, name); ok {
			return name, v, true
		}
	}
	return "", "", false
}
