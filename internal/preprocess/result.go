// SPDX-License-Identifier: Apache-2.0

package preprocess

import (
	"fmt"
	"strings"

	"code.cloudfoundry.org/bytefmt"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
)

// Status is the outcome of one artifact.
type Status int

const (
	Written Status = iota
	// SkippedAbsent means an optional artifact was not supplied.
	SkippedAbsent
	// SkippedError means an optional artifact was supplied but could not be
	// written. The run continues.
	SkippedError
)

func (s Status) String() string {
	switch s {
	case Written:
		return "written"
	case SkippedAbsent:
		return "skipped (absent)"
	case SkippedError:
		return "skipped (error)"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result reports what happened to one artifact.
type Result struct {
	// Param is the parameter that now holds the file path.
	Param   string
	Status  Status
	File    extracted.File
	Decoder string
	// Err is set when Status is SkippedError.
	Err error
}

// Report is the outcome of a preprocessing run.
type Report struct {
	Pipeline   string
	Results    []Result
	Accessions int
	SRAFiles   int
}

// Result returns the result recorded for param.
func (r Report) Result(param string) (Result, bool) {
	for _, res := range r.Results {
		if res.Param == param {
			return res, true
		}
	}
	return Result{}, false
}

// Summary is a one-line human readable description of the run.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Preprocessing complete: %d SRA ID(s) found", r.Accessions)
	if r.SRAFiles > 0 {
		fmt.Fprintf(&b, ", %d SRA file(s) in dataset", r.SRAFiles)
	}
	var written []string
	for _, res := range r.Results {
		if res.Status == Written {
			written = append(written, fmt.Sprintf("%s=%s (%s)", res.Param, res.File.Path, bytefmt.ByteSize(uint64(res.File.Size))))
		}
	}
	if len(written) > 0 {
		b.WriteString("; wrote ")
		b.WriteString(strings.Join(written, ", "))
	}
	return b.String()
}
