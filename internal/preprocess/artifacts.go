// SPDX-License-Identifier: Apache-2.0

package preprocess

import (
	"github.com/andrea-de-micheli/sra-to-fastq/internal/artifact"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/artifact/decoders"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/params"
)

// Output file names, relative to the preprocessing directory.
const (
	NGCFilename         = "ngc_key.ngc"
	SRAListFilename     = "sra_list.txt"
	SamplesheetFilename = "samplesheet.csv"
)

// Artifact is an uploaded input that is persisted to disk before the
// pipeline starts.
type Artifact struct {
	// Sources are the parameters the value may be supplied under, in priority
	// order. All of them are removed once the artifact is written.
	Sources []string
	// Target receives the absolute path of the written file.
	Target   string
	Filename string
	Required bool
	Pipeline *artifact.Pipeline
}

func ngcArtifact() Artifact {
	return Artifact{
		Sources:  []string{params.NGCFile},
		Target:   params.NGCFile,
		Filename: NGCFilename,
		Required: true,
		Pipeline: artifact.NewPipeline(decoders.NewDataURLDecoder()),
	}
}

func sraListArtifact(required bool) Artifact {
	return Artifact{
		Sources:  []string{params.SRAListFile, params.SRAList},
		Target:   params.SRAListFile,
		Filename: SRAListFilename,
		Required: required,
		// An uploaded list is written as-is; a pasted list is normalized.
		Pipeline: artifact.NewPipeline(decoders.NewDataURLDecoder(), decoders.NewAccessionTextDecoder()),
	}
}

func samplesheetArtifact() Artifact {
	return Artifact{
		Sources:  []string{params.SamplesheetFile},
		Target:   params.SamplesheetFile,
		Filename: SamplesheetFilename,
		Pipeline: artifact.NewPipeline(decoders.NewDataURLDecoder()),
	}
}

// PrefetchArtifacts are the inputs of the SRA prefetch pipeline.
func PrefetchArtifacts() []Artifact {
	return []Artifact{ngcArtifact(), sraListArtifact(true), samplesheetArtifact()}
}

// FastqArtifacts are the inputs of the SRA-to-FASTQ pipeline. The dataset
// itself carries the SRA files, so every artifact is optional.
func FastqArtifacts() []Artifact {
	return []Artifact{sraListArtifact(false), samplesheetArtifact()}
}
