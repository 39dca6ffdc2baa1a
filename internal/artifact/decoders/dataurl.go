// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"context"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/artifact"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
)

// DataURLDecoder writes the base64 payload of a data URL verbatim.
type DataURLDecoder struct{}

// NewDataURLDecoder creates a new DataURLDecoder.
func NewDataURLDecoder() *DataURLDecoder {
	return &DataURLDecoder{}
}

func (d *DataURLDecoder) Name() string {
	return "dataurl"
}

// CanHandle returns true for values using the data: scheme. Malformed data
// URLs are still accepted here so that Decode reports why they are malformed.
func (d *DataURLDecoder) CanHandle(source artifact.Source) bool {
	return dataurl.IsDataURL(source.Value)
}

func (d *DataURLDecoder) Decode(_ context.Context, source artifact.Source) (extracted.File, error) {
	return dataurl.Extract(source.Value, source.OutputPath)
}
