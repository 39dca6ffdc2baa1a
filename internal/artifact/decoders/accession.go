// SPDX-License-Identifier: Apache-2.0

package decoders

import (
	"context"
	"strings"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/accession"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/artifact"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
)

// AccessionTextDecoder handles accession lists pasted as plain text rather
// than uploaded as a file. The list is normalized before it is written.
type AccessionTextDecoder struct{}

// NewAccessionTextDecoder creates a new AccessionTextDecoder.
func NewAccessionTextDecoder() *AccessionTextDecoder {
	return &AccessionTextDecoder{}
}

func (d *AccessionTextDecoder) Name() string {
	return "accession-text"
}

func (d *AccessionTextDecoder) CanHandle(source artifact.Source) bool {
	return strings.TrimSpace(source.Value) != "" && !dataurl.IsDataURL(source.Value)
}

func (d *AccessionTextDecoder) Decode(_ context.Context, source artifact.Source) (extracted.File, error) {
	return accession.Write(source.Value, source.OutputPath)
}
