// SPDX-License-Identifier: Apache-2.0

package artifact_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/artifact"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/artifact/decoders"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
)

// ---------------------------------------------------------------------------
// Pipeline
// ---------------------------------------------------------------------------

func TestPipeline_NoDecoders(t *testing.T) {
	p := artifact.NewPipeline()
	_, err := p.Run(context.Background(), artifact.Source{Param: "ngc_file", Value: "data:;base64,aGk="})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataurl.ErrInvalidFormat)
	assert.Contains(t, err.Error(), "ngc_file")
}

func TestPipeline_RegisteredDecoders(t *testing.T) {
	p := artifact.NewPipeline(decoders.NewDataURLDecoder(), decoders.NewAccessionTextDecoder())
	assert.Equal(t, []string{"dataurl", "accession-text"}, p.RegisteredDecoders())
}

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name        string
		pipeline    *artifact.Pipeline
		value       string
		wantDecoder string
		wantContent string
		wantErr     error
	}{
		{
			name:        "data url decoded verbatim",
			pipeline:    artifact.NewPipeline(decoders.NewDataURLDecoder(), decoders.NewAccessionTextDecoder()),
			value:       "data:text/plain;base64,U1JSMQojeAo=",
			wantDecoder: "dataurl",
			wantContent: "SRR1\n#x\n",
		},
		{
			name:        "plain text normalized",
			pipeline:    artifact.NewPipeline(decoders.NewDataURLDecoder(), decoders.NewAccessionTextDecoder()),
			value:       "SRR123\n# comment\n\nSRR456\n",
			wantDecoder: "accession-text",
			wantContent: "SRR123\nSRR456\n",
		},
		{
			name:     "plain text rejected when only data urls are accepted",
			pipeline: artifact.NewPipeline(decoders.NewDataURLDecoder()),
			value:    "SRR123",
			wantErr:  dataurl.ErrInvalidFormat,
		},
		{
			name:     "whitespace only value has no decoder",
			pipeline: artifact.NewPipeline(decoders.NewDataURLDecoder(), decoders.NewAccessionTextDecoder()),
			value:    " \n ",
			wantErr:  dataurl.ErrInvalidFormat,
		},
		{
			name:     "bad base64 surfaces the decode error",
			pipeline: artifact.NewPipeline(decoders.NewDataURLDecoder(), decoders.NewAccessionTextDecoder()),
			value:    "data:text/plain;base64,!!!invalid!!!",
			wantErr:  dataurl.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "artifact")
			res, err := tt.pipeline.Run(context.Background(), artifact.Source{
				Param:      "sra_list_file",
				Value:      tt.value,
				OutputPath: out,
			})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NoFileExists(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDecoder, res.DecoderUsed)
			assert.Equal(t, out, res.File.Path)

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(got))
		})
	}
}
