// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"fmt"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
)

type Pipeline struct {
	decoders []Decoder
}

// NewPipeline creates a new Pipeline with the provided decoders.
// Decoders are tried in order.
func NewPipeline(decoders ...Decoder) *Pipeline {
	return &Pipeline{decoders: decoders}
}

// RunResult is the output of a successful pipeline run.
type RunResult struct {
	File        extracted.File
	DecoderUsed string
}

func (p *Pipeline) Run(ctx context.Context, source Source) (RunResult, error) {
	decoder, err := p.selectDecoder(source)
	if err != nil {
		return RunResult{}, err
	}

	f, err := decoder.Decode(ctx, source)
	if err != nil {
		return RunResult{}, fmt.Errorf("%s: decoder %q failed: %w", source.Param, decoder.Name(), err)
	}

	return RunResult{File: f, DecoderUsed: decoder.Name()}, nil
}

// selectDecoder returns the first registered decoder that can handle the given source.
func (p *Pipeline) selectDecoder(source Source) (Decoder, error) {
	for _, decoder := range p.decoders {
		if decoder.CanHandle(source) {
			return decoder, nil
		}
	}
	return nil, fmt.Errorf("%w: no decoder accepts the value of %q (accepted: %v)",
		dataurl.ErrInvalidFormat, source.Param, p.RegisteredDecoders())
}

// RegisteredDecoders returns the names of all currently registered decoders.
func (p *Pipeline) RegisteredDecoders() []string {
	names := make([]string, len(p.decoders))
	for i, decoder := range p.decoders {
		names[i] = decoder.Name()
	}
	return names
}
