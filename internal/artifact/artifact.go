// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
)

// Source is an uploaded artifact as it appears in the parameter store.
type Source struct {
	// Param is the parameter the value was read from.
	Param string
	// Value is the raw parameter value: a data URL or plain text.
	Value      string
	OutputPath string
}

type Decoder interface {
	CanHandle(source Source) bool
	Decode(ctx context.Context, source Source) (extracted.File, error)
	Name() string
}
