// SPDX-License-Identifier: Apache-2.0

package params

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
)

// ErrInvalidParams reports parameters that do not match the pipeline schema.
// Errors carrying it also match dataurl.ErrInvalidFormat.
var ErrInvalidParams = errors.New("invalid parameters")

// Schema definition names, one per pipeline.
const (
	SchemaPrefetch = "Prefetch"
	SchemaFastq    = "Fastq"
)

//go:embed schema/params.cue
var schemaSource []byte

var (
	schemaOnce  sync.Once
	cueCtx      *cue.Context
	schemaValue cue.Value
	schemaErr   error
)

func compiledSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		cueCtx = cuecontext.New()
		schemaValue = cueCtx.CompileBytes(schemaSource, cue.Filename("params.cue"))
		schemaErr = schemaValue.Err()
	})
	return cueCtx, schemaValue, schemaErr
}

// known lists the parameters the schemas constrain. Everything else is passed
// through to the pipeline engine without inspection.
var known = []string{NGCFile, SRAListFile, SRAList, SamplesheetFile, InputDir}

// Validate checks the known parameters in s against the named schema
// definition.
func Validate(definition string, s Store) error {
	ctx, schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile params schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#" + definition))
	if !def.Exists() {
		return fmt.Errorf("unknown params schema %q", definition)
	}

	values := make(map[string]any, len(known))
	for _, name := range known {
		if v, ok := s.Get(name); ok {
			values[name] = v
		}
	}

	v := ctx.Encode(values)
	if err := v.Err(); err != nil {
		return invalid(err)
	}
	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return invalid(err)
	}
	return nil
}

// invalid flattens the CUE error details onto one line, naming each failing
// parameter.
func invalid(err error) error {
	details := strings.TrimSpace(cueerrors.Details(err, nil))
	details = strings.ReplaceAll(details, "\n", "; ")
	return fmt.Errorf("%w: %w: %s", ErrInvalidParams, dataurl.ErrInvalidFormat, details)
}
