// SPDX-License-Identifier: Apache-2.0

// Package cli is the command line interface of sra-preprocess.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataset"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/params"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/preprocess"
)

// Version is reported by --version and the MCP server.
var Version = "0.1.0"

// Exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitMissingInput = 2
	ExitInvalidInput = 3
	ExitDecodeError  = 4
	ExitIOError      = 5
)

// NewRootCommand builds the sra-preprocess command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sra-preprocess",
		Short: "Prepare SRA pipeline parameters before the pipeline engine starts",
		Long: `Prepare SRA pipeline parameters before the pipeline engine starts.

Uploaded inputs arrive as base64 data URLs inside the pipeline parameters.
sra-preprocess writes them to local files (ngc_key.ngc, sra_list.txt,
samplesheet.csv) and rewrites the parameters to hold the absolute paths.

Flags can also be set through the environment, e.g. PREPROCESS_PARAMS.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addConfigFlags(root.PersistentFlags())

	root.AddCommand(
		newPrefetchCommand(),
		newFastqCommand(),
		newExtractCommand(),
		newServeCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code. Errors
// are written to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, preprocess.ErrMissingRequiredInput):
		return ExitMissingInput
	case errors.Is(err, dataurl.ErrInvalidFormat),
		errors.Is(err, params.ErrInvalidParams),
		errors.Is(err, dataset.ErrInvalidManifest):
		return ExitInvalidInput
	case errors.Is(err, dataurl.ErrDecode):
		return ExitDecodeError
	case errors.Is(err, extracted.ErrIO):
		return ExitIOError
	}
	return ExitFailure
}
