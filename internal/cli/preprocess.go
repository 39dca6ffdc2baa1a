// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataset"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/params"
	"github.com/andrea-de-micheli/sra-to-fastq/internal/preprocess"
)

type runFunc func(ctx context.Context, p *preprocess.Preprocessor, cfg Config) (preprocess.Report, error)

func newPrefetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prefetch",
		Short: "Extract the NGC key, accession list and sample sheet for SRA prefetch",
		Long: `Extract the NGC key, accession list and sample sheet for SRA prefetch.

ngc_file and one of sra_list_file or sra_list are required. samplesheet_file
is optional: when it is absent or cannot be decoded the run continues without it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreprocess(cmd, preprocess.PipelinePrefetch,
				func(ctx context.Context, p *preprocess.Preprocessor, _ Config) (preprocess.Report, error) {
					return p.RunPrefetch(ctx)
				})
		},
	}
}

func newFastqCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fastq",
		Short: "Check the dataset holds SRA files and prepare SRA-to-FASTQ parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreprocess(cmd, preprocess.PipelineFastq,
				func(ctx context.Context, p *preprocess.Preprocessor, cfg Config) (preprocess.Report, error) {
					ds, err := dataset.Load(cfg.Dataset, cfg.Files)
					if err != nil {
						return preprocess.Report{}, err
					}
					return p.RunFastq(ctx, ds)
				})
		},
	}
}

// runPreprocess loads the params, runs one pipeline's preprocessing, saves
// the rewritten params and prints the summary.
func runPreprocess(cmd *cobra.Command, pipeline string, run runFunc) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = logger.With("pipeline", pipeline)

	store, err := params.Load(cfg.Params)
	if err != nil {
		return err
	}
	logger.Debug("loaded params", "path", cfg.Params, "names", store.Names())

	report, err := run(cmd.Context(), preprocess.New(store, cfg.Dir, logger), cfg)
	if err != nil {
		return err
	}

	if err := store.Save(cfg.Out); err != nil {
		return err
	}
	logger.Info("saved params", "path", cfg.Out)

	fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
	return nil
}
