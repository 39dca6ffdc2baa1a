// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
)

func newExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <data-url|-> <output>",
		Short: "Decode a single data URL to a file and print its absolute path",
		Long: `Decode a single data URL to a file and print its absolute path.

Pass "-" to read the data URL from stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			if raw == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				raw = strings.TrimSpace(string(b))
			}

			f, err := dataurl.Extract(raw, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Path)
			return nil
		},
	}
}
