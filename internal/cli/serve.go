// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/tool"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction helpers as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			logger.Info("serving MCP tools on stdio", "version", Version)
			return tool.NewServer("sra-preprocess", Version).Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
