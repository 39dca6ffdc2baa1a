// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/accession"
)

// MetadataNormalizeAccessions describes the normalize_accessions tool.
var MetadataNormalizeAccessions = &mcp.Tool{
	Name: "normalize_accessions",
	Description: "Normalize a newline-separated list of SRA accession IDs. Whitespace is trimmed, " +
		"blank lines and lines starting with '#' are dropped. When output_path is given the " +
		"normalized list is also written there, one accession per line.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"text"},
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Accession list, one ID per line",
			},
			"output_path": map[string]interface{}{
				"type":        "string",
				"description": "Optional path to write the normalized list to.",
			},
		},
	},
}

// InputNormalizeAccessions is the input for the NormalizeAccessions tool.
type InputNormalizeAccessions struct {
	Text       string `json:"text"`
	OutputPath string `json:"output_path"`
}

// OutputNormalizeAccessions is the output for the NormalizeAccessions tool.
type OutputNormalizeAccessions struct {
	Accessions []string `json:"accessions"`
	Count      int      `json:"count"`
	// Path is empty unless the list was written.
	Path string `json:"path,omitempty"`
}

// NormalizeAccessions cleans up an accession list and optionally writes it.
func NormalizeAccessions(_ context.Context, _ *mcp.CallToolRequest, input InputNormalizeAccessions) (*mcp.CallToolResult, OutputNormalizeAccessions, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, OutputNormalizeAccessions{}, fmt.Errorf("text is required")
	}

	ids := accession.Normalize(input.Text)
	out := OutputNormalizeAccessions{Accessions: ids, Count: len(ids)}

	if input.OutputPath != "" {
		f, err := accession.Write(input.Text, input.OutputPath)
		if err != nil {
			return nil, OutputNormalizeAccessions{}, err
		}
		out.Path = f.Path
	}
	return nil, out, nil
}
