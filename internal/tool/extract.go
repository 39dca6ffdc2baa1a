// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/dataurl"
)

// MetadataExtractDataURL describes the extract_data_url tool.
var MetadataExtractDataURL = &mcp.Tool{
	Name: "extract_data_url",
	Description: "Decode a base64 data URL (data:<mime>;base64,<payload>) and write the decoded " +
		"bytes to a file on the server's local disk. Returns the absolute path of the written " +
		"file, its size in bytes and the MIME type declared in the data URL. " +
		"The file is created or truncated.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"data_url", "output_path"},
		"properties": map[string]interface{}{
			"data_url": map[string]interface{}{
				"type":        "string",
				"description": "Data URL with a base64 payload",
			},
			"output_path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the file to write. Relative paths resolve against the server's working directory.",
			},
		},
	},
}

// InputExtractDataURL is the input for the ExtractDataURL tool.
type InputExtractDataURL struct {
	DataURL    string `json:"data_url"`
	OutputPath string `json:"output_path"`
}

// OutputExtractDataURL is the output for the ExtractDataURL tool.
type OutputExtractDataURL struct {
	Path     string `json:"path"`
	Bytes    int64  `json:"bytes"`
	MIMEType string `json:"mime_type"`
}

// ExtractDataURL decodes a data URL and persists its payload.
func ExtractDataURL(_ context.Context, _ *mcp.CallToolRequest, input InputExtractDataURL) (*mcp.CallToolResult, OutputExtractDataURL, error) {
	if input.DataURL == "" {
		return nil, OutputExtractDataURL{}, fmt.Errorf("data_url is required")
	}
	if input.OutputPath == "" {
		return nil, OutputExtractDataURL{}, fmt.Errorf("output_path is required")
	}

	f, err := dataurl.Extract(input.DataURL, input.OutputPath)
	if err != nil {
		return nil, OutputExtractDataURL{}, err
	}

	return nil, OutputExtractDataURL{
		Path:     f.Path,
		Bytes:    f.Size,
		MIMEType: f.MIMEType,
	}, nil
}
