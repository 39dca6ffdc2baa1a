// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the preprocessing helpers as MCP tools.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer returns an MCP server with every tool registered.
func NewServer(name, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	mcp.AddTool(server, MetadataExtractDataURL, ExtractDataURL)
	mcp.AddTool(server, MetadataNormalizeAccessions, NormalizeAccessions)
	return server
}
