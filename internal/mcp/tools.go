package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sentireality/portal/internal/config"
)

// RegisterToolsFromCatalog registers MCP tools from catalog entries.
func RegisterToolsFromCatalog(s *server.MCPServer, p *MCPProxy, catalog []CatalogTool, dashboard config.DashboardConfig) int {
	for _, ct := range catalog {
		tool := BuildMCPTool(ct)
		handler := GenericToolHandler(p, ct, dashboard)
		s.AddTool(tool, handler)
	}
	return len(catalog)
}
