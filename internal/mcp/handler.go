package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/config"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
	catalog    []CatalogTool
}

// NewHandler creates a new MCP handler with the static tool catalog
// registered against the configured sentiment-api.
func NewHandler(cfg *config.Config, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"sentireality-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	proxy := NewMCPProxy(cfg.API.URL, cfg.API.GetTimeout(), logger)

	validated := ValidateCatalog(StaticCatalog(), logger)
	toolCount := RegisterToolsFromCatalog(mcpSrv, proxy, validated, cfg.Dashboard)

	mcpSrv.AddTool(SummaryTool(), SummaryToolHandler(proxy, cfg.Dashboard))
	mcpSrv.AddTool(VersionTool(), VersionToolHandler(proxy))

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount+2).
		Str("api_url", cfg.API.URL).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
		catalog:    validated,
	}
}

// Catalog returns a copy of the validated tool catalog.
func (h *Handler) Catalog() []CatalogTool {
	result := make([]CatalogTool, len(h.catalog))
	copy(result, h.catalog)
	return result
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
