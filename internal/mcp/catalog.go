// Package mcp exposes the dashboard's data operations as MCP tools so
// assistants can query sentiment-vs-price alignment directly.
package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/config"
)

// allowedMethods is the whitelist of HTTP methods for catalog tools.
var allowedMethods = map[string]bool{
	"GET": true, "POST": true,
}

// CatalogTool describes one MCP tool and the REST endpoint it maps to.
type CatalogTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Method      string         `json:"method"`
	Path        string         `json:"path"`
	Params      []CatalogParam `json:"params"`
}

// CatalogParam describes one parameter for a catalog tool.
type CatalogParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, number, boolean
	Description string `json:"description"`
	Required    bool   `json:"required"`
	In          string `json:"in"`           // query, body
	DefaultFrom string `json:"default_from"` // e.g. "dashboard.default_ticker"
}

// StaticCatalog returns the portal's tool catalog. The backend exposes a
// fixed set of endpoints, so the catalog is compiled in rather than fetched.
func StaticCatalog() []CatalogTool {
	return []CatalogTool{
		{
			Name:        "get_dashboard",
			Description: "Get the sentiment-vs-price dashboard for a ticker: sentiment summary, price summary, alignment verdict, daily series, and recent headlines.",
			Method:      "GET",
			Path:        "/api/dashboard",
			Params: []CatalogParam{
				{Name: "ticker", Type: "string", Description: "Stock ticker symbol, e.g. TSLA", In: "query", DefaultFrom: "dashboard.default_ticker"},
				{Name: "period", Type: "number", Description: "Analysis window in days (7, 30, or 90)", In: "query", DefaultFrom: "dashboard.default_period"},
			},
		},
		{
			Name:        "list_stocks",
			Description: "List the tickers tracked by the sentiment pipeline.",
			Method:      "GET",
			Path:        "/api/stocks",
		},
		{
			Name:        "add_stock",
			Description: "Start tracking a ticker. Queues a historical backfill task; data appears once the pipeline has processed it.",
			Method:      "POST",
			Path:        "/api/stocks",
			Params: []CatalogParam{
				{Name: "ticker", Type: "string", Description: "Stock ticker symbol to track", Required: true, In: "body"},
			},
		},
		{
			Name:        "refresh_stock",
			Description: "Queue a refresh task to pull the latest prices and headlines for a tracked ticker.",
			Method:      "POST",
			Path:        "/api/stocks/refresh",
			Params: []CatalogParam{
				{Name: "ticker", Type: "string", Description: "Stock ticker symbol to refresh", Required: true, In: "body"},
			},
		},
		{
			Name:        "get_headlines_by_date",
			Description: "Get scored headlines for one ticker on a specific date.",
			Method:      "GET",
			Path:        "/api/headlines/by-date",
			Params: []CatalogParam{
				{Name: "ticker", Type: "string", Description: "Stock ticker symbol", Required: true, In: "query"},
				{Name: "date", Type: "string", Description: "Date in YYYY-MM-DD format", Required: true, In: "query"},
				{Name: "limit", Type: "number", Description: "Maximum headlines to return (1-50, default 10)", In: "query"},
			},
		},
	}
}

// ValidateCatalogTool validates a single catalog tool entry.
func ValidateCatalogTool(ct CatalogTool) error {
	if ct.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if ct.Method == "" {
		return fmt.Errorf("tool %q has empty method", ct.Name)
	}
	if !allowedMethods[strings.ToUpper(ct.Method)] {
		return fmt.Errorf("tool %q has unsupported method %q", ct.Name, ct.Method)
	}
	if ct.Path == "" {
		return fmt.Errorf("tool %q has empty path", ct.Name)
	}
	if !strings.HasPrefix(ct.Path, "/api/") {
		return fmt.Errorf("tool %q has invalid path %q (must start with /api/)", ct.Name, ct.Path)
	}
	if strings.Contains(ct.Path, "..") {
		return fmt.Errorf("tool %q has invalid path %q (contains ..)", ct.Name, ct.Path)
	}
	return nil
}

// ValidateCatalog filters and validates catalog entries, logging warnings for invalid or duplicate tools.
func ValidateCatalog(catalog []CatalogTool, logger *common.Logger) []CatalogTool {
	seen := make(map[string]bool, len(catalog))
	valid := make([]CatalogTool, 0, len(catalog))
	for _, ct := range catalog {
		if err := ValidateCatalogTool(ct); err != nil {
			logger.Warn().Str("error", err.Error()).Msg("skipping invalid catalog tool")
			continue
		}
		if seen[ct.Name] {
			logger.Warn().Str("name", ct.Name).Msg("skipping duplicate catalog tool")
			continue
		}
		seen[ct.Name] = true
		valid = append(valid, ct)
	}
	return valid
}

// BuildMCPTool converts a CatalogTool into an mcp.Tool with the appropriate schema.
func BuildMCPTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ct.Description)}
	for _, p := range ct.Params {
		if p.In == "query" || p.In == "body" {
			opts = append(opts, buildParamOption(p))
		}
	}
	return mcp.NewTool(ct.Name, opts...)
}

// buildParamOption maps a CatalogParam to the appropriate mcp-go tool option.
func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		return mcp.WithBoolean(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}

// GenericToolHandler creates a handler that routes an MCP tool call to
// the appropriate sentiment-api REST endpoint based on a CatalogTool definition.
func GenericToolHandler(p *MCPProxy, ct CatalogTool, dashboard config.DashboardConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := ct.Path
		bodyParams := map[string]interface{}{}
		queryParams := url.Values{}

		for _, param := range ct.Params {
			val := resolveParamValue(r, param, dashboard)
			switch param.In {
			case "query":
				if val != nil {
					strVal := fmt.Sprint(val)
					if strVal != "" {
						queryParams.Set(param.Name, strVal)
					}
				}
			case "body":
				if val == nil || fmt.Sprint(val) == "" {
					if param.Required {
						return errorResult(fmt.Sprintf("Error: %s parameter is required", param.Name)), nil
					}
					continue
				}
				bodyParams[param.Name] = val
			}
		}

		if len(queryParams) > 0 {
			path += "?" + queryParams.Encode()
		}

		var respBody []byte
		var err error
		switch strings.ToUpper(ct.Method) {
		case "GET":
			respBody, err = p.get(ctx, path)
		case "POST":
			respBody, err = p.post(ctx, path, bodyOrNil(bodyParams))
		default:
			return errorResult(fmt.Sprintf("Error: unsupported method %s", ct.Method)), nil
		}

		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(string(respBody))}}, nil
	}
}

// resolveParamValue extracts a parameter value from the MCP request,
// falling back to configured dashboard defaults when default_from is set.
func resolveParamValue(r mcp.CallToolRequest, param CatalogParam, dashboard config.DashboardConfig) interface{} {
	switch param.Type {
	case "number", "boolean":
		if args := r.GetArguments(); args != nil {
			if v, ok := args[param.Name]; ok {
				return v
			}
		}
	default:
		val := r.GetString(param.Name, "")
		if val != "" {
			return val
		}
	}

	switch param.DefaultFrom {
	case "dashboard.default_ticker":
		return dashboard.DefaultTicker
	case "dashboard.default_period":
		return dashboard.DefaultPeriod
	}

	return nil
}

// bodyOrNil returns nil if the body map is empty, otherwise returns the map.
// This prevents sending an empty JSON object for methods that don't need a body.
func bodyOrNil(body map[string]interface{}) interface{} {
	if len(body) == 0 {
		return nil
	}
	return body
}
