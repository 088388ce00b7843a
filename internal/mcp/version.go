package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sentireality/portal/internal/config"
)

// versionInfo holds version fields for one component.
type versionInfo struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
}

// VersionTool returns the mcp.Tool definition for the combined get_version tool.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get portal and sentiment-api version info. Use this to verify connectivity."),
	)
}

// VersionToolHandler returns a handler that combines portal and sentiment-api version info.
func VersionToolHandler(proxy *MCPProxy) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := map[string]versionInfo{}

		result["portal"] = versionInfo{
			Version: config.GetVersion(),
			Build:   config.GetBuild(),
			Commit:  config.GetGitCommit(),
		}

		// Fetch sentiment-api version (graceful degradation if unreachable).
		body, err := proxy.get(ctx, "/api/version")
		if err == nil {
			var serverResp map[string]string
			if json.Unmarshal(body, &serverResp) == nil {
				result["sentiment_api"] = versionInfo{
					Version: serverResp["version"],
					Build:   serverResp["build"],
					Commit:  serverResp["git_commit"],
				}
			}
		}

		out, err := json.Marshal(result)
		if err != nil {
			return errorResult("failed to marshal version info"), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(string(out))},
		}, nil
	}
}
