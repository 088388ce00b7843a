package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sentireality/portal/internal/common"
)

// maxResponseSize caps the proxy response body to prevent OOM from unexpectedly large responses.
const maxResponseSize = 10 << 20 // 10MB

// MCPProxy connects MCP tool calls to the REST API on sentiment-api.
type MCPProxy struct {
	serverURL  string
	httpClient *http.Client
	logger     *common.Logger
}

// NewMCPProxy creates a new MCP proxy targeting the given sentiment-api URL.
func NewMCPProxy(serverURL string, timeout time.Duration, logger *common.Logger) *MCPProxy {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MCPProxy{
		serverURL: serverURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ServerURL returns the configured server URL.
func (p *MCPProxy) ServerURL() string {
	return p.serverURL
}

// get performs a GET request to the given path on sentiment-api.
func (p *MCPProxy) get(ctx context.Context, path string) ([]byte, error) {
	p.logger.Debug().Str("method", "GET").Str("path", path).Msg("proxy request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.serverURL+path, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		p.logger.Error().Str("method", "GET").Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("proxy request failed")
		return nil, fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	p.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("proxy response")

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	return body, nil
}

// post performs a POST request with a JSON body to the given path on sentiment-api.
func (p *MCPProxy) post(ctx context.Context, path string, data interface{}) ([]byte, error) {
	p.logger.Debug().Str("method", "POST").Str("path", path).Msg("proxy request")

	var bodyReader io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.serverURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		p.logger.Error().Str("method", "POST").Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("proxy request failed")
		return nil, fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	p.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("proxy response")

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	return body, nil
}

// parseErrorResponse extracts a meaningful error message from an HTTP error response.
func parseErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		if errResp.Detail != "" {
			return fmt.Errorf("%s", errResp.Detail)
		}
	}
	return fmt.Errorf("server returned %d: %s", statusCode, string(body))
}
