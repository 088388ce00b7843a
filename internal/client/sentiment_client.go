// Package client talks to the sentiment-api backend. The backend owns all
// scoring, aggregation, and alignment computation; this client only reads
// precomputed JSON and queues tasks.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sentireality/portal/internal/models"
)

// maxResponseSize caps response bodies to prevent OOM from unexpectedly large
// responses. Dashboard payloads for a 90-day period are well under this.
const maxResponseSize = 10 << 20 // 10MB

// SentimentClient communicates with the sentiment-api REST API.
type SentimentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSentimentClient creates a new client targeting the given backend URL.
func NewSentimentClient(baseURL string, timeout time.Duration) *SentimentClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SentimentClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetDashboard fetches the dashboard payload.
// GET /api/dashboard?ticker=<T>&period=<days>&headlines_limit=<n>
func (c *SentimentClient) GetDashboard(ctx context.Context, ticker string, period, headlinesLimit int) (*models.DashboardData, error) {
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("period", strconv.Itoa(period))
	if headlinesLimit > 0 {
		q.Set("headlines_limit", strconv.Itoa(headlinesLimit))
	}

	body, err := c.get(ctx, "/api/dashboard?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var data models.DashboardData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard response: %w", err)
	}
	return &data, nil
}

// ListStocks fetches the tracked stock list.
// GET /api/stocks -> [{ticker, is_active}]
func (c *SentimentClient) ListStocks(ctx context.Context) ([]models.TrackedStock, error) {
	body, err := c.get(ctx, "/api/stocks")
	if err != nil {
		return nil, err
	}

	var stocks []models.TrackedStock
	if err := json.Unmarshal(body, &stocks); err != nil {
		return nil, fmt.Errorf("failed to parse stock list: %w", err)
	}
	return stocks, nil
}

// AddStock starts tracking a ticker and queues a BACKFILL_STOCK task.
// POST /api/stocks with {ticker} -> {queued, task_type, ticker, task_id}
func (c *SentimentClient) AddStock(ctx context.Context, ticker string) (*models.TaskResponse, error) {
	return c.postTask(ctx, "/api/stocks", ticker)
}

// RefreshStock queues a REFRESH_STOCK task.
// POST /api/stocks/refresh with {ticker} -> {queued, task_type, ticker, task_id}
func (c *SentimentClient) RefreshStock(ctx context.Context, ticker string) (*models.TaskResponse, error) {
	return c.postTask(ctx, "/api/stocks/refresh", ticker)
}

// HeadlinesByDate fetches scored headlines for one ticker and date.
// GET /api/headlines/by-date?ticker=<T>&date=<YYYY-MM-DD>&limit=<n>
func (c *SentimentClient) HeadlinesByDate(ctx context.Context, ticker, date string, limit int) ([]models.NewsItem, error) {
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("date", date)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/api/headlines/by-date?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var items []models.NewsItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse headlines: %w", err)
	}
	return items, nil
}

// Health reports whether the backend answers its health endpoint.
func (c *SentimentClient) Health(ctx context.Context) error {
	_, err := c.get(ctx, "/api/health")
	return err
}

// Version fetches the backend version fields.
func (c *SentimentClient) Version(ctx context.Context) (map[string]string, error) {
	body, err := c.get(ctx, "/api/version")
	if err != nil {
		return nil, err
	}

	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse version response: %w", err)
	}
	return fields, nil
}

// postTask posts {ticker} to a task endpoint and decodes the TaskResponse.
func (c *SentimentClient) postTask(ctx context.Context, path, ticker string) (*models.TaskResponse, error) {
	jsonData, err := json.Marshal(map[string]string{"ticker": ticker})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach sentiment-api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	var task models.TaskResponse
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task response: %w", err)
	}
	return &task, nil
}

// get performs a GET and returns the body, converting non-2xx responses into
// a single human-readable error.
func (c *SentimentClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach sentiment-api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	return body, nil
}

// parseErrorResponse extracts a meaningful error message from an HTTP error
// response. The backend uses {"error": ...} on most routes and FastAPI-style
// {"detail": ...} on validation failures.
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
	return fmt.Errorf("sentiment-api returned %d: %s", statusCode, string(body))
}
