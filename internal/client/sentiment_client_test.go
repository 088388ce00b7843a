package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sentireality/portal/internal/models"
)

func TestGetDashboard(t *testing.T) {
	score := 0.42
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboard" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("ticker"); got != "TSLA" {
			t.Errorf("expected ticker TSLA, got %s", got)
		}
		if got := r.URL.Query().Get("period"); got != "30" {
			t.Errorf("expected period 30, got %s", got)
		}
		if got := r.URL.Query().Get("headlines_limit"); got != "3" {
			t.Errorf("expected headlines_limit 3, got %s", got)
		}
		json.NewEncoder(w).Encode(models.DashboardData{
			Ticker: "TSLA",
			Period: 30,
			SentimentSummary: models.SentimentSummary{
				CurrentScore: &score,
			},
		})
	}))
	defer server.Close()

	c := NewSentimentClient(server.URL, 5*time.Second)
	data, err := c.GetDashboard(context.Background(), "TSLA", 30, 3)
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if data.Ticker != "TSLA" || data.Period != 30 {
		t.Errorf("unexpected payload: %+v", data)
	}
	if data.SentimentSummary.CurrentScore == nil || *data.SentimentSummary.CurrentScore != 0.42 {
		t.Errorf("expected current_score 0.42, got %v", data.SentimentSummary.CurrentScore)
	}
}

func TestGetDashboardNullSummaries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Summaries with all-null fields, as the backend returns for a ticker
		// with no data in the window.
		w.Write([]byte(`{"ticker":"GME","period":7,"sentiment_summary":{"current_score":null,"trend":null,"dominant_label":null},"price_summary":{},"alignment":{},"daily_data":[],"headlines":[]}`))
	}))
	defer server.Close()

	c := NewSentimentClient(server.URL, 5*time.Second)
	data, err := c.GetDashboard(context.Background(), "GME", 7, 3)
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if data.SentimentSummary.CurrentScore != nil {
		t.Error("expected nil current_score")
	}
	if data.Alignment.Score != nil {
		t.Error("expected nil alignment score")
	}
	if len(data.DailyData) != 0 {
		t.Errorf("expected empty daily_data, got %d rows", len(data.DailyData))
	}
}

func TestListStocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"ticker":"TSLA","is_active":true},{"ticker":"PFE","is_active":false}]`))
	}))
	defer server.Close()

	c := NewSentimentClient(server.URL, 5*time.Second)
	stocks, err := c.ListStocks(context.Background())
	if err != nil {
		t.Fatalf("ListStocks failed: %v", err)
	}
	if len(stocks) != 2 {
		t.Fatalf("expected 2 stocks, got %d", len(stocks))
	}
	if stocks[1].Ticker != "PFE" || stocks[1].IsActive {
		t.Errorf("unexpected second stock: %+v", stocks[1])
	}
}

func TestAddStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["ticker"] != "NVDA" {
			t.Errorf("expected ticker NVDA in body, got %s", body["ticker"])
		}
		w.Write([]byte(`{"queued":true,"task_type":"BACKFILL_STOCK","ticker":"NVDA","task_id":"abc-123"}`))
	}))
	defer server.Close()

	c := NewSentimentClient(server.URL, 5*time.Second)
	task, err := c.AddStock(context.Background(), "NVDA")
	if err != nil {
		t.Fatalf("AddStock failed: %v", err)
	}
	if !task.Queued || task.TaskType != "BACKFILL_STOCK" {
		t.Errorf("unexpected task response: %+v", task)
	}
	if task.TaskID == nil || *task.TaskID != "abc-123" {
		t.Errorf("expected task_id abc-123, got %v", task.TaskID)
	}
}

func TestRefreshStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stocks/refresh" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"queued":true,"task_type":"REFRESH_STOCK","ticker":"TSLA"}`))
	}))
	defer server.Close()

	c := NewSentimentClient(server.URL, 5*time.Second)
	task, err := c.RefreshStock(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("RefreshStock failed: %v", err)
	}
	if task.TaskType != "REFRESH_STOCK" {
		t.Errorf("expected REFRESH_STOCK, got %s", task.TaskType)
	}
}

func TestHeadlinesByDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2026-08-20" {
			t.Errorf("expected date 2026-08-20, got %s", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("expected limit 10, got %s", got)
		}
		w.Write([]byte(`[{"title":"TSLA rallies","sentiment_label":"POSITIVE"}]`))
	}))
	defer server.Close()

	c := NewSentimentClient(server.URL, 5*time.Second)
	items, err := c.HeadlinesByDate(context.Background(), "TSLA", "2026-08-20", 10)
	if err != nil {
		t.Fatalf("HeadlinesByDate failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "TSLA rallies" {
		t.Errorf("unexpected headlines: %+v", items)
	}
}

func TestErrorResponseExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusNotFound, `{"error":"ticker not tracked"}`, "ticker not tracked"},
		{"detail field", http.StatusUnprocessableEntity, `{"detail":"invalid period"}`, "invalid period"},
		{"plain body", http.StatusInternalServerError, `boom`, "sentiment-api returned 500: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewSentimentClient(server.URL, 5*time.Second)
			_, err := c.ListStocks(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestUnreachableBackend(t *testing.T) {
	c := NewSentimentClient("http://127.0.0.1:1", 500*time.Millisecond)
	if err := c.Health(context.Background()); err == nil {
		t.Fatal("expected error for unreachable backend")
	}
}
