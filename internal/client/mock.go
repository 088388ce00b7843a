package client

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sentireality/portal/internal/models"
)

// mockBasePrices seeds the random walk per ticker so demo data looks roughly
// plausible for the well-known symbols.
var mockBasePrices = map[string]float64{
	"SPY":  450,
	"TSLA": 245,
	"AAPL": 185,
	"NVDA": 520,
	"JPM":  195,
	"PFE":  28,
	"GME":  22,
}

// MockClient serves generated dashboard data without a backend. Used for demo
// deployments and container tests where no sentiment-api is available.
type MockClient struct {
	mu     sync.Mutex
	rng    *rand.Rand
	stocks []models.TrackedStock
}

// NewMockClient creates a mock backend pre-tracking the default demo tickers.
func NewMockClient() *MockClient {
	return &MockClient{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		stocks: []models.TrackedStock{
			{Ticker: "TSLA", IsActive: true},
			{Ticker: "AAPL", IsActive: true},
			{Ticker: "NVDA", IsActive: true},
			{Ticker: "SPY", IsActive: true},
		},
	}
}

// GetDashboard returns a generated payload with a random-walk price series.
// At most 14 daily points are generated regardless of period, matching the
// backend's demo behaviour.
func (m *MockClient) GetDashboard(_ context.Context, ticker string, period, headlinesLimit int) (*models.DashboardData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	price, ok := mockBasePrices[ticker]
	if !ok {
		price = 100
	}

	days := period
	if days > 14 {
		days = 14
	}

	daily := make([]models.DailyDataPoint, 0, days)
	today := time.Now()
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, -(period - i - 1)).Format("2006-01-02")
		price *= 1 + m.uniform(-0.02, 0.02)
		volume := int64(m.rng.Intn(1_500_000) + 500_000)
		sentiment := round3(m.uniform(-0.3, 0.5))
		alignment := round2(m.uniform(-0.5, 0.8))
		misDays := m.rng.Intn(4)
		interp := m.pick("Aligned", "Noisy", "Misleading")

		daily = append(daily, models.DailyDataPoint{
			Date: d,
			Price: &models.PricePoint{
				Date:   d,
				Close:  round2(price),
				Volume: &volume,
			},
			Sentiment: &models.DailySentiment{
				Date:          d,
				AvgScore:      sentiment,
				ArticleCount:  m.rng.Intn(26) + 5,
				PositiveCount: m.rng.Intn(14) + 2,
				NeutralCount:  m.rng.Intn(10) + 1,
				NegativeCount: m.rng.Intn(9),
			},
			Metric: &models.WindowMetric{
				DateEnd:          d,
				AlignmentScore:   &alignment,
				MisalignmentDays: &misDays,
				Interpretation:   &interp,
			},
		})
	}

	headlines := m.mockHeadlines(ticker, headlinesLimit)

	currentScore := round2(m.uniform(-0.2, 0.4))
	trend := m.pick("up", "down", "stable")
	dominant := m.pick("POSITIVE", "NEUTRAL", "NEGATIVE")
	currentPrice := round2(price)
	periodReturn := round2(m.uniform(-5, 8))
	alignScore := round2(m.uniform(-0.3, 0.7))
	alignMisDays := m.rng.Intn(5) + 1
	alignInterp := m.pick("Aligned", "Noisy", "Misleading")

	return &models.DashboardData{
		Ticker: ticker,
		Period: period,
		SentimentSummary: models.SentimentSummary{
			CurrentScore:  &currentScore,
			Trend:         &trend,
			DominantLabel: &dominant,
		},
		PriceSummary: models.PriceSummary{
			CurrentPrice: &currentPrice,
			PeriodReturn: &periodReturn,
		},
		Alignment: models.AlignmentSummary{
			Score:            &alignScore,
			MisalignmentDays: &alignMisDays,
			Interpretation:   &alignInterp,
		},
		DailyData: daily,
		Headlines: headlines,
	}, nil
}

// ListStocks returns the in-memory tracked list.
func (m *MockClient) ListStocks(_ context.Context) ([]models.TrackedStock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.TrackedStock, len(m.stocks))
	copy(out, m.stocks)
	return out, nil
}

// AddStock appends to the in-memory list and acknowledges a backfill task.
func (m *MockClient) AddStock(_ context.Context, ticker string) (*models.TaskResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.stocks {
		if s.Ticker == ticker {
			return nil, fmt.Errorf("%s is already tracked", ticker)
		}
	}
	m.stocks = append(m.stocks, models.TrackedStock{Ticker: ticker, IsActive: true})

	taskID := uuid.New().String()
	return &models.TaskResponse{
		Queued:   true,
		TaskType: "BACKFILL_STOCK",
		Ticker:   ticker,
		TaskID:   &taskID,
	}, nil
}

// RefreshStock acknowledges a refresh task for a tracked ticker.
func (m *MockClient) RefreshStock(_ context.Context, ticker string) (*models.TaskResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	taskID := uuid.New().String()
	return &models.TaskResponse{
		Queued:   true,
		TaskType: "REFRESH_STOCK",
		Ticker:   ticker,
		TaskID:   &taskID,
	}, nil
}

// HeadlinesByDate returns generated headlines dated to the requested day.
func (m *MockClient) HeadlinesByDate(_ context.Context, ticker, date string, limit int) ([]models.NewsItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.mockHeadlines(ticker, limit)
	for i := range items {
		items[i].PublishedAt = &date
	}
	return items, nil
}

// Health always succeeds.
func (m *MockClient) Health(_ context.Context) error {
	return nil
}

// Version identifies the mock backend.
func (m *MockClient) Version(_ context.Context) (map[string]string, error) {
	return map[string]string{"service": "sentiment-api", "version": "mock"}, nil
}

func (m *MockClient) mockHeadlines(ticker string, limit int) []models.NewsItem {
	posLabel, neuLabel := "POSITIVE", "NEUTRAL"
	posConf, neuConf := 0.85, 0.72
	src1, src2 := "MockNews", "MockAnalysis"
	snippet := "Mock headline for demo purposes."
	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	id1, id2 := "mock-1", "mock-2"

	items := []models.NewsItem{
		{
			ID:             &id1,
			Title:          fmt.Sprintf("%s shares move on earnings sentiment", ticker),
			Source:         &src1,
			PublishedAt:    &today,
			SentimentLabel: &posLabel,
			Confidence:     &posConf,
			Snippet:        &snippet,
		},
		{
			ID:             &id2,
			Title:          fmt.Sprintf("Analysts discuss %s outlook", ticker),
			Source:         &src2,
			PublishedAt:    &yesterday,
			SentimentLabel: &neuLabel,
			Confidence:     &neuConf,
		},
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (m *MockClient) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}

func (m *MockClient) pick(options ...string) string {
	return options[m.rng.Intn(len(options))]
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
