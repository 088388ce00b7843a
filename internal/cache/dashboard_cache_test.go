package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/models"
)

// memoryStorage is an in-memory interfaces.KeyValueStorage for tests.
type memoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string]string)}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", errNotFound
	}
	return val, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryStorage) GetAll(_ context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

type notFoundError struct{}

func (notFoundError) Error() string { return "key not found" }

var errNotFound = notFoundError{}

func testDashboard(ticker string, period int) *models.DashboardData {
	return &models.DashboardData{Ticker: ticker, Period: period}
}

func TestDashboardCacheRoundTrip(t *testing.T) {
	c := NewDashboardCache(newMemoryStorage(), common.NewSilentLogger(), time.Minute, time.Minute)
	ctx := context.Background()

	if _, ok := c.GetDashboard(ctx, "TSLA", 30); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.SetDashboard(ctx, "TSLA", 30, testDashboard("TSLA", 30))

	data, ok := c.GetDashboard(ctx, "TSLA", 30)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if data.Ticker != "TSLA" || data.Period != 30 {
		t.Errorf("unexpected cached payload: %+v", data)
	}

	// Different period is a separate key.
	if _, ok := c.GetDashboard(ctx, "TSLA", 7); ok {
		t.Error("expected miss for different period")
	}
}

func TestDashboardCacheExpiry(t *testing.T) {
	c := NewDashboardCache(newMemoryStorage(), common.NewSilentLogger(), time.Millisecond, time.Minute)
	ctx := context.Background()

	c.SetDashboard(ctx, "AAPL", 30, testDashboard("AAPL", 30))
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.GetDashboard(ctx, "AAPL", 30); ok {
		t.Error("expected stale entry to miss")
	}
}

func TestDashboardCacheInvalidateTicker(t *testing.T) {
	c := NewDashboardCache(newMemoryStorage(), common.NewSilentLogger(), time.Minute, time.Minute)
	ctx := context.Background()

	c.SetDashboard(ctx, "TSLA", 7, testDashboard("TSLA", 7))
	c.SetDashboard(ctx, "TSLA", 30, testDashboard("TSLA", 30))
	c.SetDashboard(ctx, "NVDA", 30, testDashboard("NVDA", 30))

	c.InvalidateTicker(ctx, "TSLA")

	if _, ok := c.GetDashboard(ctx, "TSLA", 7); ok {
		t.Error("TSLA 7d should be invalidated")
	}
	if _, ok := c.GetDashboard(ctx, "TSLA", 30); ok {
		t.Error("TSLA 30d should be invalidated")
	}
	if _, ok := c.GetDashboard(ctx, "NVDA", 30); !ok {
		t.Error("NVDA should survive TSLA invalidation")
	}
}

func TestHeadlinesCache(t *testing.T) {
	c := NewDashboardCache(newMemoryStorage(), common.NewSilentLogger(), time.Minute, time.Minute)
	ctx := context.Background()

	if _, ok := c.GetHeadlines(ctx, "TSLA", "2026-08-20", 10); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.SetHeadlines(ctx, "TSLA", "2026-08-20", 10, []models.NewsItem{{Title: "TSLA rallies"}})

	items, ok := c.GetHeadlines(ctx, "TSLA", "2026-08-20", 10)
	if !ok || len(items) != 1 || items[0].Title != "TSLA rallies" {
		t.Errorf("unexpected cached headlines: %+v (hit=%v)", items, ok)
	}

	// Different date and limit are separate keys.
	if _, ok := c.GetHeadlines(ctx, "TSLA", "2026-08-21", 10); ok {
		t.Error("expected miss for different date")
	}
	if _, ok := c.GetHeadlines(ctx, "TSLA", "2026-08-20", 5); ok {
		t.Error("expected miss for different limit")
	}
}

func TestInvalidateTickerDropsHeadlines(t *testing.T) {
	c := NewDashboardCache(newMemoryStorage(), common.NewSilentLogger(), time.Minute, time.Minute)
	ctx := context.Background()

	c.SetHeadlines(ctx, "TSLA", "2026-08-20", 10, []models.NewsItem{{Title: "TSLA rallies"}})
	c.SetHeadlines(ctx, "NVDA", "2026-08-20", 10, []models.NewsItem{{Title: "NVDA earnings"}})

	c.InvalidateTicker(ctx, "TSLA")

	if _, ok := c.GetHeadlines(ctx, "TSLA", "2026-08-20", 10); ok {
		t.Error("TSLA headlines should be invalidated")
	}
	if _, ok := c.GetHeadlines(ctx, "NVDA", "2026-08-20", 10); !ok {
		t.Error("NVDA headlines should survive TSLA invalidation")
	}
}

func TestStocksCache(t *testing.T) {
	c := NewDashboardCache(newMemoryStorage(), common.NewSilentLogger(), time.Minute, time.Minute)
	ctx := context.Background()

	if _, ok := c.GetStocks(ctx); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.SetStocks(ctx, []models.TrackedStock{{Ticker: "TSLA", IsActive: true}})

	stocks, ok := c.GetStocks(ctx)
	if !ok || len(stocks) != 1 || stocks[0].Ticker != "TSLA" {
		t.Errorf("unexpected cached stocks: %+v (hit=%v)", stocks, ok)
	}

	c.InvalidateStocks(ctx)
	if _, ok := c.GetStocks(ctx); ok {
		t.Error("expected miss after invalidation")
	}
}

func TestCorruptCacheEntryIsMiss(t *testing.T) {
	storage := newMemoryStorage()
	c := NewDashboardCache(storage, common.NewSilentLogger(), time.Minute, time.Minute)
	ctx := context.Background()

	storage.Set(ctx, "dashboard:TSLA:30", "not json")

	if _, ok := c.GetDashboard(ctx, "TSLA", 30); ok {
		t.Error("corrupt entry should read as a miss")
	}
}
