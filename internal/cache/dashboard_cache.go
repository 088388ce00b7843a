// Package cache stores recent backend responses so page loads and ticker
// switches do not hit sentiment-api on every request. Entries carry a
// fetched-at timestamp and are served only while fresh.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/interfaces"
	"github.com/sentireality/portal/internal/models"
)

const stocksKey = "stocks"

// envelope wraps a cached payload with its fetch time.
type envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Payload   json.RawMessage `json:"payload"`
}

// DashboardCache caches dashboard payloads, the tracked stock list, and
// per-date headlines in key-value storage.
type DashboardCache struct {
	storage      interfaces.KeyValueStorage
	logger       *common.Logger
	dashboardTTL time.Duration
	stocksTTL    time.Duration
	headlinesTTL time.Duration
}

// NewDashboardCache creates a cache over the given storage. Zero TTLs fall
// back to the package freshness defaults.
func NewDashboardCache(storage interfaces.KeyValueStorage, logger *common.Logger, dashboardTTL, stocksTTL time.Duration) *DashboardCache {
	if dashboardTTL <= 0 {
		dashboardTTL = common.FreshnessDashboard
	}
	if stocksTTL <= 0 {
		stocksTTL = common.FreshnessStocks
	}
	return &DashboardCache{
		storage:      storage,
		logger:       logger,
		dashboardTTL: dashboardTTL,
		stocksTTL:    stocksTTL,
		headlinesTTL: common.FreshnessHeadlines,
	}
}

func dashboardKey(ticker string, period int) string {
	return fmt.Sprintf("dashboard:%s:%d", ticker, period)
}

func headlinesKey(ticker, date string, limit int) string {
	return fmt.Sprintf("headlines:%s:%s:%d", ticker, date, limit)
}

// GetDashboard returns a fresh cached payload, or (nil, false) on miss or
// stale entry.
func (c *DashboardCache) GetDashboard(ctx context.Context, ticker string, period int) (*models.DashboardData, bool) {
	raw, err := c.storage.Get(ctx, dashboardKey(ticker, period))
	if err != nil {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("discarding unreadable cache entry")
		return nil, false
	}
	if !common.IsFresh(env.FetchedAt, c.dashboardTTL) {
		return nil, false
	}

	var data models.DashboardData
	if err := json.Unmarshal(env.Payload, &data); err != nil {
		return nil, false
	}
	return &data, true
}

// SetDashboard stores a payload for (ticker, period). Storage failures are
// logged and swallowed; caching is best-effort.
func (c *DashboardCache) SetDashboard(ctx context.Context, ticker string, period int, data *models.DashboardData) {
	if err := c.set(ctx, dashboardKey(ticker, period), data); err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("failed to cache dashboard")
	}
}

// GetStocks returns the fresh cached stock list, or (nil, false).
func (c *DashboardCache) GetStocks(ctx context.Context) ([]models.TrackedStock, bool) {
	raw, err := c.storage.Get(ctx, stocksKey)
	if err != nil {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, false
	}
	if !common.IsFresh(env.FetchedAt, c.stocksTTL) {
		return nil, false
	}

	var stocks []models.TrackedStock
	if err := json.Unmarshal(env.Payload, &stocks); err != nil {
		return nil, false
	}
	return stocks, true
}

// SetStocks stores the tracked stock list.
func (c *DashboardCache) SetStocks(ctx context.Context, stocks []models.TrackedStock) {
	if err := c.set(ctx, stocksKey, stocks); err != nil {
		c.logger.Warn().Err(err).Msg("failed to cache stock list")
	}
}

// GetHeadlines returns fresh cached headlines for (ticker, date, limit), or
// (nil, false).
func (c *DashboardCache) GetHeadlines(ctx context.Context, ticker, date string, limit int) ([]models.NewsItem, bool) {
	raw, err := c.storage.Get(ctx, headlinesKey(ticker, date, limit))
	if err != nil {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, false
	}
	if !common.IsFresh(env.FetchedAt, c.headlinesTTL) {
		return nil, false
	}

	var items []models.NewsItem
	if err := json.Unmarshal(env.Payload, &items); err != nil {
		return nil, false
	}
	return items, true
}

// SetHeadlines stores headlines for (ticker, date, limit).
func (c *DashboardCache) SetHeadlines(ctx context.Context, ticker, date string, limit int, items []models.NewsItem) {
	if err := c.set(ctx, headlinesKey(ticker, date, limit), items); err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("failed to cache headlines")
	}
}

// InvalidateTicker drops every cached dashboard and headlines entry for the
// ticker. Called after a refresh is queued so the next poll fetches new
// aggregates.
func (c *DashboardCache) InvalidateTicker(ctx context.Context, ticker string) {
	prefixes := []string{
		fmt.Sprintf("dashboard:%s:", ticker),
		fmt.Sprintf("headlines:%s:", ticker),
	}
	all, err := c.storage.GetAll(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to scan cache for invalidation")
		return
	}
	for key := range all {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				if err := c.storage.Delete(ctx, key); err != nil {
					c.logger.Warn().Err(err).Str("key", key).Msg("failed to invalidate cache entry")
				}
				break
			}
		}
	}
}

// InvalidateStocks drops the cached stock list. Called after a ticker is
// added.
func (c *DashboardCache) InvalidateStocks(ctx context.Context) {
	if err := c.storage.Delete(ctx, stocksKey); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate stock list")
	}
}

func (c *DashboardCache) set(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	env, err := json.Marshal(envelope{FetchedAt: time.Now(), Payload: body})
	if err != nil {
		return err
	}
	return c.storage.Set(ctx, key, string(env))
}
