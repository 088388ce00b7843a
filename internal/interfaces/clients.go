// Package interfaces defines service contracts for the portal.
package interfaces

import (
	"context"

	"github.com/sentireality/portal/internal/models"
)

// SentimentAPI provides access to the sentiment-api backend. The portal only
// reads precomputed data and queues tasks; all scoring and alignment
// computation happens behind this interface.
type SentimentAPI interface {
	// GetDashboard retrieves the dashboard payload for a ticker and period (days).
	GetDashboard(ctx context.Context, ticker string, period, headlinesLimit int) (*models.DashboardData, error)

	// ListStocks retrieves the tracked stock list.
	ListStocks(ctx context.Context) ([]models.TrackedStock, error)

	// AddStock starts tracking a ticker and queues a BACKFILL_STOCK task.
	AddStock(ctx context.Context, ticker string) (*models.TaskResponse, error)

	// RefreshStock queues a REFRESH_STOCK task for an already-tracked ticker.
	RefreshStock(ctx context.Context, ticker string) (*models.TaskResponse, error)

	// HeadlinesByDate retrieves scored headlines for a ticker on one date (YYYY-MM-DD).
	HeadlinesByDate(ctx context.Context, ticker, date string, limit int) ([]models.NewsItem, error)

	// Health reports whether the backend is reachable.
	Health(ctx context.Context) error

	// Version retrieves the backend version fields, if exposed.
	Version(ctx context.Context) (map[string]string, error)
}
