// Package models holds the read-only view model mirrored from the
// sentiment-api JSON responses. Summary fields are pointer-typed because the
// backend omits them when no data exists for the requested window; the page
// renders placeholders for missing values.
package models

// PricePoint is one day of price data.
type PricePoint struct {
	Date     string   `json:"date"` // YYYY-MM-DD
	Close    float64  `json:"close"`
	AdjClose *float64 `json:"adj_close,omitempty"`
	Volume   *int64   `json:"volume,omitempty"`
}

// DailySentiment is one day of aggregated article sentiment.
type DailySentiment struct {
	Date          string  `json:"date"`
	AvgScore      float64 `json:"avg_score"` // [-1, +1]
	ArticleCount  int     `json:"article_count"`
	PositiveCount int     `json:"positive_count"`
	NeutralCount  int     `json:"neutral_count"`
	NegativeCount int     `json:"negative_count"`
}

// WindowMetric is the windowed sentiment-vs-price metric ending on DateEnd.
type WindowMetric struct {
	DateEnd          string   `json:"date_end"`
	Corr             *float64 `json:"corr,omitempty"`
	DirectionalMatch *float64 `json:"directional_match,omitempty"`
	AlignmentScore   *float64 `json:"alignment_score,omitempty"`
	MisalignmentDays *int     `json:"misalignment_days,omitempty"`
	Interpretation   *string  `json:"interpretation,omitempty"`
}

// SentimentSummary summarizes sentiment over the requested period.
// Trend is "up", "down", or "stable"; DominantLabel is POSITIVE, NEUTRAL, or
// NEGATIVE. Both are rendered as-is with fallbacks for unknown values.
type SentimentSummary struct {
	CurrentScore  *float64 `json:"current_score,omitempty"`
	Trend         *string  `json:"trend,omitempty"`
	DominantLabel *string  `json:"dominant_label,omitempty"`
}

// PriceSummary summarizes price over the requested period.
type PriceSummary struct {
	CurrentPrice *float64 `json:"current_price,omitempty"`
	PeriodReturn *float64 `json:"period_return,omitempty"`
}

// AlignmentSummary is the backend-computed alignment verdict. All fields are
// opaque to the portal.
type AlignmentSummary struct {
	Score            *float64 `json:"score,omitempty"`
	MisalignmentDays *int     `json:"misalignment_days,omitempty"`
	Interpretation   *string  `json:"interpretation,omitempty"`
}

// DailyDataPoint joins price, sentiment, and metric for a single date. Any of
// the three can be nil when that series has no data for the date.
type DailyDataPoint struct {
	Date      string          `json:"date"`
	Price     *PricePoint     `json:"price,omitempty"`
	Sentiment *DailySentiment `json:"sentiment,omitempty"`
	Metric    *WindowMetric   `json:"metric,omitempty"`
}

// NewsItem is a scored headline.
type NewsItem struct {
	ID             *string  `json:"id,omitempty"`
	Title          string   `json:"title"`
	Source         *string  `json:"source,omitempty"`
	PublishedAt    *string  `json:"published_at,omitempty"`
	SentimentLabel *string  `json:"sentiment_label,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
	Snippet        *string  `json:"snippet,omitempty"`
	URL            *string  `json:"url,omitempty"`
}

// Coverage reports how much of the requested sentiment period actually has
// data, so the page can flag coverage gaps.
type Coverage struct {
	SentimentDaysAvailable   int     `json:"sentiment_days_available"`
	SentimentPeriodRequested int     `json:"sentiment_period_requested"`
	SentimentPeriodUsed      int     `json:"sentiment_period_used"`
	CoverageStart            *string `json:"coverage_start,omitempty"`
	CoverageEnd              *string `json:"coverage_end,omitempty"`
}

// DashboardData is the full payload for one (ticker, period) dashboard view.
type DashboardData struct {
	Ticker           string           `json:"ticker"`
	Period           int              `json:"period"`
	SentimentSummary SentimentSummary `json:"sentiment_summary"`
	PriceSummary     PriceSummary     `json:"price_summary"`
	Alignment        AlignmentSummary `json:"alignment"`
	DailyData        []DailyDataPoint `json:"daily_data"`
	Headlines        []NewsItem       `json:"headlines"`
	Coverage         *Coverage        `json:"coverage,omitempty"`
}

// TrackedStock is one entry from GET /api/stocks.
type TrackedStock struct {
	Ticker   string `json:"ticker"`
	IsActive bool   `json:"is_active"`
}

// TaskResponse acknowledges a queued backfill or refresh task.
type TaskResponse struct {
	Queued   bool    `json:"queued"`
	TaskType string  `json:"task_type"` // BACKFILL_STOCK or REFRESH_STOCK
	Ticker   string  `json:"ticker"`
	TaskID   *string `json:"task_id,omitempty"`
}
