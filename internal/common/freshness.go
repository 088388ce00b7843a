package common

import "time"

// Freshness TTLs for cached backend responses.
//
// Dashboard payloads change only when the batch jobs publish new aggregates,
// so a short TTL keeps the page responsive without hammering the backend. The
// stock list changes only when a ticker is added, and is additionally
// invalidated on POST /api/stocks. Headlines for a past date rarely change
// once scored, so they keep the longest TTL.
const (
	FreshnessDashboard = 5 * time.Minute
	FreshnessStocks    = 10 * time.Minute
	FreshnessHeadlines = 15 * time.Minute
)

// IsFresh returns true if the given timestamp is within the TTL.
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
