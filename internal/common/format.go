package common

import (
	"fmt"
	"strings"
	"time"
)

// Placeholder is rendered wherever the backend returned no value.
const Placeholder = "—"

// Sentiment label badges. Anything outside this set falls back to BadgeNeutral.
const (
	BadgePositive = "POSITIVE"
	BadgeNeutral  = "NEUTRAL"
	BadgeNegative = "NEGATIVE"
)

// Score band thresholds for alignment colouring. Bands drive CSS classes only;
// the score itself is backend-computed and opaque.
const (
	alignedThreshold    = 0.3
	misleadingThreshold = -0.1
)

// FormatScore formats a sentiment or alignment score with an explicit sign,
// or the placeholder when the value is missing.
func FormatScore(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%+.2f", *v)
}

// FormatPeriod formats a period in days as "30d".
func FormatPeriod(days int) string {
	return fmt.Sprintf("%dd", days)
}

// FormatPrice formats a price, or the placeholder when missing.
func FormatPrice(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("$%.2f", *v)
}

// FormatSignedPct formats a percentage with +/- prefix, or the placeholder
// when missing.
func FormatSignedPct(v *float64) string {
	if v == nil {
		return Placeholder
	}
	if *v >= 0 {
		return fmt.Sprintf("+%.2f%%", *v)
	}
	return fmt.Sprintf("%.2f%%", *v)
}

// FormatVolume compacts a share volume to K/M suffixes.
func FormatVolume(v *int64) string {
	if v == nil {
		return Placeholder
	}
	n := float64(*v)
	switch {
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	default:
		return fmt.Sprintf("%d", *v)
	}
}

// FormatDate renders an ISO date (YYYY-MM-DD) as "Jan 2". Unparseable input
// passes through unchanged so raw backend values are never hidden.
func FormatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2")
}

// FormatCount formats an optional integer, or the placeholder when missing.
func FormatCount(v *int) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d", *v)
}

// SentimentBadge normalizes a sentiment label to one of the three badges.
// Unknown or missing labels fall back to the neutral badge.
func SentimentBadge(label string) string {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case BadgePositive:
		return BadgePositive
	case BadgeNegative:
		return BadgeNegative
	default:
		return BadgeNeutral
	}
}

// ScoreBand maps an alignment score to a display band: "aligned", "noisy",
// or "misleading". Missing scores map to "unknown".
func ScoreBand(v *float64) string {
	if v == nil {
		return "unknown"
	}
	switch {
	case *v >= alignedThreshold:
		return "aligned"
	case *v < misleadingThreshold:
		return "misleading"
	default:
		return "noisy"
	}
}

// TrendArrow maps a trend value to a display arrow. Unknown trends render as
// the placeholder.
func TrendArrow(trend *string) string {
	if trend == nil {
		return Placeholder
	}
	switch strings.ToLower(*trend) {
	case "up":
		return "▲"
	case "down":
		return "▼"
	case "stable":
		return "→"
	default:
		return Placeholder
	}
}
