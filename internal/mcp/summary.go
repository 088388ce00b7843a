package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/config"
	"github.com/sentireality/portal/internal/models"
)

// SummaryTool returns the tool definition for get_alignment_summary, a
// compact text rendering of the dashboard for assistants that don't want the
// full JSON payload.
func SummaryTool() mcp.Tool {
	return mcp.NewTool("get_alignment_summary",
		mcp.WithDescription("Get a short text summary of how well news sentiment tracked price for a ticker: current score, trend, price return, and alignment verdict."),
		mcp.WithString("ticker", mcp.Description("Stock ticker symbol, e.g. TSLA")),
		mcp.WithNumber("period", mcp.Description("Analysis window in days (7, 30, or 90)")),
	)
}

// SummaryToolHandler fetches the dashboard payload and formats it as text.
func SummaryToolHandler(proxy *MCPProxy, dashboard config.DashboardConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := r.GetString("ticker", dashboard.DefaultTicker)
		period := r.GetInt("period", dashboard.DefaultPeriod)

		path := fmt.Sprintf("/api/dashboard?ticker=%s&period=%d", ticker, period)
		body, err := proxy.get(ctx, path)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		var data models.DashboardData
		if err := json.Unmarshal(body, &data); err != nil {
			return errorResult("Error: could not parse dashboard response"), nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(FormatSummary(&data))},
		}, nil
	}
}

// FormatSummary renders the dashboard payload as a short text block using
// the same formatting rules as the web page.
func FormatSummary(data *models.DashboardData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s over %s\n", data.Ticker, common.FormatPeriod(data.Period))
	fmt.Fprintf(&b, "Sentiment: %s %s", common.FormatScore(data.SentimentSummary.CurrentScore), common.TrendArrow(data.SentimentSummary.Trend))
	if data.SentimentSummary.DominantLabel != nil {
		fmt.Fprintf(&b, " (%s)", common.SentimentBadge(*data.SentimentSummary.DominantLabel))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Price: %s (%s over period)\n", common.FormatPrice(data.PriceSummary.CurrentPrice), common.FormatSignedPct(data.PriceSummary.PeriodReturn))
	fmt.Fprintf(&b, "Alignment: %s", common.FormatScore(data.Alignment.Score))
	if data.Alignment.Interpretation != nil {
		fmt.Fprintf(&b, " %s", *data.Alignment.Interpretation)
	}
	if data.Alignment.MisalignmentDays != nil {
		fmt.Fprintf(&b, ", %d misaligned day(s)", *data.Alignment.MisalignmentDays)
	}
	b.WriteString("\n")

	if data.Coverage != nil && data.Coverage.SentimentDaysAvailable < data.Coverage.SentimentPeriodRequested {
		fmt.Fprintf(&b, "Note: only %d of %d requested days have sentiment data\n",
			data.Coverage.SentimentDaysAvailable, data.Coverage.SentimentPeriodRequested)
	}

	return b.String()
}
