package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sentireality/portal/internal/cache"
	"github.com/sentireality/portal/internal/client"
	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/interfaces"
)

const (
	headlinesDefaultLimit = 10
	headlinesMaxLimit     = 50
)

// HeadlinesHandler serves GET /api/headlines/by-date for the daily-row
// drill-down modal.
type HeadlinesHandler struct {
	logger *common.Logger
	api    interfaces.SentimentAPI
	cache  *cache.DashboardCache
}

// NewHeadlinesHandler creates a new headlines handler.
func NewHeadlinesHandler(logger *common.Logger, api interfaces.SentimentAPI, c *cache.DashboardCache) *HeadlinesHandler {
	return &HeadlinesHandler{logger: logger, api: api, cache: c}
}

// ServeHTTP handles GET /api/headlines/by-date?ticker=<T>&date=<YYYY-MM-DD>&limit=<n>.
func (h *HeadlinesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker, err := client.ValidateTicker(r.URL.Query().Get("ticker"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	limit := headlinesDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > headlinesMaxLimit {
			WriteError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	if h.cache != nil {
		if items, ok := h.cache.GetHeadlines(r.Context(), ticker, date, limit); ok {
			WriteJSON(w, http.StatusOK, items)
			return
		}
	}

	items, err := h.api.HeadlinesByDate(r.Context(), ticker, date, limit)
	if err != nil {
		h.logger.Warn().Str("ticker", ticker).Str("date", date).Err(err).Msg("headlines fetch failed")
		WriteError(w, http.StatusBadGateway, "Could not load headlines for this date.")
		return
	}

	if h.cache != nil {
		h.cache.SetHeadlines(r.Context(), ticker, date, limit, items)
	}

	WriteJSON(w, http.StatusOK, items)
}
