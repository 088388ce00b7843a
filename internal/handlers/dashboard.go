package handlers

import (
	"net/http"
	"strconv"

	"github.com/sentireality/portal/internal/cache"
	"github.com/sentireality/portal/internal/client"
	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/config"
	"github.com/sentireality/portal/internal/interfaces"
)

// DashboardHandler serves GET /api/dashboard, proxying the backend with a
// short-lived response cache.
type DashboardHandler struct {
	logger    *common.Logger
	api       interfaces.SentimentAPI
	cache     *cache.DashboardCache
	dashboard config.DashboardConfig
}

// NewDashboardHandler creates a new dashboard API handler.
func NewDashboardHandler(logger *common.Logger, api interfaces.SentimentAPI, c *cache.DashboardCache, dashboard config.DashboardConfig) *DashboardHandler {
	return &DashboardHandler{
		logger:    logger,
		api:       api,
		cache:     c,
		dashboard: dashboard,
	}
}

// ServeHTTP handles GET /api/dashboard?ticker=<T>&period=<days>.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		ticker = h.dashboard.DefaultTicker
	}
	ticker, err := client.ValidateTicker(ticker)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	period := h.resolvePeriod(r.URL.Query().Get("period"))

	if h.cache != nil {
		if data, ok := h.cache.GetDashboard(r.Context(), ticker, period); ok {
			WriteJSON(w, http.StatusOK, data)
			return
		}
	}

	data, err := h.api.GetDashboard(r.Context(), ticker, period, h.dashboard.HeadlinesLimit)
	if err != nil {
		h.logger.Warn().Str("ticker", ticker).Err(err).Msg("dashboard fetch failed")
		WriteError(w, http.StatusBadGateway, "Could not load dashboard data. Is the backend running?")
		return
	}

	if h.cache != nil {
		h.cache.SetDashboard(r.Context(), ticker, period, data)
	}

	WriteJSON(w, http.StatusOK, data)
}

// resolvePeriod parses the period query parameter against the configured
// whitelist. Anything unrecognized falls back to the default period.
func (h *DashboardHandler) resolvePeriod(raw string) int {
	if raw == "" {
		return h.dashboard.DefaultPeriod
	}
	period, err := strconv.Atoi(raw)
	if err != nil {
		return h.dashboard.DefaultPeriod
	}
	for _, allowed := range h.dashboard.Periods {
		if period == allowed {
			return period
		}
	}
	return h.dashboard.DefaultPeriod
}
