package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sentireality/portal/internal/cache"
	"github.com/sentireality/portal/internal/client"
	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/interfaces"
)

// StocksHandler serves the tracked stock list and the add/refresh task
// endpoints.
type StocksHandler struct {
	logger *common.Logger
	api    interfaces.SentimentAPI
	cache  *cache.DashboardCache
}

// NewStocksHandler creates a new stocks handler.
func NewStocksHandler(logger *common.Logger, api interfaces.SentimentAPI, c *cache.DashboardCache) *StocksHandler {
	return &StocksHandler{
		logger: logger,
		api:    api,
		cache:  c,
	}
}

// ServeHTTP routes /api/stocks by method: GET lists, POST adds.
func (h *StocksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Refresh handles POST /api/stocks/refresh.
func (h *StocksHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	ticker, ok := h.readTicker(w, r)
	if !ok {
		return
	}

	task, err := h.api.RefreshStock(r.Context(), ticker)
	if err != nil {
		h.logger.Warn().Str("ticker", ticker).Err(err).Msg("refresh request failed")
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	// New aggregates land asynchronously; drop cached views so the page's
	// delayed refetch sees them.
	if h.cache != nil {
		h.cache.InvalidateTicker(r.Context(), ticker)
	}

	h.logger.Info().Str("ticker", ticker).Msg("refresh task queued")
	WriteJSON(w, http.StatusOK, task)
}

func (h *StocksHandler) list(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if stocks, ok := h.cache.GetStocks(r.Context()); ok {
			WriteJSON(w, http.StatusOK, stocks)
			return
		}
	}

	stocks, err := h.api.ListStocks(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("stock list fetch failed")
		WriteError(w, http.StatusBadGateway, "Could not load tracked stocks. Is the backend running?")
		return
	}

	if h.cache != nil {
		h.cache.SetStocks(r.Context(), stocks)
	}

	WriteJSON(w, http.StatusOK, stocks)
}

func (h *StocksHandler) add(w http.ResponseWriter, r *http.Request) {
	ticker, ok := h.readTicker(w, r)
	if !ok {
		return
	}

	task, err := h.api.AddStock(r.Context(), ticker)
	if err != nil {
		h.logger.Warn().Str("ticker", ticker).Err(err).Msg("add stock failed")
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	if h.cache != nil {
		h.cache.InvalidateStocks(r.Context())
	}

	h.logger.Info().Str("ticker", ticker).Msg("backfill task queued")
	WriteJSON(w, http.StatusOK, task)
}

// readTicker decodes and validates the {ticker} request body.
func (h *StocksHandler) readTicker(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Ticker string `json:"ticker"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 4096)).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Request body must be JSON with a ticker field")
		return "", false
	}

	ticker, err := client.ValidateTicker(body.Ticker)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return ticker, true
}
