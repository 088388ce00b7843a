package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/interfaces"
)

// ServerHealthHandler probes the upstream sentiment-api so the page can show
// backend status.
type ServerHealthHandler struct {
	logger *common.Logger
	api    interfaces.SentimentAPI
}

// NewServerHealthHandler creates a new server health handler.
func NewServerHealthHandler(logger *common.Logger, api interfaces.SentimentAPI) *ServerHealthHandler {
	return &ServerHealthHandler{logger: logger, api: api}
}

// ServeHTTP handles GET /api/server-health.
func (h *ServerHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.api.Health(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
