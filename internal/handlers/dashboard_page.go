package handlers

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/config"
	"github.com/sentireality/portal/internal/interfaces"
)

// DashboardPageHandler renders the dashboard shell. The page's data loads via
// the JSON API after first paint, so the shell only needs the defaults the
// frontend boots from.
type DashboardPageHandler struct {
	logger    *common.Logger
	templates *template.Template
	devMode   bool
	api       interfaces.SentimentAPI
	dashboard config.DashboardConfig
}

// NewDashboardPageHandler creates a new dashboard page handler.
func NewDashboardPageHandler(logger *common.Logger, devMode bool, api interfaces.SentimentAPI, dashboard config.DashboardConfig) *DashboardPageHandler {
	return &DashboardPageHandler{
		logger:    logger,
		templates: loadTemplates(),
		devMode:   devMode,
		api:       api,
		dashboard: dashboard,
	}
}

// ServeHTTP renders the dashboard page.
func (h *DashboardPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Page":           "dashboard",
		"DevMode":        h.devMode,
		"DefaultTicker":  h.dashboard.DefaultTicker,
		"DefaultPeriod":  h.dashboard.DefaultPeriod,
		"Periods":        h.dashboard.Periods,
		"HeadlinesLimit": h.dashboard.HeadlinesLimit,
		"PortalVersion":  config.GetVersion(),
		"ServerVersion":  h.serverVersion(r.Context()),
	}

	if err := h.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "dashboard.html").Str("error", err.Error()).Msg("failed to render dashboard")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// serverVersion fetches the backend version for the footer. Best-effort with
// a short timeout; the page renders without it.
func (h *DashboardPageHandler) serverVersion(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	fields, err := h.api.Version(ctx)
	if err != nil {
		return ""
	}
	return fields["version"]
}
