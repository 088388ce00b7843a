// Package handlers contains the portal's HTTP handlers: server-rendered
// pages and the JSON API consumed by the dashboard's frontend.
package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/sentireality/portal/internal/common"
)

// PageHandler serves static assets for the rendered pages.
type PageHandler struct {
	logger *common.Logger
}

// templateFuncs exposes the display formatting helpers to templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatScore":     common.FormatScore,
		"formatPeriod":    common.FormatPeriod,
		"formatPrice":     common.FormatPrice,
		"formatSignedPct": common.FormatSignedPct,
		"formatVolume":    common.FormatVolume,
		"formatDate":      common.FormatDate,
		"formatCount":     common.FormatCount,
		"sentimentBadge":  common.SentimentBadge,
		"scoreBand":       common.ScoreBand,
		"trendArrow":      common.TrendArrow,
	}
}

var (
	templatesOnce   sync.Once
	parsedTemplates *template.Template
)

// loadTemplates parses all page and partial templates with the formatting
// FuncMap attached. Parsing happens once per process; every handler shares
// the result.
func loadTemplates() *template.Template {
	templatesOnce.Do(func() {
		pagesDir := FindPagesDir()

		parsedTemplates = template.Must(template.New("").Funcs(templateFuncs()).ParseGlob(filepath.Join(pagesDir, "*.html")))
		template.Must(parsedTemplates.ParseGlob(filepath.Join(pagesDir, "partials", "*.html")))
	})
	return parsedTemplates
}

// NewPageHandler creates a new page handler.
func NewPageHandler(logger *common.Logger) *PageHandler {
	return &PageHandler{logger: logger}
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
		".",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// StaticFileHandler serves static files (CSS, JS, images).
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	pagesDir := FindPagesDir()
	staticDir := filepath.Join(pagesDir, "static")

	// Remove /static/ prefix from URL path
	path := r.URL.Path[len("/static/"):]
	fullPath := filepath.Join(staticDir, path)

	// Security: prevent directory traversal
	absStaticDir, _ := filepath.Abs(staticDir)
	absFullPath, _ := filepath.Abs(fullPath)
	if len(absFullPath) < len(absStaticDir) || absFullPath[:len(absStaticDir)] != absStaticDir {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
