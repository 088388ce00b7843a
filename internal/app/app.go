// Package app wires the portal's components together.
package app

import (
	"strings"

	"github.com/sentireality/portal/internal/cache"
	"github.com/sentireality/portal/internal/client"
	"github.com/sentireality/portal/internal/common"
	"github.com/sentireality/portal/internal/config"
	"github.com/sentireality/portal/internal/handlers"
	"github.com/sentireality/portal/internal/interfaces"
	"github.com/sentireality/portal/internal/mcp"
	"github.com/sentireality/portal/internal/storage/badger"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	// Backend access
	API   interfaces.SentimentAPI
	DB    *badger.BadgerDB
	Cache *cache.DashboardCache

	// HTTP handlers
	PageHandler          *handlers.PageHandler
	DashboardPageHandler *handlers.DashboardPageHandler
	DashboardHandler     *handlers.DashboardHandler
	StocksHandler        *handlers.StocksHandler
	HeadlinesHandler     *handlers.HeadlinesHandler
	HealthHandler        *handlers.HealthHandler
	VersionHandler       *handlers.VersionHandler
	ServerHealthHandler  *handlers.ServerHealthHandler
	MCPHandler           *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	// Validate environment setting
	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	a.initClient()
	a.initCache()
	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initClient selects the backend client. Mock mode serves generated data so
// the portal can run without a sentiment-api instance.
func (a *App) initClient() {
	if a.Config.API.Mock {
		a.Logger.Warn().Msg("mock API mode enabled, serving generated data")
		a.API = client.NewMockClient()
		return
	}
	a.API = client.NewSentimentClient(a.Config.API.URL, a.Config.API.GetTimeout())
}

// initCache opens BadgerDB for the response cache. Failures are non-fatal;
// the portal runs uncached.
func (a *App) initCache() {
	db, err := badger.NewBadgerDB(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		a.Logger.Warn().
			Str("path", a.Config.Storage.Badger.Path).
			Err(err).
			Msg("failed to open cache database, running without cache")
		return
	}
	a.DB = db

	kv := badger.NewKVStorage(db, a.Logger)
	a.Cache = cache.NewDashboardCache(kv, a.Logger, a.Config.Cache.GetDashboardTTL(), a.Config.Cache.GetStocksTTL())
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.PageHandler = handlers.NewPageHandler(a.Logger)
	a.DashboardPageHandler = handlers.NewDashboardPageHandler(a.Logger, a.Config.IsDevMode(), a.API, a.Config.Dashboard)
	a.DashboardHandler = handlers.NewDashboardHandler(a.Logger, a.API, a.Cache, a.Config.Dashboard)
	a.StocksHandler = handlers.NewStocksHandler(a.Logger, a.API, a.Cache)
	a.HeadlinesHandler = handlers.NewHeadlinesHandler(a.Logger, a.API, a.Cache)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.ServerHealthHandler = handlers.NewServerHealthHandler(a.Logger, a.API)

	if a.Config.MCP.Enabled {
		a.MCPHandler = mcp.NewHandler(a.Config, a.Logger)
	}

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
