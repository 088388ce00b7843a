package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	API         APIConfig       `toml:"api"`
	Dashboard   DashboardConfig `toml:"dashboard"`
	Storage     StorageConfig   `toml:"storage"`
	Cache       CacheConfig     `toml:"cache"`
	MCP         MCPConfig       `toml:"mcp"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// APIConfig contains sentiment-api backend settings. When Mock is true the
// portal serves generated demo data instead of calling the backend.
type APIConfig struct {
	URL     string `toml:"url"`
	Mock    bool   `toml:"mock"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the backend request timeout.
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// DashboardConfig contains dashboard page defaults.
type DashboardConfig struct {
	DefaultTicker  string `toml:"default_ticker"`
	DefaultPeriod  int    `toml:"default_period"`
	Periods        []int  `toml:"periods"`
	HeadlinesLimit int    `toml:"headlines_limit"`
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// CacheConfig contains response-cache TTL overrides. Empty values fall back to
// the defaults in internal/common/freshness.go.
type CacheConfig struct {
	DashboardTTL string `toml:"dashboard_ttl"`
	StocksTTL    string `toml:"stocks_ttl"`
}

// GetDashboardTTL parses the dashboard cache TTL. Zero means "use default".
func (c *CacheConfig) GetDashboardTTL() time.Duration {
	d, err := time.ParseDuration(c.DashboardTTL)
	if err != nil {
		return 0
	}
	return d
}

// GetStocksTTL parses the stock list cache TTL. Zero means "use default".
func (c *CacheConfig) GetStocksTTL() time.Duration {
	d, err := time.ParseDuration(c.StocksTTL)
	if err != nil {
		return 0
	}
	return d
}

// MCPConfig contains MCP endpoint settings.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)
	config.Environment = normalizeEnvironment(config.Environment)

	return config, nil
}

// applyEnvOverrides applies SENTI_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SENTI_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("SENTI_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SENTI_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if url := os.Getenv("SENTI_API_URL"); url != "" {
		config.API.URL = url
	}
	if mock := os.Getenv("SENTI_API_MOCK"); mock != "" {
		config.API.Mock = mock == "true" || mock == "1"
	}
	if badgerPath := os.Getenv("SENTI_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("SENTI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("SENTI_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string, apiURL string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
	if apiURL != "" {
		config.API.URL = apiURL
	}
}

// Validate checks mandatory configuration and returns human-readable issues.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if !c.API.Mock && c.API.URL == "" {
		issues = append(issues, "api.url is required unless api.mock is enabled (set SENTI_API_URL or [api] url in TOML)")
	}
	if c.API.URL != "" && !strings.HasPrefix(c.API.URL, "http://") && !strings.HasPrefix(c.API.URL, "https://") {
		issues = append(issues, fmt.Sprintf("api.url must start with http:// or https:// (got %q)", c.API.URL))
	}
	if c.Dashboard.DefaultPeriod > 0 && !containsInt(c.Dashboard.Periods, c.Dashboard.DefaultPeriod) {
		issues = append(issues, fmt.Sprintf("dashboard.default_period %d is not in dashboard.periods %v", c.Dashboard.DefaultPeriod, c.Dashboard.Periods))
	}

	return issues
}

// IsDevMode returns true when running in dev mode.
func (c *Config) IsDevMode() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "dev"
}

// normalizeEnvironment maps environment aliases to their canonical short
// forms ("development" to "dev", "production" to "prod"). All other values
// pass through unchanged.
func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development":
		return "dev"
	case "production":
		return "prod"
	default:
		return env
	}
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
