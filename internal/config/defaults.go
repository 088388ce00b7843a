package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4351,
			Host: "localhost",
		},
		API: APIConfig{
			URL:     "http://localhost:8000",
			Timeout: "10s",
		},
		Dashboard: DashboardConfig{
			DefaultTicker:  "TSLA",
			DefaultPeriod:  30,
			Periods:        []int{7, 30, 90},
			HeadlinesLimit: 3,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/portal",
			},
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
