package common

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type TestConfig struct {
	Results struct {
		Dir string `toml:"dir"`
	} `toml:"results"`
	Server struct {
		URL string `toml:"url"`
	} `toml:"server"`
	Browser struct {
		Headless    bool `toml:"headless"`
		TimeoutSecs int  `toml:"timeout_seconds"`
	} `toml:"browser"`
}

var (
	globalConfig     *TestConfig
	globalConfigOnce sync.Once
	resultsDir       string
	resultsDirOnce   sync.Once
)

func LoadTestConfig() *TestConfig {
	globalConfigOnce.Do(func() {
		globalConfig = &TestConfig{}
		globalConfig.Results.Dir = "tests/results"
		globalConfig.Server.URL = "http://localhost:4351"
		globalConfig.Browser.Headless = true
		globalConfig.Browser.TimeoutSecs = 30

		configPaths := []string{
			"tests/ui/test_config.toml",
			"test_config.toml",
		}

		if wd, err := os.Getwd(); err == nil {
			if filepath.Base(wd) == "ui" {
				configPaths = append([]string{"test_config.toml"}, configPaths...)
			}
		}

		for _, path := range configPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := toml.Unmarshal(data, globalConfig); err == nil {
				return
			}
		}
	})
	return globalConfig
}

// FindProjectRoot walks up from the working directory until it finds go.mod.
// Falls back to the working directory itself.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	wd, _ := os.Getwd()
	return wd
}

func InitResultsDir() string {
	resultsDirOnce.Do(func() {
		cfg := LoadTestConfig()
		baseDir := cfg.Results.Dir

		if !filepath.IsAbs(baseDir) {
			if wd, err := os.Getwd(); err == nil {
				if filepath.Base(wd) == "ui" {
					baseDir = filepath.Join("..", "..", baseDir)
				}
			}
		}

		timestamp := time.Now().Format("2006-01-02-15-04-05")
		resultsDir = filepath.Join(baseDir, timestamp)

		if err := os.MkdirAll(resultsDir, 0755); err != nil {
			panic("failed to create results dir: " + err.Error())
		}
	})
	return resultsDir
}

func GetResultsDir() string {
	if dir := os.Getenv("SENTI_TEST_RESULTS_DIR"); dir != "" {
		if !filepath.IsAbs(dir) {
			if absDir, err := filepath.Abs(dir); err == nil {
				return absDir
			}
		}
		return dir
	}
	if resultsDir == "" {
		return InitResultsDir()
	}
	return resultsDir
}

func GetScreenshotDir(subdir string) string {
	dir := filepath.Join(GetResultsDir(), subdir)
	os.MkdirAll(dir, 0755)
	return dir
}

func GetTestURL() string {
	if url := os.Getenv("SENTI_TEST_URL"); url != "" {
		return url
	}
	return LoadTestConfig().Server.URL
}
