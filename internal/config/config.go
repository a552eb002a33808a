package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the console's runtime configuration.
type Config struct {
	// APIBase is the HTTP base for the control and query channels.
	APIBase string
	// WSBase is the base for the telemetry stream.
	WSBase string

	// Terminal markers. These are the backend's wording for run completion;
	// configuration rather than constants so a backend wording change does
	// not require a console release.
	SuccessMarker string
	FailureMarker string

	// DataDir holds the run history database and the console's own log file.
	DataDir string
}

const (
	defaultAPIBase = "http://localhost:8000"
	defaultWSBase  = "ws://localhost:8000"

	// Broadcast strings the scraper backend emits when the pipeline process
	// exits or fails to launch.
	defaultSuccessMarker = "Scraper finished with exit code"
	defaultFailureMarker = "Error running scraper"
)

// Load reads configuration from the environment, optionally seeded from a
// .env file. A missing .env file is not an error; the environment alone is
// enough to run.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	dataDir := os.Getenv("SCRAPE_CONSOLE_DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".scrape-console")
	}

	return &Config{
		APIBase:       getEnv("SCRAPER_API_BASE", defaultAPIBase),
		WSBase:        getEnv("SCRAPER_WS_BASE", defaultWSBase),
		SuccessMarker: getEnv("SCRAPER_SUCCESS_MARKER", defaultSuccessMarker),
		FailureMarker: getEnv("SCRAPER_FAILURE_MARKER", defaultFailureMarker),
		DataDir:       dataDir,
	}, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
