// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the server reads at startup. Defaults are
// chosen so `go run ./cmd/server` works with no environment set.
type Config struct {
	// Port the HTTP server listens on.
	Port int `env:"PORT" envDefault:"8080"`

	// DBPath is the SQLite database file. The parent directory is
	// created at startup if missing.
	DBPath string `env:"DB_PATH" envDefault:"data/hackhub.db"`

	// JWTSecret signs session cookies. When empty the server generates
	// a random secret at startup, which invalidates sessions on restart.
	JWTSecret string `env:"JWT_SECRET"`

	// AnalyzeURL is the base URL of the hackathon-analysis service.
	// Empty disables the /api/analyze-hackathon endpoint.
	AnalyzeURL string `env:"ANALYZE_URL"`

	// AnalyzeTimeout bounds each request to the analysis service.
	AnalyzeTimeout time.Duration `env:"ANALYZE_TIMEOUT" envDefault:"30s"`

	// RefreshInterval drives the optional background refresher that
	// republishes user-data updates for pollers. Zero disables it.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}
