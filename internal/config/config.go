// Package config loads coachboard settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by coachboard entry points. Every field
// has a default, so an empty environment yields a working configuration.
type Config struct {
	// ArchivePath is the SQLite file used for leaderboard snapshots.
	ArchivePath string `env:"COACHBOARD_ARCHIVE_PATH" envDefault:"coachboard.db"`
	// IngestWorkers caps concurrent session ingestion. Zero means one
	// worker per CPU.
	IngestWorkers int `env:"COACHBOARD_INGEST_WORKERS" envDefault:"0"`
	// TopN is the default ranking depth for reports.
	TopN int `env:"COACHBOARD_TOP_N" envDefault:"5"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
// It provides a consistent fatal-exit pattern for CLI entry points.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
