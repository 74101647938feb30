package app

import (
	"fmt"

	"github.com/shhac/cogview/internal/storage"
)

// Config holds the settings supplied on the command line or environment.
type Config struct {
	Debug bool

	// StoragePath holds profiles.yaml and history.json. Empty means ~/.cogview.
	StoragePath string

	// MetricsAddr serves Prometheus metrics on /metrics when set, e.g. "localhost:9090".
	MetricsAddr string
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() *Config {
	return &Config{}
}

// ResolveStoragePath returns StoragePath or the platform default when it is unset.
func (c *Config) ResolveStoragePath() (string, error) {
	if c.StoragePath != "" {
		return c.StoragePath, nil
	}
	path, err := storage.DefaultStoragePath()
	if err != nil {
		return "", fmt.Errorf("failed to determine storage path: %w", err)
	}
	return path, nil
}
