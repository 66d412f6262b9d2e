package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-edge-platform/node-release-info/internal/release"
)

// ConfigHelpers provides convenient access to global configuration
type ConfigHelpers struct {
	config *GlobalConfig
}

// NewConfigHelpers creates a new config helpers instance
func NewConfigHelpers(config *GlobalConfig) *ConfigHelpers {
	return &ConfigHelpers{config: config}
}

// Workers returns the number of concurrent download workers
func (c *ConfigHelpers) Workers() int {
	if c.config.Workers < 1 {
		return 1
	}
	return c.config.Workers
}

// DownloadDir returns the absolute path to the download directory
func (c *ConfigHelpers) DownloadDir() (string, error) {
	return filepath.Abs(c.config.DownloadDir)
}

// ReportDir returns the directory resolved-artifact reports are written to
func (c *ConfigHelpers) ReportDir() string {
	if c.config.ReportDir == "" {
		return "reports"
	}
	return c.config.ReportDir
}

// URLFormatter builds the release URL formatter from the server section
func (c *ConfigHelpers) URLFormatter() release.URLFormatter {
	return release.URLFormatter{
		Protocol:   c.config.Server.Protocol,
		Host:       c.config.Server.Host,
		PathPrefix: c.config.Server.PathPrefix,
	}
}

// Product returns the artifact filename prefix
func (c *ConfigHelpers) Product() string {
	if c.config.Product == "" {
		return release.DefaultProduct
	}
	return c.config.Product
}

// HasKeyring reports whether manifest signatures should be verified
func (c *ConfigHelpers) HasKeyring() bool {
	return c.config.Keyring != ""
}

// LogLevel returns the configured log level
func (c *ConfigHelpers) LogLevel() string {
	return c.config.Logging.Level
}

// IsDebugMode returns true if debug logging is enabled
func (c *ConfigHelpers) IsDebugMode() bool {
	return c.config.Logging.Level == "debug"
}

// GetConfig returns the underlying global config (for advanced usage)
func (c *ConfigHelpers) GetConfig() *GlobalConfig {
	return c.config
}

// CreateDownloadDir ensures the download directory exists
func (c *ConfigHelpers) CreateDownloadDir() (string, error) {
	dir, err := c.DownloadDir()
	if err != nil {
		return "", fmt.Errorf("resolving download directory: %w", err)
	}
	return dir, createDirIfNotExists(dir)
}

func createDirIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
