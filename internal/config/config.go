// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDirectoryURL is the public location directory the widget was built against.
const DefaultDirectoryURL = "https://crio-location-selector.onrender.com"

// Config holds application configuration
type Config struct {
	DirectoryURL   string        // Base URL of the location directory service
	RequestTimeout time.Duration // Upper bound for a single directory request
	LogLevel       string
	LogFile        string // Empty disables logging (stdout belongs to the UI)
	MaxWidth       int    // Max columns (0 = no limit)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DirectoryURL:   getEnv("LOCSELECT_DIRECTORY_URL", DefaultDirectoryURL),
		RequestTimeout: time.Duration(getEnvAsInt("LOCSELECT_REQUEST_TIMEOUT", 10)) * time.Second,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOCSELECT_LOG_FILE", ""),
		MaxWidth:       getEnvAsInt("LOCSELECT_MAX_WIDTH", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DirectoryURL == "" {
		return errors.New("directory URL is required")
	}
	u, err := url.ParseRequestURI(c.DirectoryURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid directory URL %q", c.DirectoryURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("max width must not be negative, got %d", c.MaxWidth)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
