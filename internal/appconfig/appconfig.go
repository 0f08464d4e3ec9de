// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout bounds every upstream Open-Meteo request.
	defaultRequestTimeout = 30 * time.Second
	// defaultForecastAPIBase is the Open-Meteo forecast API root.
	defaultForecastAPIBase = "https://api.open-meteo.com/v1"
	// defaultGeocodingAPIBase is the Open-Meteo geocoding API root.
	defaultGeocodingAPIBase = "https://geocoding-api.open-meteo.com/v1"
	// defaultUserAgent identifies this application to the upstream APIs.
	defaultUserAgent = "weather-app/1.0"
)

// Config represents the top-level application configuration.
type Config struct {
	ForecastAPIBase  string `json:"forecastApiBase,omitempty"`
	GeocodingAPIBase string `json:"geocodingApiBase,omitempty"`
	UserAgent        string `json:"userAgent,omitempty"`
	TimeoutSeconds   int    `json:"timeout,omitempty"`
	LogFile          string `json:"logFile,omitempty"`
	ServerBinary     string `json:"serverBinary,omitempty"`
	Debug            bool   `json:"debug"`
	ConfigPath       string `json:"-"`
}

// RequestTimeout returns the timeout duration for upstream HTTP requests,
// falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ForecastBase returns the forecast API base URL, applying the default if not set.
func (c Config) ForecastBase() string {
	if b := strings.TrimSpace(c.ForecastAPIBase); b != "" {
		return strings.TrimRight(b, "/")
	}
	return defaultForecastAPIBase
}

// GeocodingBase returns the geocoding API base URL, applying the default if not set.
func (c Config) GeocodingBase() string {
	if b := strings.TrimSpace(c.GeocodingAPIBase); b != "" {
		return strings.TrimRight(b, "/")
	}
	return defaultGeocodingAPIBase
}

// UserAgentString returns the User-Agent header value sent upstream.
func (c Config) UserAgentString() string {
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		return ua
	}
	return defaultUserAgent
}

// LogFilePath returns the path to the application log file, or empty when
// logging should go to stderr only.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// ServerBinaryPath returns the configured server binary used by the check
// harness, or empty when the harness should re-exec the current binary.
func (c Config) ServerBinaryPath() string {
	return strings.TrimSpace(c.ServerBinary)
}

// Load reads the application configuration from the specified path. A
// missing file at the default path is not an error: MCP hosts typically
// exec the server with no configuration at all, and every key has a
// working default.
func Load(path string) (Config, error) {
	usingDefaultPath := path == ""
	if usingDefaultPath {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if usingDefaultPath || path == DefaultConfigPath {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
