// Package config loads implicitenv settings from env vars and an optional YAML file.
//
// DATASTORE_DATASET is not read here. It belongs to the dataset resolution
// chain, so a value from it is reported with source env rather than explicit.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gcloud-datastore/implicitenv/internal/logging"
	"github.com/gcloud-datastore/implicitenv/internal/platform"
)

// Environment variables read by Load.
const (
	EnvConfigFile      = "IMPLICITENV_CONFIG"
	EnvMetadataURL     = "IMPLICITENV_METADATA_URL"
	EnvMetadataTimeout = "IMPLICITENV_METADATA_TIMEOUT"
	EnvConnect         = "IMPLICITENV_CONNECT"
	EnvLogLevel        = "IMPLICITENV_LOG_LEVEL"
	EnvLogFormat       = "IMPLICITENV_LOG_FORMAT"
)

// Config holds resolved settings. DatasetID only ever comes from the YAML
// file and is stored as an explicit dataset.
type Config struct {
	DatasetID       string        `yaml:"datasetId"`
	MetadataURL     string        `yaml:"metadataUrl"`
	MetadataTimeout time.Duration `yaml:"metadataTimeout"`
	Connect         bool          `yaml:"connect"`
	LogLevel        string        `yaml:"logLevel"`
	LogFormat       string        `yaml:"logFormat"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MetadataURL:     platform.DefaultMetadataURL,
		MetadataTimeout: platform.DefaultMetadataTimeout,
		LogLevel:        "info",
		LogFormat:       logging.FormatLogfmt,
	}
}

// Load returns Default overlaid with the YAML file named by
// IMPLICITENV_CONFIG (if set) and then with env vars.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.MetadataURL = envOrDefault(EnvMetadataURL, cfg.MetadataURL)
	cfg.LogLevel = envOrDefault(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = envOrDefault(EnvLogFormat, cfg.LogFormat)

	if v := os.Getenv(EnvMetadataTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, invalid(fmt.Sprintf("%s: %v", EnvMetadataTimeout, err), "Use a Go duration such as 100ms")
		}
		cfg.MetadataTimeout = d
	}
	if v := os.Getenv(EnvConnect); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, invalid(fmt.Sprintf("%s: %v", EnvConnect, err), "Use true or false")
		}
		cfg.Connect = b
	}

	if cfg.MetadataTimeout <= 0 {
		return Config{}, invalid("metadata timeout must be positive", "Use a Go duration such as 100ms")
	}
	return cfg, nil
}

// MetadataClient builds a metadata server client from the config.
func (c Config) MetadataClient() *platform.MetadataClient {
	mc := platform.NewMetadataClient()
	if c.MetadataURL != "" {
		mc.URL = c.MetadataURL
	}
	if c.MetadataTimeout > 0 {
		mc.Timeout = c.MetadataTimeout
		mc.HTTPClient.Timeout = c.MetadataTimeout
	}
	return mc
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return invalid(fmt.Sprintf("read config %s: %v", path, err), "Check "+EnvConfigFile)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return invalid(fmt.Sprintf("parse config %s: %v", path, err), "Fix the YAML syntax")
	}
	return nil
}

func invalid(msg, suggestion string) error {
	return platform.NewPlatformError(platform.ErrConfigInvalid, msg, suggestion)
}

// envOrDefault returns the env var value or the fallback if empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
