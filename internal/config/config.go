// Package config provides YAML-based configuration with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Processing ProcessingConfig `yaml:"processing"`
	Model      ModelConfig      `yaml:"model"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port                 int    `yaml:"port"`
	BindAddress          string `yaml:"bindAddress"`
	BodyLimit            string `yaml:"bodyLimit"`
	ReadTimeout          int    `yaml:"readTimeoutSeconds"`
	WriteTimeout         int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout          int    `yaml:"idleTimeoutSeconds"`
	EnableRequestLogging bool   `yaml:"enableRequestLogging"`
}

// StorageConfig controls the lifetime of stored tables and report entries.
type StorageConfig struct {
	TableTTLMinutes        int `yaml:"tableTtlMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// ProcessingConfig contains pipeline settings. MaxRows is the single
// authoritative row limit: both the gate and its error message use it.
type ProcessingConfig struct {
	MaxRows    int `yaml:"maxRows"`
	SampleRows int `yaml:"sampleRows"`
}

// ModelConfig addresses the text generation endpoint.
type ModelConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	APIKey         string `yaml:"apiKey"`
	Name           string `yaml:"name"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	MaxTokens      int    `yaml:"maxTokens"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:                 8090,
			BindAddress:          "0.0.0.0",
			BodyLimit:            "32M",
			ReadTimeout:          30,
			WriteTimeout:         120,
			IdleTimeout:          120,
			EnableRequestLogging: true,
		},
		Storage: StorageConfig{
			TableTTLMinutes:        60,
			CleanupIntervalMinutes: 5,
		},
		Processing: ProcessingConfig{
			MaxRows:    25000,
			SampleRows: 20,
		},
		Model: ModelConfig{
			BaseURL:        "",
			APIKey:         "",
			Name:           "gpt-4o-mini",
			TimeoutSeconds: 60,
			MaxTokens:      1024,
		},
	}
}

// LoadConfig loads configuration from a YAML file, creating the default file
// on first run.
func LoadConfig(configPath string) (*AppConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvironmentOverrides()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *AppConfig) Save(configPath string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	header := []byte("# Tabular Insights server configuration\n# This file is auto-generated on first run\n\n")
	if err := os.WriteFile(configPath, append(header, out...), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides lets environment variables override file values.
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		c.Model.BaseURL = baseURL
	}
	if apiKey := os.Getenv("API_KEY"); apiKey != "" {
		c.Model.APIKey = apiKey
	}
	if model := os.Getenv("MODEL_NAME"); model != "" {
		c.Model.Name = model
	}
}

// Validate checks that the endpoint configuration is usable.
func (c *AppConfig) Validate() error {
	if c.Model.BaseURL == "" || c.Model.APIKey == "" {
		return fmt.Errorf("model.baseUrl and model.apiKey must be set (or BASE_URL and API_KEY in the environment)")
	}
	if c.Processing.MaxRows <= 0 {
		return fmt.Errorf("processing.maxRows must be positive")
	}
	return nil
}

// GetServerAddr returns the server bind address.
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}
