package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_CreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insight-server.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file was not written: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Processing.MaxRows != 25000 {
		t.Errorf("maxRows = %d, want 25000", cfg.Processing.MaxRows)
	}
	if cfg.Storage.TableTTLMinutes != 60 {
		t.Errorf("tableTtlMinutes = %d, want 60", cfg.Storage.TableTTLMinutes)
	}
}

func TestLoadConfig_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insight-server.yaml")
	content := `
server:
  port: 9100
processing:
  maxRows: 500
model:
  baseUrl: https://api.example.com/v1
  apiKey: file-key
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Processing.MaxRows != 500 {
		t.Errorf("maxRows = %d, want 500", cfg.Processing.MaxRows)
	}
	// Unset fields keep their defaults.
	if cfg.Processing.SampleRows != 20 {
		t.Errorf("sampleRows = %d, want 20", cfg.Processing.SampleRows)
	}
	if cfg.Model.Name != "gpt-4o-mini" {
		t.Errorf("model name = %q", cfg.Model.Name)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("BASE_URL", "https://env.example.com/v1")
	t.Setenv("API_KEY", "env-key")
	t.Setenv("MODEL_NAME", "env-model")

	path := filepath.Join(t.TempDir(), "insight-server.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Model.BaseURL != "https://env.example.com/v1" {
		t.Errorf("baseUrl = %q", cfg.Model.BaseURL)
	}
	if cfg.Model.APIKey != "env-key" {
		t.Errorf("apiKey = %q", cfg.Model.APIKey)
	}
	if cfg.Model.Name != "env-model" {
		t.Errorf("model name = %q", cfg.Model.Name)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing endpoint configuration")
	}

	cfg.Model.BaseURL = "https://api.example.com/v1"
	cfg.Model.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Processing.MaxRows = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive maxRows")
	}
}

func TestGetServerAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.BindAddress = "127.0.0.1"
	cfg.Server.Port = 8090

	if got := cfg.GetServerAddr(); got != "127.0.0.1:8090" {
		t.Errorf("addr = %q", got)
	}
}
