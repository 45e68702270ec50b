package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blaaiz/blaaiz-go/pkg/blaaiz"
)

var envKeys = []string{
	"BLAAIZ_CONFIG_FILE",
	"BLAAIZ_API_KEY",
	"BLAAIZ_API_URL",
	"BLAAIZ_TIMEOUT",
	"BLAAIZ_WEBHOOK_SECRET",
	"BLAAIZ_PORT",
	"BLAAIZ_STREAM_JWT_SECRET",
	"BLAAIZ_STREAM_TOKEN_TTL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Blaaiz.BaseURL != blaaiz.DefaultBaseURL {
		t.Errorf("Expected base URL %s, got %s", blaaiz.DefaultBaseURL, cfg.Blaaiz.BaseURL)
	}
	if cfg.Blaaiz.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout 30, got %d", cfg.Blaaiz.TimeoutSeconds)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Stream.TokenTTL != 24*time.Hour {
		t.Errorf("Expected token TTL 24h, got %v", cfg.Stream.TokenTTL)
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("BLAAIZ_API_KEY", "key")
	t.Setenv("BLAAIZ_API_URL", "https://api.blaaiz.com")
	t.Setenv("BLAAIZ_TIMEOUT", "12")
	t.Setenv("BLAAIZ_WEBHOOK_SECRET", "whsec")
	t.Setenv("BLAAIZ_PORT", "9090")
	t.Setenv("BLAAIZ_STREAM_TOKEN_TTL", "90m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	client := cfg.ClientConfig()
	if client.APIKey != "key" || client.BaseURL != "https://api.blaaiz.com" || client.Timeout != 12*time.Second {
		t.Errorf("Unexpected client config %+v", client)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Stream.TokenTTL != 90*time.Minute {
		t.Errorf("Expected token TTL 90m, got %v", cfg.Stream.TokenTTL)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"BLAAIZ_TIMEOUT", "soon"},
		{"BLAAIZ_STREAM_TOKEN_TTL", "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "blaaiz.yaml")
	content := `
blaaiz:
  api_key: file-key
  api_url: https://sandbox.blaaiz.test
  timeout: 5
  webhook_secret: file-secret
server:
  port: "7000"
  read_timeout: 10s
stream:
  token_ttl: 2h
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("BLAAIZ_CONFIG_FILE", path)
	t.Setenv("BLAAIZ_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Blaaiz.APIKey != "file-key" || cfg.Blaaiz.WebhookSecret != "file-secret" {
		t.Errorf("Expected credentials from file, got %+v", cfg.Blaaiz)
	}
	if cfg.Blaaiz.TimeoutSeconds != 5 {
		t.Errorf("Expected timeout 5, got %d", cfg.Blaaiz.TimeoutSeconds)
	}
	if cfg.Server.Port != "7001" {
		t.Errorf("Expected env port to override file, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Expected read timeout 10s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Expected default write timeout to survive, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Stream.TokenTTL != 2*time.Hour {
		t.Errorf("Expected token TTL 2h, got %v", cfg.Stream.TokenTTL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BLAAIZ_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		valid  bool
	}{
		{"complete", func(c *Config) {}, true},
		{"no api key", func(c *Config) { c.Blaaiz.APIKey = "" }, false},
		{"no webhook secret", func(c *Config) { c.Blaaiz.WebhookSecret = "" }, false},
		{"zero timeout", func(c *Config) { c.Blaaiz.TimeoutSeconds = 0 }, false},
		{"zero ttl", func(c *Config) { c.Stream.TokenTTL = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Blaaiz.APIKey = "key"
			cfg.Blaaiz.WebhookSecret = "secret"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
