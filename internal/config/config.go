// Package config provides configuration management for the webhook receiver
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/blaaiz/blaaiz-go/pkg/blaaiz"
)

// Config holds all configuration for the receiver
type Config struct {
	Blaaiz BlaaizConfig `yaml:"blaaiz"`
	Server ServerConfig `yaml:"server"`
	Stream StreamConfig `yaml:"stream"`
}

// BlaaizConfig holds API credentials and the webhook signing secret
type BlaaizConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"api_url"`
	TimeoutSeconds int    `yaml:"timeout"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StreamConfig holds settings for the websocket event stream
type StreamConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Blaaiz: BlaaizConfig{
			BaseURL:        blaaiz.DefaultBaseURL,
			TimeoutSeconds: int(blaaiz.DefaultTimeout / time.Second),
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Stream: StreamConfig{
			JWTSecret: "blaaiz-stream-dev-secret-change-in-production",
			TokenTTL:  24 * time.Hour,
		},
	}
}

// Load reads .env (optional), then the YAML file named by BLAAIZ_CONFIG_FILE
// (optional), then environment variables. Later sources win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("BLAAIZ_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Blaaiz.APIKey = getEnv("BLAAIZ_API_KEY", c.Blaaiz.APIKey)
	c.Blaaiz.BaseURL = getEnv("BLAAIZ_API_URL", c.Blaaiz.BaseURL)
	c.Blaaiz.WebhookSecret = getEnv("BLAAIZ_WEBHOOK_SECRET", c.Blaaiz.WebhookSecret)
	c.Server.Port = getEnv("BLAAIZ_PORT", c.Server.Port)
	c.Stream.JWTSecret = getEnv("BLAAIZ_STREAM_JWT_SECRET", c.Stream.JWTSecret)

	if v := os.Getenv("BLAAIZ_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BLAAIZ_TIMEOUT %q: %w", v, err)
		}
		c.Blaaiz.TimeoutSeconds = seconds
	}
	if v := os.Getenv("BLAAIZ_STREAM_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid BLAAIZ_STREAM_TOKEN_TTL %q: %w", v, err)
		}
		c.Stream.TokenTTL = ttl
	}
	return nil
}

// Validate checks that the settings the receiver cannot run without are present
func (c *Config) Validate() error {
	if c.Blaaiz.APIKey == "" {
		return errors.New("BLAAIZ_API_KEY is required")
	}
	if c.Blaaiz.WebhookSecret == "" {
		return errors.New("BLAAIZ_WEBHOOK_SECRET is required")
	}
	if c.Blaaiz.TimeoutSeconds <= 0 {
		return errors.New("BLAAIZ_TIMEOUT must be positive")
	}
	if c.Stream.TokenTTL <= 0 {
		return errors.New("BLAAIZ_STREAM_TOKEN_TTL must be positive")
	}
	return nil
}

// ClientConfig converts the Blaaiz section into SDK client settings
func (c *Config) ClientConfig() *blaaiz.ClientConfig {
	return &blaaiz.ClientConfig{
		APIKey:  c.Blaaiz.APIKey,
		BaseURL: c.Blaaiz.BaseURL,
		Timeout: time.Duration(c.Blaaiz.TimeoutSeconds) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
