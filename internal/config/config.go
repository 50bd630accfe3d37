// Package config loads, validates, and defaults the application
// configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config contains all configuration for the research agent system.
type Config struct {
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Scraper ScraperConfig `json:"scraper" mapstructure:"scraper"`
	Crypto  CryptoConfig  `json:"crypto" mapstructure:"crypto"`
	News    NewsConfig    `json:"news" mapstructure:"news"`
	General GeneralConfig `json:"general" mapstructure:"general"`
	OpenAI  OpenAIConfig  `json:"openai" mapstructure:"openai"`

	LogLevel string `json:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Address             string `json:"address" mapstructure:"address" validate:"required"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds" validate:"min=1,max=300"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds" validate:"min=1,max=300"`
}

// ScraperConfig configures the shared connector HTTP client.
type ScraperConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds" validate:"min=1,max=300"`
	MaxRetries     int    `json:"max_retries" mapstructure:"max_retries" validate:"min=0,max=10"`
	UserAgent      string `json:"user_agent" mapstructure:"user_agent"`
}

// CryptoConfig configures the CoinGecko connector.
type CryptoConfig struct {
	BaseURL string `json:"base_url" mapstructure:"base_url" validate:"required,url"`
}

// NewsConfig configures the NewsAPI connector. The API key may also come
// from the NEWS_API_KEY environment variable.
type NewsConfig struct {
	BaseURL  string `json:"base_url" mapstructure:"base_url" validate:"required,url"`
	APIKey   string `json:"api_key,omitempty" mapstructure:"api_key"`
	PageSize int    `json:"page_size" mapstructure:"page_size" validate:"min=1,max=100"`
}

// GeneralConfig configures the Wikipedia connector.
type GeneralConfig struct {
	BaseURL string `json:"base_url" mapstructure:"base_url" validate:"required,url"`
}

// OpenAIConfig configures the optional insights summarizer. The API key
// may also come from the OPENAI_API_KEY environment variable; with no key
// the insights feature is disabled.
type OpenAIConfig struct {
	APIKey  string `json:"api_key,omitempty" mapstructure:"api_key"`
	Model   string `json:"model" mapstructure:"model"`
	BaseURL string `json:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

// DefaultConfig returns a configuration that works without a config file.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 30,
		},
		Scraper: ScraperConfig{
			TimeoutSeconds: 10,
			MaxRetries:     3,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
		Crypto: CryptoConfig{
			BaseURL: "https://api.coingecko.com/api/v3",
		},
		News: NewsConfig{
			BaseURL:  "https://newsapi.org/v2",
			PageSize: 5,
		},
		General: GeneralConfig{
			BaseURL: "https://en.wikipedia.org/api/rest_v1/page/summary",
		},
		OpenAI: OpenAIConfig{
			Model:   "gpt-4",
			BaseURL: "https://api.openai.com/v1",
		},
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a JSON or YAML file on top of the
// defaults, then applies environment overrides and validates.
func LoadFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Load returns the config from path when set, otherwise the defaults with
// environment overrides applied.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}
	cfg := DefaultConfig()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.News.APIKey == "" {
		c.News.APIKey = os.Getenv("NEWS_API_KEY")
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// SaveToFile writes the configuration as indented JSON.
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ScraperTimeout returns the connector timeout as a duration.
func (c *Config) ScraperTimeout() time.Duration {
	return time.Duration(c.Scraper.TimeoutSeconds) * time.Second
}

// String renders the config with API keys masked.
func (c *Config) String() string {
	masked := *c
	if masked.News.APIKey != "" {
		masked.News.APIKey = strings.Repeat("*", len(masked.News.APIKey))
	}
	if masked.OpenAI.APIKey != "" {
		masked.OpenAI.APIKey = strings.Repeat("*", len(masked.OpenAI.APIKey))
	}
	data, _ := json.MarshalIndent(masked, "", "  ")
	return string(data)
}
