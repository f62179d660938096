// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Chat delivery modes. The historical deployments differ only in how
// POST /chat delivers results; one binary switched by CHAT_MODE covers
// all of them.
const (
	ModeStream    = "stream"    // SSE fan-out, one event per completed agent
	ModeAggregate = "aggregate" // buffered JSON review
	ModeConverse  = "converse"  // single assistant, token streaming, persisted history
)

// Config holds all application configuration.
type Config struct {
	Host           string
	Port           string
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int
	RequestTimeout time.Duration
	DailyLimit     int
	UsageFile      string
	HistoryDBPath  string
	ChatMode       string
	Workers        int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "5555"),
		APIKey:         getEnv("DEEPSEEK_API_KEY", ""),
		BaseURL:        getEnv("LLM_BASE_URL", "https://api.deepseek.com"),
		Model:          getEnv("MODEL_NAME", "deepseek-chat"),
		MaxTokens:      getEnvInt("MAX_TOKENS", 300),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		DailyLimit:     getEnvInt("FREE_DAILY_LIMIT", 50),
		UsageFile:      getEnv("USAGE_FILE", "usage_data.json"),
		HistoryDBPath:  getEnv("DATA_FILE", "./data/memory.db"),
		ChatMode:       getEnv("CHAT_MODE", ModeStream),
		Workers:        getEnvInt("FANOUT_WORKERS", 4),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.APIKey == "" {
		return fmt.Errorf("DEEPSEEK_API_KEY cannot be empty")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("LLM_BASE_URL cannot be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("MODEL_NAME cannot be empty")
	}
	switch c.ChatMode {
	case ModeStream, ModeAggregate, ModeConverse:
	default:
		return fmt.Errorf("CHAT_MODE must be one of stream, aggregate, converse; got %q", c.ChatMode)
	}
	if c.DailyLimit <= 0 {
		return fmt.Errorf("FREE_DAILY_LIMIT must be > 0")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("FANOUT_WORKERS must be > 0")
	}
	if c.UsageFile == "" {
		return fmt.Errorf("USAGE_FILE cannot be empty")
	}
	if c.ChatMode == ModeConverse && c.HistoryDBPath == "" {
		return fmt.Errorf("DATA_FILE cannot be empty in converse mode")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
