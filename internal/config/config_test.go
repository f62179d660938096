package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "5555" {
		t.Errorf("Expected default port 5555, got %s", cfg.Port)
	}
	if cfg.DailyLimit != 50 {
		t.Errorf("Expected default daily limit 50, got %d", cfg.DailyLimit)
	}
	if cfg.ChatMode != ModeStream {
		t.Errorf("Expected default chat mode stream, got %s", cfg.ChatMode)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %s", cfg.RequestTimeout)
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected default worker count 4, got %d", cfg.Workers)
	}
	if cfg.Addr() != "0.0.0.0:5555" {
		t.Errorf("Expected addr 0.0.0.0:5555, got %s", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("PORT", "8080")
	t.Setenv("CHAT_MODE", ModeConverse)
	t.Setenv("FREE_DAILY_LIMIT", "10")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" || cfg.ChatMode != ModeConverse || cfg.DailyLimit != 10 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", cfg.RequestTimeout)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api key", func(c *Config) { c.APIKey = "" }},
		{"unknown chat mode", func(c *Config) { c.ChatMode = "broadcast" }},
		{"zero daily limit", func(c *Config) { c.DailyLimit = 0 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"empty usage file", func(c *Config) { c.UsageFile = "" }},
		{"converse without data file", func(c *Config) {
			c.ChatMode = ModeConverse
			c.HistoryDBPath = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:          "5555",
				APIKey:        "sk-test",
				BaseURL:       "https://api.deepseek.com",
				Model:         "deepseek-chat",
				DailyLimit:    50,
				UsageFile:     "usage_data.json",
				HistoryDBPath: "memory.db",
				ChatMode:      ModeStream,
				Workers:       4,
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
