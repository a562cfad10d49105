package llm

import (
	"errors"
	"fmt"
	"time"
)

// TaskType identifies the kind of request being made, for logs and metrics.
type TaskType string

const (
	TaskActivities TaskType = "activities"
	TaskDining     TaskType = "dining"
)

// LLMConfig holds all configuration for the provider client and the retry
// policy applied around it.
type LLMConfig struct {
	Endpoint         string `koanf:"endpoint"`
	APIKey           string `koanf:"api_key"`
	APIVersion       string `koanf:"api_version"`
	Model            string `koanf:"model"`
	MaxTokens        int    `koanf:"max_tokens"`
	TimeoutMs        int    `koanf:"timeout_ms"`
	LogCalls         bool   `koanf:"log_calls"`
	MaxAttempts      int    `koanf:"max_attempts"`
	BackoffBaseMs    int    `koanf:"backoff_base_ms"`
	WebSearchMaxUses int    `koanf:"web_search_max_uses"`

	// BreakerFailures consecutive transport failures open the circuit for
	// BreakerCooldownMs. Zero disables the breaker.
	BreakerFailures   int `koanf:"breaker_failures"`
	BreakerCooldownMs int `koanf:"breaker_cooldown_ms"`
}

// DefaultConfig returns the settings the hosted Messages API expects.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:          "https://api.anthropic.com",
		APIVersion:        "2023-06-01",
		Model:             "claude-sonnet-4-20250514",
		MaxTokens:         16000,
		TimeoutMs:         180000,
		LogCalls:          true,
		MaxAttempts:       3,
		BackoffBaseMs:     2000,
		WebSearchMaxUses:  5,
		BreakerFailures:   5,
		BreakerCooldownMs: 30000,
	}
}

// Validate rejects settings that would make every call fail.
func (c LLMConfig) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("llm.endpoint is required"))
	}
	if c.Model == "" {
		errs = append(errs, errors.New("llm.model is required"))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("llm.max_tokens must be > 0, got %d", c.MaxTokens))
	}
	if c.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("llm.timeout_ms must be > 0, got %d", c.TimeoutMs))
	}
	if c.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("llm.max_attempts must be > 0, got %d", c.MaxAttempts))
	}
	if c.BackoffBaseMs < 0 {
		errs = append(errs, fmt.Errorf("llm.backoff_base_ms must be >= 0, got %d", c.BackoffBaseMs))
	}
	if c.WebSearchMaxUses < 0 {
		errs = append(errs, fmt.Errorf("llm.web_search_max_uses must be >= 0, got %d", c.WebSearchMaxUses))
	}
	if c.BreakerFailures < 0 {
		errs = append(errs, fmt.Errorf("llm.breaker_failures must be >= 0, got %d", c.BreakerFailures))
	}
	if c.BreakerFailures > 0 && c.BreakerCooldownMs <= 0 {
		errs = append(errs, fmt.Errorf("llm.breaker_cooldown_ms must be > 0 when the breaker is enabled, got %d", c.BreakerCooldownMs))
	}
	return errors.Join(errs...)
}

func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c LLMConfig) BackoffBase() time.Duration {
	return time.Duration(c.BackoffBaseMs) * time.Millisecond
}

func (c LLMConfig) BreakerCooldown() time.Duration {
	return time.Duration(c.BreakerCooldownMs) * time.Millisecond
}
