package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// CheckConfig holds settings for the check command.
type CheckConfig struct {
	In           string
	MaxRetries   int
	RetryBackoff time.Duration
	Timeout      time.Duration
	LogLevel     string
}

// LoadCheck merges config file, environment variables, and flags into CheckConfig.
func LoadCheck(cfgFile string, flags *pflag.FlagSet) (CheckConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"max-retries":   3,
		"retry-backoff": 500 * time.Millisecond,
		"timeout":       30 * time.Second,
	})
	if err != nil {
		return CheckConfig{}, err
	}

	cfg := CheckConfig{
		In:           v.GetString("in"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Timeout:      v.GetDuration("timeout"),
		LogLevel:     v.GetString("log-level"),
	}
	if cfg.In == "" {
		return CheckConfig{}, fmt.Errorf("input path is required")
	}
	if cfg.MaxRetries < 0 {
		return CheckConfig{}, fmt.Errorf("max-retries must not be negative")
	}
	return cfg, nil
}
