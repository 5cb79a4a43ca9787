package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ResolveConfig holds settings for the resolve and ddl commands.
type ResolveConfig struct {
	In       string
	Out      string
	LogLevel string
}

// LoadResolve merges config file, environment variables, and flags into ResolveConfig.
func LoadResolve(cfgFile string, flags *pflag.FlagSet) (ResolveConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"out": "-",
	})
	if err != nil {
		return ResolveConfig{}, err
	}

	cfg := ResolveConfig{
		In:       v.GetString("in"),
		Out:      v.GetString("out"),
		LogLevel: v.GetString("log-level"),
	}
	if cfg.In == "" {
		return ResolveConfig{}, fmt.Errorf("input path is required")
	}
	return cfg, nil
}

// newViper builds a viper instance reading INDEXER_* variables, the bound
// flags and an optional config file. Without cfgFile, ./config.* is read
// when present.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]any) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}
