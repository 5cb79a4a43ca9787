package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// MigrateConfig holds settings for the migrate command.
type MigrateConfig struct {
	In       string
	PGURL    string
	LogLevel string
}

// LoadMigrate merges config file, environment variables, and flags into MigrateConfig.
// PGURL is empty unless set, in which case it overrides the resolved pg_url.
func LoadMigrate(cfgFile string, flags *pflag.FlagSet) (MigrateConfig, error) {
	v, err := newViper(cfgFile, flags, nil)
	if err != nil {
		return MigrateConfig{}, err
	}

	cfg := MigrateConfig{
		In:       v.GetString("in"),
		PGURL:    v.GetString("pg-url"),
		LogLevel: v.GetString("log-level"),
	}
	if cfg.In == "" {
		return MigrateConfig{}, fmt.Errorf("input path is required")
	}
	return cfg, nil
}
