package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"indexConfig/internal/config"
	"indexConfig/internal/schema"
	"indexConfig/internal/storage/postgres"
)

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadMigrate(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	resolved, err := loadResolved(cfg.In, logger)
	if err != nil {
		return err
	}

	pgURL := resolved.PGURL
	if cfg.PGURL != "" {
		pgURL = cfg.PGURL
	}
	if pgURL == "" {
		return fmt.Errorf("pg url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.NewStore(ctx, pgURL, logger)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	tables := schema.Tables(resolved)
	logger.Info("migrate start", zap.Int("tables", len(tables)))
	if err := store.Migrate(ctx, tables); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("migrate complete", zap.Int("tables", len(tables)))
	return nil
}
