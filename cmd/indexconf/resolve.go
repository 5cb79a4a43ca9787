package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"indexConfig/internal/config"
	"indexConfig/internal/eventabi"
	"indexConfig/internal/model"
	"indexConfig/internal/resolver"
	"indexConfig/internal/schema"
	"indexConfig/internal/storage"
)

func runResolve(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadResolve(cfgFile, cmd.Flags())
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

	sink := storage.NewFileStorage(cfg.Out, cmd.OutOrStdout(), logger)
	if err := sink.PutResolved(resolved); err != nil {
		return fmt.Errorf("store resolved config: %w", err)
	}
	return nil
}

func runDDL(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadResolve(cfgFile, cmd.Flags())
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

	out := cmd.OutOrStdout()
	for _, stmt := range schema.DDL(resolved) {
		if _, err := fmt.Fprintf(out, "%s;\n", stmt); err != nil {
			return fmt.Errorf("write ddl: %w", err)
		}
	}
	return nil
}

// loadResolved reads and resolves the authored config at path. Each
// integration's event signature is logged at debug level.
func loadResolved(path string, logger *zap.Logger) (model.ResolvedConfig, error) {
	authored, err := storage.ReadConfig(path)
	if err != nil {
		return model.ResolvedConfig{}, err
	}

	resolved, err := resolver.Resolve(authored)
	if err != nil {
		return model.ResolvedConfig{}, fmt.Errorf("resolve %s: %w", path, err)
	}

	for _, ig := range resolved.Integrations {
		fields := []zap.Field{
			zap.String("integration", ig.Name),
			zap.Bool("enabled", ig.Enabled),
			zap.String("table", ig.Table.QualifiedName()),
			zap.Int("sources", len(ig.Sources)),
		}
		sig, err := eventabi.Signature(ig.Event)
		if err != nil {
			logger.Warn("event descriptor not parseable", append(fields, zap.Error(err))...)
			continue
		}
		fields = append(fields, zap.String("event", sig))
		if !ig.Event.Anonymous {
			if topic, err := eventabi.Topic0(ig.Event); err == nil {
				fields = append(fields, zap.String("topic0", topic.Hex()))
			}
		}
		logger.Debug("integration resolved", fields...)
	}

	logger.Info("config resolved",
		zap.String("in", path),
		zap.Int("sources", len(resolved.Sources)),
		zap.Int("integrations", len(resolved.Integrations)),
	)
	return resolved, nil
}
