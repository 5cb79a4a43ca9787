package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "indexconf",
		Short:        "Resolve and apply event indexer integration configs",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve an integration config into its canonical form",
		RunE:  runResolve,
	}

	resolveCmd.Flags().String("in", "", "authored config JSON")
	resolveCmd.Flags().String("out", "-", "resolved config path, - for stdout")
	resolveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(resolveCmd)

	ddlCmd := &cobra.Command{
		Use:   "ddl",
		Short: "Print the table DDL for a resolved config",
		RunE:  runDDL,
	}

	ddlCmd.Flags().String("in", "", "authored config JSON")
	ddlCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(ddlCmd)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create integration tables in Postgres",
		RunE:  runMigrate,
	}

	migrateCmd.Flags().String("in", "", "authored config JSON")
	migrateCmd.Flags().String("pg-url", "", "Postgres URL, overrides pg_url from the config")
	migrateCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(migrateCmd)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify sources against their RPC endpoints",
		RunE:  runCheck,
	}

	checkCmd.Flags().String("in", "", "authored config JSON")
	checkCmd.Flags().Int("max-retries", 3, "maximum retry attempts per RPC call")
	checkCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	checkCmd.Flags().Duration("timeout", 30*time.Second, "overall timeout")
	checkCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(checkCmd)

	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
