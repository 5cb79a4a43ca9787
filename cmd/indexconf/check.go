package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"indexConfig/internal/chain"
	"indexConfig/internal/config"
)

func runCheck(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCheck(cfgFile, cmd.Flags())
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	verifier := chain.NewVerifier(chain.Dial, chain.RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.RetryBackoff,
	}, logger)

	reports, verifyErr := verifier.Verify(ctx, resolved)

	out := cmd.OutOrStdout()
	for _, r := range reports {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		fmt.Fprintf(out, "%s\tchain=%d\tlatest=%d\t%s\n", r.Source.Name, r.Source.ChainID, r.Latest, status)
		if r.Err != nil {
			continue
		}
		for _, s := range r.Starts {
			note := ""
			if s.Ahead {
				note = "\tstart ahead of head"
			}
			fmt.Fprintf(out, "  %s\tstart=%s\tbacklog=%s%s\n", s.Integration, s.Start, s.Backlog, note)
		}
	}
	return verifyErr
}
