package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"indexConfig/internal/model"
)

// ErrChainIDMismatch means an endpoint serves a different chain than its
// source declares.
var ErrChainIDMismatch = errors.New("chain id mismatch")

// Endpoint is the part of Client used by Verifier.
type Endpoint interface {
	ChainID(ctx context.Context) (*big.Int, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
	Close()
}

// DialFunc opens an Endpoint for a source URL.
type DialFunc func(ctx context.Context, url string) (Endpoint, error)

// Dial is the default DialFunc backed by NewClient.
func Dial(ctx context.Context, url string) (Endpoint, error) {
	client, err := NewClient(ctx, url)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// StartReport describes one integration consuming a source.
type StartReport struct {
	Integration string
	Start       model.Height
	// Backlog is latest - start; zero when start is ahead of the head.
	Backlog *big.Int
	Ahead   bool
}

// SourceReport is the outcome of checking one source.
type SourceReport struct {
	Source        model.Source
	RemoteChainID *big.Int
	Latest        uint64
	Starts        []StartReport
	Err           error
}

// Verifier checks resolved sources against their endpoints.
type Verifier struct {
	dial   DialFunc
	retry  RetryPolicy
	logger *zap.Logger
}

func NewVerifier(dial DialFunc, retry RetryPolicy, logger *zap.Logger) *Verifier {
	if dial == nil {
		dial = Dial
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{dial: dial, retry: retry, logger: logger}
}

// Verify checks every source of cfg in order. A failing source does not stop
// the others; the returned error joins all source failures.
func (v *Verifier) Verify(ctx context.Context, cfg model.ResolvedConfig) ([]SourceReport, error) {
	reports := make([]SourceReport, 0, len(cfg.Sources))
	var errs []error
	for _, src := range cfg.Sources {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report := v.verifySource(ctx, src, startsFor(cfg, src.Name))
		if report.Err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", src.Name, report.Err))
		}
		reports = append(reports, report)
	}
	return reports, errors.Join(errs...)
}

func (v *Verifier) verifySource(ctx context.Context, src model.Source, starts []StartReport) SourceReport {
	report := SourceReport{Source: src, Starts: starts}
	logger := v.logger.With(zap.String("source", src.Name), zap.Uint64("chain_id", src.ChainID))

	var endpoint Endpoint
	err := v.retry.do(ctx, logger, "dial", func(ctx context.Context) error {
		var err error
		endpoint, err = v.dial(ctx, src.URL)
		return err
	})
	if err != nil {
		report.Err = fmt.Errorf("connect rpc: %w", err)
		return report
	}
	defer endpoint.Close()

	err = v.retry.do(ctx, logger, "chain_id", func(ctx context.Context) error {
		var err error
		report.RemoteChainID, err = endpoint.ChainID(ctx)
		return err
	})
	if err != nil {
		report.Err = fmt.Errorf("get chain id: %w", err)
		return report
	}
	if !report.RemoteChainID.IsUint64() || report.RemoteChainID.Uint64() != src.ChainID {
		report.Err = fmt.Errorf("%w: configured %d, endpoint %s", ErrChainIDMismatch, src.ChainID, report.RemoteChainID)
		return report
	}

	err = v.retry.do(ctx, logger, "block_number", func(ctx context.Context) error {
		var err error
		report.Latest, err = endpoint.LatestBlockNumber(ctx)
		return err
	})
	if err != nil {
		report.Err = fmt.Errorf("get latest block: %w", err)
		return report
	}

	latest := new(big.Int).SetUint64(report.Latest)
	for i := range report.Starts {
		s := &report.Starts[i]
		s.Backlog = new(big.Int).Sub(latest, s.Start.Big())
		if s.Backlog.Sign() < 0 {
			s.Ahead = true
			s.Backlog.SetInt64(0)
			logger.Warn("start is ahead of chain head", zap.String("integration", s.Integration), zap.Stringer("start", s.Start), zap.Uint64("latest", report.Latest))
		}
	}

	logger.Info("source verified", zap.Uint64("latest", report.Latest), zap.Int("integrations", len(report.Starts)))
	return report
}

func startsFor(cfg model.ResolvedConfig, source string) []StartReport {
	var out []StartReport
	for _, ig := range cfg.Integrations {
		for _, ref := range ig.Sources {
			if ref.Name == source {
				out = append(out, StartReport{Integration: ig.Name, Start: ref.Start.Clone()})
			}
		}
	}
	return out
}
