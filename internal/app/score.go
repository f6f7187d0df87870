package app

import (
	"context"
	"errors"
	"fmt"

	"dividend-screener/internal/report"
	"dividend-screener/internal/service"
)

// Score fetches market data for each symbol and prints its dividend metrics.
// Every symbol is attempted; the returned error summarises the failures.
func (a *App) Score(ctx context.Context, opts ScoreOptions) error {
	if len(opts.Symbols) == 0 {
		return errors.New("at least one company symbol is required")
	}

	scorer := service.New(a.newMarketFetcher(), a.Config.MarketData.Workers, a.Logger)
	results := scorer.ScoreAll(ctx, opts.Symbols)

	if err := report.RenderScores(a.Out, results); err != nil {
		return err
	}

	if opts.ChartPath != "" {
		if err := writeHistoryPNG(opts.ChartPath, results, a.Config.Chart); err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		a.Logger.Info().Str("path", opts.ChartPath).Msg("dividend history chart written")
	}

	var failures []error
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, res.Err)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d companies could not be scored: %w", len(failures), len(results), errors.Join(failures...))
	}
	return nil
}
