package app

import (
	"context"
	"errors"
	"fmt"

	"dividend-screener/internal/ingest"
	"dividend-screener/internal/report"
	"dividend-screener/internal/screen"
	"dividend-screener/internal/table"
)

// Screen loads the configured list and prints either the screened
// candidates or, when companies are given, the summary of each company.
func (a *App) Screen(ctx context.Context, opts ScreenOptions) error {
	wb, err := a.openWorkbook(opts.DataPath)
	if err != nil {
		return err
	}
	defer wb.Close()

	data, err := ingest.NewIngestor(a.Logger).Load(wb, opts.List)
	if err != nil {
		return err
	}

	if len(opts.Companies) > 0 {
		return a.lookup(ctx, data, opts.Companies)
	}

	shortlisted, err := screen.NewPipeline(opts.Thresholds, a.Logger).Run(data)
	if err != nil {
		return err
	}
	summary, err := report.Project(shortlisted, "")
	if err != nil {
		return err
	}
	return report.RenderTable(a.Out, summary)
}

// lookup prints every requested company, continuing past symbols that are
// not in the list.
func (a *App) lookup(ctx context.Context, data *table.Table, symbols []string) error {
	var failures []error
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}

		summary, err := report.Project(data, symbol)
		if err != nil {
			a.Logger.Error().Err(err).Str("symbol", symbol).Msg("company lookup failed")
			failures = append(failures, err)
			continue
		}
		if err := report.RenderTable(a.Out, summary); err != nil {
			return err
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d company lookups failed: %w", len(failures), len(symbols), errors.Join(failures...))
	}
	return nil
}
