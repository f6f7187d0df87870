// Package service scores individual companies from market data.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"dividend-screener/internal/fetcher"
	"dividend-screener/internal/metrics"
)

const (
	lineNetCashFlow  = "net_cash_flow_continuing"
	lineAverageShare = "basic_average_shares"
	quarterly        = "quarterly"
)

// Score is the dividend profile of one company.
type Score struct {
	Symbol     string
	Currency   string
	Frequency  int
	CurrentDiv float64
	PayDate    time.Time
	Price      float64
	Yield      float64
	Growth     float64
	PayoutRate float64
	History    metrics.History
}

// Result pairs a requested symbol with its score or failure.
type Result struct {
	Symbol string
	Score  Score
	Err    error
}

// Scorer orchestrates market-data lookups and metric calculation.
type Scorer struct {
	market  fetcher.MarketDataFetcher
	workers int
	logger  zerolog.Logger
}

// New constructs a scorer running up to workers lookups at once.
func New(market fetcher.MarketDataFetcher, workers int, logger zerolog.Logger) *Scorer {
	if workers <= 0 {
		workers = 1
	}
	return &Scorer{
		market:  market,
		workers: workers,
		logger:  logger.With().Str("component", "service").Logger(),
	}
}

// ScoreAll scores every symbol concurrently. A failing symbol does not stop
// the others; results keep the order of symbols.
func (s *Scorer) ScoreAll(ctx context.Context, symbols []string) []Result {
	results := make([]Result, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			score, err := s.Score(gctx, symbol)
			if err != nil {
				s.logger.Error().Err(err).Str("symbol", symbol).Msg("scoring failed")
			}
			results[i] = Result{Symbol: symbol, Score: score, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Score computes the current dividend, yield, growth and payout rate of a
// single company.
func (s *Scorer) Score(ctx context.Context, symbol string) (Score, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	score := Score{Symbol: symbol}

	records, err := s.market.FetchDividends(ctx, symbol)
	if err != nil {
		return score, err
	}
	if len(records) == 0 {
		return score, &fetcher.IncompleteDataError{Symbol: symbol, Item: "dividend history"}
	}

	payments := make([]metrics.Payment, 0, len(records))
	for _, r := range records {
		payDate, err := time.Parse(time.DateOnly, r.PayDate)
		if err != nil {
			return score, &fetcher.IncompleteDataError{Symbol: symbol, Item: fmt.Sprintf("valid pay date (got %q)", r.PayDate)}
		}
		payments = append(payments, metrics.Payment{PayDate: payDate, Amount: r.CashAmount.InexactFloat64()})
	}
	history := metrics.SortHistory(payments)
	latest, err := history.Latest()
	if err != nil {
		return score, err
	}

	score.History = history
	score.CurrentDiv = latest.Amount
	score.PayDate = latest.PayDate
	score.Currency = records[0].Currency
	score.Frequency = records[0].Frequency

	if score.Growth, err = metrics.AverageGrowthRate(history); err != nil {
		return score, fmt.Errorf("%s: dividend growth: %w", symbol, err)
	}
	s.logger.Info().
		Str("symbol", symbol).
		Float64("current_div", score.CurrentDiv).
		Str("currency", score.Currency).
		Int("frequency", score.Frequency).
		Int("samples", len(history)).
		Float64("avg_dgr", score.Growth).
		Msg("dividend history")

	price, err := s.market.FetchPreviousClose(ctx, symbol)
	if err != nil {
		return score, err
	}
	score.Price = price.InexactFloat64()
	if score.Yield, err = metrics.AnnualizedYield(history, score.Price, score.Frequency); err != nil {
		return score, fmt.Errorf("%s: dividend yield: %w", symbol, err)
	}
	s.logger.Info().Str("symbol", symbol).Float64("price", score.Price).Float64("div_yield", score.Yield).Msg("share price")

	reports, err := s.market.FetchFinancials(ctx, symbol)
	if err != nil {
		return score, err
	}
	report, err := coveringReport(symbol, reports, score.PayDate)
	if err != nil {
		return score, err
	}

	netCashFlow, err := lineValue(symbol, report.Financials.CashFlowStatement, "cash flow statement", lineNetCashFlow)
	if err != nil {
		return score, err
	}
	shares, err := lineValue(symbol, report.Financials.IncomeStatement, "income statement", lineAverageShare)
	if err != nil {
		return score, err
	}
	s.logger.Info().
		Str("symbol", symbol).
		Str("company", report.CompanyName).
		Str("fiscal_year", report.FiscalYear).
		Str("fiscal_period", report.FiscalPeriod).
		Float64("net_cash_flow", netCashFlow).
		Float64("basic_average_shares", shares).
		Msg("financial statement")

	if score.PayoutRate, err = metrics.PayoutRatio(score.CurrentDiv, shares, netCashFlow); err != nil {
		return score, fmt.Errorf("%s: payout ratio: %w", symbol, err)
	}
	return score, nil
}

// coveringReport finds the quarterly report whose window strictly contains
// payDate.
func coveringReport(symbol string, reports []fetcher.FinancialReport, payDate time.Time) (fetcher.FinancialReport, error) {
	for _, r := range reports {
		if r.Timeframe != quarterly {
			continue
		}
		start, err := time.Parse(time.DateOnly, r.StartDate)
		if err != nil {
			return fetcher.FinancialReport{}, &fetcher.IncompleteDataError{Symbol: symbol, Item: "financial report start date"}
		}
		end, err := time.Parse(time.DateOnly, r.EndDate)
		if err != nil {
			return fetcher.FinancialReport{}, &fetcher.IncompleteDataError{Symbol: symbol, Item: "financial report end date"}
		}
		if start.Before(payDate) && end.After(payDate) {
			return r, nil
		}
	}
	return fetcher.FinancialReport{}, &fetcher.IncompleteDataError{
		Symbol: symbol,
		Item:   "quarterly financial report covering " + payDate.Format(time.DateOnly),
	}
}

func lineValue(symbol string, st fetcher.Statement, statement, key string) (float64, error) {
	if st == nil {
		return 0, &fetcher.IncompleteDataError{Symbol: symbol, Item: statement}
	}
	item, ok := st[key]
	if !ok || item.Value == nil {
		return 0, &fetcher.IncompleteDataError{Symbol: symbol, Item: statement + " " + key}
	}
	return item.Value.InexactFloat64(), nil
}
