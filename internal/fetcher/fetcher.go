package fetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrIncompleteData indicates a provider response lacks an expected record
// or field.
var ErrIncompleteData = errors.New("incomplete market data")

// IncompleteDataError names the symbol and the missing item.
type IncompleteDataError struct {
	Symbol string
	Item   string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Symbol, e.Item)
}

// Is matches ErrIncompleteData.
func (e *IncompleteDataError) Is(target error) bool { return target == ErrIncompleteData }

// DividendRecord is one historical dividend announcement.
type DividendRecord struct {
	Ticker          string          `json:"ticker"`
	CashAmount      decimal.Decimal `json:"cash_amount"`
	Currency        string          `json:"currency"`
	DividendType    string          `json:"dividend_type"`
	Frequency       int             `json:"frequency"`
	DeclarationDate string          `json:"declaration_date"`
	ExDividendDate  string          `json:"ex_dividend_date"`
	RecordDate      string          `json:"record_date"`
	PayDate         string          `json:"pay_date"`
}

// LineItem is a single financial statement value.
type LineItem struct {
	Value *decimal.Decimal `json:"value"`
	Unit  string           `json:"unit"`
	Label string           `json:"label"`
}

// Statement maps line-item keys to values.
type Statement map[string]LineItem

// FinancialReport is one periodic filing.
type FinancialReport struct {
	CompanyName  string   `json:"company_name"`
	Tickers      []string `json:"tickers"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	FiscalYear   string   `json:"fiscal_year"`
	FiscalPeriod string   `json:"fiscal_period"`
	Timeframe    string   `json:"timeframe"`
	Financials   struct {
		CashFlowStatement Statement `json:"cash_flow_statement"`
		IncomeStatement   Statement `json:"income_statement"`
	} `json:"financials"`
}

// MarketDataFetcher retrieves per-symbol market data.
type MarketDataFetcher interface {
	FetchDividends(ctx context.Context, symbol string) ([]DividendRecord, error)
	FetchPreviousClose(ctx context.Context, symbol string) (decimal.Decimal, error)
	FetchFinancials(ctx context.Context, symbol string) ([]FinancialReport, error)
}
