// Package report projects screened tables and scores for display.
package report

import (
	"errors"
	"fmt"

	"dividend-screener/internal/screen"
	"dividend-screener/internal/table"
)

// ColPayoutRate is the derived payout column.
const ColPayoutRate = "Div Payout Rate[%]"

// ErrSymbolNotFound indicates a requested symbol matched no row.
var ErrSymbolNotFound = errors.New("symbol not found")

// SymbolNotFoundError names the missing symbol.
type SymbolNotFoundError struct {
	Symbol string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("company symbol %q not present in selected list", e.Symbol)
}

// Is matches ErrSymbolNotFound.
func (e *SymbolNotFoundError) Is(target error) bool { return target == ErrSymbolNotFound }

var summaryColumns = []string{
	screen.ColSymbol,
	screen.ColCompany,
	screen.ColCurrentDiv,
	screen.ColDivYield,
	screen.ColPrice,
}

// Project selects the summary columns of t and appends the payout rate
// Annualized / CF/Share * 100. A non-empty symbol restricts the projection to
// that company and fails when it is absent.
func Project(t *table.Table, symbol string) (*table.Table, error) {
	rows := t
	if symbol != "" {
		col, err := t.Column(screen.ColSymbol)
		if err != nil {
			return nil, err
		}
		mask, err := col.EqualText(symbol)
		if err != nil {
			return nil, err
		}
		if rows, err = t.Filter(mask); err != nil {
			return nil, err
		}
		if rows.Height() == 0 {
			return nil, &SymbolNotFoundError{Symbol: symbol}
		}
	}

	selected, err := rows.Select(summaryColumns...)
	if err != nil {
		return nil, err
	}

	cols, err := rows.Columns(screen.ColAnnualized, screen.ColCFShare)
	if err != nil {
		return nil, err
	}
	ratio, err := table.Div(ColPayoutRate, cols[0], cols[1])
	if err != nil {
		return nil, err
	}
	rate, err := table.Scale(ColPayoutRate, ratio, 100)
	if err != nil {
		return nil, err
	}

	return selected.WithColumn(rate)
}
