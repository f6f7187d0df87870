// Package screen implements the yield, payout and growth filter stages.
// Each stage returns a new, filtered and sorted table; rows with a missing
// value in a referenced column never pass.
package screen

import (
	"math"

	"dividend-screener/internal/table"
)

const (
	// indexYieldMultiple scales the reference index yield into a floor.
	indexYieldMultiple = 1.5
	// minGrowthTrendRatio is the lowest accepted DGR 5Y / DGR 10Y ratio.
	minGrowthTrendRatio = 1.0
)

// EffectiveMinYield is the yield floor: the largest of the configured
// minimum, inflation and 1.5 times the index yield.
func EffectiveMinYield(indexYield, inflation, minYield float64) float64 {
	return math.Max(minYield, math.Max(inflation, indexYield*indexYieldMultiple))
}

// Yield keeps rows with floor < Div Yield <= maxYield, sorted by Div Yield
// descending. A yield equal to the floor is excluded.
func Yield(t *table.Table, indexYield, inflation, minYield, maxYield float64) (*table.Table, error) {
	floor := EffectiveMinYield(indexYield, inflation, minYield)

	yield, err := t.Column(ColDivYield)
	if err != nil {
		return nil, err
	}
	above, err := yield.Greater(floor)
	if err != nil {
		return nil, err
	}
	below, err := yield.LessEqual(maxYield)
	if err != nil {
		return nil, err
	}

	return filterSorted(t, above.And(below), ColDivYield)
}

// Payout keeps rows with Current Div / CF/Share < maxRatio, sorted by Div
// Yield descending. maxRatio is a fraction, not a percentage.
func Payout(t *table.Table, maxRatio float64) (*table.Table, error) {
	cols, err := t.Columns(ColCurrentDiv, ColCFShare)
	if err != nil {
		return nil, err
	}
	ratio, err := table.Div("payout", cols[0], cols[1])
	if err != nil {
		return nil, err
	}
	mask, err := ratio.Less(maxRatio)
	if err != nil {
		return nil, err
	}

	return filterSorted(t, mask, ColDivYield)
}

// Growth keeps rows with DGR 5Y / DGR 10Y >= 1 and DGR 1Y >= minGrowthRate,
// sorted by DGR 1Y descending.
func Growth(t *table.Table, minGrowthRate float64) (*table.Table, error) {
	cols, err := t.Columns(ColDGR1Y, ColDGR3Y, ColDGR5Y, ColDGR10Y)
	if err != nil {
		return nil, err
	}
	trend, err := table.Div("trend", cols[2], cols[3])
	if err != nil {
		return nil, err
	}
	steady, err := trend.GreaterEqual(minGrowthTrendRatio)
	if err != nil {
		return nil, err
	}
	fast, err := cols[0].GreaterEqual(minGrowthRate)
	if err != nil {
		return nil, err
	}

	return filterSorted(t, steady.And(fast), ColDGR1Y)
}

func filterSorted(t *table.Table, mask table.Mask, sortBy string) (*table.Table, error) {
	filtered, err := t.Filter(mask)
	if err != nil {
		return nil, err
	}
	return filtered.SortDesc(sortBy)
}
