package screen

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dividend-screener/internal/table"
)

const (
	inflation  = 3.4
	sp500DivY  = 1.61
	maxDivY    = 10.0
	payoutFrac = 0.75
)

func ptr(v float64) *float64 { return &v }

func yieldTable(yields ...float64) *table.Table {
	return table.MustNew(
		table.Strings(ColSymbol, "ABM", "INTC", "CAT"),
		table.Floats(ColDivYield, yields...),
	)
}

func fullTable() *table.Table {
	return table.MustNew(
		table.Strings(ColSymbol, "ABM", "INTC", "CAT"),
		table.Floats(ColDivYield, 5.54, 1.32, 4.0),
		table.Floats(ColCurrentDiv, 0.54, 1.62, 0.14),
		table.Floats(ColCFShare, 10.0, 2.0, 20.0),
		table.Floats(ColDGR1Y, 7.05, 0.68, 3.94),
		table.Floats(ColDGR3Y, 8.51, 0.91, 3.07),
		table.Floats(ColDGR5Y, 8.96, 3.36, 5.29),
		table.Floats(ColDGR10Y, 8.87, 9.34, 4.97),
	)
}

func TestEffectiveMinYield(t *testing.T) {
	assert.InDelta(t, 3.9, EffectiveMinYield(sp500DivY, inflation, 3.9), 1e-9)
	assert.InDelta(t, 3.4, EffectiveMinYield(sp500DivY, inflation, 1.0), 1e-9)
	assert.InDelta(t, 3.0, EffectiveMinYield(2.0, 1.0, 0), 1e-9)
}

func TestYield(t *testing.T) {
	tests := []struct {
		name     string
		yields   []float64
		minYield float64
		want     *table.Table
	}{
		{
			name:     "floor from min yield",
			yields:   []float64{5.54, 1.32, 4.0},
			minYield: 3.9,
			want: table.MustNew(
				table.Strings(ColSymbol, "ABM", "CAT"),
				table.Floats(ColDivYield, 5.54, 4.0),
			),
		},
		{
			name:     "min yield above floor",
			yields:   []float64{9.0, 1.32, 4.0},
			minYield: 5.0,
			want: table.MustNew(
				table.Strings(ColSymbol, "ABM"),
				table.Floats(ColDivYield, 9.0),
			),
		},
		{
			name:     "ceiling rejects suspicious yield",
			yields:   []float64{11.0, 1.32, 4.0},
			minYield: 3.0,
			want: table.MustNew(
				table.Strings(ColSymbol, "CAT"),
				table.Floats(ColDivYield, 4.0),
			),
		},
		{
			name:     "min yield below floor changes nothing",
			yields:   []float64{5.54, 1.32, 4.0},
			minYield: 0.5,
			want: table.MustNew(
				table.Strings(ColSymbol, "ABM", "CAT"),
				table.Floats(ColDivYield, 5.54, 4.0),
			),
		},
		{
			name:     "min yield 5 keeps only ABM",
			yields:   []float64{5.54, 1.32, 4.0},
			minYield: 5.0,
			want: table.MustNew(
				table.Strings(ColSymbol, "ABM"),
				table.Floats(ColDivYield, 5.54),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Yield(yieldTable(tt.yields...), sp500DivY, inflation, tt.minYield, maxDivY)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v", got.Names())
		})
	}
}

func TestYieldBoundaries(t *testing.T) {
	// floor 4.0 is excluded, ceiling 10.0 retained
	got, err := Yield(yieldTable(4.0, 10.0, 7.0), 1.0, 1.0, 4.0, 10.0)
	require.NoError(t, err)
	want := table.MustNew(
		table.Strings(ColSymbol, "INTC", "CAT"),
		table.Floats(ColDivYield, 10.0, 7.0),
	)
	assert.True(t, got.Equal(want))
}

func TestYieldEmptyWhenFloorAboveCeiling(t *testing.T) {
	got, err := Yield(yieldTable(5.54, 1.32, 4.0), sp500DivY, inflation, 12.0, maxDivY)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Height())
}

func TestYieldIdempotent(t *testing.T) {
	once, err := Yield(yieldTable(5.54, 1.32, 4.0), sp500DivY, inflation, 3.9, maxDivY)
	require.NoError(t, err)
	twice, err := Yield(once, sp500DivY, inflation, 3.9, maxDivY)
	require.NoError(t, err)
	assert.True(t, once.Equal(twice))
}

func TestYieldMissingValues(t *testing.T) {
	tbl := table.MustNew(
		table.Strings(ColSymbol, "ABM", "INTC"),
		table.NullableFloats(ColDivYield, nil, ptr(6)),
	)
	got, err := Yield(tbl, sp500DivY, inflation, 3.9, maxDivY)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Height())
}

func TestYieldMissingColumn(t *testing.T) {
	_, err := Yield(table.MustNew(table.Strings(ColSymbol, "ABM")), sp500DivY, inflation, 3.9, maxDivY)
	require.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestPayout(t *testing.T) {
	tbl := table.MustNew(
		table.Strings(ColSymbol, "ABM", "INTC", "CAT"),
		table.Floats(ColDivYield, 5.54, 1.32, 4.0),
		table.Floats(ColCurrentDiv, 0.54, 1.62, 0.14),
		table.Floats(ColCFShare, 10.0, 2.0, 20.0),
	)
	want := table.MustNew(
		table.Strings(ColSymbol, "ABM", "CAT"),
		table.Floats(ColDivYield, 5.54, 4.0),
		table.Floats(ColCurrentDiv, 0.54, 0.14),
		table.Floats(ColCFShare, 10.0, 20.0),
	)

	got, err := Payout(tbl, payoutFrac)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestPayoutNeverAdmitsAtOrAboveThreshold(t *testing.T) {
	tbl := table.MustNew(
		table.Strings(ColSymbol, "EQ", "OVER", "UNDER", "NOCF"),
		table.Floats(ColDivYield, 5, 6, 7, 8),
		table.NullableFloats(ColCurrentDiv, ptr(0.75), ptr(2), ptr(0.1), ptr(1)),
		table.NullableFloats(ColCFShare, ptr(1), ptr(1), ptr(1), nil),
	)

	got, err := Payout(tbl, payoutFrac)
	require.NoError(t, err)

	symbols, err := got.Column(ColSymbol)
	require.NoError(t, err)
	require.Equal(t, 1, symbols.Len())
	s, _ := symbols.Text(0)
	assert.Equal(t, "UNDER", s)
}

func TestPayoutMissingColumn(t *testing.T) {
	_, err := Payout(yieldTable(1, 2, 3), payoutFrac)
	require.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestGrowth(t *testing.T) {
	want := table.MustNew(
		table.Strings(ColSymbol, "ABM"),
		table.Floats(ColDivYield, 5.54),
		table.Floats(ColCurrentDiv, 0.54),
		table.Floats(ColCFShare, 10.0),
		table.Floats(ColDGR1Y, 7.05),
		table.Floats(ColDGR3Y, 8.51),
		table.Floats(ColDGR5Y, 8.96),
		table.Floats(ColDGR10Y, 8.87),
	)

	got, err := Growth(fullTable(), 7.0)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestGrowthKeepsZeroTenYearRate(t *testing.T) {
	tbl := table.MustNew(
		table.Strings(ColSymbol, "ACC", "FLAT"),
		table.Floats(ColDGR1Y, 12, 12),
		table.Floats(ColDGR3Y, 8, 8),
		table.Floats(ColDGR5Y, 6, 0),
		table.Floats(ColDGR10Y, 0, 0),
	)

	got, err := Growth(tbl, 10)
	require.NoError(t, err)

	symbols, err := got.Column(ColSymbol)
	require.NoError(t, err)
	require.Equal(t, 1, symbols.Len())
	sym, _ := symbols.Text(0)
	assert.Equal(t, "ACC", sym)
}

func TestGrowthMissingValues(t *testing.T) {
	tbl := table.MustNew(
		table.Strings(ColSymbol, "ABM", "NO1Y", "NO5Y", "NO10Y"),
		table.NullableFloats(ColDGR1Y, ptr(12), nil, ptr(12), ptr(12)),
		table.NullableFloats(ColDGR3Y, ptr(8), ptr(8), ptr(8), ptr(8)),
		table.NullableFloats(ColDGR5Y, ptr(6), ptr(6), nil, ptr(6)),
		table.NullableFloats(ColDGR10Y, ptr(5), ptr(5), ptr(5), nil),
	)

	got, err := Growth(tbl, 10)
	require.NoError(t, err)

	symbols, err := got.Column(ColSymbol)
	require.NoError(t, err)
	require.Equal(t, 1, symbols.Len())
	sym, _ := symbols.Text(0)
	assert.Equal(t, "ABM", sym)
}

func TestGrowthSortsByOneYearRate(t *testing.T) {
	got, err := Growth(fullTable(), 0)
	require.NoError(t, err)

	dgr, err := got.Column(ColDGR1Y)
	require.NoError(t, err)
	require.Equal(t, 2, dgr.Len())
	first, _ := dgr.Float(0)
	second, _ := dgr.Float(1)
	assert.Equal(t, 7.05, first)
	assert.Equal(t, 3.94, second)
}

func TestGrowthMissingColumn(t *testing.T) {
	_, err := Growth(yieldTable(1, 2, 3), 7.0)
	require.ErrorIs(t, err, table.ErrMissingColumn)
}

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(Thresholds{
		Inflation:     inflation,
		IndexYield:    sp500DivY,
		MinYield:      3.9,
		MaxYield:      maxDivY,
		MinGrowthRate: 7.0,
		MaxPayoutRate: 75.0,
	}, zerolog.Nop())

	got, err := p.Run(fullTable())
	require.NoError(t, err)

	symbols, err := got.Column(ColSymbol)
	require.NoError(t, err)
	require.Equal(t, 1, symbols.Len())
	s, _ := symbols.Text(0)
	assert.Equal(t, "ABM", s)
}

func TestPipelineRunMissingColumn(t *testing.T) {
	p := NewPipeline(Thresholds{MaxYield: maxDivY, MaxPayoutRate: 75}, zerolog.Nop())
	_, err := p.Run(yieldTable(5.54, 1.32, 4.0))
	require.ErrorIs(t, err, table.ErrMissingColumn)
}
