package app

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"

	"dividend-screener/internal/config"
	"dividend-screener/internal/metrics"
	"dividend-screener/internal/service"
)

func TestHistorySeriesSkipsFailuresAndShortHistories(t *testing.T) {
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []service.Result{
		{Symbol: "ABM", Score: service.Score{History: metrics.History{
			{PayDate: day, Amount: 0.2},
			{PayDate: day.AddDate(0, 3, 0), Amount: 0.25},
		}}},
		{Symbol: "ONE", Score: service.Score{History: metrics.History{{PayDate: day, Amount: 1}}}},
		{Symbol: "BAD", Err: errors.New("boom")},
	}

	series := historySeries(results)
	require.Len(t, series, 1)
	ts := series[0].(chart.TimeSeries)
	assert.Equal(t, "ABM", ts.Name)
	assert.Equal(t, []float64{0.2, 0.25}, ts.YValues)
}

func TestAmountRange(t *testing.T) {
	flat := []chart.Series{chart.TimeSeries{YValues: []float64{0.5, 0.5}}}
	lo, hi, ok := amountRange(flat)
	assert.True(t, ok)
	assert.InDelta(t, 0.45, lo, 1e-12)
	assert.InDelta(t, 0.55, hi, 1e-12)

	_, _, ok = amountRange([]chart.Series{chart.TimeSeries{YValues: []float64{0.5, 0.6}}})
	assert.False(t, ok)
}

func TestWriteHistoryPNGWithoutData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	err := writeHistoryPNG(path, nil, config.ChartConfig{Width: 100, Height: 100})
	require.ErrorIs(t, err, errNoChartData)
}
