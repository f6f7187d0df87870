package app

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"dividend-screener/internal/config"
	"dividend-screener/internal/service"
)

var errNoChartData = errors.New("no scored company has at least two dividend payments to plot")

// writeHistoryPNG plots the dividend payment history of every scored company.
func writeHistoryPNG(path string, results []service.Result, size config.ChartConfig) error {
	series := historySeries(results)
	if len(series) == 0 {
		return errNoChartData
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	amountFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.4f")
	}
	graph := chart.Chart{
		Width:  size.Width,
		Height: size.Height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Cash amount per share",
			ValueFormatter: amountFormatter,
		},
		Series: series,
	}
	if lo, hi, flat := amountRange(series); flat {
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func historySeries(results []service.Result) []chart.Series {
	var series []chart.Series
	for _, res := range results {
		if res.Err != nil || len(res.Score.History) < 2 {
			continue
		}
		x := make([]time.Time, len(res.Score.History))
		y := make([]float64, len(res.Score.History))
		for i, p := range res.Score.History {
			x[i] = p.PayDate
			y[i] = p.Amount
		}
		series = append(series, chart.TimeSeries{
			Name:    res.Symbol,
			XValues: x,
			YValues: y,
		})
	}
	return series
}

// amountRange pads the y-axis when every payment has the same amount, which
// go-chart otherwise rejects as a zero-height range.
func amountRange(series []chart.Series) (lo, hi float64, flat bool) {
	first := true
	var v float64
	for _, s := range series {
		for _, y := range s.(chart.TimeSeries).YValues {
			if first {
				v, first = y, false
				continue
			}
			if y != v {
				return 0, 0, false
			}
		}
	}
	pad := math.Abs(v) * 0.1
	if pad == 0 {
		pad = 1
	}
	return v - pad, v + pad, true
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
