package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"dividend-screener/internal/service"
	"dividend-screener/internal/table"
)

// RenderTable writes t as tab-aligned text.
func RenderTable(w io.Writer, t *table.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	names := t.Names()
	fmt.Fprintln(tw, strings.Join(names, "\t"))

	cols, err := t.Columns(names...)
	if err != nil {
		return err
	}
	cells := make([]string, len(cols))
	for row := 0; row < t.Height(); row++ {
		for i, c := range cols {
			cells[i] = formatCell(c, row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	fmt.Fprintf(tw, "(%d rows)\n", t.Height())
	return tw.Flush()
}

// RenderScores writes one line per scored symbol, failures included.
func RenderScores(w io.Writer, results []service.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Symbol\tCurrent Div\tCurrency\tFrequency\tDiv Yield[%]\tAvg DGR[%]\tPayout Rate[%]\tSamples\tError")

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t-\t-\t%s\n", res.Symbol, sanitizeInline(res.Err.Error()))
			continue
		}
		s := res.Score
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%d\t\n",
			res.Symbol,
			fixed(s.CurrentDiv, 4),
			s.Currency,
			s.Frequency,
			fixed(s.Yield, 2),
			fixed(s.Growth, 2),
			fixed(s.PayoutRate, 2),
			len(s.History),
		)
	}
	return tw.Flush()
}

func formatCell(c *table.Column, row int) string {
	if c.Kind() == table.Numeric {
		v, ok := c.Float(row)
		if !ok {
			return "null"
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return decimal.NewFromFloat(v).Round(4).String()
	}
	return c.Format(row)
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	return strings.ReplaceAll(cleaned, "\r", " ")
}
