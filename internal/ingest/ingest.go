// Package ingest turns a named spreadsheet sheet into a typed table.
package ingest

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"dividend-screener/internal/sheet"
	"dividend-screener/internal/table"
)

// bannerRows precede the header row on every list sheet.
const bannerRows = 2

// Ingestor loads company lists from a spreadsheet source.
type Ingestor struct {
	logger zerolog.Logger
}

// NewIngestor constructs an ingestor.
func NewIngestor(logger zerolog.Logger) *Ingestor {
	return &Ingestor{logger: logger.With().Str("component", "ingest").Logger()}
}

// Load builds the table for the sheet named category. The first two rows
// are skipped, the third names the columns and the rest are data.
func (in *Ingestor) Load(src sheet.Source, category string) (*table.Table, error) {
	in.logger.Info().Str("category", category).Msg("processing category")

	names := src.SheetNames()
	in.logger.Info().Strs("available", names).Msg("available categories")
	if !contains(names, category) {
		return nil, &CategoryNotFoundError{Category: category, Available: names}
	}

	rows, err := src.Rows(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableConstruction, err)
	}
	if len(rows) <= bannerRows {
		return nil, fmt.Errorf("%w: sheet %q has no header row", ErrTableConstruction, category)
	}

	labels, keep := headerLabels(rows[bannerRows])
	in.logger.Info().Strs("columns", labels).Msg("columns")

	builder := NewColumnBuilder(labels, in.logger)
	for r, row := range rows[bannerRows+1:] {
		rowNum := bannerRows + 2 + r // 1-based sheet row
		for i := range labels {
			if !keep[i] {
				continue
			}
			cell := sheet.Empty()
			if i < len(row) {
				cell = row[i]
			}
			builder.Add(rowNum, i, Classify(cell))
		}
		for i := len(labels); i < len(row); i++ {
			if Classify(row[i]).Kind != KindEmpty {
				in.logger.Warn().Int("row", rowNum).Int("index", i).Str("value", row[i].String()).Msg("cell outside header range dropped")
			}
		}
	}

	built := builder.Finish()
	cols := make([]*table.Column, 0, len(labels))
	for i, label := range labels {
		if !keep[i] {
			continue
		}
		c, ok := built[i]
		if !ok {
			// header only, no data rows
			c = table.NewColumn(label, table.Text)
		}
		cols = append(cols, c)
	}

	tbl, err := table.New(cols...)
	if err != nil {
		in.logger.Error().Err(err).Str("category", category).Msg("table construction failed")
		return nil, fmt.Errorf("%w: %w", ErrTableConstruction, err)
	}

	in.logger.Info().Int("rows", tbl.Height()).Int("columns", tbl.Width()).Msg("category loaded")
	return tbl, nil
}

// headerLabels names every header cell, suffixing duplicates. keep[i] is
// false for cells that cannot name a column.
func headerLabels(header []sheet.Cell) ([]string, []bool) {
	labels := make([]string, len(header))
	keep := make([]bool, len(header))
	seen := make(map[string]int, len(header))

	for i, cell := range header {
		label, ok := HeaderLabel(cell)
		if !ok {
			continue
		}
		if n, dup := seen[label]; dup {
			base := label
			for ; dup; n++ {
				label = base + "_" + strconv.Itoa(n)
				_, dup = seen[label]
			}
			seen[base] = n
		}
		seen[label] = 1
		labels[i] = label
		keep[i] = true
	}
	return labels, keep
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
