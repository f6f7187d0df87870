package ingest

import (
	"strconv"

	"github.com/rs/zerolog"

	"dividend-screener/internal/table"
)

// ColumnBuilder accumulates classified cells per column index. The first
// non-empty cell at an index fixes the column kind; empty and mismatched
// cells become missing slots so every column keeps one slot per row.
type ColumnBuilder struct {
	names  []string
	slots  map[int]*slot
	logger zerolog.Logger
}

type slot struct {
	column *table.Column
	// leading empties seen before the kind was known
	pending int
}

// NewColumnBuilder creates a builder naming column i after names[i].
func NewColumnBuilder(names []string, logger zerolog.Logger) *ColumnBuilder {
	return &ColumnBuilder{
		names:  names,
		slots:  make(map[int]*slot),
		logger: logger,
	}
}

// Add records the cell at (row, index). Cells must arrive in row-major order.
func (b *ColumnBuilder) Add(row, index int, cell Classified) {
	s, ok := b.slots[index]
	if !ok {
		s = &slot{}
		b.slots[index] = s
	}

	switch cell.Kind {
	case KindIgnored:
		b.logger.Debug().Int("row", row).Str("column", b.name(index)).Msg("unsupported cell value, recording as missing")
		b.appendNull(s)
	case KindEmpty:
		b.logger.Warn().Int("row", row).Str("column", b.name(index)).Msg("missing data")
		b.appendNull(s)
	default:
		if s.column == nil {
			b.fix(s, index, cell)
		}
		b.appendValue(s, row, cell)
	}
}

// Finish returns the built columns keyed by index. Indices that never saw a
// value become all-missing text columns.
func (b *ColumnBuilder) Finish() map[int]*table.Column {
	out := make(map[int]*table.Column, len(b.slots))
	for index, s := range b.slots {
		if s.column == nil {
			s.column = table.NewColumn(b.name(index), table.Text)
			b.flushPending(s)
		}
		out[index] = s.column
	}
	return out
}

func (b *ColumnBuilder) fix(s *slot, index int, cell Classified) {
	kind := table.Text
	if cell.Numeric() {
		kind = table.Numeric
	}
	s.column = table.NewColumn(b.name(index), kind)
	b.flushPending(s)
}

func (b *ColumnBuilder) flushPending(s *slot) {
	for ; s.pending > 0; s.pending-- {
		s.column.AppendNull()
	}
}

func (b *ColumnBuilder) appendNull(s *slot) {
	if s.column == nil {
		s.pending++
		return
	}
	s.column.AppendNull()
}

func (b *ColumnBuilder) appendValue(s *slot, row int, cell Classified) {
	c := s.column
	switch {
	case c.Kind() == table.Numeric && cell.Numeric():
		c.AppendFloat(cell.Value())
	case c.Kind() == table.Text && cell.Kind == KindText:
		c.AppendText(cell.Text)
	default:
		b.logger.Warn().
			Int("row", row).
			Str("column", c.Name()).
			Str("column_kind", c.Kind().String()).
			Str("cell_kind", cell.Kind.String()).
			Msg("cell kind does not match column, recording as missing")
		c.AppendNull()
	}
}

func (b *ColumnBuilder) name(index int) string {
	if index < len(b.names) && b.names[index] != "" {
		return b.names[index]
	}
	return "column_" + strconv.Itoa(index)
}
