// Package table holds the typed, row-aligned tabular dataset shared by the
// ingestion, screening and reporting stages. Tables are immutable once built:
// every operation returns a new Table.
package table

import (
	"fmt"
	"sort"
)

// Table is an ordered set of uniquely named columns of equal length.
type Table struct {
	cols   []*Column
	index  map[string]int
	height int
}

// New assembles a table, rejecting duplicate names and unequal lengths.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrShape, c.name)
		}
		if i == 0 {
			t.height = c.Len()
		} else if c.Len() != t.height {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrShape, c.name, c.Len(), t.height)
		}
		t.index[c.name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// MustNew is New for statically known inputs; it panics on error.
func MustNew(cols ...*Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// Height returns the number of rows.
func (t *Table) Height() int { return t.height }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.cols) }

// Names lists column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	return t.cols[i], nil
}

// Columns looks several columns up, failing on the first absent one.
func (t *Table) Columns(names ...string) ([]*Column, error) {
	out := make([]*Column, len(names))
	for i, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Filter keeps the rows where mask is set.
func (t *Table) Filter(mask Mask) (*Table, error) {
	if len(mask) != t.height {
		return nil, fmt.Errorf("%w: mask has %d rows, table has %d", ErrShape, len(mask), t.height)
	}
	idx := make([]int, 0, mask.Count())
	for i, keep := range mask {
		if keep {
			idx = append(idx, i)
		}
	}
	return t.take(idx), nil
}

// SortDesc orders rows by a numeric column, largest first. The sort is
// stable and missing values go last.
func (t *Table) SortDesc(name string) (*Table, error) {
	key, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if err := key.requireNumeric(); err != nil {
		return nil, err
	}

	idx := make([]int, t.height)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, okA := key.Float(idx[a])
		vb, okB := key.Float(idx[b])
		if !okA || !okB {
			return okA && !okB
		}
		return va > vb
	})
	return t.take(idx), nil
}

// Select projects the named columns in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols, err := t.Columns(names...)
	if err != nil {
		return nil, err
	}
	out := make([]*Column, len(cols))
	for i, c := range cols {
		out[i] = c.take(nil, true)
	}
	return New(out...)
}

// WithColumn appends c, or replaces the column of the same name.
func (t *Table) WithColumn(c *Column) (*Table, error) {
	cols := make([]*Column, 0, len(t.cols)+1)
	replaced := false
	for _, existing := range t.cols {
		if existing.name == c.name {
			cols = append(cols, c)
			replaced = true
			continue
		}
		cols = append(cols, existing)
	}
	if !replaced {
		cols = append(cols, c)
	}
	if len(t.cols) == 0 {
		return New(cols...)
	}
	if c.Len() != t.height {
		return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrShape, c.name, c.Len(), t.height)
	}
	return New(cols...)
}

// Equal reports whether both tables hold the same columns in the same order.
func (t *Table) Equal(o *Table) bool {
	if t.height != o.height || len(t.cols) != len(o.cols) {
		return false
	}
	for i := range t.cols {
		if !t.cols[i].Equal(o.cols[i]) {
			return false
		}
	}
	return true
}

func (t *Table) take(idx []int) *Table {
	out := &Table{
		cols:   make([]*Column, len(t.cols)),
		index:  make(map[string]int, len(t.cols)),
		height: len(idx),
	}
	for i, c := range t.cols {
		out.cols[i] = c.take(idx, false)
		out.index[c.name] = i
	}
	return out
}
