package table

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the value type held by a column.
type Kind int

const (
	// Numeric columns hold float64 values.
	Numeric Kind = iota
	// Text columns hold string values.
	Text
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

// Column is a named sequence of optional values of a single kind.
type Column struct {
	name  string
	kind  Kind
	nums  []float64
	texts []string
	valid []bool
}

// NewColumn creates an empty column ready for appending.
func NewColumn(name string, kind Kind) *Column {
	return &Column{name: name, kind: kind}
}

// Floats builds a numeric column without missing values.
func Floats(name string, values ...float64) *Column {
	c := NewColumn(name, Numeric)
	for _, v := range values {
		c.AppendFloat(v)
	}
	return c
}

// Strings builds a text column without missing values.
func Strings(name string, values ...string) *Column {
	c := NewColumn(name, Text)
	for _, v := range values {
		c.AppendText(v)
	}
	return c
}

// NullableFloats builds a numeric column where nil entries are missing.
func NullableFloats(name string, values ...*float64) *Column {
	c := NewColumn(name, Numeric)
	for _, v := range values {
		if v == nil {
			c.AppendNull()
			continue
		}
		c.AppendFloat(*v)
	}
	return c
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column value kind.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of slots, missing ones included.
func (c *Column) Len() int { return len(c.valid) }

// AppendFloat appends a numeric value. It panics on text columns.
func (c *Column) AppendFloat(v float64) {
	c.mustBe(Numeric)
	c.nums = append(c.nums, v)
	c.valid = append(c.valid, true)
}

// AppendText appends a string value. It panics on numeric columns.
func (c *Column) AppendText(s string) {
	c.mustBe(Text)
	c.texts = append(c.texts, s)
	c.valid = append(c.valid, true)
}

// AppendNull appends a missing slot.
func (c *Column) AppendNull() {
	if c.kind == Numeric {
		c.nums = append(c.nums, 0)
	} else {
		c.texts = append(c.texts, "")
	}
	c.valid = append(c.valid, false)
}

// IsNull reports whether slot i is missing.
func (c *Column) IsNull(i int) bool { return !c.valid[i] }

// Float returns the numeric value at i and whether it is present.
func (c *Column) Float(i int) (float64, bool) {
	if c.kind != Numeric || !c.valid[i] {
		return 0, false
	}
	return c.nums[i], true
}

// Text returns the text value at i and whether it is present.
func (c *Column) Text(i int) (string, bool) {
	if c.kind != Text || !c.valid[i] {
		return "", false
	}
	return c.texts[i], true
}

// Format renders slot i for display; missing slots render as "null".
func (c *Column) Format(i int) string {
	if !c.valid[i] {
		return "null"
	}
	if c.kind == Text {
		return c.texts[i]
	}
	return strconv.FormatFloat(c.nums[i], 'f', -1, 64)
}

// Rename returns a copy of the column under a new name.
func (c *Column) Rename(name string) *Column {
	out := c.take(nil, true)
	out.name = name
	return out
}

// Equal reports whether both columns have the same name, kind and slots.
func (c *Column) Equal(o *Column) bool {
	if c.name != o.name || c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	for i := range c.valid {
		if c.valid[i] != o.valid[i] {
			return false
		}
		if !c.valid[i] {
			continue
		}
		if c.kind == Numeric && c.nums[i] != o.nums[i] && !(math.IsNaN(c.nums[i]) && math.IsNaN(o.nums[i])) {
			return false
		}
		if c.kind == Text && c.texts[i] != o.texts[i] {
			return false
		}
	}
	return true
}

// take copies the slots at idx, or every slot when all is set.
func (c *Column) take(idx []int, all bool) *Column {
	out := NewColumn(c.name, c.kind)
	if all {
		out.valid = append([]bool(nil), c.valid...)
		out.nums = append([]float64(nil), c.nums...)
		out.texts = append([]string(nil), c.texts...)
		return out
	}

	out.valid = make([]bool, 0, len(idx))
	for _, i := range idx {
		out.valid = append(out.valid, c.valid[i])
		if c.kind == Numeric {
			out.nums = append(out.nums, c.nums[i])
		} else {
			out.texts = append(out.texts, c.texts[i])
		}
	}
	return out
}

func (c *Column) mustBe(kind Kind) {
	if c.kind != kind {
		panic(fmt.Sprintf("table: append %s value to %s column %q", kind, c.kind, c.name))
	}
}

func (c *Column) requireNumeric() error {
	if c.kind != Numeric {
		return &ColumnTypeError{Column: c.name, Want: Numeric, Got: c.kind}
	}
	return nil
}

// Div divides a by b element-wise. Missing operands produce a missing slot; a
// zero divisor follows IEEE rules (±Inf, or NaN for 0/0).
func Div(name string, a, b *Column) (*Column, error) {
	if err := a.requireNumeric(); err != nil {
		return nil, err
	}
	if err := b.requireNumeric(); err != nil {
		return nil, err
	}
	if a.Len() != b.Len() {
		return nil, fmt.Errorf("%w: %q has %d rows, %q has %d", ErrShape, a.name, a.Len(), b.name, b.Len())
	}

	out := NewColumn(name, Numeric)
	for i := range a.valid {
		x, okA := a.Float(i)
		y, okB := b.Float(i)
		if !okA || !okB {
			out.AppendNull()
			continue
		}
		out.AppendFloat(x / y)
	}
	return out, nil
}

// Scale multiplies every present value by factor.
func Scale(name string, c *Column, factor float64) (*Column, error) {
	if err := c.requireNumeric(); err != nil {
		return nil, err
	}
	out := NewColumn(name, Numeric)
	for i := range c.valid {
		v, ok := c.Float(i)
		if !ok {
			out.AppendNull()
			continue
		}
		out.AppendFloat(v * factor)
	}
	return out, nil
}

// Mask is a per-row predicate result.
type Mask []bool

// And combines two masks of equal length.
func (m Mask) And(o Mask) Mask {
	out := make(Mask, len(m))
	for i := range m {
		out[i] = m[i] && i < len(o) && o[i]
	}
	return out
}

// Count returns the number of set rows.
func (m Mask) Count() int {
	n := 0
	for _, v := range m {
		if v {
			n++
		}
	}
	return n
}

// compare evaluates pred against every present, non-NaN value; missing
// values never match.
func (c *Column) compare(pred func(float64) bool) (Mask, error) {
	if err := c.requireNumeric(); err != nil {
		return nil, err
	}
	mask := make(Mask, c.Len())
	for i := range c.valid {
		v, ok := c.Float(i)
		mask[i] = ok && !math.IsNaN(v) && pred(v)
	}
	return mask, nil
}

// Greater matches values strictly above limit.
func (c *Column) Greater(limit float64) (Mask, error) {
	return c.compare(func(v float64) bool { return v > limit })
}

// GreaterEqual matches values at or above limit.
func (c *Column) GreaterEqual(limit float64) (Mask, error) {
	return c.compare(func(v float64) bool { return v >= limit })
}

// Less matches values strictly below limit.
func (c *Column) Less(limit float64) (Mask, error) {
	return c.compare(func(v float64) bool { return v < limit })
}

// LessEqual matches values at or below limit.
func (c *Column) LessEqual(limit float64) (Mask, error) {
	return c.compare(func(v float64) bool { return v <= limit })
}

// EqualText matches text slots equal to s.
func (c *Column) EqualText(s string) (Mask, error) {
	if c.kind != Text {
		return nil, &ColumnTypeError{Column: c.name, Want: Text, Got: c.kind}
	}
	mask := make(Mask, c.Len())
	for i := range c.valid {
		v, ok := c.Text(i)
		mask[i] = ok && v == s
	}
	return mask, nil
}
