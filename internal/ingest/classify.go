package ingest

import (
	"strconv"
	"strings"
	"time"

	"dividend-screener/internal/sheet"
)

// BlendedLabel names columns whose header cell is blank. The source lists
// leave the header of a merged "blended" column empty.
const BlendedLabel = "Blended"

// Kind is the semantic kind of a classified cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumeric
	KindText
	KindTimestamp
	// KindIgnored covers variants that contribute nothing to a column.
	KindIgnored
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	case KindTimestamp:
		return "timestamp"
	default:
		return "ignored"
	}
}

// Classified is a raw cell reduced to the value the column builder needs.
type Classified struct {
	Kind   Kind
	Number float64
	Text   string
	Time   time.Time
}

// Numeric reports whether the cell feeds a numeric column.
func (c Classified) Numeric() bool {
	return c.Kind == KindNumeric || c.Kind == KindTimestamp
}

// Value returns the numeric value of a numeric or timestamp cell.
// Timestamps are expressed as Excel serial day numbers.
func (c Classified) Value() float64 {
	if c.Kind == KindTimestamp {
		return excelSerial(c.Time)
	}
	return c.Number
}

// Classify maps one raw cell to its semantic kind. Whitespace-only text is
// treated as empty.
func Classify(c sheet.Cell) Classified {
	switch c.Kind {
	case sheet.CellEmpty:
		return Classified{Kind: KindEmpty}
	case sheet.CellNumber:
		return Classified{Kind: KindNumeric, Number: c.Number}
	case sheet.CellText:
		if strings.TrimSpace(c.Text) == "" {
			return Classified{Kind: KindEmpty}
		}
		return Classified{Kind: KindText, Text: c.Text}
	case sheet.CellTimestamp:
		return Classified{Kind: KindTimestamp, Time: c.Time}
	default:
		return Classified{Kind: KindIgnored}
	}
}

// HeaderLabel returns the column name for a header-row cell. The second
// result is false when the cell cannot name a column.
func HeaderLabel(c sheet.Cell) (string, bool) {
	cl := Classify(c)
	switch cl.Kind {
	case KindText:
		return strings.TrimSpace(cl.Text), true
	case KindEmpty:
		return BlendedLabel, true
	case KindNumeric:
		return strconv.FormatFloat(cl.Number, 'f', -1, 64), true
	case KindTimestamp:
		return cl.Time.Format("2006-01-02"), true
	default:
		return "", false
	}
}

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

func excelSerial(t time.Time) float64 {
	return t.Sub(excelEpoch).Hours() / 24
}
