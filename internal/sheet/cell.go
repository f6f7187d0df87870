package sheet

import (
	"strconv"
	"time"
)

// CellKind enumerates the decoded cell variants.
type CellKind int

const (
	// CellEmpty is a blank or absent cell.
	CellEmpty CellKind = iota
	// CellNumber is a numeric cell.
	CellNumber
	// CellText is a string cell (shared, inline or formula string result).
	CellText
	// CellTimestamp is a date/time cell stored in ISO form.
	CellTimestamp
	// CellBool is a boolean cell.
	CellBool
	// CellError is a formula error cell such as #DIV/0!.
	CellError
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	case CellTimestamp:
		return "timestamp"
	case CellBool:
		return "bool"
	case CellError:
		return "error"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is one raw spreadsheet cell as produced by the decoder.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Time   time.Time
}

// Empty returns a blank cell.
func Empty() Cell { return Cell{Kind: CellEmpty} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// Text returns a string cell.
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Timestamp returns a date/time cell.
func Timestamp(t time.Time) Cell { return Cell{Kind: CellTimestamp, Time: t} }

func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellTimestamp:
		return c.Time.Format(time.RFC3339)
	case CellEmpty:
		return ""
	default:
		return c.Text
	}
}

// Source exposes a set of named sheets of decoded cells.
type Source interface {
	SheetNames() []string
	Rows(sheet string) ([][]Cell, error)
}
