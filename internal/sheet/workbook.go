package sheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Workbook decodes an XLSX file through excelize.
type Workbook struct {
	file *excelize.File
}

// Open loads the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

// NewWorkbook wraps an already opened excelize file.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{file: f}
}

// Close releases the underlying file handles.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames lists the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows decodes every row of sheet in row-major order. Rows are not padded;
// trailing blank cells are omitted the way excelize reports them.
func (w *Workbook) Rows(sheet string) ([][]Cell, error) {
	rows, err := w.file.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var result [][]Cell
	rowNum := 0
	for rows.Next() {
		rowNum++
		raw, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("read sheet %q row %d: %w", sheet, rowNum, err)
		}

		cells := make([]Cell, len(raw))
		for i, value := range raw {
			cells[i], err = w.decode(sheet, i+1, rowNum, value)
			if err != nil {
				_ = rows.Close()
				return nil, err
			}
		}
		result = append(result, cells)
	}

	if err := rows.Error(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate sheet %q: %w", sheet, err)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return result, nil
}

func (w *Workbook) decode(sheet string, col, row int, value string) (Cell, error) {
	if value == "" {
		return Empty(), nil
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}, err
	}
	typ, err := w.file.GetCellType(sheet, name)
	if err != nil {
		return Cell{}, fmt.Errorf("cell type %s!%s: %w", sheet, name, err)
	}

	return decodeValue(typ, value), nil
}

func decodeValue(typ excelize.CellType, value string) Cell {
	switch typ {
	case excelize.CellTypeBool:
		return Cell{Kind: CellBool, Text: value}
	case excelize.CellTypeError:
		return Cell{Kind: CellError, Text: value}
	case excelize.CellTypeDate:
		if ts, err := parseTimestamp(value); err == nil {
			return Timestamp(ts)
		}
		return Text(value)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return Text(value)
	default:
		// Numbers are usually written without an explicit type attribute.
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return Number(f)
		}
		return Text(value)
	}
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.New("unrecognised timestamp " + strconv.Quote(value))
}

var _ Source = (*Workbook)(nil)
