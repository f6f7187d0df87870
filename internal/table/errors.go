package table

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn indicates a referenced column is absent from the table.
	ErrMissingColumn = errors.New("missing column")
	// ErrColumnType indicates an operation was applied to a column of the wrong kind.
	ErrColumnType = errors.New("column type mismatch")
	// ErrShape indicates columns that cannot form a single table.
	ErrShape = errors.New("table shape mismatch")
)

// MissingColumnError names the absent column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist", e.Column)
}

// Is matches ErrMissingColumn.
func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

// ColumnTypeError names the column and the kinds involved.
type ColumnTypeError struct {
	Column string
	Want   Kind
	Got    Kind
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("column %q is %s, expected %s", e.Column, e.Got, e.Want)
}

// Is matches ErrColumnType.
func (e *ColumnTypeError) Is(target error) bool { return target == ErrColumnType }
