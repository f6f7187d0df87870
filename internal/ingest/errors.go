package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCategoryNotFound indicates the requested list has no sheet.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrTableConstruction indicates the sheet could not be assembled into a table.
	ErrTableConstruction = errors.New("could not build table")
)

// CategoryNotFoundError names the missing category and what was available.
type CategoryNotFoundError struct {
	Category  string
	Available []string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %q not found (available: %s)", e.Category, strings.Join(e.Available, ", "))
}

// Is matches ErrCategoryNotFound.
func (e *CategoryNotFoundError) Is(target error) bool { return target == ErrCategoryNotFound }
