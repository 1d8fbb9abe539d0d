package dns

import "fmt"

// RowError describes a CSV row that failed validation.
type RowError struct {
	Line   int
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("row %d: field %q: %s", e.Line, e.Field, e.Reason)
}

// NewRowError creates a new RowError.
func NewRowError(line int, field, reason string) *RowError {
	return &RowError{Line: line, Field: field, Reason: reason}
}
