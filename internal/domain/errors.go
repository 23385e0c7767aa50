package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a compound-key lookup or mutation matches no
// record. A record that exists but belongs to a different user is reported
// the same way, so callers cannot probe for other users' invoices.
var ErrNotFound = errors.New("invoice not found")

// ValidationError reports malformed or missing input fields. It is raised
// before any store access.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid input: %s", strings.Join(names, ", "))
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// StoreError reports an infrastructural failure in the record or attachment
// store. It wraps the underlying cause and is propagated, not swallowed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
