// Package errors provides the error taxonomy for the ledgerlink system.
// Structural problems with a ledger document are fatal and carry enough
// context (ledger name, row path) to locate the offending row. Rows that are
// merely missing identity fields are skipped by the builder and never reach
// this package.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the ledgerlink system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrStructural indicates a ledger document broke its top-level contract
	ErrStructural = errors.New("structural ledger error")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// LedgerError is a structural error in one of the three input ledgers.
// Row is a path into the document such as "sites.3" and may be empty when
// the problem is with the document as a whole.
type LedgerError struct {
	Ledger  string // "site", "money" or "place"
	Row     string
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *LedgerError) Error() string {
	switch {
	case e.Row != "" && e.Field != "":
		return fmt.Sprintf("%s ledger row %s field %s: %s", e.Ledger, e.Row, e.Field, e.Message)
	case e.Row != "":
		return fmt.Sprintf("%s ledger row %s: %s", e.Ledger, e.Row, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s ledger field %s: %s", e.Ledger, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s ledger: %s", e.Ledger, e.Message)
	}
}

// Unwrap implements errors.Unwrap
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *LedgerError) Is(target error) bool {
	return target == ErrStructural
}

// NewLedgerError creates a new LedgerError
func NewLedgerError(ledger, row, message string, err error) *LedgerError {
	return &LedgerError{
		Ledger:  ledger,
		Row:     row,
		Message: message,
		Err:     err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support. A ledger that cannot be parsed at all
// is a structural failure.
func (e *ParseError) Is(target error) bool {
	return target == ErrStructural
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStructural checks if an error is a fatal ledger contract break
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapLedger wraps an error as a LedgerError for the whole document
func WrapLedger(ledger string, err error) error {
	if err == nil {
		return nil
	}
	return NewLedgerError(ledger, "", err.Error(), err)
}
