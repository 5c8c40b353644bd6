package kitty

import (
	"errors"
	"fmt"
)

// Configuration errors. They abort a run before any processing.
var (
	ErrUnresolvedField = errors.New("required field cannot be resolved")
	ErrInvalidCurrency = errors.New("unknown currency code")
)

// Row-level errors. The row is skipped and the batch goes on.
var (
	ErrMissingItem    = errors.New("missing item")
	ErrMissingPayer   = errors.New("missing payer")
	ErrInvalidAmount  = errors.New("amount is not a positive number")
	ErrNoParticipants = errors.New("no participant to split between")
	ErrInvalidName    = errors.New("name contains a comma")
)

// FieldError reports a configuration problem: a required field of an input
// source that could not be resolved, or an invalid setting.
type FieldError struct {
	Source string // the sheet, file or table being read
	Field  string // the canonical field name
	Value  string // the offending value, if any
	err    error
}

// NewFieldError returns a FieldError for a field that cannot be resolved in source.
func NewFieldError(source, field string) *FieldError {
	return &FieldError{Source: source, Field: field, err: ErrUnresolvedField}
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: field %q: %v: %q", e.Source, e.Field, e.err, e.Value)
	}
	return fmt.Sprintf("%s: field %q: %v", e.Source, e.Field, e.err)
}

func (e *FieldError) Unwrap() error { return e.err }

// RowError reports an expense row that was skipped.
type RowError struct {
	Row  int    // 1-based source row, 0 when unknown
	Item string // the item label, possibly empty
	Err  error
}

func (e *RowError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("row %d (%s): %v", e.Row, e.Item, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
