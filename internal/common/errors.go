// Package common provides shared utilities and types used across the
// reconciliation pipeline.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Ingestion errors.
	ErrNoRecords      = errors.New("no records to process")
	ErrUnknownFolder  = errors.New("unrecognized folder naming convention")
	ErrMalformedInput = errors.New("malformed input file")

	// Resolution errors.
	ErrNoLookupTables = errors.New("lookup tables not loaded")

	// Configuration errors. These are the only errors fatal to a run.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
