// Package storage provides the SQLite persistence layer for transaction
// records and the committee reference tables.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openelexva/reconcile/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidMapping = errors.New("invalid committee mapping")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords ensures the record slice is usable for a save.
func validateRecords(records []model.TransactionRecord) error {
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilParameter)
	}
	return nil
}

// validateIdentity ensures a committee mapping carries its key fields.
func validateIdentity(identity model.CommitteeIdentity) error {
	if strings.TrimSpace(identity.CommitteeCode) == "" {
		return fmt.Errorf("%w: missing committee code", ErrInvalidMapping)
	}
	if strings.TrimSpace(identity.CommitteeNameNormalized) == "" {
		return fmt.Errorf("%w: missing committee name", ErrInvalidMapping)
	}
	return nil
}
