package service

import (
	"errors"
	"fmt"

	"github.com/sidereusnuntius/gopress/internal/db"
)

// Error kinds shared by every extension point. Errors are wrapped with fmt.Errorf("%w: ...") and classified with
// Kind.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrStorageFailure   = errors.New("storage failure")
)

var kinds = []error{ErrNotAuthenticated, ErrPermissionDenied, ErrNotFound, ErrValidationFailed, ErrStorageFailure}

// Kind returns the error kind err wraps, or nil if it wraps none.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// FromDB classifies a store error: db.ErrNotFound becomes ErrNotFound and any other failure ErrStorageFailure.
func FromDB(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, db.ErrConflict):
		return fmt.Errorf("%w: %s conflicts with existing data", ErrValidationFailed, what)
	default:
		return fmt.Errorf("%w: %s: %w", ErrStorageFailure, what, err)
	}
}
