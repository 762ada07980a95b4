package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)
	ErrSessionNotFound  = fmt.Errorf("%w: session", ErrNotFound)
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot", ErrNotFound)

	// Schema errors
	ErrEmptyDataset    = errors.New("dataset has no rows or no columns")
	ErrRowMisaligned   = errors.New("column length does not match dataset row count")
	ErrDuplicateColumn = errors.New("duplicate column name")

	// Representation-safety errors
	ErrValueOutOfRange = errors.New("value out of range for target type")
	ErrPrecisionLoss   = errors.New("conversion would lose precision")
	ErrMissingLost     = errors.New("conversion would misrepresent missing entries")
)

// NewNotFoundError creates a not-found error with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// NewValidationError creates a validation error with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}
