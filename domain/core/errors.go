package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lattice errors
	ErrInvalidLatticeSize = errors.New("lattice size must be a positive integer")
	ErrInvalidSpin        = errors.New("spin must be +1 or -1")
	ErrIndexOutOfRange    = errors.New("site index out of range")
	ErrNilRandomSource    = errors.New("random source is required")

	// Parameter errors
	ErrInvalidParameters = errors.New("invalid simulation parameters")
	ErrUnknownInitMode   = fmt.Errorf("%w: unknown init mode", ErrInvalidParameters)
	ErrUnknownOutputMode = fmt.Errorf("%w: unknown output mode", ErrInvalidParameters)

	// Ledger errors
	ErrRunNotFound = errors.New("run not found")
)

// NewIndexError reports a site index outside [0, size).
func NewIndexError(index, size int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, size)
}

// NewValidationError wraps ErrInvalidParameters with the offending field.
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameters, field, reason)
}

// IsValidationError reports whether err stems from invalid parameters.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}
