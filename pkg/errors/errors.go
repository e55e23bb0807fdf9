// Package errors provides common domain error types for renewaldesk.
//
// This package defines sentinel errors for conditions like "not found" or
// "validation error" that are shared across the store backends and the API
// server. Using typed errors enables consistent handling with errors.Is()
// checks.
//
// Usage:
//
//	import rderrors "github.com/SafeGiantJacket/renewaldesk/pkg/errors"
//
//	// Return a domain error
//	return nil, rderrors.ErrNotFound
//
//	// Check for domain errors
//	if rderrors.IsNotFound(err) {
//	    // handle not found case
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input or validation failure.
	ErrValidation = errors.New("validation error")

	// ErrAlreadyExists indicates the resource already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidState indicates the operation is not valid for the current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrStoreUnavailable indicates the configured store backend could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAlreadyExists reports whether any error in err's chain is ErrAlreadyExists.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidState reports whether any error in err's chain is ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsStoreUnavailable reports whether any error in err's chain is ErrStoreUnavailable.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
