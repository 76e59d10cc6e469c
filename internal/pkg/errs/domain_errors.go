package errs

import "errors"

// Marketplace error taxonomy. Every command marks its failures with exactly
// one of these so handlers can map to HTTP statuses with errors.Is alone.
var (
	// ErrValidation: bad input shape or values (empty line items, rating out of range)
	ErrValidation = errors.New("validation error")

	// ErrInvalidState: operation not legal from the entity's current status
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict: would violate an invariant against other live data
	ErrConflict = errors.New("conflict")

	// ErrExpired: operating on a time-lapsed entity
	ErrExpired = errors.New("expired")

	// ErrDuplicateResponse: second quote bid from the same provider
	ErrDuplicateResponse = errors.New("duplicate response")

	// ErrNotFound: referenced entity absent
	ErrNotFound = errors.New("not found")

	// ErrForbidden: actor's role or identity does not permit the operation
	ErrForbidden = errors.New("forbidden")

	// ErrDatabaseOperationFailed: infrastructure failure, not a business rule
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
