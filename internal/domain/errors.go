package domain

import "errors"

var (
	// Validation errors
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrFutureEventDate      = errors.New("event date cannot be in the future")
	ErrInvalidEventKind     = errors.New("unknown event kind")
	ErrCorrectionNotAllowed = errors.New("corrections cannot be appended directly; use the correction flow")
	ErrReasonRequired       = errors.New("correction reason is required")
	ErrDetailNotAllowed     = errors.New("detail field is not valid for this event kind")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")

	// Not-found errors
	ErrEventNotFound = errors.New("ledger event not found")
	ErrTypeNotFound  = errors.New("ammunition type not found")
	ErrTypeInactive  = errors.New("ammunition type is inactive")

	// ErrImmutableRecord signals an attempt to update or delete a persisted
	// ledger event. The storage layer enforces this with a trigger; hitting
	// it means a contract violation, not a user error.
	ErrImmutableRecord = errors.New("ledger events cannot be updated or deleted")

	// ErrAppendContention is returned when the per-owner append lock could
	// not be acquired before the lock timeout.
	ErrAppendContention = errors.New("another append for this owner is in progress")
)
