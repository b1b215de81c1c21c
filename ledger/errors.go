package ledger

import "errors"

var (
	// ErrNotFound is returned when the requested entry is not in the ledger
	ErrNotFound = errors.New("ledger: not found")
	// ErrCapacityExceeded is returned when the outgoing store is full
	ErrCapacityExceeded = errors.New("ledger: outgoing message store is full")
	// ErrSequenceExhausted is returned when the outgoing sequence index can not grow anymore
	ErrSequenceExhausted = errors.New("ledger: outgoing sequence index exhausted")
	// ErrInvalidAmount is returned when registering a non positive amount
	ErrInvalidAmount = errors.New("ledger: amount must be positive")
	// ErrInvalidEntry is returned when restoring an entry that breaks a ledger invariant
	ErrInvalidEntry = errors.New("ledger: invalid entry")
)
