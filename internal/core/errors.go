package core

import "errors"

// Error kinds surfaced by the engine. Ownership failures are reported as
// ErrNotFound so the existence of other users' records never leaks.
var (
	ErrNotFound = errors.New("not found")

	ErrMissingOwner       = errors.New("missing owning user")
	ErrMissingAccount     = errors.New("missing account reference")
	ErrMissingExternalID  = errors.New("missing external id")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyCategory      = errors.New("empty category")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidLimit       = errors.New("budget limit must be positive")
	ErrInvalidPeriod      = errors.New("unknown period kind")
	ErrInvalidThreshold   = errors.New("alert threshold must be between 0 and 100")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidAccountKind = errors.New("unknown account kind")

	ErrDuplicateBudget = errors.New("active budget already exists for this category and period")
	ErrImmutableRecord = errors.New("synced transactions cannot be deleted")

	// ErrUpstream marks retryable collaborator failures (provider or
	// ledger store).
	ErrUpstream = errors.New("upstream failure")
)
