package usecase

import "errors"

// Sentinel errors for the use case layer. Callers branch on these to
// render field-specific messages; none of them are retried automatically.
var (
	// Not found errors
	ErrCaseNotFound       = errors.New("case not found")
	ErrDelegationNotFound = errors.New("delegation not found")

	// Authorization errors
	ErrNotAuthorized = errors.New("acting user is not authorized for this operation")

	// State machine errors
	ErrIllegalTransition = errors.New("transition is not legal for the current state")
	ErrRetakeNotAllowed  = errors.New("recall only allowed before the receiver has acted")

	// Delegation errors
	ErrAmbiguousDelegation = errors.New("multiple overlapping active delegations")
	ErrDelegationReadOnly  = errors.New("delegation window has elapsed, record is read-only")
	ErrDelegationFrozen    = errors.New("delegation is in force, only end date and attachments may change")

	// Concurrency errors. Safe to retry once with fresh state; the
	// engine never retries on its own.
	ErrConcurrentModification = errors.New("case was modified concurrently")
)

// Context keys for error values
const (
	CaseIDKey       = "case_id"
	DelegationIDKey = "delegation_id"
	UserIDKey       = "user_id"
	NodeIDKey       = "node_id"
)
