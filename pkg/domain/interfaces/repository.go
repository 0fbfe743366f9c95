package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Case() CaseRepository
	Delegation() DelegationRepository
	Ledger() LedgerRepository

	Close() error
}

// ListCasesFilter narrows a case listing. Zero values mean "any".
type ListCasesFilter struct {
	Assignee types.UserID
	Status   types.CaseStatus
}

// CaseRepository defines the interface for DocumentCase data access
type CaseRepository interface {
	// Create persists a new case. The case ID must already be set.
	Create(ctx context.Context, c *model.DocumentCase) (*model.DocumentCase, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, id types.CaseID) (*model.DocumentCase, error)

	// List retrieves cases matching the filter
	List(ctx context.Context, filter ListCasesFilter) ([]*model.DocumentCase, error)

	// Update persists a mutated case using the Revision field as a
	// compare-and-swap token. A stale revision fails with
	// ErrRevisionMismatch and leaves the stored case untouched.
	// Transitions newly appended to History persist with the case in the
	// same commit, so a failed update never leaves a partial ledger entry.
	Update(ctx context.Context, c *model.DocumentCase) (*model.DocumentCase, error)

	// Delete removes a case. Only the use case layer may call this, and
	// only for drafts.
	Delete(ctx context.Context, id types.CaseID) error
}

// DelegationRepository defines the interface for Delegation data access
type DelegationRepository interface {
	Create(ctx context.Context, d *model.Delegation) (*model.Delegation, error)
	Get(ctx context.Context, id types.DelegationID) (*model.Delegation, error)
	List(ctx context.Context) ([]*model.Delegation, error)
	Update(ctx context.Context, d *model.Delegation) (*model.Delegation, error)

	// FindActiveForUser returns delegations where the given user is the
	// delegating side, the lock flag is on, and the instant falls inside
	// the validity window. Ambiguity handling is the resolver's job, not
	// the store's.
	FindActiveForUser(ctx context.Context, user types.UserID, at time.Time) ([]*model.Delegation, error)
}

// LedgerRepository is the append-only audit ledger. It has no update or
// delete operations; corrections are new entries.
type LedgerRepository interface {
	Append(ctx context.Context, tx *model.Transition) error
	ListFor(ctx context.Context, caseID types.CaseID) ([]*model.Transition, error)
}
