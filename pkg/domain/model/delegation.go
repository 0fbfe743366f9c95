package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// Delegation is a time-bounded grant letting FromUser's authority be
// exercised by ToUser over [StartDate, EndDate]. Active is a lock flag
// independent of the date range.
type Delegation struct {
	ID       types.DelegationID
	FromUser types.UserID
	ToUser   types.UserID

	StartDate time.Time
	EndDate   time.Time
	Active    bool

	// Supporting documents, not authoritative for the grant itself
	AttachmentRefs []types.AttachmentRef

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the structural invariants of the delegation
func (d *Delegation) Validate() error {
	if err := d.FromUser.Validate(); err != nil {
		return goerr.Wrap(err, "delegating user is required")
	}
	if err := d.ToUser.Validate(); err != nil {
		return goerr.Wrap(err, "delegate user is required")
	}
	if d.FromUser == d.ToUser {
		return goerr.New("cannot delegate to self", goerr.V("user_id", d.FromUser))
	}
	if d.EndDate.Before(d.StartDate) {
		return goerr.New("delegation end date precedes start date",
			goerr.V("start_date", d.StartDate),
			goerr.V("end_date", d.EndDate))
	}
	return nil
}

// InForce reports whether the delegation substitutes the actor at the
// given instant: the lock flag is on and now falls inside the window.
func (d *Delegation) InForce(now time.Time) bool {
	if !d.Active {
		return false
	}
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// EditMode returns the field-level permission for editing the record.
// A delegation already in force keeps its starting terms frozen so that
// who held authority during elapsed time cannot be rewritten.
func (d *Delegation) EditMode(now time.Time) types.EditMode {
	switch {
	case now.Before(d.StartDate):
		return types.EditModeFull
	case now.After(d.EndDate):
		return types.EditModeReadOnly
	default:
		return types.EditModeEndDateAndAttachments
	}
}

// Clone creates a deep copy of the delegation
func (d *Delegation) Clone() *Delegation {
	if d == nil {
		return nil
	}

	copied := *d
	copied.AttachmentRefs = make([]types.AttachmentRef, len(d.AttachmentRefs))
	copy(copied.AttachmentRefs, d.AttachmentRefs)
	return &copied
}
