package model

import (
	"time"

	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// Transition is a single routing step in the audit ledger. Immutable once
// appended; corrections are modeled as new entries.
type Transition struct {
	ID     types.TransitionID
	CaseID types.CaseID

	FromNode   types.NodeID
	ToNode     types.NodeID
	FromStatus types.CaseStatus
	ToStatus   types.CaseStatus

	// ActingUser is the resolved actor, post-delegation. When a delegate
	// acted, OnBehalfOf carries the nominal authority holder.
	ActingUser types.UserID
	OnBehalfOf types.UserID

	Action         types.Action
	Comment        string
	AttachmentRefs []types.AttachmentRef

	CreatedAt time.Time
}

// Clone creates a deep copy of the transition
func (t *Transition) Clone() *Transition {
	if t == nil {
		return nil
	}

	copied := *t
	copied.AttachmentRefs = make([]types.AttachmentRef, len(t.AttachmentRefs))
	copy(copied.AttachmentRefs, t.AttachmentRefs)
	return &copied
}
