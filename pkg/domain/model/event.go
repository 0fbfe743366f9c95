package model

import (
	"time"

	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// WorkflowEvent describes a committed transition for notification
// purposes. It is emitted after the state change has been persisted.
type WorkflowEvent struct {
	CaseID     types.CaseID
	CaseTitle  string
	Action     types.Action
	ActingUser types.UserID
	OnBehalfOf types.UserID
	FromNode   types.NodeID
	ToNode     types.NodeID
	NewStatus  types.CaseStatus

	// Outcome is set only for Accept events so the caller can frame the
	// confirmation as "signed and approved" vs "opinion given".
	Outcome types.AcceptOutcome

	OccurredAt time.Time
}
