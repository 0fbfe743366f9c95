package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// DocumentCase is the unit under workflow control. CurrentNode and Status
// are mutated only through the workflow engine; History is owned
// exclusively by the case and is append-only.
type DocumentCase struct {
	ID           types.CaseID
	DocumentType types.DocumentType
	Title        string
	Description  string

	CurrentNode types.NodeID
	Status      types.CaseStatus

	Creator           types.UserID
	MainAssignee      types.UserID
	SupportAssignees  []types.UserID
	ObserverAssignees []types.UserID

	Deadline *time.Time

	// Revision is the optimistic concurrency token. Every successful
	// store update increments it; a stale revision is rejected.
	Revision int64

	History []Transition

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the structural invariants of the case
func (c *DocumentCase) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid case ID")
	}
	if !c.DocumentType.IsValid() {
		return goerr.New("invalid document type", goerr.V("document_type", c.DocumentType))
	}
	if c.Title == "" {
		return goerr.New("case title is required", goerr.V("case_id", c.ID))
	}
	if !c.Status.IsValid() {
		return goerr.New("invalid case status", goerr.V("status", c.Status))
	}
	if err := c.CurrentNode.Validate(); err != nil {
		return goerr.Wrap(err, "invalid current node", goerr.V("case_id", c.ID))
	}
	if err := c.MainAssignee.Validate(); err != nil {
		return goerr.Wrap(err, "main assignee is required", goerr.V("case_id", c.ID))
	}
	return nil
}

// EditableBy reports whether the given user may edit the case body.
// Once a case is routed for decision the originating editor loses write
// access until it comes back to them.
func (c *DocumentCase) EditableBy(user types.UserID) bool {
	if user != c.Creator {
		return false
	}
	switch c.Status {
	case types.CaseStatusCompleted, types.CaseStatusPendingApproval:
		return false
	default:
		return true
	}
}

// LastTransition returns the most recent history entry, or nil for a
// freshly created case.
func (c *DocumentCase) LastTransition() *Transition {
	if len(c.History) == 0 {
		return nil
	}
	return &c.History[len(c.History)-1]
}

// Clone creates a deep copy of the case
func (c *DocumentCase) Clone() *DocumentCase {
	if c == nil {
		return nil
	}

	copied := *c

	copied.SupportAssignees = make([]types.UserID, len(c.SupportAssignees))
	copy(copied.SupportAssignees, c.SupportAssignees)

	copied.ObserverAssignees = make([]types.UserID, len(c.ObserverAssignees))
	copy(copied.ObserverAssignees, c.ObserverAssignees)

	if c.Deadline != nil {
		d := *c.Deadline
		copied.Deadline = &d
	}

	copied.History = make([]Transition, len(c.History))
	for i := range c.History {
		copied.History[i] = *c.History[i].Clone()
	}

	return &copied
}
