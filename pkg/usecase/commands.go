package usecase

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// Each workflow operation has its own command type carrying only the
// fields it needs, validated at the boundary before the state machine
// runs. Loose payloads never reach the engine.

// CreateCaseInput registers a new draft at an entry node of the routing
// graph for its document type.
type CreateCaseInput struct {
	DocumentType types.DocumentType
	Title        string
	Description  string
	Creator      types.UserID
	EntryNode    types.NodeID
	Deadline     *time.Time
}

func (x *CreateCaseInput) Validate() error {
	if !x.DocumentType.IsValid() {
		return goerr.New("invalid document type", goerr.V("document_type", x.DocumentType))
	}
	if x.Title == "" {
		return goerr.New("case title is required")
	}
	if err := x.Creator.Validate(); err != nil {
		return goerr.Wrap(err, "creator is required")
	}
	if err := x.EntryNode.Validate(); err != nil {
		return goerr.Wrap(err, "entry node is required")
	}
	return nil
}

// TransferInput routes a case to the next node and hands it to a new
// main assignee.
type TransferInput struct {
	CaseID            types.CaseID
	ActingUser        types.UserID
	TargetNode        types.NodeID
	NewMainAssignee   types.UserID
	SupportAssignees  []types.UserID
	ObserverAssignees []types.UserID
	Deadline          *time.Time
	Comment           string
	AttachmentRefs    []types.AttachmentRef
}

func (x *TransferInput) Validate() error {
	if err := x.CaseID.Validate(); err != nil {
		return goerr.Wrap(err, "case ID is required")
	}
	if err := x.ActingUser.Validate(); err != nil {
		return goerr.Wrap(err, "acting user is required")
	}
	if err := x.TargetNode.Validate(); err != nil {
		return goerr.Wrap(err, "target node is required")
	}
	if err := x.NewMainAssignee.Validate(); err != nil {
		return goerr.Wrap(err, "new main assignee is required")
	}
	return nil
}

// AcceptInput records a sign-off decision at the current node.
type AcceptInput struct {
	CaseID         types.CaseID
	ActingUser     types.UserID
	Comment        string
	AttachmentRefs []types.AttachmentRef
}

func (x *AcceptInput) Validate() error {
	if err := x.CaseID.Validate(); err != nil {
		return goerr.Wrap(err, "case ID is required")
	}
	if err := x.ActingUser.Validate(); err != nil {
		return goerr.Wrap(err, "acting user is required")
	}
	return nil
}

// AcceptResult reports the committed case plus which business meaning
// the acceptance had, so the caller can frame its confirmation message.
type AcceptResult struct {
	Case    *model.DocumentCase
	Outcome types.AcceptOutcome
}

// RejectInput terminates a pending case with a mandatory comment.
type RejectInput struct {
	CaseID         types.CaseID
	ActingUser     types.UserID
	Comment        string
	AttachmentRefs []types.AttachmentRef
}

func (x *RejectInput) Validate() error {
	if err := x.CaseID.Validate(); err != nil {
		return goerr.Wrap(err, "case ID is required")
	}
	if err := x.ActingUser.Validate(); err != nil {
		return goerr.Wrap(err, "acting user is required")
	}
	if x.Comment == "" {
		return goerr.New("reject requires a comment")
	}
	return nil
}

// ReturnInput sends a pending case back to its sender for rework.
type ReturnInput struct {
	CaseID         types.CaseID
	ActingUser     types.UserID
	Comment        string
	AttachmentRefs []types.AttachmentRef
}

func (x *ReturnInput) Validate() error {
	if err := x.CaseID.Validate(); err != nil {
		return goerr.Wrap(err, "case ID is required")
	}
	if err := x.ActingUser.Validate(); err != nil {
		return goerr.Wrap(err, "acting user is required")
	}
	if x.Comment == "" {
		return goerr.New("return requires a comment")
	}
	return nil
}

// RetakeInput retracts the sender's own most recent routing step before
// the receiver has acted on it.
type RetakeInput struct {
	CaseID     types.CaseID
	ActingUser types.UserID
	Comment    string
}

func (x *RetakeInput) Validate() error {
	if err := x.CaseID.Validate(); err != nil {
		return goerr.Wrap(err, "case ID is required")
	}
	if err := x.ActingUser.Validate(); err != nil {
		return goerr.Wrap(err, "acting user is required")
	}
	return nil
}

// CompleteInput closes a batch of cases. Each case is processed
// independently; one failure never aborts the rest.
type CompleteInput struct {
	CaseIDs    []types.CaseID
	ActingUser types.UserID
	Comment    string
}

func (x *CompleteInput) Validate() error {
	if len(x.CaseIDs) == 0 {
		return goerr.New("at least one case ID is required")
	}
	if err := x.ActingUser.Validate(); err != nil {
		return goerr.Wrap(err, "acting user is required")
	}
	return nil
}

// CompleteResult is the per-case outcome of a batch Complete.
type CompleteResult struct {
	CaseID types.CaseID
	Case   *model.DocumentCase
	Err    error
}

// CaseWithWarning pairs a case with its deadline warning category for
// list views.
type CaseWithWarning struct {
	Case    *model.DocumentCase
	Warning types.WarningCategory
}
