package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/deadline"
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
	"github.com/secmon-lab/docflow/pkg/utils/async"
	"golang.org/x/sync/errgroup"
)

// completeBatchConcurrency bounds the fan-out of a batch Complete.
const completeBatchConcurrency = 8

// WorkflowUseCase is the document workflow state machine. It holds no
// state between calls beyond the persisted cases; per-case writers are
// serialized by the keyed lock and the store's revision check.
type WorkflowUseCase struct {
	repo       interfaces.Repository
	routing    interfaces.RoutingConfig
	delegation *DelegationUseCase
	notifier   interfaces.NotificationSink
	now        func() time.Time
	locker     *caseLocker
}

func NewWorkflowUseCase(
	repo interfaces.Repository,
	routing interfaces.RoutingConfig,
	delegation *DelegationUseCase,
	notifier interfaces.NotificationSink,
	now func() time.Time,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		repo:       repo,
		routing:    routing,
		delegation: delegation,
		notifier:   notifier,
		now:        now,
		locker:     newCaseLocker(),
	}
}

func (uc *WorkflowUseCase) CreateCase(ctx context.Context, input CreateCaseInput) (*model.DocumentCase, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid create input")
	}

	graph, err := uc.routing.Graph(input.DocumentType)
	if err != nil {
		return nil, goerr.Wrap(err, "no routing graph for document type")
	}

	node, ok := graph.Node(input.EntryNode)
	if !ok || !node.Entry {
		return nil, goerr.Wrap(ErrIllegalTransition, "node is not an entry point",
			goerr.V(NodeIDKey, input.EntryNode))
	}

	now := uc.now()
	c := &model.DocumentCase{
		ID:           types.NewCaseID(),
		DocumentType: input.DocumentType,
		Title:        input.Title,
		Description:  input.Description,
		CurrentNode:  input.EntryNode,
		Status:       types.CaseStatusDraft,
		Creator:      input.Creator,
		MainAssignee: input.Creator,
		Deadline:     input.Deadline,
		History: []model.Transition{{
			ID:         types.NewTransitionID(),
			FromNode:   input.EntryNode,
			ToNode:     input.EntryNode,
			FromStatus: types.CaseStatusDraft,
			ToStatus:   types.CaseStatusDraft,
			ActingUser: input.Creator,
			Action:     types.ActionCreate,
			CreatedAt:  now,
		}},
	}
	c.History[0].CaseID = c.ID

	created, err := uc.repo.Case().Create(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case")
	}
	return created, nil
}

// Transfer routes the case to the target node. Only the main assignee
// (or their sole active delegate) may transfer, and only along a legal
// edge of the routing graph.
func (uc *WorkflowUseCase) Transfer(ctx context.Context, input TransferInput) (*model.DocumentCase, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid transfer input")
	}

	unlock := uc.locker.lock(input.CaseID)
	defer unlock()

	c, err := uc.loadCase(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := uc.requireMainAssignee(ctx, c, input.ActingUser, now); err != nil {
		return nil, err
	}

	switch c.Status {
	case types.CaseStatusDraft, types.CaseStatusInProgress, types.CaseStatusReturned:
		// transferable
	default:
		return nil, goerr.Wrap(ErrIllegalTransition, "case cannot be transferred in its current status",
			goerr.V(CaseIDKey, c.ID),
			goerr.V("status", c.Status))
	}

	graph, err := uc.routing.Graph(c.DocumentType)
	if err != nil {
		return nil, goerr.Wrap(err, "no routing graph for document type")
	}

	target, ok := graph.Node(input.TargetNode)
	if !ok || !graph.IsLegal(c.CurrentNode, input.TargetNode) {
		return nil, goerr.Wrap(ErrIllegalTransition, "target node is not reachable from current node",
			goerr.V(CaseIDKey, c.ID),
			goerr.V("from", c.CurrentNode),
			goerr.V("to", input.TargetNode))
	}

	newStatus := types.CaseStatusInProgress
	if target.Approval {
		newStatus = types.CaseStatusPendingApproval
	}

	tx := uc.newTransition(c, input.ActingUser, now)
	tx.ToNode = input.TargetNode
	tx.ToStatus = newStatus
	tx.Action = types.ActionTransfer
	tx.Comment = input.Comment
	tx.AttachmentRefs = input.AttachmentRefs

	c.CurrentNode = input.TargetNode
	c.MainAssignee = input.NewMainAssignee
	c.Status = newStatus
	if input.SupportAssignees != nil {
		c.SupportAssignees = input.SupportAssignees
	}
	if input.ObserverAssignees != nil {
		c.ObserverAssignees = input.ObserverAssignees
	}
	if input.Deadline != nil {
		c.Deadline = input.Deadline
	}

	return uc.commit(ctx, c, tx, types.AcceptOutcome(""))
}

// Accept records the sign-off decision at the current node. At a node
// with signing authority this is a binding signature; the result's
// Outcome tells the caller which framing applies.
func (uc *WorkflowUseCase) Accept(ctx context.Context, input AcceptInput) (*AcceptResult, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid accept input")
	}

	unlock := uc.locker.lock(input.CaseID)
	defer unlock()

	c, err := uc.loadCase(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := uc.requireMainAssignee(ctx, c, input.ActingUser, now); err != nil {
		return nil, err
	}
	if err := uc.requirePending(c); err != nil {
		return nil, err
	}

	graph, err := uc.routing.Graph(c.DocumentType)
	if err != nil {
		return nil, goerr.Wrap(err, "no routing graph for document type")
	}
	node, ok := graph.Node(c.CurrentNode)
	if !ok {
		return nil, goerr.Wrap(ErrIllegalTransition, "case is at an unknown node",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(NodeIDKey, c.CurrentNode))
	}

	newStatus := types.CaseStatusInProgress
	if node.Terminal {
		newStatus = types.CaseStatusCompleted
	}

	outcome := types.AcceptOutcomeOpinion
	if node.Sign {
		outcome = types.AcceptOutcomeSigned
	}

	tx := uc.newTransition(c, input.ActingUser, now)
	tx.ToNode = c.CurrentNode
	tx.ToStatus = newStatus
	tx.Action = types.ActionAccept
	tx.Comment = input.Comment
	tx.AttachmentRefs = input.AttachmentRefs

	c.Status = newStatus

	committed, err := uc.commit(ctx, c, tx, outcome)
	if err != nil {
		return nil, err
	}
	return &AcceptResult{Case: committed, Outcome: outcome}, nil
}

// Reject terminates the case. Only a pending case can be rejected and
// the comment is mandatory so the decision is explained on the record.
func (uc *WorkflowUseCase) Reject(ctx context.Context, input RejectInput) (*model.DocumentCase, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid reject input")
	}

	unlock := uc.locker.lock(input.CaseID)
	defer unlock()

	c, err := uc.loadCase(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := uc.requireMainAssignee(ctx, c, input.ActingUser, now); err != nil {
		return nil, err
	}
	if err := uc.requirePending(c); err != nil {
		return nil, err
	}

	tx := uc.newTransition(c, input.ActingUser, now)
	tx.ToNode = c.CurrentNode
	tx.ToStatus = types.CaseStatusRejected
	tx.Action = types.ActionReject
	tx.Comment = input.Comment
	tx.AttachmentRefs = input.AttachmentRefs

	c.Status = types.CaseStatusRejected

	return uc.commit(ctx, c, tx, types.AcceptOutcome(""))
}

// Return sends a pending case back to the sender of the last transfer
// for rework. Unlike Reject this is not terminal: a later Transfer can
// put the case back in progress.
func (uc *WorkflowUseCase) Return(ctx context.Context, input ReturnInput) (*model.DocumentCase, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid return input")
	}

	unlock := uc.locker.lock(input.CaseID)
	defer unlock()

	c, err := uc.loadCase(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := uc.requireMainAssignee(ctx, c, input.ActingUser, now); err != nil {
		return nil, err
	}
	if err := uc.requirePending(c); err != nil {
		return nil, err
	}

	last, err := lastTransfer(c)
	if err != nil {
		return nil, err
	}

	tx := uc.newTransition(c, input.ActingUser, now)
	tx.ToNode = last.FromNode
	tx.ToStatus = types.CaseStatusReturned
	tx.Action = types.ActionReturn
	tx.Comment = input.Comment
	tx.AttachmentRefs = input.AttachmentRefs

	c.CurrentNode = last.FromNode
	c.MainAssignee = senderOf(last)
	c.Status = types.CaseStatusReturned

	return uc.commit(ctx, c, tx, types.AcceptOutcome(""))
}

// Retake retracts the acting user's own most recent transfer before the
// receiver acts on it. The reverted transfer stays in the history; the
// retraction is a new entry.
func (uc *WorkflowUseCase) Retake(ctx context.Context, input RetakeInput) (*model.DocumentCase, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid retake input")
	}

	unlock := uc.locker.lock(input.CaseID)
	defer unlock()

	c, err := uc.loadCase(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}

	if c.Status != types.CaseStatusPendingApproval {
		return nil, goerr.Wrap(ErrRetakeNotAllowed, "the receiver has already acted on this case",
			goerr.V(CaseIDKey, c.ID),
			goerr.V("status", c.Status))
	}

	last := c.LastTransition()
	if last == nil || last.Action != types.ActionTransfer {
		return nil, goerr.Wrap(ErrRetakeNotAllowed, "the most recent step is not a transfer",
			goerr.V(CaseIDKey, c.ID))
	}

	now := uc.now()
	ok, err := uc.delegation.ActsFor(ctx, input.ActingUser, last.ActingUser, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, goerr.Wrap(ErrNotAuthorized, "only the user who performed the transfer may retake it",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(UserIDKey, input.ActingUser))
	}

	tx := uc.newTransition(c, input.ActingUser, now)
	tx.ToNode = last.FromNode
	tx.ToStatus = types.CaseStatusRecalled
	tx.Action = types.ActionRetake
	tx.Comment = input.Comment
	// The authority being exercised is the sender's, not the receiver's.
	tx.OnBehalfOf = ""
	if input.ActingUser != senderOf(last) {
		tx.OnBehalfOf = senderOf(last)
	}

	c.CurrentNode = last.FromNode
	c.MainAssignee = senderOf(last)
	c.Status = types.CaseStatusRecalled

	return uc.commit(ctx, c, tx, types.AcceptOutcome(""))
}

// Complete closes each case in the batch independently. A case that
// fails its lock, precondition, or save reports its own error and the
// rest proceed.
func (uc *WorkflowUseCase) Complete(ctx context.Context, input CompleteInput) ([]CompleteResult, error) {
	if err := input.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid complete input")
	}

	results := make([]CompleteResult, len(input.CaseIDs))

	var eg errgroup.Group
	eg.SetLimit(completeBatchConcurrency)
	for i, caseID := range input.CaseIDs {
		eg.Go(func() error {
			c, err := uc.completeOne(ctx, caseID, input.ActingUser, input.Comment)
			results[i] = CompleteResult{CaseID: caseID, Case: c, Err: err}
			return nil
		})
	}
	// Per-item errors land in results; the group itself never fails.
	_ = eg.Wait()

	return results, nil
}

func (uc *WorkflowUseCase) completeOne(ctx context.Context, caseID types.CaseID, actingUser types.UserID, comment string) (*model.DocumentCase, error) {
	unlock := uc.locker.lock(caseID)
	defer unlock()

	c, err := uc.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if c.Status.IsTerminal() {
		return nil, goerr.Wrap(ErrIllegalTransition, "case is already terminal",
			goerr.V(CaseIDKey, c.ID),
			goerr.V("status", c.Status))
	}

	now := uc.now()
	if err := uc.requireMainAssignee(ctx, c, actingUser, now); err != nil {
		return nil, err
	}

	tx := uc.newTransition(c, actingUser, now)
	tx.ToNode = c.CurrentNode
	tx.ToStatus = types.CaseStatusCompleted
	tx.Action = types.ActionComplete
	tx.Comment = comment

	c.Status = types.CaseStatusCompleted

	return uc.commit(ctx, c, tx, types.AcceptOutcome(""))
}

// DeleteDraft withdraws a case that was never submitted. Only the
// creator may do this and only while the case is still a draft.
func (uc *WorkflowUseCase) DeleteDraft(ctx context.Context, caseID types.CaseID, actingUser types.UserID) error {
	unlock := uc.locker.lock(caseID)
	defer unlock()

	c, err := uc.loadCase(ctx, caseID)
	if err != nil {
		return err
	}

	if c.Status != types.CaseStatusDraft {
		return goerr.Wrap(ErrIllegalTransition, "only drafts can be deleted",
			goerr.V(CaseIDKey, c.ID),
			goerr.V("status", c.Status))
	}
	if c.Creator != actingUser {
		return goerr.Wrap(ErrNotAuthorized, "only the creator may delete a draft",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(UserIDKey, actingUser))
	}

	if err := uc.repo.Case().Delete(ctx, caseID); err != nil {
		return goerr.Wrap(err, "failed to delete draft", goerr.V(CaseIDKey, caseID))
	}
	return nil
}

func (uc *WorkflowUseCase) GetCase(ctx context.Context, caseID types.CaseID) (*model.DocumentCase, error) {
	return uc.loadCase(ctx, caseID)
}

// ListCases reads cases matching the filter and labels each with its
// deadline warning category, computed at read time.
func (uc *WorkflowUseCase) ListCases(ctx context.Context, filter interfaces.ListCasesFilter) ([]CaseWithWarning, error) {
	cases, err := uc.repo.Case().List(ctx, filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}

	now := uc.now()
	listed := make([]CaseWithWarning, len(cases))
	for i, c := range cases {
		listed[i] = CaseWithWarning{
			Case:    c,
			Warning: deadline.Classify(c.Status, c.Deadline, now),
		}
	}
	return listed, nil
}

// History returns the full audit trail for a case in chronological
// order.
func (uc *WorkflowUseCase) History(ctx context.Context, caseID types.CaseID) ([]*model.Transition, error) {
	if _, err := uc.loadCase(ctx, caseID); err != nil {
		return nil, err
	}

	entries, err := uc.repo.Ledger().ListFor(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list case history", goerr.V(CaseIDKey, caseID))
	}
	return entries, nil
}

func (uc *WorkflowUseCase) loadCase(ctx context.Context, caseID types.CaseID) (*model.DocumentCase, error) {
	c, err := uc.repo.Case().Get(ctx, caseID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
		}
		return nil, goerr.Wrap(err, "failed to load case", goerr.V(CaseIDKey, caseID))
	}
	return c, nil
}

// requireMainAssignee verifies the acting user holds the case's main
// assignee authority, directly or through the sole active delegation.
func (uc *WorkflowUseCase) requireMainAssignee(ctx context.Context, c *model.DocumentCase, actingUser types.UserID, now time.Time) error {
	ok, err := uc.delegation.ActsFor(ctx, actingUser, c.MainAssignee, now)
	if err != nil {
		return err
	}
	if !ok {
		return goerr.Wrap(ErrNotAuthorized, "acting user is not the main assignee",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(UserIDKey, actingUser))
	}
	return nil
}

func (uc *WorkflowUseCase) requirePending(c *model.DocumentCase) error {
	if c.Status != types.CaseStatusPendingApproval {
		return goerr.Wrap(ErrIllegalTransition, "case is not pending approval",
			goerr.V(CaseIDKey, c.ID),
			goerr.V("status", c.Status))
	}
	return nil
}

// newTransition pre-fills the invariant fields of a history entry. The
// caller sets target node, status, action, and payload.
func (uc *WorkflowUseCase) newTransition(c *model.DocumentCase, actingUser types.UserID, now time.Time) model.Transition {
	tx := model.Transition{
		ID:         types.NewTransitionID(),
		CaseID:     c.ID,
		FromNode:   c.CurrentNode,
		FromStatus: c.Status,
		ActingUser: actingUser,
		CreatedAt:  now,
	}
	if actingUser != c.MainAssignee {
		tx.OnBehalfOf = c.MainAssignee
	}
	return tx
}

// commit persists the mutated case with its new history entry in one
// compare-and-swap update, then dispatches the notification off the
// critical path. Cancellation is honored before the write so an aborted
// call leaves no partial state.
func (uc *WorkflowUseCase) commit(ctx context.Context, c *model.DocumentCase, tx model.Transition, outcome types.AcceptOutcome) (*model.DocumentCase, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "operation canceled before commit", goerr.V(CaseIDKey, c.ID))
	}

	c.History = append(c.History, tx)

	updated, err := uc.repo.Case().Update(ctx, c)
	if err != nil {
		if errors.Is(err, interfaces.ErrRevisionMismatch) {
			return nil, goerr.Wrap(ErrConcurrentModification, "case state is stale",
				goerr.V(CaseIDKey, c.ID))
		}
		return nil, goerr.Wrap(err, "failed to save case", goerr.V(CaseIDKey, c.ID))
	}

	if uc.notifier != nil {
		event := &model.WorkflowEvent{
			CaseID:     updated.ID,
			CaseTitle:  updated.Title,
			Action:     tx.Action,
			ActingUser: tx.ActingUser,
			OnBehalfOf: tx.OnBehalfOf,
			FromNode:   tx.FromNode,
			ToNode:     tx.ToNode,
			NewStatus:  updated.Status,
			Outcome:    outcome,
			OccurredAt: tx.CreatedAt,
		}
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.Notify(ctx, event)
		})
	}

	return updated, nil
}

// lastTransfer finds the transfer that brought the case to its current
// node.
func lastTransfer(c *model.DocumentCase) (*model.Transition, error) {
	for i := len(c.History) - 1; i >= 0; i-- {
		if c.History[i].Action == types.ActionTransfer {
			return &c.History[i], nil
		}
	}
	return nil, goerr.Wrap(ErrIllegalTransition, "case has never been transferred",
		goerr.V(CaseIDKey, c.ID))
}

// senderOf returns the pre-transfer main assignee: the nominal authority
// holder when a delegate performed the step, otherwise the actor.
func senderOf(tx *model.Transition) types.UserID {
	if tx.OnBehalfOf != "" {
		return tx.OnBehalfOf
	}
	return tx.ActingUser
}
