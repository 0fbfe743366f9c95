package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/deadline"
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
	"github.com/secmon-lab/docflow/pkg/usecase"
)

type caseResponse struct {
	ID                types.CaseID          `json:"id"`
	DocumentType      types.DocumentType    `json:"document_type"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	CurrentNode       types.NodeID          `json:"current_node"`
	Status            types.CaseStatus      `json:"status"`
	Creator           types.UserID          `json:"creator"`
	MainAssignee      types.UserID          `json:"main_assignee"`
	SupportAssignees  []types.UserID        `json:"support_assignees,omitempty"`
	ObserverAssignees []types.UserID        `json:"observer_assignees,omitempty"`
	Deadline          *time.Time            `json:"deadline,omitempty"`
	Warning           types.WarningCategory `json:"warning,omitempty"`
	Editable          *bool                 `json:"editable,omitempty"`
	Revision          int64                 `json:"revision"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

func toCaseResponse(c *model.DocumentCase) caseResponse {
	return caseResponse{
		ID:                c.ID,
		DocumentType:      c.DocumentType,
		Title:             c.Title,
		Description:       c.Description,
		CurrentNode:       c.CurrentNode,
		Status:            c.Status,
		Creator:           c.Creator,
		MainAssignee:      c.MainAssignee,
		SupportAssignees:  c.SupportAssignees,
		ObserverAssignees: c.ObserverAssignees,
		Deadline:          c.Deadline,
		Revision:          c.Revision,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

type transitionResponse struct {
	ID             types.TransitionID    `json:"id"`
	FromNode       types.NodeID          `json:"from_node"`
	ToNode         types.NodeID          `json:"to_node"`
	FromStatus     types.CaseStatus      `json:"from_status"`
	ToStatus       types.CaseStatus      `json:"to_status"`
	ActingUser     types.UserID          `json:"acting_user"`
	OnBehalfOf     types.UserID          `json:"on_behalf_of,omitempty"`
	Action         types.Action          `json:"action"`
	Comment        string                `json:"comment,omitempty"`
	AttachmentRefs []types.AttachmentRef `json:"attachment_refs,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

func toTransitionResponse(tx *model.Transition) transitionResponse {
	return transitionResponse{
		ID:             tx.ID,
		FromNode:       tx.FromNode,
		ToNode:         tx.ToNode,
		FromStatus:     tx.FromStatus,
		ToStatus:       tx.ToStatus,
		ActingUser:     tx.ActingUser,
		OnBehalfOf:     tx.OnBehalfOf,
		Action:         tx.Action,
		Comment:        tx.Comment,
		AttachmentRefs: tx.AttachmentRefs,
		CreatedAt:      tx.CreatedAt,
	}
}

func actor(r *http.Request) (types.UserID, error) {
	user := types.UserID(r.Header.Get(actorHeader))
	if err := user.Validate(); err != nil {
		return "", goerr.Wrap(err, "missing actor header", goerr.V("header", actorHeader))
	}
	return user, nil
}

func caseIDParam(r *http.Request) types.CaseID {
	return types.CaseID(chi.URLParam(r, "caseID"))
}

func (s *Server) createCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := actor(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		DocumentType string     `json:"document_type"`
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		EntryNode    string     `json:"entry_node"`
		Deadline     *time.Time `json:"deadline"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	dt, err := types.ParseDocumentType(req.DocumentType)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	created, err := s.uc.Workflow.CreateCase(ctx, usecase.CreateCaseInput{
		DocumentType: dt,
		Title:        req.Title,
		Description:  req.Description,
		Creator:      user,
		EntryNode:    types.NodeID(req.EntryNode),
		Deadline:     req.Deadline,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toCaseResponse(created))
}

func (s *Server) getCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := s.uc.Workflow.GetCase(ctx, caseIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := toCaseResponse(c)
	// Editability is relative to the requester, so it is only reported
	// when the request identifies one.
	if user := types.UserID(r.Header.Get(actorHeader)); user != "" {
		editable := c.EditableBy(user)
		resp.Editable = &editable
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) listCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := interfaces.ListCasesFilter{
		Assignee: types.UserID(r.URL.Query().Get("assignee")),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := types.ParseCaseStatus(raw)
		if err != nil {
			handleError(ctx, w, err)
			return
		}
		filter.Status = status
	}

	listed, err := s.uc.Workflow.ListCases(ctx, filter)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	// Legacy clients filter their list tabs by localized label text
	// rather than the warning enum; translate at this boundary.
	if tag := r.URL.Query().Get("warning_tag"); tag != "" {
		now := time.Now().UTC()
		kept := listed[:0]
		for _, item := range listed {
			if item.Warning == deadline.ClassifyTag(tag, item.Case.Deadline, now) {
				kept = append(kept, item)
			}
		}
		listed = kept
	}

	resp := struct {
		Cases []caseResponse `json:"cases"`
	}{Cases: make([]caseResponse, len(listed))}
	for i, item := range listed {
		resp.Cases[i] = toCaseResponse(item.Case)
		resp.Cases[i].Warning = item.Warning
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) caseHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := s.uc.Workflow.History(ctx, caseIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := struct {
		Transitions []transitionResponse `json:"transitions"`
	}{Transitions: make([]transitionResponse, len(entries))}
	for i, tx := range entries {
		resp.Transitions[i] = toTransitionResponse(tx)
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) transferCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := actor(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		TargetNode        string                `json:"target_node"`
		NewMainAssignee   string                `json:"new_main_assignee"`
		SupportAssignees  []types.UserID        `json:"support_assignees"`
		ObserverAssignees []types.UserID        `json:"observer_assignees"`
		Deadline          *time.Time            `json:"deadline"`
		Comment           string                `json:"comment"`
		AttachmentRefs    []types.AttachmentRef `json:"attachment_refs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	moved, err := s.uc.Workflow.Transfer(ctx, usecase.TransferInput{
		CaseID:            caseIDParam(r),
		ActingUser:        user,
		TargetNode:        types.NodeID(req.TargetNode),
		NewMainAssignee:   types.UserID(req.NewMainAssignee),
		SupportAssignees:  req.SupportAssignees,
		ObserverAssignees: req.ObserverAssignees,
		Deadline:          req.Deadline,
		Comment:           req.Comment,
		AttachmentRefs:    req.AttachmentRefs,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponse(moved))
}

func (s *Server) acceptCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := actor(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		Comment        string                `json:"comment"`
		AttachmentRefs []types.AttachmentRef `json:"attachment_refs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	result, err := s.uc.Workflow.Accept(ctx, usecase.AcceptInput{
		CaseID:         caseIDParam(r),
		ActingUser:     user,
		Comment:        req.Comment,
		AttachmentRefs: req.AttachmentRefs,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := struct {
		Case    caseResponse        `json:"case"`
		Outcome types.AcceptOutcome `json:"outcome"`
	}{Case: toCaseResponse(result.Case), Outcome: result.Outcome}

	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) rejectCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := actor(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		Comment        string                `json:"comment"`
		AttachmentRefs []types.AttachmentRef `json:"attachment_refs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	rejected, err := s.uc.Workflow.Reject(ctx, usecase.RejectInput{
		CaseID:         caseIDParam(r),
		ActingUser:     user,
		Comment:        req.Comment,
		AttachmentRefs: req.AttachmentRefs,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponse(rejected))
}

func (s *Server) returnCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := actor(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		Comment        string                `json:"comment"`
		AttachmentRefs []types.AttachmentRef `json:"attachment_refs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	returned, err := s.uc.Workflow.Return(ctx, usecase.ReturnInput{
		CaseID:         caseIDParam(r),
		ActingUser:     user,
		Comment:        req.Comment,
		AttachmentRefs: req.AttachmentRefs,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponse(returned))
}

func (s *Server) retakeCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := actor(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		Comment string `json:"comment"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	retaken, err := s.uc.Workflow.Retake(ctx, usecase.RetakeInput{
		CaseID:     caseIDParam(r),
		ActingUser: user,
		Comment:    req.Comment,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toCaseResponse(retaken))
}

func (s *Server) completeCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := actor(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req struct {
		CaseIDs []types.CaseID `json:"case_ids"`
		Comment string         `json:"comment"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	results, err := s.uc.Workflow.Complete(ctx, usecase.CompleteInput{
		CaseIDs:    req.CaseIDs,
		ActingUser: user,
		Comment:    req.Comment,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	type completeItem struct {
		CaseID types.CaseID  `json:"case_id"`
		Case   *caseResponse `json:"case,omitempty"`
		Error  string        `json:"error,omitempty"`
	}
	resp := struct {
		Results []completeItem `json:"results"`
	}{Results: make([]completeItem, len(results))}

	for i, res := range results {
		item := completeItem{CaseID: res.CaseID}
		if res.Err != nil {
			item.Error = res.Err.Error()
		} else {
			body := toCaseResponse(res.Case)
			item.Case = &body
		}
		resp.Results[i] = item
	}

	// The batch endpoint succeeds as long as it ran; per-case failures
	// are reported in the body.
	respondJSON(ctx, w, http.StatusMultiStatus, resp)
}

func (s *Server) deleteDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := actor(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	if err := s.uc.Workflow.DeleteDraft(ctx, caseIDParam(r), user); err != nil {
		handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
