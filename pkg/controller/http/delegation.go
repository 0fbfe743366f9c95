package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
	"github.com/secmon-lab/docflow/pkg/usecase"
)

type delegationResponse struct {
	ID             types.DelegationID    `json:"id"`
	FromUser       types.UserID          `json:"from_user"`
	ToUser         types.UserID          `json:"to_user"`
	StartDate      time.Time             `json:"start_date"`
	EndDate        time.Time             `json:"end_date"`
	Active         bool                  `json:"active"`
	AttachmentRefs []types.AttachmentRef `json:"attachment_refs,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func toDelegationResponse(d *model.Delegation) delegationResponse {
	return delegationResponse{
		ID:             d.ID,
		FromUser:       d.FromUser,
		ToUser:         d.ToUser,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Active:         d.Active,
		AttachmentRefs: d.AttachmentRefs,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func delegationIDParam(r *http.Request) types.DelegationID {
	return types.DelegationID(chi.URLParam(r, "delegationID"))
}

func (s *Server) createDelegation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		FromUser       string                `json:"from_user"`
		ToUser         string                `json:"to_user"`
		StartDate      time.Time             `json:"start_date"`
		EndDate        time.Time             `json:"end_date"`
		AttachmentRefs []types.AttachmentRef `json:"attachment_refs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	created, err := s.uc.Delegation.CreateDelegation(ctx, usecase.CreateDelegationInput{
		FromUser:       types.UserID(req.FromUser),
		ToUser:         types.UserID(req.ToUser),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AttachmentRefs: req.AttachmentRefs,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toDelegationResponse(created))
}

func (s *Server) getDelegation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	d, err := s.uc.Delegation.GetDelegation(ctx, delegationIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toDelegationResponse(d))
}

func (s *Server) listDelegations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	delegations, err := s.uc.Delegation.ListDelegations(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := struct {
		Delegations []delegationResponse `json:"delegations"`
	}{Delegations: make([]delegationResponse, len(delegations))}
	for i, d := range delegations {
		resp.Delegations[i] = toDelegationResponse(d)
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) updateDelegation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		FromUser       *types.UserID         `json:"from_user"`
		ToUser         *types.UserID         `json:"to_user"`
		StartDate      *time.Time            `json:"start_date"`
		EndDate        *time.Time            `json:"end_date"`
		AttachmentRefs []types.AttachmentRef `json:"attachment_refs"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	updated, err := s.uc.Delegation.UpdateDelegation(ctx, usecase.UpdateDelegationInput{
		ID:             delegationIDParam(r),
		FromUser:       req.FromUser,
		ToUser:         req.ToUser,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AttachmentRefs: req.AttachmentRefs,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toDelegationResponse(updated))
}

func (s *Server) setDelegationActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Active bool `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	updated, err := s.uc.Delegation.SetDelegationActive(ctx, delegationIDParam(r), req.Active)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toDelegationResponse(updated))
}
