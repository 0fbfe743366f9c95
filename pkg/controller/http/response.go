package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/usecase"
	"github.com/secmon-lab/docflow/pkg/utils/errutil"
	"github.com/secmon-lab/docflow/pkg/utils/safe"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, data)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(err, "invalid JSON body")
	}
	return nil
}

// handleError translates engine sentinels into HTTP status codes. Errors
// that match no sentinel are treated as bad input rather than server
// faults: the engine validates its commands at the boundary.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrCaseNotFound),
		errors.Is(err, usecase.ErrDelegationNotFound):
		return http.StatusNotFound

	case errors.Is(err, usecase.ErrNotAuthorized):
		return http.StatusForbidden

	case errors.Is(err, usecase.ErrIllegalTransition),
		errors.Is(err, usecase.ErrRetakeNotAllowed),
		errors.Is(err, usecase.ErrConcurrentModification),
		errors.Is(err, usecase.ErrAmbiguousDelegation),
		errors.Is(err, usecase.ErrDelegationReadOnly),
		errors.Is(err, usecase.ErrDelegationFrozen):
		return http.StatusConflict

	default:
		return http.StatusBadRequest
	}
}
