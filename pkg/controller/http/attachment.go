package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/types"
	"github.com/secmon-lab/docflow/pkg/utils/safe"
)

// Upload size cap. Scanned dispatch documents run a few MB each.
const maxAttachmentSize = 32 << 20

func (s *Server) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		handleError(ctx, w, goerr.Wrap(err, "invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(ctx, w, goerr.Wrap(err, "file field is required"))
		return
	}
	defer safe.Close(ctx, file)

	ref, err := s.attachments.Put(ctx, header.Filename, file)
	if err != nil {
		handleError(ctx, w, goerr.Wrap(err, "failed to store attachment"))
		return
	}

	respondJSON(ctx, w, http.StatusCreated, struct {
		Ref types.AttachmentRef `json:"ref"`
	}{Ref: ref})
}

func (s *Server) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ref := types.AttachmentRef(chi.URLParam(r, "ref"))

	exists, err := s.attachments.Exists(ctx, ref)
	if err != nil {
		handleError(ctx, w, goerr.Wrap(err, "failed to check attachment"))
		return
	}
	if !exists {
		http.NotFound(w, r)
		return
	}

	body, err := s.attachments.Open(ctx, ref)
	if err != nil {
		handleError(ctx, w, goerr.Wrap(err, "failed to open attachment"))
		return
	}
	defer safe.Close(ctx, body)

	w.Header().Set("Content-Type", "application/octet-stream")
	safe.Copy(ctx, w, body)
}
