package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// inspectRouting renders the routing graph for one document type so
// clients can offer only legal next steps in their UI.
func (s *Server) inspectRouting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dt, err := types.ParseDocumentType(chi.URLParam(r, "docType"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	graph, err := s.routing.Graph(dt)
	if err != nil {
		handleError(ctx, w, goerr.Wrap(err, "no routing graph for document type"))
		return
	}

	type nodeResponse struct {
		ID       types.NodeID   `json:"id"`
		Name     string         `json:"name"`
		Approval bool           `json:"approval,omitempty"`
		Sign     bool           `json:"sign,omitempty"`
		Terminal bool           `json:"terminal,omitempty"`
		Entry    bool           `json:"entry,omitempty"`
		Next     []types.NodeID `json:"next,omitempty"`
	}
	resp := struct {
		DocumentType types.DocumentType `json:"document_type"`
		Nodes        []nodeResponse     `json:"nodes"`
	}{DocumentType: dt}

	for _, node := range graph.Nodes() {
		resp.Nodes = append(resp.Nodes, nodeResponse{
			ID:       node.ID,
			Name:     node.Name,
			Approval: node.Approval,
			Sign:     node.Sign,
			Terminal: node.Terminal,
			Entry:    node.Entry,
			Next:     graph.LegalNextNodes(node.ID),
		})
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}
