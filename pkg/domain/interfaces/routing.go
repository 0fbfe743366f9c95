package interfaces

import (
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// RoutingConfig provides the routing graph per document type. Graphs are
// loaded at startup and treated as immutable, so lookups need no context
// and no locking.
type RoutingConfig interface {
	Graph(dt types.DocumentType) (*model.RoutingGraph, error)
}
