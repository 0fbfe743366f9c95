package model

import (
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// RoutingNode is a position in the organizational routing graph.
type RoutingNode struct {
	ID   types.NodeID
	Name string

	// Approval: a case arriving here waits for a sign-off decision
	Approval bool
	// Sign: the node carries binding signing authority, so Accept is a
	// signature rather than an opinion
	Sign bool
	// Terminal: Accept here completes the case
	Terminal bool
	// Entry: drafts may be created at this node
	Entry bool
}

// RoutingGraph holds the legal next-node transitions for one document
// type. It is built once at load time and never mutated afterwards, so
// concurrent reads need no locking.
type RoutingGraph struct {
	documentType types.DocumentType
	nodes        map[types.NodeID]RoutingNode
	edges        map[types.NodeID][]types.NodeID
}

// NewRoutingGraph builds an immutable graph from nodes and edges.
// The caller (the routing loader) is responsible for referential checks.
func NewRoutingGraph(dt types.DocumentType, nodes []RoutingNode, edges map[types.NodeID][]types.NodeID) *RoutingGraph {
	nodeMap := make(map[types.NodeID]RoutingNode, len(nodes))
	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	edgeMap := make(map[types.NodeID][]types.NodeID, len(edges))
	for from, tos := range edges {
		copied := make([]types.NodeID, len(tos))
		copy(copied, tos)
		edgeMap[from] = copied
	}

	return &RoutingGraph{
		documentType: dt,
		nodes:        nodeMap,
		edges:        edgeMap,
	}
}

// DocumentType returns the document type this graph routes
func (g *RoutingGraph) DocumentType() types.DocumentType {
	return g.documentType
}

// Node returns the node definition and whether it exists
func (g *RoutingGraph) Node(id types.NodeID) (RoutingNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all node definitions
func (g *RoutingGraph) Nodes() []RoutingNode {
	nodes := make([]RoutingNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// LegalNextNodes returns the set of nodes reachable from the given node
func (g *RoutingGraph) LegalNextNodes(from types.NodeID) []types.NodeID {
	tos, ok := g.edges[from]
	if !ok {
		return nil
	}
	copied := make([]types.NodeID, len(tos))
	copy(copied, tos)
	return copied
}

// IsLegal reports whether a direct transition from one node to another
// exists in the graph
func (g *RoutingGraph) IsLegal(from, to types.NodeID) bool {
	for _, next := range g.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}
