// Package routing loads routing graph definitions from YAML
// configuration and serves them as immutable lookup structures.
package routing

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/domain/interfaces"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/domain/types"
)

// Registry holds one routing graph per document type. Built once by
// Load/Parse and read-only afterwards.
type Registry struct {
	graphs map[types.DocumentType]*model.RoutingGraph
}

var _ interfaces.RoutingConfig = &Registry{}

// Graph returns the routing graph for the given document type
func (r *Registry) Graph(dt types.DocumentType) (*model.RoutingGraph, error) {
	g, ok := r.graphs[dt]
	if !ok {
		return nil, goerr.New("no routing graph for document type", goerr.V("document_type", dt))
	}
	return g, nil
}

// DocumentTypes returns the document types with a configured graph
func (r *Registry) DocumentTypes() []types.DocumentType {
	dts := make([]types.DocumentType, 0, len(r.graphs))
	for dt := range r.graphs {
		dts = append(dts, dt)
	}
	return dts
}

type nodeConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Approval bool   `yaml:"approval"`
	Sign     bool   `yaml:"sign"`
	Terminal bool   `yaml:"terminal"`
	Entry    bool   `yaml:"entry"`
}

type graphConfig struct {
	Nodes []nodeConfig        `yaml:"nodes"`
	Edges map[string][]string `yaml:"edges"`
}

type routingConfig struct {
	Graphs map[string]graphConfig `yaml:"graphs"`
}

// Load reads and validates a routing configuration file
func Load(path string) (*Registry, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read routing config file", goerr.V("path", path))
	}

	registry, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid routing config file", goerr.V("path", path))
	}
	return registry, nil
}

// Parse builds a Registry from raw YAML configuration
func Parse(data []byte) (*Registry, error) {
	var cfg routingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse routing YAML")
	}

	if len(cfg.Graphs) == 0 {
		return nil, goerr.New("routing config defines no graphs")
	}

	graphs := make(map[types.DocumentType]*model.RoutingGraph, len(cfg.Graphs))
	for name, gc := range cfg.Graphs {
		dt, err := types.ParseDocumentType(name)
		if err != nil {
			return nil, goerr.Wrap(err, "unknown document type in routing config", goerr.V("graph", name))
		}

		graph, err := buildGraph(dt, gc)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid routing graph", goerr.V("graph", name))
		}
		graphs[dt] = graph
	}

	return &Registry{graphs: graphs}, nil
}

func buildGraph(dt types.DocumentType, gc graphConfig) (*model.RoutingGraph, error) {
	if len(gc.Nodes) == 0 {
		return nil, goerr.New("graph has no nodes")
	}

	seen := make(map[types.NodeID]bool, len(gc.Nodes))
	nodes := make([]model.RoutingNode, 0, len(gc.Nodes))
	hasEntry := false

	for _, nc := range gc.Nodes {
		id := types.NodeID(nc.ID)
		if err := id.Validate(); err != nil {
			return nil, goerr.Wrap(err, "node ID is required")
		}
		if seen[id] {
			return nil, goerr.New("duplicate node ID", goerr.V("node_id", id))
		}
		if nc.Name == "" {
			return nil, goerr.New("node name is required", goerr.V("node_id", id))
		}
		if nc.Terminal && !nc.Approval {
			return nil, goerr.New("terminal node must require approval", goerr.V("node_id", id))
		}
		seen[id] = true
		hasEntry = hasEntry || nc.Entry

		nodes = append(nodes, model.RoutingNode{
			ID:       id,
			Name:     nc.Name,
			Approval: nc.Approval,
			Sign:     nc.Sign,
			Terminal: nc.Terminal,
			Entry:    nc.Entry,
		})
	}

	if !hasEntry {
		return nil, goerr.New("graph has no entry node")
	}

	edges := make(map[types.NodeID][]types.NodeID, len(gc.Edges))
	for from, tos := range gc.Edges {
		fromID := types.NodeID(from)
		if !seen[fromID] {
			return nil, goerr.New("edge from unknown node", goerr.V("node_id", fromID))
		}
		for _, to := range tos {
			toID := types.NodeID(to)
			if !seen[toID] {
				return nil, goerr.New("edge to unknown node",
					goerr.V("from", fromID), goerr.V("to", toID))
			}
			if toID == fromID {
				return nil, goerr.New("self edge is not allowed", goerr.V("node_id", fromID))
			}
			edges[fromID] = append(edges[fromID], toID)
		}
	}

	return model.NewRoutingGraph(dt, nodes, edges), nil
}
