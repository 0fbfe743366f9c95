package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/docflow/pkg/routing"
	"github.com/urfave/cli/v3"
)

// Routing holds CLI flags for the routing graph configuration
type Routing struct {
	path string
}

// Flags returns CLI flags for routing configuration
func (r *Routing) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "routing-config",
			Usage:       "Path to the routing graph YAML file",
			Required:    true,
			Sources:     cli.EnvVars("DOCFLOW_ROUTING_CONFIG"),
			Destination: &r.path,
		},
	}
}

// Path returns the configured routing config path
func (r *Routing) Path() string {
	return r.path
}

// Configure loads and validates the routing graphs.
func (r *Routing) Configure() (*routing.Registry, error) {
	reg, err := routing.Load(r.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load routing config", goerr.V("path", r.path))
	}
	return reg, nil
}
