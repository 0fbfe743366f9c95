package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/secmon-lab/docflow/pkg/cli/config"
	"github.com/secmon-lab/docflow/pkg/domain/model"
	"github.com/secmon-lab/docflow/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdGraph() *cli.Command {
	var routingCfg config.Routing

	return &cli.Command{
		Name:    "graph",
		Aliases: []string{"g"},
		Usage:   "Validate and print the routing graph configuration",
		Flags:   routingCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			registry, err := routingCfg.Configure()
			if err != nil {
				return err
			}

			logging.Default().Info("Routing config is valid", "path", routingCfg.Path())

			dts := registry.DocumentTypes()
			sort.Slice(dts, func(i, j int) bool { return dts[i] < dts[j] })

			title := color.New(color.FgCyan, color.Bold)
			entryMark := color.New(color.FgGreen)
			terminalMark := color.New(color.FgRed)

			for _, dt := range dts {
				graph, err := registry.Graph(dt)
				if err != nil {
					return err
				}

				title.Printf("%s\n", dt)
				for _, node := range sortedNodes(graph) {
					var marks []string
					if node.Entry {
						marks = append(marks, entryMark.Sprint("entry"))
					}
					if node.Approval {
						marks = append(marks, "approval")
					}
					if node.Sign {
						marks = append(marks, "sign")
					}
					if node.Terminal {
						marks = append(marks, terminalMark.Sprint("terminal"))
					}

					label := ""
					if len(marks) > 0 {
						label = " [" + strings.Join(marks, ", ") + "]"
					}

					fmt.Printf("  %s (%s)%s\n", node.ID, node.Name, label)
					for _, next := range graph.LegalNextNodes(node.ID) {
						fmt.Printf("    -> %s\n", next)
					}
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func sortedNodes(graph *model.RoutingGraph) []model.RoutingNode {
	nodes := graph.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}
