package main

import (
	"fmt"

	"github.com/cmdflow/cmdflow/internal/presentation/graph"
	"github.com/cmdflow/cmdflow/pkg/actuator"
	"github.com/cmdflow/cmdflow/pkg/domain"
	"github.com/cmdflow/cmdflow/pkg/nodes"
	"github.com/cmdflow/cmdflow/pkg/registry"
	"github.com/cmdflow/cmdflow/pkg/samples"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:       "graph [workflow]",
	Short:     "Export the workflow graph visualization",
	Long:      `Outputs a Mermaid diagram (graph TD) of a built-in workflow.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: samples.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := buildSample(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(g, nil))
		return nil
	},
}

// buildSample builds a workflow for inspection only; its actions are never run.
func buildSample(name string) (*domain.Graph, error) {
	rec := actuator.NewRecorder(actuator.Point{})
	return samples.Build(name, registry.NewDefault(nodes.Devices{Pointer: rec, Keyboard: rec}))
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
