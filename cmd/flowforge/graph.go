package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lxyhes/flowforge/internal/presentation/graph"
	"github.com/lxyhes/flowforge/pkg/catalog"
	flowgraph "github.com/lxyhes/flowforge/pkg/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <template-id>",
	Short: "Export a workflow graph visualization",
	Long:  `Looks up a template and outputs a Mermaid diagram (graph TD) representing its flow.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, _, err := setup(cmd)
		if err != nil {
			fmt.Printf("Error initializing flowforge: %v\n", err)
			os.Exit(1)
		}

		tpl, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			builtin, ok := catalog.ByID(args[0])
			if !ok {
				fmt.Printf("Error loading template: %v\n", err)
				os.Exit(1)
			}
			tpl = builtin
		}

		w := tpl.Workflow()
		if starts := flowgraph.CountStarts(w); starts != 1 {
			fmt.Fprintf(os.Stderr, "Warning: workflow has %d start nodes; traversal uses the first one\n", starts)
		}
		if unreachable := flowgraph.Unreachable(w); len(unreachable) > 0 {
			fmt.Fprintf(os.Stderr, "Warning: %d node(s) unreachable from start: %v\n", len(unreachable), unreachable)
		}

		fmt.Print(graph.GenerateMermaid(w))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
