package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lxyhes/flowforge/internal/presentation/tui"
	"github.com/lxyhes/flowforge/pkg/catalog"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/export"
	"github.com/lxyhes/flowforge/pkg/graph"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <template-id>",
	Short: "Export a workflow template as an agent or command artifact",
	Long: `Derives the step sequence of a workflow template and renders it as a
configuration artifact for an agent or a slash command.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		preview, _ := cmd.Flags().GetBool("preview")

		if format != "agent" && format != "command" {
			fmt.Printf("Unknown format: %s. Supported: agent, command\n", format)
			os.Exit(1)
		}

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

		steps := graph.DeriveStepSequence(tpl.Workflow())

		var artifact, filename, instructions string
		if format == "agent" {
			cfg := export.ToAgentConfig(tpl.Name, tpl.Description, steps)
			artifact, filename, instructions = export.Marshal(cfg), export.Filename(tpl.Name, "agent"), cfg.Instructions
		} else {
			cfg := export.ToCommandConfig(tpl.Name, tpl.Description, steps)
			artifact, filename, instructions = export.Marshal(cfg), export.Filename(tpl.Name, "command"), cfg.Instructions
		}

		if preview {
			renderPreview(tpl, steps, instructions)
		}

		if out == "-" {
			fmt.Print(artifact)
			return
		}
		if out == "" {
			out = filename
		}
		if err := os.WriteFile(out, []byte(artifact), 0o644); err != nil {
			fmt.Printf("Error writing artifact: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", out)
	},
}

// renderPreview shows the derived instructions as styled markdown
// before the artifact is written.
func renderPreview(tpl domain.Template, steps []domain.Node, instructions string) {
	md := fmt.Sprintf("# %s\n\n%d steps\n\n```\n%s\n```\n", tpl.Name, len(steps), instructions)

	render := tui.NewRenderer()
	styled, err := render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(styled)
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("format", "f", "agent", "Artifact format: 'agent' or 'command'")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: derived from the template name, '-' for stdout)")
	exportCmd.Flags().Bool("preview", false, "Preview the derived instructions before writing")
}
