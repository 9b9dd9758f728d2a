package main

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lxyhes/flowforge/pkg/catalog"
	"github.com/lxyhes/flowforge/pkg/domain"
	"github.com/lxyhes/flowforge/pkg/store"
)

// templatesCmd groups template library management.
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage the workflow template library",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates, custom ones first",
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, _, err := setup(cmd)
		if err != nil {
			fail(err)
		}
		ctx := cmd.Context()

		customs, err := svc.ListCustom(ctx)
		if err != nil {
			fail(err)
		}
		favorites, err := svc.Favorites(ctx)
		if err != nil {
			fail(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSOURCE\tFAV")
		for _, tpl := range append(customs, catalog.All()...) {
			fav := ""
			if slices.Contains(favorites, tpl.ID) {
				fav = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", tpl.ID, tpl.Name, tpl.Category, tpl.Source, fav)
		}
		w.Flush()
	},
}

var templatesRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a custom template",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, _, err := setup(cmd)
		if err != nil {
			fail(err)
		}
		if err := svc.Rename(cmd.Context(), args[0], args[1]); err != nil {
			fail(err)
		}
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a custom template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, _, err := setup(cmd)
		if err != nil {
			fail(err)
		}
		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			fail(err)
		}
	},
}

var templatesFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a template's favorite state",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, _, err := setup(cmd)
		if err != nil {
			fail(err)
		}
		on, err := svc.ToggleFavorite(cmd.Context(), args[0])
		if err != nil {
			fail(err)
		}
		if on {
			fmt.Printf("Favorited %s\n", args[0])
		} else {
			fmt.Printf("Unfavorited %s\n", args[0])
		}
	},
}

var templatesExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a template as a shareable JSON envelope",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, _, err := setup(cmd)
		if err != nil {
			fail(err)
		}

		tpl, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			builtin, ok := catalog.ByID(args[0])
			if !ok {
				fail(err)
			}
			tpl = builtin
		}

		data, err := svc.ExportOne(tpl)
		if err != nil {
			fail(err)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" || out == "-" {
			fmt.Println(string(data))
			return
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %s\n", out)
	},
}

var templatesImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import templates from JSON files",
	Long: `Imports templates from export envelopes, bare template arrays or
wrapper objects. Malformed entries are skipped and counted.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _, _, err := setup(cmd)
		if err != nil {
			fail(err)
		}

		files := make([]store.File, 0, len(args))
		for _, name := range args {
			f, err := os.Open(name)
			if err != nil {
				fail(err)
			}
			defer f.Close()
			files = append(files, store.File{Name: name, Reader: f})
		}

		outcome, err := svc.ImportMany(cmd.Context(), files)
		if err != nil {
			fail(err)
		}
		fmt.Printf("Imported %d template(s), skipped %d\n", outcome.Imported, outcome.Skipped)
		if outcome.Imported == 0 {
			fail(domain.ErrNoUsableTemplate)
		}
	},
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesRenameCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
	templatesCmd.AddCommand(templatesFavoriteCmd)
	templatesCmd.AddCommand(templatesExportCmd)
	templatesCmd.AddCommand(templatesImportCmd)

	templatesExportCmd.Flags().StringP("out", "o", "", "Output file ('-' or empty for stdout)")
}
