package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atinylittleshell/cmdcomplete/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newShowCommand(app *application) *cobra.Command {
	var (
		asJSON bool
		paths  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored command tree",
		Long: `Print the stored command tree. On a terminal the tree is drawn; when output
is redirected it is printed as JSON, the format it is stored in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree := app.loadTree()
			out := cmd.OutOrStdout()

			if paths {
				fmt.Fprint(out, render.Paths(tree))
				return nil
			}

			if !asJSON && !term.IsTerminal(int(os.Stdout.Fd())) {
				asJSON = true
			}
			if asJSON {
				data, err := json.MarshalIndent(tree, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode command tree: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintln(out, render.Tree(app.cfg.Name, tree))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVar(&paths, "paths", false, "print one command path per line")
	cmd.MarkFlagsMutuallyExclusive("json", "paths")
	return cmd
}
