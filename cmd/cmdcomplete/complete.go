package main

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/cmdcomplete/internal/completion"
	"github.com/spf13/cobra"
)

func newCompleteCommand(app *application) *cobra.Command {
	var fragment int

	cmd := &cobra.Command{
		Use:   "complete [--fragment N] -- <line>",
		Short: "Print completion candidates for a command line",
		Long: `Print the candidates for the word being typed at the end of <line>, one per
line. This is the entry point for shell completion hooks. A missing or broken
command tree prints nothing.

When --fragment is not given it is derived from the line: the first word
after the program name is fragment 1.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			if !cmd.Flags().Changed("fragment") {
				fragment = completion.FragmentIndex(line)
			}

			resolver := completion.NewResolver(app.loadTree(), app.logger)
			for _, candidate := range resolver.Resolve(line, fragment) {
				fmt.Fprintln(cmd.OutOrStdout(), candidate)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&fragment, "fragment", "f", 0, "index of the word being completed (1 is the first word after the program)")
	return cmd
}
