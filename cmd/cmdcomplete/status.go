package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atinylittleshell/cmdcomplete/internal/buildmarker"
	"github.com/atinylittleshell/cmdcomplete/internal/styles"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatusCommand(app *application) *cobra.Command {
	var cliVersion string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report on the stored command tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cliVersion == "" {
				cliVersion = app.version
			}
			out := cmd.OutOrStdout()
			field := func(label, value string) {
				fmt.Fprintf(out, "%s %s\n", styles.LABEL(fmt.Sprintf("%-10s", label+":")), value)
			}

			field("tree", app.cfg.TreeFile)
			stat, err := os.Stat(app.cfg.TreeFile)
			switch {
			case errors.Is(err, os.ErrNotExist):
				field("stored", "no (completion will offer nothing)")
			case err != nil:
				field("stored", "unreadable: "+err.Error())
			default:
				field("stored", fmt.Sprintf("%s, updated %s", humanize.Bytes(uint64(stat.Size())), humanize.Time(stat.ModTime())))
			}

			tree := app.loadTree()
			field("top-level", humanize.Comma(int64(tree.Len())))
			field("commands", humanize.Comma(int64(len(tree.CommandPaths()))))

			built := buildmarker.GetBuiltVersion()
			if built == "" {
				built = "unknown"
			}
			field("built for", built)
			if buildmarker.IsStale(cliVersion) {
				field("state", styles.WARNING("stale for "+cliVersion+", run `cmdcomplete build`"))
			} else {
				field("state", styles.SUCCESS("up to date"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cliVersion, "cli-version", "", "CLI version to check the tree against (default is this binary's version)")
	return cmd
}
